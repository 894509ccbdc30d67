package effects

import (
	"math"

	"github.com/cwbudde/algo-mms/dsp/buffer"
	"github.com/cwbudde/algo-mms/fault"
)

const opGainCompress = "effects.gain_compress"

// GainCompress shapes every sample against a threshold and a limiter
// ceiling, both in dBFS.
//
// Samples with |x| <= thr pass unchanged. Above the threshold the magnitude
// follows thr + (lim-thr)*tanh((|x|-thr)/(lim-thr)), which approaches the
// ceiling smoothly; the result is then clipped to [-lim, lim]. When
// limiterDB equals thresholdDB the knee has zero width and the operation
// degenerates to a hard clip at the threshold.
func GainCompress(in *buffer.Buffer, thresholdDB, limiterDB float64) (*buffer.Buffer, error) {
	if err := requireFinite(opGainCompress, "threshold_db", thresholdDB); err != nil {
		return nil, err
	}

	if err := requireFinite(opGainCompress, "limiter_db", limiterDB); err != nil {
		return nil, err
	}

	if limiterDB < thresholdDB {
		return nil, fault.InvalidParameter(opGainCompress,
			"limiter_db (%v) must not be below threshold_db (%v)", limiterDB, thresholdDB)
	}

	thr := DBToLinear(thresholdDB)
	lim := DBToLinear(limiterDB)

	return in.Map(func(_ int, src, dst []float64) error {
		for i, x := range src {
			dst[i] = compressSample(x, thr, lim)
		}

		return nil
	})
}

func compressSample(x, thr, lim float64) float64 {
	mag := math.Abs(x)
	if mag <= thr {
		return x
	}

	knee := lim - thr
	if knee > 0 {
		mag = thr + knee*math.Tanh((mag-thr)/knee)
	}

	if mag > lim {
		mag = lim
	}

	return math.Copysign(mag, x)
}

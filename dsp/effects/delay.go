package effects

import (
	"math"

	"github.com/cwbudde/algo-mms/dsp/buffer"
	"github.com/cwbudde/algo-mms/fault"
)

const (
	opDelay        = "effects.delay"
	opDenoiseDelay = "effects.denoise_delay"
)

// Delay mixes a single echo of every channel back into itself:
// out[i] = x[i] + gain*x[i-k] for i >= k, where k is ms converted to
// samples rounded to nearest. A delay of k >= len samples wraps to
// k mod len, and a remainder of zero adds the echo onto the dry signal, so
// the echo never vanishes.
func Delay(in *buffer.Buffer, ms, gain float64) (*buffer.Buffer, error) {
	if err := validateDelay(opDelay, ms, gain); err != nil {
		return nil, err
	}

	k, err := delayOffset(in.SampleRate(), ms, in.Len())
	if err != nil {
		return nil, err
	}

	return in.Map(func(_ int, src, dst []float64) error {
		echo(dst, src, k, gain)

		return nil
	})
}

// delayOffset converts ms to samples and folds the count into a channel of
// n samples before leaving float64, so delays of any length wrap instead
// of overflowing int.
func delayOffset(sampleRate int, ms float64, n int) (int, error) {
	if n <= 0 {
		return 0, nil
	}

	k := math.Round(float64(sampleRate) * ms / 1000)
	if math.IsInf(k, 0) {
		return 0, fault.InvalidParameter(opDelay, "delay of %v ms overflows at %d Hz", ms, sampleRate)
	}

	if k >= float64(n) {
		k = math.Mod(k, float64(n))
	}

	return int(k), nil
}

func validateDelay(op string, ms, gain float64) error {
	if !finite(ms) || ms < 0 {
		return fault.InvalidParameter(op, "delay must be a non-negative number of milliseconds, got %v", ms)
	}

	return requireFinite(op, "gain", gain)
}

func echo(dst, src []float64, k int, gain float64) {
	copy(dst, src)

	for i := k; i < len(src); i++ {
		dst[i] += gain * src[i-k]
	}
}

// DenoiseDelay runs AdaptiveDenoise and then Delay. The echo gain is given
// in percent.
func DenoiseDelay(in *buffer.Buffer, delayMS, gainPercent float64) (*buffer.Buffer, error) {
	gain := PercentToGain(gainPercent)
	if err := validateDelay(opDenoiseDelay, delayMS, gain); err != nil {
		return nil, err
	}

	clean, err := AdaptiveDenoise(in)
	if err != nil {
		return nil, err
	}

	return Delay(clean, delayMS, gain)
}

// PercentToGain converts a percentage to a linear factor.
func PercentToGain(percent float64) float64 {
	return percent / 100
}

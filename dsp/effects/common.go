package effects

import (
	"math"

	"github.com/cwbudde/algo-mms/dsp/buffer"
	"github.com/cwbudde/algo-mms/dsp/filter/biquad"
	"github.com/cwbudde/algo-mms/fault"
)

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func requireFinite(op, name string, v float64) error {
	if !finite(v) {
		return fault.InvalidParameter(op, "%s must be finite, got %v", name, v)
	}

	return nil
}

// filterChannels runs every channel of in through c from zero state.
func filterChannels(in *buffer.Buffer, c *biquad.Cascade) *buffer.Buffer {
	out, _ := in.Map(func(_ int, src, dst []float64) error {
		c.FilterTo(dst, src)

		return nil
	})

	return out
}

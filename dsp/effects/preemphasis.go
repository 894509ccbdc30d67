package effects

import (
	"github.com/cwbudde/algo-mms/dsp/buffer"
	"github.com/cwbudde/algo-mms/fault"
)

const opPreEmphasis = "effects.pre_emphasis"

// PreEmphasis applies y[n] = x[n] - alpha*x[n-1] to every channel, with
// x[-1] = 0. alpha must lie in [0, 1).
func PreEmphasis(in *buffer.Buffer, alpha float64) (*buffer.Buffer, error) {
	if !(alpha >= 0 && alpha < 1) {
		return nil, fault.InvalidParameter(opPreEmphasis, "alpha must be in [0, 1), got %v", alpha)
	}

	return in.Map(func(_ int, src, dst []float64) error {
		preEmphasis(dst, src, alpha)

		return nil
	})
}

func preEmphasis(dst, src []float64, alpha float64) {
	prev := 0.0
	for i, x := range src {
		dst[i] = x - alpha*prev
		prev = x
	}
}

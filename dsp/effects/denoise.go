package effects

import "github.com/cwbudde/algo-mms/dsp/buffer"

// DenoiseWindow is the length of the local statistics window used by
// AdaptiveDenoise.
const DenoiseWindow = 3

// AdaptiveDenoise runs a local Wiener filter over every channel.
//
// Mean and variance are estimated over a centred DenoiseWindow-sample
// window, treating samples outside the channel as zero. The noise power is
// the average of all local variances. Where the local variance does not
// exceed the noise power the local mean is output; elsewhere the estimate
// mean + (1 - noise/variance)*(x - mean) is used.
func AdaptiveDenoise(in *buffer.Buffer) (*buffer.Buffer, error) {
	return in.Map(func(_ int, src, dst []float64) error {
		wiener(dst, src, DenoiseWindow)

		return nil
	})
}

func wiener(dst, src []float64, window int) {
	n := len(src)
	if n == 0 {
		return
	}

	mean := make([]float64, n)
	variance := make([]float64, n)
	half := window / 2
	inv := 1 / float64(window)

	var noise float64

	for i := range src {
		var sum, sumSq float64

		for j := i - half; j <= i+half; j++ {
			if j < 0 || j >= n {
				continue
			}

			sum += src[j]
			sumSq += src[j] * src[j]
		}

		m := sum * inv
		v := sumSq*inv - m*m

		// Rounding can push a flat window slightly negative.
		if v < 0 {
			v = 0
		}

		mean[i] = m
		variance[i] = v
		noise += v
	}

	noise /= float64(n)

	for i, x := range src {
		v := variance[i]
		if v <= noise || v == 0 {
			dst[i] = mean[i]

			continue
		}

		dst[i] = mean[i] + (1-noise/v)*(x-mean[i])
	}
}

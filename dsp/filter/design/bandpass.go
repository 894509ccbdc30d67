package design

import (
	"math"
	"math/cmplx"
	"sort"

	"github.com/cwbudde/algo-mms/dsp/filter/biquad"
)

// bandpassSections designs an order-N Butterworth bandpass via the analog
// prototype: prototype poles, lowpass-to-bandpass transform around the
// prewarped band, then the bilinear transform. Each section carries one zero
// at z=1 and one at z=-1; the overall gain is returned separately.
func bandpassSections(low, high float64, order int, sampleRate float64) ([]biquad.Coefficients, float64) {
	fs2 := 2 * sampleRate
	wl := fs2 * math.Tan(math.Pi*low/sampleRate)
	wh := fs2 * math.Tan(math.Pi*high/sampleRate)
	bw := wh - wl
	w0sq := wl * wh

	poles := make([]complex128, 0, 2*order)
	for m := -order + 1; m < order; m += 2 {
		proto := -cmplx.Exp(complex(0, math.Pi*float64(m)/float64(2*order)))
		scaled := proto * complex(bw/2, 0)
		root := cmplx.Sqrt(scaled*scaled - complex(w0sq, 0))
		poles = append(poles, scaled+root, scaled-root)
	}

	den := complex(1, 0)
	digital := make([]complex128, len(poles))

	for i, p := range poles {
		digital[i] = (complex(fs2, 0) + p) / (complex(fs2, 0) - p)
		den *= complex(fs2, 0) - p
	}

	// N analog zeros at s=0 contribute fs2^N to the bilinear gain term.
	gain := math.Pow(bw*fs2, float64(order)) * real(1/den)

	pairs := pairConjugates(digital)
	sections := make([]biquad.Coefficients, 0, len(pairs))

	for _, pr := range pairs {
		sections = append(sections, biquad.Coefficients{
			B0: 1, B1: 0, B2: -1,
			A1: -real(pr[0] + pr[1]),
			A2: real(pr[0] * pr[1]),
		})
	}

	return sections, gain
}

// pairConjugates groups roots of a real polynomial into second-order pairs:
// complex roots with their conjugates, remaining real roots two at a time in
// ascending order.
func pairConjugates(roots []complex128) [][2]complex128 {
	const tol = 1e-9

	var (
		pairs [][2]complex128
		reals []float64
	)

	for _, r := range roots {
		switch im := imag(r); {
		case math.Abs(im) <= tol*math.Max(1, cmplx.Abs(r)):
			reals = append(reals, real(r))
		case im > 0:
			pairs = append(pairs, [2]complex128{r, cmplx.Conj(r)})
		}
	}

	sort.Float64s(reals)

	for i := 0; i+1 < len(reals); i += 2 {
		pairs = append(pairs, [2]complex128{complex(reals[i], 0), complex(reals[i+1], 0)})
	}

	return pairs
}

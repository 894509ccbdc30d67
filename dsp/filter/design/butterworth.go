package design

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-mms/dsp/filter/biquad"
	"github.com/cwbudde/algo-mms/fault"
)

// MaxOrder bounds the prototype order accepted by Butterworth.
const MaxOrder = 16

// Kind selects the response shape.
type Kind int

const (
	Lowpass Kind = iota
	Highpass
	Bandpass
)

func (k Kind) String() string {
	switch k {
	case Lowpass:
		return "low"
	case Highpass:
		return "high"
	case Bandpass:
		return "band"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

const opButterworth = "design.butterworth"

// Butterworth designs a Butterworth filter.
//
// For Bandpass, low and high are the band edges in Hz and must satisfy
// 0 < low < high < sampleRate/2. For Lowpass and Highpass only high is used
// as the cutoff and must satisfy 0 < high < sampleRate/2.
func Butterworth(sampleRate, low, high float64, order int, kind Kind) (*biquad.Cascade, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fault.InvalidParameter(opButterworth, "sample rate must be positive, got %g", sampleRate)
	}

	if order < 1 || order > MaxOrder {
		return nil, fault.InvalidParameter(opButterworth, "order must be in [1, %d], got %d", MaxOrder, order)
	}

	nyquist := sampleRate / 2

	switch kind {
	case Lowpass, Highpass:
		if !(high > 0 && high < nyquist) {
			return nil, fault.FilterDesign(opButterworth,
				"%s cutoff must satisfy 0 < f < nyquist (f=%g, nyquist=%g)", kind, high, nyquist)
		}

		if kind == Lowpass {
			return biquad.NewCascade(lowpassSections(high, order, sampleRate), 1), nil
		}

		return biquad.NewCascade(highpassSections(high, order, sampleRate), 1), nil
	case Bandpass:
		if !(low > 0 && low < high && high < nyquist) {
			return nil, fault.FilterDesign(opButterworth,
				"band edges must satisfy 0 < low < high < nyquist (low=%g, high=%g, nyquist=%g)", low, high, nyquist)
		}

		sections, gain := bandpassSections(low, high, order, sampleRate)

		return biquad.NewCascade(sections, gain), nil
	default:
		return nil, fault.InvalidParameter(opButterworth, "unknown filter kind %v", kind)
	}
}

// butterworthQ returns the quality factor of biquad section index for an
// order-N Butterworth prototype.
func butterworthQ(order, index int) float64 {
	theta := math.Pi * float64(2*index+1) / (2 * float64(order))

	return 1 / (2 * math.Sin(theta))
}

func lowpassSections(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	sections := make([]biquad.Coefficients, 0, (order+1)/2)
	for i := order/2 - 1; i >= 0; i-- {
		sections = append(sections, rbjLowpass(freq, butterworthQ(order, i), sampleRate))
	}

	if order%2 != 0 {
		k := math.Tan(math.Pi * freq / sampleRate)
		norm := 1 / (1 + k)
		sections = append(sections, biquad.Coefficients{B0: k * norm, B1: k * norm, A1: (k - 1) * norm})
	}

	return sections
}

func highpassSections(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	sections := make([]biquad.Coefficients, 0, (order+1)/2)
	for i := order/2 - 1; i >= 0; i-- {
		sections = append(sections, rbjHighpass(freq, butterworthQ(order, i), sampleRate))
	}

	if order%2 != 0 {
		k := math.Tan(math.Pi * freq / sampleRate)
		norm := 1 / (1 + k)
		sections = append(sections, biquad.Coefficients{B0: norm, B1: -norm, A1: (k - 1) * norm})
	}

	return sections
}

func rbjLowpass(freq, q, sampleRate float64) biquad.Coefficients {
	w0 := 2 * math.Pi * freq / sampleRate
	cw, sw := math.Cos(w0), math.Sin(w0)
	alpha := sw / (2 * q)

	return normalize((1-cw)/2, 1-cw, (1-cw)/2, 1+alpha, -2*cw, 1-alpha)
}

func rbjHighpass(freq, q, sampleRate float64) biquad.Coefficients {
	w0 := 2 * math.Pi * freq / sampleRate
	cw, sw := math.Cos(w0), math.Sin(w0)
	alpha := sw / (2 * q)

	return normalize((1+cw)/2, -(1 + cw), (1+cw)/2, 1+alpha, -2*cw, 1-alpha)
}

func normalize(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	return biquad.Coefficients{B0: b0 / a0, B1: b1 / a0, B2: b2 / a0, A1: a1 / a0, A2: a2 / a0}
}

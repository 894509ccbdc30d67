package biquad

import (
	"math"
	"math/cmplx"
)

// Cascade is an ordered series of second-order sections with an overall
// input gain. It is immutable once built; delay-line state lives only for
// the duration of one Filter call.
type Cascade struct {
	coeffs []Coefficients
	gain   float64
}

// NewCascade copies coeffs into a cascade with the given overall gain.
func NewCascade(coeffs []Coefficients, gain float64) *Cascade {
	return &Cascade{
		coeffs: append([]Coefficients(nil), coeffs...),
		gain:   gain,
	}
}

// Sections returns a copy of the section coefficients.
func (c *Cascade) Sections() []Coefficients {
	return append([]Coefficients(nil), c.coeffs...)
}

// NumSections returns the number of sections.
func (c *Cascade) NumSections() int { return len(c.coeffs) }

// Gain returns the overall input gain.
func (c *Cascade) Gain() float64 { return c.gain }

// Filter runs src through the cascade from zero initial state and returns
// the result in a new slice. src is not modified.
func (c *Cascade) Filter(src []float64) []float64 {
	out := make([]float64, len(src))
	c.FilterTo(out, src)

	return out
}

// FilterTo is like Filter but writes into dst, which must be at least as
// long as src.
func (c *Cascade) FilterTo(dst, src []float64) {
	dst = dst[:len(src)]
	for i, x := range src {
		dst[i] = x * c.gain
	}

	for _, coeffs := range c.coeffs {
		s := section{Coefficients: coeffs}
		s.processBlock(dst)
	}
}

// Response returns the cascaded complex frequency response.
func (c *Cascade) Response(freqHz, sampleRate float64) complex128 {
	h := complex(c.gain, 0)
	for _, s := range c.coeffs {
		h *= s.Response(freqHz, sampleRate)
	}

	return h
}

// MagnitudeDB returns the cascaded magnitude response in dB.
func (c *Cascade) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.Response(freqHz, sampleRate)))
}

// ImpulseResponse returns the first n samples of the impulse response.
func (c *Cascade) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	impulse := make([]float64, n)
	impulse[0] = 1

	return c.Filter(impulse)
}

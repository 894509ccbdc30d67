package analysis

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-mms/dsp/window"
)

// DefaultFFTSize is the frame length of the averaged spectrum.
const DefaultFFTSize = 2048

// RolloffFraction is the energy fraction used for Shape.Rolloff.
const RolloffFraction = 0.85

// Shape holds spectral shape descriptors of one channel.
type Shape struct {
	Centroid float64 `json:"centroid_hz"`
	Rolloff  float64 `json:"rolloff_hz"`
	Flatness float64 `json:"flatness"`
	PeakFreq float64 `json:"peak_hz"`
}

// Spectrum returns the averaged one-sided amplitude spectrum of x using
// Hann-windowed frames of size points with 50 % overlap. A sinusoid
// centred on a bin reads as its amplitude there. size must be a power of
// two; x shorter than size is zero padded into a single frame.
func Spectrum(x []float64, size int) ([]float64, error) {
	if size < 2 || size&(size-1) != 0 {
		return nil, fmt.Errorf("analysis: fft size must be a power of two >= 2, got %d", size)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("analysis: fft plan: %w", err)
	}

	win, err := window.Hann(size, window.WithPeriodic())
	if err != nil {
		return nil, fmt.Errorf("analysis: %w", err)
	}

	frame := make([]float64, size)
	in := make([]complex128, size)
	out := make([]complex128, size)
	re := make([]float64, size/2+1)
	im := make([]float64, size/2+1)
	mag := make([]float64, size/2+1)
	acc := make([]float64, size/2+1)

	hop := size / 2
	frames := 0

	for start := 0; start == 0 || start+size <= len(x); start += hop {
		clear(frame)
		copy(frame, x[start:min(start+size, len(x))])
		vecmath.MulBlockInPlace(frame, win)

		for i, v := range frame {
			in[i] = complex(v, 0)
		}

		if err := plan.Forward(out, in); err != nil {
			return nil, fmt.Errorf("analysis: fft: %w", err)
		}

		for k := range re {
			re[k], im[k] = real(out[k]), imag(out[k])
		}

		vecmath.Magnitude(mag, re, im)
		vecmath.AddBlockInPlace(acc, mag)

		frames++
	}

	vecmath.ScaleBlockInPlace(acc, 2/(float64(frames)*float64(size)*window.CoherentGain(win)))

	return acc, nil
}

// MeasureShape computes spectral descriptors of the magnitude spectrum mag
// whose last bin sits at sampleRate/2.
func MeasureShape(mag []float64, sampleRate float64) Shape {
	n := len(mag)
	if n < 2 {
		return Shape{}
	}

	sum := vecmath.Sum(mag)
	energy := vecmath.DotProduct(mag, mag)

	var s Shape
	if sum > 0 {
		weighted := 0.0
		for i, v := range mag {
			weighted += binFreq(i, sampleRate, n) * v
		}

		s.Centroid = weighted / sum
	}

	if energy > 0 {
		threshold := RolloffFraction * energy
		cum := 0.0

		for i, v := range mag {
			cum += v * v
			if cum >= threshold {
				s.Rolloff = binFreq(i, sampleRate, n)
				break
			}
		}
	}

	s.Flatness = flatness(mag)

	peak := 0
	for i, v := range mag {
		if v > mag[peak] {
			peak = i
		}
	}

	s.PeakFreq = binFreq(peak, sampleRate, n)

	return s
}

func binFreq(i int, sampleRate float64, bins int) float64 {
	return float64(i) * sampleRate / float64(2*(bins-1))
}

// flatness is the geometric over the arithmetic mean of bins 1..n-1.
func flatness(mag []float64) float64 {
	bins := mag[1:]

	sumLin, sumLog := 0.0, 0.0
	for _, v := range bins {
		if v <= 0 {
			return 0
		}

		sumLin += v
		sumLog += math.Log(v)
	}

	n := float64(len(bins))

	return math.Exp(sumLog/n) / (sumLin / n)
}

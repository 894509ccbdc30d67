// Package testutil holds signal generators and comparison helpers shared by
// the DSP and service tests.
package testutil

import (
	"math"
	"math/rand"
	"testing"

	"github.com/cwbudde/algo-mms/dsp/buffer"
)

// Sine returns amplitude*sin(2*pi*f*n/sr) for n in [0, length).
func Sine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate

	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out
}

// Noise returns uniform white noise in [-amplitude, amplitude) drawn from a
// fixed seed.
func Noise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))

	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out
}

// Impulse returns a unit impulse at pos. Out-of-range positions give silence.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}

	return out
}

// DC returns a constant signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}

	return out
}

// Ramp returns 0, step, 2*step, ...
func Ramp(step float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = step * float64(i)
	}

	return out
}

// Buffer copies channels into a buffer and fails t on invalid input.
func Buffer(t testing.TB, sampleRate int, channels ...[]float64) *buffer.Buffer {
	t.Helper()

	buf, err := buffer.FromChannels(sampleRate, channels...)
	if err != nil {
		t.Fatalf("buffer: %v", err)
	}

	return buf
}

// StereoNoise returns a two-channel buffer with independent noise per side.
func StereoNoise(t testing.TB, sampleRate int, amplitude float64, length int) *buffer.Buffer {
	t.Helper()

	return Buffer(t, sampleRate, Noise(1, amplitude, length), Noise(2, amplitude, length))
}

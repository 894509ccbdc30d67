package testutil

import (
	"fmt"
	"math"
	"testing"

	"github.com/cwbudde/algo-mms/dsp/buffer"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair differs by more than eps.
func RequireSliceNearlyEqual(t testing.TB, got, want []float64, eps float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}

	for i := range got {
		if diff := math.Abs(got[i] - want[i]); diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireBufferNearlyEqual compares shape, sample rate and every channel.
func RequireBufferNearlyEqual(t testing.TB, got, want *buffer.Buffer, eps float64) {
	t.Helper()

	if got.SampleRate() != want.SampleRate() {
		t.Fatalf("sample rate: got %d, want %d", got.SampleRate(), want.SampleRate())
	}

	if got.NumChannels() != want.NumChannels() {
		t.Fatalf("channels: got %d, want %d", got.NumChannels(), want.NumChannels())
	}

	for ch := range got.NumChannels() {
		RequireSliceNearlyEqual(t, got.Channel(ch), want.Channel(ch), eps)
	}
}

// RequireFinite fails t if any sample is NaN or Inf.
func RequireFinite(t testing.TB, data []float64) {
	t.Helper()

	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// MaxAbsDiff returns the largest absolute element difference.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}

	var worst float64

	for i := range a {
		worst = math.Max(worst, math.Abs(a[i]-b[i]))
	}

	return worst, nil
}

// Peak returns the largest absolute sample.
func Peak(data []float64) float64 {
	var p float64
	for _, v := range data {
		p = math.Max(p, math.Abs(v))
	}

	return p
}

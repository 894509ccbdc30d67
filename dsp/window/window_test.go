package window

import (
	"math"
	"testing"
)

func TestHannSymmetricEndpoints(t *testing.T) {
	t.Parallel()

	w, err := Hann(9)
	if err != nil {
		t.Fatalf("Hann: %v", err)
	}

	if w[0] != 0 || math.Abs(w[8]) > 1e-15 {
		t.Fatalf("endpoints = %v, %v, want 0", w[0], w[8])
	}

	if math.Abs(w[4]-1) > 1e-15 {
		t.Fatalf("centre = %v, want 1", w[4])
	}

	for i := range w {
		if math.Abs(w[i]-w[len(w)-1-i]) > 1e-15 {
			t.Fatalf("w[%d] = %v, mirror %v", i, w[i], w[len(w)-1-i])
		}
	}
}

func TestHannPeriodic(t *testing.T) {
	t.Parallel()

	w, err := Hann(8, WithPeriodic())
	if err != nil {
		t.Fatalf("Hann: %v", err)
	}

	if w[0] != 0 || math.Abs(w[4]-1) > 1e-15 {
		t.Fatalf("periodic hann = %v", w)
	}

	if got := CoherentGain(w); math.Abs(got-0.5) > 1e-15 {
		t.Fatalf("coherent gain = %v, want 0.5", got)
	}
}

func TestHannRejectsEmpty(t *testing.T) {
	t.Parallel()

	for _, size := range []int{0, -3} {
		if _, err := Hann(size); err == nil {
			t.Fatalf("size %d: expected error", size)
		}
	}
}

func TestGenerateRectangular(t *testing.T) {
	t.Parallel()

	for i, v := range Generate(TypeRectangular, 5) {
		if v != 1 {
			t.Fatalf("w[%d] = %v, want 1", i, v)
		}
	}

	if CoherentGain(nil) != 0 {
		t.Fatal("empty coherent gain should be 0")
	}
}

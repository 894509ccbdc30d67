package biquad_test

import (
	"fmt"

	"github.com/cwbudde/algo-mms/dsp/filter/biquad"
)

func ExampleCascade_ImpulseResponse() {
	c := biquad.NewCascade([]biquad.Coefficients{{
		B0: 0.25, B1: 0.5, B2: 0.25,
		A1: -0.2, A2: 0.04,
	}}, 1)

	for i, y := range c.ImpulseResponse(4) {
		fmt.Printf("y[%d] = %.6f\n", i, y)
	}
	// Output:
	// y[0] = 0.250000
	// y[1] = 0.550000
	// y[2] = 0.350000
	// y[3] = 0.048000
}

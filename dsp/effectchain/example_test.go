package effectchain_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/cwbudde/algo-mms/dsp/buffer"
	"github.com/cwbudde/algo-mms/dsp/effectchain"
	"github.com/cwbudde/algo-mms/fault"
)

func ExampleConfigure() {
	specs, err := effectchain.ParseSpecs([]string{"denoiseDelay:delay_ms=1", "gainCompressor:threshold_db=-6"})
	if err != nil {
		panic(err)
	}

	cfg, err := effectchain.Configure(effectchain.DefaultCatalog(), specs)
	if err != nil {
		panic(err)
	}

	fmt.Println(cfg.IDs())

	_, err = effectchain.Configure(effectchain.DefaultCatalog(), []effectchain.Spec{{ID: "fooBar"}})
	fmt.Println(errors.Is(err, fault.ErrInvalidParameter), err)
	// Output:
	// [denoiseDelay gainCompressor]
	// true effectchain.configure: stage 0: unknown filter "fooBar"
}

func ExampleChain_Apply() {
	cfg, err := effectchain.Configure(nil, []effectchain.Spec{
		{ID: effectchain.IDGainCompressor, Params: map[string]any{"threshold_db": 0}},
	})
	if err != nil {
		panic(err)
	}

	in, _ := buffer.Mono(8000, []float64{0.5, 1.5, -2})

	out, err := effectchain.NewChain(cfg).Apply(context.Background(), in)
	if err != nil {
		panic(err)
	}

	fmt.Println(out.Channel(0))
	// Output: [0.5 1 -1]
}

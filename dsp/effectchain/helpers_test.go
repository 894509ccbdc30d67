package effectchain

import (
	"errors"

	"github.com/cwbudde/algo-mms/dsp/buffer"
)

var errStageBoom = errors.New("boom")

// gainOp multiplies every sample by a fixed gain and counts its calls.
type gainOp struct {
	gain  float64
	calls *int
}

func (gainOp) Kind() Kind { return Kind(100) }

func (o gainOp) Apply(in *buffer.Buffer) (*buffer.Buffer, error) {
	if o.calls != nil {
		*o.calls++
	}

	return in.Map(func(_ int, src, dst []float64) error {
		for i, v := range src {
			dst[i] = v * o.gain
		}

		return nil
	})
}

// addOp adds a constant, so that stage order is observable.
type addOp struct{ value float64 }

func (addOp) Kind() Kind { return Kind(101) }

func (o addOp) Apply(in *buffer.Buffer) (*buffer.Buffer, error) {
	return in.Map(func(_ int, src, dst []float64) error {
		for i, v := range src {
			dst[i] = v + o.value
		}

		return nil
	})
}

type failOp struct{}

func (failOp) Kind() Kind { return Kind(102) }

func (failOp) Apply(*buffer.Buffer) (*buffer.Buffer, error) { return nil, errStageBoom }

// testCatalog returns a catalog of the arithmetic test operations.
func testCatalog(calls *int) *Catalog {
	c := NewCatalog()
	c.MustRegister(Entry{
		ID:     "gain",
		Params: []ParamSpec{{Name: "gain", Default: 1, Min: -10, Max: 10}},
		Bind: func(p Params) (Operation, error) {
			return gainOp{gain: p.Num("gain", 1), calls: calls}, nil
		},
	})
	c.MustRegister(Entry{
		ID:     "add",
		Params: []ParamSpec{{Name: "value", Default: 0, Min: -10, Max: 10}},
		Bind: func(p Params) (Operation, error) {
			return addOp{value: p.Num("value", 0)}, nil
		},
	})
	c.MustRegister(Entry{
		ID:   "fail",
		Bind: func(Params) (Operation, error) { return failOp{}, nil },
	})

	return c
}

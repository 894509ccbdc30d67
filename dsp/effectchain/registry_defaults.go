package effectchain

import (
	"sync"

	"github.com/cwbudde/algo-mms/dsp/filter/design"
	"github.com/cwbudde/algo-mms/fault"
)

const opBind = "effectchain.bind"

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// DefaultCatalog returns the shared catalog of built-in filters. It is
// built on first use and must not be modified.
func DefaultCatalog() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog = NewDefaultCatalog()
	})

	return defaultCatalog
}

// NewDefaultCatalog returns a fresh catalog holding the built-in filters.
//
//nolint:funlen
func NewDefaultCatalog() *Catalog {
	c := NewCatalog()

	c.MustRegister(Entry{
		Kind:        KindGainCompressor,
		ID:          IDGainCompressor,
		Description: "soft-knee compressor with limiter ceiling",
		Params: []ParamSpec{
			{Name: "threshold_db", Default: -1, Min: -120, Max: 24, Unit: "dB", Aliases: []string{"gainCompressorThreshold"}},
			{Name: "limiter_db", Default: 0, Min: -120, Max: 24, Unit: "dB", Aliases: []string{"limiterThreshold"}},
		},
		Bind: func(p Params) (Operation, error) {
			op := GainCompressor{ThresholdDB: p["threshold_db"], LimiterDB: p["limiter_db"]}
			if op.LimiterDB < op.ThresholdDB {
				return nil, fault.InvalidParameter(opBind, "%s: limiter_db (%g) must not be below threshold_db (%g)",
					IDGainCompressor, op.LimiterDB, op.ThresholdDB)
			}

			return op, nil
		},
	})

	c.MustRegister(Entry{
		Kind:        KindVoiceEnhancement,
		ID:          IDVoiceEnhancement,
		Description: "pre-emphasis and 800-6000 Hz bandpass",
		Params: []ParamSpec{
			{Name: "alpha", Default: 0.3, Min: 0, Max: 1, OpenMax: true, Aliases: []string{"preemphasisAlpha"}},
			orderParam(2, "highPassFilter"),
		},
		Bind: func(p Params) (Operation, error) {
			return VoiceEnhancement{Alpha: p["alpha"], Order: int(p["order"])}, nil
		},
	})

	c.MustRegister(Entry{
		Kind:        KindDenoiseDelay,
		ID:          IDDenoiseDelay,
		Description: "Wiener denoise followed by a single echo",
		Params: []ParamSpec{
			{Name: "noise_db", Default: -15, Min: -120, Max: 0, Unit: "dB", Aliases: []string{"noisePower"}},
			{Name: "delay_ms", Type: Int, Default: 100, Min: 0, Max: 10000, Unit: "ms", Aliases: []string{"delay"}},
			{Name: "delay_gain_percent", Default: 50, Min: 0, Max: 100, Unit: "%", Aliases: []string{"delayGain"}},
		},
		Bind: func(p Params) (Operation, error) {
			return DenoiseDelay{
				NoiseDB:          p["noise_db"],
				DelayMS:          int(p["delay_ms"]),
				DelayGainPercent: p["delay_gain_percent"],
			}, nil
		},
	})

	c.MustRegister(Entry{
		Kind:        KindPhone,
		ID:          IDPhone,
		Description: "mono downmix band-limited to 800-12000 Hz",
		Params: []ParamSpec{
			{Name: "side_gain", Default: 0, Min: -10, Max: 10, Aliases: []string{"phoneSideGain"}},
			orderParam(1, "phoneFilterOrder"),
		},
		Bind: func(p Params) (Operation, error) {
			return Phone{SideGain: p["side_gain"], Order: int(p["order"])}, nil
		},
	})

	c.MustRegister(Entry{
		Kind:        KindCar,
		ID:          IDCar,
		Description: "mid/side widening with 10 kHz lowpass",
		Params: []ParamSpec{
			{Name: "side_gain_db", Default: 3, Min: -60, Max: 60, Unit: "dB", Aliases: []string{"carSideGain"}},
			orderParam(1, "carFilterOrder"),
		},
		Bind: func(p Params) (Operation, error) {
			return Car{SideGainDB: p["side_gain_db"], Order: int(p["order"])}, nil
		},
	})

	return c
}

func orderParam(def float64, alias string) ParamSpec {
	return ParamSpec{Name: "order", Type: Int, Default: def, Min: 1, Max: design.MaxOrder, Aliases: []string{alias}}
}

package effectchain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/cwbudde/algo-mms/fault"
)

func TestConfigureUnknownFilter(t *testing.T) {
	t.Parallel()

	cfg, err := Configure(DefaultCatalog(), []Spec{{ID: IDGainCompressor}, {ID: "fooBar"}})
	if !errors.Is(err, fault.ErrInvalidParameter) {
		t.Fatalf("err = %v, want InvalidParameter", err)
	}

	if cfg != nil {
		t.Fatal("Configure returned a config alongside an error")
	}
}

func TestConfigureDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Configure(nil, []Spec{
		{ID: IDGainCompressor},
		{ID: IDVoiceEnhancement},
		{ID: IDDenoiseDelay},
		{ID: IDPhone},
		{ID: IDCar},
	})
	if err != nil {
		t.Fatalf("Configure: %v", err)
	}

	want := []Operation{
		GainCompressor{ThresholdDB: -1, LimiterDB: 0},
		VoiceEnhancement{Alpha: 0.3, Order: 2},
		DenoiseDelay{NoiseDB: -15, DelayMS: 100, DelayGainPercent: 50},
		Phone{SideGain: 0, Order: 1},
		Car{SideGainDB: 3, Order: 1},
	}

	stages := cfg.Stages()
	if len(stages) != len(want) {
		t.Fatalf("stages = %d, want %d", len(stages), len(want))
	}

	for i, st := range stages {
		if st.Op != want[i] {
			t.Fatalf("stage %d: op = %#v, want %#v", i, st.Op, want[i])
		}
	}
}

func TestConfigureCoercesValues(t *testing.T) {
	t.Parallel()

	cfg, err := Configure(DefaultCatalog(), []Spec{
		{ID: IDGainCompressor, Params: map[string]any{"threshold_db": "-6", "limiter_db": json.Number("-0.5")}},
		{ID: IDVoiceEnhancement, Params: map[string]any{"alpha": float32(0.5), "order": 4.0}},
		{ID: IDDenoiseDelay, Params: map[string]any{"delay_ms": int64(250), "delay_gain_percent": 25}},
	})
	if err != nil {
		t.Fatalf("Configure: %v", err)
	}

	ops := cfg.Stages()
	if got := ops[0].Op.(GainCompressor); got.ThresholdDB != -6 || got.LimiterDB != -0.5 {
		t.Fatalf("gainCompressor = %+v", got)
	}

	if got := ops[1].Op.(VoiceEnhancement); got.Alpha != 0.5 || got.Order != 4 {
		t.Fatalf("voiceEnhancement = %+v", got)
	}

	if got := ops[2].Op.(DenoiseDelay); got.DelayMS != 250 || got.DelayGainPercent != 25 || got.NoiseDB != -15 {
		t.Fatalf("denoiseDelay = %+v", got)
	}
}

func TestConfigureAcceptsAliases(t *testing.T) {
	t.Parallel()

	cfg, err := Configure(DefaultCatalog(), []Spec{
		{ID: IDCar, Params: map[string]any{"carSideGain": "6", "carFilterOrder": "3"}},
		{ID: IDPhone, Params: map[string]any{"phoneSideGain": 0.5, "phoneFilterOrder": 2}},
		{ID: IDDenoiseDelay, Params: map[string]any{"noisePower": -20, "delay": 40, "delayGain": 10}},
	})
	if err != nil {
		t.Fatalf("Configure: %v", err)
	}

	ops := cfg.Stages()
	if got := ops[0].Op.(Car); got != (Car{SideGainDB: 6, Order: 3}) {
		t.Fatalf("car = %+v", got)
	}

	if got := ops[1].Op.(Phone); got != (Phone{SideGain: 0.5, Order: 2}) {
		t.Fatalf("phone = %+v", got)
	}

	if got := ops[2].Op.(DenoiseDelay); got != (DenoiseDelay{NoiseDB: -20, DelayMS: 40, DelayGainPercent: 10}) {
		t.Fatalf("denoiseDelay = %+v", got)
	}
}

func TestConfigurePhoneSideGainAboveOne(t *testing.T) {
	t.Parallel()

	cfg, err := Configure(DefaultCatalog(), []Spec{
		{ID: IDPhone, Params: map[string]any{"side_gain": 2}},
	})
	if err != nil {
		t.Fatalf("Configure: %v", err)
	}

	if got := cfg.Stages()[0].Op.(Phone); got.SideGain != 2 {
		t.Fatalf("side gain = %v, want 2", got.SideGain)
	}
}

func TestConfigureRejectsBadParameters(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		spec Spec
	}{
		{"not a number", Spec{ID: IDCar, Params: map[string]any{"side_gain_db": "loud"}}},
		{"unsupported type", Spec{ID: IDCar, Params: map[string]any{"side_gain_db": true}}},
		{"fractional order", Spec{ID: IDPhone, Params: map[string]any{"order": 1.5}}},
		{"order zero", Spec{ID: IDPhone, Params: map[string]any{"order": 0}}},
		{"order too high", Spec{ID: IDCar, Params: map[string]any{"order": 17}}},
		{"alpha at one", Spec{ID: IDVoiceEnhancement, Params: map[string]any{"alpha": 1}}},
		{"negative delay", Spec{ID: IDDenoiseDelay, Params: map[string]any{"delay_ms": -5}}},
		{"unknown parameter", Spec{ID: IDGainCompressor, Params: map[string]any{"ratio": 4}}},
		{"alias and name", Spec{ID: IDCar, Params: map[string]any{"order": 1, "carFilterOrder": 2}}},
		{"limiter below threshold", Spec{ID: IDGainCompressor, Params: map[string]any{"threshold_db": -1, "limiter_db": -3}}},
		{"side gain out of range", Spec{ID: IDPhone, Params: map[string]any{"side_gain": 11}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := Configure(DefaultCatalog(), []Spec{tc.spec})
			if !errors.Is(err, fault.ErrInvalidParameter) {
				t.Fatalf("err = %v, want InvalidParameter", err)
			}

			if cfg != nil {
				t.Fatal("config returned on error")
			}
		})
	}
}

func TestConfigureCopiesSpecs(t *testing.T) {
	t.Parallel()

	params := map[string]any{"order": 2}

	cfg, err := Configure(DefaultCatalog(), []Spec{{ID: IDCar, Params: params}})
	if err != nil {
		t.Fatalf("Configure: %v", err)
	}

	params["order"] = 9

	if got := cfg.Stages()[0].Spec.Params["order"]; got != 2 {
		t.Fatalf("stored spec changed to %v", got)
	}

	if ids := cfg.IDs(); len(ids) != 1 || ids[0] != IDCar {
		t.Fatalf("IDs() = %v", ids)
	}
}

func TestConfigureEmpty(t *testing.T) {
	t.Parallel()

	cfg, err := Configure(DefaultCatalog(), nil)
	if err != nil {
		t.Fatalf("Configure: %v", err)
	}

	if cfg.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", cfg.Len())
	}

	var none *Config
	if none.Len() != 0 || none.Stages() != nil {
		t.Fatal("nil config should behave as empty")
	}
}

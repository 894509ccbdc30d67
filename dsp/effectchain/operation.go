package effectchain

import (
	"github.com/cwbudde/algo-mms/dsp/buffer"
	"github.com/cwbudde/algo-mms/dsp/effects"
)

// Operation is a bound filter invocation. Implementations are immutable
// value types, one per Kind.
type Operation interface {
	Kind() Kind
	Apply(in *buffer.Buffer) (*buffer.Buffer, error)
}

// GainCompressor is the bound form of gainCompressor.
type GainCompressor struct {
	ThresholdDB float64
	LimiterDB   float64
}

func (GainCompressor) Kind() Kind { return KindGainCompressor }

func (o GainCompressor) Apply(in *buffer.Buffer) (*buffer.Buffer, error) {
	return effects.GainCompress(in, o.ThresholdDB, o.LimiterDB)
}

// VoiceEnhancement is the bound form of voiceEnhancement.
type VoiceEnhancement struct {
	Alpha float64
	Order int
}

func (VoiceEnhancement) Kind() Kind { return KindVoiceEnhancement }

func (o VoiceEnhancement) Apply(in *buffer.Buffer) (*buffer.Buffer, error) {
	return effects.VoiceEnhancement(in, o.Alpha, o.Order)
}

// DenoiseDelay is the bound form of denoiseDelay. NoiseDB is validated and
// kept for round-tripping but does not influence processing.
type DenoiseDelay struct {
	NoiseDB          float64
	DelayMS          int
	DelayGainPercent float64
}

func (DenoiseDelay) Kind() Kind { return KindDenoiseDelay }

func (o DenoiseDelay) Apply(in *buffer.Buffer) (*buffer.Buffer, error) {
	return effects.DenoiseDelay(in, float64(o.DelayMS), o.DelayGainPercent)
}

// Phone is the bound form of phone.
type Phone struct {
	SideGain float64
	Order    int
}

func (Phone) Kind() Kind { return KindPhone }

func (o Phone) Apply(in *buffer.Buffer) (*buffer.Buffer, error) {
	return effects.PhoneFilter(in, o.SideGain, o.Order)
}

// Car is the bound form of car.
type Car struct {
	SideGainDB float64
	Order      int
}

func (Car) Kind() Kind { return KindCar }

func (o Car) Apply(in *buffer.Buffer) (*buffer.Buffer, error) {
	return effects.CarFilter(in, o.SideGainDB, o.Order)
}

package effectchain

import "fmt"

// Kind enumerates the closed set of filter operations.
type Kind int

const (
	KindGainCompressor Kind = iota + 1
	KindVoiceEnhancement
	KindDenoiseDelay
	KindPhone
	KindCar
)

// Identifiers accepted by the default catalog.
const (
	IDGainCompressor   = "gainCompressor"
	IDVoiceEnhancement = "voiceEnhancement"
	IDDenoiseDelay     = "denoiseDelay"
	IDPhone            = "phone"
	IDCar              = "car"
)

// ID returns the catalog identifier of k.
func (k Kind) ID() string {
	switch k {
	case KindGainCompressor:
		return IDGainCompressor
	case KindVoiceEnhancement:
		return IDVoiceEnhancement
	case KindDenoiseDelay:
		return IDDenoiseDelay
	case KindPhone:
		return IDPhone
	case KindCar:
		return IDCar
	default:
		return ""
	}
}

func (k Kind) String() string {
	if id := k.ID(); id != "" {
		return id
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

package effects

import (
	"github.com/cwbudde/algo-mms/dsp/buffer"
	"github.com/cwbudde/algo-mms/dsp/filter/design"
)

// Voice band edges in Hz.
const (
	VoiceLowHz  = 800.0
	VoiceHighHz = 6000.0
)

// VoiceEnhancement applies PreEmphasis with alpha and then a Butterworth
// bandpass between VoiceLowHz and VoiceHighHz of the given order.
//
// The filter is designed before any sample is processed, so cutoff errors
// at low sample rates surface without touching the input.
func VoiceEnhancement(in *buffer.Buffer, alpha float64, order int) (*buffer.Buffer, error) {
	bp, err := design.Butterworth(float64(in.SampleRate()), VoiceLowHz, VoiceHighHz, order, design.Bandpass)
	if err != nil {
		return nil, err
	}

	emphasized, err := PreEmphasis(in, alpha)
	if err != nil {
		return nil, err
	}

	return filterChannels(emphasized, bp), nil
}

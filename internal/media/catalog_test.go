package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeListsVideoThenAudio(t *testing.T) {
	infos := Describe(nil)
	require.Len(t, infos, 9)

	var ids []string
	for _, f := range infos {
		ids = append(ids, f.ID)
	}

	assert.Equal(t, []string{
		"grayscale", "colorinvert", "frameInterpolate", "upscale",
		"gainCompressor", "voiceEnhancement", "denoiseDelay", "phone", "car",
	}, ids)
	assert.Equal(t, DomainVideo, infos[0].Domain)
	assert.Equal(t, DomainAudio, infos[4].Domain)

	assert.Empty(t, infos[0].Params)
	assert.NotNil(t, infos[0].Params)

	voice := infos[5]
	require.Len(t, voice.Params, 2)
	assert.Equal(t, "alpha", voice.Params[0].Name)
	assert.True(t, voice.Params[0].OpenMax)
	assert.Equal(t, "int", voice.Params[1].Type)
}

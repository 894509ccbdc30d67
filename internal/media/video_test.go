package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-mms/dsp/effectchain"
	"github.com/cwbudde/algo-mms/fault"
)

func TestVideoGraphs(t *testing.T) {
	tests := []struct {
		spec effectchain.Spec
		want []string
	}{
		{effectchain.Spec{ID: VideoGrayscale}, []string{"format=gray"}},
		{effectchain.Spec{ID: VideoColorInvert}, []string{"negate"}},
		{effectchain.Spec{ID: VideoFrameInterpolate}, []string{"minterpolate=fps=60:mi_mode=blend", "fps=60"}},
		{
			effectchain.Spec{ID: VideoFrameInterpolate, Params: map[string]any{"frameInterpolateTargetFps": "30"}},
			[]string{"minterpolate=fps=30:mi_mode=blend", "fps=30"},
		},
		{effectchain.Spec{ID: VideoUpscale}, []string{"scale=1280:720:flags=lanczos"}},
		{
			effectchain.Spec{ID: VideoUpscale, Params: map[string]any{"upscaleTargetWidth": 1920, "height": 1080.0}},
			[]string{"scale=1920:1080:flags=lanczos"},
		},
	}

	for _, tt := range tests {
		stage, err := BindVideo(tt.spec)
		require.NoError(t, err)
		assert.Equal(t, tt.want, stage.GraphCandidates())
	}
}

func TestBindVideoErrors(t *testing.T) {
	_, err := BindVideo(effectchain.Spec{ID: "sepia"})
	assert.Error(t, err)

	_, err = BindVideo(effectchain.Spec{ID: VideoFrameInterpolate, Params: map[string]any{"fps": 0}})
	assert.ErrorIs(t, err, fault.ErrInvalidParameter)

	_, err = BindVideo(effectchain.Spec{ID: VideoUpscale, Params: map[string]any{"width": "wide"}})
	assert.ErrorIs(t, err, fault.ErrInvalidParameter)
}

func TestVideoFiltersListing(t *testing.T) {
	ids := make([]string, 0)
	for _, f := range VideoFilters() {
		ids = append(ids, f.ID)
	}

	assert.Equal(t, []string{VideoGrayscale, VideoColorInvert, VideoFrameInterpolate, VideoUpscale}, ids)
}

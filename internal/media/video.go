package media

import (
	"fmt"

	"github.com/cwbudde/algo-mms/dsp/effectchain"
)

// Video filter identifiers.
const (
	VideoGrayscale        = "grayscale"
	VideoColorInvert      = "colorinvert"
	VideoFrameInterpolate = "frameInterpolate"
	VideoUpscale          = "upscale"
)

// VideoFilter describes one ffmpeg-backed video stage.
type VideoFilter struct {
	ID          string
	Description string
	Params      []effectchain.ParamSpec
	// Graphs returns the -vf filter graph to try, followed by fallbacks
	// tried in order when ffmpeg rejects the previous one.
	Graphs func(p effectchain.Params) []string
}

// VideoStage is a video filter bound to its parameters.
type VideoStage struct {
	Spec   effectchain.Spec
	Filter VideoFilter
	Params effectchain.Params
}

// GraphCandidates returns the filter graphs of the stage.
func (s VideoStage) GraphCandidates() []string {
	return s.Filter.Graphs(s.Params)
}

var videoFilters = []VideoFilter{
	{
		ID:          VideoGrayscale,
		Description: "convert frames to grayscale",
		Graphs:      func(effectchain.Params) []string { return []string{"format=gray"} },
	},
	{
		ID:          VideoColorInvert,
		Description: "invert colours",
		Graphs:      func(effectchain.Params) []string { return []string{"negate"} },
	},
	{
		ID:          VideoFrameInterpolate,
		Description: "motion-interpolate to a higher frame rate",
		Params: []effectchain.ParamSpec{
			{Name: "fps", Type: effectchain.Int, Default: 60, Min: 1, Max: 240, Unit: "fps", Aliases: []string{"frameInterpolateTargetFps"}},
		},
		Graphs: func(p effectchain.Params) []string {
			fps := p.Int("fps", 60)

			return []string{
				fmt.Sprintf("minterpolate=fps=%d:mi_mode=blend", fps),
				fmt.Sprintf("fps=%d", fps),
			}
		},
	},
	{
		ID:          VideoUpscale,
		Description: "resize with the lanczos scaler",
		Params: []effectchain.ParamSpec{
			{Name: "width", Type: effectchain.Int, Default: 1280, Min: 16, Max: 7680, Unit: "px", Aliases: []string{"upscaleTargetWidth"}},
			{Name: "height", Type: effectchain.Int, Default: 720, Min: 16, Max: 4320, Unit: "px", Aliases: []string{"upscaleTargetHeight"}},
		},
		Graphs: func(p effectchain.Params) []string {
			return []string{fmt.Sprintf("scale=%d:%d:flags=lanczos", p.Int("width", 1280), p.Int("height", 720))}
		},
	},
}

// VideoFilters returns the built-in video filters.
func VideoFilters() []VideoFilter {
	return append([]VideoFilter(nil), videoFilters...)
}

// LookupVideoFilter returns the video filter named id.
func LookupVideoFilter(id string) (VideoFilter, bool) {
	for _, f := range videoFilters {
		if f.ID == id {
			return f, true
		}
	}

	return VideoFilter{}, false
}

// BindVideo validates spec against the video catalog.
func BindVideo(spec effectchain.Spec) (VideoStage, error) {
	f, ok := LookupVideoFilter(spec.ID)
	if !ok {
		return VideoStage{}, fmt.Errorf("media: unknown video filter %q", spec.ID)
	}

	params, err := effectchain.BindParams(f.ID, f.Params, spec.Params)
	if err != nil {
		return VideoStage{}, err
	}

	return VideoStage{Spec: spec.Clone(), Filter: f, Params: params}, nil
}

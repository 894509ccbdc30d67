package media

import "github.com/cwbudde/algo-mms/dsp/effectchain"

// Filter domains reported by Describe.
const (
	DomainVideo = "video"
	DomainAudio = "audio"
)

// ParamInfo is the listing form of a filter parameter.
type ParamInfo struct {
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Default float64  `json:"default"`
	Min     float64  `json:"min"`
	Max     float64  `json:"max"`
	OpenMax bool     `json:"open_max,omitempty"`
	Unit    string   `json:"unit,omitempty"`
	Aliases []string `json:"aliases,omitempty"`
}

// FilterInfo is the listing form of a filter.
type FilterInfo struct {
	ID          string      `json:"id"`
	Domain      string      `json:"domain"`
	Description string      `json:"description"`
	Params      []ParamInfo `json:"params"`
}

// Describe lists the video filters followed by the audio filters of catalog.
// A nil catalog lists the default one.
func Describe(catalog *effectchain.Catalog) []FilterInfo {
	if catalog == nil {
		catalog = effectchain.DefaultCatalog()
	}

	var out []FilterInfo

	for _, f := range videoFilters {
		out = append(out, FilterInfo{ID: f.ID, Domain: DomainVideo, Description: f.Description, Params: paramInfos(f.Params)})
	}

	for _, e := range catalog.Entries() {
		out = append(out, FilterInfo{ID: e.ID, Domain: DomainAudio, Description: e.Description, Params: paramInfos(e.Params)})
	}

	return out
}

func paramInfos(schema []effectchain.ParamSpec) []ParamInfo {
	out := make([]ParamInfo, 0, len(schema))
	for _, p := range schema {
		out = append(out, ParamInfo{
			Name:    p.Name,
			Type:    p.Type.String(),
			Default: p.Default,
			Min:     p.Min,
			Max:     p.Max,
			OpenMax: p.OpenMax,
			Unit:    p.Unit,
			Aliases: append([]string(nil), p.Aliases...),
		})
	}

	return out
}

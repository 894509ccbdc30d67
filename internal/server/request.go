package server

import "github.com/cwbudde/algo-mms/dsp/effectchain"

// prop is one name/value pair as sent by the browser form. Values arrive
// as JSON numbers or strings.
type prop struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

type filterConfig struct {
	Name  string `json:"name"`
	Props []prop `json:"props"`
}

type filterList struct {
	Filters []filterConfig `json:"filters"`
}

func (l filterList) specs() []effectchain.Spec {
	specs := make([]effectchain.Spec, 0, len(l.Filters))
	for _, f := range l.Filters {
		spec := effectchain.Spec{ID: f.Name}
		if len(f.Props) > 0 {
			spec.Params = make(map[string]any, len(f.Props))
			for _, p := range f.Props {
				spec.Params[p.Name] = p.Value
			}
		}

		specs = append(specs, spec)
	}

	return specs
}

package effectchain

import (
	"strings"

	"github.com/cwbudde/algo-mms/fault"
)

const opParseSpec = "effectchain.parse"

// Spec names a catalog filter and its raw parameter values. Omitted
// parameters take their schema defaults.
type Spec struct {
	ID     string         `json:"name"`
	Params map[string]any `json:"params,omitempty"`
}

// Clone returns a copy of s that shares no map with it.
func (s Spec) Clone() Spec {
	out := Spec{ID: s.ID}
	if s.Params != nil {
		out.Params = make(map[string]any, len(s.Params))
		for k, v := range s.Params {
			out.Params[k] = v
		}
	}

	return out
}

// ParseSpec parses the compact form "id" or "id:key=value,key=value" used
// by the command line and config files. Values stay strings and are
// coerced during Configure.
func ParseSpec(s string) (Spec, error) {
	s = strings.TrimSpace(s)

	id, rest, hasParams := strings.Cut(s, ":")
	id = strings.TrimSpace(id)

	if id == "" {
		return Spec{}, fault.InvalidParameter(opParseSpec, "missing filter id in %q", s)
	}

	spec := Spec{ID: id}
	if !hasParams || strings.TrimSpace(rest) == "" {
		return spec, nil
	}

	spec.Params = make(map[string]any)

	for _, pair := range strings.Split(rest, ",") {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)

		if !ok || key == "" {
			return Spec{}, fault.InvalidParameter(opParseSpec, "%s: malformed parameter %q, want key=value", id, pair)
		}

		spec.Params[key] = strings.TrimSpace(value)
	}

	return spec, nil
}

// ParseSpecs parses every element of list with ParseSpec.
func ParseSpecs(list []string) ([]Spec, error) {
	out := make([]Spec, 0, len(list))

	for _, s := range list {
		spec, err := ParseSpec(s)
		if err != nil {
			return nil, err
		}

		out = append(out, spec)
	}

	return out, nil
}

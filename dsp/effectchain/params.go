package effectchain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-mms/fault"
)

// ParamType is the value type of a filter parameter.
type ParamType int

const (
	Float ParamType = iota
	Int
)

func (t ParamType) String() string {
	if t == Int {
		return "int"
	}

	return "float"
}

// ParamSpec describes one parameter of a catalog entry.
type ParamSpec struct {
	Name    string
	Type    ParamType
	Default float64
	// Min and Max bound the value inclusively. OpenMax makes Max exclusive.
	Min, Max float64
	OpenMax  bool
	// Aliases are alternative names accepted on input, such as legacy form
	// field names.
	Aliases []string
	Unit    string
}

// Matches reports whether name refers to p, by canonical name or alias.
func (p ParamSpec) Matches(name string) bool {
	if name == p.Name {
		return true
	}

	for _, a := range p.Aliases {
		if name == a {
			return true
		}
	}

	return false
}

func (p ParamSpec) check(op string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fault.InvalidParameter(op, "%s must be finite, got %v", p.Name, v)
	}

	if p.Type == Int && v != math.Trunc(v) {
		return fault.InvalidParameter(op, "%s must be an integer, got %v", p.Name, v)
	}

	if v < p.Min || v > p.Max || (p.OpenMax && v == p.Max) {
		closing := "]"
		if p.OpenMax {
			closing = ")"
		}

		return fault.InvalidParameter(op, "%s must be in [%g, %g%s, got %g", p.Name, p.Min, p.Max, closing, v)
	}

	return nil
}

// Params holds bound parameter values keyed by canonical name.
type Params map[string]float64

// Num returns the value of key, or def when it is missing.
func (p Params) Num(key string, def float64) float64 {
	v, ok := p[key]
	if !ok {
		return def
	}

	return v
}

// Int returns the value of key as an int, or def when it is missing.
func (p Params) Int(key string, def int) int {
	v, ok := p[key]
	if !ok {
		return def
	}

	return int(v)
}

// coerce converts a raw value to float64. JSON numbers arrive as float64,
// form and CLI values as strings.
func coerce(op, name string, raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, fault.InvalidParameter(op, "%s: %q is not a number", name, v.String())
		}

		return f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fault.InvalidParameter(op, "%s: %q is not a number", name, v)
		}

		return f, nil
	default:
		return 0, fault.InvalidParameter(op, "%s: unsupported value type %T", name, raw)
	}
}

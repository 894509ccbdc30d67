package effectchain

import (
	"sort"

	"github.com/cwbudde/algo-mms/fault"
)

const opConfigure = "effectchain.configure"

// Stage is one configured position of a chain.
type Stage struct {
	Spec   Spec
	Params Params
	Op     Operation
}

// Config is an ordered, validated list of stages. It is immutable once
// returned by Configure.
type Config struct {
	stages []Stage
}

// Configure resolves specs against catalog. Every identifier must exist and
// every parameter must bind; the first problem is reported as
// fault.KindInvalidParameter and no Config is returned.
func Configure(catalog *Catalog, specs []Spec) (*Config, error) {
	if catalog == nil {
		catalog = DefaultCatalog()
	}

	stages := make([]Stage, 0, len(specs))

	for i, spec := range specs {
		entry, ok := catalog.Lookup(spec.ID)
		if !ok {
			return nil, fault.InvalidParameter(opConfigure, "stage %d: unknown filter %q", i, spec.ID)
		}

		params, err := BindParams(entry.ID, entry.Params, spec.Params)
		if err != nil {
			return nil, fault.Wrap(fault.KindInvalidParameter, opConfigure, err)
		}

		op, err := entry.Bind(params)
		if err != nil {
			return nil, fault.Wrap(fault.KindInvalidParameter, opConfigure, err)
		}

		stages = append(stages, Stage{Spec: spec.Clone(), Params: params, Op: op})
	}

	return &Config{stages: stages}, nil
}

// Len returns the number of stages.
func (c *Config) Len() int {
	if c == nil {
		return 0
	}

	return len(c.stages)
}

// Stages returns a copy of the configured stages.
func (c *Config) Stages() []Stage {
	if c == nil {
		return nil
	}

	return append([]Stage(nil), c.stages...)
}

// IDs returns the filter identifier of every stage in order.
func (c *Config) IDs() []string {
	out := make([]string, 0, c.Len())
	for _, s := range c.Stages() {
		out = append(out, s.Spec.ID)
	}

	return out
}

// BindParams resolves raw values against schema: names and aliases are
// mapped to canonical names, values are coerced and range-checked, and
// omitted parameters take their defaults. owner prefixes error messages.
func BindParams(owner string, schema []ParamSpec, raw map[string]any) (Params, error) {
	params := defaults(schema)
	seen := make(map[string]string, len(raw))

	// Sorted so the reported error does not depend on map order.
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		ps, ok := lookupParam(schema, name)
		if !ok {
			return nil, fault.InvalidParameter(owner, "unknown parameter %q", name)
		}

		if prev, dup := seen[ps.Name]; dup {
			return nil, fault.InvalidParameter(owner, "parameter %q given twice (as %q and %q)", ps.Name, prev, name)
		}

		seen[ps.Name] = name

		v, err := coerce(owner, ps.Name, raw[name])
		if err != nil {
			return nil, err
		}

		err = ps.check(owner, v)
		if err != nil {
			return nil, err
		}

		params[ps.Name] = v
	}

	return params, nil
}

package effectchain

import (
	"errors"
	"fmt"
	"sync"
)

// Binder turns validated parameters into an Operation. It may reject
// combinations that individual bounds cannot express.
type Binder func(p Params) (Operation, error)

// Entry describes one filter of a catalog.
type Entry struct {
	Kind        Kind
	ID          string
	Description string
	Params      []ParamSpec
	Bind        Binder
}

// Param returns the schema entry matching name or one of its aliases.
func (e Entry) Param(name string) (ParamSpec, bool) {
	return lookupParam(e.Params, name)
}

// Defaults returns the default value of every parameter.
func (e Entry) Defaults() Params {
	return defaults(e.Params)
}

func lookupParam(schema []ParamSpec, name string) (ParamSpec, bool) {
	for _, p := range schema {
		if p.Matches(name) {
			return p, true
		}
	}

	return ParamSpec{}, false
}

func defaults(schema []ParamSpec) Params {
	out := make(Params, len(schema))
	for _, p := range schema {
		out[p.Name] = p.Default
	}

	return out
}

// Catalog maps filter identifiers to entries. It is safe for concurrent use.
type Catalog struct {
	mu      sync.RWMutex
	entries map[string]Entry
	order   []string
}

var errDuplicateFilter = errors.New("duplicate filter id")

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{entries: make(map[string]Entry)}
}

// Register adds e under e.ID.
func (c *Catalog) Register(e Entry) error {
	if e.ID == "" {
		return errors.New("empty filter id")
	}

	if e.Bind == nil {
		return fmt.Errorf("nil binder for %s", e.ID)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[e.ID]; exists {
		return fmt.Errorf("%w: %s", errDuplicateFilter, e.ID)
	}

	c.entries[e.ID] = e
	c.order = append(c.order, e.ID)

	return nil
}

// MustRegister is like Register but panics on error.
func (c *Catalog) MustRegister(e Entry) {
	err := c.Register(e)
	if err != nil {
		panic("effectchain catalog: " + err.Error())
	}
}

// Lookup returns the entry registered under id.
func (c *Catalog) Lookup(id string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[id]

	return e, ok
}

// Entries returns all entries in registration order.
func (c *Catalog) Entries() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Entry, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.entries[id])
	}

	return out
}

// IDs returns the registered identifiers in registration order.
func (c *Catalog) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return append([]string(nil), c.order...)
}

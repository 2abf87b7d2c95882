package facets

import (
	"fmt"

	"planillas/app/record"
)

// OptionOrder controls how a facet's option list is ordered
type OptionOrder int

const (
	OrderAscending OptionOrder = iota
	OrderDescending
)

// Definition declares one facet: a named multi-select filter over a field
type Definition struct {
	Key   string
	Field int
	Label string
	Order OptionOrder
}

// UnknownFacetError is returned when a facet key is not registered. It is a
// programmer error; user actions can only name registered facets.
type UnknownFacetError struct {
	Key string
}

func (e *UnknownFacetError) Error() string {
	return fmt.Sprintf("unknown facet %q", e.Key)
}

// Registry is the static list of facets of a dashboard variant
type Registry struct {
	defs  []Definition
	byKey map[string]int
}

// NewRegistry validates and freezes a list of facet definitions
func NewRegistry(defs ...Definition) (*Registry, error) {
	r := &Registry{
		defs:  make([]Definition, 0, len(defs)),
		byKey: make(map[string]int, len(defs)),
	}
	for _, d := range defs {
		if d.Key == "" {
			return nil, fmt.Errorf("facet definition without key (field %d)", d.Field)
		}
		if _, dup := r.byKey[d.Key]; dup {
			return nil, fmt.Errorf("duplicate facet key %q", d.Key)
		}
		if !record.ValidField(d.Field) {
			return nil, fmt.Errorf("facet %q: field index %d is not part of the row layout", d.Key, d.Field)
		}
		if d.Label == "" {
			d.Label = d.Key
		}
		r.byKey[d.Key] = len(r.defs)
		r.defs = append(r.defs, d)
	}
	return r, nil
}

// All returns the definitions in declaration order
func (r *Registry) All() []Definition {
	out := make([]Definition, len(r.defs))
	copy(out, r.defs)
	return out
}

// Len returns the number of facets
func (r *Registry) Len() int { return len(r.defs) }

// Lookup returns the definition for key
func (r *Registry) Lookup(key string) (Definition, bool) {
	i, ok := r.byKey[key]
	if !ok {
		return Definition{}, false
	}
	return r.defs[i], true
}

// FieldIndexOf returns the row field a facet filters on
func (r *Registry) FieldIndexOf(key string) (int, error) {
	d, ok := r.Lookup(key)
	if !ok {
		return -1, &UnknownFacetError{Key: key}
	}
	return d.Field, nil
}

// MustFieldIndexOf is FieldIndexOf for keys known at compile time
func (r *Registry) MustFieldIndexOf(key string) int {
	idx, err := r.FieldIndexOf(key)
	if err != nil {
		panic(err)
	}
	return idx
}

func (r *Registry) position(key string) int {
	i, ok := r.byKey[key]
	if !ok {
		return -1
	}
	return i
}

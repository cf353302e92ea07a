// Package param holds the user-adjustable inputs of a simulation.
//
// A [Store] keeps every value inside its declared range: writes outside the
// range are clamped rather than rejected. Each write bumps a per-name
// revision so owners can notice variant switches without comparing floats.
package param

import (
	"fmt"

	"github.com/san-kum/chemlab/internal/dynamo"
)

// Parameter describes one bounded input.
type Parameter struct {
	Name  string  `json:"name" yaml:"name"`
	Min   float64 `json:"min" yaml:"min"`
	Max   float64 `json:"max" yaml:"max"`
	Step  float64 `json:"step" yaml:"step"`
	Value float64 `json:"value" yaml:"value"`
	Unit  string  `json:"unit,omitempty" yaml:"unit,omitempty"`
}

func (p Parameter) Clamp(v float64) float64 {
	if v < p.Min {
		return p.Min
	}
	if v > p.Max {
		return p.Max
	}
	return v
}

type entry struct {
	Parameter
	initial  float64
	revision uint64
}

// Store is not safe for concurrent use; the owning session serializes access.
type Store struct {
	entries map[string]*entry
	order   []string
}

func NewStore(params ...Parameter) *Store {
	s := &Store{entries: make(map[string]*entry, len(params))}
	for _, p := range params {
		if p.Max < p.Min {
			p.Min, p.Max = p.Max, p.Min
		}
		p.Value = p.Clamp(p.Value)
		if _, dup := s.entries[p.Name]; !dup {
			s.order = append(s.order, p.Name)
		}
		s.entries[p.Name] = &entry{Parameter: p, initial: p.Value}
	}
	return s
}

// Get returns the current value, or zero if the name is unknown.
func (s *Store) Get(name string) float64 {
	if e, ok := s.entries[name]; ok {
		return e.Value
	}
	return 0
}

// Int returns the current value rounded towards zero, for selector parameters.
func (s *Store) Int(name string) int {
	return int(s.Get(name))
}

// Flag reports whether a toggle parameter is set.
func (s *Store) Flag(name string) bool {
	return s.Get(name) >= 0.5
}

func (s *Store) Lookup(name string) (Parameter, bool) {
	e, ok := s.entries[name]
	if !ok {
		return Parameter{}, false
	}
	return e.Parameter, true
}

// Set clamps v into range and stores it, returning the stored value.
func (s *Store) Set(name string, v float64) (float64, error) {
	e, ok := s.entries[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", dynamo.ErrUnknownParameter, name)
	}
	v = e.Clamp(v)
	if v != e.Value {
		e.Value = v
		e.revision++
	}
	return v, nil
}

// Revision counts the value changes made to name since construction.
func (s *Store) Revision(name string) uint64 {
	if e, ok := s.entries[name]; ok {
		return e.revision
	}
	return 0
}

// Names returns parameter names in declaration order.
func (s *Store) Names() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

func (s *Store) Params() []Parameter {
	out := make([]Parameter, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.entries[name].Parameter)
	}
	return out
}

func (s *Store) Values() map[string]float64 {
	out := make(map[string]float64, len(s.entries))
	for name, e := range s.entries {
		out[name] = e.Value
	}
	return out
}

// Restore puts every parameter back to its construction value.
func (s *Store) Restore() {
	for _, e := range s.entries {
		if e.Value != e.initial {
			e.Value = e.initial
			e.revision++
		}
	}
}

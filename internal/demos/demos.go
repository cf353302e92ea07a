// Package demos implements one sim.Simulation per demonstration kind.
//
// Every demo keeps its inputs in a param.Store and derives its outputs from
// the shared chem, particles, projection and steps packages. Selector
// parameters hold an index into a fixed catalogue; switching the selected
// variant is noticed on the next tick through the store's revision counter
// and restarts the variant.
package demos

import (
	"github.com/san-kum/chemlab/internal/param"
)

// revisions detects writes to a set of parameters between ticks.
type revisions struct {
	store *param.Store
	names []string
	seen  []uint64
}

func watch(store *param.Store, names ...string) *revisions {
	r := &revisions{store: store, names: names, seen: make([]uint64, len(names))}
	r.sync()
	return r
}

// changed reports whether any watched parameter was written since the last
// call and marks the current revisions as seen.
func (r *revisions) changed() bool {
	changed := false
	for i, name := range r.names {
		if rev := r.store.Revision(name); rev != r.seen[i] {
			r.seen[i] = rev
			changed = true
		}
	}
	return changed
}

func (r *revisions) sync() {
	for i, name := range r.names {
		r.seen[i] = r.store.Revision(name)
	}
}

func selector(name string, n, value int) param.Parameter {
	return param.Parameter{Name: name, Min: 0, Max: float64(n - 1), Step: 1, Value: float64(value)}
}

func toggle(name string, on bool) param.Parameter {
	p := param.Parameter{Name: name, Min: 0, Max: 1, Step: 1}
	if on {
		p.Value = 1
	}
	return p
}

// pick indexes a catalogue, clamping out-of-range selectors.
func pick[T any](table []T, i int) T {
	if i < 0 {
		i = 0
	}
	if i >= len(table) {
		i = len(table) - 1
	}
	return table[i]
}

package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/chemlab/internal/demos"
	"github.com/san-kum/chemlab/internal/dynamo"
	"github.com/san-kum/chemlab/internal/metrics"
	"github.com/san-kum/chemlab/internal/sim"
)

// Factory builds a fresh simulation. Particle demos draw their randomness
// from seed; the others ignore it.
type Factory func(seed int64) sim.Simulation

// Registry maps topic ids to simulation kinds and kinds to factories.
type Registry struct {
	kinds  map[dynamo.Kind]Factory
	topics map[string]dynamo.Kind
}

func NewRegistry() *Registry {
	r := &Registry{
		kinds:  make(map[dynamo.Kind]Factory),
		topics: make(map[string]dynamo.Kind),
	}

	r.Register(dynamo.KindPlaceholder, func(int64) sim.Simulation { return demos.NewPlaceholder() })
	r.Register(dynamo.KindEquilibrium, func(int64) sim.Simulation { return demos.NewEquilibrium() })
	r.Register(dynamo.KindTitration, func(int64) sim.Simulation { return demos.NewTitration() })
	r.Register(dynamo.KindDispersion, func(seed int64) sim.Simulation { return demos.NewDispersion(seed) })
	r.Register(dynamo.KindMatter, func(seed int64) sim.Simulation { return demos.NewMatter(seed) })
	r.Register(dynamo.KindRedox, func(int64) sim.Simulation { return demos.NewRedox() })
	r.Register(dynamo.KindGalvanic, func(int64) sim.Simulation { return demos.NewGalvanic() })
	r.Register(dynamo.KindVSEPR, func(int64) sim.Simulation { return demos.NewVSEPR() })
	r.Register(dynamo.KindHybridization, func(int64) sim.Simulation { return demos.NewHybridization() })
	r.Register(dynamo.KindIonic, func(int64) sim.Simulation { return demos.NewIonic() })
	r.Register(dynamo.KindAtom, func(int64) sim.Simulation { return demos.NewAtom() })
	r.Register(dynamo.KindBenzene, func(int64) sim.Simulation { return demos.NewBenzene() })
	r.Register(dynamo.KindCovalent, func(int64) sim.Simulation { return demos.NewCovalent() })

	r.Alias(dynamo.KindAtom, "atom-structure", "periodic-table", "periodic-law")
	r.Alias(dynamo.KindIonic, "ionic-bond", "ionic-reaction")
	r.Alias(dynamo.KindCovalent, "covalent-bond", "metallic-bond", "intermolecular-force")
	r.Alias(dynamo.KindGalvanic, "galvanic-cell", "electrolysis", "metal-corrosion")
	r.Alias(dynamo.KindEquilibrium, "chemical-equilibrium", "reaction-rate-factors", "equilibrium-calculation")
	r.Alias(dynamo.KindTitration, "titration", "water-ionization", "salt-hydrolysis")
	r.Alias(dynamo.KindBenzene, "benzene", "alkane", "alkene", "alkyne")
	r.Alias(dynamo.KindMatter, "matter-types")
	r.Alias(dynamo.KindDispersion, "dispersion-system")
	r.Alias(dynamo.KindRedox, "redox-reaction")
	r.Alias(dynamo.KindVSEPR, "vsepr")
	r.Alias(dynamo.KindHybridization, "hybridization")

	return r
}

func (r *Registry) Register(kind dynamo.Kind, fn Factory) {
	r.kinds[kind] = fn
}

// Alias points topics at kind.
func (r *Registry) Alias(kind dynamo.Kind, topics ...string) {
	for _, t := range topics {
		r.topics[t] = kind
	}
}

// KindFor resolves a topic. Unknown topics, and bare kind names, are
// accepted: the former map to the placeholder.
func (r *Registry) KindFor(topic string) dynamo.Kind {
	if k, ok := r.topics[topic]; ok {
		return k
	}
	if _, ok := r.kinds[dynamo.Kind(topic)]; ok {
		return dynamo.Kind(topic)
	}
	return dynamo.KindPlaceholder
}

// New builds the simulation for topic. It never fails.
func (r *Registry) New(topic string, seed int64) sim.Simulation {
	s, err := r.NewKind(r.KindFor(topic), seed)
	if err != nil {
		return demos.NewPlaceholder()
	}
	return s
}

func (r *Registry) NewKind(kind dynamo.Kind, seed int64) (sim.Simulation, error) {
	fn, ok := r.kinds[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", dynamo.ErrUnknownKind, kind)
	}
	return fn(seed), nil
}

// SessionFactory adapts the registry for sim.Manager.
func (r *Registry) SessionFactory(seed int64) sim.Factory {
	return func(topic string) sim.Simulation { return r.New(topic, seed) }
}

func (r *Registry) Topics() []string {
	names := make([]string, 0, len(r.topics))
	for name := range r.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Kinds() []dynamo.Kind {
	kinds := make([]dynamo.Kind, 0, len(r.kinds))
	for k := range r.kinds {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// DefaultMetrics picks summary metrics that make sense for kind.
func (r *Registry) DefaultMetrics(kind dynamo.Kind) []sim.Metric {
	switch kind {
	case dynamo.KindEquilibrium:
		return []sim.Metric{
			metrics.NewPeak("forward"),
			metrics.NewMean("gap"),
			metrics.NewFirstCrossing("progress", 1, metrics.Rising),
		}
	case dynamo.KindTitration:
		return []sim.Metric{
			metrics.NewFirstCrossing("ph", 7, metrics.Falling),
			metrics.NewStability("ph", 0, 14),
		}
	case dynamo.KindDispersion, dynamo.KindMatter:
		return []sim.Metric{
			metrics.NewMean("meanSpeed"),
			metrics.NewPeak("maxSpeed"),
		}
	case dynamo.KindRedox:
		return []sim.Metric{
			metrics.NewFirstCrossing("progress", 100, metrics.Rising),
			metrics.NewPeak("electrons"),
		}
	case dynamo.KindGalvanic:
		return []sim.Metric{
			metrics.NewMean("voltage"),
			metrics.NewPeak("copper"),
		}
	default:
		return nil
	}
}

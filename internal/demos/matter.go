package demos

import (
	"github.com/san-kum/chemlab/internal/dynamo"
	"github.com/san-kum/chemlab/internal/param"
	"github.com/san-kum/chemlab/internal/particles"
)

var MatterBounds = particles.Bounds{MinX: 10, MinY: 10, MaxX: 290, MaxY: 190}

func matterClass(name string, species ...particles.Species) particles.Class {
	return particles.Class{
		Name:         name,
		Species:      species,
		MaxSpeed:     0.8,
		InitialSpeed: 0.5,
		Perturbation: 0.1,
		Mode:         particles.Brownian,
	}
}

// MatterClasses is indexed by the "type" parameter. Molecules are drawn as
// two atoms but move as one body.
var MatterClasses = []particles.Class{
	matterClass("element",
		particles.Species{Tag: "atom", Color: "#3b82f6", Count: 30, Radius: 6},
	),
	matterClass("compound",
		particles.Species{Tag: "molecule", Color: "#ef4444", PartnerColor: "#22c55e", PartnerOffset: 15, Count: 15, Radius: 6},
	),
	matterClass("mixture",
		particles.Species{Tag: "atom", Color: "#3b82f6", Count: 10, Radius: 6},
		particles.Species{Tag: "molecule", Color: "#ef4444", PartnerColor: "#f59e0b", PartnerOffset: 12, Count: 10, Radius: 6},
	),
}

type Matter struct {
	params  *param.Store
	system  *particles.System
	variant *revisions
}

func NewMatter(seed int64) *Matter {
	m := &Matter{
		params: param.NewStore(
			selector("type", len(MatterClasses), 0),
			toggle("animate", true),
		),
	}
	m.system = particles.New(MatterBounds, MatterClasses[0], seed)
	m.variant = watch(m.params, "type")
	return m
}

func (m *Matter) Kind() dynamo.Kind    { return dynamo.KindMatter }
func (m *Matter) Params() *param.Store { return m.params }

func (m *Matter) class() particles.Class {
	return pick(MatterClasses, m.params.Int("type"))
}

func (m *Matter) Step(tick int) dynamo.Outputs {
	if m.variant.changed() {
		m.system.Seed(m.class())
	}
	m.system.SetPaused(!m.params.Flag("animate"))
	m.system.Step()

	species := 0
	atoms := 0
	for _, sp := range m.class().Species {
		if sp.Count > 0 {
			species++
		}
		if sp.PartnerOffset > 0 {
			atoms += 2 * sp.Count
		} else {
			atoms += sp.Count
		}
	}
	return dynamo.Outputs{
		"bodies":    float64(m.system.Len()),
		"atoms":     float64(atoms),
		"species":   float64(species),
		"pure":      dynamo.Bool(species == 1),
		"meanSpeed": m.system.Stats().MeanSpeed,
	}
}

func (m *Matter) Reset() {
	m.variant.sync()
	m.system.Seed(m.class())
}

func (m *Matter) Particles() []particles.Particle { return m.system.Particles() }
func (m *Matter) Bounds() particles.Bounds        { return m.system.Bounds() }

func (m *Matter) Labels() map[string]string {
	return map[string]string{"type": m.class().Name}
}

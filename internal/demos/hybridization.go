package demos

import (
	"time"

	"github.com/san-kum/chemlab/internal/dynamo"
	"github.com/san-kum/chemlab/internal/param"
	"github.com/san-kum/chemlab/internal/projection"
	"github.com/san-kum/chemlab/internal/steps"
)

// Orbitals counts the atomic orbitals mixed into a hybrid set.
type Orbitals struct {
	S, P, D int
	Hybrid  int
}

// HybridOrbitals is indexed like projection.HybridShapes.
var HybridOrbitals = []Orbitals{
	{S: 1, P: 1, Hybrid: 2},
	{S: 1, P: 2, Hybrid: 3},
	{S: 1, P: 3, Hybrid: 4},
	{S: 1, P: 3, D: 1, Hybrid: 5},
	{S: 1, P: 3, D: 2, Hybrid: 6},
}

// HybridPhases walk from separate atomic orbitals to the final geometry.
var HybridPhases = []steps.Phase{
	{Name: "separate", Title: "Separate orbitals", Visual: steps.Visual{
		Visible: map[string]bool{"atomic-orbitals": true},
	}},
	{Name: "mixing", Title: "Orbital mixing", Visual: steps.Visual{
		Visible: map[string]bool{"atomic-orbitals": true, "mixing-arrow": true},
	}},
	{Name: "hybrid", Title: "Hybrid orbitals", Visual: steps.Visual{
		Visible: map[string]bool{"hybrid-orbitals": true},
	}},
	{Name: "geometry", Title: "Molecular geometry", Visual: steps.Visual{
		Visible: map[string]bool{"hybrid-orbitals": true, "geometry": true},
	}},
}

// hybridEvery is one second of 50ms ticks.
const hybridEvery = 20

type Hybridization struct {
	*projection.Viewer
	params  *param.Store
	machine *steps.Machine
	variant *revisions
}

func NewHybridization() *Hybridization {
	h := &Hybridization{
		params: param.NewStore(selector("type", len(projection.HybridShapes), 2)),
	}
	h.Viewer = projection.NewViewer(h.shape())
	h.machine, _ = steps.NewMachine(HybridPhases, hybridEvery, steps.StopAtEnd())
	h.variant = watch(h.params, "type")
	return h
}

func (h *Hybridization) Kind() dynamo.Kind           { return dynamo.KindHybridization }
func (h *Hybridization) Params() *param.Store        { return h.params }
func (h *Hybridization) TickInterval() time.Duration { return moleculeInterval }
func (h *Hybridization) Machine() *steps.Machine     { return h.machine }

func (h *Hybridization) shape() projection.Shape {
	return projection.ShapeAt(projection.HybridShapes, h.params.Int("type"))
}

func (h *Hybridization) Orbitals() Orbitals {
	return pick(HybridOrbitals, h.params.Int("type"))
}

func (h *Hybridization) Step(tick int) dynamo.Outputs {
	if h.variant.changed() {
		h.SetShape(h.shape())
		h.machine.Reset()
	}
	h.Tick()
	h.machine.Tick()

	out := moleculeOutputs(h.Viewer)
	o := h.Orbitals()
	out["s"] = float64(o.S)
	out["p"] = float64(o.P)
	out["d"] = float64(o.D)
	out["hybrid"] = float64(o.Hybrid)
	out["step"] = float64(h.machine.Index())
	return out
}

func (h *Hybridization) Reset() {
	h.Viewer.Reset()
	h.machine.Reset()
	h.variant.sync()
	h.SetShape(h.shape())
}

func (h *Hybridization) Labels() map[string]string {
	labels := shapeLabels(h.Shape())
	labels["phase"] = h.machine.Current().Title
	return labels
}

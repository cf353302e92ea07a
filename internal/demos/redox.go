package demos

import (
	"time"

	"github.com/san-kum/chemlab/internal/chem"
	"github.com/san-kum/chemlab/internal/dynamo"
	"github.com/san-kum/chemlab/internal/param"
	"github.com/san-kum/chemlab/internal/particles"
)

type Reaction struct {
	Name     string
	Equation string
	Reducer  string
	Oxidizer string
	Left     string
	Right    string
	Product  string
}

// Reactions is indexed by the redox "reaction" parameter.
var Reactions = []Reaction{
	{Name: "zn-cu", Equation: "Zn + CuSO4 → ZnSO4 + Cu", Reducer: "Zn", Oxidizer: "Cu2+", Left: "#a1a1aa", Right: "#f97316", Product: "#c2410c"},
	{Name: "na-cl", Equation: "2Na + Cl2 → 2NaCl", Reducer: "Na", Oxidizer: "Cl2", Left: "#fbbf24", Right: "#22c55e", Product: "#ffffff"},
	{Name: "fe-o2", Equation: "3Fe + 2O2 → Fe3O4", Reducer: "Fe", Oxidizer: "O2", Left: "#71717a", Right: "#ef4444", Product: "#1f2937"},
}

const (
	redoxProgressStep = 2
	electronStep      = 5
	electronPathEnd   = 100
)

// Electrons travel from the reducer to the oxidizer along this segment.
var (
	RedoxBounds   = particles.Bounds{MinX: 0, MinY: 0, MaxX: 300, MaxY: 200}
	electronStart = [2]float64{100, 100}
	electronEnd   = [2]float64{200, 100}
)

type electron struct {
	id       int
	progress int
}

type Redox struct {
	params    *param.Store
	reaction  *revisions
	progress  int
	electrons []electron
	nextID    int
}

func NewRedox() *Redox {
	r := &Redox{
		params: param.NewStore(
			selector("reaction", len(Reactions), 0),
			toggle("playing", true),
		),
	}
	r.reaction = watch(r.params, "reaction")
	return r
}

func (r *Redox) Kind() dynamo.Kind           { return dynamo.KindRedox }
func (r *Redox) Params() *param.Store        { return r.params }
func (r *Redox) TickInterval() time.Duration { return 50 * time.Millisecond }

func (r *Redox) Reaction() Reaction {
	return pick(Reactions, r.params.Int("reaction"))
}

func (r *Redox) Step(tick int) dynamo.Outputs {
	if r.reaction.changed() {
		r.restart()
	}

	kept := r.electrons[:0]
	for _, e := range r.electrons {
		e.progress += electronStep
		if e.progress <= electronPathEnd {
			kept = append(kept, e)
		}
	}
	r.electrons = kept

	if r.params.Flag("playing") {
		if r.progress >= chem.MaxProgress {
			r.params.Set("playing", 0)
		} else {
			r.progress += redoxProgressStep
			if chem.SpawnsElectron(r.progress) {
				r.electrons = append(r.electrons, electron{id: r.nextID})
				r.nextID++
			}
		}
	}

	p := float64(r.progress)
	visual := chem.RedoxVisualAt(p)
	return dynamo.Outputs{
		"progress":       p,
		"phase":          float64(chem.RedoxPhaseAt(p)),
		"electrons":      float64(len(r.electrons)),
		"reducerRadius":  visual.ReducerRadius,
		"reducerOpacity": visual.ReducerOpacity,
		"showProduct":    dynamo.Bool(visual.ShowProduct),
	}
}

func (r *Redox) restart() {
	r.progress = 0
	r.electrons = nil
}

func (r *Redox) Reset() {
	r.restart()
	r.reaction.sync()
}

func (r *Redox) Particles() []particles.Particle {
	out := make([]particles.Particle, 0, len(r.electrons))
	for _, e := range r.electrons {
		t := float64(e.progress) / electronPathEnd
		out = append(out, particles.Particle{
			ID:     e.id,
			X:      electronStart[0] + (electronEnd[0]-electronStart[0])*t,
			Y:      electronStart[1] + (electronEnd[1]-electronStart[1])*t,
			Radius: 4,
			Tag:    "electron",
			Color:  "#3b82f6",
		})
	}
	return out
}

func (r *Redox) Bounds() particles.Bounds { return RedoxBounds }

func (r *Redox) Labels() map[string]string {
	rx := r.Reaction()
	p := float64(r.progress)
	reducer := rx.Left
	if chem.RedoxVisualAt(p).ProductColoured {
		reducer = rx.Product
	}
	return map[string]string{
		"reaction":     rx.Name,
		"equation":     rx.Equation,
		"phase":        chem.RedoxPhaseAt(p).String(),
		"reducerColor": reducer,
		"oxidizer":     rx.Right,
	}
}

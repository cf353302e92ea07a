package demos

import (
	"math"
	"time"

	"github.com/san-kum/chemlab/internal/chem"
	"github.com/san-kum/chemlab/internal/dynamo"
	"github.com/san-kum/chemlab/internal/param"
	"github.com/san-kum/chemlab/internal/particles"
)

const atomInterval = 50 * time.Millisecond

var (
	AtomBounds  = particles.Bounds{MinX: 0, MinY: 0, MaxX: 300, MaxY: 200}
	atomCenterX = 150.0
	atomCenterY = 100.0
)

// Atom orbits each element's electrons around its nucleus, shell by shell.
type Atom struct {
	params   *param.Store
	interval time.Duration
	elapsed  float64
}

func NewAtom() *Atom {
	return &Atom{
		params: param.NewStore(
			selector("element", len(chem.Elements), 0),
			toggle("cloud", false),
		),
		interval: atomInterval,
	}
}

func (a *Atom) Kind() dynamo.Kind           { return dynamo.KindAtom }
func (a *Atom) Params() *param.Store        { return a.params }
func (a *Atom) TickInterval() time.Duration { return atomInterval }

// SetTickInterval keeps orbits in step with wall-clock time when the session
// ticks at a different rate.
func (a *Atom) SetTickInterval(d time.Duration) {
	if d > 0 {
		a.interval = d
	}
}

func (a *Atom) Element() chem.Element {
	return pick(chem.Elements, a.params.Int("element"))
}

func (a *Atom) Step(tick int) dynamo.Outputs {
	a.elapsed = float64(tick) * a.interval.Seconds()
	e := a.Element()
	cloud := 0.0
	if a.params.Flag("cloud") {
		cloud = chem.CloudOpacity(e.Valence())
	}
	return dynamo.Outputs{
		"protons":    float64(e.Protons),
		"neutrons":   float64(e.Neutrons),
		"electrons":  float64(e.Electrons()),
		"shells":     float64(len(e.Shells)),
		"valence":    float64(e.Valence()),
		"massNumber": float64(e.MassNumber()),
		"cloud":      cloud,
	}
}

func (a *Atom) Reset() { a.elapsed = 0 }

func (a *Atom) Particles() []particles.Particle {
	e := a.Element()
	out := make([]particles.Particle, 0, e.Electrons())
	for shell, count := range e.Shells {
		r := pick(chem.ShellRadii, shell)
		for i := 0; i < count; i++ {
			theta := chem.OrbitAngle(shell, i, count, a.elapsed)
			out = append(out, particles.Particle{
				ID:     len(out),
				X:      atomCenterX + r*math.Cos(theta),
				Y:      atomCenterY + r*math.Sin(theta),
				Radius: 4,
				Tag:    "electron",
				Color:  "#3b82f6",
			})
		}
	}
	return out
}

func (a *Atom) Bounds() particles.Bounds { return AtomBounds }

func (a *Atom) Labels() map[string]string {
	e := a.Element()
	return map[string]string{"symbol": e.Symbol, "name": e.Name}
}

package demos

import (
	"time"

	"github.com/san-kum/chemlab/internal/chem"
	"github.com/san-kum/chemlab/internal/dynamo"
	"github.com/san-kum/chemlab/internal/param"
	"github.com/san-kum/chemlab/internal/particles"
)

const (
	// PulseEvery is the number of running ticks between discharge pulses.
	PulseEvery = 10
	// MaxElectrons caps the electrons drawn in the external wire.
	MaxElectrons = 10
	// electron progress is counted in tenths of the wire
	wireSteps = 10
	// CellVoltage is the standard EMF of the Daniell cell.
	CellVoltage = 1.10
)

var GalvanicBounds = particles.Bounds{MinX: 0, MinY: 0, MaxX: 300, MaxY: 200}

type Galvanic struct {
	params    *param.Store
	cell      chem.Cell
	elapsed   int
	electrons []electron
	nextID    int
}

func NewGalvanic() *Galvanic {
	return &Galvanic{
		params: param.NewStore(toggle("running", true)),
		cell:   chem.NewCell(),
	}
}

func (g *Galvanic) Kind() dynamo.Kind           { return dynamo.KindGalvanic }
func (g *Galvanic) Params() *param.Store        { return g.params }
func (g *Galvanic) TickInterval() time.Duration { return 50 * time.Millisecond }

func (g *Galvanic) Cell() chem.Cell { return g.cell }

func (g *Galvanic) Step(tick int) dynamo.Outputs {
	running := g.params.Flag("running")
	if running {
		g.elapsed++

		kept := g.electrons[:0]
		for _, e := range g.electrons {
			e.progress++
			if e.progress < wireSteps {
				kept = append(kept, e)
			}
		}
		g.electrons = kept

		if g.elapsed%PulseEvery == 0 {
			g.cell = g.cell.Pulse()
			g.electrons = append(g.electrons, electron{id: g.nextID})
			g.nextID++
			if len(g.electrons) > MaxElectrons {
				g.electrons = g.electrons[len(g.electrons)-MaxElectrons:]
			}
		}
	}

	voltage := 0.0
	if running && !g.cell.Exhausted() {
		voltage = CellVoltage
	}
	return dynamo.Outputs{
		"zinc":      g.cell.ZincMass,
		"copper":    g.cell.CopperMass,
		"electrons": float64(len(g.electrons)),
		"voltage":   voltage,
	}
}

func (g *Galvanic) Reset() {
	g.cell = chem.NewCell()
	g.elapsed = 0
	g.electrons = nil
}

// wirePoint maps wire progress onto the drawn path: up from the zinc
// electrode, across the top and down to the copper electrode.
func wirePoint(t float64) (x, y float64) {
	x = 70 + t*160
	switch {
	case t < 0.3:
		y = 90 - t*166
	case t < 0.7:
		y = 40
	default:
		y = 40 + (t-0.7)*166
	}
	return x, y
}

func (g *Galvanic) Particles() []particles.Particle {
	out := make([]particles.Particle, 0, len(g.electrons))
	for _, e := range g.electrons {
		x, y := wirePoint(float64(e.progress) / wireSteps)
		out = append(out, particles.Particle{ID: e.id, X: x, Y: y, Radius: 4, Tag: "electron", Color: "#fbbf24"})
	}
	return out
}

func (g *Galvanic) Bounds() particles.Bounds { return GalvanicBounds }

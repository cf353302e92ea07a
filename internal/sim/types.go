package sim

import (
	"time"

	"github.com/san-kum/chemlab/internal/dynamo"
	"github.com/san-kum/chemlab/internal/param"
	"github.com/san-kum/chemlab/internal/particles"
	"github.com/san-kum/chemlab/internal/projection"
	"github.com/san-kum/chemlab/internal/steps"
)

// Simulation is one demonstration's model. Step is called once per tick with
// a tick count starting at 1 and must not block.
type Simulation interface {
	Kind() dynamo.Kind
	Params() *param.Store
	Step(tick int) dynamo.Outputs
	Reset()
}

// Timed simulations choose their own tick interval.
type Timed interface {
	TickInterval() time.Duration
}

// Paced simulations are told the interval their session actually ticks at,
// which may differ from their own TickInterval.
type Paced interface {
	SetTickInterval(d time.Duration)
}

// Settler simulations accept parameter writes made before the first tick as
// their starting configuration instead of a mid-run variant switch.
type Settler interface {
	Settle()
}

// Windowed simulations choose their own history capacity.
type Windowed interface {
	HistoryCapacity() int
}

// EventSource simulations raise one-shot events; DrainEvents returns and
// clears the events raised since the last call.
type EventSource interface {
	DrainEvents() []string
}

type ParticleSource interface {
	Particles() []particles.Particle
	Bounds() particles.Bounds
}

type MoleculeSource interface {
	Atoms() []projection.Projected
	Bonds() []projection.Bond
}

type Rotatable interface {
	Drag(dx, dy float64)
	SetDragging(dragging bool)
	Rotation() projection.Rotation
}

type Stepped interface {
	Machine() *steps.Machine
}

// Labeled simulations expose descriptive strings such as the selected
// variant name or the current solution colour.
type Labeled interface {
	Labels() map[string]string
}

// Metric folds a run's samples into a single summary value.
type Metric interface {
	Name() string
	Observe(s dynamo.Sample)
	Value() float64
	Reset()
}

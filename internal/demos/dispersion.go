package demos

import (
	"time"

	"github.com/san-kum/chemlab/internal/dynamo"
	"github.com/san-kum/chemlab/internal/param"
	"github.com/san-kum/chemlab/internal/particles"
)

// DispersionBounds is the container the dispersed particles move in.
var DispersionBounds = particles.Bounds{MinX: 20, MinY: 20, MaxX: 280, MaxY: 180}

// DispersionClasses is indexed by the "system" parameter.
var DispersionClasses = []particles.Class{
	{
		Name:         "solution",
		Species:      []particles.Species{{Tag: "solute", Color: "#3b82f6", Count: 50, Radius: 3}},
		RadiusJitter: 2,
		MaxSpeed:     3,
		InitialSpeed: 1,
		Perturbation: 0.25,
		Mode:         particles.Brownian,
	},
	{
		Name:         "colloid",
		Species:      []particles.Species{{Tag: "colloidal", Color: "#f59e0b", Count: 25, Radius: 8}},
		RadiusJitter: 2,
		MaxSpeed:     1.5,
		InitialSpeed: 1,
		Perturbation: 0.25,
		Mode:         particles.Brownian,
	},
	{
		Name:         "suspension",
		Species:      []particles.Species{{Tag: "suspended", Color: "#ef4444", Count: 15, Radius: 15}},
		RadiusJitter: 2,
		MaxSpeed:     1.5,
		InitialSpeed: 1,
		Mode:         particles.Settling,
		Drift:        0.3,
		Jitter:       0.25,
		Floor:        170,
	},
}

const colloidIndex = 1

type Dispersion struct {
	params  *param.Store
	system  *particles.System
	variant *revisions
}

func NewDispersion(seed int64) *Dispersion {
	d := &Dispersion{
		params: param.NewStore(
			selector("system", len(DispersionClasses), 0),
			toggle("tyndall", false),
		),
	}
	d.system = particles.New(DispersionBounds, DispersionClasses[0], seed)
	d.variant = watch(d.params, "system")
	return d
}

func (d *Dispersion) Kind() dynamo.Kind           { return dynamo.KindDispersion }
func (d *Dispersion) Params() *param.Store        { return d.params }
func (d *Dispersion) TickInterval() time.Duration { return 50 * time.Millisecond }

func (d *Dispersion) class() particles.Class {
	return pick(DispersionClasses, d.params.Int("system"))
}

// Tyndall reports whether the light beam is visibly scattered.
func (d *Dispersion) Tyndall() bool {
	return d.params.Int("system") == colloidIndex && d.params.Flag("tyndall")
}

func (d *Dispersion) Step(tick int) dynamo.Outputs {
	if d.variant.changed() {
		d.system.Seed(d.class())
	}
	d.system.Step()

	st := d.system.Stats()
	return dynamo.Outputs{
		"count":     float64(d.system.Len()),
		"meanSpeed": st.MeanSpeed,
		"maxSpeed":  st.MaxSpeed,
		"meanY":     st.MeanY,
		"settled":   float64(st.Settled),
		"tyndall":   dynamo.Bool(d.Tyndall()),
	}
}

func (d *Dispersion) Reset() {
	d.variant.sync()
	d.system.Seed(d.class())
}

func (d *Dispersion) Particles() []particles.Particle { return d.system.Particles() }
func (d *Dispersion) Bounds() particles.Bounds        { return d.system.Bounds() }

func (d *Dispersion) Labels() map[string]string {
	return map[string]string{"system": d.class().Name}
}

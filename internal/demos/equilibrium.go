package demos

import (
	"time"

	"github.com/san-kum/chemlab/internal/chem"
	"github.com/san-kum/chemlab/internal/dynamo"
	"github.com/san-kum/chemlab/internal/param"
)

// EventEquilibriumReached is raised once per run when the rates converge.
const EventEquilibriumReached = "equilibrium-reached"

type Equilibrium struct {
	params  *param.Store
	reached bool
	pending []string
}

func NewEquilibrium() *Equilibrium {
	return &Equilibrium{
		params: param.NewStore(
			param.Parameter{Name: "temperature", Min: 0, Max: 100, Step: 1, Value: 25, Unit: "°C"},
			param.Parameter{Name: "pressure", Min: 0.5, Max: 5, Step: 0.5, Value: 1, Unit: "atm"},
			param.Parameter{Name: "concentration", Min: 0.5, Max: 3, Step: 0.5, Value: 1, Unit: "mol/L"},
		),
	}
}

func (e *Equilibrium) Kind() dynamo.Kind           { return dynamo.KindEquilibrium }
func (e *Equilibrium) Params() *param.Store        { return e.params }
func (e *Equilibrium) TickInterval() time.Duration { return 300 * time.Millisecond }
func (e *Equilibrium) HistoryCapacity() int        { return 30 }

func (e *Equilibrium) inputs() chem.RateInputs {
	return chem.RateInputs{
		Temperature:   e.params.Get("temperature"),
		Pressure:      e.params.Get("pressure"),
		Concentration: e.params.Get("concentration"),
	}
}

func (e *Equilibrium) Step(tick int) dynamo.Outputs {
	rates := chem.RateConvergence(e.inputs(), tick, chem.EquilibriumHorizon)
	if rates.Reached() && !e.reached {
		e.reached = true
		e.pending = append(e.pending, EventEquilibriumReached)
	}
	return dynamo.Outputs{
		"forward":  rates.Forward,
		"reverse":  rates.Reverse,
		"gap":      rates.Gap(),
		"progress": rates.Progress,
		"reached":  dynamo.Bool(e.reached),
	}
}

func (e *Equilibrium) Reset() {
	e.reached = false
	e.pending = nil
}

func (e *Equilibrium) DrainEvents() []string {
	out := e.pending
	e.pending = nil
	return out
}

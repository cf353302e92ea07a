package chem

import "math"

// EquilibriumHorizon is the number of ticks over which rates converge.
const EquilibriumHorizon = 20

const minPressure = 1e-6

type RateInputs struct {
	Temperature   float64 // °C
	Pressure      float64 // atm
	Concentration float64 // mol/L
}

type Rates struct {
	Forward     float64
	Reverse     float64
	BaseForward float64
	BaseReverse float64
	Progress    float64
}

// Gap is the absolute difference between the forward and reverse rates.
func (r Rates) Gap() float64 {
	return math.Abs(r.Forward - r.Reverse)
}

// Reached reports whether the rates have fully converged.
func (r Rates) Reached() bool {
	return r.Progress >= 1
}

// BaseRates returns the unconverged forward and reverse rates. Heating slows
// the forward reaction; pressure favours the forward direction.
func BaseRates(in RateInputs) (forward, reverse float64) {
	temp := math.Exp(-0.02 * (in.Temperature - 25))
	press := math.Sqrt(math.Max(in.Pressure, minPressure))
	forward = 50 * temp * press * in.Concentration
	reverse = 30 / (temp * press)
	return forward, reverse
}

// Progress maps a tick count onto [0, 1] over horizon ticks.
func Progress(tick, horizon int) float64 {
	if horizon <= 0 {
		return 1
	}
	if tick <= 0 {
		return 0
	}
	return math.Min(float64(tick)/float64(horizon), 1)
}

// RateConvergence blends the base rates towards each other. With progress p
// the gap shrinks to (1-0.8p) of its initial size, so it decreases strictly
// until the horizon and stays at a fifth of the initial gap afterwards.
func RateConvergence(in RateInputs, tick, horizon int) Rates {
	f0, r0 := BaseRates(in)
	p := Progress(tick, horizon)
	return Rates{
		Forward:     f0*(1-0.5*p) + r0*0.5*p,
		Reverse:     r0*(1-0.3*p) + f0*0.3*p,
		BaseForward: f0,
		BaseReverse: r0,
		Progress:    p,
	}
}

package dynamo

import (
	"math"
	"sort"
)

// Kind names a simulation family.
type Kind string

const (
	KindPlaceholder   Kind = "placeholder"
	KindEquilibrium   Kind = "equilibrium"
	KindTitration     Kind = "titration"
	KindDispersion    Kind = "dispersion"
	KindMatter        Kind = "matter"
	KindRedox         Kind = "redox"
	KindGalvanic      Kind = "galvanic"
	KindVSEPR         Kind = "vsepr"
	KindHybridization Kind = "hybridization"
	KindIonic         Kind = "ionic"
	KindAtom          Kind = "atom"
	KindBenzene       Kind = "benzene"
	KindCovalent      Kind = "covalent"
)

func (k Kind) String() string { return string(k) }

// Outputs holds the named values produced by a single tick.
type Outputs map[string]float64

func (o Outputs) Clone() Outputs {
	c := make(Outputs, len(o))
	for k, v := range o {
		c[k] = v
	}
	return c
}

func (o Outputs) IsValid() bool {
	for _, v := range o {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Keys returns the output names in sorted order.
func (o Outputs) Keys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Sample is one entry of a session's history.
type Sample struct {
	Tick    int     `json:"tick"`
	Time    float64 `json:"time"`
	Outputs Outputs `json:"outputs"`
}

func (s Sample) Clone() Sample {
	return Sample{Tick: s.Tick, Time: s.Time, Outputs: s.Outputs.Clone()}
}

// Event is a one-shot notification raised by a simulation.
type Event struct {
	Tick int    `json:"tick"`
	Name string `json:"name"`
}

// Bool converts a flag into an output value.
func Bool(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

package metrics

import (
	"github.com/san-kum/chemlab/internal/dynamo"
)

// Stability is the fraction of samples whose output stays inside [lo, hi].
type Stability struct {
	name       string
	key        string
	lo, hi     float64
	violations int
	samples    int
}

func NewStability(key string, lo, hi float64) *Stability {
	if hi < lo {
		lo, hi = hi, lo
	}
	return &Stability{
		name: "stability_" + key,
		key:  key,
		lo:   lo,
		hi:   hi,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(sample dynamo.Sample) {
	v, ok := sample.Outputs[s.key]
	if !ok {
		return
	}
	s.samples++
	if v < s.lo || v > s.hi {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

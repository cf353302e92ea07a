package metrics

import (
	"math"

	"github.com/san-kum/chemlab/internal/dynamo"
)

// Peak tracks the largest value of one output.
type Peak struct {
	name string
	key  string
	max  float64
	seen bool
}

func NewPeak(key string) *Peak {
	return &Peak{name: "peak_" + key, key: key}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(s dynamo.Sample) {
	v, ok := s.Outputs[p.key]
	if !ok {
		return
	}
	if !p.seen || v > p.max {
		p.max = v
		p.seen = true
	}
}

// Value is NaN until a sample carrying the output has been observed.
func (p *Peak) Value() float64 {
	if !p.seen {
		return math.NaN()
	}
	return p.max
}

func (p *Peak) Reset() {
	p.max = 0
	p.seen = false
}

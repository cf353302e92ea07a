package metrics

import (
	"github.com/san-kum/chemlab/internal/dynamo"
)

// Mean averages one output over every sample that carries it.
type Mean struct {
	name    string
	key     string
	sum     float64
	samples int
}

func NewMean(key string) *Mean {
	return &Mean{
		name: "mean_" + key,
		key:  key,
	}
}

func (m *Mean) Name() string {
	return m.name
}

func (m *Mean) Observe(s dynamo.Sample) {
	v, ok := s.Outputs[m.key]
	if !ok {
		return
	}
	m.sum += v
	m.samples++
}

func (m *Mean) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *Mean) Reset() {
	m.sum = 0
	m.samples = 0
}

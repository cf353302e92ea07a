package metrics

import (
	"fmt"
	"math"

	"github.com/san-kum/chemlab/internal/dynamo"
)

type Direction int

const (
	Rising Direction = iota
	Falling
)

func (d Direction) String() string {
	if d == Falling {
		return "falling"
	}
	return "rising"
}

// FirstCrossing records the simulated time at which an output first reaches
// a threshold in the given direction, for example the moment the titration
// pH falls to neutral.
type FirstCrossing struct {
	name      string
	key       string
	threshold float64
	direction Direction
	at        float64
	crossed   bool
}

func NewFirstCrossing(key string, threshold float64, dir Direction) *FirstCrossing {
	return &FirstCrossing{
		name:      fmt.Sprintf("first_%s_%s_%g", dir, key, threshold),
		key:       key,
		threshold: threshold,
		direction: dir,
	}
}

func (c *FirstCrossing) Name() string { return c.name }

func (c *FirstCrossing) Observe(s dynamo.Sample) {
	if c.crossed {
		return
	}
	v, ok := s.Outputs[c.key]
	if !ok {
		return
	}
	if (c.direction == Rising && v >= c.threshold) || (c.direction == Falling && v <= c.threshold) {
		c.at = s.Time
		c.crossed = true
	}
}

// Value is NaN while the threshold has not been crossed.
func (c *FirstCrossing) Value() float64 {
	if !c.crossed {
		return math.NaN()
	}
	return c.at
}

func (c *FirstCrossing) Crossed() bool { return c.crossed }

func (c *FirstCrossing) Reset() {
	c.at = 0
	c.crossed = false
}

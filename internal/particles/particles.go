// Package particles animates bounded 2D particle clouds.
//
// A [System] owns a fixed population seeded from a [Class]. Each [System.Step]
// either performs a random walk with boundary reflection and a speed cap, or
// lets particles settle towards a floor, depending on the class [Mode].
// Randomness comes from an injected seed so runs are reproducible.
package particles

import (
	"math"
	"math/rand"
)

type Mode int

const (
	// Brownian: velocity random walk, reflect at walls, cap speed.
	Brownian Mode = iota
	// Settling: drift towards Floor with horizontal jitter.
	Settling
	// Still: particles hold position.
	Still
)

func (m Mode) String() string {
	switch m {
	case Brownian:
		return "brownian"
	case Settling:
		return "settling"
	case Still:
		return "still"
	default:
		return "unknown"
	}
}

type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

func (b Bounds) Width() float64  { return b.MaxX - b.MinX }
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

func (b Bounds) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Species is one kind of body within a class. A non-zero PartnerOffset marks
// a diatomic molecule drawn as two atoms but moved as one body.
type Species struct {
	Tag           string
	Color         string
	PartnerColor  string
	PartnerOffset float64
	Count         int
	Radius        float64
}

type Class struct {
	Name         string
	Species      []Species
	RadiusJitter float64
	MaxSpeed     float64
	InitialSpeed float64
	Perturbation float64
	Mode         Mode
	Drift        float64
	Jitter       float64
	Floor        float64
}

func (c Class) Count() int {
	n := 0
	for _, s := range c.Species {
		n += s.Count
	}
	return n
}

type Particle struct {
	ID            int     `json:"id"`
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	VX            float64 `json:"vx"`
	VY            float64 `json:"vy"`
	Radius        float64 `json:"radius"`
	Tag           string  `json:"tag"`
	Color         string  `json:"color"`
	PartnerColor  string  `json:"partnerColor,omitempty"`
	PartnerOffset float64 `json:"partnerOffset,omitempty"`
}

func (p Particle) Speed() float64 {
	return math.Hypot(p.VX, p.VY)
}

// System is not safe for concurrent use.
type System struct {
	bounds    Bounds
	class     Class
	particles []Particle
	rng       *rand.Rand
	paused    bool
}

func New(bounds Bounds, class Class, seed int64) *System {
	s := &System{
		bounds: bounds,
		rng:    rand.New(rand.NewSource(seed)),
	}
	s.Seed(class)
	return s
}

// Seed replaces the population with fresh particles of class c.
func (s *System) Seed(c Class) {
	s.class = c
	s.particles = make([]Particle, 0, c.Count())
	id := 0
	for _, sp := range c.Species {
		for i := 0; i < sp.Count; i++ {
			p := Particle{
				ID:            id,
				X:             s.bounds.MinX + s.rng.Float64()*s.bounds.Width(),
				Y:             s.bounds.MinY + s.rng.Float64()*s.bounds.Height(),
				VX:            (s.rng.Float64() - 0.5) * 2 * c.InitialSpeed,
				VY:            (s.rng.Float64() - 0.5) * 2 * c.InitialSpeed,
				Radius:        sp.Radius + s.rng.Float64()*c.RadiusJitter,
				Tag:           sp.Tag,
				Color:         sp.Color,
				PartnerColor:  sp.PartnerColor,
				PartnerOffset: sp.PartnerOffset,
			}
			s.capSpeed(&p)
			s.particles = append(s.particles, p)
			id++
		}
	}
}

// SetPaused freezes or resumes motion without changing the class mode.
func (s *System) SetPaused(paused bool) {
	s.paused = paused
}

func (s *System) Paused() bool { return s.paused }

func (s *System) Step() {
	if s.paused {
		return
	}
	switch s.class.Mode {
	case Brownian:
		for i := range s.particles {
			s.walk(&s.particles[i])
		}
	case Settling:
		for i := range s.particles {
			s.settle(&s.particles[i])
		}
	}
}

func (s *System) perturb(width float64) float64 {
	return (s.rng.Float64() - 0.5) * 2 * width
}

func (s *System) walk(p *Particle) {
	b := s.bounds
	x := p.X + p.VX
	y := p.Y + p.VY
	p.VX += s.perturb(s.class.Perturbation)
	p.VY += s.perturb(s.class.Perturbation)

	if x < b.MinX || x > b.MaxX {
		p.VX = -p.VX
	}
	if y < b.MinY || y > b.MaxY {
		p.VY = -p.VY
	}
	p.X = clamp(x, b.MinX, b.MaxX)
	p.Y = clamp(y, b.MinY, b.MaxY)
	s.capSpeed(p)
}

func (s *System) settle(p *Particle) {
	b := s.bounds
	floor := math.Min(s.class.Floor, b.MaxY)
	prevX, prevY := p.X, p.Y
	p.Y = clamp(math.Min(p.Y+s.class.Drift, floor), b.MinY, b.MaxY)
	p.X = clamp(p.X+s.perturb(s.class.Jitter), b.MinX, b.MaxX)
	p.VX = p.X - prevX
	p.VY = p.Y - prevY
	s.capSpeed(p)
}

func (s *System) capSpeed(p *Particle) {
	limit := s.class.MaxSpeed
	if limit <= 0 {
		return
	}
	if speed := p.Speed(); speed > limit {
		p.VX = p.VX / speed * limit
		p.VY = p.VY / speed * limit
	}
}

// Particles returns a copy of the current population.
func (s *System) Particles() []Particle {
	out := make([]Particle, len(s.particles))
	copy(out, s.particles)
	return out
}

func (s *System) Class() Class   { return s.class }
func (s *System) Bounds() Bounds { return s.bounds }
func (s *System) Len() int       { return len(s.particles) }

// Stats summarizes the population for sample outputs.
type Stats struct {
	MeanSpeed float64
	MaxSpeed  float64
	MeanY     float64
	Settled   int
}

func (s *System) Stats() Stats {
	var st Stats
	if len(s.particles) == 0 {
		return st
	}
	floor := math.Min(s.class.Floor, s.bounds.MaxY)
	for _, p := range s.particles {
		v := p.Speed()
		st.MeanSpeed += v
		st.MaxSpeed = math.Max(st.MaxSpeed, v)
		st.MeanY += p.Y
		if s.class.Mode == Settling && p.Y >= floor {
			st.Settled++
		}
	}
	n := float64(len(s.particles))
	st.MeanSpeed /= n
	st.MeanY /= n
	return st
}

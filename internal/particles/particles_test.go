package particles_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/chemlab/internal/particles"
)

var container = particles.Bounds{MinX: 20, MinY: 20, MaxX: 280, MaxY: 180}

func brownian(count int, maxSpeed float64) particles.Class {
	return particles.Class{
		Name:         "solution",
		Species:      []particles.Species{{Tag: "solute", Color: "#3b82f6", Count: count, Radius: 3}},
		RadiusJitter: 2,
		MaxSpeed:     maxSpeed,
		InitialSpeed: 1,
		Perturbation: 0.25,
		Mode:         particles.Brownian,
	}
}

var _ = Describe("System", func() {
	Context("in brownian mode", func() {
		var sys *particles.System

		BeforeEach(func() {
			sys = particles.New(container, brownian(50, 3), 42)
		})

		It("seeds the requested population", func() {
			Expect(sys.Len()).To(Equal(50))
			for _, p := range sys.Particles() {
				Expect(p.Radius).To(BeNumerically(">=", 3))
				Expect(p.Radius).To(BeNumerically("<=", 5))
			}
		})

		It("keeps every particle inside the container", func() {
			for i := 0; i < 2000; i++ {
				sys.Step()
				for _, p := range sys.Particles() {
					Expect(container.Contains(p.X, p.Y)).To(BeTrue(), "particle %d escaped to (%f, %f)", p.ID, p.X, p.Y)
				}
			}
		})

		It("never exceeds the class speed cap", func() {
			for i := 0; i < 2000; i++ {
				sys.Step()
				for _, p := range sys.Particles() {
					Expect(p.Speed()).To(BeNumerically("<=", 3+1e-9))
				}
			}
		})

		It("caps the initial velocity when the cap is tighter than the seed speed", func() {
			tight := particles.New(container, brownian(30, 0.8), 7)
			for _, p := range tight.Particles() {
				Expect(p.Speed()).To(BeNumerically("<=", 0.8+1e-9))
			}
		})

		It("is reproducible for a given seed", func() {
			other := particles.New(container, brownian(50, 3), 42)
			for i := 0; i < 100; i++ {
				sys.Step()
				other.Step()
			}
			Expect(other.Particles()).To(Equal(sys.Particles()))
		})

		It("holds still while paused", func() {
			before := sys.Particles()
			sys.SetPaused(true)
			sys.Step()
			Expect(sys.Particles()).To(Equal(before))
		})
	})

	Context("in settling mode", func() {
		It("drifts down to the floor and stays inside the container", func() {
			class := particles.Class{
				Name:         "suspension",
				Species:      []particles.Species{{Tag: "suspended", Color: "#ef4444", Count: 15, Radius: 15}},
				RadiusJitter: 2,
				MaxSpeed:     1.5,
				InitialSpeed: 1,
				Mode:         particles.Settling,
				Drift:        0.3,
				Jitter:       0.25,
				Floor:        170,
			}
			sys := particles.New(container, class, 3)
			for i := 0; i < 1000; i++ {
				sys.Step()
			}
			for _, p := range sys.Particles() {
				Expect(p.Y).To(BeNumerically("~", 170, 1e-9))
				Expect(container.Contains(p.X, p.Y)).To(BeTrue())
			}
			Expect(sys.Stats().Settled).To(Equal(15))
		})
	})

	Context("with several species", func() {
		It("tags particles by species", func() {
			class := particles.Class{
				Name: "mixture",
				Species: []particles.Species{
					{Tag: "atom", Color: "#3b82f6", Count: 10, Radius: 6},
					{Tag: "molecule", Color: "#ef4444", PartnerColor: "#f59e0b", PartnerOffset: 12, Count: 10, Radius: 6},
				},
				MaxSpeed: 0.8,
				Mode:     particles.Brownian,
			}
			sys := particles.New(particles.Bounds{MinX: 10, MinY: 10, MaxX: 290, MaxY: 190}, class, 1)
			counts := map[string]int{}
			for _, p := range sys.Particles() {
				counts[p.Tag]++
			}
			Expect(counts).To(HaveKeyWithValue("atom", 10))
			Expect(counts).To(HaveKeyWithValue("molecule", 10))
		})
	})
})

package viz

import (
	"math"

	"github.com/san-kum/chemlab/internal/particles"
	"github.com/san-kum/chemlab/internal/projection"
	"github.com/san-kum/chemlab/internal/sim"
)

// moleculeSpan is the camera-space extent, in pixels, mapped onto the
// canvas height.
const moleculeSpan = 240.0

// Render draws the particle container and the projected molecule of a
// snapshot. Other demos have nothing spatial to draw; their state is in
// the stats panel and chart.
func Render(c *Canvas, snap sim.Snapshot) {
	c.Clear()
	if snap.Bounds != nil {
		drawParticles(c, *snap.Bounds, snap.Particles)
	}
	if len(snap.Atoms) > 0 {
		drawMolecule(c, snap.Atoms, snap.Bonds)
	}
}

func drawParticles(c *Canvas, b particles.Bounds, ps []particles.Particle) {
	w, h := c.DotWidth()-1, c.DotHeight()-1
	sx := float64(w) / b.Width()
	sy := float64(h) / b.Height()

	c.DrawLine(0, 0, w, 0)
	c.DrawLine(0, h, w, h)
	c.DrawLine(0, 0, 0, h)
	c.DrawLine(w, 0, w, h)

	for _, p := range ps {
		x := int(math.Round((p.X - b.MinX) * sx))
		y := int(math.Round((p.Y - b.MinY) * sy))
		r := int(math.Round(p.Radius * math.Min(sx, sy)))
		dot(c, x, y, r)
		if p.PartnerOffset > 0 {
			px := int(math.Round((p.X + p.PartnerOffset - b.MinX) * sx))
			c.DrawLine(x, y, px, y)
			dot(c, px, y, r)
		}
	}
}

func dot(c *Canvas, x, y, r int) {
	if r <= 2 {
		c.FillCircle(x, y, r)
		return
	}
	c.DrawCircle(x, y, r)
}

func drawMolecule(c *Canvas, atoms []projection.Projected, bonds []projection.Bond) {
	scale := float64(c.DotHeight()) / moleculeSpan
	ox, oy := float64(c.DotWidth())/2, float64(c.DotHeight())/2
	at := func(x, y float64) (int, int) {
		return int(math.Round(ox + x*scale)), int(math.Round(oy + y*scale))
	}

	for _, b := range bonds {
		x1, y1 := at(b.X1, b.Y1)
		x2, y2 := at(b.X2, b.Y2)
		if b.Dashed {
			c.DrawDashedLine(x1, y1, x2, y2, 2)
			continue
		}
		c.DrawLine(x1, y1, x2, y2)
		if b.Order > 1 {
			c.DrawLine(x1, y1+2, x2, y2+2)
		}
	}

	// Atoms arrive sorted far to near.
	for _, a := range atoms {
		x, y := at(a.X, a.Y)
		r := int(math.Round(a.Radius * scale))
		switch a.Role {
		case projection.Central:
			c.FillCircle(x, y, r)
		case projection.LonePair:
			c.DrawCircle(x, y, r/2)
		default:
			c.DrawCircle(x, y, r)
		}
	}
}

package projection

import (
	"math"
	"sort"
)

const (
	radiusDepthScale  = 300.0
	opacityDepthScale = 200.0
	loneBondReach     = 0.7
)

var (
	baseRadius  = map[Role]float64{Central: 20, Bonded: 15, LonePair: 12}
	baseOpacity = map[Role]float64{Central: 0.9, Bonded: 0.9, LonePair: 0.5}
)

func sin(a float64) float64 { return math.Sin(a) }
func cos(a float64) float64 { return math.Cos(a) }

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Projected is an atom in camera space. X and Y are centred on the central
// atom; Depth is the camera-space z, larger meaning nearer the viewer.
type Projected struct {
	Index   int     `json:"index"`
	Role    Role    `json:"role"`
	Label   string  `json:"label,omitempty"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Depth   float64 `json:"depth"`
	Radius  float64 `json:"radius"`
	Opacity float64 `json:"opacity"`
}

// Bond is a line segment between two projected points.
type Bond struct {
	X1      float64 `json:"x1"`
	Y1      float64 `json:"y1"`
	X2      float64 `json:"x2"`
	Y2      float64 `json:"y2"`
	Depth   float64 `json:"depth"`
	Order   int     `json:"order"`
	Dashed  bool    `json:"dashed,omitempty"`
	Opacity float64 `json:"opacity"`
}

func transform(atoms []Atom3D, r Rotation) []Projected {
	m := r.Normalize().Matrix()
	out := make([]Projected, len(atoms))
	for i, a := range atoms {
		p := m.Mul3x1(a.Position)
		base := a.Radius
		if base <= 0 {
			base = baseRadius[a.Role]
		}
		out[i] = Projected{
			Index:   i,
			Role:    a.Role,
			Label:   a.Label,
			X:       p.X(),
			Y:       p.Y(),
			Depth:   p.Z(),
			Radius:  base * (1 + p.Z()/radiusDepthScale),
			Opacity: clamp01(baseOpacity[a.Role] * (1 + p.Z()/opacityDepthScale)),
		}
	}
	return out
}

// Project rotates atoms and returns them sorted back to front.
func Project(atoms []Atom3D, r Rotation) []Projected {
	out := transform(atoms, r)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Depth < out[j].Depth })
	return out
}

// Connect returns the bonds of s under rotation r, sorted back to front.
func Connect(s Shape, r Rotation) []Bond {
	pts := transform(s.Atoms, r)
	var bonds []Bond
	if len(s.Edges) > 0 {
		for _, e := range s.Edges {
			if e.From >= len(pts) || e.To >= len(pts) {
				continue
			}
			a, b := pts[e.From], pts[e.To]
			depth := (a.Depth + b.Depth) / 2
			order := e.Order
			if order == 0 {
				order = 1
			}
			bonds = append(bonds, Bond{
				X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y,
				Depth:   depth,
				Order:   order,
				Opacity: clamp01(0.8 + depth/opacityDepthScale),
			})
		}
	} else if len(pts) > 0 {
		c := pts[0]
		for _, p := range pts[1:] {
			if p.Role == LonePair {
				bonds = append(bonds, Bond{
					X1: c.X, Y1: c.Y, X2: p.X * loneBondReach, Y2: p.Y * loneBondReach,
					Depth:   p.Depth,
					Order:   1,
					Dashed:  true,
					Opacity: 0.6,
				})
				continue
			}
			bonds = append(bonds, Bond{
				X1: c.X, Y1: c.Y, X2: p.X, Y2: p.Y,
				Depth:   p.Depth,
				Order:   1,
				Opacity: clamp01(0.8 + p.Depth/opacityDepthScale),
			})
		}
	}
	sort.SliceStable(bonds, func(i, j int) bool { return bonds[i].Depth < bonds[j].Depth })
	return bonds
}

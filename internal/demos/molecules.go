package demos

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/chemlab/internal/dynamo"
	"github.com/san-kum/chemlab/internal/param"
	"github.com/san-kum/chemlab/internal/projection"
)

const moleculeInterval = 50 * time.Millisecond

// VSEPR rotates one of the catalogued electron-pair geometries.
type VSEPR struct {
	*projection.Viewer
	params *param.Store
	shape  *revisions
}

func NewVSEPR() *VSEPR {
	v := &VSEPR{
		Viewer: projection.NewViewer(projection.VSEPRShapes[0]),
		params: param.NewStore(selector("shape", len(projection.VSEPRShapes), 0)),
	}
	v.shape = watch(v.params, "shape")
	return v
}

func (v *VSEPR) Kind() dynamo.Kind           { return dynamo.KindVSEPR }
func (v *VSEPR) Params() *param.Store        { return v.params }
func (v *VSEPR) TickInterval() time.Duration { return moleculeInterval }

func (v *VSEPR) Step(tick int) dynamo.Outputs {
	if v.shape.changed() {
		v.SetShape(projection.ShapeAt(projection.VSEPRShapes, v.params.Int("shape")))
	}
	v.Tick()
	return moleculeOutputs(v.Viewer)
}

func (v *VSEPR) Reset() {
	v.Viewer.Reset()
	v.shape.sync()
	v.SetShape(projection.ShapeAt(projection.VSEPRShapes, v.params.Int("shape")))
}

func (v *VSEPR) Labels() map[string]string { return shapeLabels(v.Shape()) }

func moleculeOutputs(v *projection.Viewer) dynamo.Outputs {
	s := v.Shape()
	r := v.Rotation()
	return dynamo.Outputs{
		"pitch":     r.Pitch,
		"yaw":       r.Yaw,
		"atoms":     float64(len(s.Atoms)),
		"bondPairs": float64(s.BondPairs),
		"lonePairs": float64(s.LonePairs),
		"dragging":  dynamo.Bool(v.Dragging()),
	}
}

func shapeLabels(s projection.Shape) map[string]string {
	labels := map[string]string{
		"shape":    s.Name,
		"geometry": s.Geometry,
		"angle":    s.Angle,
	}
	if s.Formula != "" {
		labels["formula"] = s.Formula
	}
	return labels
}

// BenzeneViews is indexed by the benzene "view" parameter.
var BenzeneViews = []string{"kekule", "delocalized", "3d"}

type Benzene struct {
	*projection.Viewer
	params  *param.Store
	variant *revisions
}

func NewBenzene() *Benzene {
	b := &Benzene{
		params: param.NewStore(
			selector("view", len(BenzeneViews), 0),
			toggle("hydrogens", true),
		),
	}
	b.Viewer = projection.NewViewer(b.shape())
	b.variant = watch(b.params, "view", "hydrogens")
	return b
}

func (b *Benzene) Kind() dynamo.Kind           { return dynamo.KindBenzene }
func (b *Benzene) Params() *param.Store        { return b.params }
func (b *Benzene) TickInterval() time.Duration { return moleculeInterval }

func (b *Benzene) view() string { return pick(BenzeneViews, b.params.Int("view")) }

func (b *Benzene) shape() projection.Shape {
	return projection.Benzene(b.view() == "kekule", b.params.Flag("hydrogens"))
}

func (b *Benzene) Step(tick int) dynamo.Outputs {
	if b.variant.changed() {
		b.SetShape(b.shape())
	}
	b.Tick()

	out := moleculeOutputs(b.Viewer)
	double := 0
	for _, e := range b.Shape().Edges {
		if e.Order == 2 {
			double++
		}
	}
	out["doubleBonds"] = float64(double)
	out["hydrogens"] = float64(len(b.Shape().Atoms) - 6)
	out["ringBondOrder"] = 1.5
	return out
}

func (b *Benzene) Reset() {
	b.Viewer.Reset()
	b.variant.sync()
	b.SetShape(b.shape())
}

func (b *Benzene) Labels() map[string]string {
	labels := shapeLabels(b.Shape())
	labels["view"] = b.view()
	return labels
}

// CovalentMolecule is one entry of the shared-pair catalogue.
type CovalentMolecule struct {
	Formula     string
	BondOrder   int
	Bonds       int
	SharedPairs int
	Polar       bool
	Angle       float64
	Shape       projection.Shape
}

func diatomic(a, b string, order int) projection.Shape {
	return projection.Shape{
		Name:      a + b,
		Formula:   a + b,
		Geometry:  "linear",
		Angle:     "180°",
		BondPairs: 1,
		Atoms: []projection.Atom3D{
			{Position: mgl64.Vec3{-40, 0, 0}, Role: projection.Central, Label: a},
			{Position: mgl64.Vec3{40, 0, 0}, Role: projection.Bonded, Label: b},
		},
		Edges: []projection.Edge{{From: 0, To: 1, Order: order}},
	}
}

// CovalentMolecules is indexed by the covalent "molecule" parameter.
var CovalentMolecules = []CovalentMolecule{
	{Formula: "H2", BondOrder: 1, Bonds: 1, SharedPairs: 1, Angle: 180, Shape: diatomic("H", "H", 1)},
	{Formula: "O2", BondOrder: 2, Bonds: 1, SharedPairs: 2, Angle: 180, Shape: diatomic("O", "O", 2)},
	{Formula: "N2", BondOrder: 3, Bonds: 1, SharedPairs: 3, Angle: 180, Shape: diatomic("N", "N", 3)},
	{Formula: "HCl", BondOrder: 1, Bonds: 1, SharedPairs: 1, Polar: true, Angle: 180, Shape: diatomic("H", "Cl", 1)},
	{Formula: "H2O", BondOrder: 1, Bonds: 2, SharedPairs: 2, Polar: true, Angle: 104.5, Shape: projection.Shape{
		Name:      "H2O",
		Formula:   "H2O",
		Geometry:  "bent",
		Angle:     "104.5°",
		BondPairs: 2,
		LonePairs: 2,
		Atoms: []projection.Atom3D{
			{Role: projection.Central, Label: "O"},
			{Position: mgl64.Vec3{-47.4, 36.7, 0}, Role: projection.Bonded, Label: "H"},
			{Position: mgl64.Vec3{47.4, 36.7, 0}, Role: projection.Bonded, Label: "H"},
		},
	}},
}

// Covalent shows a static shared-pair diagram; its outputs only change with
// the selection.
type Covalent struct {
	params *param.Store
}

func NewCovalent() *Covalent {
	return &Covalent{
		params: param.NewStore(
			selector("molecule", len(CovalentMolecules), 0),
			toggle("electrons", true),
		),
	}
}

func (c *Covalent) Kind() dynamo.Kind           { return dynamo.KindCovalent }
func (c *Covalent) Params() *param.Store        { return c.params }
func (c *Covalent) TickInterval() time.Duration { return 200 * time.Millisecond }

func (c *Covalent) Molecule() CovalentMolecule {
	return pick(CovalentMolecules, c.params.Int("molecule"))
}

func (c *Covalent) Step(tick int) dynamo.Outputs {
	m := c.Molecule()
	shown := 0
	if c.params.Flag("electrons") {
		shown = 2 * m.SharedPairs
	}
	return dynamo.Outputs{
		"bondOrder":       float64(m.BondOrder),
		"bonds":           float64(m.Bonds),
		"sharedPairs":     float64(m.SharedPairs),
		"sharedElectrons": float64(shown),
		"polar":           dynamo.Bool(m.Polar),
		"angle":           m.Angle,
	}
}

func (c *Covalent) Reset() {}

func (c *Covalent) Atoms() []projection.Projected {
	return projection.Project(c.Molecule().Shape.Atoms, projection.Rotation{})
}

func (c *Covalent) Bonds() []projection.Bond {
	return projection.Connect(c.Molecule().Shape, projection.Rotation{})
}

func (c *Covalent) Labels() map[string]string {
	m := c.Molecule()
	kind := "nonpolar"
	if m.Polar {
		kind = "polar"
	}
	return map[string]string{"molecule": m.Formula, "bond": kind}
}

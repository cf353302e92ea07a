package projection

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/chemlab/internal/dynamo"
)

type Role int

const (
	Central Role = iota
	Bonded
	LonePair
)

func (r Role) String() string {
	switch r {
	case Central:
		return "central"
	case Bonded:
		return "bonded"
	case LonePair:
		return "lone-pair"
	default:
		return "unknown"
	}
}

type Atom3D struct {
	Position mgl64.Vec3
	Role     Role
	Label    string
	// Radius overrides the role's base radius when positive.
	Radius float64
}

// Edge joins two atoms by index. Order is 1, 2 or 3; zero means single.
type Edge struct {
	From, To int
	Order    int
}

type Shape struct {
	Name      string
	Formula   string
	Geometry  string
	Angle     string
	BondPairs int
	LonePairs int
	Atoms     []Atom3D
	// Edges lists explicit bonds. When empty, every non-central atom is
	// joined to atom 0.
	Edges []Edge
}

const scale = 60.0

func central(label string) Atom3D { return Atom3D{Role: Central, Label: label} }

func bonded(x, y, z float64) Atom3D {
	return Atom3D{Position: mgl64.Vec3{x, y, z}, Role: Bonded}
}

func lone(x, y, z float64) Atom3D {
	return Atom3D{Position: mgl64.Vec3{x, y, z}, Role: LonePair}
}

// VSEPRShapes is ordered as the shape selector parameter indexes it.
var VSEPRShapes = []Shape{
	{
		Name: "linear", Formula: "AX2", Geometry: "linear", Angle: "180°", BondPairs: 2,
		Atoms: []Atom3D{central("Be"), bonded(-scale, 0, 0), bonded(scale, 0, 0)},
	},
	{
		Name: "trigonal-planar", Formula: "AX3", Geometry: "trigonal planar", Angle: "120°", BondPairs: 3,
		Atoms: []Atom3D{
			central("B"),
			bonded(0, -scale, 0),
			bonded(scale*0.866, scale*0.5, 0),
			bonded(-scale*0.866, scale*0.5, 0),
		},
	},
	{
		Name: "bent-ax2e", Formula: "AX2E", Geometry: "bent", Angle: "~117°", BondPairs: 2, LonePairs: 1,
		Atoms: []Atom3D{
			central("S"),
			bonded(-scale*0.866, scale*0.5, 0),
			bonded(scale*0.866, scale*0.5, 0),
			lone(0, -scale*0.8, 0),
		},
	},
	{
		Name: "tetrahedral", Formula: "AX4", Geometry: "tetrahedral", Angle: "109.5°", BondPairs: 4,
		Atoms: []Atom3D{
			central("C"),
			bonded(0, -scale, 0),
			bonded(scale*0.943, scale*0.333, 0),
			bonded(-scale*0.471, scale*0.333, scale*0.816),
			bonded(-scale*0.471, scale*0.333, -scale*0.816),
		},
	},
	{
		Name: "trigonal-pyramidal", Formula: "AX3E", Geometry: "trigonal pyramidal", Angle: "~107°", BondPairs: 3, LonePairs: 1,
		Atoms: []Atom3D{
			central("N"),
			bonded(0, scale*0.6, scale*0.8),
			bonded(scale*0.693, scale*0.6, -scale*0.4),
			bonded(-scale*0.693, scale*0.6, -scale*0.4),
			lone(0, -scale*0.8, 0),
		},
	},
	{
		Name: "bent-ax2e2", Formula: "AX2E2", Geometry: "bent", Angle: "~104.5°", BondPairs: 2, LonePairs: 2,
		Atoms: []Atom3D{
			central("O"),
			bonded(-scale*0.6, scale*0.5, 0),
			bonded(scale*0.6, scale*0.5, 0),
			lone(0, -scale*0.5, scale*0.5),
			lone(0, -scale*0.5, -scale*0.5),
		},
	},
}

// HybridShapes covers sp through sp3d2, indexed like the hybridization selector.
var HybridShapes = []Shape{
	{
		Name: "sp", Geometry: "linear", Angle: "180°", BondPairs: 2,
		Atoms: []Atom3D{central("Be"), bonded(-scale, 0, 0), bonded(scale, 0, 0)},
	},
	{
		Name: "sp2", Geometry: "trigonal planar", Angle: "120°", BondPairs: 3,
		Atoms: []Atom3D{
			central("B"),
			bonded(0, -scale, 0),
			bonded(scale*0.866, scale*0.5, 0),
			bonded(-scale*0.866, scale*0.5, 0),
		},
	},
	{
		Name: "sp3", Geometry: "tetrahedral", Angle: "109.5°", BondPairs: 4,
		Atoms: []Atom3D{
			central("C"),
			bonded(0, -scale, 0),
			bonded(scale*0.943, scale*0.333, 0),
			bonded(-scale*0.471, scale*0.333, scale*0.816),
			bonded(-scale*0.471, scale*0.333, -scale*0.816),
		},
	},
	{
		Name: "sp3d", Geometry: "trigonal bipyramidal", Angle: "90°/120°", BondPairs: 5,
		Atoms: []Atom3D{
			central("P"),
			bonded(0, -scale, 0),
			bonded(0, scale, 0),
			bonded(scale, 0, 0),
			bonded(-scale*0.5, 0, scale*0.866),
			bonded(-scale*0.5, 0, -scale*0.866),
		},
	},
	{
		Name: "sp3d2", Geometry: "octahedral", Angle: "90°", BondPairs: 6,
		Atoms: []Atom3D{
			central("S"),
			bonded(scale, 0, 0),
			bonded(-scale, 0, 0),
			bonded(0, scale, 0),
			bonded(0, -scale, 0),
			bonded(0, 0, scale),
			bonded(0, 0, -scale),
		},
	},
}

const (
	benzeneCarbonRadius   = 40.0
	benzeneHydrogenRadius = 65.0
)

// Benzene builds the C6H6 ring in the xy plane. Carbons are atoms 0..5 and
// hydrogens 6..11. Kekule structures alternate single and double bonds;
// otherwise every ring bond is drawn as order 1.
func Benzene(kekule, hydrogens bool) Shape {
	s := Shape{Name: "benzene", Formula: "C6H6", Geometry: "planar hexagon", Angle: "120°", BondPairs: 3}
	for i := 0; i < 6; i++ {
		a := mgl64.DegToRad(float64(i*60 - 90))
		s.Atoms = append(s.Atoms, Atom3D{
			Position: mgl64.Vec3{benzeneCarbonRadius * cos(a), benzeneCarbonRadius * sin(a), 0},
			Role:     Bonded,
			Label:    "C",
			Radius:   10,
		})
	}
	for i := 0; i < 6; i++ {
		order := 1
		if kekule && i%2 == 1 {
			order = 2
		}
		s.Edges = append(s.Edges, Edge{From: i, To: (i + 1) % 6, Order: order})
	}
	if !hydrogens {
		return s
	}
	for i := 0; i < 6; i++ {
		a := mgl64.DegToRad(float64(i*60 - 90))
		s.Atoms = append(s.Atoms, Atom3D{
			Position: mgl64.Vec3{benzeneHydrogenRadius * cos(a), benzeneHydrogenRadius * sin(a), 0},
			Role:     Bonded,
			Label:    "H",
			Radius:   6,
		})
		s.Edges = append(s.Edges, Edge{From: i, To: 6 + i, Order: 1})
	}
	return s
}

// ShapeByName looks a VSEPR or hybrid shape up by name.
func ShapeByName(name string) (Shape, error) {
	for _, table := range [][]Shape{VSEPRShapes, HybridShapes} {
		for _, s := range table {
			if s.Name == name {
				return s, nil
			}
		}
	}
	return Shape{}, fmt.Errorf("%w: %s", dynamo.ErrUnknownShape, name)
}

// ShapeAt indexes table, clamping out-of-range indices to the ends.
func ShapeAt(table []Shape, i int) Shape {
	if i < 0 {
		i = 0
	}
	if i >= len(table) {
		i = len(table) - 1
	}
	return table[i]
}

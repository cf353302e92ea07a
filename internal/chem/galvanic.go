package chem

const (
	InitialElectrodeMass = 100.0
	ZincLossPerPulse     = 0.5
	CopperGainPerPulse   = 0.3
	MaxCopperMass        = 200.0
)

// Cell tracks electrode masses of a Zn/Cu galvanic cell in grams.
type Cell struct {
	ZincMass   float64
	CopperMass float64
}

func NewCell() Cell {
	return Cell{ZincMass: InitialElectrodeMass, CopperMass: InitialElectrodeMass}
}

// Pulse advances the cell by one discharge pulse. Zinc dissolves at the
// anode and copper plates at the cathode; both masses saturate.
func (c Cell) Pulse() Cell {
	zinc := c.ZincMass - ZincLossPerPulse
	if zinc < 0 {
		zinc = 0
	}
	copper := c.CopperMass + CopperGainPerPulse
	if copper > MaxCopperMass {
		copper = MaxCopperMass
	}
	return Cell{ZincMass: zinc, CopperMass: copper}
}

// Exhausted reports whether the zinc anode is fully consumed.
func (c Cell) Exhausted() bool {
	return c.ZincMass <= 0
}

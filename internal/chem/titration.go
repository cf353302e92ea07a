package chem

import "math"

const (
	// MaxTitrantVolume is the burette capacity in mL.
	MaxTitrantVolume = 50.0
	// NeutralPH is reported exactly at the equivalence point.
	NeutralPH = 7.0
)

// Titration describes a strong acid titrant added to a strong base analyte.
type Titration struct {
	AnalyteVolume        float64 // mL
	AnalyteConcentration float64 // mol/L
	TitrantConcentration float64 // mol/L
}

// DefaultTitration is 0.1 M HCl into 25 mL of 0.1 M NaOH.
func DefaultTitration() Titration {
	return Titration{
		AnalyteVolume:        25,
		AnalyteConcentration: 0.1,
		TitrantConcentration: 0.1,
	}
}

func moles(volumeML, concentration float64) float64 {
	return volumeML * 0.001 * concentration
}

// EquivalenceVolume is the titrant volume that exactly neutralizes the analyte.
func (t Titration) EquivalenceVolume() float64 {
	if t.TitrantConcentration <= 0 {
		return math.Inf(1)
	}
	return t.AnalyteVolume * t.AnalyteConcentration / t.TitrantConcentration
}

// PH returns the solution pH after v mL of titrant. Negative volumes are
// treated as zero. Each side of the equivalence point is held on its own
// side of neutral so the curve never rises as titrant is added.
func (t Titration) PH(v float64) float64 {
	if v < 0 {
		v = 0
	}
	base := moles(t.AnalyteVolume, t.AnalyteConcentration)
	acid := moles(v, t.TitrantConcentration)
	litres := (t.AnalyteVolume + v) / 1000

	switch {
	case acid < base:
		excessOH := (base - acid) / litres
		pOH := -math.Log10(excessOH)
		return math.Max(NeutralPH, math.Min(14, 14-pOH))
	case acid > base:
		excessH := (acid - base) / litres
		return math.Min(NeutralPH, math.Max(0, -math.Log10(excessH)))
	default:
		return NeutralPH
	}
}

// TitrationPH evaluates the default titration at v mL.
func TitrationPH(v float64) float64 {
	return DefaultTitration().PH(v)
}

// EquivalenceVolume of the default titration.
func EquivalenceVolume() float64 {
	return DefaultTitration().EquivalenceVolume()
}

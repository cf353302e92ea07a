package chem

import "fmt"

type RGB struct {
	R, G, B uint8
}

func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func lerpColor(a, b RGB, t float64) RGB {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return RGB{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B)}
}

// Indicator changes colour across the pH range [Low, High].
type Indicator struct {
	Name        string
	Low, High   float64
	LowColor    RGB
	HighColor   RGB
	LowOpacity  float64
	HighOpacity float64
}

// Tint is the solution colour for a given pH.
type Tint struct {
	Color   RGB
	Opacity float64
	Blend   float64 // 0 at or below Low, 1 at or above High
}

func (t Tint) Transparent() bool {
	return t.Opacity == 0
}

var (
	Phenolphthalein = Indicator{
		Name:        "phenolphthalein",
		Low:         8.2,
		High:        10,
		LowColor:    RGB{255, 105, 180},
		HighColor:   RGB{255, 105, 180},
		LowOpacity:  0,
		HighOpacity: 0.6,
	}
	MethylOrange = Indicator{
		Name:        "methyl-orange",
		Low:         3.1,
		High:        4.4,
		LowColor:    RGB{255, 69, 0},
		HighColor:   RGB{255, 215, 0},
		LowOpacity:  0.6,
		HighOpacity: 0.6,
	}
)

// Indicators is indexed by the titration "indicator" parameter.
var Indicators = []Indicator{Phenolphthalein, MethylOrange}

func (in Indicator) Tint(pH float64) Tint {
	var blend float64
	switch {
	case pH <= in.Low:
		blend = 0
	case pH >= in.High:
		blend = 1
	default:
		blend = (pH - in.Low) / (in.High - in.Low)
	}
	return Tint{
		Color:   lerpColor(in.LowColor, in.HighColor, blend),
		Opacity: in.LowOpacity + (in.HighOpacity-in.LowOpacity)*blend,
		Blend:   blend,
	}
}

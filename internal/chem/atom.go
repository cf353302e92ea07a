package chem

import "math"

type Element struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Protons  int    `json:"protons"`
	Neutrons int    `json:"neutrons"`
	Shells   []int  `json:"shells"`
}

func (e Element) Electrons() int {
	n := 0
	for _, c := range e.Shells {
		n += c
	}
	return n
}

// Valence is the occupancy of the outermost shell.
func (e Element) Valence() int {
	if len(e.Shells) == 0 {
		return 0
	}
	return e.Shells[len(e.Shells)-1]
}

func (e Element) MassNumber() int {
	return e.Protons + e.Neutrons
}

// Elements lists hydrogen through argon.
var Elements = []Element{
	{"H", "hydrogen", 1, 0, []int{1}},
	{"He", "helium", 2, 2, []int{2}},
	{"Li", "lithium", 3, 4, []int{2, 1}},
	{"Be", "beryllium", 4, 5, []int{2, 2}},
	{"B", "boron", 5, 6, []int{2, 3}},
	{"C", "carbon", 6, 6, []int{2, 4}},
	{"N", "nitrogen", 7, 7, []int{2, 5}},
	{"O", "oxygen", 8, 8, []int{2, 6}},
	{"F", "fluorine", 9, 10, []int{2, 7}},
	{"Ne", "neon", 10, 10, []int{2, 8}},
	{"Na", "sodium", 11, 12, []int{2, 8, 1}},
	{"Mg", "magnesium", 12, 12, []int{2, 8, 2}},
	{"Al", "aluminium", 13, 14, []int{2, 8, 3}},
	{"Si", "silicon", 14, 14, []int{2, 8, 4}},
	{"P", "phosphorus", 15, 16, []int{2, 8, 5}},
	{"S", "sulfur", 16, 16, []int{2, 8, 6}},
	{"Cl", "chlorine", 17, 18, []int{2, 8, 7}},
	{"Ar", "argon", 18, 22, []int{2, 8, 8}},
}

// ShellRadii are the drawing radii of the first three shells.
var ShellRadii = []float64{30, 55, 80}

// OrbitPeriod is the time in seconds for shell s to complete a revolution.
func OrbitPeriod(shell int) float64 {
	return float64(3 + shell)
}

// OrbitAngle is the angle in radians of electron index out of count on shell
// after elapsed seconds. Electrons start evenly spaced from the top.
func OrbitAngle(shell, index, count int, elapsed float64) float64 {
	if count <= 0 {
		return 0
	}
	start := float64(index)/float64(count)*2*math.Pi - math.Pi/2
	return start + 2*math.Pi*elapsed/OrbitPeriod(shell)
}

// CloudOpacity is the electron-cloud shading of a shell holding count electrons.
func CloudOpacity(count int) float64 {
	return 0.1 + float64(count)/8*0.2
}

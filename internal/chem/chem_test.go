package chem

import (
	"math"
	"testing"
)

func TestRateGapShrinksUntilHorizon(t *testing.T) {
	in := RateInputs{Temperature: 25, Pressure: 1, Concentration: 1}

	prev := RateConvergence(in, 0, EquilibriumHorizon).Gap()
	if math.Abs(prev-20) > 1e-9 {
		t.Fatalf("expected initial gap 20, got %f", prev)
	}
	for tick := 1; tick <= EquilibriumHorizon; tick++ {
		gap := RateConvergence(in, tick, EquilibriumHorizon).Gap()
		if gap >= prev {
			t.Fatalf("gap did not shrink at tick %d: %f >= %f", tick, gap, prev)
		}
		prev = gap
	}

	after := RateConvergence(in, EquilibriumHorizon+10, EquilibriumHorizon)
	if after.Gap() != prev {
		t.Errorf("gap should hold after horizon, got %f want %f", after.Gap(), prev)
	}
	if !after.Reached() {
		t.Error("expected convergence past horizon")
	}
}

func TestBaseRatesRespondToConditions(t *testing.T) {
	cold, _ := BaseRates(RateInputs{Temperature: 0, Pressure: 1, Concentration: 1})
	hot, _ := BaseRates(RateInputs{Temperature: 100, Pressure: 1, Concentration: 1})
	if hot >= cold {
		t.Errorf("heating should slow the forward rate: cold=%f hot=%f", cold, hot)
	}

	_, lowP := BaseRates(RateInputs{Temperature: 25, Pressure: 0.5, Concentration: 1})
	_, highP := BaseRates(RateInputs{Temperature: 25, Pressure: 5, Concentration: 1})
	if highP >= lowP {
		t.Errorf("pressure should slow the reverse rate: low=%f high=%f", lowP, highP)
	}

	f, r := BaseRates(RateInputs{Temperature: 25, Pressure: 0, Concentration: 1})
	if math.IsInf(f, 0) || math.IsInf(r, 0) || math.IsNaN(r) {
		t.Errorf("zero pressure should stay finite, got %f %f", f, r)
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		tick, horizon int
		want          float64
	}{
		{0, 20, 0},
		{-3, 20, 0},
		{10, 20, 0.5},
		{20, 20, 1},
		{45, 20, 1},
		{5, 0, 1},
	}
	for _, tt := range tests {
		if got := Progress(tt.tick, tt.horizon); got != tt.want {
			t.Errorf("Progress(%d, %d) = %f, want %f", tt.tick, tt.horizon, got, tt.want)
		}
	}
}

func TestTitrationEquivalencePoint(t *testing.T) {
	if got := TitrationPH(EquivalenceVolume()); got != NeutralPH {
		t.Errorf("expected pH exactly 7 at equivalence, got %v", got)
	}
	if EquivalenceVolume() != 25 {
		t.Errorf("expected equivalence at 25 mL, got %v", EquivalenceVolume())
	}
}

func TestTitrationCurve(t *testing.T) {
	tests := []struct {
		name   string
		volume float64
		check  func(float64) bool
	}{
		{"start is basic", 0, func(ph float64) bool { return math.Abs(ph-13) < 1e-9 }},
		{"negative volume treated as zero", -5, func(ph float64) bool { return math.Abs(ph-13) < 1e-9 }},
		{"before equivalence", 24.5, func(ph float64) bool { return ph > 10 }},
		{"after equivalence", 25.5, func(ph float64) bool { return ph < 4 }},
		{"full burette", MaxTitrantVolume, func(ph float64) bool { return ph < 2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if ph := TitrationPH(tt.volume); !tt.check(ph) {
				t.Errorf("unexpected pH %f at %f mL", ph, tt.volume)
			}
		})
	}
}

func TestTitrationMonotone(t *testing.T) {
	prev := TitrationPH(0)
	for i := 1; i <= 1000; i++ {
		v := float64(i) * 0.05
		ph := TitrationPH(v)
		if ph > prev {
			t.Fatalf("pH rose from %f to %f at %f mL", prev, ph, v)
		}
		if ph < 0 || ph > 14 {
			t.Fatalf("pH %f out of range at %f mL", ph, v)
		}
		prev = ph
	}
}

func TestIndicatorTint(t *testing.T) {
	tests := []struct {
		name        string
		ind         Indicator
		pH          float64
		wantOpacity float64
		wantColor   RGB
	}{
		{"phenolphthalein acidic", Phenolphthalein, 7, 0, RGB{255, 105, 180}},
		{"phenolphthalein midpoint", Phenolphthalein, 9.1, 0.3, RGB{255, 105, 180}},
		{"phenolphthalein basic", Phenolphthalein, 12, 0.6, RGB{255, 105, 180}},
		{"methyl orange acidic", MethylOrange, 2, 0.6, RGB{255, 69, 0}},
		{"methyl orange basic", MethylOrange, 9, 0.6, RGB{255, 215, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tint := tt.ind.Tint(tt.pH)
			if math.Abs(tint.Opacity-tt.wantOpacity) > 1e-9 {
				t.Errorf("opacity %f, want %f", tint.Opacity, tt.wantOpacity)
			}
			if tint.Color != tt.wantColor {
				t.Errorf("color %v, want %v", tint.Color, tt.wantColor)
			}
		})
	}

	if !Phenolphthalein.Tint(3).Transparent() {
		t.Error("phenolphthalein should be colourless in acid")
	}
	if got := (RGB{255, 105, 180}).Hex(); got != "#ff69b4" {
		t.Errorf("unexpected hex %s", got)
	}
}

func TestRedoxPhases(t *testing.T) {
	tests := []struct {
		progress float64
		want     RedoxPhase
	}{
		{0, PhaseInitial},
		{18, PhaseInitial},
		{20, PhaseTransfer},
		{78, PhaseTransfer},
		{80, PhaseForming},
		{98, PhaseForming},
		{100, PhaseComplete},
	}
	for _, tt := range tests {
		if got := RedoxPhaseAt(tt.progress); got != tt.want {
			t.Errorf("RedoxPhaseAt(%v) = %v, want %v", tt.progress, got, tt.want)
		}
	}

	if !RedoxVisualAt(40).ShowTransfer || RedoxVisualAt(90).ShowTransfer {
		t.Error("transfer arrow should only show mid-reaction")
	}
	if !RedoxVisualAt(100).ShowProduct {
		t.Error("product should show at completion")
	}
}

func TestSpawnsElectron(t *testing.T) {
	var spawned []int
	for p := 0; p <= 100; p += 2 {
		if SpawnsElectron(p) {
			spawned = append(spawned, p)
		}
	}
	want := []int{30, 40, 50, 60, 70}
	if len(spawned) != len(want) {
		t.Fatalf("spawned at %v, want %v", spawned, want)
	}
	for i := range want {
		if spawned[i] != want[i] {
			t.Fatalf("spawned at %v, want %v", spawned, want)
		}
	}
}

func TestCellSaturates(t *testing.T) {
	c := NewCell()
	for i := 0; i < 500; i++ {
		c = c.Pulse()
	}
	if c.ZincMass != 0 || !c.Exhausted() {
		t.Errorf("zinc should bottom out at 0, got %f", c.ZincMass)
	}
	if c.CopperMass != MaxCopperMass {
		t.Errorf("copper should cap at %f, got %f", MaxCopperMass, c.CopperMass)
	}
}

func TestElements(t *testing.T) {
	if len(Elements) != 18 {
		t.Fatalf("expected 18 elements, got %d", len(Elements))
	}
	for _, e := range Elements {
		if e.Electrons() != e.Protons {
			t.Errorf("%s: %d electrons for %d protons", e.Symbol, e.Electrons(), e.Protons)
		}
	}
	cl := Elements[16]
	if cl.Symbol != "Cl" || cl.Valence() != 7 || cl.MassNumber() != 35 {
		t.Errorf("unexpected chlorine entry %+v", cl)
	}
}

func TestOrbitAngle(t *testing.T) {
	start := OrbitAngle(0, 0, 2, 0)
	if math.Abs(start+math.Pi/2) > 1e-12 {
		t.Errorf("first electron should start at the top, got %f", start)
	}
	full := OrbitAngle(1, 0, 2, OrbitPeriod(1))
	if math.Abs(full-(start+2*math.Pi)) > 1e-12 {
		t.Errorf("expected one revolution after the period, got %f", full)
	}
	if OrbitAngle(0, 0, 0, 1) != 0 {
		t.Error("empty shell should report zero angle")
	}
}

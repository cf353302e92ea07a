package demos

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/san-kum/chemlab/internal/dynamo"
	"github.com/san-kum/chemlab/internal/sim"
)

var (
	_ sim.Simulation     = (*Equilibrium)(nil)
	_ sim.Timed          = (*Equilibrium)(nil)
	_ sim.Windowed       = (*Equilibrium)(nil)
	_ sim.EventSource    = (*Equilibrium)(nil)
	_ sim.Labeled        = (*Titration)(nil)
	_ sim.Settler        = (*Titration)(nil)
	_ sim.Paced          = (*Atom)(nil)
	_ sim.ParticleSource = (*Dispersion)(nil)
	_ sim.ParticleSource = (*Matter)(nil)
	_ sim.ParticleSource = (*Redox)(nil)
	_ sim.ParticleSource = (*Galvanic)(nil)
	_ sim.ParticleSource = (*Atom)(nil)
	_ sim.Rotatable      = (*VSEPR)(nil)
	_ sim.MoleculeSource = (*VSEPR)(nil)
	_ sim.Rotatable      = (*Benzene)(nil)
	_ sim.MoleculeSource = (*Covalent)(nil)
	_ sim.Stepped        = (*Hybridization)(nil)
	_ sim.Stepped        = (*Ionic)(nil)
	_ sim.Labeled        = (*Placeholder)(nil)
)

// run steps s through ticks from..n and returns the last outputs.
func run(s sim.Simulation, from, n int) dynamo.Outputs {
	var out dynamo.Outputs
	for tick := from; tick <= n; tick++ {
		out = s.Step(tick)
	}
	return out
}

func TestEquilibriumRaisesEventOnce(t *testing.T) {
	e := NewEquilibrium()

	var events []string
	prevGap := math.Inf(1)
	for tick := 1; tick <= 40; tick++ {
		out := e.Step(tick)
		events = append(events, e.DrainEvents()...)
		if tick <= 20 {
			if out["gap"] >= prevGap {
				t.Errorf("tick %d: gap %f did not shrink from %f", tick, out["gap"], prevGap)
			}
			prevGap = out["gap"]
		}
		if tick == 19 && len(events) != 0 {
			t.Fatalf("event raised before convergence")
		}
	}
	if len(events) != 1 || events[0] != EventEquilibriumReached {
		t.Fatalf("expected one equilibrium event, got %v", events)
	}

	e.Reset()
	run(e, 1, 20)
	if got := e.DrainEvents(); len(got) != 1 {
		t.Errorf("expected the event again after reset, got %v", got)
	}
}

func TestEquilibriumParamEditAppliesNextTick(t *testing.T) {
	e := NewEquilibrium()
	before := e.Step(1)
	e.Params().Set("temperature", 80)
	after := e.Step(2)
	if after["forward"] >= before["forward"] {
		t.Errorf("heating should slow the forward rate: %f -> %f", before["forward"], after["forward"])
	}
}

func TestTitrationCurve(t *testing.T) {
	tr := NewTitration()

	if labels := tr.Labels(); labels["color"] != "#ff69b4" {
		t.Errorf("basic solution should be pink, got %v", labels)
	}

	out := run(tr, 1, 50)
	if out["volume"] != 25 || out["ph"] != 7 {
		t.Errorf("expected pH 7 at 25 mL, got %v at %v", out["ph"], out["volume"])
	}

	out = run(tr, 51, 100)
	if out["volume"] != 50 || out["ph"] >= 2 {
		t.Errorf("expected pH below 2 at 50 mL, got %v at %v", out["ph"], out["volume"])
	}
	if out["dropping"] != 1 {
		t.Errorf("dropping stops on the tick after the burette empties")
	}
	out = tr.Step(101)
	if out["dropping"] != 0 || out["volume"] != 50 {
		t.Errorf("expected dropping to stop at 50 mL, got %v", out)
	}
	if labels := tr.Labels(); labels["color"] != "transparent" {
		t.Errorf("acidic solution should be colourless, got %v", labels)
	}
}

func TestTitrationIndicatorChangeRestarts(t *testing.T) {
	tr := NewTitration()
	run(tr, 1, 10)

	tr.Params().Set("indicator", 1)
	out := tr.Step(11)
	if out["volume"] != 0 || out["dropping"] != 0 {
		t.Errorf("indicator change should restart the run, got %v", out)
	}
	want := map[string]string{"indicator": "methyl-orange", "color": "#ffd700"}
	if diff := cmp.Diff(want, tr.Labels()); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestTitrationSettledIndicatorKeepsDropping(t *testing.T) {
	tr := NewTitration()
	tr.Params().Set("indicator", 1)
	tr.Settle()

	out := tr.Step(1)
	if out["volume"] != DropVolume || out["dropping"] != 1 {
		t.Errorf("an indicator chosen before the run should not restart it, got %v", out)
	}
}

func TestDispersionVariants(t *testing.T) {
	d := NewDispersion(1)
	if out := d.Step(1); out["count"] != 50 || out["tyndall"] != 0 {
		t.Errorf("unexpected solution outputs %v", out)
	}

	d.Params().Set("tyndall", 1)
	if out := d.Step(2); out["tyndall"] != 0 {
		t.Error("a solution must not scatter the beam")
	}

	d.Params().Set("system", 1)
	out := d.Step(3)
	if out["count"] != 25 || out["tyndall"] != 1 {
		t.Errorf("expected reseeded colloid with beam, got %v", out)
	}
	for _, p := range d.Particles() {
		if p.Tag != "colloidal" || p.Radius < 8 || p.Radius > 10 {
			t.Fatalf("unexpected particle after reseed %+v", p)
		}
	}

	d.Params().Set("system", 2)
	out = run(d, 4, 1000)
	if out["settled"] != 15 || out["tyndall"] != 0 {
		t.Errorf("expected every suspended particle on the floor, got %v", out)
	}
}

func TestMatterPause(t *testing.T) {
	m := NewMatter(2)
	m.Params().Set("type", 2)
	out := m.Step(1)
	if out["bodies"] != 20 || out["atoms"] != 30 || out["pure"] != 0 {
		t.Errorf("unexpected mixture outputs %v", out)
	}

	m.Params().Set("animate", 0)
	before := m.Particles()
	run(m, 2, 10)
	if diff := cmp.Diff(before, m.Particles()); diff != "" {
		t.Errorf("paused particles moved (-before +after):\n%s", diff)
	}
}

func TestRedoxProgress(t *testing.T) {
	r := NewRedox()

	out := run(r, 1, 35)
	if out["electrons"] != 5 {
		t.Errorf("expected 5 electrons in flight, got %v", out["electrons"])
	}
	if out["phase"] != 1 {
		t.Errorf("expected transfer phase, got %v", out["phase"])
	}

	out = run(r, 36, 60)
	if out["progress"] != 100 || out["electrons"] != 0 || out["showProduct"] != 1 {
		t.Errorf("unexpected final outputs %v", out)
	}
	if r.Params().Flag("playing") {
		t.Error("playback should stop once complete")
	}

	r.Params().Set("reaction", 1)
	out = r.Step(61)
	if out["progress"] != 0 {
		t.Errorf("reaction change should restart, got progress %v", out["progress"])
	}
	if got := r.Labels()["equation"]; got != "2Na + Cl2 → 2NaCl" {
		t.Errorf("unexpected equation %q", got)
	}
}

func TestGalvanicPulses(t *testing.T) {
	g := NewGalvanic()

	out := run(g, 1, 10)
	if out["zinc"] != 99.5 || math.Abs(out["copper"]-100.3) > 1e-9 || out["electrons"] != 1 {
		t.Errorf("unexpected outputs after first pulse %v", out)
	}
	ps := g.Particles()
	if len(ps) != 1 || ps[0].X != 70 || ps[0].Y != 90 {
		t.Errorf("new electron should start at the zinc electrode, got %+v", ps)
	}

	out = run(g, 11, 19)
	if out["electrons"] != 1 {
		t.Errorf("electron should still be in the wire, got %v", out["electrons"])
	}
	out = g.Step(20)
	if out["electrons"] != 1 || g.Particles()[0].ID != 1 {
		t.Errorf("expected the first electron replaced by the second, got %+v", g.Particles())
	}

	g.Params().Set("running", 0)
	out = run(g, 21, 60)
	if out["zinc"] != 99 || out["voltage"] != 0 {
		t.Errorf("paused cell should not change, got %v", out)
	}

	g.Reset()
	if g.Cell() != (NewGalvanic().Cell()) || len(g.Particles()) != 0 {
		t.Error("reset should restore the electrodes")
	}
}

func TestVSEPRRotation(t *testing.T) {
	v := NewVSEPR()
	out := run(v, 1, 4)
	if out["yaw"] != 2 {
		t.Errorf("expected yaw 2 after 4 ticks, got %v", out["yaw"])
	}

	v.SetDragging(true)
	v.Drag(10, 4)
	out = v.Step(5)
	if out["yaw"] != 7 || out["pitch"] != 2 {
		t.Errorf("drag should rotate and suppress autorotation, got %v", out)
	}

	v.Params().Set("shape", 5)
	out = v.Step(6)
	if out["lonePairs"] != 2 || v.Labels()["formula"] != "AX2E2" {
		t.Errorf("expected bent AX2E2, got %v %v", out, v.Labels())
	}
	dashed := 0
	for _, b := range v.Bonds() {
		if b.Dashed {
			dashed++
		}
	}
	if dashed != 2 {
		t.Errorf("expected two dashed lone-pair bonds, got %d", dashed)
	}
}

func TestBenzeneViews(t *testing.T) {
	b := NewBenzene()
	out := b.Step(1)
	if out["doubleBonds"] != 3 || out["hydrogens"] != 6 {
		t.Errorf("unexpected kekule outputs %v", out)
	}

	b.Params().Set("view", 1)
	b.Params().Set("hydrogens", 0)
	out = b.Step(2)
	if out["doubleBonds"] != 0 || out["hydrogens"] != 0 || len(b.Atoms()) != 6 {
		t.Errorf("unexpected delocalized outputs %v", out)
	}
	if out["yaw"] != 1 {
		t.Errorf("variant switch should keep rotating, yaw %v", out["yaw"])
	}
}

func TestHybridizationPhases(t *testing.T) {
	h := NewHybridization()
	out := h.Step(1)
	if out["hybrid"] != 4 || out["bondPairs"] != 4 {
		t.Errorf("expected sp3 by default, got %v", out)
	}

	h.Machine().SetAutoplay(true)
	run(h, 2, 200)
	if h.Machine().Index() != 3 || h.Machine().AutoPlaying() {
		t.Errorf("autoplay should stop on the last phase, got %+v", h.Machine().State())
	}

	h.Params().Set("type", 4)
	out = h.Step(201)
	if out["step"] != 0 || out["d"] != 2 || out["atoms"] != 7 {
		t.Errorf("type change should restart on sp3d2, got %v", out)
	}
}

func TestIonicAutoplay(t *testing.T) {
	i := NewIonic()
	out := run(i, 1, 19)
	if out["step"] != 0 {
		t.Fatalf("advanced early: %v", out)
	}
	out = i.Step(20)
	if out["step"] != 1 || out["electronX"] != 220 {
		t.Errorf("expected electron transfer, got %v", out)
	}
	out = run(i, 21, 60)
	if out["step"] != 3 || out["naOffset"] != 50 || out["clOffset"] != -50 || out["bonded"] != 1 {
		t.Errorf("expected bonded ions, got %v", out)
	}
	out = run(i, 61, 80)
	if out["step"] != 0 || out["charged"] != 0 {
		t.Errorf("expected wrap to the first phase, got %v", out)
	}
}

func TestAtomElectrons(t *testing.T) {
	a := NewAtom()
	a.Params().Set("element", 10)
	out := a.Step(1)
	if out["electrons"] != 11 || out["valence"] != 1 || out["massNumber"] != 23 || out["cloud"] != 0 {
		t.Errorf("unexpected sodium outputs %v", out)
	}

	ps := a.Particles()
	if len(ps) != 11 {
		t.Fatalf("expected 11 electrons, got %d", len(ps))
	}
	outer := ps[10]
	if r := math.Hypot(outer.X-150, outer.Y-100); math.Abs(r-80) > 1e-9 {
		t.Errorf("third-shell electron at radius %f", r)
	}

	a.Params().Set("cloud", 1)
	if out := a.Step(2); math.Abs(out["cloud"]-0.125) > 1e-9 {
		t.Errorf("unexpected cloud opacity %v", out["cloud"])
	}
}

func TestAtomOrbitFollowsSessionInterval(t *testing.T) {
	fast := sim.NewSession("atom-structure", NewAtom())
	slow := sim.NewSession("atom-structure", NewAtom(), sim.WithInterval(100*time.Millisecond))
	for _, s := range []*sim.Session{fast, slow} {
		if _, err := s.SetParam("element", 5); err != nil {
			t.Fatal(err)
		}
	}

	fast.Step()
	a, _ := fast.Step()
	b, _ := slow.Step()
	if a.Time != b.Time {
		t.Fatalf("expected equal sample times, got %v and %v", a.Time, b.Time)
	}
	if diff := cmp.Diff(fast.Snapshot().Particles, slow.Snapshot().Particles); diff != "" {
		t.Errorf("orbits should match at equal elapsed time (-fast +slow):\n%s", diff)
	}
}

func TestCovalentCatalogue(t *testing.T) {
	c := NewCovalent()
	c.Params().Set("molecule", 2)
	out := c.Step(1)
	if out["bondOrder"] != 3 || out["sharedElectrons"] != 6 {
		t.Errorf("expected N2 triple bond, got %v", out)
	}
	if bonds := c.Bonds(); len(bonds) != 1 || bonds[0].Order != 3 {
		t.Errorf("expected one triple bond, got %+v", bonds)
	}

	c.Params().Set("molecule", 4)
	c.Params().Set("electrons", 0)
	out = c.Step(2)
	if out["angle"] != 104.5 || out["polar"] != 1 || out["sharedElectrons"] != 0 {
		t.Errorf("unexpected water outputs %v", out)
	}
	if len(c.Bonds()) != 2 {
		t.Errorf("water has two O-H bonds")
	}
}

package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/chemlab/internal/demos"
	"github.com/san-kum/chemlab/internal/particles"
	"github.com/san-kum/chemlab/internal/projection"
	"github.com/san-kum/chemlab/internal/sim"
)

func lit(c *Canvas) int {
	n := 0
	for _, row := range c.Grid {
		for _, r := range row {
			for b := r - brailleBlank; b > 0; b &= b - 1 {
				n++
			}
		}
	}
	return n
}

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(0, 0)
	c.Set(3, 7)
	c.Set(-1, 0)
	c.Set(4, 0)

	if c.Grid[0][0] != brailleBlank+0x1 {
		t.Errorf("expected dot 1 in first cell, got %U", c.Grid[0][0])
	}
	if c.Grid[1][1] != brailleBlank+0x80 {
		t.Errorf("expected dot 8 in last cell, got %U", c.Grid[1][1])
	}
	if lit(c) != 2 {
		t.Errorf("out of range dots should be ignored, lit %d", lit(c))
	}

	c.Clear()
	if lit(c) != 0 {
		t.Error("clear left dots lit")
	}
}

func TestCanvasLines(t *testing.T) {
	c := NewCanvas(10, 1)
	c.DrawLine(0, 0, 19, 0)
	if lit(c) != 20 {
		t.Errorf("solid line should light 20 dots, got %d", lit(c))
	}

	c.Clear()
	c.DrawDashedLine(0, 0, 19, 0, 2)
	if lit(c) != 10 {
		t.Errorf("dashed line should light 10 dots, got %d", lit(c))
	}
}

func TestCanvasCircle(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawCircle(10, 10, 4)
	outline := lit(c)

	c.Clear()
	c.FillCircle(10, 10, 4)
	if filled := lit(c); filled <= outline {
		t.Errorf("filled circle (%d) should light more than outline (%d)", filled, outline)
	}
	if !strings.ContainsRune(c.String(), '\n') {
		t.Error("String should emit rows")
	}
}

func TestRenderParticles(t *testing.T) {
	c := NewCanvas(20, 10)
	Render(c, sim.Snapshot{
		Bounds:    &particles.Bounds{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100},
		Particles: []particles.Particle{{X: 50, Y: 50, Radius: 1}},
	})

	// centre dot plus the container frame
	row, col := 20/4, 20/2
	if c.Grid[row][col] == brailleBlank {
		t.Error("particle at the centre was not drawn")
	}
	if c.Grid[0][5] == brailleBlank {
		t.Error("container frame was not drawn")
	}
}

func TestRenderMolecule(t *testing.T) {
	c := NewCanvas(30, 10)
	Render(c, sim.Snapshot{
		Atoms: []projection.Projected{{Role: projection.Central, Radius: 20}},
		Bonds: []projection.Bond{{X1: 0, Y1: 0, X2: 100, Y2: 0, Order: 1}},
	})
	if c.Grid[5][15] == brailleBlank {
		t.Error("central atom should be filled at the canvas centre")
	}
	if c.Grid[5][22] == brailleBlank {
		t.Error("bond should extend right of centre")
	}
}

func TestParamLine(t *testing.T) {
	p := demos.NewEquilibrium().Params().Params()[0]
	line := ParamLine(p, 10)
	if !strings.HasPrefix(line, p.Name) || !strings.Contains(line, p.Unit) {
		t.Errorf("unexpected line %q", line)
	}
	if ProgressBar(2, 4) != "████" || ProgressBar(-1, 4) != "░░░░" {
		t.Error("progress bar should clamp")
	}
}

func TestThemes(t *testing.T) {
	defer SetTheme("lab")
	if GetTheme("missing").Name != "lab" {
		t.Error("unknown theme should fall back to lab")
	}
	SetTheme("mono")
	NextTheme()
	if CurrentTheme.Name != "lab" {
		t.Errorf("expected wrap to lab, got %s", CurrentTheme.Name)
	}
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelStepsOnTick(t *testing.T) {
	session := sim.NewSession("chemical-equilibrium", demos.NewEquilibrium())
	m := NewModel(session)

	for i := 0; i < 3; i++ {
		m = update(m, TickMsg(time.Now()))
	}
	if got := len(session.History()); got != 3 {
		t.Fatalf("expected 3 samples, got %d", got)
	}

	m = update(m, key(" "))
	m = update(m, TickMsg(time.Now()))
	if got := len(session.History()); got != 3 {
		t.Errorf("paused model should not step, history %d", got)
	}

	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("view should show the paused status")
	}
}

func TestModelAdjustParam(t *testing.T) {
	session := sim.NewSession("chemical-equilibrium", demos.NewEquilibrium())
	m := NewModel(session)

	m = update(m, key("tab"))
	m = update(m, key("up"))

	p := session.Params()[1]
	if p.Value != p.Step+1 {
		t.Errorf("expected %s to rise by one step, got %v", p.Name, p.Value)
	}
}

func TestModelScrub(t *testing.T) {
	session := sim.NewSession("titration", demos.NewTitration())
	m := NewModel(session)
	for i := 0; i < 4; i++ {
		m = update(m, TickMsg(time.Now()))
	}

	m = update(m, key("["))
	if m.playHead != 2 || m.running {
		t.Fatalf("expected paused replay at index 2, got head %d running %v", m.playHead, m.running)
	}
	if !strings.Contains(m.View(), "REPLAY tick 3/4") {
		t.Error("view should show the replay position")
	}

	m = update(m, key("]"))
	m = update(m, key("]"))
	if m.playHead != -1 {
		t.Errorf("scrubbing past the end should return to live, head %d", m.playHead)
	}
}

func TestModelUnsupportedControlsAreQuiet(t *testing.T) {
	session := sim.NewSession("titration", demos.NewTitration())
	m := NewModel(session)
	m = update(m, key("a"))
	m = update(m, key("n"))
	if m.err != nil {
		t.Errorf("unsupported controls should not surface errors: %v", m.err)
	}
}

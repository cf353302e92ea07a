package viz

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/chemlab/internal/dynamo"
	"github.com/san-kum/chemlab/internal/sim"
)

const (
	canvasWidth  = 60
	canvasHeight = 20
	dragStep     = 10.0
	barWidth     = 10
)

type TickMsg time.Time

// Model drives a session from bubbletea ticks instead of its own
// scheduler, so stepping and drawing happen on the same goroutine.
type Model struct {
	session  *sim.Session
	canvas   *Canvas
	running  bool
	selected int
	chartKey int
	playHead int
	showHelp bool
	err      error
}

func NewModel(session *sim.Session) Model {
	return Model{
		session:  session,
		canvas:   NewCanvas(canvasWidth, canvasHeight),
		running:  true,
		playHead: -1,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.session.Interval(), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.session.Reset()
			m.playHead = -1
			m.err = nil
		case "[":
			m.scrub(-1)
		case "]":
			m.scrub(1)
		case "tab":
			m.cycleParam()
		case "up", "k":
			m.adjustParam(1)
		case "down", "j":
			m.adjustParam(-1)
		case "a":
			m.note(m.session.Drag(-dragStep, 0))
		case "d":
			m.note(m.session.Drag(dragStep, 0))
		case "w":
			m.note(m.session.Drag(0, -dragStep))
		case "s":
			m.note(m.session.Drag(0, dragStep))
		case "n":
			_, err := m.session.NextStep()
			m.note(err)
		case "b":
			_, err := m.session.PrevStep()
			m.note(err)
		case "m":
			_, err := m.session.ToggleAutoplay()
			m.note(err)
		case "o":
			m.chartKey++
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running && m.playHead == -1 && m.session.Err() == nil {
			if _, err := m.session.Step(); err != nil {
				m.err = err
				m.running = false
			}
		}
		return m, m.tick()
	}
	return m, nil
}

// note keeps the last control error for the status line; unsupported
// controls are expected and not shown.
func (m *Model) note(err error) {
	if err != nil && !errors.Is(err, dynamo.ErrUnsupported) {
		m.err = err
	}
}

func (m *Model) cycleParam() {
	n := len(m.session.Params())
	if n == 0 {
		return
	}
	m.selected = (m.selected + 1) % n
}

func (m *Model) adjustParam(dir float64) {
	params := m.session.Params()
	if len(params) == 0 {
		return
	}
	p := params[m.selected%len(params)]
	step := p.Step
	if step <= 0 {
		step = (p.Max - p.Min) / 20
	}
	_, err := m.session.SetParam(p.Name, p.Value+dir*step)
	m.note(err)
}

// scrub moves the replay head through the history window. Moving past the
// newest sample returns to live.
func (m *Model) scrub(dir int) {
	n := len(m.session.History())
	if n == 0 {
		return
	}
	if m.playHead == -1 {
		m.playHead = n - 1
		m.running = false
	}
	m.playHead += dir
	if m.playHead < 0 {
		m.playHead = 0
	}
	if m.playHead >= n {
		m.playHead = -1
	}
}

func outputKeys(s dynamo.Sample) []string {
	keys := make([]string, 0, len(s.Outputs))
	for k := range s.Outputs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m Model) View() string {
	st := styles()
	snap := m.session.Snapshot()
	Render(m.canvas, snap)
	canvasView := st.Canvas.Render(m.canvas.String())

	history := m.session.History()
	sample := snap.Sample
	status := st.Running.Render("RUNNING")
	switch {
	case snap.Fault != "" || m.err != nil:
		status = st.Fault.Render("FAULT")
	case m.playHead >= 0 && m.playHead < len(history):
		sample = &history[m.playHead]
		status = st.Paused.Render(fmt.Sprintf("REPLAY tick %d/%d", sample.Tick, history[len(history)-1].Tick))
	case !m.running:
		status = st.Paused.Render("PAUSED")
	}

	var s strings.Builder
	s.WriteString(st.Title.Render(strings.ToUpper(snap.Topic)+"  ·  "+snap.Kind.String()) + "\n")
	s.WriteString(status + "\n\n")

	if sample != nil {
		keys := outputKeys(*sample)
		if len(keys) > 0 {
			key := keys[m.chartKey%len(keys)]
			if series := m.session.Series(key); len(series) > 1 {
				chart := asciigraph.Plot(series, asciigraph.Height(5), asciigraph.Width(32), asciigraph.Caption(key))
				s.WriteString(st.Graph.Render(chart) + "\n")
			}
		}
		s.WriteString(st.Label.Render("time") + st.Value.Render(fmt.Sprintf("%.2fs", sample.Time)) + "\n")
		for _, k := range keys {
			s.WriteString(st.Label.Render(k) + st.Value.Render(fmt.Sprintf("%.3g", sample.Outputs[k])) + "\n")
		}
	}

	if snap.Phase != nil {
		auto := ""
		if snap.Phase.AutoPlaying {
			auto = " ▶"
		}
		s.WriteString(st.Label.Render("step") + st.Value.Render(fmt.Sprintf("%d/%d %s%s", snap.Phase.Index+1, snap.Phase.Count, snap.PhaseName, auto)) + "\n")
	}

	labelKeys := make([]string, 0, len(snap.Labels))
	for k := range snap.Labels {
		labelKeys = append(labelKeys, k)
	}
	sort.Strings(labelKeys)
	for _, k := range labelKeys {
		v := snap.Labels[k]
		if k == "color" {
			v = Swatch(v) + " " + v
		}
		s.WriteString(st.Label.Render(k) + st.Value.Render(v) + "\n")
	}

	if n := len(snap.Events); n > 0 {
		last := snap.Events[n-1]
		s.WriteString(st.Label.Render("event") + st.Value.Render(fmt.Sprintf("%s @%d", last.Name, last.Tick)) + "\n")
	}

	s.WriteString("\nPARAMETERS\n")
	if len(snap.Params) == 0 {
		s.WriteString(st.Label.Render("  (none)") + "\n")
	}
	for i, p := range snap.Params {
		line := ParamLine(p, barWidth)
		if i == m.selected%len(snap.Params) {
			s.WriteString(st.Selected.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + st.Value.Render(line) + "\n")
		}
	}

	if snap.Fault != "" {
		s.WriteString("\n" + st.Fault.Render(snap.Fault) + "\n")
	} else if m.err != nil {
		s.WriteString("\n" + st.Fault.Render(m.err.Error()) + "\n")
	}
	s.WriteString(st.KeyHint.Render("SP:pause R:reset Q:quit ?:help"))

	body := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.Panel.Render(s.String()))
	if m.showHelp {
		return helpText + "\n" + body
	}
	return body
}

const helpText = `
  Space   pause / resume        R      reset session
  Tab     next parameter        ↑↓/jk  adjust parameter by one step
  [ ]     scrub history         O      cycle charted output
  W A S D rotate molecule       N B    next / previous step
  M       toggle autoplay       T      cycle theme
  ?       toggle this help      Q      quit
`

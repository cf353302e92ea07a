package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/chemlab/internal/sim"
)

// Entry is one row of the topic menu.
type Entry struct {
	ID   string
	Name string
	Kind string
}

const (
	stateMenu = iota
	stateLive
)

// Picker lists topics and opens a live view for the chosen one. Esc in
// the live view returns to the menu.
type Picker struct {
	entries []Entry
	open    func(topic string) *sim.Session
	cursor  int
	state   int
	live    Model
}

func NewPicker(entries []Entry, open func(topic string) *sim.Session) *Picker {
	return &Picker{entries: entries, open: open}
}

func (p *Picker) Init() tea.Cmd { return nil }

func (p *Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if p.state == stateLive {
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
			p.state = stateMenu
			return p, nil
		}
		next, cmd := p.live.Update(msg)
		p.live = next.(Model)
		return p, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.entries)-1 {
			p.cursor++
		}
	case "enter":
		if len(p.entries) == 0 {
			return p, nil
		}
		p.live = NewModel(p.open(p.entries[p.cursor].ID))
		p.state = stateLive
		return p, p.live.Init()
	case "t":
		NextTheme()
	}
	return p, nil
}

func (p *Picker) View() string {
	if p.state == stateLive {
		return p.live.View()
	}

	t := CurrentTheme
	title := lipgloss.NewStyle().Foreground(t.Secondary).Bold(true)
	sub := lipgloss.NewStyle().Foreground(t.Muted)
	cursor := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	name := lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	kind := lipgloss.NewStyle().Foreground(t.Accent)
	key := lipgloss.NewStyle().Foreground(t.Secondary).Bold(true)

	var b strings.Builder
	b.WriteString("\n\n    " + title.Render("CHEMLAB") + "\n    " + sub.Render("chemistry demonstrations") + "\n    " + sub.Render("────────────────────────") + "\n\n")
	for i, e := range p.entries {
		row := fmt.Sprintf("%-24s %-10s", e.ID, e.Name)
		if i == p.cursor {
			b.WriteString("    " + cursor.Render("▸") + " " + name.Render(row) + "  " + kind.Render(e.Kind) + "\n")
		} else {
			b.WriteString("      " + sub.Render(row) + "  " + sub.Render(e.Kind) + "\n")
		}
	}
	b.WriteString("\n    " + key.Render("j/k") + sub.Render(" navigate  ") + key.Render("enter") + sub.Render(" open  ") +
		key.Render("esc") + sub.Render(" back  ") + key.Render("q") + sub.Render(" quit") + "\n")
	return b.String()
}

// RunInteractive starts the topic menu full screen.
func RunInteractive(entries []Entry, open func(topic string) *sim.Session) error {
	_, err := tea.NewProgram(NewPicker(entries, open), tea.WithAltScreen()).Run()
	return err
}

// RunLive shows one session full screen.
func RunLive(session *sim.Session) error {
	_, err := tea.NewProgram(NewModel(session), tea.WithAltScreen()).Run()
	return err
}

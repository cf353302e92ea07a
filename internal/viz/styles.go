package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/chemlab/internal/param"
)

// palette is rebuilt from CurrentTheme on every frame so theme switches
// apply immediately.
type palette struct {
	Panel    lipgloss.Style
	Title    lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Active   lipgloss.Style
	Running  lipgloss.Style
	Paused   lipgloss.Style
	Fault    lipgloss.Style
	Graph    lipgloss.Style
	KeyHint  lipgloss.Style
	Canvas   lipgloss.Style
	Selected lipgloss.Style
}

func styles() palette {
	t := CurrentTheme
	return palette{
		Panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(1, 2).
			Width(46),
		Title:    lipgloss.NewStyle().Bold(true).Foreground(t.Secondary).MarginBottom(1),
		Label:    lipgloss.NewStyle().Foreground(t.Muted).Width(14),
		Value:    lipgloss.NewStyle().Foreground(t.Text),
		Active:   lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Running:  lipgloss.NewStyle().Bold(true).Foreground(t.Success),
		Paused:   lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		Fault:    lipgloss.NewStyle().Bold(true).Foreground(t.Error),
		Graph:    lipgloss.NewStyle().Foreground(t.Accent).Padding(1, 0),
		KeyHint:  lipgloss.NewStyle().Foreground(t.Muted).Italic(true).MarginTop(1),
		Canvas:   lipgloss.NewStyle().Foreground(t.Primary).Padding(1, 2),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
	}
}

// ProgressBar renders fraction (0..1) as a bar of width cells.
func ProgressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// ParamLine renders a parameter as a slider over its range.
func ParamLine(p param.Parameter, width int) string {
	frac := 0.0
	if p.Max > p.Min {
		frac = (p.Value - p.Min) / (p.Max - p.Min)
	}
	value := fmt.Sprintf("%g", p.Value)
	if p.Unit != "" {
		value += " " + p.Unit
	}
	return fmt.Sprintf("%-13s %s %s", p.Name, ProgressBar(frac, width), value)
}

// Swatch renders a small block in a hex color, or a dotted outline for
// "transparent".
func Swatch(hex string) string {
	if hex == "" || hex == "transparent" {
		return "░░"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("██")
}

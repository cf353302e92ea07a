package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme of the live view.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
}

var (
	ThemeLab = Theme{
		Name:      "lab",
		Primary:   lipgloss.Color("#3b82f6"),
		Secondary: lipgloss.Color("#22d3ee"),
		Accent:    lipgloss.Color("#f59e0b"),
		Text:      lipgloss.Color("#e4e4e7"),
		Muted:     lipgloss.Color("#71717a"),
		Success:   lipgloss.Color("#22c55e"),
		Warning:   lipgloss.Color("#f97316"),
		Error:     lipgloss.Color("#ef4444"),
	}

	ThemeChalkboard = Theme{
		Name:      "chalkboard",
		Primary:   lipgloss.Color("#f5f5f4"),
		Secondary: lipgloss.Color("#a7f3d0"),
		Accent:    lipgloss.Color("#fde68a"),
		Text:      lipgloss.Color("#f5f5f4"),
		Muted:     lipgloss.Color("#6b7f73"),
		Success:   lipgloss.Color("#86efac"),
		Warning:   lipgloss.Color("#fde68a"),
		Error:     lipgloss.Color("#fca5a5"),
	}

	ThemeIndicator = Theme{
		Name:      "indicator",
		Primary:   lipgloss.Color("#ec4899"), // phenolphthalein pink
		Secondary: lipgloss.Color("#f97316"), // methyl orange
		Accent:    lipgloss.Color("#facc15"),
		Text:      lipgloss.Color("#fdf2f8"),
		Muted:     lipgloss.Color("#9d7a8c"),
		Success:   lipgloss.Color("#4ade80"),
		Warning:   lipgloss.Color("#facc15"),
		Error:     lipgloss.Color("#f43f5e"),
	}

	ThemeMono = Theme{
		Name:      "mono",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#cccccc"),
		Accent:    lipgloss.Color("#0088ff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		Success:   lipgloss.Color("#00ff00"),
		Warning:   lipgloss.Color("#ffaa00"),
		Error:     lipgloss.Color("#ff0000"),
	}

	CurrentTheme = ThemeLab

	Themes = []Theme{ThemeLab, ThemeChalkboard, ThemeIndicator, ThemeMono}
)

// GetTheme returns a theme by name, or the lab theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeLab
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	names := ThemeNames()
	for i, name := range names {
		if name == CurrentTheme.Name {
			SetTheme(names[(i+1)%len(names)])
			return
		}
	}
	SetTheme(names[0])
}

package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the colour scheme of the rendered summaries.
type Theme struct {
	Name     string
	Title    lipgloss.Color
	Border   lipgloss.Color
	Label    lipgloss.Color
	Value    lipgloss.Color
	Positive lipgloss.Color
	Negative lipgloss.Color
	Muted    lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:     "cyberpunk",
		Title:    lipgloss.Color("#00ffff"),
		Border:   lipgloss.Color("#444466"),
		Label:    lipgloss.Color("#888899"),
		Value:    lipgloss.Color("#00ccff"),
		Positive: lipgloss.Color("#00ff88"),
		Negative: lipgloss.Color("#ff4444"),
		Muted:    lipgloss.Color("#666688"),
	}

	ThemeMinimal = Theme{
		Name:     "minimal",
		Title:    lipgloss.Color("#ffffff"),
		Border:   lipgloss.Color("#888888"),
		Label:    lipgloss.Color("#cccccc"),
		Value:    lipgloss.Color("#0088ff"),
		Positive: lipgloss.Color("#00ff00"),
		Negative: lipgloss.Color("#ff0000"),
		Muted:    lipgloss.Color("#888888"),
	}

	ThemeOcean = Theme{
		Name:     "ocean",
		Title:    lipgloss.Color("#00a8cc"),
		Border:   lipgloss.Color("#4488aa"),
		Label:    lipgloss.Color("#e0f0ff"),
		Value:    lipgloss.Color("#ffd700"),
		Positive: lipgloss.Color("#00ff88"),
		Negative: lipgloss.Color("#ff4444"),
		Muted:    lipgloss.Color("#4488aa"),
	}

	Themes = []Theme{ThemeCyberpunk, ThemeMinimal, ThemeOcean}
)

// GetTheme returns a theme by name, falling back to cyberpunk.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles are the lipgloss styles a renderer draws with.
type Styles struct {
	Panel    lipgloss.Style
	Title    lipgloss.Style
	Header   lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Positive lipgloss.Style
	Negative lipgloss.Style
	Subtle   lipgloss.Style
}

// NewStyles builds the styles for theme. With color off every style is
// plain apart from borders and bold text.
func NewStyles(theme Theme, color bool) Styles {
	fg := func(s lipgloss.Style, c lipgloss.Color) lipgloss.Style {
		if !color {
			return s
		}
		return s.Foreground(c)
	}

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	if color {
		panel = panel.BorderForeground(theme.Border)
	}

	return Styles{
		Panel: panel,
		Title: fg(lipgloss.NewStyle().Bold(true), theme.Title),
		Header: fg(lipgloss.NewStyle().
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true), theme.Title),
		Label:    fg(lipgloss.NewStyle(), theme.Label),
		Value:    fg(lipgloss.NewStyle().Bold(true), theme.Value),
		Positive: fg(lipgloss.NewStyle(), theme.Positive),
		Negative: fg(lipgloss.NewStyle(), theme.Negative),
		Subtle:   fg(lipgloss.NewStyle().Italic(true), theme.Muted),
	}
}

// Signed renders v with the positive or negative style.
func (s Styles) Signed(format string, v float64) string {
	text := fmt.Sprintf(format, v)
	if v < 0 {
		return s.Negative.Render(text)
	}
	return s.Positive.Render(text)
}

// BoxWithTitle renders content in a panel with the title above it.
func (s Styles) BoxWithTitle(title, content string) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(title),
		s.Panel.Render(content),
	)
}

// Separator is a muted horizontal rule of the given width.
func (s Styles) Separator(width int) string {
	if width < 7 {
		return s.Subtle.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return s.Subtle.Render(left + " ◆ " + right)
}

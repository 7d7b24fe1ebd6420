// Package styles provides the colour theme and lipgloss styles for the TUI.
package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette of the TUI.
type Theme struct {
	Accent     lipgloss.Color
	Highlight  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Border     lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:     lipgloss.Color("#2563EB"),
		Highlight:  lipgloss.Color("#38BDF8"),
		Foreground: lipgloss.Color("#E5E7EB"),
		Muted:      lipgloss.Color("#6B7280"),
		Success:    lipgloss.Color("#22C55E"),
		Warning:    lipgloss.Color("#EAB308"),
		Error:      lipgloss.Color("#EF4444"),
		Border:     lipgloss.Color("#374151"),
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style

	// InputField frames the query input.
	InputField lipgloss.Style

	// Result frames one query result.
	Result lipgloss.Style

	// Score renders a relevance percentage.
	Score lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme:    theme,
		Title:    lipgloss.NewStyle().Bold(true).Foreground(theme.Accent),
		Subtitle: lipgloss.NewStyle().Foreground(theme.Muted).Italic(true),
		Normal:   lipgloss.NewStyle().Foreground(theme.Foreground),
		Muted:    lipgloss.NewStyle().Foreground(theme.Muted),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(theme.Highlight),
		Error:    lipgloss.NewStyle().Foreground(theme.Error),
		Success:  lipgloss.NewStyle().Foreground(theme.Success),
		Warning:  lipgloss.NewStyle().Foreground(theme.Warning),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Result: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(theme.Accent).
			PaddingLeft(1).
			MarginBottom(1),

		Score: lipgloss.NewStyle().Bold(true).Foreground(theme.Success),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Relevance renders a similarity score as a percentage.
func (s *Styles) Relevance(score float64) string {
	return s.Score.Render(fmt.Sprintf("%.1f%%", score*100))
}

// Check renders a pass/fail marker.
func (s *Styles) Check(passed bool) string {
	if passed {
		return s.Success.Render("✓")
	}
	return s.Error.Render("✗")
}

package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	require.NotNil(t, theme)
	assert.NotEmpty(t, string(theme.Accent))
	assert.NotEmpty(t, string(theme.Highlight))
	assert.NotEmpty(t, string(theme.Foreground))
	assert.NotEmpty(t, string(theme.Muted))
	assert.NotEmpty(t, string(theme.Border))
}

func TestDefaultTheme_StatusColoursAreDistinct(t *testing.T) {
	theme := DefaultTheme()

	seen := make(map[lipgloss.Color]bool)
	for _, c := range []lipgloss.Color{theme.Accent, theme.Success, theme.Warning, theme.Error} {
		assert.False(t, seen[c], "duplicate colour %s", c)
		seen[c] = true
	}
}

func TestNewStyles_NilTheme(t *testing.T) {
	s := NewStyles(nil)

	require.NotNil(t, s)
	assert.Equal(t, DefaultTheme(), s.Theme())
}

func TestStyles_Relevance(t *testing.T) {
	s := DefaultStyles()

	assert.Contains(t, s.Relevance(0.8765), "87.7%")
	assert.Contains(t, s.Relevance(0), "0.0%")
}

func TestStyles_Check(t *testing.T) {
	s := DefaultStyles()

	assert.Contains(t, s.Check(true), "✓")
	assert.Contains(t, s.Check(false), "✗")
}

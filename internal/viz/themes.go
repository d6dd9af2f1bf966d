package viz

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/neuralbg/internal/field"
)

// Theme defines the terminal colors used around the field.
type Theme struct {
	Name       field.Theme
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	Paused     lipgloss.Color
}

var (
	ThemeDark = Theme{
		Name:       field.ThemeDark,
		Background: lipgloss.Color(field.Background(field.ThemeDark)),
		Text:       lipgloss.Color("#e2e8f0"),
		Muted:      lipgloss.Color("#64748b"),
		Accent:     lipgloss.Color("#0ea5e9"),
		Paused:     lipgloss.Color("#f59e0b"),
	}

	ThemeLight = Theme{
		Name:       field.ThemeLight,
		Background: lipgloss.Color(field.Background(field.ThemeLight)),
		Text:       lipgloss.Color("#0f172a"),
		Muted:      lipgloss.Color("#94a3b8"),
		Accent:     lipgloss.Color("#a855f7"),
		Paused:     lipgloss.Color("#d97706"),
	}
)

// GetTheme returns the terminal theme for a field theme.
func GetTheme(t field.Theme) Theme {
	if t == field.ThemeLight {
		return ThemeLight
	}
	return ThemeDark
}

// Backdrop is the background as a blendable color.
func (t Theme) Backdrop() colorful.Color {
	c, err := colorful.Hex(string(t.Background))
	if err != nil {
		return colorful.Color{}
	}
	return c
}

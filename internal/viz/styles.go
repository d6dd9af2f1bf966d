package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

type styles struct {
	bar    lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	paused lipgloss.Style
	help   lipgloss.Style
	key    lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		bar:    lipgloss.NewStyle().Background(t.Background).Foreground(t.Text),
		label:  lipgloss.NewStyle().Background(t.Background).Foreground(t.Muted),
		value:  lipgloss.NewStyle().Background(t.Background).Foreground(t.Accent).Bold(true),
		paused: lipgloss.NewStyle().Background(t.Background).Foreground(t.Paused).Bold(true),
		help: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Accent).
			Foreground(t.Text).
			Padding(1, 2),
		key: lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Width(8),
	}
}

type stat struct {
	label string
	value string
}

// statusBar renders one line of label/value pairs padded to width.
func (s styles) statusBar(width int, paused bool, stats []stat) string {
	var b strings.Builder
	if paused {
		b.WriteString(s.paused.Render(" PAUSED "))
	} else {
		b.WriteString(s.value.Render(" neuralbg "))
	}
	for _, st := range stats {
		b.WriteString(s.label.Render(" " + st.label + " "))
		b.WriteString(s.value.Render(st.value))
	}
	return s.bar.Width(width).MaxWidth(width).Render(b.String())
}

var keyHelp = [][2]string{
	{"space", "pause / resume"},
	{"t", "toggle theme"},
	{"?", "toggle this help"},
	{"q", "quit"},
}

// helpBox shows key bindings and, once there is history, an edge count plot.
func (s styles) helpBox(edges []float64) string {
	var b strings.Builder
	b.WriteString("KEYS\n\n")
	for _, k := range keyHelp {
		b.WriteString(s.key.Render(k[0]) + k[1] + "\n")
	}
	if len(edges) > 1 {
		b.WriteString("\n")
		b.WriteString(asciigraph.Plot(edges,
			asciigraph.Height(6),
			asciigraph.Width(40),
			asciigraph.Caption(fmt.Sprintf("connections (last %d frames)", len(edges)))))
	}
	return s.help.Render(b.String())
}

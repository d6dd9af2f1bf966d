package viz

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/neuralbg/internal/field"
)

const edgeHistory = 240

type frameMsg time.Time

type Options struct {
	Scale float64
	FPS   int
	Theme field.Theme
	Rand  field.Rand
	// OnTheme is called after the theme is toggled, to persist it.
	OnTheme func(field.Theme) error
	Logger  *slog.Logger
}

// Model is a bubbletea program that hosts a field in the terminal. Window
// size messages become resizes and mouse motion becomes pointer moves.
type Model struct {
	field.Loop
	ctrl    *field.Controller
	surface *Surface
	opts    Options
	styles  styles
	theme   field.Theme

	cols, rows int
	start      time.Time
	paused     bool
	ticking    bool
	showHelp   bool
	edges      []float64
	err        error
}

func NewModel(opts Options) *Model {
	if opts.Scale <= 0 {
		opts.Scale = 4
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m := &Model{
		surface: NewSurface(opts.Scale),
		opts:    opts,
		theme:   field.ParseTheme(string(opts.Theme)),
		start:   time.Now(),
		edges:   make([]float64, 0, edgeHistory),
	}
	m.styles = newStyles(GetTheme(m.theme))

	ctrlOpts := []field.Option{field.WithLogger(opts.Logger)}
	if opts.Rand != nil {
		ctrlOpts = append(ctrlOpts, field.WithRand(opts.Rand))
	}
	m.ctrl = field.NewController(m, ctrlOpts...)
	return m
}

// Viewport is the terminal area above the status bar, in field pixels.
func (m *Model) Viewport() (float64, float64) {
	return float64(m.cols*2) * m.opts.Scale, float64(m.rows*4) * m.opts.Scale
}

func (m *Model) Theme() field.Theme { return m.theme }

// Controller exposes the hosted field.
func (m *Model) Controller() *field.Controller { return m.ctrl }

// Err is the last theme persistence error, if any.
func (m *Model) Err() error { return m.err }

func (m *Model) tick() tea.Cmd {
	m.ticking = true
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m *Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and runs pending frames.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height-1
		if m.rows < 0 {
			m.rows = 0
		}
		if m.ctrl.State() == field.Uninitialized {
			m.ctrl.Initialize(m.surface)
		} else {
			m.DispatchResize()
		}
	case tea.MouseMsg:
		x := (float64(msg.X) + 0.5) * 2 * m.opts.Scale
		y := (float64(msg.Y) + 0.5) * 4 * m.opts.Scale
		m.DispatchPointer(x, y)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.ctrl.Destroy()
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
			if !m.paused && !m.ticking {
				return m, m.tick()
			}
		case "t":
			m.toggleTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case frameMsg:
		if m.paused {
			m.ticking = false
			return m, nil
		}
		if m.RunFrame(time.Since(m.start).Seconds()) {
			m.recordEdges()
		}
		return m, m.tick()
	}
	return m, nil
}

// toggleTheme flips the theme and replays a resize so the field picks it up.
func (m *Model) toggleTheme() {
	m.theme = m.theme.Toggle()
	m.styles = newStyles(GetTheme(m.theme))
	if m.opts.OnTheme != nil {
		m.err = m.opts.OnTheme(m.theme)
	}
	m.DispatchResize()
}

func (m *Model) recordEdges() {
	if len(m.edges) == edgeHistory {
		copy(m.edges, m.edges[1:])
		m.edges = m.edges[:edgeHistory-1]
	}
	m.edges = append(m.edges, float64(m.ctrl.Edges()))
}

func (m *Model) View() string {
	if m.cols == 0 {
		return "starting…"
	}
	theme := GetTheme(m.theme)

	body := m.surface.Canvas.Render(theme.Backdrop())
	if m.showHelp {
		body = lipgloss.Place(m.cols, m.rows, lipgloss.Center, lipgloss.Center,
			m.styles.helpBox(m.edges),
			lipgloss.WithWhitespaceBackground(theme.Background))
	}

	stats := []stat{
		{"device", m.ctrl.Device().String()},
		{"particles", fmt.Sprintf("%d", len(m.ctrl.Particles()))},
		{"links", fmt.Sprintf("%d", m.ctrl.Edges())},
		{"theme", string(m.theme)},
		{"?", "help"},
	}
	if m.err != nil {
		stats = append(stats, stat{"error", m.err.Error()})
	}
	return body + "\n" + m.styles.statusBar(m.cols, m.paused, stats)
}

// Run starts the terminal host and blocks until the user quits.
func Run(opts Options) error {
	m := NewModel(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	m.ctrl.Destroy()
	return err
}

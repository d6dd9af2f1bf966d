package viz

import (
	"errors"
	"image/color"
	"math/rand"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/neuralbg/internal/field"
)

var cyan = colorful.Color{R: 0.05, G: 0.65, B: 0.9}

func TestCanvasSetAndClear(t *testing.T) {
	c := NewCanvas(2, 1)

	c.Set(0, 0, cyan, 1)
	c.Set(3, 3, cyan, 1)
	if !c.Dot(0, 0) || !c.Dot(3, 3) {
		t.Error("expected dots to be lit")
	}
	if c.Grid[0][0] != blank|0x1 {
		t.Errorf("expected first dot, got %U", c.Grid[0][0])
	}
	if c.Grid[0][1] != blank|0x80 {
		t.Errorf("expected eighth dot, got %U", c.Grid[0][1])
	}

	c.Set(-1, 0, cyan, 1)
	c.Set(4, 0, cyan, 1)
	c.Set(1, 1, cyan, 0)
	if c.Dot(1, 1) {
		t.Error("zero alpha should not light a dot")
	}

	c.Clear()
	if c.Dot(0, 0) || c.Ink[0][0].weight != 0 {
		t.Error("clear should reset dots and ink")
	}
}

func TestCanvasInkBlends(t *testing.T) {
	c := NewCanvas(1, 1)
	red := colorful.Color{R: 1}
	blue := colorful.Color{B: 1}

	c.Set(0, 0, red, 0.5)
	c.Set(1, 0, blue, 0.5)

	cell := c.Ink[0][0]
	if cell.weight != 1 {
		t.Errorf("expected weight 1, got %f", cell.weight)
	}
	if cell.color.R < 0.4 || cell.color.B < 0.4 {
		t.Errorf("expected an even blend, got %v", cell.color)
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(4, 1)
	c.DrawLine(0, 0, 7, 0, cyan, 1)
	for x := 0; x < 8; x++ {
		if !c.Dot(x, 0) {
			t.Errorf("dot %d not lit", x)
		}
	}
}

func TestCanvasFillShapes(t *testing.T) {
	c := NewCanvas(10, 5)
	c.FillCircle(10, 10, 3, cyan, 1)
	if !c.Dot(10, 10) {
		t.Error("circle center not lit")
	}
	if c.Dot(15, 10) {
		t.Error("dot outside circle lit")
	}

	c.Clear()
	c.FillCircle(4.5, 4.5, 0.1, cyan, 1)
	if !c.Dot(4, 4) {
		t.Error("tiny circle should light its center")
	}

	c.Clear()
	tri := []field.Point{{X: 2, Y: 2}, {X: 12, Y: 2}, {X: 2, Y: 12}}
	c.FillPolygon(tri, cyan, 1)
	if !c.Dot(3, 3) {
		t.Error("inside of triangle not lit")
	}
	if c.Dot(11, 11) {
		t.Error("outside of triangle lit")
	}
}

func TestCanvasRender(t *testing.T) {
	c := NewCanvas(3, 2)
	c.Set(0, 0, cyan, 1)

	plain := c.String()
	if strings.Count(plain, "\n") != 2 {
		t.Errorf("expected 2 rows, got %q", plain)
	}
	if !strings.ContainsRune(plain, blank|0x1) {
		t.Error("expected lit glyph in output")
	}

	out := c.Render(ThemeDark.Backdrop())
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected 2 rendered lines, got %q", out)
	}
}

func TestSurfaceResize(t *testing.T) {
	s := NewSurface(4)
	s.Resize(800, 600)
	if s.Canvas.Width != 100 || s.Canvas.Height != 38 {
		t.Errorf("expected 100x38 cells, got %dx%d", s.Canvas.Width, s.Canvas.Height)
	}

	canvas := s.Canvas
	s.Resize(800, 600)
	if s.Canvas != canvas {
		t.Error("same size should keep the canvas")
	}
}

func TestSurfaceGlowTintsWithoutLighting(t *testing.T) {
	s := NewSurface(1)
	s.Resize(40, 40)
	line := color.NRGBA{R: 255, A: 255}
	s.StrokeLine(field.Point{X: 0, Y: 20}, field.Point{X: 39, Y: 20}, 1, line)
	lit := s.Canvas.String()

	s.SetGlow(8, color.NRGBA{B: 255, A: 255})
	s.FillCircle(field.Point{X: 20, Y: 16}, 0.5, color.NRGBA{B: 255, A: 255})
	s.ResetGlow()

	if !s.Canvas.Dot(20, 16) {
		t.Error("circle not drawn")
	}
	if s.Canvas.Dot(20, 14) {
		t.Error("glow should not light dots")
	}
	if strings.Count(s.Canvas.String(), string(rune(blank))) > strings.Count(lit, string(rune(blank))) {
		t.Error("drawing should not clear dots")
	}
	if s.Canvas.Ink[20/4][20/2].color.B == 0 {
		t.Error("line cell near the shape should pick up the glow hue")
	}
}

func newTestModel(t *testing.T) *Model {
	t.Helper()
	return NewModel(Options{
		Scale: 4,
		FPS:   60,
		Theme: field.ThemeDark,
		Rand:  rand.New(rand.NewSource(1)),
	})
}

func TestModelLifecycle(t *testing.T) {
	m := newTestModel(t)
	if m.Controller().State() != field.Uninitialized {
		t.Fatal("controller should wait for the first window size")
	}
	if got := m.View(); got != "starting…" {
		t.Errorf("unexpected view before size: %q", got)
	}

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 41})
	if m.Controller().State() != field.Running {
		t.Fatal("controller should be running after the first size")
	}
	w, h := m.Viewport()
	if w != 960 || h != 640 {
		t.Errorf("expected 960x640 viewport, got %gx%g", w, h)
	}
	if n := len(m.Controller().Particles()); n != field.Count(960, 640, field.Desktop) {
		t.Errorf("unexpected population %d", n)
	}

	_, cmd := m.Update(frameMsg{})
	if cmd == nil {
		t.Error("frame should schedule the next tick")
	}
	if m.Controller().Frames() != 1 || len(m.edges) != 1 {
		t.Errorf("expected one frame, got %d", m.Controller().Frames())
	}
	if !strings.Contains(m.View(), "particles") {
		t.Error("status bar missing")
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Error("q should quit")
	}
	if m.Controller().State() != field.Stopped {
		t.Error("controller should be stopped after quit")
	}
}

func TestModelPointer(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 25})
	m.Update(tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionMotion})

	ptr := m.Controller().Pointer()
	if !ptr.Present || ptr.X != 84 || ptr.Y != 88 {
		t.Errorf("unexpected pointer %+v", ptr)
	}
}

func TestModelPause(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 25})

	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	_, cmd := m.Update(frameMsg{})
	if cmd != nil {
		t.Error("paused model should not reschedule")
	}
	if m.Controller().Frames() != 0 {
		t.Error("paused model should not run frames")
	}
	if m.Controller().State() != field.Running {
		t.Error("pause should leave the field running")
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	if cmd == nil {
		t.Error("resume should restart ticking")
	}
}

func TestModelToggleTheme(t *testing.T) {
	var saved field.Theme
	m := NewModel(Options{
		Theme:   field.ThemeDark,
		Rand:    rand.New(rand.NewSource(2)),
		OnTheme: func(th field.Theme) error { saved = th; return errors.New("read-only") },
	})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 25})

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	if m.Theme() != field.ThemeLight || saved != field.ThemeLight {
		t.Errorf("expected light theme, got %s / %s", m.Theme(), saved)
	}
	if m.Controller().Theme() != field.ThemeLight {
		t.Error("field should pick up the theme through a resize")
	}
	if m.Err() == nil || !strings.Contains(m.View(), "read-only") {
		t.Error("persistence error should be shown")
	}
}

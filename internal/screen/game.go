package screen

import (
	"errors"
	"image/color"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/san-kum/neuralbg/internal/field"
)

type Options struct {
	Width  int
	Height int
	Title  string
	FPS    int
	Theme  field.Theme
	Rand   field.Rand
	// OnTheme is called after the theme is toggled, to persist it.
	OnTheme func(field.Theme) error
	Logger  *slog.Logger
}

// Game hosts a field as an ebiten game. Layout changes are resizes and
// cursor movement is pointer movement.
type Game struct {
	field.Loop
	ctrl    *field.Controller
	surface *Surface
	opts    Options
	theme   field.Theme
	start   time.Time

	width, height int
	cursorX       int
	cursorY       int
	cursorSeen    bool

	// input edge detection
	prevKey map[ebiten.Key]bool
}

func NewGame(opts Options) *Game {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	g := &Game{
		surface: &Surface{},
		opts:    opts,
		theme:   field.ParseTheme(string(opts.Theme)),
		start:   time.Now(),
		prevKey: map[ebiten.Key]bool{},
	}
	g.surface.Background = background(g.theme)

	ctrlOpts := []field.Option{field.WithLogger(opts.Logger)}
	if opts.Rand != nil {
		ctrlOpts = append(ctrlOpts, field.WithRand(opts.Rand))
	}
	g.ctrl = field.NewController(g, ctrlOpts...)
	return g
}

func background(t field.Theme) color.NRGBA {
	return field.WithAlpha(field.Background(t), 1)
}

func (g *Game) Viewport() (float64, float64) { return float64(g.width), float64(g.height) }
func (g *Game) Theme() field.Theme           { return g.theme }

// Layout keeps the screen at window size; a change is a resize.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.DispatchResize()
	}
	return outsideWidth, outsideHeight
}

func (g *Game) Update() error {
	if g.ctrl.State() == field.Uninitialized && g.width > 0 {
		g.ctrl.Initialize(g.surface)
	}

	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	x, y := ebiten.CursorPosition()
	if !g.cursorSeen || x != g.cursorX || y != g.cursorY {
		g.cursorX, g.cursorY, g.cursorSeen = x, y, true
		g.DispatchPointer(float64(x), float64(y))
	}

	if justPressed(ebiten.KeyT) {
		g.toggleTheme()
	}
	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		g.ctrl.Destroy()
		return ebiten.Termination
	}
	return nil
}

func (g *Game) toggleTheme() {
	g.theme = g.theme.Toggle()
	g.surface.Background = background(g.theme)
	if g.opts.OnTheme != nil {
		if err := g.opts.OnTheme(g.theme); err != nil {
			g.opts.Logger.Warn("saving theme", slog.Any("error", err))
		}
	}
	g.DispatchResize()
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.target = screen
	if !g.RunFrame(time.Since(g.start).Seconds()) {
		screen.Fill(g.surface.Background)
	}
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if opts.FPS > 0 {
		ebiten.SetTPS(opts.FPS)
	}

	g := NewGame(opts)
	defer g.ctrl.Destroy()
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func sqrt32(v float32) float32 { return float32(math.Sqrt(float64(v))) }

package gui

import (
	"io"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/neuralbg/internal/field"
)

var ColText = rl.NewColor(100, 116, 139, 255)

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

// App hosts a field in a resizable raylib window.
type App struct {
	field.Loop
	ctrl    *field.Controller
	surface *Surface
	opts    Options
	theme   field.Theme
	mouse   rl.Vector2
	showFPS bool
	quit    bool
}

func NewApp(opts Options) *App {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	a := &App{
		surface: &Surface{},
		opts:    opts,
		theme:   field.ParseTheme(string(opts.Theme)),
	}
	a.surface.Background = background(a.theme)

	ctrlOpts := []field.Option{field.WithLogger(opts.Logger)}
	if opts.Rand != nil {
		ctrlOpts = append(ctrlOpts, field.WithRand(opts.Rand))
	}
	a.ctrl = field.NewController(a, ctrlOpts...)
	return a
}

func (a *App) Viewport() (float64, float64) {
	return float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
}

func (a *App) Theme() field.Theme { return a.theme }

func background(t field.Theme) rl.Color {
	return rlColor(field.WithAlpha(field.Background(t), 1))
}

func initWindow(opts Options) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), opts.Title)
	rl.SetTargetFPS(int32(opts.FPS))
	rl.SetExitKey(0)
}

// Run opens the window and blocks until it is closed or q is pressed.
func Run(opts Options) {
	initWindow(opts)
	defer rl.CloseWindow()

	a := NewApp(opts)
	a.surface.load()
	defer a.surface.unload()

	a.ctrl.Initialize(a.surface)
	a.RunLoop()
	a.ctrl.Destroy()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.quit {
		a.Update()
		a.Draw()
	}
}

// Update turns window events into field events.
func (a *App) Update() {
	if rl.IsWindowResized() {
		a.DispatchResize()
	}
	if m := rl.GetMousePosition(); m != a.mouse {
		a.mouse = m
		a.DispatchPointer(float64(m.X), float64(m.Y))
	}

	switch {
	case rl.IsKeyPressed(rl.KeyQ):
		a.quit = true
	case rl.IsKeyPressed(rl.KeyT):
		a.toggleTheme()
	case rl.IsKeyPressed(rl.KeyF):
		a.showFPS = !a.showFPS
	}
}

func (a *App) toggleTheme() {
	a.theme = a.theme.Toggle()
	a.surface.Background = background(a.theme)
	if a.opts.OnTheme != nil {
		if err := a.opts.OnTheme(a.theme); err != nil {
			a.opts.Logger.Warn("saving theme", slog.Any("error", err))
		}
	}
	a.DispatchResize()
}

func (a *App) Draw() {
	rl.BeginDrawing()
	if !a.RunFrame(rl.GetTime()) {
		rl.ClearBackground(a.surface.Background)
	}
	if a.showFPS {
		rl.DrawFPS(10, 10)
		rl.DrawText(a.ctrl.Device().String(), 10, 34, 20, ColText)
	}
	rl.EndDrawing()
}

package field

import (
	"io"
	"log/slog"
)

// State is the controller lifecycle state.
type State int

const (
	Uninitialized State = iota
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return "uninitialized"
	}
}

// Option configures a Controller.
type Option func(*Controller)

// WithRand injects the randomness source for generation and jitter.
func WithRand(r Rand) Option {
	return func(c *Controller) { c.rnd = r }
}

// WithPalette replaces the default palette.
func WithPalette(p Palette) Option {
	return func(c *Controller) { c.palette = p }
}

// WithLogger sets the logger for lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// Controller owns a particle population bound to one surface and drives
// the per-frame loop through its host.
type Controller struct {
	host    Host
	surface Surface
	palette Palette
	rnd     Rand
	log     *slog.Logger

	state     State
	initDone  bool
	frame     FrameID
	scheduled bool
	release   func()

	width, height float64
	device        Device
	theme         Theme
	particles     []Particle
	pointer       Pointer
	edges         int
	frames        int
}

// NewController creates an uninitialized controller for host.
func NewController(host Host, opts ...Option) *Controller {
	c := &Controller{
		host:    host,
		palette: DefaultPalette(),
		state:   Uninitialized,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rnd == nil {
		c.rnd = defaultRand()
	}
	if c.log == nil {
		c.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

// Initialize binds the controller to s and starts the loop. A nil surface
// leaves the controller uninitialized for good. Only the first call counts.
func (c *Controller) Initialize(s Surface) {
	if c.initDone {
		return
	}
	c.initDone = true
	if s == nil || c.host == nil {
		c.log.Debug("field disabled: no surface")
		return
	}
	c.surface = s
	c.measure()
	c.regenerate()
	c.release = c.host.Listen(Listeners{
		Resize:      c.onResize,
		PointerMove: c.onPointer,
	})
	c.state = Running
	c.schedule()
	c.log.Debug("field initialized",
		slog.Float64("width", c.width),
		slog.Float64("height", c.height),
		slog.String("device", c.device.String()),
		slog.Int("particles", len(c.particles)))
}

// Destroy cancels the pending frame and releases the host listeners.
// Calling it again, or before Initialize, does nothing.
func (c *Controller) Destroy() {
	if c.state != Running {
		return
	}
	if c.scheduled {
		c.host.CancelFrame(c.frame)
		c.scheduled = false
	}
	if c.release != nil {
		c.release()
		c.release = nil
	}
	c.state = Stopped
	c.log.Debug("field stopped", slog.Int("frames", c.frames))
}

func (c *Controller) schedule() {
	c.frame = c.host.RequestFrame(c.tick)
	c.scheduled = true
}

// tick draws the current positions, then advances them for the next frame.
func (c *Controller) tick(t float64) {
	c.scheduled = false
	if c.state != Running {
		return
	}
	c.surface.Clear()
	c.edges = Connect(c.surface, c.particles, c.device, c.theme, c.palette)
	DrawShapes(c.surface, c.particles, t)
	StepAll(c.particles, c.pointer, c.width, c.height, c.rnd)
	c.frames++
	if c.state == Running {
		c.schedule()
	}
}

func (c *Controller) measure() {
	c.width, c.height = c.host.Viewport()
	c.surface.Resize(c.width, c.height)
	c.device = DeviceFor(c.width)
	c.theme = c.host.Theme()
}

func (c *Controller) regenerate() {
	c.particles = Generate(c.width, c.height, c.device, c.theme, c.palette, c.rnd)
}

func (c *Controller) onResize() {
	if c.state != Running {
		return
	}
	c.measure()
	c.regenerate()
	c.log.Debug("field resized",
		slog.Float64("width", c.width),
		slog.Float64("height", c.height),
		slog.String("device", c.device.String()),
		slog.Int("particles", len(c.particles)))
}

func (c *Controller) onPointer(x, y float64) {
	if c.state != Running {
		return
	}
	c.pointer = Pointer{X: x, Y: y, Present: true}
}

// State returns the lifecycle state.
func (c *Controller) State() State { return c.state }

// Particles returns a copy of the current population.
func (c *Controller) Particles() []Particle {
	out := make([]Particle, len(c.particles))
	copy(out, c.particles)
	return out
}

// AppendParticles appends the current population to dst.
func (c *Controller) AppendParticles(dst []Particle) []Particle {
	return append(dst, c.particles...)
}

// Size returns the surface dimensions last measured.
func (c *Controller) Size() (width, height float64) { return c.width, c.height }

func (c *Controller) Device() Device   { return c.device }
func (c *Controller) Theme() Theme     { return c.theme }
func (c *Controller) Pointer() Pointer { return c.pointer }

// Edges returns the number of connections drawn in the last frame.
func (c *Controller) Edges() int { return c.edges }

// Frames returns the number of frames run so far.
func (c *Controller) Frames() int { return c.frames }

// Check validates the live population.
func (c *Controller) Check() error {
	if c.state != Running {
		return ErrNotRunning
	}
	return Validate(c.particles, c.width, c.height)
}

package sim

import (
	"time"

	"github.com/san-kum/neuralbg/internal/field"
)

// Frame is what observers see after each rendered frame. Particles is
// reused between frames; copy it to keep it.
type Frame struct {
	Index     int
	Time      float64
	Width     float64
	Height    float64
	Device    field.Device
	Theme     field.Theme
	Edges     int
	Pointer   field.Pointer
	Particles []field.Particle
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(f Frame)
}

type Config struct {
	Frames        int
	FPS           int
	ValidateState bool
}

type Result struct {
	Frames  int
	Elapsed time.Duration
	Metrics map[string]float64
	Errors  []error
}

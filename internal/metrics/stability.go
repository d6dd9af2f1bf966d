package metrics

import (
	"github.com/san-kum/neuralbg/internal/field"
	"github.com/san-kum/neuralbg/internal/sim"
)

// Stability is the fraction of frames whose population passes
// field.Validate.
type Stability struct {
	name       string
	violations int
	samples    int
}

func NewStability() *Stability {
	return &Stability{name: "stability"}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(f sim.Frame) {
	s.samples++
	if field.Validate(f.Particles, f.Width, f.Height) != nil {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

// Speed tracks the mean particle speed per frame.
type Speed struct {
	series
}

func NewSpeed() *Speed {
	return &Speed{series{name: "mean_speed"}}
}

func (s *Speed) Observe(f sim.Frame) { s.push(meanSpeed(f)) }

func meanSpeed(f sim.Frame) float64 {
	if len(f.Particles) == 0 {
		return 0
	}
	total := 0.0
	for _, p := range f.Particles {
		total += p.Speed()
	}
	return total / float64(len(f.Particles))
}

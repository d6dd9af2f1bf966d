package field

import (
	"errors"
	"fmt"
	"math"
)

// Domain errors for field checks.
var (
	// ErrInvalidParticle indicates NaN/Inf kinematics or a bad elasticity.
	ErrInvalidParticle = errors.New("field: invalid particle (NaN, Inf or elasticity outside (0,1))")

	// ErrOutOfBounds indicates a particle outside the surface.
	ErrOutOfBounds = errors.New("field: particle outside surface bounds")

	// ErrNotRunning indicates the controller has no live field to inspect.
	ErrNotRunning = errors.New("field: controller not running")
)

// ParticleError wraps an error with the offending particle.
type ParticleError struct {
	Index    int
	Particle Particle
	Wrapped  error
}

func (e *ParticleError) Error() string {
	return fmt.Sprintf("%v: #%d at (%.3f, %.3f)", e.Wrapped, e.Index, e.Particle.X, e.Particle.Y)
}

func (e *ParticleError) Unwrap() error {
	return e.Wrapped
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Validate checks every particle against the field invariants and returns
// the first violation.
func Validate(ps []Particle, width, height float64) error {
	for i, p := range ps {
		if !finite(p.X) || !finite(p.Y) || !finite(p.VX) || !finite(p.VY) ||
			!(p.Elasticity > 0 && p.Elasticity < 1) {
			return &ParticleError{Index: i, Particle: p, Wrapped: ErrInvalidParticle}
		}
		if p.X < 0 || p.X > width || p.Y < 0 || p.Y > height {
			return &ParticleError{Index: i, Particle: p, Wrapped: ErrOutOfBounds}
		}
	}
	return nil
}

package metrics

import "github.com/san-kum/neuralbg/internal/sim"

// KineticEnergy tracks the mean of ½·size²·|v|² over the population, size
// standing in for mass.
type KineticEnergy struct {
	series
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{series{name: "energy"}}
}

func (e *KineticEnergy) Observe(f sim.Frame) { e.push(kineticEnergy(f)) }

func kineticEnergy(f sim.Frame) float64 {
	if len(f.Particles) == 0 {
		return 0
	}
	total := 0.0
	for _, p := range f.Particles {
		total += 0.5 * p.Size * p.Size * (p.VX*p.VX + p.VY*p.VY)
	}
	return total / float64(len(f.Particles))
}

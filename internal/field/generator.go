package field

import "math"

// Count is the population size for a surface: floor(w*h / density).
func Count(width, height float64, d Device) int {
	if width <= 0 || height <= 0 {
		return 0
	}
	div := DensityDesktop
	if d == Mobile {
		div = DensityMobile
	}
	return int(math.Floor(width * height / div))
}

func sizeRange(d Device) (lo, hi float64) {
	if d == Mobile {
		return 2, 6
	}
	return 3, 9
}

// Generate samples a fresh population for a width x height surface.
func Generate(width, height float64, d Device, t Theme, pal Palette, r Rand) []Particle {
	n := Count(width, height, d)
	ps := make([]Particle, n)
	lo, hi := sizeRange(d)
	for i := range ps {
		ps[i] = Particle{
			X:             uniform(r, 0, width),
			Y:             uniform(r, 0, height),
			VX:            uniform(r, -VelocityRange, VelocityRange),
			VY:            uniform(r, -VelocityRange, VelocityRange),
			Size:          uniform(r, lo, hi),
			Shape:         shapeSlots[pick(r, len(shapeSlots))],
			Color:         pal.Pick(d, t, r),
			Rotation:      uniform(r, 0, 2*math.Pi),
			RotationSpeed: uniform(r, -RotationRange, RotationRange),
			PulsePhase:    uniform(r, 0, 2*math.Pi),
			Elasticity:    uniform(r, ElasticityMin, ElasticityMax),
		}
	}
	return ps
}

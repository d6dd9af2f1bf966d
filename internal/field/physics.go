package field

import "math"

// Step advances p by one tick inside a width x height surface.
//
// A pointer exactly on top of the particle exerts no force: the push
// direction is undefined there.
func (p *Particle) Step(ptr Pointer, width, height float64, r Rand) {
	if ptr.Present {
		dx := p.X - ptr.X
		dy := p.Y - ptr.Y
		dist := math.Sqrt(dx*dx + dy*dy)
		if dist > 0 && dist < InteractionRadius {
			force := (InteractionRadius - dist) / InteractionRadius
			p.VX += dx / dist * force * PointerForce
			p.VY += dy / dist * force * PointerForce
		}
	}

	p.X += p.VX
	p.Y += p.VY
	p.Rotation += p.RotationSpeed

	p.VX *= p.Elasticity
	p.VY *= p.Elasticity

	half := JitterRange / 2
	if math.Abs(p.VX) < StallThreshold {
		p.VX += uniform(r, -half, half)
	}
	if math.Abs(p.VY) < StallThreshold {
		p.VY += uniform(r, -half, half)
	}

	if p.X < 0 {
		p.X = 0
		p.VX *= -p.Elasticity
	} else if p.X > width {
		p.X = width
		p.VX *= -p.Elasticity
	}
	if p.Y < 0 {
		p.Y = 0
		p.VY *= -p.Elasticity
	} else if p.Y > height {
		p.Y = height
		p.VY *= -p.Elasticity
	}
}

// StepAll advances every particle in place.
func StepAll(ps []Particle, ptr Pointer, width, height float64, r Rand) {
	for i := range ps {
		ps[i].Step(ptr, width, height, r)
	}
}

package field

import "math"

// Pulse is the size multiplier of a particle at time t seconds.
func Pulse(t, phase float64) float64 {
	return 1 + math.Sin(t*PulseSpeed+phase)*PulseAmount
}

// ShapeVertices returns the outline of a triangle or diamond of the given
// size, rotated and placed at the particle. Circles have no vertices.
func ShapeVertices(p Particle, size float64) []Point {
	var local []Point
	switch p.Shape {
	case Triangle:
		local = []Point{
			{0, -size},
			{size * TriangleSpan, size * 0.5},
			{-size * TriangleSpan, size * 0.5},
		}
	case Diamond:
		local = []Point{
			{0, -size},
			{size * DiamondAspect, 0},
			{0, size},
			{-size * DiamondAspect, 0},
		}
	default:
		return nil
	}
	sin, cos := math.Sincos(p.Rotation)
	for i, v := range local {
		local[i] = Point{
			X: p.X + v.X*cos - v.Y*sin,
			Y: p.Y + v.X*sin + v.Y*cos,
		}
	}
	return local
}

// DrawShape draws one particle with its pulse applied.
func DrawShape(s Surface, p Particle, t float64) {
	size := p.Size * Pulse(t, p.PulsePhase)
	s.SetGlow(GlowBlur, p.Color)
	if p.Shape == Circle {
		s.FillCircle(p.Pos(), size, p.Color)
		return
	}
	s.FillPolygon(ShapeVertices(p, size), p.Color)
}

// DrawShapes draws every particle and clears the glow afterwards.
func DrawShapes(s Surface, ps []Particle, t float64) {
	for _, p := range ps {
		DrawShape(s, p, t)
	}
	s.ResetGlow()
}

package field

import "math"

// EdgeOpacity returns the line alpha for two particles dist apart, and
// whether an edge is drawn at all.
func EdgeOpacity(dist float64, d Device, t Theme) (float64, bool) {
	maxDist := ConnectDistance(d)
	if dist >= maxDist {
		return 0, false
	}
	return (1 - dist/maxDist) * ConnectionOpacity(d, t), true
}

// Connect draws an edge for every close pair and returns the edge count.
func Connect(s Surface, ps []Particle, d Device, t Theme, pal Palette) int {
	width := ConnectionWidth(t)
	edges := 0
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			dx := ps[i].X - ps[j].X
			dy := ps[i].Y - ps[j].Y
			op, ok := EdgeOpacity(math.Sqrt(dx*dx+dy*dy), d, t)
			if !ok {
				continue
			}
			s.StrokeLine(ps[i].Pos(), ps[j].Pos(), width, pal.EdgeColor(op))
			edges++
		}
	}
	return edges
}

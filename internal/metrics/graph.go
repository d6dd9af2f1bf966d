package metrics

import (
	"math"

	"github.com/san-kum/neuralbg/internal/field"
	"github.com/san-kum/neuralbg/internal/sim"
)

type Population struct {
	series
}

func NewPopulation() *Population {
	return &Population{series{name: "population"}}
}

func (p *Population) Observe(f sim.Frame) { p.push(float64(len(f.Particles))) }

// Edges tracks the size of the proximity graph drawn each frame.
type Edges struct {
	series
}

func NewEdges() *Edges {
	return &Edges{series{name: "edges"}}
}

func (e *Edges) Observe(f sim.Frame) { e.push(float64(f.Edges)) }

// PointerReach is the share of the population inside the pointer's
// interaction radius. It is zero while the pointer is absent.
type PointerReach struct {
	series
}

func NewPointerReach() *PointerReach {
	return &PointerReach{series{name: "pointer_reach"}}
}

func (r *PointerReach) Observe(f sim.Frame) { r.push(pointerReach(f)) }

func pointerReach(f sim.Frame) float64 {
	if !f.Pointer.Present || len(f.Particles) == 0 {
		return 0
	}
	n := 0
	for _, p := range f.Particles {
		if math.Hypot(p.X-f.Pointer.X, p.Y-f.Pointer.Y) < field.InteractionRadius {
			n++
		}
	}
	return float64(n) / float64(len(f.Particles))
}

package gui

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/neuralbg/internal/field"
)

const glowTexSize = 64

// Surface draws the field straight into the current raylib frame.
type Surface struct {
	Background rl.Color

	glowTex   rl.Texture2D
	loaded    bool
	glow      bool
	glowBlur  float32
	glowColor rl.Color
}

// load creates the glow texture. It needs an open window.
func (s *Surface) load() {
	img := rl.GenImageGradientRadial(glowTexSize, glowTexSize, 0.0, rl.White, rl.NewColor(0, 0, 0, 0))
	s.glowTex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	s.loaded = true
}

func (s *Surface) unload() {
	if s.loaded {
		rl.UnloadTexture(s.glowTex)
		s.loaded = false
	}
}

// Resize is a no-op: the window back buffer already matches the viewport.
func (s *Surface) Resize(width, height float64) {}

func (s *Surface) Clear() { rl.ClearBackground(s.Background) }

func (s *Surface) StrokeLine(from, to field.Point, width float64, c color.NRGBA) {
	rl.DrawLineEx(vec(from), vec(to), float32(width), rlColor(c))
}

func (s *Surface) FillCircle(center field.Point, radius float64, c color.NRGBA) {
	s.halo(center, float32(radius))
	rl.DrawCircleV(vec(center), float32(radius), rlColor(c))
}

// FillPolygon fans convex pts into triangles.
func (s *Surface) FillPolygon(pts []field.Point, c color.NRGBA) {
	if len(pts) < 3 {
		return
	}
	center, reach := bounds(pts)
	s.halo(center, reach)
	col := rlColor(c)
	for _, tri := range fan(pts) {
		rl.DrawTriangle(vec(tri[0]), vec(tri[1]), vec(tri[2]), col)
	}
}

// halo draws the radial glow texture under a shape with additive blending.
func (s *Surface) halo(center field.Point, radius float32) {
	if !s.glow || !s.loaded {
		return
	}
	size := 2 * (radius + s.glowBlur)
	src := rl.NewRectangle(0, 0, glowTexSize, glowTexSize)
	dst := rl.NewRectangle(float32(center.X)-size/2, float32(center.Y)-size/2, size, size)

	rl.BeginBlendMode(rl.BlendAdditive)
	rl.DrawTexturePro(s.glowTex, src, dst, rl.Vector2{}, 0, s.glowColor)
	rl.EndBlendMode()
}

func (s *Surface) SetGlow(blur float64, c color.NRGBA) {
	s.glow = true
	s.glowBlur = float32(blur)
	s.glowColor = rlColor(c)
}

func (s *Surface) ResetGlow() { s.glow = false }

func vec(p field.Point) rl.Vector2 {
	return rl.NewVector2(float32(p.X), float32(p.Y))
}

func rlColor(c color.NRGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

// fan splits a convex polygon into triangles wound counter-clockwise on
// screen, the order raylib fills.
func fan(pts []field.Point) [][3]field.Point {
	tris := make([][3]field.Point, 0, len(pts)-2)
	for i := 1; i+1 < len(pts); i++ {
		a, b, c := pts[0], pts[i], pts[i+1]
		if cross(a, b, c) > 0 {
			b, c = c, b
		}
		tris = append(tris, [3]field.Point{a, b, c})
	}
	return tris
}

func cross(a, b, c field.Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// bounds returns the centroid of pts and the distance to the farthest one.
func bounds(pts []field.Point) (field.Point, float32) {
	var cx, cy float64
	for _, p := range pts {
		cx += p.X
		cy += p.Y
	}
	n := float64(len(pts))
	center := field.Point{X: cx / n, Y: cy / n}

	var reach float64
	for _, p := range pts {
		dx, dy := p.X-center.X, p.Y-center.Y
		if d := dx*dx + dy*dy; d > reach {
			reach = d
		}
	}
	return center, float32(math.Sqrt(reach))
}

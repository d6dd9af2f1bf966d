package screen

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/san-kum/neuralbg/internal/field"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// Surface draws onto the ebiten screen image handed to Draw.
type Surface struct {
	Background color.NRGBA

	target    *ebiten.Image
	glow      bool
	glowBlur  float32
	glowColor color.NRGBA
	vertices  []ebiten.Vertex
	indices   []uint16
}

// Resize is a no-op: Layout already sized the screen image.
func (s *Surface) Resize(width, height float64) {}

func (s *Surface) Clear() {
	if s.target == nil {
		return
	}
	s.target.Fill(s.Background)
}

func (s *Surface) StrokeLine(from, to field.Point, width float64, c color.NRGBA) {
	if s.target == nil {
		return
	}
	vector.StrokeLine(s.target, float32(from.X), float32(from.Y), float32(to.X), float32(to.Y), float32(width), c, true)
}

func (s *Surface) FillCircle(center field.Point, radius float64, c color.NRGBA) {
	if s.target == nil {
		return
	}
	x, y, r := float32(center.X), float32(center.Y), float32(radius)
	s.halo(x, y, r)
	vector.DrawFilledCircle(s.target, x, y, r, c, true)
}

func (s *Surface) FillPolygon(pts []field.Point, c color.NRGBA) {
	if s.target == nil || len(pts) < 3 {
		return
	}

	var path vector.Path
	var cx, cy float32
	path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()

	var reach float32
	for _, p := range pts {
		cx += float32(p.X)
		cy += float32(p.Y)
	}
	cx /= float32(len(pts))
	cy /= float32(len(pts))
	for _, p := range pts {
		dx, dy := float32(p.X)-cx, float32(p.Y)-cy
		reach = max(reach, dx*dx+dy*dy)
	}
	s.halo(cx, cy, sqrt32(reach))

	s.vertices, s.indices = path.AppendVerticesAndIndicesForFilling(s.vertices[:0], s.indices[:0])
	r, g, b, a := float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255
	for i := range s.vertices {
		s.vertices[i].SrcX = 1
		s.vertices[i].SrcY = 1
		s.vertices[i].ColorR = r
		s.vertices[i].ColorG = g
		s.vertices[i].ColorB = b
		s.vertices[i].ColorA = a
	}
	op := &ebiten.DrawTrianglesOptions{
		ColorScaleMode: ebiten.ColorScaleModeStraightAlpha,
		AntiAlias:      true,
	}
	s.target.DrawTriangles(s.vertices, s.indices, whiteSubImage, op)
}

// halo draws two translucent rings under a shape.
func (s *Surface) halo(x, y, r float32) {
	if !s.glow {
		return
	}
	outer, inner := s.glowColor, s.glowColor
	outer.A = s.glowColor.A / 8
	inner.A = s.glowColor.A / 4
	vector.DrawFilledCircle(s.target, x, y, r+s.glowBlur, outer, true)
	vector.DrawFilledCircle(s.target, x, y, r+s.glowBlur/2, inner, true)
}

func (s *Surface) SetGlow(blur float64, c color.NRGBA) {
	s.glow = true
	s.glowBlur = float32(blur)
	s.glowColor = c
}

func (s *Surface) ResetGlow() { s.glow = false }

package export

import (
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/san-kum/neuralbg/internal/field"
	"github.com/san-kum/neuralbg/internal/viz"
)

// SVG is a field.Surface that records one frame as an SVG document.
// Clear starts a new frame.
type SVG struct {
	Width, Height float64
	Background    string

	body     strings.Builder
	glow     bool
	glowBlur float64
	blurs    map[float64]string
}

func NewSVG(t field.Theme) *SVG {
	return &SVG{
		Background: field.Background(t),
		blurs:      make(map[float64]string),
	}
}

func (s *SVG) Resize(width, height float64) {
	s.Width, s.Height = width, height
}

func (s *SVG) Clear() {
	s.body.Reset()
}

func (s *SVG) StrokeLine(from, to field.Point, width float64, c color.NRGBA) {
	fmt.Fprintf(&s.body,
		`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-opacity="%.3f" stroke-width="%.2f" stroke-linecap="round"/>`+"\n",
		from.X, from.Y, to.X, to.Y, hex(c), opacity(c), width)
}

func (s *SVG) FillCircle(center field.Point, radius float64, c color.NRGBA) {
	fmt.Fprintf(&s.body, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" fill-opacity="%.3f"%s/>`+"\n",
		center.X, center.Y, radius, hex(c), opacity(c), s.filter())
}

func (s *SVG) FillPolygon(pts []field.Point, c color.NRGBA) {
	if len(pts) == 0 {
		return
	}
	coords := make([]string, len(pts))
	for i, p := range pts {
		coords[i] = fmt.Sprintf("%.2f,%.2f", p.X, p.Y)
	}
	fmt.Fprintf(&s.body, `<polygon points="%s" fill="%s" fill-opacity="%.3f"%s/>`+"\n",
		strings.Join(coords, " "), hex(c), opacity(c), s.filter())
}

// SetGlow blurs subsequent fills with a Gaussian filter of the shape's own
// color. The glow color is not needed: shapes glow in their fill.
func (s *SVG) SetGlow(blur float64, c color.NRGBA) {
	s.glow = true
	s.glowBlur = blur
}

func (s *SVG) ResetGlow() { s.glow = false }

func (s *SVG) filter() string {
	if !s.glow || s.glowBlur <= 0 {
		return ""
	}
	id, ok := s.blurs[s.glowBlur]
	if !ok {
		id = fmt.Sprintf("glow%d", len(s.blurs))
		s.blurs[s.glowBlur] = id
	}
	return fmt.Sprintf(` filter="url(#%s)"`, id)
}

// String returns the recorded frame as a complete SVG document.
func (s *SVG) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, s.Width, s.Height, s.Width, s.Height, s.Background)

	if len(s.blurs) > 0 {
		sb.WriteString("<defs>\n")
		for blur, id := range s.blurs {
			// stdDeviation is about half a canvas shadowBlur.
			fmt.Fprintf(&sb, `<filter id="%s" x="-100%%" y="-100%%" width="300%%" height="300%%">
<feGaussianBlur in="SourceGraphic" stdDeviation="%.2f" result="blur"/>
<feMerge><feMergeNode in="blur"/><feMergeNode in="SourceGraphic"/></feMerge>
</filter>
`, id, blur/2)
		}
		sb.WriteString("</defs>\n")
	}

	sb.WriteString(s.body.String())
	sb.WriteString("</svg>\n")
	return sb.String()
}

// WriteFile saves the recorded frame.
func (s *SVG) WriteFile(path string) error {
	return os.WriteFile(path, []byte(s.String()), 0644)
}

func hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func opacity(c color.NRGBA) float64 {
	return float64(c.A) / 255
}

// CanvasToSVG converts a terminal braille canvas to SVG, one dot per lit
// braille dot, colored with the cell's ink.
func CanvasToSVG(canvas *viz.Canvas, scale float64, t field.Theme) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, field.Background(t))

	dotRadius := scale * 0.4
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			fill, alpha := canvas.CellColor(row, col)
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					x, y := col*2+dx, row*4+dy
					if !canvas.Dot(x, y) {
						continue
					}
					cx := float64(x)*scale + scale/2
					cy := float64(y)*scale + scale/2
					fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" fill-opacity="%.3f"/>`+"\n",
						cx, cy, dotRadius, fill, alpha)
				}
			}
		}
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

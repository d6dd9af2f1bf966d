package viz

import (
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/neuralbg/internal/field"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// ink is the blended color of everything drawn into one cell. Weight is the
// summed alpha, so faint strokes stay faint.
type ink struct {
	color  colorful.Color
	weight float64
}

// Canvas is a grid of braille cells, each carrying one blended color.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Ink           [][]ink
}

func NewCanvas(w, h int) *Canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Ink:    make([][]ink, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Ink[i] = make([]ink, w)
	}
	c.Clear()
	return c
}

// Set lights the dot at sub-pixel (x, y) with color col at alpha a.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int, col colorful.Color, a float64) {
	if x < 0 || y < 0 || a <= 0 {
		return
	}

	cx := x / 2
	row := y / 4
	if cx >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][cx] |= rune(pixelMap[y%4][x%2])

	cell := &c.Ink[row][cx]
	if cell.weight == 0 {
		cell.color = col
	} else {
		cell.color = cell.color.BlendRgb(col, a/(cell.weight+a))
	}
	cell.weight += a
}

// Dot reports whether the sub-pixel (x, y) is lit.
func (c *Canvas) Dot(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

// Tint blends col into every cell whose center lies within r sub-pixels of
// (cx, cy). Dots are left as they are.
func (c *Canvas) Tint(cx, cy, r float64, col colorful.Color, a float64) {
	if a <= 0 {
		return
	}
	r0, r1 := int(math.Floor((cy-r)/4)), int(math.Ceil((cy+r)/4))
	c0, c1 := int(math.Floor((cx-r)/2)), int(math.Ceil((cx+r)/2))
	for row := max(r0, 0); row <= r1 && row < c.Height; row++ {
		for ci := max(c0, 0); ci <= c1 && ci < c.Width; ci++ {
			dx, dy := float64(ci*2+1)-cx, float64(row*4+2)-cy
			if dx*dx+dy*dy > r*r {
				continue
			}
			cell := &c.Ink[row][ci]
			if cell.weight == 0 {
				continue
			}
			cell.color = cell.color.BlendRgb(col, a/(cell.weight+a))
		}
	}
}

// CellColor returns the hex ink of a cell and its alpha, capped at 1.
func (c *Canvas) CellColor(row, col int) (string, float64) {
	cell := c.Ink[row][col]
	return cell.color.Clamped().Hex(), math.Min(cell.weight, 1)
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Ink[i][j] = ink{}
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, col colorful.Color, a float64) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, col, a)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// FillCircle lights every dot whose center lies within r of (cx, cy).
// A circle smaller than one dot still lights its center.
func (c *Canvas) FillCircle(cx, cy, r float64, col colorful.Color, a float64) {
	x0, x1 := int(math.Floor(cx-r)), int(math.Ceil(cx+r))
	y0, y1 := int(math.Floor(cy-r)), int(math.Ceil(cy+r))
	lit := false
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			if dx*dx+dy*dy <= r*r {
				c.Set(x, y, col, a)
				lit = true
			}
		}
	}
	if !lit {
		c.Set(int(cx), int(cy), col, a)
	}
}

// FillPolygon fills pts with the even-odd rule, sampling dot centers.
func (c *Canvas) FillPolygon(pts []field.Point, col colorful.Color, a float64) {
	if len(pts) == 0 {
		return
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	var sx, sy float64
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		sx += p.X
		sy += p.Y
	}

	lit := false
	for y := int(math.Floor(minY)); y <= int(math.Ceil(maxY)); y++ {
		for x := int(math.Floor(minX)); x <= int(math.Ceil(maxX)); x++ {
			if inside(pts, float64(x)+0.5, float64(y)+0.5) {
				c.Set(x, y, col, a)
				lit = true
			}
		}
	}
	if !lit {
		n := float64(len(pts))
		c.Set(int(sx/n), int(sy/n), col, a)
	}
}

func inside(pts []field.Point, x, y float64) bool {
	in := false
	j := len(pts) - 1
	for i := range pts {
		pi, pj := pts[i], pts[j]
		if (pi.Y > y) != (pj.Y > y) && x < (pj.X-pi.X)*(y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			in = !in
		}
		j = i
	}
	return in
}

// String renders the dots without color.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render draws the canvas over bg. Each cell's color is its ink faded
// toward bg by how much alpha landed in it; runs of equal color share one
// style.
func (c *Canvas) Render(bg colorful.Color) string {
	base := lipgloss.NewStyle().Background(lipgloss.Color(bg.Hex()))
	var b strings.Builder
	for i, row := range c.Grid {
		var run strings.Builder
		runHex := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			style := base
			if runHex != "" {
				style = style.Foreground(lipgloss.Color(runHex))
			}
			b.WriteString(style.Render(run.String()))
			run.Reset()
		}
		for j, r := range row {
			hex := ""
			if cell := c.Ink[i][j]; cell.weight > 0 {
				hex = bg.BlendRgb(cell.color, math.Min(cell.weight, 1)).Clamped().Hex()
			}
			if hex != runHex {
				flush()
				runHex = hex
			}
			run.WriteRune(r)
		}
		flush()
		if i < len(c.Grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Surface adapts a Canvas to field.Surface. One braille dot covers Scale
// viewport pixels in each direction.
type Surface struct {
	Canvas *Canvas
	Scale  float64

	glow      bool
	glowColor colorful.Color
	glowAlpha float64
	glowBlur  float64
}

func NewSurface(scale float64) *Surface {
	if scale <= 0 {
		scale = 1
	}
	return &Surface{Canvas: NewCanvas(0, 0), Scale: scale}
}

// Resize sizes the canvas to cover width x height pixels.
func (s *Surface) Resize(width, height float64) {
	cols := int(math.Ceil(width / s.Scale / 2))
	rows := int(math.Ceil(height / s.Scale / 4))
	if cols == s.Canvas.Width && rows == s.Canvas.Height {
		return
	}
	s.Canvas = NewCanvas(cols, rows)
}

func (s *Surface) Clear() { s.Canvas.Clear() }

func (s *Surface) dot(p field.Point) (int, int) {
	return int(math.Floor(p.X / s.Scale)), int(math.Floor(p.Y / s.Scale))
}

// StrokeLine ignores width: a braille dot is the thinnest line available.
func (s *Surface) StrokeLine(from, to field.Point, width float64, c color.NRGBA) {
	col, a := split(c)
	x0, y0 := s.dot(from)
	x1, y1 := s.dot(to)
	s.Canvas.DrawLine(x0, y0, x1, y1, col, a)
}

func (s *Surface) FillCircle(center field.Point, radius float64, c color.NRGBA) {
	col, a := split(c)
	cx, cy, r := center.X/s.Scale, center.Y/s.Scale, radius/s.Scale
	s.halo(cx, cy, r)
	s.Canvas.FillCircle(cx, cy, r, col, a)
}

func (s *Surface) FillPolygon(pts []field.Point, c color.NRGBA) {
	if len(pts) == 0 {
		return
	}
	col, a := split(c)
	scaled := make([]field.Point, len(pts))
	var cx, cy, r float64
	for i, p := range pts {
		scaled[i] = field.Point{X: p.X / s.Scale, Y: p.Y / s.Scale}
		cx += scaled[i].X
		cy += scaled[i].Y
	}
	cx /= float64(len(pts))
	cy /= float64(len(pts))
	for _, p := range scaled {
		r = math.Max(r, math.Hypot(p.X-cx, p.Y-cy))
	}
	s.halo(cx, cy, r)
	s.Canvas.FillPolygon(scaled, col, a)
}

// halo tints the cells around a shape with the glow color without lighting
// any dots, so nearby lines pick up the shape's hue.
func (s *Surface) halo(cx, cy, r float64) {
	if !s.glow {
		return
	}
	s.Canvas.Tint(cx, cy, r+s.glowBlur/s.Scale, s.glowColor, s.glowAlpha*0.5)
}

func (s *Surface) SetGlow(blur float64, c color.NRGBA) {
	s.glow = true
	s.glowBlur = blur
	s.glowColor, s.glowAlpha = split(c)
}

func (s *Surface) ResetGlow() { s.glow = false }

func split(c color.NRGBA) (colorful.Color, float64) {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}, float64(c.A) / 255
}

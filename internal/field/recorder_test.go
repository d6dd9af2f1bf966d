package field

import "image/color"

type drawCall struct {
	op     string
	pts    []Point
	radius float64
	width  float64
	color  color.NRGBA
	glow   float64
}

// recorder is a Surface that remembers every call.
type recorder struct {
	width, height float64
	calls         []drawCall
	clears        int
	glow          float64
	glowResets    int
}

func (r *recorder) Resize(w, h float64) { r.width, r.height = w, h }

func (r *recorder) Clear() {
	r.clears++
	r.calls = r.calls[:0]
}

func (r *recorder) StrokeLine(from, to Point, width float64, c color.NRGBA) {
	r.calls = append(r.calls, drawCall{op: "line", pts: []Point{from, to}, width: width, color: c, glow: r.glow})
}

func (r *recorder) FillCircle(center Point, radius float64, c color.NRGBA) {
	r.calls = append(r.calls, drawCall{op: "circle", pts: []Point{center}, radius: radius, color: c, glow: r.glow})
}

func (r *recorder) FillPolygon(pts []Point, c color.NRGBA) {
	cp := append([]Point(nil), pts...)
	r.calls = append(r.calls, drawCall{op: "polygon", pts: cp, color: c, glow: r.glow})
}

func (r *recorder) SetGlow(blur float64, c color.NRGBA) { r.glow = blur }

func (r *recorder) ResetGlow() {
	r.glow = 0
	r.glowResets++
}

func (r *recorder) count(op string) int {
	n := 0
	for _, c := range r.calls {
		if c.op == op {
			n++
		}
	}
	return n
}

// centroid of a fill call.
func (d drawCall) centroid() Point {
	var sx, sy float64
	for _, p := range d.pts {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(d.pts))
	return Point{sx / n, sy / n}
}

type testHost struct {
	Loop
	w, h  float64
	theme Theme
}

func (h *testHost) Viewport() (float64, float64) { return h.w, h.h }
func (h *testHost) Theme() Theme                 { return h.theme }

// seq is a Rand returning a fixed cycle of values.
type seq struct {
	vals []float64
	i    int
}

func (s *seq) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

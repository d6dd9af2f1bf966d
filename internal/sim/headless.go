package sim

import (
	"image/color"

	"github.com/san-kum/neuralbg/internal/field"
)

// Headless is an off-screen field.Host with a fixed viewport and theme.
type Headless struct {
	field.Loop
	width, height float64
	theme         field.Theme
}

func NewHeadless(width, height float64, theme field.Theme) *Headless {
	return &Headless{width: width, height: height, theme: theme}
}

func (h *Headless) Viewport() (float64, float64) { return h.width, h.height }
func (h *Headless) Theme() field.Theme           { return h.theme }

// SetViewport changes the viewport and notifies listeners.
func (h *Headless) SetViewport(width, height float64) {
	h.width, h.height = width, height
	h.DispatchResize()
}

// SetTheme changes the theme; like a page theme toggle it only reaches the
// field on the next resize.
func (h *Headless) SetTheme(t field.Theme) { h.theme = t }

// MovePointer notifies listeners of a pointer move.
func (h *Headless) MovePointer(x, y float64) { h.DispatchPointer(x, y) }

// Discard is a Surface that draws nothing.
type Discard struct {
	Width, Height float64
}

func (d *Discard) Resize(w, h float64)                                       { d.Width, d.Height = w, h }
func (d *Discard) Clear()                                                    {}
func (d *Discard) StrokeLine(from, to field.Point, w float64, c color.NRGBA) {}
func (d *Discard) FillCircle(center field.Point, r float64, c color.NRGBA)   {}
func (d *Discard) FillPolygon(pts []field.Point, c color.NRGBA)              {}
func (d *Discard) SetGlow(blur float64, c color.NRGBA)                       {}
func (d *Discard) ResetGlow()                                                {}

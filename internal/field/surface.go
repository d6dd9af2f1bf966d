package field

import "image/color"

// Surface is the drawing context a host lends to the controller.
// Coordinates are viewport pixels.
type Surface interface {
	// Resize sets the drawable area, matching the host viewport.
	Resize(width, height float64)
	Clear()
	StrokeLine(from, to Point, width float64, c color.NRGBA)
	FillCircle(center Point, radius float64, c color.NRGBA)
	FillPolygon(pts []Point, c color.NRGBA)
	// SetGlow applies a soft halo to subsequent fills until ResetGlow.
	SetGlow(blur float64, c color.NRGBA)
	ResetGlow()
}

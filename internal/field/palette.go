package field

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Hue is one palette entry. Scale multiplies the theme opacity.
type Hue struct {
	Name  string
	Hex   string
	Scale float64
}

// Palette assigns particle and connection colors.
type Palette struct {
	Hues       []Hue
	Connection string
}

// DefaultPalette is the cyan/purple/pink scheme of the field.
func DefaultPalette() Palette {
	return Palette{
		Hues: []Hue{
			{Name: "cyan", Hex: "#0ea5e9", Scale: 1},
			{Name: "purple", Hex: "#a855f7", Scale: 1},
			{Name: "light-cyan", Hex: "#22d3ee", Scale: 1},
			{Name: "indigo", Hex: "#818cf8", Scale: 1},
			{Name: "pink", Hex: "#f472b6", Scale: 0.8},
			{Name: "emerald", Hex: "#34d399", Scale: 1},
		},
		Connection: "#0ea5e9",
	}
}

// ParticleOpacity is the base particle alpha for a device and theme.
func ParticleOpacity(d Device, t Theme) float64 {
	switch {
	case d == Mobile && t == ThemeLight:
		return 0.5
	case d == Mobile:
		return 0.4
	case t == ThemeLight:
		return 0.7
	default:
		return 0.6
	}
}

// ConnectionOpacity is the alpha of an edge between touching particles.
func ConnectionOpacity(d Device, t Theme) float64 {
	switch {
	case d == Mobile && t == ThemeLight:
		return 0.3
	case d == Mobile:
		return 0.2
	case t == ThemeLight:
		return 0.4
	default:
		return 0.3
	}
}

// ConnectionWidth is the stroke width of edges.
func ConnectionWidth(t Theme) float64 {
	if t == ThemeLight {
		return 0.6
	}
	return 0.4
}

// ConnectDistance is the maximum length of an edge.
func ConnectDistance(d Device) float64 {
	if d == Mobile {
		return ConnectDistanceMobile
	}
	return ConnectDistanceDesktop
}

// Pick draws one hue uniformly and bakes in the opacity for d and t.
// An empty palette yields the connection color.
func (p Palette) Pick(d Device, t Theme, r Rand) color.NRGBA {
	alpha := ParticleOpacity(d, t)
	if len(p.Hues) == 0 {
		return WithAlpha(p.Connection, alpha)
	}
	h := p.Hues[pick(r, len(p.Hues))]
	return WithAlpha(h.Hex, alpha*h.Scale)
}

// EdgeColor returns the connection color at the given opacity.
func (p Palette) EdgeColor(opacity float64) color.NRGBA {
	return WithAlpha(p.Connection, opacity)
}

// WithAlpha parses a hex color and applies alpha in [0, 1].
// Malformed hex falls back to black.
func WithAlpha(hex string, alpha float64) color.NRGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		c = colorful.Color{}
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alphaByte(alpha)}
}

func alphaByte(a float64) uint8 {
	if a <= 0 {
		return 0
	}
	if a >= 1 {
		return 255
	}
	return uint8(a*255 + 0.5)
}

// Background is the page color behind the field for a theme.
func Background(t Theme) string {
	if t == ThemeLight {
		return "#f8fafc"
	}
	return "#0b1120"
}

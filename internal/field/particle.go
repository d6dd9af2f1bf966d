package field

import (
	"image/color"
	"math"
)

// Shape is the visual form of a particle.
type Shape int

const (
	Circle Shape = iota
	Triangle
	Diamond
)

func (s Shape) String() string {
	switch s {
	case Circle:
		return "circle"
	case Triangle:
		return "triangle"
	case Diamond:
		return "diamond"
	default:
		return "unknown"
	}
}

// Device is the coarse viewport class that drives density and opacity.
type Device int

const (
	Desktop Device = iota
	Mobile
)

func (d Device) String() string {
	if d == Mobile {
		return "mobile"
	}
	return "desktop"
}

// DeviceFor classifies a viewport by its width.
func DeviceFor(width float64) Device {
	if width < MobileWidth {
		return Mobile
	}
	return Desktop
}

// Theme is the host's color scheme.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ParseTheme maps anything other than "light" to the dark theme.
func ParseTheme(s string) Theme {
	if Theme(s) == ThemeLight {
		return ThemeLight
	}
	return ThemeDark
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// Point is a position on the surface in viewport pixels.
type Point struct {
	X, Y float64
}

// Pointer is the last known cursor position.
type Pointer struct {
	X, Y    float64
	Present bool
}

// Particle is one simulated shape. Color is fixed at creation.
type Particle struct {
	X, Y          float64
	VX, VY        float64
	Size          float64
	Shape         Shape
	Color         color.NRGBA
	Rotation      float64
	RotationSpeed float64
	PulsePhase    float64
	Elasticity    float64
}

// Pos returns the particle position.
func (p Particle) Pos() Point { return Point{p.X, p.Y} }

// Speed returns the velocity magnitude.
func (p Particle) Speed() float64 { return math.Hypot(p.VX, p.VY) }

// Fixed tuning of the field. None of these are user-configurable.
const (
	MobileWidth = 768.0

	DensityMobile  = 40000.0
	DensityDesktop = 25000.0

	InteractionRadius = 180.0
	PointerForce      = 0.03

	VelocityRange  = 0.2
	RotationRange  = 0.01
	ElasticityMin  = 0.85
	ElasticityMax  = 0.95
	StallThreshold = 0.1
	JitterRange    = 0.02

	ConnectDistanceMobile  = 120.0
	ConnectDistanceDesktop = 150.0

	GlowBlur      = 8.0
	PulseSpeed    = 2.0
	PulseAmount   = 0.15
	TriangleSpan  = 0.866
	DiamondAspect = 0.7
)

// shapeSlots biases the shape draw toward circles.
var shapeSlots = [...]Shape{Circle, Triangle, Circle, Diamond, Circle}

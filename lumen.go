package lumen

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R float64 `yaml:"r"`
	G float64 `yaml:"g"`
	B float64 `yaml:"b"`
	A float64 `yaml:"a"`
}

var (
	// ColorWhite is the default fill for objects without their own color.
	ColorWhite = Color{1, 1, 1, 1}
	// ColorBlack is used for light-blocking silhouettes.
	ColorBlack = Color{0, 0, 0, 1}
	// ColorTransparent is fully transparent black.
	ColorTransparent = Color{}
)

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Premultiplied returns the color's components with alpha applied, clamped
// to [0, 1], in the layout ebiten vertices expect.
func (c Color) Premultiplied() (r, g, b, a float32) {
	alpha := clamp01(c.A)
	return float32(clamp01(c.R) * alpha),
		float32(clamp01(c.G) * alpha),
		float32(clamp01(c.B) * alpha),
		float32(alpha)
}

// RGBA implements color.Color (premultiplied, 16-bit) so a Color can be
// passed directly to image.Fill.
func (c Color) RGBA() (r, g, b, a uint32) {
	pr, pg, pb, pa := c.Premultiplied()
	return uint32(pr * 0xffff), uint32(pg * 0xffff), uint32(pb * 0xffff), uint32(pa * 0xffff)
}

// AlphaByte converts an 8-bit alpha into the [0, 1] range used by Color.
func AlphaByte(a uint8) float64 {
	return float64(a) / 255
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Overlaps reports whether the interiors of r and other intersect on both
// axes. Rectangles that only touch along an edge do not overlap. Callers
// reject degenerate rectangles themselves.
func (r Rect) Overlaps(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// IsFinite reports whether every field of r is a finite number.
func (r Rect) IsFinite() bool {
	return isFinite(r.X) && isFinite(r.Y) && isFinite(r.Width) && isFinite(r.Height)
}

// Range is a general-purpose min/max range.
// Used by the particle emitter for lifetimes and spawn parameters.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// BlendMode selects a compositing operation. Each maps to a specific ebiten.Blend value.
type BlendMode uint8

const (
	BlendNormal   BlendMode = iota // source-over (standard alpha blending)
	BlendAdd                       // additive / lighter
	BlendSubtract                  // destination minus source (carves light out of a mask)
	BlendMultiply                  // multiply (source * destination; only darkens)
)

// String returns the blend mode's name.
func (b BlendMode) String() string {
	switch b {
	case BlendNormal:
		return "normal"
	case BlendAdd:
		return "add"
	case BlendSubtract:
		return "subtract"
	case BlendMultiply:
		return "multiply"
	default:
		return "unknown"
	}
}

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendNormal:
		return ebiten.BlendSourceOver
	case BlendAdd:
		return ebiten.BlendLighter
	case BlendSubtract:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorOne,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOne,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOne,
			BlendOperationRGB:           ebiten.BlendOperationReverseSubtract,
			BlendOperationAlpha:         ebiten.BlendOperationReverseSubtract,
		}
	case BlendMultiply:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
			BlendFactorSourceAlpha:      ebiten.BlendFactorDestinationAlpha,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	default:
		return ebiten.BlendSourceOver
	}
}

// ShapeKind distinguishes the closed set of BoundedObject shapes.
type ShapeKind uint8

const (
	ShapeRectangle ShapeKind = iota // axis-aligned box positioned by its top-left corner
	ShapeCircle                     // disc positioned by its center
)

// String returns the shape kind's name.
func (k ShapeKind) String() string {
	switch k {
	case ShapeRectangle:
		return "rectangle"
	case ShapeCircle:
		return "circle"
	default:
		return "unknown"
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

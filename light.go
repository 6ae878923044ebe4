package lumen

import (
	"fmt"
	"math"
)

// LightPointCount is the number of boundary points approximating a light's
// radius: one per degree.
const LightPointCount = 360

// DefaultEdgeColor is the rim color of the shadow-carve gradient when neither
// the light nor the layer configures one.
var DefaultEdgeColor = Color{0, 0, 0, 1}

// Light is a point light drawn as a gradient triangle fan over a 360-point
// polygon approximation of its radius.
//
// A light is drawn twice per frame by its layer: once with color under
// additive blending onto the frame, and once without color under
// destination-minus-source blending onto the shadow map. The light itself
// never changes the blend mode.
type Light struct {
	// Color is the light's tint for the color pass.
	Color Color
	// Intensity in [0, 1] is the alpha of the carve-pass center; higher
	// values reveal more of the scene beneath the shadow map.
	Intensity float64
	// CoupleIntensity scales the color pass's center alpha by Intensity so
	// both passes fall off together. A layer configured to couple intensity
	// does so for every light it draws.
	CoupleIntensity bool
	// Enabled determines whether layers draw this light.
	Enabled bool

	origin Vector2D
	radius float64
	points []Vector2D

	edgeColor    Color
	hasEdgeColor bool

	target BoundedObject
	offset Vector2D
}

// NewLight creates an enabled light and generates its polygon.
func NewLight(origin Vector2D, radius float64, c Color, intensity float64) (*Light, error) {
	l := &Light{
		Color:     c,
		Intensity: intensity,
		Enabled:   true,
		origin:    origin,
		radius:    radius,
		points:    make([]Vector2D, LightPointCount),
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	l.generatePoints()
	return l, nil
}

// Validate checks the light's invariants: finite origin, non-negative finite
// radius, and intensity in [0, 1].
func (l *Light) Validate() error {
	if !l.origin.IsFinite() || !isFinite(l.radius) {
		return fmt.Errorf("light at %v radius %v: %w", l.origin, l.radius, ErrNonFiniteGeometry)
	}
	if l.radius < 0 {
		return fmt.Errorf("light radius %v: %w", l.radius, ErrInvalidRadius)
	}
	if !isFinite(l.Intensity) || l.Intensity < 0 || l.Intensity > 1 {
		return fmt.Errorf("light intensity %v: %w", l.Intensity, ErrInvalidIntensity)
	}
	return nil
}

// Origin returns the light's center.
func (l *Light) Origin() Vector2D { return l.origin }

// Radius returns the light's radius.
func (l *Light) Radius() float64 { return l.radius }

// SetOrigin moves the light and regenerates its polygon. Setting the current
// origin again is a no-op.
func (l *Light) SetOrigin(p Vector2D) error {
	return l.SetOriginAndRadius(p, l.radius)
}

// SetRadius resizes the light and regenerates its polygon.
func (l *Light) SetRadius(r float64) error {
	return l.SetOriginAndRadius(l.origin, r)
}

// SetOriginAndRadius changes both at once with a single regeneration. On
// error the light is left unchanged.
func (l *Light) SetOriginAndRadius(p Vector2D, r float64) error {
	if !p.IsFinite() || !isFinite(r) {
		return fmt.Errorf("light at %v radius %v: %w", p, r, ErrNonFiniteGeometry)
	}
	if r < 0 {
		return fmt.Errorf("light radius %v: %w", r, ErrInvalidRadius)
	}
	if p == l.origin && r == l.radius {
		return nil
	}
	l.origin = p
	l.radius = r
	l.generatePoints()
	return nil
}

// Points returns a copy of the boundary polygon.
func (l *Light) Points() []Vector2D {
	out := make([]Vector2D, len(l.points))
	copy(out, l.points)
	return out
}

// generatePoints fills the polygon with one point per degree. A zero radius
// collapses every point onto the origin.
func (l *Light) generatePoints() {
	if len(l.points) != LightPointCount {
		l.points = make([]Vector2D, LightPointCount)
	}
	for i := range l.points {
		sin, cos := math.Sincos(float64(i) * math.Pi / 180)
		l.points[i] = Vector2D{
			X: l.origin.X + l.radius*cos,
			Y: l.origin.Y + l.radius*sin,
		}
	}
}

// Follow makes the light track obj's center plus offset. The position is
// synced by the owning layer on each update. Pass nil to stop following.
func (l *Light) Follow(obj BoundedObject, offset Vector2D) {
	l.target = obj
	l.offset = offset
}

// Target returns the object the light follows, if any.
func (l *Light) Target() BoundedObject { return l.target }

// syncTarget moves the light onto its target.
func (l *Light) syncTarget() error {
	if l.target == nil {
		return nil
	}
	return l.SetOrigin(l.target.Center().Add(l.offset))
}

// EdgeColor returns the light's own carve-pass rim color and whether one
// was set.
func (l *Light) EdgeColor() (Color, bool) { return l.edgeColor, l.hasEdgeColor }

// SetEdgeColor sets the carve-pass rim color. Any color, including fully
// transparent, is used as given.
func (l *Light) SetEdgeColor(c Color) {
	l.edgeColor = c
	l.hasEdgeColor = true
}

// ClearEdgeColor makes the light use its layer's edge color again.
func (l *Light) ClearEdgeColor() {
	l.edgeColor = Color{}
	l.hasEdgeColor = false
}

// Draw emits one gradient triangle per boundary point: origin, point i, and
// point i+1, wrapping the last back to the first.
//
// With color, the origin is the light color at full alpha and the rim is the
// light color at zero alpha. Without color, the origin is black at Intensity
// alpha and the rim is the light's edge color, or DefaultEdgeColor when none
// was set. Callers choose the blend mode.
func (l *Light) Draw(r Renderer, withColor bool) {
	l.draw(r, withColor, DefaultEdgeColor, l.CoupleIntensity)
}

// draw is Draw with the rim fallback and intensity coupling supplied by the
// caller; the light itself is not modified.
func (l *Light) draw(r Renderer, withColor bool, edge Color, couple bool) {
	var center, rim Color
	if withColor {
		alpha := 1.0
		if couple {
			alpha = clamp01(l.Intensity)
		}
		center = l.Color.WithAlpha(alpha)
		rim = l.Color.WithAlpha(0)
	} else {
		center = ColorBlack.WithAlpha(clamp01(l.Intensity))
		rim = edge
		if l.hasEdgeColor {
			rim = l.edgeColor
		}
	}

	n := len(l.points)
	for i := 0; i < n; i++ {
		r.DrawGradientTriangle([3]GradientVertex{
			{Position: l.origin, Color: center},
			{Position: l.points[i], Color: rim},
			{Position: l.points[(i+1)%n], Color: rim},
		})
	}
}

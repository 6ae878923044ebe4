package lumen

import (
	"math"

	"github.com/tanema/gween/ease"
	"gonum.org/v1/gonum/mat"
)

// MotionStrategy maps the time elapsed since a particle's birth to a
// displacement from the particle's starting position.
//
// Implementations must be pure: the same t always yields the same
// displacement, regardless of how many times or in which order PositionAt is
// called. PositionAt must be O(1) and defined for every finite t.
type MotionStrategy interface {
	PositionAt(t float64) Vector2D
}

// DisplacementAt evaluates m at t, rejecting non-finite times instead of
// letting NaN reach positions and draw calls.
func DisplacementAt(m MotionStrategy, t float64) (Vector2D, error) {
	if err := checkTime(t); err != nil {
		return Vector2D{}, err
	}
	return m.PositionAt(t), nil
}

// StaticMotion never moves.
type StaticMotion struct{}

// PositionAt always returns the zero vector.
func (StaticMotion) PositionAt(float64) Vector2D {
	return Vector2D{}
}

// LinearMotion travels at a constant velocity in pixels per second.
type LinearMotion struct {
	Velocity Vector2D
}

// PositionAt returns Velocity*t.
func (m LinearMotion) PositionAt(t float64) Vector2D {
	return m.Velocity.Mul(t)
}

// CircularMotion orbits the starting position.
type CircularMotion struct {
	// Radius of the orbit in pixels.
	Radius float64
	// Rate is the angular rate in full rotations per second. Negative rates
	// orbit counter-clockwise on screen.
	Rate float64
}

// PositionAt returns (R·cos(2π·rate·t), R·sin(2π·rate·t)).
func (m CircularMotion) PositionAt(t float64) Vector2D {
	angle := 2 * math.Pi * m.Rate * t
	return Vector2D{
		X: m.Radius * math.Cos(angle),
		Y: m.Radius * math.Sin(angle),
	}
}

// SinWaveMotion travels in a straight line while oscillating perpendicular to
// the direction of travel. The direction is fixed at construction.
type SinWaveMotion struct {
	amplitude float64
	frequency float64
	speed     float64
	angle     float64
	rotation  *mat.Dense
}

// NewSinWaveMotion builds a wave motion. The wave travels along +X rotated by
// angleDeg degrees; amplitude is the peak perpendicular offset in pixels,
// frequency is in radians per pixel travelled, and speed is in pixels per
// second.
func NewSinWaveMotion(amplitude, frequency, speed, angleDeg float64) *SinWaveMotion {
	theta := angleDeg * math.Pi / 180
	sin, cos := math.Sincos(theta)
	return &SinWaveMotion{
		amplitude: amplitude,
		frequency: frequency,
		speed:     speed,
		angle:     angleDeg,
		rotation: mat.NewDense(2, 2, []float64{
			cos, -sin,
			sin, cos,
		}),
	}
}

// Amplitude returns the peak perpendicular offset.
func (m *SinWaveMotion) Amplitude() float64 { return m.amplitude }

// Frequency returns the wave frequency in radians per pixel travelled.
func (m *SinWaveMotion) Frequency() float64 { return m.frequency }

// Speed returns the travel speed in pixels per second.
func (m *SinWaveMotion) Speed() float64 { return m.speed }

// Angle returns the direction of travel in degrees.
func (m *SinWaveMotion) Angle() float64 { return m.angle }

// PositionAt rotates (d, amplitude·sin(frequency·d)) by the travel angle,
// where d = speed·t.
func (m *SinWaveMotion) PositionAt(t float64) Vector2D {
	d := m.speed * t
	local := mat.NewVecDense(2, []float64{d, m.amplitude * math.Sin(m.frequency*d)})
	var out mat.VecDense
	out.MulVec(m.rotation, local)
	return Vector2D{X: out.AtVec(0), Y: out.AtVec(1)}
}

// TweenMotion eases from From to To over Duration seconds and then holds at
// To. Ease is any gween easing function; nil means linear.
type TweenMotion struct {
	From, To Vector2D
	Duration float64
	Ease     ease.TweenFunc
}

// PositionAt returns the eased displacement at t, clamped to [0, Duration].
func (m TweenMotion) PositionAt(t float64) Vector2D {
	if m.Duration <= 0 || t >= m.Duration {
		return m.To
	}
	if t <= 0 {
		return m.From
	}
	fn := m.Ease
	if fn == nil {
		fn = ease.Linear
	}
	f := float64(fn(float32(t), 0, 1, float32(m.Duration)))
	return m.From.Add(m.To.Sub(m.From).Mul(f))
}

package lumen

import "gonum.org/v1/gonum/spatial/r2"

// Vector2D is a 2D coordinate or displacement in screen space: positive X
// points right, positive Y points down. Operations return new values.
type Vector2D struct {
	X, Y float64
}

// Vec is shorthand for Vector2D{x, y}.
func Vec(x, y float64) Vector2D {
	return Vector2D{X: x, Y: y}
}

// Add returns v + o.
func (v Vector2D) Add(o Vector2D) Vector2D {
	return Vector2D{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vector2D) Sub(o Vector2D) Vector2D {
	return Vector2D{v.X - o.X, v.Y - o.Y}
}

// Mul scales v by s.
func (v Vector2D) Mul(s float64) Vector2D {
	return Vector2D{v.X * s, v.Y * s}
}

// Div divides v by s. Division by zero follows IEEE rules.
func (v Vector2D) Div(s float64) Vector2D {
	return Vector2D{v.X / s, v.Y / s}
}

// Dot returns the dot product of v and o.
func (v Vector2D) Dot(o Vector2D) float64 {
	return r2.Dot(v.R2(), o.R2())
}

// Magnitude returns the Euclidean length of v.
func (v Vector2D) Magnitude() float64 {
	return r2.Norm(v.R2())
}

// Normalize returns the unit vector in v's direction. The zero vector
// normalizes to itself.
func (v Vector2D) Normalize() Vector2D {
	if v.X == 0 && v.Y == 0 {
		return v
	}
	return FromR2(r2.Unit(v.R2()))
}

// IsFinite reports whether both components are finite.
func (v Vector2D) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y)
}

// R2 converts v to a gonum r2.Vec.
func (v Vector2D) R2() r2.Vec {
	return r2.Vec{X: v.X, Y: v.Y}
}

// FromR2 converts a gonum r2.Vec to a Vector2D.
func FromR2(p r2.Vec) Vector2D {
	return Vector2D{X: p.X, Y: p.Y}
}

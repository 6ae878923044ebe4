package lumen

// CollisionChecker tests axis-aligned rectangles for overlap. It holds no
// state; the zero value is ready to use.
type CollisionChecker struct{}

// HasCollided reports whether a and b overlap. See HasCollided.
func (CollisionChecker) HasCollided(a, b *RectangleObject) bool {
	return HasCollided(a, b)
}

// HasCollided reports whether the boxes of a and b overlap on both axes.
// Boxes that only share an edge do not collide, and a box with zero width or
// height never collides. Non-finite coordinates never collide.
func HasCollided(a, b *RectangleObject) bool {
	hit, err := CheckCollision(a, b)
	return err == nil && hit
}

// CheckCollision is HasCollided that reports non-finite input as
// ErrNonFiniteGeometry instead of returning false.
func CheckCollision(a, b *RectangleObject) (bool, error) {
	if a == nil || b == nil {
		return false, nil
	}
	ra, rb := a.Bounds(), b.Bounds()
	if !ra.IsFinite() || !rb.IsFinite() {
		return false, ErrNonFiniteGeometry
	}
	if ra.Width <= 0 || ra.Height <= 0 || rb.Width <= 0 || rb.Height <= 0 {
		return false, nil
	}
	return ra.Overlaps(rb), nil
}

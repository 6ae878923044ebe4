package lumen

import "errors"

var (
	// ErrNonFiniteTime is returned when a motion function or tick receives a
	// NaN or infinite time value.
	ErrNonFiniteTime = errors.New("lumen: non-finite time")
	// ErrNegativeDelta is returned when an update is asked to move time backwards.
	ErrNegativeDelta = errors.New("lumen: negative time delta")
	// ErrNonFiniteGeometry is returned when a position, size, or radius is NaN
	// or infinite.
	ErrNonFiniteGeometry = errors.New("lumen: non-finite geometry")
	// ErrInvalidIntensity is returned for light intensities outside [0, 1].
	ErrInvalidIntensity = errors.New("lumen: light intensity outside [0, 1]")
	// ErrInvalidRadius is returned for negative radii.
	ErrInvalidRadius = errors.New("lumen: negative radius")
	// ErrSurfaceCreate wraps backend failures to allocate a drawing surface.
	ErrSurfaceCreate = errors.New("lumen: surface creation failed")
	// ErrNoRenderer is returned when a Scene is built without a Renderer.
	ErrNoRenderer = errors.New("lumen: nil renderer")
	// ErrConfig wraps configuration validation failures.
	ErrConfig = errors.New("lumen: invalid config")
)

// checkTime validates a time value handed to motion or update code.
func checkTime(t float64) error {
	if !isFinite(t) {
		return ErrNonFiniteTime
	}
	return nil
}

// checkDelta validates a frame delta: finite and not negative.
func checkDelta(dt float64) error {
	if err := checkTime(dt); err != nil {
		return err
	}
	if dt < 0 {
		return ErrNegativeDelta
	}
	return nil
}

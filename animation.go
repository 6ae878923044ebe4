package lumen

import (
	"fmt"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 values on a Light simultaneously. Create one
// via the convenience constructors (TweenLightIntensity, TweenLightRadius,
// TweenLightOrigin, TweenLightColor) and either call Update(dt) each frame or
// hand it to SceneLayer.AddTween.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	apply  func(vals [4]float64) error
	Done   bool
	// Err is set when a step produced an invalid value. The group stops
	// and the light keeps its last valid state.
	Err error
}

// Update advances all tweens by dt seconds and writes the values to the
// light. Done is set once every tween has finished or a step failed.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	allDone := true
	var vals [4]float64
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		vals[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
	if err := g.apply(vals); err != nil {
		g.Err = err
		g.Done = true
	}
}

// TweenLightIntensity animates l.Intensity to the given value, clamped to
// [0, 1], over duration seconds.
func TweenLightIntensity(l *Light, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1}
	g.tweens[0] = newTween(float32(l.Intensity), float32(to), duration, fn)
	g.apply = func(v [4]float64) error {
		if !isFinite(v[0]) {
			return fmt.Errorf("tween intensity %v: %w", v[0], ErrInvalidIntensity)
		}
		l.Intensity = clamp01(v[0])
		return nil
	}
	return g
}

// TweenLightRadius animates the light's radius. The polygon is regenerated on
// every step the radius actually changes.
func TweenLightRadius(l *Light, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1}
	g.tweens[0] = newTween(float32(l.radius), float32(to), duration, fn)
	g.apply = func(v [4]float64) error {
		if err := l.SetRadius(max(v[0], 0)); err != nil {
			return fmt.Errorf("tween radius: %w", err)
		}
		return nil
	}
	return g
}

// TweenLightOrigin moves the light to (toX, toY).
func TweenLightOrigin(l *Light, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2}
	g.tweens[0] = newTween(float32(l.origin.X), float32(toX), duration, fn)
	g.tweens[1] = newTween(float32(l.origin.Y), float32(toY), duration, fn)
	g.apply = func(v [4]float64) error {
		if err := l.SetOrigin(Vec(v[0], v[1])); err != nil {
			return fmt.Errorf("tween origin: %w", err)
		}
		return nil
	}
	return g
}

// TweenLightColor animates all four components of l.Color.
func TweenLightColor(l *Light, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 4}
	g.tweens[0] = newTween(float32(l.Color.R), float32(to.R), duration, fn)
	g.tweens[1] = newTween(float32(l.Color.G), float32(to.G), duration, fn)
	g.tweens[2] = newTween(float32(l.Color.B), float32(to.B), duration, fn)
	g.tweens[3] = newTween(float32(l.Color.A), float32(to.A), duration, fn)
	g.apply = func(v [4]float64) error {
		for _, c := range v {
			if !isFinite(c) {
				return fmt.Errorf("tween color: %w", ErrNonFiniteGeometry)
			}
		}
		l.Color = Color{v[0], v[1], v[2], v[3]}
		return nil
	}
	return g
}

// newTween wraps gween.New, treating a nil easing function as linear.
func newTween(from, to, duration float32, fn ease.TweenFunc) *gween.Tween {
	if fn == nil {
		fn = ease.Linear
	}
	return gween.New(from, to, duration, fn)
}

package lumen

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayerDrawOrder(t *testing.T) {
	l := NewSceneLayer("world", DefaultConfig())
	bmp := fakeBitmap{w: 8, h: 8}
	l.AddSprite(NewSprite(bmp, Vec(0, 0)))
	l.AddAnimatedSprite(NewAnimatedSprite(bmp, Vec(1, 1), []Rect{{Width: 4, Height: 4}}, 0.1))
	l.AddParticle(NewParticle(NewRectangle(2, 2, 1, 1), nil, 0))
	light, err := NewLight(Vec(5, 5), 3, ColorWhite, 1)
	require.NoError(t, err)
	l.AddLight(light)
	l.AddLightBlocker(NewCircle(9, 9, 2))

	rec := newRecorder()
	shadow := &fakeSurface{name: "shadow", w: 800, h: 600}
	l.Draw(rec, shadow)

	// Collapse consecutive duplicates to get the step sequence.
	var steps []string
	for _, c := range rec.calls {
		step := c.op
		if c.target == shadow {
			step = "shadow:" + step
		}
		if len(steps) == 0 || steps[len(steps)-1] != step {
			steps = append(steps, step)
		}
	}
	want := []string{
		"DrawBitmap",           // sprite
		"FillRect",             // particle
		"SetBlendMode",         // additive
		"DrawGradientTriangle", // color pass
		"SetBlendMode",         // restore
		"SetTarget",            // to shadow
		"shadow:FillCircle",    // blocker silhouette
		"shadow:DrawBitmap",    // sprite silhouettes
		"shadow:FillRect",      // particle silhouette
		"shadow:SetBlendMode",
		"shadow:DrawGradientTriangle", // carve pass
		"shadow:SetBlendMode",
		"shadow:SetTarget", // back to main
	}
	assert.Equal(t, want, steps)
	assert.Same(t, rec.main, rec.Target())
}

func TestLayerSilhouettesUseConfiguredAlpha(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Shadow.SilhouetteAlpha = 51
	l := NewSceneLayer("world", cfg)
	l.AddSprite(NewSprite(fakeBitmap{w: 4, h: 4}, Vec(0, 0)))
	l.AddLightBlocker(NewRectangle(0, 0, 2, 2))

	rec := newRecorder()
	l.Draw(rec, &fakeSurface{name: "shadow"})

	bitmaps := rec.filter("DrawBitmap")
	require.Len(t, bitmaps, 2)
	assert.False(t, bitmaps[0].silhou)
	assert.True(t, bitmaps[1].silhou)
	assert.InDelta(t, 0.2, bitmaps[1].alpha, 1e-9)

	rects := rec.filter("FillRect")
	require.Len(t, rects, 1)
	assert.InDelta(t, 0.2, rects[0].color.A, 1e-9)
}

func TestLayerSkipsDisabledLights(t *testing.T) {
	l := NewSceneLayer("world", DefaultConfig())
	on, _ := NewLight(Vec(0, 0), 1, ColorWhite, 1)
	off, _ := NewLight(Vec(0, 0), 1, ColorWhite, 1)
	off.Enabled = false
	l.AddLight(on)
	l.AddLight(off)

	rec := newRecorder()
	l.Draw(rec, &fakeSurface{name: "shadow"})
	assert.Len(t, rec.filter("DrawGradientTriangle"), 2*LightPointCount)
	assert.Equal(t, 2*LightPointCount, l.stats.triangles)
}

func TestLayerLightDefaultsResolvedAtDraw(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Lighting.EdgeColor = Color{A: 0.5}
	cfg.Lighting.CoupleIntensity = true
	l := NewSceneLayer("world", cfg)

	plain, _ := NewLight(Vec(0, 0), 1, ColorWhite, 0.3)
	custom, _ := NewLight(Vec(0, 0), 1, ColorWhite, 1)
	custom.SetEdgeColor(Color{R: 1, A: 1})
	l.AddLight(plain)
	l.AddLight(custom)

	// The borrowed lights are left untouched.
	_, ok := plain.EdgeColor()
	assert.False(t, ok)
	assert.False(t, plain.CoupleIntensity)

	rec := newRecorder()
	l.drawLights(rec, true)
	l.drawLights(rec, false)
	tris := rec.filter("DrawGradientTriangle")
	require.Len(t, tris, 4*LightPointCount)
	assert.InDelta(t, 0.3, tris[0].tri[0].Color.A, 1e-12, "layer couples intensity")
	assert.Equal(t, Color{A: 0.5}, tris[2*LightPointCount].tri[1].Color, "layer edge color")
	assert.Equal(t, Color{R: 1, A: 1}, tris[3*LightPointCount].tri[1].Color, "light edge color wins")

	// Drawn on its own, the light falls back to the package default.
	rec.reset()
	plain.Draw(rec, false)
	assert.Equal(t, DefaultEdgeColor, rec.filter("DrawGradientTriangle")[0].tri[1].Color)

	assert.True(t, l.RemoveLight(plain))
	assert.Equal(t, []*Light{custom}, l.Lights())
	l.ClearLights()
	assert.Empty(t, l.Lights())
}

func TestLayerParticleHandles(t *testing.T) {
	l := NewSceneLayer("world", DefaultConfig())
	a := NewParticle(NewRectangle(0, 0, 1, 1), nil, 0)
	b := NewParticle(NewRectangle(1, 0, 1, 1), nil, 0)
	c := NewParticle(NewRectangle(2, 0, 1, 1), nil, 0)

	ha := l.AddParticle(a)
	hb := l.AddParticle(b)
	hc := l.AddParticle(c)
	assert.NotEqual(t, ha, hb)
	assert.NotEqual(t, hb, hc)

	got, ok := l.Particle(hb)
	require.True(t, ok)
	assert.Same(t, b, got)

	require.True(t, l.RemoveParticle(hb))
	assert.False(t, l.RemoveParticle(hb), "handles are not reusable")
	_, ok = l.Particle(hb)
	assert.False(t, ok)

	// Order is kept and the remaining handles still resolve.
	assert.Equal(t, []*Particle{a, c}, l.Particles())
	got, ok = l.Particle(hc)
	require.True(t, ok)
	assert.Same(t, c, got)

	hd := l.AddParticle(NewParticle(NewRectangle(3, 0, 1, 1), nil, 0))
	assert.NotEqual(t, hb, hd, "removed handles are never reissued")
}

func TestLayerExpiryAdvisory(t *testing.T) {
	l := NewSceneLayer("world", DefaultConfig())
	h := l.AddParticle(NewParticle(NewRectangle(0, 0, 1, 1), nil, 0.5))

	var reported []ParticleHandle
	l.OnParticleExpired = func(h ParticleHandle, _ *Particle) { reported = append(reported, h) }

	for range 4 {
		require.NoError(t, l.Update(0.25))
	}

	assert.Equal(t, []ParticleHandle{h}, reported, "reported exactly once")
	assert.Equal(t, 1, l.ParticleCount(), "advisory policy keeps expired particles")
	p, ok := l.Particle(h)
	require.True(t, ok)
	assert.True(t, p.Expired())
}

func TestLayerExpiryRemove(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Particles.Expiry = ExpiryRemove
	l := NewSceneLayer("world", cfg)

	short := l.AddParticle(NewParticle(NewRectangle(0, 0, 1, 1), nil, 0.5))
	long := l.AddParticle(NewParticle(NewRectangle(1, 0, 1, 1), nil, 5))
	immortal := l.AddParticle(NewParticle(NewRectangle(2, 0, 1, 1), nil, 0))

	var reported int
	l.OnParticleExpired = func(ParticleHandle, *Particle) { reported++ }

	require.NoError(t, l.Update(0.5))
	assert.Equal(t, 1, reported)
	assert.Equal(t, 1, l.stats.removed)
	assert.Equal(t, 2, l.ParticleCount())

	_, ok := l.Particle(short)
	assert.False(t, ok)
	_, ok = l.Particle(long)
	assert.True(t, ok)
	_, ok = l.Particle(immortal)
	assert.True(t, ok)
}

func TestLayerSetExpiryPolicy(t *testing.T) {
	l := NewSceneLayer("world", DefaultConfig())
	l.AddParticle(NewParticle(NewRectangle(0, 0, 1, 1), nil, 0.1))
	require.NoError(t, l.Update(0.2))
	assert.Equal(t, 1, l.ParticleCount())

	l.SetExpiryPolicy(ExpiryRemove)
	require.NoError(t, l.Update(0))
	assert.Equal(t, 0, l.ParticleCount())
}

func TestLayerUpdateRejectsBadDelta(t *testing.T) {
	l := NewSceneLayer("world", DefaultConfig())
	assert.ErrorIs(t, l.Update(-1), ErrNegativeDelta)
}

func TestLayerRunsTweensUntilDone(t *testing.T) {
	l := NewSceneLayer("world", DefaultConfig())
	light, _ := NewLight(Vec(0, 0), 1, ColorWhite, 1)
	l.AddLight(light)
	l.AddTween(TweenLightIntensity(light, 0, 0.5, nil))

	require.NoError(t, l.Update(0.25))
	assert.Len(t, l.tweens, 1)
	require.NoError(t, l.Update(0.25))
	assert.Empty(t, l.tweens)
	assert.InDelta(t, 0, light.Intensity, 1e-6)
}

func TestLayerAdvancesAnimatedSprites(t *testing.T) {
	l := NewSceneLayer("world", DefaultConfig())
	frames := []Rect{{Width: 2, Height: 2}, {X: 2, Width: 2, Height: 2}}
	a := NewAnimatedSprite(fakeBitmap{w: 4, h: 2}, Vec(0, 0), frames, 0.1)
	l.AddAnimatedSprite(a)

	require.NoError(t, l.Update(0.15))
	assert.Equal(t, 1, a.Frame())
	assert.True(t, l.RemoveAnimatedSprite(a))
	assert.Empty(t, l.AnimatedSprites())
}

func TestLayerUpdateFailureLeavesLayerUntouched(t *testing.T) {
	l := NewSceneLayer("world", DefaultConfig())
	light, err := NewLight(Vec(0, 0), 4, ColorWhite, 1)
	require.NoError(t, err)
	l.AddTween(TweenLightIntensity(light, 0, 1, nil))
	good := NewParticle(NewRectangle(0, 0, 1, 1), LinearMotion{Velocity: Vec(10, 0)}, 0)
	l.AddParticle(good)
	l.AddParticle(NewParticle(NewRectangle(5, 5, 1, 1), explodingMotion{}, 0))

	assert.ErrorIs(t, l.Update(0.5), ErrNonFiniteGeometry)
	assert.Zero(t, good.LivingTime())
	assert.Equal(t, Vec(0, 0), good.Object().Position())
	assert.Equal(t, 1.0, light.Intensity, "tweens must not step on a failed update")
}

func TestLayerLogsStoppedTween(t *testing.T) {
	var buf bytes.Buffer
	l := NewSceneLayer("world", DefaultConfig())
	l.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	light, err := NewLight(Vec(3, 4), 4, ColorWhite, 1)
	require.NoError(t, err)
	g := TweenLightOrigin(light, math.NaN(), 0, 1, nil)
	l.AddTween(g)

	require.NoError(t, l.Update(0.5))
	assert.ErrorIs(t, g.Err, ErrNonFiniteGeometry)
	assert.Empty(t, l.tweens)
	assert.Equal(t, Vec(3, 4), light.Origin())
	assert.Contains(t, buf.String(), "tween stopped")
	assert.Contains(t, buf.String(), "layer=world")
}

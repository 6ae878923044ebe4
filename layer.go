package lumen

import (
	"fmt"
	"log/slog"

	"github.com/kamstrup/intmap"
)

// ParticleHandle identifies a particle inside the layer that owns it.
// Handles are never reused within a layer.
type ParticleHandle uint32

// SceneLayer is one depth layer of a scene: ordered sprites, animated
// sprites, particles, lights, and light-blocking shapes. Insertion order is
// draw order within each sequence.
//
// Sprites, lights, and light blockers are borrowed: the layer displays them
// but the caller keeps and mutates them. Particles are owned by the layer
// and addressed through handles.
type SceneLayer struct {
	name string

	sprites  []*Sprite
	animated []*AnimatedSprite
	lights   []*Light
	blockers []BoundedObject

	particles  []*Particle
	handles    []ParticleHandle // parallel to particles
	index      *intmap.Map[ParticleHandle, int]
	nextHandle ParticleHandle

	emitters []*ParticleEmitter
	tweens   []*TweenGroup

	silhouetteAlpha uint8
	edgeColor       Color
	coupleIntensity bool
	expiry          ExpiryPolicy
	logger          *slog.Logger

	// OnParticleExpired is called once for each particle whose ttl runs out,
	// before the expiry policy is applied.
	OnParticleExpired func(h ParticleHandle, p *Particle)

	stats layerStats
}

// layerStats counts the work done by the layer's last update and draw.
type layerStats struct {
	expired     int
	removed     int
	triangles   int
	silhouettes int
}

// NewSceneLayer creates an empty layer configured from cfg. Scenes create
// their layers with Scene.AddLayer; standalone layers are useful for drawing
// into a caller-managed frame.
func NewSceneLayer(name string, cfg Config) *SceneLayer {
	return &SceneLayer{
		name:            name,
		index:           intmap.New[ParticleHandle, int](64),
		silhouetteAlpha: cfg.Shadow.SilhouetteAlpha,
		edgeColor:       cfg.Lighting.EdgeColor,
		coupleIntensity: cfg.Lighting.CoupleIntensity,
		expiry:          cfg.Particles.Expiry,
		logger:          slog.Default(),
	}
}

// Name returns the layer's name.
func (l *SceneLayer) Name() string { return l.name }

// ExpiryPolicy returns how the layer handles expired particles.
func (l *SceneLayer) ExpiryPolicy() ExpiryPolicy { return l.expiry }

// SetExpiryPolicy changes how the layer handles expired particles.
func (l *SceneLayer) SetExpiryPolicy(p ExpiryPolicy) { l.expiry = p }

// SetLogger replaces the layer's logger. nil restores slog.Default().
func (l *SceneLayer) SetLogger(lg *slog.Logger) {
	if lg == nil {
		lg = slog.Default()
	}
	l.logger = lg
}

// --- Sprites ---

// AddSprite appends a sprite to the sprite draw sequence.
func (l *SceneLayer) AddSprite(s *Sprite) {
	l.sprites = append(l.sprites, s)
}

// RemoveSprite removes a sprite, preserving the order of the rest.
func (l *SceneLayer) RemoveSprite(s *Sprite) bool {
	return removeRef(&l.sprites, s)
}

// Sprites returns the sprite list. The returned slice MUST NOT be mutated.
func (l *SceneLayer) Sprites() []*Sprite { return l.sprites }

// AddAnimatedSprite appends an animated sprite.
func (l *SceneLayer) AddAnimatedSprite(a *AnimatedSprite) {
	l.animated = append(l.animated, a)
}

// RemoveAnimatedSprite removes an animated sprite.
func (l *SceneLayer) RemoveAnimatedSprite(a *AnimatedSprite) bool {
	return removeRef(&l.animated, a)
}

// AnimatedSprites returns the animated sprite list. The returned slice MUST
// NOT be mutated.
func (l *SceneLayer) AnimatedSprites() []*AnimatedSprite { return l.animated }

// --- Lights ---

// AddLight appends a light. The light is not modified: at draw time a light
// without its own edge color uses the layer's, and the layer's
// couple-intensity setting applies on top of the light's.
func (l *SceneLayer) AddLight(lt *Light) {
	l.lights = append(l.lights, lt)
}

// RemoveLight removes a light.
func (l *SceneLayer) RemoveLight(lt *Light) bool {
	return removeRef(&l.lights, lt)
}

// ClearLights removes all lights from the layer.
func (l *SceneLayer) ClearLights() {
	l.lights = l.lights[:0]
}

// Lights returns the light list. The returned slice MUST NOT be mutated.
func (l *SceneLayer) Lights() []*Light { return l.lights }

// --- Light blockers ---

// AddLightBlocker registers a shape as an occluder in the shadow map. The
// shape is not drawn onto the frame by the layer.
func (l *SceneLayer) AddLightBlocker(obj BoundedObject) {
	l.blockers = append(l.blockers, obj)
}

// RemoveLightBlocker removes an occluder.
func (l *SceneLayer) RemoveLightBlocker(obj BoundedObject) bool {
	return removeRef(&l.blockers, obj)
}

// LightBlockers returns the occluder list. The returned slice MUST NOT be
// mutated.
func (l *SceneLayer) LightBlockers() []BoundedObject { return l.blockers }

// --- Particles ---

// AddParticle hands ownership of p to the layer and returns its handle.
func (l *SceneLayer) AddParticle(p *Particle) ParticleHandle {
	l.nextHandle++
	h := l.nextHandle
	l.index.Put(h, len(l.particles))
	l.particles = append(l.particles, p)
	l.handles = append(l.handles, h)
	return h
}

// Particle returns the particle behind h.
func (l *SceneLayer) Particle(h ParticleHandle) (*Particle, bool) {
	i, ok := l.index.Get(h)
	if !ok {
		return nil, false
	}
	return l.particles[i], true
}

// RemoveParticle drops the particle behind h. The draw order of the
// remaining particles is unchanged.
func (l *SceneLayer) RemoveParticle(h ParticleHandle) bool {
	i, ok := l.index.Get(h)
	if !ok {
		return false
	}
	l.index.Del(h)
	copy(l.particles[i:], l.particles[i+1:])
	l.particles[len(l.particles)-1] = nil
	l.particles = l.particles[:len(l.particles)-1]
	copy(l.handles[i:], l.handles[i+1:])
	l.handles = l.handles[:len(l.handles)-1]
	for j := i; j < len(l.handles); j++ {
		l.index.Put(l.handles[j], j)
	}
	return true
}

// Particles returns the particle list in draw order. The returned slice MUST
// NOT be mutated.
func (l *SceneLayer) Particles() []*Particle { return l.particles }

// ParticleCount returns the number of particles in the layer.
func (l *SceneLayer) ParticleCount() int { return len(l.particles) }

// compactExpired removes every expired particle in one pass and rebuilds the
// handle index.
func (l *SceneLayer) compactExpired() int {
	n := 0
	for i, p := range l.particles {
		if p.Expired() {
			continue
		}
		l.particles[n] = p
		l.handles[n] = l.handles[i]
		n++
	}
	removed := len(l.particles) - n
	if removed == 0 {
		return 0
	}
	for i := n; i < len(l.particles); i++ {
		l.particles[i] = nil
	}
	l.particles = l.particles[:n]
	l.handles = l.handles[:n]
	l.index.Clear()
	for i, h := range l.handles {
		l.index.Put(h, i)
	}
	return removed
}

// --- Emitters and tweens ---

// AddEmitter attaches an emitter that spawns particles into this layer.
func (l *SceneLayer) AddEmitter(e *ParticleEmitter) {
	l.emitters = append(l.emitters, e)
}

// RemoveEmitter detaches an emitter. Particles it already spawned stay.
func (l *SceneLayer) RemoveEmitter(e *ParticleEmitter) bool {
	return removeRef(&l.emitters, e)
}

// AddTween runs g on every layer update until it is done.
func (l *SceneLayer) AddTween(g *TweenGroup) {
	l.tweens = append(l.tweens, g)
}

// --- Update ---

// Update advances tweens, animated sprites, emitters, and particles by dt
// seconds, applies the expiry policy, and moves lights onto their targets.
// Every particle's next position is computed first: if any is invalid the
// error is returned and nothing in the layer has changed.
func (l *SceneLayer) Update(dt float64) error {
	if err := l.prepare(dt); err != nil {
		return err
	}
	return l.advance(dt)
}

// prepare validates dt, computes every particle's next displacement, and
// checks that followed targets are finite, without moving anything.
func (l *SceneLayer) prepare(dt float64) error {
	if err := checkDelta(dt); err != nil {
		return fmt.Errorf("layer %q: %w", l.name, err)
	}
	for i, p := range l.particles {
		if err := p.prepare(dt); err != nil {
			return fmt.Errorf("layer %q particle %d: %w", l.name, l.handles[i], err)
		}
	}
	for _, lt := range l.lights {
		if lt.target != nil && !lt.target.Center().Add(lt.offset).IsFinite() {
			return fmt.Errorf("layer %q light target: %w", l.name, ErrNonFiniteGeometry)
		}
	}
	return nil
}

// advance runs the update after a successful prepare.
func (l *SceneLayer) advance(dt float64) error {
	l.stats.expired, l.stats.removed = 0, 0

	live := l.tweens[:0]
	for _, g := range l.tweens {
		g.Update(float32(dt))
		if g.Err != nil {
			l.logger.Warn("tween stopped", "layer", l.name, "error", g.Err)
		}
		if !g.Done {
			live = append(live, g)
		}
	}
	for i := len(live); i < len(l.tweens); i++ {
		l.tweens[i] = nil
	}
	l.tweens = live

	for _, a := range l.animated {
		a.Update(dt)
	}

	for _, e := range l.emitters {
		e.emit(l, dt)
	}

	for i, p := range l.particles {
		if p.prepared {
			p.commit()
		} else if err := p.Update(dt); err != nil {
			return fmt.Errorf("layer %q particle %d: %w", l.name, l.handles[i], err)
		}
		if p.Expired() && !p.notified {
			p.notified = true
			l.stats.expired++
			if l.OnParticleExpired != nil {
				l.OnParticleExpired(l.handles[i], p)
			}
		}
	}

	for _, e := range l.emitters {
		e.reap(l)
	}
	if l.expiry == ExpiryRemove {
		l.stats.removed = l.compactExpired()
	}

	for _, lt := range l.lights {
		if err := lt.syncTarget(); err != nil {
			return fmt.Errorf("layer %q light: %w", l.name, err)
		}
	}
	return nil
}

// --- Draw ---

// Draw composes the layer in three steps:
//
//  1. sprites, animated sprites, then particles onto the current target;
//  2. every enabled light's color pass under additive blending;
//  3. when shadow is non-nil, silhouettes of light blockers and of every
//     drawn entity into shadow, followed by every light's carve pass under
//     destination-minus-source blending, then drawing returns to the
//     original target.
//
// The shadow surface accumulates across layers; the caller clears it once
// per frame and composites it only after every layer has drawn.
func (l *SceneLayer) Draw(r Renderer, shadow Surface) {
	l.stats.triangles, l.stats.silhouettes = 0, 0

	for _, s := range l.sprites {
		s.Draw(r)
	}
	for _, a := range l.animated {
		a.Draw(r)
	}
	for _, p := range l.particles {
		p.Draw(r)
	}

	withBlend(r, BlendAdd, func() {
		l.drawLights(r, true)
	})

	if shadow == nil {
		return
	}

	frame := r.Target()
	r.SetTarget(shadow)

	alpha := l.silhouetteAlpha
	for _, b := range l.blockers {
		b.DrawForLightBlocking(r, alpha)
	}
	for _, s := range l.sprites {
		s.DrawTinted(r, alpha)
	}
	for _, a := range l.animated {
		a.DrawTinted(r, alpha)
	}
	for _, p := range l.particles {
		p.DrawForLightBlocking(r, alpha)
	}
	l.stats.silhouettes = len(l.blockers) + len(l.sprites) + len(l.animated) + len(l.particles)

	withBlend(r, BlendSubtract, func() {
		l.drawLights(r, false)
	})

	r.SetTarget(frame)
}

func (l *SceneLayer) drawLights(r Renderer, withColor bool) {
	for _, lt := range l.lights {
		if !lt.Enabled {
			continue
		}
		lt.draw(r, withColor, l.edgeColor, l.coupleIntensity || lt.CoupleIntensity)
		l.stats.triangles += LightPointCount
	}
}

// removeRef deletes the first occurrence of v from *s, preserving order.
func removeRef[T comparable](s *[]T, v T) bool {
	for i, existing := range *s {
		if existing == v {
			var zero T
			copy((*s)[i:], (*s)[i+1:])
			(*s)[len(*s)-1] = zero
			*s = (*s)[:len(*s)-1]
			return true
		}
	}
	return false
}

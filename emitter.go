package lumen

import "math/rand/v2"

// EmitterConfig controls how an emitter spawns particles.
type EmitterConfig struct {
	// MaxParticles caps the emitter's live particles. New particles are
	// silently dropped when full. Zero means 128.
	MaxParticles int
	// EmitRate is the number of particles spawned per second.
	EmitRate float64
	// Lifetime is the range of particle lifetimes in seconds.
	Lifetime Range
	// Spawn builds the shape and motion for a new particle born at origin.
	// The shape should be positioned at origin; it becomes the particle's
	// starting position.
	Spawn func(origin Vector2D) (BoundedObject, MotionStrategy)
}

// ParticleEmitter spawns particles into the layer it is attached to and
// removes them when they expire, independent of the layer's expiry policy.
type ParticleEmitter struct {
	// Origin is where new particles are born.
	Origin Vector2D

	config    EmitterConfig
	live      []ParticleHandle
	emitAccum float64
	active    bool
}

// NewParticleEmitter creates a stopped emitter.
func NewParticleEmitter(origin Vector2D, cfg EmitterConfig) *ParticleEmitter {
	if cfg.MaxParticles <= 0 {
		cfg.MaxParticles = 128
	}
	return &ParticleEmitter{Origin: origin, config: cfg}
}

// Start begins emitting particles.
func (e *ParticleEmitter) Start() {
	e.active = true
}

// Stop stops emitting new particles. Existing particles live out their ttl.
func (e *ParticleEmitter) Stop() {
	e.active = false
}

// IsActive reports whether the emitter is currently emitting new particles.
func (e *ParticleEmitter) IsActive() bool {
	return e.active
}

// AliveCount returns the number of live particles this emitter spawned.
func (e *ParticleEmitter) AliveCount() int {
	return len(e.live)
}

// Config returns a pointer to the emitter's config for live tuning.
func (e *ParticleEmitter) Config() *EmitterConfig {
	return &e.config
}

// reap removes expired or externally removed particles from the layer and
// from the emitter's live list. Called after the layer updated its particles.
func (e *ParticleEmitter) reap(l *SceneLayer) {
	kept := e.live[:0]
	for _, h := range e.live {
		p, ok := l.Particle(h)
		if !ok {
			continue
		}
		if p.Expired() {
			l.RemoveParticle(h)
			continue
		}
		kept = append(kept, h)
	}
	e.live = kept
}

// emit spawns this frame's particles into l.
func (e *ParticleEmitter) emit(l *SceneLayer, dt float64) {
	if !e.active || e.config.EmitRate <= 0 || e.config.Spawn == nil {
		return
	}
	e.emitAccum += e.config.EmitRate * dt
	for e.emitAccum >= 1.0 {
		e.emitAccum -= 1.0
		if len(e.live) >= e.config.MaxParticles {
			continue
		}
		obj, motion := e.config.Spawn(e.Origin)
		if obj == nil {
			continue
		}
		life := e.config.Lifetime.Random()
		if life <= 0 {
			life = 1.0
		}
		p := NewParticle(obj, motion, life)
		if err := p.prepare(dt); err != nil {
			l.logger.Warn("emitter dropped particle", "layer", l.name, "error", err)
			continue
		}
		e.live = append(e.live, l.AddParticle(p))
	}
}

// Random returns a random float64 in [Min, Max].
func (r Range) Random() float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rand.Float64()*(r.Max-r.Min)
}

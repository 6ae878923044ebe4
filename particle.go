package lumen

// Particle binds a shape to a motion strategy. Each update places the shape
// at its starting position plus the motion's displacement for the time the
// particle has been alive. The particle owns both its shape and its motion.
type Particle struct {
	object BoundedObject
	motion MotionStrategy

	ttl      float64 // initial time to live; <= 0 means immortal
	living   float64 // seconds since birth
	expired  bool
	notified bool // expiry already reported to the owning layer

	// step computed by prepare, applied by commit
	nextLiving float64
	nextDisp   Vector2D
	prepared   bool
}

// NewParticle creates a particle. ttl is the lifetime in seconds; zero or
// negative means the particle never expires. A nil motion is treated as
// StaticMotion.
func NewParticle(obj BoundedObject, motion MotionStrategy, ttl float64) *Particle {
	if motion == nil {
		motion = StaticMotion{}
	}
	return &Particle{object: obj, motion: motion, ttl: ttl}
}

// Object returns the particle's shape.
func (p *Particle) Object() BoundedObject { return p.object }

// Motion returns the particle's motion strategy.
func (p *Particle) Motion() MotionStrategy { return p.motion }

// LivingTime returns the seconds elapsed since the particle was created.
func (p *Particle) LivingTime() float64 { return p.living }

// TimeToLive returns the remaining lifetime in seconds, never below zero.
// Immortal particles report their configured ttl.
func (p *Particle) TimeToLive() float64 {
	if p.ttl <= 0 {
		return p.ttl
	}
	if rem := p.ttl - p.living; rem > 0 {
		return rem
	}
	return 0
}

// Expired reports whether the particle has outlived its ttl.
func (p *Particle) Expired() bool { return p.expired }

// Update advances the particle by dt seconds. Position is recomputed from
// the absolute living time, so repeated updates do not accumulate error.
// On error the particle is unchanged.
func (p *Particle) Update(dt float64) error {
	if err := p.prepare(dt); err != nil {
		return err
	}
	p.commit()
	return nil
}

// prepare computes the displacement for the next dt seconds without moving
// the particle.
func (p *Particle) prepare(dt float64) error {
	p.prepared = false
	if err := checkDelta(dt); err != nil {
		return err
	}
	living := p.living + dt
	disp, err := DisplacementAt(p.motion, living)
	if err != nil {
		return err
	}
	if !disp.IsFinite() {
		return ErrNonFiniteGeometry
	}
	p.nextLiving, p.nextDisp, p.prepared = living, disp, true
	return nil
}

// commit applies the step computed by prepare.
func (p *Particle) commit() {
	p.prepared = false
	p.living = p.nextLiving
	p.object.SetPosition(p.object.StartingPosition().Add(p.nextDisp))
	if p.ttl > 0 && p.living >= p.ttl {
		p.expired = true
	}
}

// Draw renders the particle's shape.
func (p *Particle) Draw(r Renderer) {
	p.object.Draw(r)
}

// DrawForLightBlocking renders the particle's silhouette at alpha.
func (p *Particle) DrawForLightBlocking(r Renderer, alpha uint8) {
	p.object.DrawForLightBlocking(r, alpha)
}

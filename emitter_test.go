package lumen

import "testing"

func testEmitterConfig(max int) EmitterConfig {
	return EmitterConfig{
		MaxParticles: max,
		EmitRate:     10,
		Lifetime:     Range{Min: 1, Max: 1},
		Spawn: func(origin Vector2D) (BoundedObject, MotionStrategy) {
			return NewCircle(origin.X, origin.Y, 2), LinearMotion{Velocity: Vec(0, -20)}
		},
	}
}

func TestEmitterDefaultMaxParticles(t *testing.T) {
	e := NewParticleEmitter(Vec(0, 0), EmitterConfig{})
	if e.Config().MaxParticles != 128 {
		t.Errorf("MaxParticles = %d, want 128", e.Config().MaxParticles)
	}
}

func TestEmitterStoppedByDefault(t *testing.T) {
	l := NewSceneLayer("fx", DefaultConfig())
	e := NewParticleEmitter(Vec(0, 0), testEmitterConfig(10))
	l.AddEmitter(e)

	if err := l.Update(1); err != nil {
		t.Fatal(err)
	}
	if e.IsActive() || l.ParticleCount() != 0 {
		t.Errorf("inactive emitter spawned %d particles", l.ParticleCount())
	}
}

func TestEmitterSpawnsAtRate(t *testing.T) {
	l := NewSceneLayer("fx", DefaultConfig())
	e := NewParticleEmitter(Vec(50, 50), testEmitterConfig(100))
	e.Start()
	l.AddEmitter(e)

	// 10/s for 0.5s.
	if err := l.Update(0.5); err != nil {
		t.Fatal(err)
	}
	if l.ParticleCount() != 5 {
		t.Fatalf("particles = %d, want 5", l.ParticleCount())
	}
	if e.AliveCount() != 5 {
		t.Errorf("AliveCount = %d, want 5", e.AliveCount())
	}
	// Spawned particles were advanced in the same update.
	p := l.Particles()[0]
	assertVec(t, "start", p.Object().StartingPosition(), Vec(50, 50))
	assertVec(t, "position", p.Object().Position(), Vec(50, 40))
}

func TestEmitterRespectsMaxParticles(t *testing.T) {
	l := NewSceneLayer("fx", DefaultConfig())
	e := NewParticleEmitter(Vec(0, 0), testEmitterConfig(3))
	e.Start()
	l.AddEmitter(e)

	if err := l.Update(0.9); err != nil {
		t.Fatal(err)
	}
	if l.ParticleCount() != 3 {
		t.Errorf("particles = %d, want 3", l.ParticleCount())
	}
}

func TestEmitterReapsExpiredUnderAdvisoryPolicy(t *testing.T) {
	l := NewSceneLayer("fx", DefaultConfig())
	if l.ExpiryPolicy() != ExpiryAdvisory {
		t.Fatalf("default policy = %v", l.ExpiryPolicy())
	}
	e := NewParticleEmitter(Vec(0, 0), testEmitterConfig(100))
	e.Start()
	l.AddEmitter(e)

	var expired int
	l.OnParticleExpired = func(ParticleHandle, *Particle) { expired++ }

	if err := l.Update(0.5); err != nil {
		t.Fatal(err)
	}
	e.Stop()
	if err := l.Update(0.5); err != nil {
		t.Fatal(err)
	}

	// The five particles from the first update reached their 1s lifetime.
	if expired != 5 {
		t.Errorf("expired callbacks = %d, want 5", expired)
	}
	if l.ParticleCount() != 0 || e.AliveCount() != 0 {
		t.Errorf("particles = %d alive = %d, want 0", l.ParticleCount(), e.AliveCount())
	}
}

func TestRangeRandom(t *testing.T) {
	r := Range{Min: 2, Max: 3}
	for range 100 {
		v := r.Random()
		if v < 2 || v > 3 {
			t.Fatalf("Random = %v outside [2, 3]", v)
		}
	}
	if (Range{Min: 4, Max: 4}).Random() != 4 {
		t.Error("degenerate range should return Min")
	}
}

func TestEmitterDropsParticlesWithInvalidMotion(t *testing.T) {
	l := NewSceneLayer("fx", DefaultConfig())
	cfg := testEmitterConfig(10)
	cfg.Spawn = func(origin Vector2D) (BoundedObject, MotionStrategy) {
		return NewCircle(origin.X, origin.Y, 2), explodingMotion{}
	}
	e := NewParticleEmitter(Vec(0, 0), cfg)
	e.Start()
	l.AddEmitter(e)

	if err := l.Update(0.5); err != nil {
		t.Fatalf("a bad spawn must not fail the layer: %v", err)
	}
	if e.AliveCount() != 0 || l.ParticleCount() != 0 {
		t.Errorf("alive = %d, layer particles = %d, want 0", e.AliveCount(), l.ParticleCount())
	}
}

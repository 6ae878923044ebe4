package lumen

import (
	"fmt"
	"log/slog"
	"time"
)

// Scene is the top-level object that owns the layers and the shared shadow
// map, and drives per-frame update and draw across all layers.
//
// A Scene is single-threaded: Update and Draw must be called from the
// goroutine that owns the Renderer, never concurrently.
type Scene struct {
	renderer Renderer
	cfg      Config
	layers   []*SceneLayer
	shadow   Surface

	logger *slog.Logger
	debug  bool

	fps        *FPSCounter
	frame      uint64
	lastDelta  float64
	updateTime time.Duration
	drawTime   time.Duration
	draw       debugStats
}

// NewScene creates a scene drawing through r. When cfg.Shadow.Enabled, a
// shadow map the size of the display is allocated now; a failure is returned
// wrapped in ErrSurfaceCreate and is not retried.
func NewScene(r Renderer, cfg Config) (*Scene, error) {
	if r == nil {
		return nil, ErrNoRenderer
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Scene{
		renderer: r,
		cfg:      cfg,
		logger:   slog.Default(),
		debug:    cfg.Debug.Enabled,
		fps:      NewFPSCounter(cfg.Debug.FPSWindow),
	}
	if cfg.Shadow.Enabled {
		shadow, err := s.newShadowSurface(cfg.Display.Width, cfg.Display.Height)
		if err != nil {
			return nil, err
		}
		s.shadow = shadow
	}
	return s, nil
}

func (s *Scene) newShadowSurface(w, h int) (Surface, error) {
	shadow, err := s.renderer.NewSurface(w, h)
	if err != nil {
		return nil, fmt.Errorf("shadow map %dx%d: %w: %w", w, h, ErrSurfaceCreate, err)
	}
	if shadow == nil {
		return nil, fmt.Errorf("shadow map %dx%d: %w", w, h, ErrSurfaceCreate)
	}
	return shadow, nil
}

// Config returns the scene's configuration.
func (s *Scene) Config() Config { return s.cfg }

// Renderer returns the backend the scene draws through.
func (s *Scene) Renderer() Renderer { return s.renderer }

// SetLogger replaces the scene's logger. nil restores slog.Default().
func (s *Scene) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	s.logger = l
	for _, layer := range s.layers {
		layer.SetLogger(l)
	}
}

// SetDebugMode enables or disables debug mode. When enabled, per-frame draw
// timings and counts are logged at debug level and oversized layers are
// reported.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// --- Layers ---

// AddLayer appends a new layer configured from the scene's config. Layers
// draw in the order they were added.
func (s *Scene) AddLayer(name string) *SceneLayer {
	l := NewSceneLayer(name, s.cfg)
	l.SetLogger(s.logger)
	s.layers = append(s.layers, l)
	return l
}

// RemoveLayer removes a layer from the scene.
func (s *Scene) RemoveLayer(l *SceneLayer) bool {
	return removeRef(&s.layers, l)
}

// Layers returns the scene's layer list. The returned slice MUST NOT be mutated.
func (s *Scene) Layers() []*SceneLayer {
	return s.layers
}

// Layer returns the i-th layer, or nil when out of range.
func (s *Scene) Layer(i int) *SceneLayer {
	if i < 0 || i >= len(s.layers) {
		return nil
	}
	return s.layers[i]
}

// ShadowSurface returns the shared shadow map, or nil when shadows are
// disabled. The backend composites it over the frame after Draw.
func (s *Scene) ShadowSurface() Surface {
	return s.shadow
}

// Resize reallocates the shadow map for a new display size. The old surface
// is released only after the new one was created.
func (s *Scene) Resize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: display size %dx%d", ErrConfig, w, h)
	}
	if s.shadow != nil {
		if sw, sh := s.shadow.Size(); sw != w || sh != h {
			shadow, err := s.newShadowSurface(w, h)
			if err != nil {
				return err
			}
			s.renderer.ReleaseSurface(s.shadow)
			s.shadow = shadow
		}
	}
	s.cfg.Display.Width, s.cfg.Display.Height = w, h
	s.logger.Info("display resized", "width", w, "height", h)
	return nil
}

// Dispose releases the shadow map. The scene must not be drawn afterwards.
func (s *Scene) Dispose() {
	if s.shadow != nil {
		s.renderer.ReleaseSurface(s.shadow)
		s.shadow = nil
	}
	s.layers = nil
}

// --- Frame ---

// Update advances every layer by dt seconds, in layer order. A late frame
// simply passes a larger dt; motion is defined over absolute living time.
// Every layer is validated before any of them advances, so an error leaves
// the scene as it was.
func (s *Scene) Update(dt float64) error {
	if err := checkDelta(dt); err != nil {
		return fmt.Errorf("scene update: %w", err)
	}
	start := time.Now()
	for _, l := range s.layers {
		if err := l.prepare(dt); err != nil {
			return fmt.Errorf("scene update: %w", err)
		}
	}
	for _, l := range s.layers {
		if err := l.advance(dt); err != nil {
			return fmt.Errorf("scene update: %w", err)
		}
		if s.debug {
			s.debugCheckParticleCount(l)
		}
	}
	s.lastDelta = dt
	s.fps.Tick(dt)
	s.updateTime = time.Since(start)
	return nil
}

// Draw composes every layer onto the renderer's current target. The shadow
// map is cleared to the ambient color once, then every layer adds its
// occluders and carves its lights into the same surface, in layer order.
// Compositing the shadow map over the frame is left to the backend and must
// happen only after Draw returns.
func (s *Scene) Draw() {
	start := time.Now()
	stats := debugStats{layerCount: len(s.layers)}

	if s.shadow != nil {
		s.renderer.Clear(s.shadow, s.cfg.Shadow.ClearColor)
	}
	stats.clearTime = time.Since(start)

	for _, l := range s.layers {
		l.Draw(s.renderer, s.shadow)
		stats.triangles += l.stats.triangles
		stats.silhouettes += l.stats.silhouettes
		stats.lights += len(l.lights)
	}
	stats.layersTime = time.Since(start) - stats.clearTime

	s.frame++
	s.drawTime = time.Since(start)
	s.draw = stats
	s.debugLog(stats)
}

// Tick runs one Update and one Draw and reports the frame to m, which may
// be nil.
func (s *Scene) Tick(dt float64, m Metrics) error {
	if err := s.Update(dt); err != nil {
		return err
	}
	s.Draw()
	if m != nil {
		m.RecordFrame(s.Stats())
	}
	return nil
}

// Stats returns the statistics of the most recent frame.
func (s *Scene) Stats() FrameStats {
	st := FrameStats{
		Frame:          s.frame,
		DeltaTime:      s.lastDelta,
		FPS:            s.fps.FPS(),
		Layers:         len(s.layers),
		Lights:         s.draw.lights,
		LightTriangles: s.draw.triangles,
		Silhouettes:    s.draw.silhouettes,
		UpdateMicros:   s.updateTime.Microseconds(),
		DrawMicros:     s.drawTime.Microseconds(),
	}
	for _, l := range s.layers {
		st.Particles += l.ParticleCount()
		st.ExpiredParticles += l.stats.expired
		st.RemovedParticles += l.stats.removed
	}
	return st
}

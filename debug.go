package lumen

import (
	"context"
	"log/slog"
	"time"
)

// debugStats holds per-frame timing and draw counts. They are logged only
// when Scene.debug is true but always feed Scene.Stats.
type debugStats struct {
	clearTime   time.Duration
	layersTime  time.Duration
	layerCount  int
	triangles   int
	silhouettes int
	lights      int
}

// debugLog writes the frame's draw stats at debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	s.logger.LogAttrs(context.Background(), slog.LevelDebug, "frame drawn",
		slog.Uint64("frame", s.frame),
		slog.Duration("clear", stats.clearTime),
		slog.Duration("layers", stats.layersTime),
		slog.Duration("total", stats.clearTime+stats.layersTime),
		slog.Int("layer_count", stats.layerCount),
		slog.Int("lights", stats.lights),
		slog.Int("light_triangles", stats.triangles),
		slog.Int("silhouettes", stats.silhouettes),
	)
}

// debugMaxParticles is the per-layer particle count above which a warning is
// logged in debug mode.
const debugMaxParticles = 10000

// debugCheckParticleCount warns when a layer grows past debugMaxParticles,
// which usually means an advisory expiry policy is letting particles pile up.
func (s *Scene) debugCheckParticleCount(l *SceneLayer) {
	if n := l.ParticleCount(); n > debugMaxParticles {
		s.logger.Warn("layer particle count exceeds threshold",
			"layer", l.Name(),
			"particles", n,
			"threshold", debugMaxParticles,
			"expiry", l.ExpiryPolicy().String(),
		)
	}
}

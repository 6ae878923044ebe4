package lumen

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig holds optional settings for Run.
type RunConfig struct {
	// Title sets the window title.
	Title string
	// Width and Height override the display size from the scene's config.
	Width, Height int
	// Background fills the screen before the scene is drawn.
	Background Color
	// ShowFPS draws a small FPS/TPS overlay in the top-left corner.
	ShowFPS bool
	// ScreenshotDir is where queued screenshots are written. Empty means
	// "screenshots".
	ScreenshotDir string
	// Update is called before the scene updates, with the frame delta in
	// seconds. Returning an error stops the game.
	Update func(dt float64) error
	// Metrics receives one FrameStats per drawn frame. When nil and the
	// scene's config names a metrics CSV file, Run writes there.
	Metrics Metrics
	// Script, when set, drives screenshots and scene changes frame by frame.
	Script *ScriptRunner
}

// Game adapts a Scene to ebiten.Game. Update advances the scene by one tick;
// Draw composes the layers onto the screen and multiplies the shadow map
// over the result.
type Game struct {
	scene    *Scene
	renderer *EbitenRenderer
	cfg      RunConfig
	metrics  Metrics
	shots    screenshotQueue
	overlay  *ebiten.Image
	sinceFPS float64
	logger   *slog.Logger

	// actualFPS is the measured draw rate written to FrameStats.FPS.
	actualFPS func() float64
}

// NewGame creates a game drawing scene through r. r must be the renderer
// the scene was created with.
func NewGame(scene *Scene, r *EbitenRenderer, cfg RunConfig) *Game {
	dir := cfg.ScreenshotDir
	if dir == "" {
		dir = "screenshots"
	}
	return &Game{
		scene:    scene,
		renderer: r,
		cfg:      cfg,
		metrics:  cfg.Metrics,
		shots:    screenshotQueue{dir: dir},
		logger:   scene.logger,

		actualFPS: ebiten.ActualFPS,
	}
}

// Screenshot queues a labeled screenshot of the next composed frame.
func (g *Game) Screenshot(label string) {
	g.shots.Push(label)
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	dt := 1.0 / float64(ebiten.TPS())
	if g.cfg.Script != nil {
		if err := g.cfg.Script.step(g); err != nil {
			return err
		}
	}
	if g.cfg.Update != nil {
		if err := g.cfg.Update(dt); err != nil {
			return err
		}
	}
	return g.scene.Update(dt)
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.cfg.Background.A > 0 {
		screen.Fill(g.cfg.Background)
	}
	g.renderer.Begin(screen)
	g.scene.Draw()
	if shadow := g.scene.ShadowSurface(); shadow != nil {
		g.renderer.CompositeShadow(screen, shadow)
	}
	g.recordFrame()
	if g.cfg.ShowFPS {
		g.drawFPS(screen)
	}
	g.shots.Flush(screen, g.logger)
}

// recordFrame reports the frame just drawn, with the measured frame rate.
func (g *Game) recordFrame() {
	if g.metrics == nil {
		return
	}
	st := g.scene.Stats()
	st.FPS = g.actualFPS()
	g.metrics.RecordFrame(st)
}

// drawFPS refreshes the overlay about twice a second.
func (g *Game) drawFPS(screen *ebiten.Image) {
	if g.overlay == nil {
		// 100x32 fits "FPS: 60.0\nTPS: 60.0".
		g.overlay = ebiten.NewImage(100, 32)
		g.sinceFPS = 0.5
	}
	g.sinceFPS += 1.0 / float64(ebiten.TPS())
	if g.sinceFPS >= 0.5 {
		g.sinceFPS = 0
		g.overlay.Clear()
		g.overlay.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(g.overlay, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	screen.DrawImage(g.overlay, nil)
}

// Layout implements ebiten.Game. The logical screen stays at the display
// size; a resized window is scaled by ebiten.
func (g *Game) Layout(_, _ int) (int, int) {
	c := g.scene.Config().Display
	return c.Width, c.Height
}

// Run opens a window and runs scene until the window closes or an update
// returns an error. The scene must have been created with an EbitenRenderer.
func Run(scene *Scene, cfg RunConfig) (err error) {
	r, ok := scene.Renderer().(*EbitenRenderer)
	if !ok {
		return fmt.Errorf("run: %w: scene renderer is %T, want *EbitenRenderer", ErrNoRenderer, scene.Renderer())
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		if err := scene.Resize(cfg.Width, cfg.Height); err != nil {
			return fmt.Errorf("run: %w", err)
		}
	}
	if cfg.Metrics == nil && scene.Config().Debug.MetricsCSV != "" {
		csv, err := CreateCSVMetrics(scene.Config().Debug.MetricsCSV)
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}
		defer func() { err = errors.Join(err, csv.Close()) }()
		cfg.Metrics = csv
	}

	d := scene.Config().Display
	ebiten.SetWindowSize(d.Width, d.Height)
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	game := NewGame(scene, r, cfg)
	scene.logger.Info("starting game loop", "width", d.Width, "height", d.Height, "layers", len(scene.Layers()))
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

package lumen

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/yaml.v3"
)

// scriptStep is a single action in a frame script.
type scriptStep struct {
	Action  string `yaml:"action"`
	Label   string `yaml:"label,omitempty"`
	Frames  int    `yaml:"frames,omitempty"`
	Width   int    `yaml:"width,omitempty"`
	Height  int    `yaml:"height,omitempty"`
	Layer   string `yaml:"layer,omitempty"`
	Enabled bool   `yaml:"enabled,omitempty"`
}

// frameScript is the top-level YAML structure for a frame script.
type frameScript struct {
	Steps []scriptStep `yaml:"steps"`
}

// ScriptRunner sequences screenshots and scene changes across frames for
// automated visual checks. Attach it to a Game with RunConfig.Script.
//
// Supported actions: screenshot (label), wait (frames), resize (width,
// height), lights (layer, enabled) and quit.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a YAML frame script.
func LoadScript(data []byte) (*ScriptRunner, error) {
	var script frameScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse frame script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse frame script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "screenshot", "wait", "resize", "lights", "quit":
		default:
			return nil, fmt.Errorf("parse frame script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// Done reports whether all steps have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. Called from Game.Update before the
// scene updates. A quit step returns ebiten.Termination.
func (r *ScriptRunner) step(g *Game) error {
	if r.done {
		return nil
	}
	if r.waitCount > 0 {
		r.waitCount--
		return nil
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return nil
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		g.Screenshot(st.Label)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "resize":
		if err := g.scene.Resize(st.Width, st.Height); err != nil {
			return fmt.Errorf("frame script step %d: %w", r.cursor-1, err)
		}
	case "lights":
		for _, l := range g.scene.Layers() {
			if l.Name() != st.Layer {
				continue
			}
			for _, lt := range l.Lights() {
				lt.Enabled = st.Enabled
			}
		}
	case "quit":
		r.done = true
		return ebiten.Termination
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
	return nil
}

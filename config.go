package lumen

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds the scene compositing settings.
type Config struct {
	Display   DisplayConfig   `yaml:"display"`
	Shadow    ShadowConfig    `yaml:"shadow"`
	Lighting  LightingConfig  `yaml:"lighting"`
	Particles ParticlesConfig `yaml:"particles"`
	Debug     DebugConfig     `yaml:"debug"`
}

// DisplayConfig holds the main surface dimensions. The shadow map is
// allocated at the same size.
type DisplayConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ShadowConfig controls the shared shadow map.
type ShadowConfig struct {
	Enabled         bool  `yaml:"enabled"`
	ClearColor      Color `yaml:"clear_color"`
	SilhouetteAlpha uint8 `yaml:"silhouette_alpha"`
}

// LightingConfig holds defaults applied to lights added to a layer.
type LightingConfig struct {
	EdgeColor       Color `yaml:"edge_color"`
	CoupleIntensity bool  `yaml:"couple_intensity"`
}

// ParticlesConfig controls particle lifetime handling.
type ParticlesConfig struct {
	Expiry ExpiryPolicy `yaml:"expiry"`
}

// DebugConfig controls diagnostics.
type DebugConfig struct {
	Enabled    bool   `yaml:"enabled"`
	MetricsCSV string `yaml:"metrics_csv"`
	FPSWindow  int    `yaml:"fps_window"`
}

// ExpiryPolicy decides what a layer does with particles whose time to live
// has run out.
type ExpiryPolicy uint8

const (
	// ExpiryAdvisory leaves expired particles in place; the layer reports each
	// one once through OnParticleExpired.
	ExpiryAdvisory ExpiryPolicy = iota
	// ExpiryRemove reports and then removes expired particles after update.
	ExpiryRemove
)

// String returns the policy's config name.
func (p ExpiryPolicy) String() string {
	switch p {
	case ExpiryAdvisory:
		return "advisory"
	case ExpiryRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// MarshalYAML writes the policy by name.
func (p ExpiryPolicy) MarshalYAML() (any, error) {
	return p.String(), nil
}

// UnmarshalYAML reads the policy by name.
func (p *ExpiryPolicy) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	switch s {
	case "advisory", "":
		*p = ExpiryAdvisory
	case "remove":
		*p = ExpiryRemove
	default:
		return fmt.Errorf("%w: unknown particle expiry policy %q", ErrConfig, s)
	}
	return nil
}

// DefaultConfig returns the embedded default configuration.
func DefaultConfig() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		panic(fmt.Sprintf("lumen: embedded defaults.yaml: %v", err))
	}
	return cfg
}

// ParseConfig overlays YAML data onto the defaults and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a YAML config file. An empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// WriteYAML saves the config to path.
func (c Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// Validate checks the config for values the compositor cannot use.
func (c Config) Validate() error {
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("%w: display size %dx%d", ErrConfig, c.Display.Width, c.Display.Height)
	}
	if err := validateColor("shadow.clear_color", c.Shadow.ClearColor); err != nil {
		return err
	}
	if err := validateColor("lighting.edge_color", c.Lighting.EdgeColor); err != nil {
		return err
	}
	if c.Debug.FPSWindow < 0 {
		return fmt.Errorf("%w: debug.fps_window %d", ErrConfig, c.Debug.FPSWindow)
	}
	return nil
}

func validateColor(field string, c Color) error {
	for _, v := range [4]float64{c.R, c.G, c.B, c.A} {
		if !isFinite(v) || v < 0 || v > 1 {
			return fmt.Errorf("%w: %s component %v outside [0, 1]", ErrConfig, field, v)
		}
	}
	return nil
}

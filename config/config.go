// Package config provides configuration loading and access for the visualizer.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all visualizer configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Particles ParticlesConfig `yaml:"particles"`
	Gesture   GestureConfig   `yaml:"gesture"`
	Render    RenderConfig    `yaml:"render"`
	Camera    CameraConfig    `yaml:"camera"`
	Tracker   TrackerConfig   `yaml:"tracker"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	UI        UIConfig        `yaml:"ui"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// ParticlesConfig holds particle cloud parameters.
type ParticlesConfig struct {
	InitialShape string  `yaml:"initial_shape"` // Shape name, see shapes.ParseKind
	InitialColor string  `yaml:"initial_color"` // Hex colour, e.g. "#6366f1"
	InitialCount int     `yaml:"initial_count"`
	MinCount     int     `yaml:"min_count"`
	MaxCount     int     `yaml:"max_count"`
	CountStep    int     `yaml:"count_step"` // Slider granularity
	Smoothing    float64 `yaml:"smoothing"`  // Per-frame interpolation factor
}

// ThresholdConfig maps a raw landmark distance onto [0,1]: clamp((d - offset) / range).
type ThresholdConfig struct {
	Offset float64 `yaml:"offset"`
	Range  float64 `yaml:"range"`
}

// GestureConfig holds gesture-to-diffusion parameters.
type GestureConfig struct {
	Pinch       ThresholdConfig `yaml:"pinch"`        // One hand: thumb tip to index tip
	Spread      ThresholdConfig `yaml:"spread"`       // Two hands: middle-finger base to middle-finger base
	HoldTimeout float64         `yaml:"hold_timeout"` // Seconds a reading is held without new frames (0 = forever)
}

// RenderConfig holds shader coupling parameters.
type RenderConfig struct {
	DiffusionScale float64 `yaml:"diffusion_scale"` // Outward displacement at full diffusion
	SizeScale      float64 `yaml:"size_scale"`      // Extra point size factor at full diffusion
	NoiseAmplitude float64 `yaml:"noise_amplitude"`
	NoiseSpeed     float64 `yaml:"noise_speed"`     // Radians per second of the noise phase
	NoiseFrequency float64 `yaml:"noise_frequency"` // Spatial frequency along x
	PointSize      float64 `yaml:"point_size"`      // Base billboard size in view-space units
	RotationY      float64 `yaml:"rotation_y"`      // Model spin about y, radians per second
	RotationZ      float64 `yaml:"rotation_z"`      // Model spin about z, radians per second
	Background     string  `yaml:"background"`
	BatchSize      int     `yaml:"batch_size"` // Billboards per render batch flush
}

// CameraConfig holds orbit camera parameters.
type CameraConfig struct {
	Distance    float64 `yaml:"distance"`
	MinDistance float64 `yaml:"min_distance"`
	MaxDistance float64 `yaml:"max_distance"`
	Fovy        float64 `yaml:"fovy"`
	AutoRotate  float64 `yaml:"auto_rotate"` // Orbit speed, radians per second
	Pitch       float64 `yaml:"pitch"`
}

// TrackerConfig holds landmark oracle parameters.
type TrackerConfig struct {
	Source      string  `yaml:"source"` // none, replay, sweep
	Path        string  `yaml:"path"`   // Replay CSV path
	FPS         float64 `yaml:"fps"`    // Oracle cadence, independent of render rate
	Loop        bool    `yaml:"loop"`
	SweepHands  int     `yaml:"sweep_hands"`  // 1 = pinch sweep, 2 = spread sweep
	SweepPeriod float64 `yaml:"sweep_period"` // Seconds per open/close cycle
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // Seconds per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
	StableEpsilon       float64 `yaml:"stable_epsilon"` // Residual below which the cloud counts as settled
}

// UIConfig holds overlay parameters.
type UIConfig struct {
	Palette []string `yaml:"palette"` // Hex colour swatches
	Visible bool     `yaml:"visible"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Smoothing32   float32       // Particles.Smoothing as float32
	HoldTimeout   time.Duration // Gesture.HoldTimeout as a duration
	TrackerPeriod time.Duration // 1 / Tracker.FPS
	ScreenW32     float32
	ScreenH32     float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects configurations the render loop cannot run with.
func (c *Config) validate() error {
	p := c.Particles
	if p.MinCount <= 0 || p.MaxCount < p.MinCount {
		return fmt.Errorf("invalid particle bounds [%d, %d]", p.MinCount, p.MaxCount)
	}
	if p.InitialCount < p.MinCount || p.InitialCount > p.MaxCount {
		return fmt.Errorf("initial particle count %d outside [%d, %d]", p.InitialCount, p.MinCount, p.MaxCount)
	}
	if p.Smoothing <= 0 || p.Smoothing > 1 {
		return fmt.Errorf("smoothing %v outside (0, 1]", p.Smoothing)
	}
	if c.Gesture.Pinch.Range <= 0 || c.Gesture.Spread.Range <= 0 {
		return fmt.Errorf("gesture threshold ranges must be positive")
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Smoothing32 = float32(c.Particles.Smoothing)
	c.Derived.HoldTimeout = time.Duration(c.Gesture.HoldTimeout * float64(time.Second))
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	fps := c.Tracker.FPS
	if fps <= 0 {
		fps = 30
	}
	c.Derived.TrackerPeriod = time.Duration(float64(time.Second) / fps)

	if c.Particles.CountStep <= 0 {
		c.Particles.CountStep = 1
	}
	if c.Render.BatchSize <= 0 {
		c.Render.BatchSize = 2048
	}
}

// ClampCount snaps n to the configured step and clamps it to the particle bounds.
func (c *Config) ClampCount(n int) int {
	p := c.Particles
	step := p.CountStep
	n = p.MinCount + ((n-p.MinCount+step/2)/step)*step
	if n < p.MinCount {
		return p.MinCount
	}
	if n > p.MaxCount {
		return p.MaxCount
	}
	return n
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

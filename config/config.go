// Package config provides configuration loading and access for the demo.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all demo configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Platform  PlatformConfig  `yaml:"platform"`
	XR        XRConfig        `yaml:"xr"`
	Scene     SceneConfig     `yaml:"scene"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds desktop mirror window settings.
type ScreenConfig struct {
	Width       int  `yaml:"width"`
	Height      int  `yaml:"height"`
	TargetFPS   int  `yaml:"target_fps"`
	Transparent bool `yaml:"transparent"` // allow a see-through clear colour
	DebugPanel  bool `yaml:"debug_panel"`
}

// PlatformConfig holds steerable platform parameters.
type PlatformConfig struct {
	Speed           float64    `yaml:"speed"`            // units per tick at full input
	RotationSpeed   float64    `yaml:"rotation_speed"`   // radians per tick before damping
	RotationDamping float64    `yaml:"rotation_damping"` // scales rotation input for smoother turning
	Spawn           [3]float64 `yaml:"spawn"`            // initial position
	Size            [3]float64 `yaml:"size"`             // mesh extent
}

// XRConfig holds XR session and simulated runtime parameters.
type XRConfig struct {
	BlendModes  []string `yaml:"blend_modes"`   // preference order
	MirrorEyes  []string `yaml:"mirror_eyes"`   // one desktop mirror camera per entry
	MirrorFovY  float64  `yaml:"mirror_fov_y"`  // degrees
	EyeHeight   float64  `yaml:"eye_height"`    // simulated head height in tracking space
	IPD         float64  `yaml:"ipd"`           // simulated interpupillary distance
	HeadSway    float64  `yaml:"head_sway"`     // simulated idle yaw amplitude (radians), 0 = still
	SwayPeriod  float64  `yaml:"sway_period"`   // ticks per sway cycle
	Supported   []string `yaml:"supported"`     // blend modes the simulated runtime reports
	SwapViewEye bool     `yaml:"swap_view_eye"` // simulate a runtime listing the right eye first
}

// SceneConfig holds static scene parameters.
type SceneConfig struct {
	GroundRadius float64    `yaml:"ground_radius"`
	CubeSize     float64    `yaml:"cube_size"`
	Light        [3]float64 `yaml:"light"`
	LightShadows bool       `yaml:"light_shadows"`
}

// TelemetryConfig holds perf and pose trace parameters.
type TelemetryConfig struct {
	Window              int `yaml:"window"`                // ticks per trace/perf window
	PerfCollectorWindow int `yaml:"perf_collector_window"` // rolling perf sample size
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Speed32         float32
	RotationSpeed32 float32
	Damping32       float32
	ScreenW32       float32
	ScreenH32       float32
}

// ErrInvalid is wrapped by all validation errors.
var ErrInvalid = errors.New("invalid config")

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

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns a fresh copy of the embedded defaults.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
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

func (c *Config) validate() error {
	if c.Platform.Speed < 0 {
		return fmt.Errorf("%w: platform.speed must be >= 0, got %v", ErrInvalid, c.Platform.Speed)
	}
	if c.Platform.RotationDamping <= 0 {
		return fmt.Errorf("%w: platform.rotation_damping must be > 0, got %v", ErrInvalid, c.Platform.RotationDamping)
	}
	if len(c.XR.BlendModes) == 0 {
		return fmt.Errorf("%w: xr.blend_modes is empty", ErrInvalid)
	}
	if c.XR.IPD < 0 {
		return fmt.Errorf("%w: xr.ipd must be >= 0, got %v", ErrInvalid, c.XR.IPD)
	}
	for _, eye := range c.XR.MirrorEyes {
		if eye != "left" && eye != "right" {
			return fmt.Errorf("%w: xr.mirror_eyes: unknown eye %q", ErrInvalid, eye)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Speed32 = float32(c.Platform.Speed)
	c.Derived.RotationSpeed32 = float32(c.Platform.RotationSpeed)
	c.Derived.Damping32 = float32(c.Platform.RotationDamping)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	if c.Telemetry.Window <= 0 {
		c.Telemetry.Window = 60
	}
	if c.XR.SwayPeriod <= 0 {
		c.XR.SwayPeriod = 600
	}
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

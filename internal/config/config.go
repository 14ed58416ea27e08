package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/partfield/internal/dynamo"
	"github.com/san-kum/partfield/internal/particles"
)

const (
	DefaultWidth   = 2560.0
	DefaultHeight  = 1440.0
	DefaultBackend = "parallel"
	DefaultFPS     = 60

	EnvPrefix = "PARTFIELD_"
)

type Config struct {
	Width           float32     `yaml:"width" env:"WIDTH"`
	Height          float32     `yaml:"height" env:"HEIGHT"`
	SpatialInterval float32     `yaml:"spatial_interval" env:"SPATIAL_INTERVAL"`
	Friction        float32     `yaml:"friction" env:"FRICTION"`
	Grav            float32     `yaml:"grav" env:"GRAV"`
	OrbitAngle      float64     `yaml:"orbit_angle" env:"ORBIT_ANGLE"`
	Attract         ForceConfig `yaml:"attract"`
	Repel           ForceConfig `yaml:"repel"`
	Orbit           ForceConfig `yaml:"orbit"`
	Backend         string      `yaml:"backend" env:"BACKEND"`
	Workers         int         `yaml:"workers" env:"WORKERS"`
	FPS             int         `yaml:"fps" env:"FPS"`
	ValidateState   bool        `yaml:"validate_state" env:"VALIDATE_STATE"`
}

type ForceConfig struct {
	Divisor float32 `yaml:"divisor"`
	Cap     float32 `yaml:"cap"`
	Scale   float32 `yaml:"scale"`
}

func DefaultConfig() *Config {
	c := dynamo.DefaultConstants()
	return &Config{
		Width:           DefaultWidth,
		Height:          DefaultHeight,
		SpatialInterval: c.SpatialInterval,
		Friction:        c.Friction,
		Grav:            c.Grav,
		OrbitAngle:      dynamo.DefaultOrbitAngle,
		Attract:         ForceConfig(c.Attract),
		Repel:           ForceConfig(c.Repel),
		Orbit:           ForceConfig(c.Orbit),
		Backend:         DefaultBackend,
		FPS:             DefaultFPS,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides fields from PARTFIELD_* variables. environ replaces the
// process environment when non-nil.
func (c *Config) ApplyEnv(environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(c, opts); err != nil {
		return fmt.Errorf("%w: %v", dynamo.ErrInvalidConfig, err)
	}
	return nil
}

func (c *Config) Validate() error {
	switch {
	case !(c.SpatialInterval > 0):
		return fmt.Errorf("%w: spatial_interval must be positive, got %v", dynamo.ErrInvalidConfig, c.SpatialInterval)
	case !(c.Friction > 0) || c.Friction > 1:
		return fmt.Errorf("%w: friction must be in (0, 1], got %v", dynamo.ErrInvalidConfig, c.Friction)
	case c.Grav < 0:
		return fmt.Errorf("%w: grav must not be negative, got %v", dynamo.ErrInvalidConfig, c.Grav)
	case c.Width < 0 || c.Height < 0:
		return fmt.Errorf("%w: viewport %vx%v", dynamo.ErrInvalidConfig, c.Width, c.Height)
	case c.FPS < 0 || c.Workers < 0:
		return fmt.Errorf("%w: fps and workers must not be negative", dynamo.ErrInvalidConfig)
	}
	if n := particles.LatticeSize(c.Bounds(), c.SpatialInterval); n > particles.MaxParticles {
		return fmt.Errorf("%w: spatial_interval %v gives %.0f particles, limit %d",
			dynamo.ErrInvalidConfig, c.SpatialInterval, n, particles.MaxParticles)
	}
	for name, f := range map[string]ForceConfig{"attract": c.Attract, "repel": c.Repel, "orbit": c.Orbit} {
		if !(f.Divisor > 0) || f.Cap < 0 || f.Scale < 0 {
			return fmt.Errorf("%w: %s force needs divisor > 0 and non-negative cap and scale", dynamo.ErrInvalidConfig, name)
		}
	}
	return nil
}

// Constants builds the immutable per-episode constants.
func (c *Config) Constants() dynamo.Constants {
	return dynamo.Constants{
		OrbitRotation:   dynamo.Rotation(c.OrbitAngle),
		SpatialInterval: c.SpatialInterval,
		Friction:        c.Friction,
		Grav:            c.Grav,
		Attract:         dynamo.ForceParams(c.Attract),
		Repel:           dynamo.ForceParams(c.Repel),
		Orbit:           dynamo.ForceParams(c.Orbit),
	}
}

func (c *Config) Bounds() dynamo.Rect {
	return dynamo.Rect{Width: c.Width, Height: c.Height}
}

// Resolve loads path (or the defaults when empty), applies the named preset
// and then the environment, and validates the result.
func Resolve(path, preset string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if preset != "" {
		p := GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("%w: %s", dynamo.ErrUnknownPreset, preset)
		}
		cfg = p
	}
	if err := cfg.ApplyEnv(nil); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParamNames lists the fields SetParam accepts.
func ParamNames() []string {
	return []string{"width", "height", "spatial_interval", "friction", "grav", "orbit_angle"}
}

// SetParam sets a numeric field by its yaml name.
func (c *Config) SetParam(name string, v float64) error {
	switch name {
	case "width":
		c.Width = float32(v)
	case "height":
		c.Height = float32(v)
	case "spatial_interval":
		c.SpatialInterval = float32(v)
	case "friction":
		c.Friction = float32(v)
	case "grav":
		c.Grav = float32(v)
	case "orbit_angle":
		c.OrbitAngle = v
	default:
		return fmt.Errorf("%w: unknown parameter %q", dynamo.ErrInvalidConfig, name)
	}
	return nil
}

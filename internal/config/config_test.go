package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/san-kum/partfield/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Width != 2560 || cfg.Height != 1440 {
		t.Errorf("expected 2560x1440, got %vx%v", cfg.Width, cfg.Height)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}

	c := cfg.Constants()
	want := dynamo.DefaultConstants()
	if c != want {
		t.Errorf("Constants() = %+v, want %+v", c, want)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("dense")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.SpatialInterval != 3 {
		t.Errorf("expected interval 3, got %v", cfg.SpatialInterval)
	}

	// presets must not share state
	cfg.SpatialInterval = 99
	if GetPreset("dense").SpatialInterval != 3 {
		t.Error("preset mutated through returned config")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for _, name := range presets {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.yaml")

	cfg := GetPreset("small")
	cfg.Repel.Cap = 2.5
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.ApplyEnv(map[string]string{
		"PARTFIELD_WIDTH":   "800",
		"PARTFIELD_BACKEND": "serial",
		"PARTFIELD_WORKERS": "3",
	})
	if err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}
	if cfg.Width != 800 || cfg.Backend != "serial" || cfg.Workers != 3 {
		t.Errorf("env not applied: %+v", cfg)
	}
	if cfg.Height != DefaultHeight {
		t.Errorf("unset variable changed height to %v", cfg.Height)
	}

	err = cfg.ApplyEnv(map[string]string{"PARTFIELD_WORKERS": "many"})
	if !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero interval", func(c *Config) { c.SpatialInterval = 0 }},
		{"friction above one", func(c *Config) { c.Friction = 1.01 }},
		{"zero friction", func(c *Config) { c.Friction = 0 }},
		{"negative grav", func(c *Config) { c.Grav = -1 }},
		{"negative width", func(c *Config) { c.Width = -5 }},
		{"zero divisor", func(c *Config) { c.Orbit.Divisor = 0 }},
		{"negative cap", func(c *Config) { c.Attract.Cap = -0.1 }},
		{"lattice too large", func(c *Config) { c.SpatialInterval = 0.0001 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, dynamo.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	if _, err := Resolve("", "nope"); !errors.Is(err, dynamo.ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}

	cfg, err := Resolve("", "sparse")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if cfg.SpatialInterval != 10 {
		t.Errorf("expected sparse interval, got %v", cfg.SpatialInterval)
	}
}

func TestSetParam(t *testing.T) {
	cfg := DefaultConfig()
	for _, name := range ParamNames() {
		if err := cfg.SetParam(name, 7); err != nil {
			t.Errorf("SetParam(%q) failed: %v", name, err)
		}
	}
	if cfg.Friction != 7 || cfg.OrbitAngle != 7 || cfg.Width != 7 {
		t.Errorf("params not applied: %+v", cfg)
	}
	if err := cfg.SetParam("workers", 2); !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidate_LatticeCeiling(t *testing.T) {
	tests := []struct {
		name     string
		interval float64
		wantErr  bool
	}{
		{"default interval", 5, false},
		{"tiny interval", 0.0001, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			if err := cfg.SetParam("spatial_interval", tt.interval); err != nil {
				t.Fatal(err)
			}
			err := cfg.Validate()
			if tt.wantErr && !errors.Is(err, dynamo.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

package config

import "sort"

var Presets = map[string]func(*Config){
	"classic": func(c *Config) {},
	"dense": func(c *Config) {
		c.SpatialInterval = 3
	},
	"sparse": func(c *Config) {
		c.SpatialInterval = 10
	},
	"sticky": func(c *Config) {
		c.Friction = 0.95
	},
	"small": func(c *Config) {
		c.Width, c.Height = 640, 360
		c.SpatialInterval = 4
		c.Backend = "serial"
	},
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package config

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// Presets are ready made scenes, applied over DefaultConfig
var Presets = map[string]func(c *Config){
	"hanging": func(c *Config) {},
	"sway": func(c *Config) {
		c.Run.Motion = MotionConfig{Type: "sway", Amplitude: 0.5, Frequency: 0.5}
	},
	"drape": func(c *Config) {
		c.Rope.Anchor = mgl64.Vec3{-1.2, 1.5, 0}
		c.Run.Motion = MotionConfig{Type: "linear", Direction: mgl64.Vec3{1, 0, 0}, Speed: 0.4}
		c.Run.Steps = 300
		c.Colliders = []ColliderConfig{
			{Shape: "sphere", Position: mgl64.Vec3{0, 0, 0}, Radius: 0.6},
		}
	},
	"floor": func(c *Config) {
		c.Rope.Anchor = mgl64.Vec3{0, 1, 0}
		c.Run.Motion = MotionConfig{Type: "circle", Amplitude: 0.8, Frequency: 0.25}
		c.Colliders = []ColliderConfig{
			{Shape: "plane", Normal: mgl64.Vec3{0, 1, 0}},
			{Shape: "box", Position: mgl64.Vec3{0.8, 0.25, 0.4}, HalfExtents: mgl64.Vec3{0.25, 0.25, 0.25}, Axis: mgl64.Vec3{0, 1, 0}, Angle: 30},
			{Shape: "capsule", Position: mgl64.Vec3{-0.6, 0.2, 0.3}, Radius: 0.15, HalfHeight: 0.4, Axis: mgl64.Vec3{0, 0, 1}, Angle: 90},
		}
	},
}

// GetPreset returns the named preset, nil if it does not exist
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}

	cfg := DefaultConfig()
	apply(cfg)

	return cfg
}

// ListPresets returns the preset names in alphabetical order
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

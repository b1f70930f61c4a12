// Package config describes a rope scene in YAML: the rope, its physics
// tuning, the static colliders and how a headless run drives the anchor.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/akmonengine/rope"
	"github.com/akmonengine/rope/actor"
	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

const (
	DefaultResolution = 30
	DefaultLength     = 2.0
	DefaultDt         = 0.02
	DefaultSteps      = 500
	DefaultSpeed      = 2.5
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Rope      RopeConfig       `yaml:"rope"`
	Physics   PhysicsConfig    `yaml:"physics"`
	Grid      GridConfig       `yaml:"grid"`
	Run       RunConfig        `yaml:"run"`
	Colliders []ColliderConfig `yaml:"colliders"`
}

type RopeConfig struct {
	Resolution int        `yaml:"resolution"`
	Length     float64    `yaml:"length"`
	Anchor     mgl64.Vec3 `yaml:"anchor,flow"`
}

type PhysicsConfig struct {
	Gravity         mgl64.Vec3 `yaml:"gravity,flow"`
	AirFriction     float64    `yaml:"air_friction"`
	CollisionRadius float64    `yaml:"collision_radius"`
	FixedDt         float64    `yaml:"fixed_dt"`
	Iterations      int        `yaml:"iterations"`
	Tolerance       float64    `yaml:"tolerance"`
}

type GridConfig struct {
	CellSize float64 `yaml:"cell_size"`
	Cells    int     `yaml:"cells"`
}

type RunConfig struct {
	Dt     float64      `yaml:"dt"`
	Steps  int          `yaml:"steps"`
	Motion MotionConfig `yaml:"motion"`
}

// MotionConfig scripts the anchor for headless runs
type MotionConfig struct {
	// Type is one of static, linear, sway, circle
	Type      string     `yaml:"type"`
	Direction mgl64.Vec3 `yaml:"direction,flow"`
	Speed     float64    `yaml:"speed"`
	Amplitude float64    `yaml:"amplitude"`
	Frequency float64    `yaml:"frequency"`
}

type ColliderConfig struct {
	// Shape is one of sphere, box, plane, capsule
	Shape    string     `yaml:"shape"`
	Position mgl64.Vec3 `yaml:"position,flow"`
	// Rotation of Angle degrees around Axis
	Axis  mgl64.Vec3 `yaml:"axis,flow,omitempty"`
	Angle float64    `yaml:"angle,omitempty"`

	Radius      float64    `yaml:"radius,omitempty"`
	HalfExtents mgl64.Vec3 `yaml:"half_extents,flow,omitempty"`
	HalfHeight  float64    `yaml:"half_height,omitempty"`
	Normal      mgl64.Vec3 `yaml:"normal,flow,omitempty"`
	Distance    float64    `yaml:"distance,omitempty"`
}

func DefaultConfig() *Config {
	settings := rope.DefaultSettings()

	return &Config{
		Rope: RopeConfig{
			Resolution: DefaultResolution,
			Length:     DefaultLength,
		},
		Physics: PhysicsConfig{
			Gravity:         settings.Gravity,
			AirFriction:     settings.AirFriction,
			CollisionRadius: settings.CollisionRadius,
			FixedDt:         settings.FixedDeltaTime,
			Iterations:      settings.Iterations,
			Tolerance:       settings.Tolerance,
		},
		Grid: GridConfig{
			CellSize: rope.DefaultCellSize,
			Cells:    rope.DefaultNumCells,
		},
		Run: RunConfig{
			Dt:    DefaultDt,
			Steps: DefaultSteps,
			Motion: MotionConfig{
				Type:      "static",
				Direction: mgl64.Vec3{1, 0, 0},
				Speed:     DefaultSpeed,
			},
		},
	}
}

// Load reads a YAML file over the defaults and validates the result
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
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

// Validate checks everything a rope or scene construction would reject
func (c *Config) Validate() error {
	if c.Rope.Resolution < 1 {
		return fmt.Errorf("%w: rope.resolution %d must be at least 1", ErrInvalidConfig, c.Rope.Resolution)
	}
	if !(c.Rope.Length > 0) {
		return fmt.Errorf("%w: rope.length %v must be positive", ErrInvalidConfig, c.Rope.Length)
	}
	if err := c.Settings().Validate(); err != nil {
		return fmt.Errorf("%w: physics: %w", ErrInvalidConfig, err)
	}
	if !(c.Grid.CellSize > 0) || c.Grid.Cells < 1 {
		return fmt.Errorf("%w: grid needs a positive cell size and cell count", ErrInvalidConfig)
	}
	if !(c.Run.Dt > 0) || c.Run.Steps < 0 {
		return fmt.Errorf("%w: run needs a positive dt and a non-negative step count", ErrInvalidConfig)
	}
	if err := c.Run.Motion.validate(); err != nil {
		return fmt.Errorf("%w: run.motion: %w", ErrInvalidConfig, err)
	}
	for i, cc := range c.Colliders {
		if _, err := cc.Build(); err != nil {
			return fmt.Errorf("%w: colliders[%d]: %w", ErrInvalidConfig, i, err)
		}
	}

	return nil
}

// Settings converts the physics section into rope settings
func (c *Config) Settings() rope.Settings {
	return rope.Settings{
		Gravity:         c.Physics.Gravity,
		AirFriction:     c.Physics.AirFriction,
		CollisionRadius: c.Physics.CollisionRadius,
		FixedDeltaTime:  c.Physics.FixedDt,
		Iterations:      c.Physics.Iterations,
		Tolerance:       c.Physics.Tolerance,
	}
}

// BuildScene creates the collision scene holding every configured collider
func (c *Config) BuildScene() (*rope.Scene, error) {
	scene := rope.NewScene(c.Grid.CellSize, c.Grid.Cells)
	for i, cc := range c.Colliders {
		collider, err := cc.Build()
		if err != nil {
			return nil, fmt.Errorf("colliders[%d]: %w", i, err)
		}
		scene.Add(collider)
	}

	return scene, nil
}

// NewRope creates the configured rope anchored at the configured anchor
// moved by offset, colliding against query
func (c *Config) NewRope(offset mgl64.Vec3, query rope.CollisionQuery) (*rope.Rope, error) {
	return rope.NewRope(c.Rope.Resolution, c.Rope.Length, c.Rope.Anchor.Add(offset), c.Settings(), query)
}

// Build creates the collider described by cc
func (cc ColliderConfig) Build() (*actor.Collider, error) {
	var shape actor.ShapeInterface

	switch cc.Shape {
	case "sphere":
		if !(cc.Radius > 0) {
			return nil, fmt.Errorf("sphere radius %v must be positive", cc.Radius)
		}
		shape = &actor.Sphere{Radius: cc.Radius}
	case "box":
		if !(cc.HalfExtents.X() > 0 && cc.HalfExtents.Y() > 0 && cc.HalfExtents.Z() > 0) {
			return nil, fmt.Errorf("box half extents %v must be positive", cc.HalfExtents)
		}
		shape = &actor.Box{HalfExtents: cc.HalfExtents}
	case "capsule":
		if !(cc.Radius > 0) || cc.HalfHeight < 0 {
			return nil, fmt.Errorf("capsule needs a positive radius and non-negative half height")
		}
		shape = &actor.Capsule{Radius: cc.Radius, HalfHeight: cc.HalfHeight}
	case "plane":
		if cc.Normal.Len() == 0 {
			return nil, fmt.Errorf("plane normal must not be zero")
		}
		shape = &actor.Plane{Normal: cc.Normal.Normalize(), Distance: cc.Distance}
	default:
		return nil, fmt.Errorf("unknown shape %q", cc.Shape)
	}

	transform := actor.NewTransformAt(cc.Position)
	if cc.Angle != 0 {
		if cc.Axis.Len() == 0 {
			return nil, fmt.Errorf("rotation of %v degrees needs an axis", cc.Angle)
		}
		transform.Rotation = mgl64.QuatRotate(mgl64.DegToRad(cc.Angle), cc.Axis.Normalize())
	}

	return actor.NewCollider(transform, shape), nil
}

func (m MotionConfig) validate() error {
	switch m.Type {
	case "static":
		return nil
	case "linear":
		if m.Direction.Len() == 0 {
			return fmt.Errorf("linear motion needs a direction")
		}
		return nil
	case "sway", "circle":
		if m.Amplitude < 0 || m.Frequency < 0 {
			return fmt.Errorf("amplitude and frequency must not be negative")
		}
		return nil
	}

	return fmt.Errorf("unknown motion %q", m.Type)
}

// Anchor returns the scripted anchor position at time t for a rope
// anchored at base
func (m MotionConfig) Anchor(base mgl64.Vec3, t float64) mgl64.Vec3 {
	switch m.Type {
	case "linear":
		return base.Add(m.Direction.Normalize().Mul(m.Speed * t))
	case "sway":
		phase := 2 * math.Pi * m.Frequency * t
		return base.Add(mgl64.Vec3{m.Amplitude * math.Sin(phase), 0, 0})
	case "circle":
		phase := 2 * math.Pi * m.Frequency * t
		return base.Add(mgl64.Vec3{m.Amplitude * math.Sin(phase), 0, m.Amplitude * (1 - math.Cos(phase))})
	}

	return base
}

// Package config provides YAML-based game configuration loading,
// validation and difficulty presets.
package config

import (
	"errors"
	"fmt"
)

// Config contains all tunables of a Cat Stack round.
type Config struct {
	Session SessionConfig `yaml:"session"`
	Sprite  SpriteConfig  `yaml:"sprite"`
	Physics PhysicsConfig `yaml:"physics"`
	Camera  CameraConfig  `yaml:"camera"`
	Render  RenderConfig  `yaml:"render"`
}

// SessionConfig defines round timing.
type SessionConfig struct {
	Duration int `yaml:"duration"` // Seconds per round
}

// SpriteConfig defines the falling sprites.
type SpriteConfig struct {
	Size   float64 `yaml:"size"`
	Count  int     `yaml:"count"`
	SpawnY float64 `yaml:"spawn_y"`
}

// PhysicsConfig defines motion and the ground.
type PhysicsConfig struct {
	HorizontalSpeed float64 `yaml:"horizontal_speed"` // px/s
	FallSpeed       float64 `yaml:"fall_speed"`       // px/s
	GroundHeight    float64 `yaml:"ground_height"`
	MaxFrameDelta   float64 `yaml:"max_frame_delta"` // seconds
}

// CameraConfig defines how the view follows the stack.
type CameraConfig struct {
	FollowRate   float64 `yaml:"follow_rate"`   // (0, 1)
	ReferenceFPS float64 `yaml:"reference_fps"` // frame rate at which FollowRate applies per frame
	TargetBand   float64 `yaml:"target_band"`   // fraction of viewport height
}

// RenderConfig defines terminal presentation.
type RenderConfig struct {
	CellWidth   float64 `yaml:"cell_width"`
	CellHeight  float64 `yaml:"cell_height"`
	SkyColor    string  `yaml:"sky_color"`
	GroundColor string  `yaml:"ground_color"`
	PromptColor string  `yaml:"prompt_color"`
	Prompt      string  `yaml:"prompt"`
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Session.Duration > 0, "session.duration must be positive, got %d", c.Session.Duration)
	check(c.Sprite.Size > 0, "sprite.size must be positive, got %v", c.Sprite.Size)
	check(c.Sprite.Count > 0, "sprite.count must be positive, got %d", c.Sprite.Count)
	check(c.Physics.HorizontalSpeed >= 0, "physics.horizontal_speed must not be negative, got %v", c.Physics.HorizontalSpeed)
	check(c.Physics.FallSpeed > 0, "physics.fall_speed must be positive, got %v", c.Physics.FallSpeed)
	check(c.Physics.GroundHeight >= 0, "physics.ground_height must not be negative, got %v", c.Physics.GroundHeight)
	check(c.Physics.MaxFrameDelta > 0, "physics.max_frame_delta must be positive, got %v", c.Physics.MaxFrameDelta)
	// A clamped frame must not carry a falling sprite through a stacked one.
	check(c.Physics.FallSpeed*c.Physics.MaxFrameDelta < c.Sprite.Size,
		"physics.fall_speed * physics.max_frame_delta (%v) must be below sprite.size (%v)",
		c.Physics.FallSpeed*c.Physics.MaxFrameDelta, c.Sprite.Size)
	check(c.Camera.FollowRate > 0 && c.Camera.FollowRate < 1, "camera.follow_rate must be in (0, 1), got %v", c.Camera.FollowRate)
	check(c.Camera.ReferenceFPS > 0, "camera.reference_fps must be positive, got %v", c.Camera.ReferenceFPS)
	check(c.Camera.TargetBand > 0 && c.Camera.TargetBand < 1, "camera.target_band must be in (0, 1), got %v", c.Camera.TargetBand)
	check(c.Render.CellWidth > 0, "render.cell_width must be positive, got %v", c.Render.CellWidth)
	check(c.Render.CellHeight > 0, "render.cell_height must be positive, got %v", c.Render.CellHeight)

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
}

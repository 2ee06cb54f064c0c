package config

import (
	_ "embed"
)

//go:embed defaults/catstack.yaml
var defaultYAML []byte

// DefaultConfig returns the hard-coded default configuration.
// It matches defaults/catstack.yaml and is used when the embed cannot be parsed.
func DefaultConfig() Config {
	return Config{
		Session: SessionConfig{
			Duration: 60,
		},
		Sprite: SpriteConfig{
			Size:   100,
			Count:  3,
			SpawnY: 50,
		},
		Physics: PhysicsConfig{
			HorizontalSpeed: 180,
			FallSpeed:       300,
			GroundHeight:    50,
			MaxFrameDelta:   0.25,
		},
		Camera: CameraConfig{
			FollowRate:   0.05,
			ReferenceFPS: 60,
			TargetBand:   0.5,
		},
		Render: RenderConfig{
			CellWidth:   10,
			CellHeight:  20,
			SkyColor:    "sky",
			GroundColor: "brown",
			PromptColor: "bright_white",
			Prompt:      "Press SPACE to start the game!",
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultYAML
}

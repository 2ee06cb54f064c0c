package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPreset is returned by ParsePreset for unrecognized names.
var ErrUnknownPreset = errors.New("unknown difficulty preset")

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset resolves a preset name. An empty name means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: %w %q (want easy, normal or hard)", ErrUnknownPreset, name)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Easy gives more time and a slower sweep; hard the opposite. Fall speed is
// left alone so the max_frame_delta bound keeps holding.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Session.Duration = cfg.Session.Duration * 3 / 2
		cfg.Physics.HorizontalSpeed *= 0.75
	case DifficultyHard:
		cfg.Session.Duration = cfg.Session.Duration * 3 / 4
		cfg.Physics.HorizontalSpeed *= 1.5
	}
}

package core

// RuntimeConfig contains host settings passed to the game at startup.
type RuntimeConfig struct {
	ScreenW  int   // Canvas width in characters
	ScreenH  int   // Canvas height in characters
	TickRate int   // Frame callbacks per second (default 60)
	Seed     int64 // RNG seed for sprite selection; 0 means time-based
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is a read-only summary of a session for hosts and tests.
type GameState struct {
	Active        bool // Whether a round is in progress
	Score         int  // Current score
	TimeRemaining int  // Seconds left in the round
	Stacked       int  // Number of landed sprites
	Falling       bool // Whether the current sprite is falling
}

package catstack

import "github.com/vovakirdan/stackcats/internal/core"

// FallingSprite is the sprite in flight. Exactly one exists per session; it
// is replaced by a new one when it lands.
type FallingSprite struct {
	X, Y    float64      // Top-left corner in world pixels
	Image   core.ImageID // Atlas entry drawn for this sprite
	Falling bool         // Dropping instead of sweeping
}

// Rect returns the collision rectangle for this sprite.
func (s FallingSprite) Rect(size float64) core.RectF {
	return core.NewRectF(s.X, s.Y, size, size)
}

// StackedSprite is an immutable snapshot of a sprite at the moment it landed.
type StackedSprite struct {
	X, Y  float64
	Image core.ImageID
}

// Rect returns the collision rectangle for this sprite.
func (s StackedSprite) Rect(size float64) core.RectF {
	return core.NewRectF(s.X, s.Y, size, size)
}

// snapshot freezes the falling sprite where it currently is.
func (s FallingSprite) snapshot() StackedSprite {
	return StackedSprite{X: s.X, Y: s.Y, Image: s.Image}
}

// CheckCollision reports whether two squares of side size overlap.
// Overlap is strict on all four edges: sprites that only touch do not collide.
func CheckCollision(falling FallingSprite, stacked StackedSprite, size float64) bool {
	return falling.Rect(size).Intersects(stacked.Rect(size))
}

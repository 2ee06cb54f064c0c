package catstack

import "math"

// Camera is the vertical scroll applied to everything drawn in world space.
// It only affects presentation and the waiting sprite's height, never
// collision math.
type Camera struct {
	offset       float64
	followRate   float64
	referenceFPS float64
}

// NewCamera creates a camera that closes followRate of the remaining gap per
// frame at referenceFPS.
func NewCamera(followRate, referenceFPS float64) Camera {
	return Camera{followRate: followRate, referenceFPS: referenceFPS}
}

// Offset returns the current scroll in pixels; positive moves the world down.
func (c *Camera) Offset() float64 {
	return c.offset
}

// Reset snaps the camera back to the ground.
func (c *Camera) Reset() {
	c.offset = 0
}

// Follow moves the offset toward target for a frame lasting dt seconds.
// The decay is exponential in dt, so the approach speed does not depend on
// the frame rate.
func (c *Camera) Follow(target, dt float64) {
	c.offset = smoothStep(c.offset, target, c.alpha(dt))
}

// alpha is the fraction of the gap closed in dt. It stays in [0, 1) for any
// finite dt, which rules out overshoot.
func (c *Camera) alpha(dt float64) float64 {
	if dt <= 0 {
		return 0
	}
	return 1 - math.Pow(1-c.followRate, dt*c.referenceFPS)
}

func smoothStep(offset, target, alpha float64) float64 {
	return offset + (target-offset)*alpha
}

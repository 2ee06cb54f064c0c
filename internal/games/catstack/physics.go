package catstack

import "math"

// update advances the current sprite by dt seconds.
func (g *Game) update(dt float64) {
	size := g.cfg.Sprite.Size

	if !g.current.Falling {
		g.current.X += g.cfg.Physics.HorizontalSpeed * dt
		// Re-enter from the left once fully past the right edge
		if g.current.X > g.width {
			g.current.X = -size
		}
		// Stay pinned to the top of the view while the camera moves
		g.current.Y = g.cfg.Sprite.SpawnY - g.camera.Offset()
		return
	}

	g.current.Y += g.cfg.Physics.FallSpeed * dt
	if g.settle() {
		g.land()
	}
}

// settle clamps the falling sprite onto the ground or the first stacked
// sprite it overlaps, in landing order. It reports whether it touched down.
func (g *Game) settle() bool {
	size := g.cfg.Sprite.Size
	landed := false

	if ground := g.groundLine(); g.current.Y+size >= ground {
		g.current.Y = ground - size
		landed = true
	}

	// First match wins, even if a later sprite in the stack sits higher.
	for _, s := range g.stack {
		if CheckCollision(g.current, s, size) {
			g.current.Y = s.Y - size
			landed = true
			break
		}
	}
	return landed
}

// land freezes the current sprite into the stack, updates the score and
// spawns the next sprite. The replacement is not falling, so a landing is
// processed exactly once.
func (g *Game) land() {
	size := g.cfg.Sprite.Size
	settled := g.current.snapshot()
	g.stack = append(g.stack, settled)

	height := g.height - (settled.Y + size)
	if levels := int(math.Floor(height / size)); levels > g.score {
		g.score = levels
	}
	g.display.SetScore(g.score)
	g.logger.Debug("sprite landed", "x", settled.X, "y", settled.Y, "stacked", len(g.stack), "score", g.score)

	g.current = g.spawn()
}

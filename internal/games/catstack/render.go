package catstack

// Render draws the current state onto dst. It never changes game state.
func (g *Game) Render(dst Surface) {
	offset := g.camera.Offset()
	size := g.cfg.Sprite.Size
	ground := g.cfg.Physics.GroundHeight

	dst.Clear()
	dst.Save()
	dst.Translate(0, offset)

	// Sky is pinned to the viewport, so undo the camera for it
	dst.FillRect(0, -offset, g.width, g.height, g.skyColor)
	dst.FillRect(0, g.height-ground, g.width, ground, g.groundColor)

	for _, s := range g.stack {
		dst.DrawImage(s.Image, s.X, s.Y, size, size)
	}
	dst.DrawImage(g.current.Image, g.current.X, g.current.Y, size, size)

	dst.Restore()

	if g.phase == PhaseIdle {
		dst.FillTextCentered(g.cfg.Render.Prompt, g.width/2, g.height/2, g.promptColor)
	}
}

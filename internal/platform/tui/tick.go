// Package tui hosts the game in a terminal with Bubble Tea.
// It owns the frame loop, the countdown timer, key input and the HUD.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg asks the model to advance and redraw one frame.
type FrameMsg time.Time

// countdownMsg is one second of the round countdown. gen identifies the
// arming that scheduled it.
type countdownMsg struct {
	gen int
}

// frameCmd returns a command that sends a FrameMsg at the given rate.
func frameCmd(fps int) tea.Cmd {
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// countdownCmd schedules the next countdown second for generation gen.
func countdownCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return countdownMsg{gen: gen}
	})
}

// countdown implements catstack.Countdown on top of tea.Tick. Bubble Tea
// cannot cancel a scheduled tick, so Disarm bumps the generation and stale
// messages are dropped when they arrive.
type countdown struct {
	gen     int
	armed   bool
	pending bool
}

func (c *countdown) Arm() {
	c.gen++
	c.armed = true
	c.pending = true
}

func (c *countdown) Disarm() {
	c.gen++
	c.armed = false
	c.pending = false
}

// start returns the first tick of a freshly armed countdown, or nil.
func (c *countdown) start() tea.Cmd {
	if !c.pending {
		return nil
	}
	c.pending = false
	return countdownCmd(c.gen)
}

// accepts reports whether msg belongs to the current arming.
func (c *countdown) accepts(msg countdownMsg) bool {
	return c.armed && msg.gen == c.gen
}

// next reschedules the countdown while it stays armed.
func (c *countdown) next() tea.Cmd {
	if !c.armed {
		return nil
	}
	return countdownCmd(c.gen)
}

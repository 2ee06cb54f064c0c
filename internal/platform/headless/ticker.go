package headless

import "time"

// Ticker delivers ticks on a channel. It is satisfied by time.Ticker through
// an adapter and by fakes in tests.
type Ticker interface {
	C() <-chan time.Time
	Reset(d time.Duration)
	Stop()
}

// TickerFunc creates a Ticker firing every d.
type TickerFunc func(d time.Duration) Ticker

// NewTicker wraps time.NewTicker.
func NewTicker(d time.Duration) Ticker {
	return stdTicker{t: time.NewTicker(d)}
}

type stdTicker struct {
	t *time.Ticker
}

func (s stdTicker) C() <-chan time.Time   { return s.t.C }
func (s stdTicker) Reset(d time.Duration) { s.t.Reset(d) }
func (s stdTicker) Stop()                 { s.t.Stop() }

// virtualClock is a clock advanced by the runner, one frame at a time.
type virtualClock struct {
	now time.Time
}

func (c *virtualClock) Now() time.Time { return c.now }

func (c *virtualClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

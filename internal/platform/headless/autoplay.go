package headless

import (
	"math/rand"

	"github.com/vovakirdan/stackcats/internal/games/catstack"
)

// Autoplayer presses the trigger on behalf of a player. It starts the first
// round at once, then drops each waiting sprite with a fixed chance per frame.
type Autoplayer struct {
	rng        *rand.Rand
	dropChance float64
	restart    bool
	started    bool
}

// NewAutoplayer creates an autoplayer. With restart set it starts a new
// round whenever the previous one ends.
func NewAutoplayer(seed int64, dropChance float64, restart bool) *Autoplayer {
	return &Autoplayer{
		rng:        rand.New(rand.NewSource(seed)),
		dropChance: dropChance,
		restart:    restart,
	}
}

// act triggers at most once and reports whether it did.
func (a *Autoplayer) act(g *catstack.Game) bool {
	if g.Phase() == catstack.PhaseIdle {
		if a.started && !a.restart {
			return false
		}
		a.started = true
		g.Trigger()
		return true
	}

	if g.Current().Falling {
		return false
	}
	if a.rng.Float64() < a.dropChance {
		g.Trigger()
		return true
	}
	return false
}

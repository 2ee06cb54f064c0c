// Package headless runs the game without a terminal, for autoplay
// simulations and tests.
package headless

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stackcats/internal/config"
	"github.com/vovakirdan/stackcats/internal/core"
	"github.com/vovakirdan/stackcats/internal/games/catstack"
)

// ErrUnbounded is returned when a simulated run has no frame limit.
var ErrUnbounded = errors.New("headless: simulated run needs a frame limit")

// Options configures a Runner.
type Options struct {
	Width, Height float64 // Viewport in pixels
	FPS           int     // Frame rate
	MaxFrames     int     // Stop after this many frames; 0 means no limit
	Seed          int64   // Sprite RNG seed; 0 means time-based

	// Realtime drives frames and the countdown from tickers. Otherwise a
	// virtual clock advances one frame interval per step as fast as possible.
	Realtime  bool
	NewTicker TickerFunc     // Ticker source for realtime runs
	Clock     catstack.Clock // Game clock for realtime runs
	Autoplay  *Autoplayer    // Optional simulated player
	Logger    *log.Logger
}

// DefaultOptions returns an 800x600 simulated run at 60 fps.
func DefaultOptions() Options {
	return Options{
		Width:  800,
		Height: 600,
		FPS:    60,
	}
}

// Result summarizes a finished run.
type Result struct {
	Frames int
	Scores []int // Final score of every completed round
	State  core.GameState
}

// Runner owns a game and drives it from a single goroutine.
type Runner struct {
	game   *catstack.Game
	opts   Options
	clock  *virtualClock
	timer  *countdown
	logger *log.Logger
	frames int
	scores []int
}

// New builds a runner and its game.
func New(cfg config.Config, images catstack.Images, opts Options) (*Runner, error) {
	if opts.FPS <= 0 {
		return nil, fmt.Errorf("headless: fps must be positive, got %d", opts.FPS)
	}
	if !opts.Realtime && opts.MaxFrames <= 0 {
		return nil, ErrUnbounded
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.NewTicker == nil {
		opts.NewTicker = NewTicker
	}

	r := &Runner{
		opts:   opts,
		logger: opts.Logger,
	}

	var clock catstack.Clock
	if opts.Realtime {
		clock = opts.Clock
		if clock == nil {
			clock = wallClock{}
		}
	} else {
		r.clock = &virtualClock{now: time.Unix(0, 0)}
		clock = r.clock
	}
	r.timer = &countdown{clock: clock}

	game, err := catstack.New(cfg, opts.Width, opts.Height, images,
		catstack.WithCountdown(r.timer),
		catstack.WithNotifier(r),
		catstack.WithClock(clock),
		catstack.WithLogger(opts.Logger.WithPrefix("catstack")),
		catstack.WithSeed(opts.Seed),
	)
	if err != nil {
		return nil, fmt.Errorf("headless: %w", err)
	}
	r.game = game
	return r, nil
}

// Game returns the driven game.
func (r *Runner) Game() *catstack.Game {
	return r.game
}

// RoundOver records the final score of a round.
func (r *Runner) RoundOver(finalScore int) {
	r.scores = append(r.scores, finalScore)
}

// Run drives the game until the frame limit is reached or ctx is done.
// Cancellation is reported as ctx.Err() alongside the partial result.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	r.logger.Info("run started", "fps", r.opts.FPS, "max_frames", r.opts.MaxFrames, "realtime", r.opts.Realtime)

	var err error
	if r.opts.Realtime {
		err = r.runRealtime(ctx)
	} else {
		err = r.runVirtual(ctx)
	}

	res := r.result()
	r.logger.Info("run finished", "frames", res.Frames, "rounds", len(res.Scores), "score", res.State.Score)
	return res, err
}

func (r *Runner) runVirtual(ctx context.Context) error {
	interval := r.frameInterval()
	for !r.done() {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.clock.advance(interval)
		now := r.clock.Now()
		if r.timer.due(now) {
			r.game.Tick()
		}
		r.step(now)
	}
	return nil
}

func (r *Runner) runRealtime(ctx context.Context) error {
	frames := r.opts.NewTicker(r.frameInterval())
	defer frames.Stop()
	seconds := r.opts.NewTicker(time.Second)
	defer seconds.Stop()
	r.timer.ticker = seconds

	for !r.done() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-frames.C():
			r.step(now)
		case <-seconds.C():
			if r.timer.armed {
				r.game.Tick()
			}
		}
	}
	return nil
}

// step runs one frame: player input first, then the frame callback.
func (r *Runner) step(now time.Time) {
	if r.opts.Autoplay != nil {
		r.opts.Autoplay.act(r.game)
	}
	r.game.Frame(now)
	r.frames++
}

func (r *Runner) done() bool {
	return r.opts.MaxFrames > 0 && r.frames >= r.opts.MaxFrames
}

func (r *Runner) frameInterval() time.Duration {
	return time.Second / time.Duration(r.opts.FPS)
}

func (r *Runner) result() Result {
	scores := make([]int, len(r.scores))
	copy(scores, r.scores)
	return Result{
		Frames: r.frames,
		Scores: scores,
		State:  r.game.State(),
	}
}

// countdown implements catstack.Countdown for both run modes. Simulated runs
// poll due with the virtual time; realtime runs restart the seconds ticker
// on Arm so the first second is a full one.
type countdown struct {
	clock  catstack.Clock
	ticker Ticker
	armed  bool
	next   time.Time
}

func (c *countdown) Arm() {
	c.armed = true
	c.next = c.clock.Now().Add(time.Second)
	if c.ticker != nil {
		c.ticker.Reset(time.Second)
	}
}

func (c *countdown) Disarm() {
	c.armed = false
}

// due reports whether a countdown second has elapsed by now.
func (c *countdown) due(now time.Time) bool {
	if !c.armed || now.Before(c.next) {
		return false
	}
	c.next = c.next.Add(time.Second)
	return true
}

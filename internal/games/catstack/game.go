// Package catstack implements Cat Stack: a sprite sweeps across the top of
// the viewport, drops on the trigger input and stacks on the sprites that
// landed before it. The score is the height of the tallest stack; a
// countdown bounds each round.
//
// Game is the whole simulation and render driver. It is not safe for
// concurrent use: hosts must call every method from a single goroutine.
package catstack

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stackcats/internal/config"
	"github.com/vovakirdan/stackcats/internal/core"
)

var (
	// ErrNoImages is returned by New when the image collaborator is empty.
	ErrNoImages = errors.New("catstack: no sprite images")
	// ErrTooFewImages is returned by New when the atlas holds fewer images
	// than sprite.count asks for.
	ErrTooFewImages = errors.New("catstack: atlas has fewer images than sprite.count")
)

// Phase is the session lifecycle state.
type Phase int

const (
	PhaseIdle   Phase = iota // Waiting for the trigger; prompt shown
	PhaseActive              // Round in progress
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseActive:
		return "Active"
	default:
		return "Unknown"
	}
}

// Surface is the 2D drawing target. Coordinates are viewport pixels.
type Surface interface {
	Clear()
	FillRect(x, y, w, h float64, color core.Color)
	DrawImage(id core.ImageID, x, y, w, h float64)
	FillTextCentered(text string, x, y float64, color core.Color)
	Save()
	Translate(dx, dy float64)
	Restore()
}

// Images is the sprite collaborator. The game picks among the first
// sprite.count of its Len() images.
type Images interface {
	Len() int
}

// Display receives the numeric readouts whenever they change.
type Display interface {
	SetTimeRemaining(seconds int)
	SetScore(score int)
}

// Countdown is the host's one-second interval timer.
type Countdown interface {
	Arm()
	Disarm()
}

// Notifier reports the end of a round to the player.
type Notifier interface {
	RoundOver(finalScore int)
}

// Clock is the high-resolution clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

type nopDisplay struct{}

func (nopDisplay) SetTimeRemaining(int) {}
func (nopDisplay) SetScore(int)         {}

type nopCountdown struct{}

func (nopCountdown) Arm()    {}
func (nopCountdown) Disarm() {}

type nopNotifier struct{}

func (nopNotifier) RoundOver(int) {}

// Option configures a Game.
type Option func(*Game)

// WithDisplay sets the readout collaborator.
func WithDisplay(d Display) Option {
	return func(g *Game) { g.display = d }
}

// WithCountdown sets the one-second timer collaborator.
func WithCountdown(c Countdown) Option {
	return func(g *Game) { g.countdown = c }
}

// WithNotifier sets the round-over collaborator.
func WithNotifier(n Notifier) Option {
	return func(g *Game) { g.notifier = n }
}

// WithClock sets the clock used for the frame baseline.
func WithClock(c Clock) Option {
	return func(g *Game) { g.clock = c }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// WithSeed seeds sprite selection. Zero keeps the time-based default.
func WithSeed(seed int64) Option {
	return func(g *Game) {
		if seed != 0 {
			g.rng = rand.New(rand.NewSource(seed))
		}
	}
}

// Game implements the Cat Stack session, physics, camera and rendering.
type Game struct {
	cfg    config.Config
	width  float64 // Viewport width in pixels
	height float64 // Viewport height in pixels

	display   Display
	countdown Countdown
	notifier  Notifier
	clock     Clock
	logger    *log.Logger
	rng       *rand.Rand

	skyColor    core.Color
	groundColor core.Color
	promptColor core.Color

	phase         Phase
	timeRemaining int
	score         int
	stack         []StackedSprite
	current       FallingSprite
	camera        Camera
	lastFrame     time.Time
}

// New creates a game for a viewport of width x height pixels. The viewport
// is fixed for the life of the game.
func New(cfg config.Config, width, height float64, images Images, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !core.Finite(width) || !core.Finite(height) || width <= 0 || height <= 0 {
		return nil, fmt.Errorf("catstack: invalid viewport %vx%v", width, height)
	}
	if images == nil || images.Len() == 0 {
		return nil, ErrNoImages
	}
	if n := images.Len(); n < cfg.Sprite.Count {
		return nil, fmt.Errorf("%w (%d < %d)", ErrTooFewImages, n, cfg.Sprite.Count)
	}

	g := &Game{
		cfg:           cfg,
		width:         width,
		height:        height,
		display:       nopDisplay{},
		countdown:     nopCountdown{},
		notifier:      nopNotifier{},
		clock:         systemClock{},
		logger:        log.New(io.Discard),
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
		skyColor:      core.ParseColor(cfg.Render.SkyColor),
		groundColor:   core.ParseColor(cfg.Render.GroundColor),
		promptColor:   core.ParseColor(cfg.Render.PromptColor),
		timeRemaining: cfg.Session.Duration,
		camera:        NewCamera(cfg.Camera.FollowRate, cfg.Camera.ReferenceFPS),
	}
	for _, opt := range opts {
		opt(g)
	}

	g.current = g.spawn()
	g.lastFrame = g.clock.Now()
	g.display.SetTimeRemaining(g.timeRemaining)
	g.display.SetScore(g.score)
	return g, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "catstack"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Cat Stack"
}

// Trigger handles the single player action: it starts a round when idle and
// drops the waiting sprite when active. Triggering a falling sprite does
// nothing.
func (g *Game) Trigger() {
	switch g.phase {
	case PhaseIdle:
		g.start()
	case PhaseActive:
		if !g.current.Falling {
			g.current.Falling = true
			g.logger.Debug("sprite dropped", "x", g.current.X)
		}
	}
}

// start resets the session and arms the countdown.
func (g *Game) start() {
	g.phase = PhaseActive
	g.score = 0
	g.stack = g.stack[:0]
	g.timeRemaining = g.cfg.Session.Duration
	g.camera.Reset()
	g.current = g.spawn()
	g.lastFrame = g.clock.Now()

	g.display.SetScore(g.score)
	g.display.SetTimeRemaining(g.timeRemaining)
	g.countdown.Arm()
	g.logger.Info("round started", "duration", g.timeRemaining)
}

// Tick is the one-second countdown callback. Ticks outside an active round
// are ignored, so a late timer can neither go negative nor revive a round.
func (g *Game) Tick() {
	if g.phase != PhaseActive || g.timeRemaining <= 0 {
		return
	}

	g.timeRemaining--
	g.display.SetTimeRemaining(g.timeRemaining)
	if g.timeRemaining > 0 {
		return
	}

	g.phase = PhaseIdle
	g.countdown.Disarm()
	g.logger.Info("round over", "score", g.score, "stacked", len(g.stack))
	g.notifier.RoundOver(g.score)
}

// Frame is the per-refresh callback. The camera follows the stack in every
// phase; physics only runs while a round is active.
func (g *Game) Frame(now time.Time) {
	dt := g.elapsed(now)
	g.camera.Follow(g.cameraTarget(), dt)
	if g.phase == PhaseActive {
		g.update(dt)
	}
}

// elapsed returns the sanitized seconds since the previous frame.
func (g *Game) elapsed(now time.Time) float64 {
	dt := now.Sub(g.lastFrame).Seconds()
	g.lastFrame = now
	return sanitizeDelta(dt, g.cfg.Physics.MaxFrameDelta)
}

// sanitizeDelta maps non-finite or negative deltas to zero and caps the rest.
func sanitizeDelta(dt, max float64) float64 {
	if !core.Finite(dt) || dt < 0 {
		return 0
	}
	if dt > max {
		return max
	}
	return dt
}

// cameraTarget is the scroll that puts the stack top on the target band, or
// zero while the stack is below it.
func (g *Game) cameraTarget() float64 {
	threshold := g.height - g.height*g.cfg.Camera.TargetBand
	if top := g.stackTop(); top < threshold {
		return threshold - top
	}
	return 0
}

// stackTop returns the smallest Y among stacked sprites, or the ground line.
func (g *Game) stackTop() float64 {
	if len(g.stack) == 0 {
		return g.groundLine()
	}
	top := g.stack[0].Y
	for _, s := range g.stack[1:] {
		if s.Y < top {
			top = s.Y
		}
	}
	return top
}

func (g *Game) groundLine() float64 {
	return g.height - g.cfg.Physics.GroundHeight
}

// spawn creates a waiting sprite at the left edge, adjusted for the camera.
func (g *Game) spawn() FallingSprite {
	return FallingSprite{
		X:     0,
		Y:     g.cfg.Sprite.SpawnY - g.camera.Offset(),
		Image: core.ImageID(g.rng.Intn(g.cfg.Sprite.Count)),
	}
}

// State returns a summary of the session.
func (g *Game) State() core.GameState {
	return core.GameState{
		Active:        g.phase == PhaseActive,
		Score:         g.score,
		TimeRemaining: g.timeRemaining,
		Stacked:       len(g.stack),
		Falling:       g.current.Falling,
	}
}

// Phase returns the lifecycle state.
func (g *Game) Phase() Phase {
	return g.phase
}

// Current returns the sprite in flight.
func (g *Game) Current() FallingSprite {
	return g.current
}

// Stack returns a copy of the landed sprites in landing order.
func (g *Game) Stack() []StackedSprite {
	out := make([]StackedSprite, len(g.stack))
	copy(out, g.stack)
	return out
}

// CameraOffset returns the current camera scroll.
func (g *Game) CameraOffset() float64 {
	return g.camera.Offset()
}

// Viewport returns the viewport size in pixels.
func (g *Game) Viewport() (w, h float64) {
	return g.width, g.height
}

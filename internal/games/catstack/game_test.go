package catstack

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/stackcats/internal/config"
	"github.com/vovakirdan/stackcats/internal/core"
)

const (
	testWidth  = 800.0
	testHeight = 600.0
	frame60    = time.Second / 60
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

type fakeImages int

func (n fakeImages) Len() int { return int(n) }

type recordingDisplay struct {
	times  []int
	scores []int
}

func (d *recordingDisplay) SetTimeRemaining(s int) { d.times = append(d.times, s) }
func (d *recordingDisplay) SetScore(s int)         { d.scores = append(d.scores, s) }

type recordingCountdown struct {
	armed, disarmed int
}

func (c *recordingCountdown) Arm()    { c.armed++ }
func (c *recordingCountdown) Disarm() { c.disarmed++ }

type recordingNotifier struct {
	finals []int
}

func (n *recordingNotifier) RoundOver(score int) { n.finals = append(n.finals, score) }

type harness struct {
	game      *Game
	clock     *fakeClock
	display   *recordingDisplay
	countdown *recordingCountdown
	notifier  *recordingNotifier
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		clock:     &fakeClock{now: time.Unix(1_700_000_000, 0)},
		display:   &recordingDisplay{},
		countdown: &recordingCountdown{},
		notifier:  &recordingNotifier{},
	}
	g, err := New(config.DefaultConfig(), testWidth, testHeight, fakeImages(3),
		WithClock(h.clock),
		WithDisplay(h.display),
		WithCountdown(h.countdown),
		WithNotifier(h.notifier),
		WithSeed(42),
	)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	h.game = g
	return h
}

// step advances the clock by d and runs one frame.
func (h *harness) step(d time.Duration) {
	h.clock.advance(d)
	h.game.Frame(h.clock.Now())
}

// dropAt moves the waiting sprite to x, drops it and runs frames until it lands.
func (h *harness) dropAt(t *testing.T, x float64) StackedSprite {
	t.Helper()
	before := len(h.game.stack)
	h.game.current.X = x
	h.game.Trigger()
	for i := 0; i < 1000; i++ {
		h.step(frame60)
		if len(h.game.stack) > before {
			return h.game.stack[len(h.game.stack)-1]
		}
	}
	t.Fatalf("sprite dropped at x=%v never landed", x)
	return StackedSprite{}
}

func TestNewValidates(t *testing.T) {
	bad := config.DefaultConfig()
	bad.Sprite.Size = 0

	tests := []struct {
		name   string
		cfg    config.Config
		w, h   float64
		images Images
	}{
		{"invalid config", bad, testWidth, testHeight, fakeImages(3)},
		{"zero viewport", config.DefaultConfig(), 0, testHeight, fakeImages(3)},
		{"NaN viewport", config.DefaultConfig(), testWidth, math.NaN(), fakeImages(3)},
		{"no images", config.DefaultConfig(), testWidth, testHeight, fakeImages(0)},
		{"nil images", config.DefaultConfig(), testWidth, testHeight, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.cfg, tc.w, tc.h, tc.images); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := New(config.DefaultConfig(), testWidth, testHeight, fakeImages(0)); !errors.Is(err, ErrNoImages) {
		t.Errorf("expected ErrNoImages, got %v", err)
	}
}

func TestNewRejectsTooFewImages(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Sprite.Count = 4
	if _, err := New(cfg, testWidth, testHeight, fakeImages(3)); !errors.Is(err, ErrTooFewImages) {
		t.Errorf("expected ErrTooFewImages, got %v", err)
	}
}

func TestSpriteCountLimitsImages(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Sprite.Count = 1
	g, err := New(cfg, testWidth, testHeight, fakeImages(3), WithSeed(5), WithClock(&fakeClock{}))
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 50; i++ {
		if img := g.spawn().Image; img != 0 {
			t.Fatalf("spawn %d picked image %d with sprite.count 1", i, img)
		}
	}

	cfg.Sprite.Count = 2
	g, err = New(cfg, testWidth, testHeight, fakeImages(3), WithSeed(5), WithClock(&fakeClock{}))
	if err != nil {
		t.Fatal(err)
	}
	seen := map[core.ImageID]bool{}
	for i := 0; i < 200; i++ {
		seen[g.spawn().Image] = true
	}
	if len(seen) != 2 || !seen[0] || !seen[1] {
		t.Errorf("sprite.count 2 should pick exactly images 0 and 1, got %v", seen)
	}
}

func TestNewGameIsIdle(t *testing.T) {
	h := newHarness(t)
	g := h.game

	if g.Phase() != PhaseIdle {
		t.Errorf("new game phase = %v, expected Idle", g.Phase())
	}
	state := g.State()
	if state.Active || state.Score != 0 || state.TimeRemaining != 60 || state.Stacked != 0 {
		t.Errorf("unexpected initial state %+v", state)
	}
	if g.ID() != "catstack" || g.Title() != "Cat Stack" {
		t.Errorf("ID/Title = %q/%q", g.ID(), g.Title())
	}
}

func TestTriggerStartsRound(t *testing.T) {
	h := newHarness(t)
	g := h.game

	// Leave some state behind to check it is reset
	g.score = 7
	g.stack = append(g.stack, StackedSprite{X: 10, Y: 450})
	g.camera.offset = 33

	g.Trigger()

	if g.Phase() != PhaseActive {
		t.Fatalf("phase = %v, expected Active", g.Phase())
	}
	if g.score != 0 || len(g.stack) != 0 || g.timeRemaining != 60 || g.CameraOffset() != 0 {
		t.Errorf("round not reset: score=%d stack=%d time=%d camera=%v",
			g.score, len(g.stack), g.timeRemaining, g.CameraOffset())
	}
	cur := g.Current()
	if cur.X != 0 || cur.Y != 50 || cur.Falling {
		t.Errorf("fresh sprite = %+v, expected at (0, 50) and not falling", cur)
	}
	if cur.Image < 0 || cur.Image >= 3 {
		t.Errorf("image %d out of atlas range", cur.Image)
	}
	if h.countdown.armed != 1 {
		t.Errorf("countdown armed %d times, expected 1", h.countdown.armed)
	}
	if last := h.display.times[len(h.display.times)-1]; last != 60 {
		t.Errorf("display time = %d, expected 60", last)
	}
	if last := h.display.scores[len(h.display.scores)-1]; last != 0 {
		t.Errorf("display score = %d, expected 0", last)
	}
}

func TestTriggerDropsSprite(t *testing.T) {
	h := newHarness(t)
	g := h.game
	g.Trigger()

	g.Trigger()
	if !g.Current().Falling {
		t.Fatal("second trigger should drop the sprite")
	}
	if g.Phase() != PhaseActive {
		t.Error("dropping should not change the phase")
	}
}

func TestTriggerWhileFallingIsNoop(t *testing.T) {
	h := newHarness(t)
	g := h.game
	g.Trigger()
	g.Trigger()
	h.step(frame60)

	cur, state, stack := g.Current(), g.State(), len(g.stack)
	armed := h.countdown.armed

	g.Trigger()

	if g.Current() != cur || g.State() != state || len(g.stack) != stack || h.countdown.armed != armed {
		t.Error("trigger while falling should not change any state")
	}
}

func TestHorizontalWrap(t *testing.T) {
	tests := []struct {
		name   string
		startX float64
		wantX  float64
	}{
		{"sweeps right", 0, 45},
		{"lands exactly on edge", 755, 800},
		{"passes edge", 756, -100},
		{"far past edge", 799, -100},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			h.game.Trigger()
			h.game.current.X = tc.startX

			h.step(250 * time.Millisecond) // 180 px/s * 0.25 s = 45 px

			if got := h.game.Current().X; got != tc.wantX {
				t.Errorf("X = %v, expected %v", got, tc.wantX)
			}
		})
	}
}

func TestWaitingSpriteFollowsCamera(t *testing.T) {
	h := newHarness(t)
	g := h.game
	g.Trigger()
	g.camera.offset = 120

	// Keep the camera target equal to the offset so it does not move
	g.stack = append(g.stack, StackedSprite{X: 600, Y: 300 - 120})
	h.step(frame60)

	if got := g.Current().Y; got != 50-120 {
		t.Errorf("waiting sprite Y = %v, expected %v", got, 50-120)
	}
}

func TestGroundClamp(t *testing.T) {
	h := newHarness(t)
	g := h.game
	g.Trigger()
	g.Trigger()
	g.current.Y = 440

	h.step(250 * time.Millisecond) // would reach 515, bottom 615 past the 550 ground line

	if len(g.stack) != 1 {
		t.Fatalf("stack size = %d, expected 1", len(g.stack))
	}
	if got := g.stack[0].Y + 100; got != 550 {
		t.Errorf("landed bottom edge = %v, expected exactly 550", got)
	}
	if g.Current().Falling {
		t.Error("replacement sprite should not be falling")
	}
}

func TestLandingIsExactlyOnce(t *testing.T) {
	h := newHarness(t)
	g := h.game
	g.Trigger()
	g.Trigger()

	landedAt := -1
	for i := 0; i < 300; i++ {
		before := len(g.stack)
		h.step(frame60)
		grew := len(g.stack) - before
		if grew > 1 {
			t.Fatalf("frame %d added %d sprites", i, grew)
		}
		if grew == 1 {
			if landedAt >= 0 {
				t.Fatalf("second landing at frame %d, first at %d", i, landedAt)
			}
			landedAt = i
		}
	}

	if landedAt < 0 {
		t.Fatal("sprite never landed")
	}
	if len(g.stack) != 1 {
		t.Errorf("stack size = %d, expected 1", len(g.stack))
	}
	if g.Current().Falling {
		t.Error("spawned sprite should wait for the trigger")
	}
}

func TestStackCollisionFirstMatchWins(t *testing.T) {
	h := newHarness(t)
	g := h.game
	g.Trigger()

	// Both stacked sprites overlap the landing spot; the lower one was stacked first.
	g.stack = append(g.stack,
		StackedSprite{X: 50, Y: 450},
		StackedSprite{X: 0, Y: 380},
	)
	g.current = FallingSprite{X: 0, Y: 370, Falling: true}

	h.step(100 * time.Millisecond) // falls 30 px to 400

	if len(g.stack) != 3 {
		t.Fatalf("stack size = %d, expected 3", len(g.stack))
	}
	if got := g.stack[2].Y; got != 350 {
		t.Errorf("landed Y = %v, expected 350 (on the first sprite in scan order)", got)
	}
}

func TestScoreFromStackHeight(t *testing.T) {
	h := newHarness(t)
	g := h.game
	g.Trigger()

	want := []int{0, 1, 2, 3, 4}
	for i, w := range want {
		s := h.dropAt(t, 0)
		if expectedY := 450 - 100*float64(i); s.Y != expectedY {
			t.Errorf("landing %d at Y=%v, expected %v", i, s.Y, expectedY)
		}
		if g.score != w {
			t.Errorf("after landing %d score = %d, expected %d", i, g.score, w)
		}
	}
}

func TestScoreNeverDecreases(t *testing.T) {
	h := newHarness(t)
	g := h.game
	g.Trigger()

	xs := []float64{0, 0, 0, 400, 650, 10, 400}
	prev := 0
	for i, x := range xs {
		h.dropAt(t, x)
		if g.score < prev {
			t.Fatalf("landing %d dropped score from %d to %d", i, prev, g.score)
		}
		prev = g.score
	}
	if g.score != 3 {
		t.Errorf("final score = %d, expected 3", g.score)
	}
	if last := h.display.scores[len(h.display.scores)-1]; last != g.score {
		t.Errorf("display score = %d, expected %d", last, g.score)
	}
}

func TestCheckCollision(t *testing.T) {
	const size = 100
	tests := []struct {
		name     string
		falling  FallingSprite
		stacked  StackedSprite
		expected bool
	}{
		{"clear overlap", FallingSprite{X: 20, Y: 400}, StackedSprite{X: 0, Y: 450}, true},
		{"clear separation", FallingSprite{X: 300, Y: 100}, StackedSprite{X: 0, Y: 450}, false},
		{"edge touch from above", FallingSprite{X: 0, Y: 350}, StackedSprite{X: 0, Y: 450}, false},
		{"edge touch from the side", FallingSprite{X: 100, Y: 450}, StackedSprite{X: 0, Y: 450}, false},
		{"corner overlap", FallingSprite{X: 99, Y: 351}, StackedSprite{X: 0, Y: 450}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CheckCollision(tc.falling, tc.stacked, size); got != tc.expected {
				t.Errorf("CheckCollision() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestSettledSpriteDoesNotRetrigger(t *testing.T) {
	h := newHarness(t)
	g := h.game
	g.Trigger()
	s := h.dropAt(t, 0)

	// A sprite resting exactly on top touches but does not overlap
	resting := FallingSprite{X: s.X, Y: s.Y - 100}
	if CheckCollision(resting, s, 100) {
		t.Error("sprite resting on the stack should not collide")
	}
}

func TestTimerTermination(t *testing.T) {
	h := newHarness(t)
	g := h.game
	g.Trigger()
	g.score = 5

	for i := 1; i < 60; i++ {
		g.Tick()
		if g.Phase() != PhaseActive {
			t.Fatalf("round ended early after %d ticks", i)
		}
	}
	if len(h.notifier.finals) != 0 {
		t.Fatal("round-over notified early")
	}

	g.Tick()
	if g.Phase() != PhaseIdle {
		t.Fatal("round should end after 60 ticks")
	}
	if g.timeRemaining != 0 {
		t.Errorf("time remaining = %d, expected 0", g.timeRemaining)
	}

	for i := 0; i < 5; i++ {
		g.Tick()
	}
	if g.timeRemaining != 0 {
		t.Errorf("late ticks changed time remaining to %d", g.timeRemaining)
	}
	if len(h.notifier.finals) != 1 || h.notifier.finals[0] != 5 {
		t.Errorf("round-over notifications = %v, expected [5]", h.notifier.finals)
	}
	if h.countdown.disarmed != 1 {
		t.Errorf("countdown disarmed %d times, expected 1", h.countdown.disarmed)
	}
	if last := h.display.times[len(h.display.times)-1]; last != 0 {
		t.Errorf("display time = %d, expected 0", last)
	}
}

func TestTickIgnoredWhenIdle(t *testing.T) {
	h := newHarness(t)
	h.game.Tick()
	if h.game.timeRemaining != 60 {
		t.Errorf("idle tick changed time to %d", h.game.timeRemaining)
	}
	if len(h.notifier.finals) != 0 {
		t.Error("idle tick should not notify")
	}
}

func TestPhysicsFrozenWhenIdle(t *testing.T) {
	h := newHarness(t)
	before := h.game.Current()
	h.step(100 * time.Millisecond)
	if h.game.Current() != before {
		t.Error("idle frames should not move the sprite")
	}
}

func TestRestartAfterRoundOver(t *testing.T) {
	h := newHarness(t)
	g := h.game
	g.Trigger()
	h.dropAt(t, 0)
	for i := 0; i < 60; i++ {
		g.Tick()
	}

	g.Trigger()

	if g.Phase() != PhaseActive || len(g.stack) != 0 || g.timeRemaining != 60 || g.score != 0 {
		t.Errorf("restart did not reset the round: %+v", g.State())
	}
	if h.countdown.armed != 2 {
		t.Errorf("countdown armed %d times, expected 2", h.countdown.armed)
	}
}

func TestFrameDelta(t *testing.T) {
	tests := []struct {
		name  string
		delta time.Duration
		wantX float64
	}{
		{"normal frame", 100 * time.Millisecond, 18},
		{"backwards clock", -time.Second, 0},
		{"suspended tab", 10 * time.Second, 45}, // clamped to 0.25 s
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			h.game.Trigger()
			h.step(tc.delta)
			if got := h.game.Current().X; math.Abs(got-tc.wantX) > 1e-9 {
				t.Errorf("X = %v, expected %v", got, tc.wantX)
			}
		})
	}
}

func TestSanitizeDelta(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.016, 0.016},
		{-0.5, 0},
		{math.NaN(), 0},
		{math.Inf(1), 0},
		{math.Inf(-1), 0},
		{3, 0.25},
	}
	for _, tc := range tests {
		if got := sanitizeDelta(tc.in, 0.25); got != tc.want {
			t.Errorf("sanitizeDelta(%v) = %v, expected %v", tc.in, got, tc.want)
		}
	}
}

func TestCameraFollowsTallStack(t *testing.T) {
	h := newHarness(t)
	g := h.game
	g.Trigger()

	for i := 0; i < 5; i++ {
		h.dropAt(t, 0)
	}
	// Stack top is at Y=50; the band sits at 300, so the target is 250
	if got := g.cameraTarget(); got != 250 {
		t.Fatalf("camera target = %v, expected 250", got)
	}

	for i := 0; i < 600; i++ {
		h.step(frame60)
		if g.CameraOffset() > 250 {
			t.Fatalf("camera overshot: %v", g.CameraOffset())
		}
	}
	if math.Abs(g.CameraOffset()-250) > 1e-3 {
		t.Errorf("camera offset = %v, expected ~250", g.CameraOffset())
	}
	if got := g.Current().Y; math.Abs(got-(50-g.CameraOffset())) > 1e-9 {
		t.Errorf("waiting sprite Y = %v, expected spawn adjusted by camera", got)
	}
}

func TestCameraTargetBelowBand(t *testing.T) {
	h := newHarness(t)
	g := h.game
	if got := g.cameraTarget(); got != 0 {
		t.Errorf("empty stack target = %v, expected 0", got)
	}
	g.stack = append(g.stack, StackedSprite{Y: 300})
	if got := g.cameraTarget(); got != 0 {
		t.Errorf("stack at band target = %v, expected 0", got)
	}
	g.stack = append(g.stack, StackedSprite{Y: 299})
	if got := g.cameraTarget(); got != 1 {
		t.Errorf("stack above band target = %v, expected 1", got)
	}
}

func TestSeedDeterminism(t *testing.T) {
	images := func(seed int64) []core.ImageID {
		g, err := New(config.DefaultConfig(), testWidth, testHeight, fakeImages(3), WithSeed(seed), WithClock(&fakeClock{}))
		if err != nil {
			t.Fatal(err)
		}
		var out []core.ImageID
		for i := 0; i < 20; i++ {
			g.Trigger()
			out = append(out, g.Current().Image)
			g.phase = PhaseIdle
		}
		return out
	}

	a, b := images(7), images(7)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("image sequences differ at %d: %v vs %v", i, a, b)
		}
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseIdle.String() != "Idle" || PhaseActive.String() != "Active" || Phase(9).String() != "Unknown" {
		t.Error("unexpected phase names")
	}
}

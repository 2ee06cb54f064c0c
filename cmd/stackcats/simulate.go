package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stackcats/internal/asset"
	"github.com/vovakirdan/stackcats/internal/platform/headless"
)

var (
	flagFrames     int
	flagDropChance float64
	flagRestart    bool
	flagRealtime   bool
	flagWidth      float64
	flagHeight     float64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless game with a simulated player",
	Long: `Run Stack Cats without a terminal UI.

A simulated player starts a round and drops each cat with a fixed chance
per frame. By default time is simulated and the run finishes as fast as the
machine allows; --realtime paces it with the wall clock.

Examples:
  stackcats simulate
  stackcats simulate --seed 42 --drop-chance 0.05
  stackcats simulate --frames 10800 --restart --log-level debug
  stackcats simulate --realtime --frames 600`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagFrames, "frames", 62*60, "Number of frames to run")
	simulateCmd.Flags().Float64Var(&flagDropChance, "drop-chance", 0.02, "Chance per frame that the player drops the waiting cat")
	simulateCmd.Flags().BoolVar(&flagRestart, "restart", false, "Start a new round whenever one ends")
	simulateCmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Pace the run with the wall clock")
	simulateCmd.Flags().Float64Var(&flagWidth, "width", 800, "Viewport width in pixels")
	simulateCmd.Flags().Float64Var(&flagHeight, "height", 600, "Viewport height in pixels")
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog() //nolint:errcheck // Best-effort close on exit

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	atlas, err := asset.Load()
	if err != nil {
		return fmt.Errorf("loading sprites: %w", err)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opts := headless.DefaultOptions()
	opts.Width = flagWidth
	opts.Height = flagHeight
	opts.FPS = flagFPS
	opts.MaxFrames = flagFrames
	opts.Seed = seed
	opts.Realtime = flagRealtime
	opts.Autoplay = headless.NewAutoplayer(seed, flagDropChance, flagRestart)
	opts.Logger = logger

	runner, err := headless.New(cfg, atlas, opts)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := runner.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Seed:     %d\n", seed)
	fmt.Fprintf(out, "Frames:   %d\n", res.Frames)
	fmt.Fprintf(out, "Rounds:   %d\n", len(res.Scores))
	for i, score := range res.Scores {
		fmt.Fprintf(out, "  round %d: score %d\n", i+1, score)
	}
	fmt.Fprintf(out, "Stacked:  %d\n", res.State.Stacked)
	fmt.Fprintf(out, "Score:    %d\n", res.State.Score)
	if res.State.Active {
		fmt.Fprintf(out, "Time:     %ds left (round in progress)\n", res.State.TimeRemaining)
	}
	return nil
}

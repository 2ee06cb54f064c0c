package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/stackcats/internal/asset"
	"github.com/vovakirdan/stackcats/internal/core"
	"github.com/vovakirdan/stackcats/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Stack Cats in the terminal",
	Long: `Play Stack Cats in the terminal.

The playfield is sized once from the terminal at startup.

Controls:
  Space      - Start a round / drop the cat
  Enter/Esc  - Dismiss the round-over message
  Q          - Quit

Examples:
  stackcats play
  stackcats play --fps 30
  stackcats play --difficulty easy --log-file stackcats.log --log-level debug`,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	// Logs go to a file or nowhere; stderr would corrupt the alt screen
	logger, closeLog, err := newLogger(io.Discard)
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

	rc := core.DefaultConfig()
	rc.TickRate = flagFPS
	rc.Seed = flagSeed
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}

	model, err := tui.NewModel(cfg, atlas, rc, logger)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("starting", "cols", rc.ScreenW, "rows", rc.ScreenH, "fps", rc.TickRate, "difficulty", flagDifficulty)
	if err := tui.Run(ctx, model); err != nil {
		logger.Error("program exited", "error", err)
		return err
	}
	logger.Info("bye", "score", model.Game().State().Score)
	return nil
}

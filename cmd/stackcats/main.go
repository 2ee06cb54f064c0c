// stackcats is a cat stacking arcade game for the terminal.
//
// Usage:
//
//	stackcats                  - Play (same as "stackcats play")
//	stackcats play             - Play in the terminal
//	stackcats simulate         - Run a headless autoplay round
//	stackcats defaults         - Print the default configuration
//
// Global flags:
//
//	--fps <rate>            - Set frame rate (default: 60)
//	--seed <value>          - Set RNG seed for reproducible sprite choice
//	--config <path>         - Use a specific config file
//	--difficulty <preset>   - easy, normal or hard
//	--log-file <path>       - Write logs to a file
//	--log-level <level>     - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stackcats/internal/core"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stackcats",
	Short: "Stack Cats - stack falling cats before time runs out",
	Long: `Stack Cats is a one-button arcade game for the terminal.

A cat sweeps across the top of the screen. Press space to drop it onto the
pile. The higher the pile when the minute is up, the better the score.

Available commands:
  play      - Play in the terminal (default)
  simulate  - Run a headless autoplay game
  defaults  - Print the default configuration

Examples:
  stackcats
  stackcats play --difficulty hard
  stackcats simulate --frames 3600 --seed 42
  stackcats defaults > ~/.stackcats/configs/catstack.yaml`,
	RunE:          runPlay,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", core.DefaultConfig().TickRate, "Frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file (default: search ~/.stackcats/configs, ./configs)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "normal", "Difficulty preset: easy, normal or hard")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (default: no logs while playing)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn or error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(defaultsCmd)
}

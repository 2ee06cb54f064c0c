package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/stackcats/internal/config"
)

var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the default configuration",
	Long: `Print the built-in configuration as YAML.

Save it as ~/.stackcats/configs/catstack.yaml or ./configs/catstack.yaml and
edit the values to tune the game.`,
	RunE: runDefaults,
}

func runDefaults(cmd *cobra.Command, _ []string) error {
	_, err := cmd.OutOrStdout().Write(config.DefaultYAML())
	return err
}

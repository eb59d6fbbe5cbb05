package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/config"
)

var flagFormat string

var configCmd = &cobra.Command{
	Use:   "config [mode]",
	Short: "Print the effective configuration",
	Long: `Print the configuration a run of the given mode would use: the first
config file found (or --config), with the mode preset applied.

The output is a valid config file, so it can be saved and edited.

Examples:
  runner config
  runner config hard --format toml > ~/.runner/configs/runner.toml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config (YAML or TOML)")
	configCmd.Flags().StringVar(&flagFormat, "format", "yaml", "Output format: yaml or toml")
}

func runConfig(_ *cobra.Command, args []string) error {
	mode := config.DifficultyNormal
	if len(args) > 0 {
		mode = config.ParsePreset(args[0])
		if mode == "" {
			return fmt.Errorf("unknown mode %q", args[0])
		}
	}

	cfg, err := config.LoadRunner(flagConfig)
	if err != nil {
		return err
	}
	config.ApplyPreset(&cfg, mode)

	data, err := config.Marshal(cfg, "."+flagFormat)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/games/runner"
	"github.com/vovakirdan/tui-runner/internal/platform/tui"
	"github.com/vovakirdan/tui-runner/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick modes interactively",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to start a run, Tab for the
best runs. After a run ends, you return to the menu.

Examples:
  runner menu
  runner menu --fps 30
  runner menu --db ./runs.db`,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config (YAML or TOML)")
	menuCmd.Flags().StringVar(&flagTelemetry, "telemetry", "", "Serve live run stats over WebSocket on this address")
	menuCmd.Flags().IntVar(&flagPublishEvery, "publish-every", 15, "Ticks between telemetry frames")
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(io.Discard, "runner")
	if err != nil {
		return err
	}
	defer closeLog()

	runner.SetConfigPath(flagConfig)
	runner.SetLogger(logger)

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	pub, stopTelemetry := startTelemetry(flagTelemetry, logger)
	defer stopTelemetry()

	cfg := terminalConfig()
	session := uuid.NewString()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return nil
		}

		game, err := registry.Create(menuResult.ModeID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating mode: %v\n", err)
			continue
		}

		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		opts := tui.Options{
			Store:        store,
			Publisher:    pub,
			PublishEvery: flagPublishEvery,
			Session:      session,
			Logger:       logger,
		}
		if err := tui.Run(game, opts, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}
}

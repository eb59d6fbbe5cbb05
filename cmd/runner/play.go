package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/games/runner"
	"github.com/vovakirdan/tui-runner/internal/platform/tui"
	"github.com/vovakirdan/tui-runner/internal/registry"
	"github.com/vovakirdan/tui-runner/internal/storage"
	"github.com/vovakirdan/tui-runner/internal/telemetry"
)

var (
	flagConfig       string
	flagDifficulty   string
	flagTelemetry    string
	flagPublishEvery int
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Start a run",
	Long: `Start a run in the given mode (default: normal).

Controls:
  D/Right    - Push forward
  A/Left     - Brake
  W/Up       - Steer to the far edge
  S/Down     - Steer to the near edge
  Space      - Jump (only right after touching the ground)
  P/Esc      - Pause
  R          - Restart (after game over)
  Q/Ctrl+C   - Quit

Modes:
  easy   - Laps grow the track by 5%
  normal - Laps grow the track by 10%
  hard   - Laps grow the track by 20%
  fixed  - Laps never grow the track

Examples:
  runner play
  runner play hard
  runner play --config ./my-runner.toml
  runner play --telemetry :8090 --publish-every 30`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config (YAML or TOML)")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Mode, same as the positional argument")
	playCmd.Flags().StringVar(&flagTelemetry, "telemetry", "", "Serve live run stats over WebSocket on this address")
	playCmd.Flags().IntVar(&flagPublishEvery, "publish-every", 15, "Ticks between telemetry frames")
}

// resolveMode picks the mode from the argument, the --difficulty flag or
// the default, and checks that it is registered.
func resolveMode(args []string) (string, error) {
	mode := string(config.DifficultyNormal)
	switch {
	case len(args) > 0:
		mode = args[0]
	case flagDifficulty != "":
		mode = flagDifficulty
	}
	if !registry.Exists(mode) {
		return "", fmt.Errorf("unknown mode %q, run 'runner list' to see available modes", mode)
	}
	return mode, nil
}

// terminalConfig builds the runtime config from the terminal size and
// global flags.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the run database, warning instead of failing.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run database: %v\n", err)
		logger.Warn("run database unavailable", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// startTelemetry serves a telemetry hub on addr until stop is called.
// An empty addr disables telemetry and returns a nil publisher.
func startTelemetry(addr string, logger *log.Logger) (pub tui.Publisher, stop func()) {
	if addr == "" {
		return nil, func() {}
	}
	hub := telemetry.NewHub(logger)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := hub.ListenAndServe(ctx, addr); err != nil {
			logger.Error("telemetry server stopped", "error", err)
		}
	}()
	logger.Info("telemetry listening", "address", addr, "path", telemetry.Path)
	return hub, func() {
		cancel()
		<-done
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	mode, err := resolveMode(args)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(io.Discard, "runner")
	if err != nil {
		return err
	}
	defer closeLog()

	runner.SetConfigPath(flagConfig)
	runner.SetLogger(logger)

	game, err := registry.Create(mode)
	if err != nil {
		return fmt.Errorf("creating mode: %w", err)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	pub, stopTelemetry := startTelemetry(flagTelemetry, logger)
	defer stopTelemetry()

	opts := tui.Options{
		Store:        store,
		Publisher:    pub,
		PublishEvery: flagPublishEvery,
		Session:      uuid.NewString(),
		Logger:       logger,
	}

	if err := tui.Run(game, opts, terminalConfig()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

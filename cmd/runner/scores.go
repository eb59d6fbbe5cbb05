package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/platform/tui"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

var (
	flagLimit int
	flagBoard bool
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show the best runs of a mode",
	Long: `Display the best runs of the given mode (default: normal), ranked by
final score.

Examples:
  runner scores
  runner scores hard --limit 25
  runner scores --board
  runner scores easy --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagBoard, "board", false, "Open the interactive board for every mode")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every run of the mode")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run database: %w", err)
	}
	defer store.Close()

	if flagBoard {
		cfg := terminalConfig()
		_, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	mode, err := resolveMode(args)
	if err != nil {
		return err
	}

	if flagClear {
		if err := store.ClearRuns(mode); err != nil {
			return err
		}
		fmt.Printf("Cleared all %s runs.\n", mode)
		return nil
	}

	runs, err := store.TopRuns(mode, flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Printf("Best runs - %s\n", config.PresetTitle(config.ParsePreset(mode)))
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'runner play %s' to set the first one!\n", mode)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %-8s  %-6s  %-4s  %-7s  %s\n",
		"Rank", "Final", "Donuts", "Distance", "Height", "Laps", "Cause", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-8s  %-6s  %-4s  %-7s  %s\n",
		"----", "-----", "------", "--------", "------", "----", "-----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-8d  %-6d  %-8.1f  %-6.2f  %-4d  %-7s  %s\n",
			i+1, r.FinalScore, r.Donuts, r.Distance, r.MaxHeight, r.Laps, r.Cause,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.ModeStats(mode)
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Runs: %d  Average: %.0f  Donuts: %d\n",
			stats.HighScore, stats.Runs, stats.AvgScore, stats.TotalDonuts)
	}
	return nil
}

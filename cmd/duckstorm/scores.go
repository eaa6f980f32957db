package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/duckstorm/internal/config"
	"github.com/vovakirdan/duckstorm/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show recorded runs",
	Long: `Display the best recorded runs, optionally for one difficulty.

Examples:
  duckstorm scores
  duckstorm scores hard
  duckstorm scores easy --limit 25
  duckstorm scores fixed --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the runs instead of showing them")
}

func runScores(_ *cobra.Command, args []string) error {
	mode := ""
	if len(args) == 1 {
		preset, err := config.ParsePreset(args[0])
		if err != nil {
			return err
		}
		mode = string(preset)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRuns(mode); err != nil {
			return err
		}
		fmt.Printf("Cleared runs for %s.\n", modeTitle(mode))
		return nil
	}

	runs, err := store.TopRuns(mode, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Printf("High Scores - %s\n\n", modeTitle(mode))
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'duckstorm play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-7s  %-5s  %-5s  %-6s  %s\n", "Rank", "Score", "Mode", "Level", "Kills", "Time", "Date")
	fmt.Printf("  %-4s  %-8s  %-7s  %-5s  %-5s  %-6s  %s\n", "----", "-----", "----", "-----", "-----", "----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-8d  %-7s  %-5d  %-5d  %-6s  %s\n",
			i+1, r.Score, r.Mode, r.Level, r.Kills,
			r.Duration.Round(1e9), r.CreatedAt.Format("2006-01-02 15:04"))
	}

	sum, err := store.Summarize(mode)
	if err == nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Best: %d  Average: %.0f  Kills: %d  Highest level: %d\n",
			sum.Runs, sum.HighScore, sum.AvgScore, sum.TotalKills, sum.MaxLevel)
	}
	return nil
}

func modeTitle(mode string) string {
	if mode == "" {
		return "all modes"
	}
	return mode
}

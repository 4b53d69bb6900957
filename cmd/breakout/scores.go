package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/registry"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores <variant>",
	Short: "Show the best runs for a variant",
	Long: `Display the best runs recorded for the specified variant.

Examples:
  breakout scores classic
  breakout scores daily --limit 25`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'breakout list' to see available variants.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	runs, err := store.TopRuns(gameID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	fmt.Printf("Best Runs - %s\n", game.Title())
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'breakout play %s' to set the first score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %-5s  %-8s  %-8s  %-12s  %s\n", "#", "Score", "Grade", "Lost", "Combo", "Player", "Date")
	fmt.Printf("  %-4s  %-10s  %-5s  %-8s  %-8s  %-12s  %s\n", "-", "-----", "-----", "----", "-----", "------", "----")
	for i, r := range runs {
		player := r.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-10d  %-5s  %-8d  %-8d  %-12s  %s\n",
			i+1, r.Score, r.Rank, r.Penalties, r.ComboMax, player, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Cleared: %d  Best: %d  Average: %.0f  Best combo: %d\n",
			stats.RunsCount, stats.Cleared, stats.HighScore, stats.AvgScore, stats.BestCombo)
	}
}

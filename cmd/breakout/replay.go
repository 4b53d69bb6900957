package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/breakout"
	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/replay"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var (
	flagReplayTicks  int
	flagReplayExpect string
	flagReplayVerify bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Re-simulate a saved run",
	Long: `Load a replay file, feed its inputs through a fresh simulation and
print how the run ended. The difficulty stored in the replay is used
unless --difficulty is given; the rest of the configuration must match
the one the run was played with.

Examples:
  breakout replay ./run.yaml
  breakout replay ./run.yaml --ticks 600
  breakout replay ./run.yaml --expect <digest>
  breakout replay ./run.yaml --verify`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().IntVar(&flagReplayTicks, "ticks", 0, "Stop after this many ticks (0 = whole run)")
	replayCmd.Flags().StringVar(&flagReplayExpect, "expect", "", "Fail unless the final state digest matches")
	replayCmd.Flags().BoolVar(&flagReplayVerify, "verify", false, "Compare with the run stored in the database")
}

func runReplay(_ *cobra.Command, args []string) {
	rec, err := replay.Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagDifficulty == "" && rec.Difficulty != "" {
		preset, presetErr := config.ParsePreset(rec.Difficulty)
		if presetErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", presetErr)
			os.Exit(1)
		}
		breakout.SetDifficultyPreset(preset)
	}

	cfg, err := breakout.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	out, err := breakout.Replay(rec, cfg, flagReplayTicks)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("replayed", "id", rec.ID, "recorded_ticks", rec.Ticks(), "ticks", out.Ticks)

	fmt.Printf("Run:      %s (%s)\n", rec.ID, rec.GameID)
	fmt.Printf("Seed:     %d\n", rec.Seed)
	printOutcome(os.Stdout, out, rec.TickRate)

	if flagReplayExpect != "" && flagReplayExpect != out.Digest {
		fmt.Fprintf(os.Stderr, "Digest mismatch: expected %s\n", flagReplayExpect)
		os.Exit(1)
	}

	if flagReplayVerify {
		verifyStoredRun(rec, out)
	}
}

// verifyStoredRun checks the replayed outcome against the database row
// written when the run finished.
func verifyStoredRun(rec replay.Recording, out breakout.Outcome) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	run, err := store.RunByID(rec.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if run == nil {
		fmt.Fprintf(os.Stderr, "Run %s is not in the database\n", rec.ID)
		os.Exit(1)
	}

	if run.Score != out.Scoring.Score || run.Ticks != out.Ticks || run.Cleared != out.Cleared {
		fmt.Fprintf(os.Stderr, "Stored run differs: score %d, ticks %d, cleared %v\n", run.Score, run.Ticks, run.Cleared)
		os.Exit(1)
	}
	fmt.Println("Stored run matches.")
}

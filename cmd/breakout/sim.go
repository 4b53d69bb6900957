package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/breakout"
	"github.com/vovakirdan/tui-breakout/internal/replay"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var (
	flagSimTicks   int
	flagSimVariant string
	flagSimSave    bool
	flagSimOut     string
	flagSimRecord  bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the autopilot without a terminal",
	Long: `Play one run with the built-in autopilot at full speed and print how
it ended. The run can be saved as a replay and stored in the database.

Examples:
  breakout sim --seed 42
  breakout sim --variant daily --ticks 60000
  breakout sim --seed 42 --save
  breakout sim --seed 42 --out ./run.yaml --record`,
	Run: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 36000, "Give up after this many ticks")
	simCmd.Flags().StringVar(&flagSimVariant, "variant", breakout.VariantClassic, "Variant whose seed rules apply")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Save the replay under ~/.arcade/replays")
	simCmd.Flags().StringVar(&flagSimOut, "out", "", "Save the replay to this file")
	simCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Store the run in the database")
}

func runSim(_ *cobra.Command, _ []string) {
	cfg, err := breakout.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	seed := flagSeed
	switch {
	case flagSimVariant == breakout.VariantDaily:
		seed = breakout.DailySeed(time.Now())
	case flagSimVariant != breakout.VariantClassic:
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", flagSimVariant)
		os.Exit(1)
	case seed == 0:
		seed = rand.Uint64()
	}

	tickRate := cfg.Sim.TickRate
	dt := 1 / float64(tickRate)
	state := breakout.New(seed, cfg, breakout.WithLogger(logger))
	pilot := breakout.NewAutopilot()
	rec := replay.NewRecorder(flagSimVariant, seed, tickRate, flagDifficulty)

	start := time.Now()
	for state.Ticks() < flagSimTicks {
		in := pilot.Input(state.Frame(1))
		rec.Add(in.PaddleDir, in.Serve)
		if !state.Update(dt, in) {
			break
		}
	}
	logger.Debug("simulation finished", "elapsed", time.Since(start), "ticks", state.Ticks())

	out := breakout.Outcome{
		Ticks:   state.Ticks(),
		Cleared: state.Cleared(),
		Scoring: state.Scoring(),
		Digest:  state.Digest(),
	}
	fmt.Printf("Seed:     %d\n", seed)
	printOutcome(os.Stdout, out, tickRate)

	recording := rec.Recording()
	path := flagSimOut
	if path == "" && flagSimSave {
		dir, dirErr := replay.DefaultDir()
		if dirErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", dirErr)
			os.Exit(1)
		}
		path = filepath.Join(dir, replay.FileName(recording))
	}
	if path != "" {
		if err := replay.Save(path, recording); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving replay: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Replay:   %s\n", path)
	}

	if flagSimRecord {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()

		_, err = store.SaveRun(storage.Run{
			RunID:     recording.ID,
			GameID:    flagSimVariant,
			Player:    "autopilot",
			Seed:      seed,
			Score:     out.Scoring.Score,
			Penalties: out.Scoring.Penalties,
			ComboMax:  out.Scoring.ComboMax,
			Rank:      out.Scoring.Rank().String(),
			Ticks:     out.Ticks,
			Cleared:   out.Cleared,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error storing run: %v\n", err)
			return
		}
		fmt.Printf("Run ID:   %s\n", recording.ID)
	}
}

// printOutcome writes a run summary; tickRate converts ticks to play time.
func printOutcome(w io.Writer, out breakout.Outcome, tickRate int) {
	played := time.Duration(float64(out.Ticks) / float64(tickRate) * float64(time.Second)).Round(time.Millisecond)
	fmt.Fprintf(w, "Ticks:    %d (%s)\n", out.Ticks, played)
	fmt.Fprintf(w, "Cleared:  %v\n", out.Cleared)
	fmt.Fprintf(w, "Score:    %d\n", out.Scoring.Score)
	fmt.Fprintf(w, "Lost:     %d\n", out.Scoring.Penalties)
	fmt.Fprintf(w, "Combo:    %d\n", out.Scoring.ComboMax)
	fmt.Fprintf(w, "Rank:     %s\n", out.Scoring.Rank())
	fmt.Fprintf(w, "Digest:   %s\n", out.Digest)
}

package main

import (
	"fmt"
	"os"
	"os/user"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/breakout"
	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/registry"
	"github.com/vovakirdan/tui-breakout/internal/replay"
)

var flagPickDifficulty bool

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the given variant (classic when omitted).

Controls:
  Left/Right/A/D - Move the paddle
  Space/Up       - Serve the ball
  P/Esc          - Pause
  R              - Restart (after the wall is cleared)
  Ctrl+S         - Save a screenshot
  Q/Ctrl+C       - Quit

Variants:
  classic - Wall from --seed, random when it is 0
  daily   - The same wall for everyone on a given UTC day

Difficulty options:
  easy   - Serve speed starts low and grows with the score
  normal - Start at 30% difficulty
  hard   - Start at 70% difficulty
  fixed  - No progression, the serve speed never changes

Finished runs are stored in the database and saved as replays
under ~/.arcade/replays.

Examples:
  breakout play
  breakout play daily
  breakout play --seed 42 --difficulty hard
  breakout play --pick-difficulty
  breakout play --config ./my-breakout.yaml`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{"terminal": "tui"},
	Run:         runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagPickDifficulty, "pick-difficulty", false, "Choose the difficulty from a menu before playing")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := breakout.VariantClassic
	if len(args) == 1 {
		gameID = args[0]
	}

	// Check if variant exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'breakout list' to see available variants.")
		os.Exit(1)
	}

	cfg, err := breakout.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	width, height := terminalSize()
	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: cfg.Sim.TickRate,
		Seed:     flagSeed,
	}

	if flagPickDifficulty {
		preset, ok, selErr := tui.RunDifficultySelector("Breakout", currentPreset(), runtime)
		if selErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
			os.Exit(1)
		}
		// User pressed back or quit
		if !ok {
			return
		}
		breakout.SetDifficultyPreset(preset)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	runErr := tui.Run(game, store, runtime, gameOptions(cfg))

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// currentPreset is the preset given on the command line, normal when unset.
func currentPreset() config.DifficultyPreset {
	if flagDifficulty == "" {
		return config.DifficultyNormal
	}
	return config.DifficultyPreset(flagDifficulty)
}

// gameOptions builds the presentation options for a local run.
func gameOptions(cfg config.BreakoutConfig) tui.Options {
	opts := tui.Options{
		FPS:    flagFPS,
		Hold:   time.Duration(cfg.Input.HoldMillis) * time.Millisecond,
		Player: playerName(),
		Logger: logger,
	}
	if dir, err := replay.DefaultDir(); err == nil {
		opts.ReplayDir = dir
	} else {
		logger.Warn("replays disabled", "err", err)
	}
	return opts
}

func playerName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}

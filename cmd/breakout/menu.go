package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/breakout"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a variant picker menu",
	Long: `Start breakout in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a variant, then pick
a difficulty. After a run you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select variant
  Tab          - Scoreboard
  Q            - Quit

Examples:
  breakout menu
  breakout menu --fps 30
  breakout menu --db ./scores.db`,
	Annotations: map[string]string{"terminal": "tui"},
	Run:         runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openStore()

	width, height := terminalSize()
	cfg := core.RuntimeConfig{
		ScreenW: width,
		ScreenH: height,
		Seed:    flagSeed,
	}
	preset := currentPreset()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		if menuResult.GameID == "" {
			break
		}

		picked, ok, selErr := tui.RunDifficultySelector("Breakout", preset, cfg)
		if selErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
			continue
		}
		// User pressed back
		if !ok {
			continue
		}
		preset = picked
		breakout.SetDifficultyPreset(preset)

		gameCfg, err := breakout.LoadConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			continue
		}
		cfg.TickRate = gameCfg.Sim.TickRate

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		if err := tui.Run(game, store, cfg, gameOptions(gameCfg)); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}

		// Only the first run uses --seed
		cfg.Seed = 0
	}

	if store != nil {
		store.Close()
	}
}

package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/breakout"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/geom"
)

var (
	flagLayoutWidth int
	flagLayoutDaily bool
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Print the wall generated for a seed",
	Long: `Generate a wall and print it, one text line per block row.
Breakable blocks are drawn with █, unbreakable ones with ▓.

Examples:
  breakout layout --seed 42
  breakout layout --daily
  breakout layout --seed 7 --width 120`,
	Run: runLayout,
}

func init() {
	layoutCmd.Flags().IntVar(&flagLayoutWidth, "width", 80, "Output width in characters")
	layoutCmd.Flags().BoolVar(&flagLayoutDaily, "daily", false, "Use today's daily seed")
}

func runLayout(_ *cobra.Command, _ []string) {
	cfg, err := breakout.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	seed := flagSeed
	switch {
	case flagLayoutDaily:
		seed = breakout.DailySeed(time.Now())
	case seed == 0:
		seed = rand.Uint64()
	}

	halfW := cfg.Arena.Width / 2
	arena := geom.NewRect(geom.P(-halfW, 0), geom.P(halfW, cfg.Arena.Height))
	blocks := breakout.GenerateLayout(seed, cfg.Level, arena)

	width := max(flagLayoutWidth, 10)
	screen := core.NewScreen(width, max(cfg.Level.Rows, 1))
	col := func(x float64) int {
		return int((x - arena.Mins.X) / arena.Width() * float64(width))
	}

	scoring, points := 0, 0
	for _, b := range blocks {
		row := int((arena.Maxs.Y - b.Rect.Center().Y) / cfg.Level.BlockHeight)
		ch := breakout.InvulnerableBlockChar
		if b.IsScoring() {
			ch = breakout.ScoringBlockChar
			scoring++
			points += b.Score
		}
		// Leave a gap at the right edge so neighbours stay distinguishable.
		from, to := col(b.Rect.Mins.X), max(col(b.Rect.Maxs.X)-1, col(b.Rect.Mins.X)+1)
		for x := from; x < to; x++ {
			screen.Set(x, row, ch)
		}
	}

	fmt.Printf("Seed: %d\n\n", seed)
	fmt.Println(screen.String())
	fmt.Println()
	fmt.Printf("Blocks: %d  Breakable: %d  Unbreakable: %d  Points: %d\n",
		len(blocks), scoring, len(blocks)-scoring, points)
}

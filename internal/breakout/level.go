package breakout

import (
	"math/rand/v2"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/geom"
)

// streamSalt is the PCG stream selector for the root generator. Changing it
// changes every generated wall.
const streamSalt = 0x9e3779b97f4a7c15

// seeds holds everything derived from a level seed.
type seeds struct {
	splits  *rand.Rand // Row splits are drawn from the root itself
	keep    uint64
	pickups uint64
}

func deriveSeeds(seed uint64) seeds {
	root := rand.New(rand.NewPCG(seed, streamSalt))
	s := seeds{splits: root}
	s.keep = root.Uint64()
	s.pickups = root.Uint64()
	return s
}

func bernoulli(r *rand.Rand, p float64) bool {
	return r.Float64() < p
}

// GenerateLayout builds the wall for seed inside arena.
//
// Each row is cut at split points: every interior candidate is kept with
// split_chance and the right edge always closes the row. Pieces wider than
// invulnerable_width units become inset invulnerable blocks; the rest are
// worth score_per_unit points and take one hit per unit of width. A second
// stream then drops each block with probability 1 - keep_chance.
//
// The top row slot is left empty. Identical seeds give identical walls.
func GenerateLayout(seed uint64, cfg config.LevelConfig, arena geom.Rect) []Block {
	return generate(deriveSeeds(seed), cfg, arena)
}

func generate(sd seeds, cfg config.LevelConfig, arena geom.Rect) []Block {
	lastSplit := int(arena.Width() / cfg.SplitStep)
	if lastSplit < 1 {
		return nil
	}

	rows := make([][]int, 0, max(cfg.Rows-1, 0))
	for range cfg.Rows - 1 {
		var cuts []int
		for i := 1; i < lastSplit; i++ {
			if bernoulli(sd.splits, cfg.SplitChance) {
				cuts = append(cuts, i)
			}
		}
		rows = append(rows, append(cuts, lastSplit))
	}

	keep := rand.New(rand.NewPCG(sd.keep, streamSalt))
	var blocks []Block
	for row, cuts := range rows {
		y0 := arena.Maxs.Y - float64(row+2)*cfg.BlockHeight
		y1 := y0 + cfg.BlockHeight

		left := 0
		for _, right := range cuts {
			x0 := arena.Mins.X + float64(left)*cfg.SplitStep
			x1 := arena.Mins.X + float64(right)*cfg.SplitStep
			r := geom.NewRect(geom.P(x0, y0), geom.P(x1, y1))
			w := right - left
			left = right

			if !bernoulli(keep, cfg.KeepChance) {
				continue
			}

			id := len(blocks)
			if w > cfg.InvulnerableWidth {
				blocks = append(blocks, NewInvulnerableBlock(id, r.Contract(cfg.InvulnerableInset)))
			} else {
				blocks = append(blocks, NewScoringBlock(id, r, w*cfg.ScorePerUnit, w))
			}
		}
	}
	return blocks
}

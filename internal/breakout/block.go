// Package breakout implements the breakout simulation: a paddle, a single
// swept ball and a seeded wall of blocks, driven one fixed tick at a time.
//
// World coordinates have y pointing up. The arena is centred on x=0 with the
// floor at y=0; the paddle's top face sits at a fixed height above it.
package breakout

import (
	"fmt"

	"github.com/vovakirdan/tui-breakout/internal/geom"
)

// BlockKind distinguishes blocks that can be destroyed from those that cannot.
type BlockKind int

const (
	BlockScoring      BlockKind = iota // Loses one hit point per hit
	BlockInvulnerable                  // Bounces the ball, never damaged
)

// String returns the kind name.
func (k BlockKind) String() string {
	switch k {
	case BlockScoring:
		return "scoring"
	case BlockInvulnerable:
		return "invulnerable"
	default:
		return "unknown"
	}
}

// Block is one brick of the wall. ID is stable for the lifetime of a level
// and is what collisions refer to, so removing a block never re-targets a
// later hit at its neighbour.
type Block struct {
	ID    int
	Rect  geom.Rect
	Kind  BlockKind
	Score int // Points awarded when broken
	HP    int // Hits left; zero for invulnerable blocks
}

// HitResult is what a block reports after absorbing a hit.
type HitResult int

const (
	HitInvulnerable HitResult = iota
	HitDamaged
	HitBroken
)

// String returns the result name.
func (h HitResult) String() string {
	switch h {
	case HitInvulnerable:
		return "invulnerable"
	case HitDamaged:
		return "damaged"
	case HitBroken:
		return "broken"
	default:
		return "unknown"
	}
}

// NewScoringBlock creates a destructible block. It panics when hp is not
// positive.
func NewScoringBlock(id int, r geom.Rect, score, hp int) Block {
	if hp <= 0 {
		panic(fmt.Sprintf("breakout: scoring block %d with hp %d", id, hp))
	}
	return Block{ID: id, Rect: r, Kind: BlockScoring, Score: score, HP: hp}
}

// NewInvulnerableBlock creates a block that never breaks.
func NewInvulnerableBlock(id int, r geom.Rect) Block {
	return Block{ID: id, Rect: r, Kind: BlockInvulnerable}
}

// IsScoring reports whether the block can be destroyed.
func (b Block) IsScoring() bool {
	return b.Kind == BlockScoring
}

// Hit absorbs one hit. A broken block also returns its score.
func (b *Block) Hit() (HitResult, int) {
	if b.Kind != BlockScoring {
		return HitInvulnerable, 0
	}
	b.HP--
	if b.HP == 0 {
		return HitBroken, b.Score
	}
	return HitDamaged, 0
}

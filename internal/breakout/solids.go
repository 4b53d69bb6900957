package breakout

import (
	"fmt"

	"github.com/vovakirdan/tui-breakout/internal/collide"
	"github.com/vovakirdan/tui-breakout/internal/geom"
)

// EntityKind routes a collision to its response.
type EntityKind int

const (
	EntityWalls EntityKind = iota
	EntityPaddle
	EntityBlock
)

// EntityID names a solid. Block is the block's stable ID and is zero for
// the other kinds.
type EntityID struct {
	Kind  EntityKind
	Block int
}

// String returns a short name for logs.
func (id EntityID) String() string {
	switch id.Kind {
	case EntityWalls:
		return "walls"
	case EntityPaddle:
		return "paddle"
	case EntityBlock:
		return fmt.Sprintf("block#%d", id.Block)
	default:
		return "unknown"
	}
}

// Solid is a collider tagged with the entity that owns it.
type Solid struct {
	Collider collide.Collider
	ID       EntityID
}

// Hit is a collision together with the entity that was hit.
type Hit struct {
	collide.Collision
	ID EntityID
}

// rebuildSolids assembles the collidable set for the ball from the live
// state. Every obstacle is grown by the ball rect so the ball sweeps as a
// point. Only the paddle's top face collides, so a ball that slipped past
// the paddle cannot be scooped back up from the side.
func (s *State) rebuildSolids() {
	s.solids = s.solids[:0]

	for _, b := range s.blocks {
		s.solids = append(s.solids, Solid{
			Collider: collide.FromRect(b.Rect.ExpandRect(s.ballRect), collide.Outside),
			ID:       EntityID{Kind: EntityBlock, Block: b.ID},
		})
	}

	s.solids = append(s.solids, Solid{
		Collider: collide.FromRect(s.arena.ExpandRect(s.ballRect), collide.Inside),
		ID:       EntityID{Kind: EntityWalls},
	})

	top := s.paddle.Rect().ExpandRect(s.ballRect).Side(geom.SideMaxY)
	s.solids = append(s.solids, Solid{
		Collider: collide.FromSegment(top),
		ID:       EntityID{Kind: EntityPaddle},
	})
}

// nearestHit returns the earliest collision of motion with any solid.
func nearestHit(solids []Solid, motion geom.Segment) (Hit, bool) {
	var (
		best  Hit
		found bool
	)
	for _, solid := range solids {
		c, ok := solid.Collider.IntersectWith(motion)
		if !ok {
			continue
		}
		if !found || c.Param < best.Param {
			best = Hit{Collision: c, ID: solid.ID}
			found = true
		}
	}
	return best, found
}

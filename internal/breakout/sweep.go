package breakout

import (
	"math"
	"slices"

	"github.com/vovakirdan/tui-breakout/internal/geom"
)

// budgetEpsilon is the smallest tick budget, in seconds, worth sweeping.
const budgetEpsilon = 1e-9

// updateBall sweeps the flying ball through dt seconds. The ball moves in
// straight sub-steps between collisions; each collision reflects the
// velocity and spends the fraction of the budget used to reach it.
func (s *State) updateBall(dt float64) {
	ball, ok := s.ball.Flying()
	if !ok {
		return
	}
	ball.PrevPos = ball.Pos

	remaining := dt
	for step := 0; remaining > budgetEpsilon; step++ {
		if step == s.cfg.Sim.MaxSubSteps {
			s.logger.Debug("sub-step limit reached", "tick", s.ticks, "dropped", remaining)
			return
		}

		s.rebuildSolids()
		motion := geom.NewSegment(ball.Pos, ball.Vel.Mul(remaining))

		hit, ok := nearestHit(s.solids, motion)
		if !ok {
			ball.Pos = motion.Destination()
			return
		}

		key := collisionKey{id: hit.ID, normal: hit.Normal}
		if ball.prevCollision != nil && *ball.prevCollision == key {
			ball.Pos = motion.Destination()
			return
		}

		ball.Vel = geom.Reflect(ball.Vel, hit.Normal)
		ball.Pos = hit.Point
		ball.prevCollision = &key

		if !s.respond(hit, ball) {
			return
		}
		remaining -= hit.Param * remaining
	}
}

// respond applies the side effects of hit. It returns false when the ball
// was lost and resolution must stop.
func (s *State) respond(hit Hit, ball *FlyingBall) bool {
	switch hit.ID.Kind {
	case EntityWalls:
		if hit.Normal.Y > 0 {
			s.scoring.HitFloor()
			s.ball.kill()
			s.logger.Debug("floor breach", "tick", s.ticks, "penalties", s.scoring.Penalties)
			return false
		}

	case EntityPaddle:
		s.scoring.HitPaddle()
		if math.Abs(s.paddle.Vel) > s.cfg.Paddle.SteerDeadzone {
			ball.Vel.X = math.Abs(ball.Vel.X) * geom.Sign(s.paddle.Vel)
		}

	case EntityBlock:
		i := slices.IndexFunc(s.blocks, func(b Block) bool { return b.ID == hit.ID.Block })
		if i < 0 {
			return true
		}
		switch result, points := s.blocks[i].Hit(); result {
		case HitBroken:
			broken := s.blocks[i]
			s.blocks = slices.Delete(s.blocks, i, i+1)
			s.scoring.BlockBroken(points)
			s.pickups.BlockBroken(broken)
			s.logger.Debug("block broken", "id", broken.ID, "points", points, "combo", s.scoring.ComboScore)
		case HitDamaged:
			s.scoring.BlockDamaged()
		}
	}
	return true
}

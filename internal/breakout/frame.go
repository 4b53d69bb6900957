package breakout

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
	"slices"

	"github.com/vovakirdan/tui-breakout/internal/geom"
)

// restingOffset is how far above the paddle a serving ball is drawn.
const restingOffset = 10

// Frame is a read-only picture of the session for presentation. Positions
// are interpolated between the previous and the current tick.
type Frame struct {
	Arena geom.Rect

	PaddleShape geom.Rect // Relative to PaddlePos
	PaddlePos   geom.Point

	BallShape geom.Rect // Relative to BallPos
	BallPos   geom.Point
	Serving   bool

	Blocks  []Block
	Pickups []Pickup
	Scoring Scoring
}

// Frame returns the state at alpha in [0, 1] between the last two ticks.
func (s *State) Frame(alpha float64) Frame {
	alpha = geom.Clamp(alpha, 0, 1)
	paddlePos := geom.P(geom.Lerp(s.paddle.PrevX, s.paddle.X, alpha), s.cfg.Paddle.Y)

	ballPos, flying := s.ball.position(alpha)
	if !flying {
		ballPos = paddlePos.Add(geom.V(0, restingOffset))
	}

	return Frame{
		Arena:       s.arena,
		PaddleShape: s.paddle.Shape(),
		PaddlePos:   paddlePos,
		BallShape:   s.ballRect,
		BallPos:     ballPos,
		Serving:     !flying,
		Blocks:      slices.Clone(s.blocks),
		Pickups:     s.pickups.Items(),
		Scoring:     s.scoring,
	}
}

// StateBytes serialises everything that evolves during play. Two sessions
// that produce the same bytes after every tick behaved identically.
func (s *State) StateBytes() []byte {
	var buf []byte
	put := func(vs ...float64) {
		for _, v := range vs {
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
		}
	}
	puti := func(vs ...int64) {
		for _, v := range vs {
			buf = binary.LittleEndian.AppendUint64(buf, uint64(v))
		}
	}

	puti(int64(s.ticks))
	put(s.paddle.X, s.paddle.PrevX, s.paddle.Vel)
	if f, ok := s.ball.Flying(); ok {
		puti(1)
		put(f.Pos.X, f.Pos.Y, f.Vel.X, f.Vel.Y)
	} else {
		puti(0)
	}
	for _, b := range s.blocks {
		puti(int64(b.ID), int64(b.HP))
	}
	for _, p := range s.pickups.items {
		puti(int64(p.Kind), int64(p.Amount))
		put(p.Pos.X, p.Pos.Y)
	}
	puti(s.scoring.Score, s.scoring.ComboScore, s.scoring.ComboMax, s.scoring.Penalties)
	put(s.scoring.ComboMultiplier)
	return buf
}

// Digest returns a hex SHA-256 of StateBytes.
func (s *State) Digest() string {
	sum := sha256.Sum256(s.StateBytes())
	return hex.EncodeToString(sum[:])
}

package breakout

import (
	"math"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/geom"
)

// restingSpeed is the paddle speed below which it is considered stopped.
const restingSpeed = 0.1

// Paddle is the player's bat. It moves along x only, with acceleration and
// linear drag.
type Paddle struct {
	X     float64
	PrevX float64 // X at the start of the last tick
	Vel   float64

	cfg   config.PaddleConfig
	shape geom.Rect // Relative to the centre of the top face
	bound float64   // Max |X|; the paddle may poke half its width out
}

func newPaddle(cfg config.PaddleConfig, arenaWidth float64) Paddle {
	half := cfg.Width / 2
	return Paddle{
		cfg:   cfg,
		shape: geom.NewRect(geom.P(-half, -cfg.Thickness), geom.P(half, 0)),
		bound: (arenaWidth - cfg.Width + half) / 2,
	}
}

// update advances the paddle by dt for an input direction in [-1, 1].
func (p *Paddle) update(dt, dir float64) {
	p.PrevX = p.X

	friction := p.Vel * p.cfg.Friction
	acc := dir*p.cfg.Acceleration - friction
	p.Vel = geom.Clamp(p.Vel+dt*acc, -p.cfg.MaxSpeed, p.cfg.MaxSpeed)

	old := p.X
	p.X = geom.Clamp(p.X+dt*p.Vel, -p.bound, p.bound)

	// Walls absorb the velocity that could not be spent.
	p.Vel = (p.X - old) / dt
	if math.Abs(p.Vel) < restingSpeed {
		p.Vel = 0
	}
}

// Pos returns the centre of the top face.
func (p Paddle) Pos() geom.Point {
	return geom.P(p.X, p.cfg.Y)
}

// Shape returns the paddle rect relative to Pos.
func (p Paddle) Shape() geom.Rect {
	return p.shape
}

// Rect returns the paddle rect in world coordinates.
func (p Paddle) Rect() geom.Rect {
	return p.shape.At(p.Pos())
}

// Bound returns the largest |X| the paddle can reach.
func (p Paddle) Bound() float64 {
	return p.bound
}

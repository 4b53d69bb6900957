package breakout

import "github.com/vovakirdan/tui-breakout/internal/geom"

// collisionKey identifies a surface: what was hit and from which side.
type collisionKey struct {
	id     EntityID
	normal geom.Vec
}

// FlyingBall is the state of a launched ball.
type FlyingBall struct {
	Pos     geom.Point
	PrevPos geom.Point // Position at the start of the last tick
	Vel     geom.Vec

	// Last surface hit. A contact point lies on the surface it came from,
	// so the next sweep may find it again at a tiny positive parameter.
	prevCollision *collisionKey
}

// Ball is either serving (resting on the paddle) or flying. The zero value
// is serving.
type Ball struct {
	flying *FlyingBall
}

// Flying returns the flight state, or false while serving.
func (b *Ball) Flying() (*FlyingBall, bool) {
	return b.flying, b.flying != nil
}

// Serving reports whether the ball is waiting on the paddle.
func (b *Ball) Serving() bool {
	return b.flying == nil
}

func (b *Ball) serve(pos geom.Point, vel geom.Vec) {
	b.flying = &FlyingBall{Pos: pos, PrevPos: pos, Vel: vel}
}

func (b *Ball) kill() {
	b.flying = nil
}

// position interpolates between the previous and current tick.
func (b *Ball) position(alpha float64) (geom.Point, bool) {
	f, ok := b.Flying()
	if !ok {
		return geom.Point{}, false
	}
	return geom.LerpPoint(f.PrevPos, f.Pos, alpha), true
}

package breakout

import "math"

// Autopilot steers the paddle under the ball. It is used for headless runs
// and tests; it is good but not perfect.
type Autopilot struct {
	// ServeDelay is the number of ticks to wait before serving.
	ServeDelay int
	// Slack is the distance from the ball at which the paddle stops
	// chasing it.
	Slack float64

	waited int
}

// NewAutopilot returns an autopilot with reasonable defaults.
func NewAutopilot() *Autopilot {
	return &Autopilot{ServeDelay: 30, Slack: 6}
}

// Input decides the next tick's input from the current frame.
func (a *Autopilot) Input(f Frame) Input {
	if f.Serving {
		a.waited++
		if a.waited < a.ServeDelay {
			return Input{}
		}
		a.waited = 0
		return Input{Serve: true}
	}

	// Aim slightly off centre so the ball leaves the paddle at an angle
	// instead of bouncing straight up forever.
	target := f.BallPos.X - math.Copysign(f.PaddleShape.Width()/8, f.BallPos.X)
	diff := target - f.PaddlePos.X
	switch {
	case diff > a.Slack:
		return Input{PaddleDir: 1}
	case diff < -a.Slack:
		return Input{PaddleDir: -1}
	default:
		return Input{}
	}
}

// Package tui provides the Bubble Tea integration for the breakout engine.
// It handles the terminal UI loop, input mapping, menus and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// frameMsg is sent once per displayed frame.
type frameMsg time.Time

// frameCmd returns a command that delivers the next frame message at fps.
// The simulation runs on its own fixed step; frames only drive it.
func frameCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 60
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// stepper runs a fixed-step simulation from wall-clock frames.
type stepper struct {
	step     time.Duration
	maxSteps int // Ticks allowed per frame before the backlog is dropped
	last     time.Time
	acc      time.Duration
}

func newStepper(tickRate int) stepper {
	return stepper{step: time.Second / time.Duration(tickRate), maxSteps: 8}
}

// advance returns how many ticks to simulate for a frame at now, and how
// far the display sits between the last two ticks.
func (s *stepper) advance(now time.Time) (ticks int, alpha float64) {
	if s.last.IsZero() {
		s.last = now
		return 0, 1
	}
	s.acc += now.Sub(s.last)
	s.last = now

	for s.acc >= s.step && ticks < s.maxSteps {
		s.acc -= s.step
		ticks++
	}
	if ticks == s.maxSteps {
		s.acc = 0
	}
	return ticks, float64(s.acc) / float64(s.step)
}

// reset forgets accumulated time, e.g. after a pause or restart.
func (s *stepper) reset() {
	s.last = time.Time{}
	s.acc = 0
}

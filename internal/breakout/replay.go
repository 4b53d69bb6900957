package breakout

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/replay"
)

// ErrBadRecording is returned for recordings that cannot be simulated.
var ErrBadRecording = errors.New("breakout: bad recording")

// Outcome is the result of re-simulating a recording.
type Outcome struct {
	Ticks   int
	Cleared bool
	Scoring Scoring
	Digest  string
}

// Replay feeds rec through a fresh session built from cfg and reports how it
// ended. Simulation stops when the level clears, the inputs run out, or
// maxTicks is reached (0 means no limit). cfg must be the configuration the
// run was recorded with, difficulty preset included.
func Replay(rec replay.Recording, cfg config.BreakoutConfig, maxTicks int) (Outcome, error) {
	if rec.Version != replay.SimulationVersion {
		return Outcome{}, fmt.Errorf("%w: recording has %d, want %d", replay.ErrVersionMismatch, rec.Version, replay.SimulationVersion)
	}
	if rec.TickRate <= 0 {
		return Outcome{}, fmt.Errorf("%w: tick rate %d", ErrBadRecording, rec.TickRate)
	}

	s := New(rec.Seed, cfg)
	dt := 1 / float64(rec.TickRate)
	rec.Each(func(dir int, serve bool) bool {
		if maxTicks > 0 && s.Ticks() >= maxTicks {
			return false
		}
		return s.Update(dt, Input{PaddleDir: dir, Serve: serve})
	})

	return Outcome{
		Ticks:   s.Ticks(),
		Cleared: s.Cleared(),
		Scoring: s.Scoring(),
		Digest:  s.Digest(),
	}, nil
}

// Package replay records the inputs of a run so it can be simulated again.
//
// A recording holds everything a compatible simulation needs to reproduce a
// run: the variant, the level seed, the tick rate and the per-tick input,
// run-length encoded. An executable can replay any recording with the same
// SimulationVersion.
package replay

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// SimulationVersion must change whenever a change to the engine makes old
// inputs produce a different run.
const SimulationVersion = 1

// ErrVersionMismatch is returned when loading a recording made by a
// different simulation.
var ErrVersionMismatch = errors.New("replay: simulation version mismatch")

// Span is a run of identical ticks.
type Span struct {
	Ticks int  `yaml:"n"`
	Dir   int  `yaml:"dir"`
	Serve bool `yaml:"serve,omitempty"`
}

// Recording is the full input history of one run.
type Recording struct {
	Version    int       `yaml:"version"`
	ID         uuid.UUID `yaml:"id"`
	GameID     string    `yaml:"game"`
	Seed       uint64    `yaml:"seed"`
	TickRate   int       `yaml:"tick_rate"`
	Difficulty string    `yaml:"difficulty,omitempty"`
	CreatedAt  time.Time `yaml:"created_at"`
	Inputs     []Span    `yaml:"inputs"`
}

// Ticks returns the number of recorded ticks.
func (r Recording) Ticks() int {
	n := 0
	for _, s := range r.Inputs {
		n += s.Ticks
	}
	return n
}

// Each calls fn once per recorded tick, in order. It stops early when fn
// returns false.
func (r Recording) Each(fn func(dir int, serve bool) bool) {
	for _, s := range r.Inputs {
		for range s.Ticks {
			if !fn(s.Dir, s.Serve) {
				return
			}
		}
	}
}

// Recorder builds a Recording one tick at a time.
type Recorder struct {
	rec Recording
}

// NewRecorder starts a recording with a fresh ID.
func NewRecorder(gameID string, seed uint64, tickRate int, difficulty string) *Recorder {
	return &Recorder{rec: Recording{
		Version:    SimulationVersion,
		ID:         uuid.New(),
		GameID:     gameID,
		Seed:       seed,
		TickRate:   tickRate,
		Difficulty: difficulty,
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
	}}
}

// Add appends one tick of input.
func (r *Recorder) Add(dir int, serve bool) {
	if n := len(r.rec.Inputs); n > 0 {
		last := &r.rec.Inputs[n-1]
		if last.Dir == dir && last.Serve == serve {
			last.Ticks++
			return
		}
	}
	r.rec.Inputs = append(r.rec.Inputs, Span{Ticks: 1, Dir: dir, Serve: serve})
}

// Recording returns a copy of what has been recorded so far.
func (r *Recorder) Recording() Recording {
	out := r.rec
	out.Inputs = slices.Clone(r.rec.Inputs)
	return out
}

// Save writes rec to path as YAML, creating parent directories.
func Save(path string, rec Recording) error {
	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("replay: cannot encode %s: %w", rec.ID, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("replay: cannot create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("replay: cannot write %s: %w", path, err)
	}
	return nil
}

// Load reads a recording written by Save.
func Load(path string) (Recording, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Recording{}, fmt.Errorf("replay: cannot read %s: %w", path, err)
	}
	var rec Recording
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return Recording{}, fmt.Errorf("replay: cannot decode %s: %w", path, err)
	}
	if rec.Version != SimulationVersion {
		return Recording{}, fmt.Errorf("%w: file has %d, want %d", ErrVersionMismatch, rec.Version, SimulationVersion)
	}
	return rec, nil
}

// DefaultDir returns ~/.arcade/replays.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("replay: cannot get home directory: %w", err)
	}
	return filepath.Join(home, ".arcade", "replays"), nil
}

// FileName returns the conventional file name for rec.
func FileName(rec Recording) string {
	return fmt.Sprintf("%s-%s.yaml", rec.GameID, rec.ID)
}

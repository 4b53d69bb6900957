package breakout

import (
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/geom"
)

// Input is the player's intent for one tick.
type Input struct {
	PaddleDir int  // -1 left, 0 none, +1 right; other values are clamped
	Serve     bool // Launch the ball if it is resting on the paddle
}

// Option configures a State.
type Option func(*State)

// WithLogger routes engine debug events to l.
func WithLogger(l *log.Logger) Option {
	return func(s *State) {
		if l != nil {
			s.logger = l
		}
	}
}

// State is one game session. It is not safe for concurrent use: Update and
// Frame must be called from the same goroutine.
type State struct {
	cfg        config.BreakoutConfig
	seed       uint64
	difficulty *config.DifficultyManager
	logger     *log.Logger

	arena    geom.Rect
	ballRect geom.Rect

	paddle  Paddle
	ball    Ball
	blocks  []Block
	pickups *Pickups
	scoring Scoring

	solids []Solid // Scratch, rebuilt for every sub-step

	ticks     int
	cleared   bool
	collected [PickupKindCount]int
}

// New creates a session whose wall and pickups are fully determined by seed
// and cfg. cfg is expected to be valid.
func New(seed uint64, cfg config.BreakoutConfig, opts ...Option) *State {
	halfW := cfg.Arena.Width / 2
	arena := geom.NewRect(geom.P(-halfW, 0), geom.P(halfW, cfg.Arena.Height))
	sd := deriveSeeds(seed)

	s := &State{
		cfg:        cfg,
		seed:       seed,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		logger:     log.New(io.Discard),
		arena:      arena,
		ballRect:   geom.CenteredRect(cfg.Ball.Size/2, cfg.Ball.Size/2),
		paddle:     newPaddle(cfg.Paddle, cfg.Arena.Width),
		blocks:     generate(sd, cfg.Level, arena),
		pickups:    NewPickups(sd.pickups, cfg.Pickups),
		scoring:    NewScoring(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.logger.Debug("level generated", "seed", seed, "blocks", len(s.blocks), "scoring", s.ScoringBlocks())
	return s
}

// Update advances the session by dt seconds. It returns false once the
// level is cleared; later calls do nothing.
func (s *State) Update(dt float64, in Input) bool {
	if s.cleared {
		return false
	}
	s.ticks++

	dir := geom.Clamp(float64(in.PaddleDir), -1, 1)
	s.paddle.update(dt, dir)

	for _, p := range s.pickups.Update(dt, s.paddle.Rect(), s.arena.Mins.Y) {
		s.collect(p)
	}

	if s.ball.Serving() {
		if in.Serve {
			s.serveBall()
		}
	} else {
		s.updateBall(dt)
	}

	if s.scoring.NoCombo() && s.ScoringBlocks() == 0 {
		s.cleared = true
		s.logger.Info("level cleared", "ticks", s.ticks, "score", s.scoring.Score, "rank", s.scoring.Rank())
	}
	return !s.cleared
}

func (s *State) serveBall() {
	pos := s.paddle.Pos().Add(geom.V(0, s.cfg.Ball.ServeLift))

	var xDir float64
	if math.Abs(s.paddle.Vel) > 0.01 {
		xDir = geom.Sign(s.paddle.Vel)
	}
	dir, _ := geom.V(s.cfg.Ball.ServeCosine*xDir, 1).Normalize()
	speed := s.difficulty.Speed(s.cfg.Ball.ServeSpeed, s.scoring.Score, s.ticks)

	s.ball.serve(pos, dir.Mul(speed))
	s.logger.Debug("serve", "tick", s.ticks, "x", pos.X, "speed", speed)
}

func (s *State) collect(p Pickup) {
	s.collected[p.Kind]++
	if p.Kind == PickupBonus {
		s.scoring.PickupBonus(p.Amount)
	}
	s.logger.Debug("pickup collected", "kind", p.Kind, "amount", p.Amount)
}

// ScoringBlocks counts destructible blocks still standing.
func (s *State) ScoringBlocks() int {
	n := 0
	for _, b := range s.blocks {
		if b.IsScoring() {
			n++
		}
	}
	return n
}

// Ticks returns the number of ticks simulated.
func (s *State) Ticks() int { return s.ticks }

// Cleared reports whether the level has been won.
func (s *State) Cleared() bool { return s.cleared }

// Scoring returns a copy of the current scoring.
func (s *State) Scoring() Scoring { return s.scoring }

// Seed returns the level seed.
func (s *State) Seed() uint64 { return s.seed }

// Collected returns how many pickups of kind k were caught.
func (s *State) Collected(k PickupKind) int {
	if k < 0 || k >= PickupKindCount {
		return 0
	}
	return s.collected[k]
}

// Paddle returns a copy of the paddle.
func (s *State) Paddle() Paddle { return s.paddle }

// Arena returns the playfield rect.
func (s *State) Arena() geom.Rect { return s.arena }

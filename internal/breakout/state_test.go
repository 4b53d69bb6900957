package breakout

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/geom"
)

const testDT = 1.0 / 120

func testConfig() config.BreakoutConfig {
	cfg := config.DefaultBreakoutConfig()
	cfg.Pickups.Enabled = false
	return cfg
}

// newTestState returns a session whose wall is replaced by blocks.
func newTestState(t *testing.T, blocks ...Block) *State {
	t.Helper()
	s := New(1, testConfig())
	s.blocks = blocks
	return s
}

// farBlock keeps a level from counting as cleared without getting in the way.
func farBlock(id int) Block {
	return NewScoringBlock(id, geom.NewRect(geom.P(-300, 570), geom.P(-285, 600)), 10, 1)
}

func run(s *State, ticks int, in Input) {
	for range ticks {
		s.Update(testDT, in)
	}
}

func flying(t *testing.T, s *State) *FlyingBall {
	t.Helper()
	f, ok := s.ball.Flying()
	if !ok {
		t.Fatal("ball should be flying")
	}
	return f
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPaddleAccelerates(t *testing.T) {
	s := newTestState(t, farBlock(0))
	s.Update(testDT, Input{PaddleDir: 1})

	p := s.Paddle()
	if !near(p.Vel, 50) {
		t.Errorf("Vel after one tick = %v, expected 50", p.Vel)
	}
	if !near(p.X, 50*testDT) {
		t.Errorf("X after one tick = %v, expected %v", p.X, 50*testDT)
	}
	if p.PrevX != 0 {
		t.Errorf("PrevX = %v, expected 0", p.PrevX)
	}
}

func TestPaddleClampsToBound(t *testing.T) {
	for _, dir := range []int{-1, 1} {
		s := newTestState(t, farBlock(0))
		maxSeen := 0.0
		for range 240 {
			s.Update(testDT, Input{PaddleDir: dir})
			maxSeen = max(maxSeen, math.Abs(s.Paddle().Vel))
		}

		p := s.Paddle()
		if p.Bound() != 280 {
			t.Fatalf("Bound = %v, expected 280", p.Bound())
		}
		if p.X != float64(dir)*280 {
			t.Errorf("dir %d: X = %v, expected %v", dir, p.X, float64(dir)*280)
		}
		if p.Vel != 0 {
			t.Errorf("dir %d: paddle pinned at the wall should have no velocity, got %v", dir, p.Vel)
		}
		if maxSeen > 600 {
			t.Errorf("dir %d: speed %v exceeded the limit", dir, maxSeen)
		}
	}
}

func TestPaddleOutOfRangeInputIsClamped(t *testing.T) {
	a := newTestState(t, farBlock(0))
	b := newTestState(t, farBlock(0))
	a.Update(testDT, Input{PaddleDir: 5})
	b.Update(testDT, Input{PaddleDir: 1})
	if a.Paddle() != b.Paddle() {
		t.Error("PaddleDir should be clamped to [-1, 1]")
	}
}

func TestPaddleFrictionStops(t *testing.T) {
	s := newTestState(t, farBlock(0))
	run(s, 30, Input{PaddleDir: 1})
	run(s, 400, Input{})

	p := s.Paddle()
	if p.Vel != 0 {
		t.Errorf("paddle should come to rest, Vel = %v", p.Vel)
	}
	if p.X != p.PrevX {
		t.Error("resting paddle should not move")
	}
	if p.X <= 0 || p.X >= 280 {
		t.Errorf("paddle should coast to a stop before the wall, X = %v", p.X)
	}
}

func TestServeStraightUp(t *testing.T) {
	s := newTestState(t, farBlock(0))
	s.Update(testDT, Input{Serve: true})

	f := flying(t, s)
	if f.Pos != geom.P(0, 48) {
		t.Errorf("serve position = %v, expected (0, 48)", f.Pos)
	}
	if f.Vel != geom.V(0, 400) {
		t.Errorf("serve velocity = %v, expected (0, 400)", f.Vel)
	}
}

func TestServeFollowsPaddleMotion(t *testing.T) {
	s := newTestState(t, farBlock(0))
	run(s, 5, Input{PaddleDir: -1})
	s.Update(testDT, Input{PaddleDir: -1, Serve: true})

	f := flying(t, s)
	if f.Vel.X >= 0 {
		t.Errorf("serving while moving left should send the ball left, vel = %v", f.Vel)
	}
	if !near(f.Vel.Len(), 400) {
		t.Errorf("serve speed = %v, expected 400", f.Vel.Len())
	}
	if !near(f.Vel.X/f.Vel.Y, -0.7) {
		t.Errorf("serve direction should be (-0.7, 1) normalised, got %v", f.Vel)
	}
}

func TestServeSpeedScalesWithDifficulty(t *testing.T) {
	cfg := testConfig()
	config.ApplyBreakoutPreset(&cfg, config.DifficultyHard)
	s := New(1, cfg)
	s.blocks = []Block{farBlock(0)}
	s.Update(testDT, Input{Serve: true})

	want := 400 * (1 + 0.7*cfg.Difficulty.Scaling.SpeedMultiplier)
	if got := flying(t, s).Vel.Len(); !near(got, want) {
		t.Errorf("hard serve speed = %v, expected %v", got, want)
	}
}

func TestFloorBreachKillsBall(t *testing.T) {
	s := newTestState(t, farBlock(0))
	s.scoring = Scoring{Score: 1000, ComboScore: 150, ComboMultiplier: 3}
	s.ball.serve(geom.P(0, 20), geom.V(0, -400))

	run(s, 10, Input{})

	if !s.ball.Serving() {
		t.Fatal("ball should be back on the paddle after a floor breach")
	}
	sc := s.Scoring()
	if sc.Score != 850 || sc.Penalties != 150 || sc.ComboScore != 0 {
		t.Errorf("floor breach scoring = %+v", sc)
	}
}

func TestPaddleBanksCombo(t *testing.T) {
	s := newTestState(t, farBlock(0))
	s.scoring.BlockBroken(40)
	s.ball.serve(geom.P(0, 100), geom.V(0, -400))

	run(s, 20, Input{})

	f := flying(t, s)
	if f.Vel.Y <= 0 {
		t.Errorf("ball should bounce up off the paddle, vel = %v", f.Vel)
	}
	if sc := s.Scoring(); sc.Score != 40 || sc.ComboScore != 0 {
		t.Errorf("paddle should bank the combo, got %+v", sc)
	}
}

func TestMovingPaddleSteersBall(t *testing.T) {
	s := newTestState(t, farBlock(0))
	s.ball.serve(geom.P(10, 50), geom.V(-100, -400))

	run(s, 3, Input{PaddleDir: 1})

	f := flying(t, s)
	if f.Vel.X != 100 || f.Vel.Y != 400 {
		t.Errorf("ball should leave a right-moving paddle to the right, vel = %v", f.Vel)
	}
}

func TestPaddleOnlyCatchesFromAbove(t *testing.T) {
	s := newTestState(t, farBlock(0))
	s.ball.serve(geom.P(0, 20), geom.V(0, 400))

	run(s, 10, Input{})

	if f := flying(t, s); f.Vel.Y <= 0 {
		t.Error("ball rising through the paddle from below should not bounce")
	}
	if s.Scoring().Score != 0 {
		t.Error("passing through the paddle should not score")
	}
}

func TestWallBounce(t *testing.T) {
	s := newTestState(t, farBlock(0))
	s.ball.serve(geom.P(290, 300), geom.V(400, 0))

	run(s, 10, Input{})

	f := flying(t, s)
	if f.Vel != geom.V(-400, 0) {
		t.Errorf("ball should bounce off the right wall, vel = %v", f.Vel)
	}
	if f.Pos.X > 306 {
		t.Errorf("ball escaped the arena, x = %v", f.Pos.X)
	}
}

func TestBlockBreakAndDamage(t *testing.T) {
	target := NewScoringBlock(4, geom.NewRect(geom.P(-15, 200), geom.P(15, 230)), 20, 2)
	s := newTestState(t, target, farBlock(9))
	s.ball.serve(geom.P(0, 150), geom.V(0, 400))

	run(s, 20, Input{})

	if len(s.blocks) != 2 || s.blocks[0].HP != 1 {
		t.Fatalf("first hit should damage the block, blocks = %+v", s.blocks)
	}
	if sc := s.Scoring(); !near(sc.ComboMultiplier, 1.1) || sc.ComboScore != 0 {
		t.Errorf("damage should raise the multiplier only, got %+v", sc)
	}
	if flying(t, s).Vel.Y >= 0 {
		t.Error("ball should bounce down off the block")
	}

	// Send it back up for the second hit.
	s.ball.serve(geom.P(0, 150), geom.V(0, 400))
	run(s, 20, Input{})

	if len(s.blocks) != 1 || s.blocks[0].ID != 9 {
		t.Fatalf("second hit should remove block 4 only, blocks = %+v", s.blocks)
	}
	if sc := s.Scoring(); sc.ComboScore != 22 || !near(sc.ComboMultiplier, 2.1) {
		t.Errorf("break should add round(1.1*20) to the pot, got %+v", sc)
	}
}

func TestInvulnerableBlockBounces(t *testing.T) {
	wall := NewInvulnerableBlock(0, geom.NewRect(geom.P(-150, 200), geom.P(150, 214)))
	s := newTestState(t, wall, farBlock(1))
	s.ball.serve(geom.P(0, 150), geom.V(0, 400))

	run(s, 20, Input{})

	if len(s.blocks) != 2 {
		t.Error("invulnerable block must survive")
	}
	if flying(t, s).Vel.Y >= 0 {
		t.Error("ball should bounce off the invulnerable block")
	}
	if sc := s.Scoring(); sc != NewScoring() {
		t.Errorf("invulnerable hit should not score, got %+v", sc)
	}
}

func TestLevelClearedAfterBanking(t *testing.T) {
	last := NewScoringBlock(0, geom.NewRect(geom.P(-15, 200), geom.P(15, 230)), 10, 1)
	s := newTestState(t, last)
	s.ball.serve(geom.P(0, 150), geom.V(0, 400))

	broken := false
	for range 200 {
		if !s.Update(testDT, Input{}) {
			break
		}
		if !broken && len(s.blocks) == 0 {
			broken = true
			if s.Cleared() {
				t.Fatal("level must not clear while the combo is in flight")
			}
		}
	}

	if !s.Cleared() {
		t.Fatal("level should clear once the last combo is banked")
	}
	if s.Scoring().Score != 10 {
		t.Errorf("Score = %d, expected 10", s.Scoring().Score)
	}

	ticks := s.Ticks()
	if s.Update(testDT, Input{PaddleDir: 1}) {
		t.Error("Update should keep returning false after clearing")
	}
	if s.Ticks() != ticks {
		t.Error("a cleared level should not simulate")
	}
}

func TestEmptyWallClearsImmediately(t *testing.T) {
	cfg := testConfig()
	cfg.Level.KeepChance = 0
	s := New(1, cfg)
	if s.Update(testDT, Input{}) {
		t.Error("a wall with no scoring blocks is already cleared")
	}
}

func TestSubStepLimitDropsRemainingTime(t *testing.T) {
	cfg := testConfig()
	cfg.Sim.MaxSubSteps = 1
	s := New(1, cfg)
	s.blocks = []Block{farBlock(0)}
	s.ball.serve(geom.P(300, 300), geom.V(4000, 0))

	s.Update(testDT, Input{})

	f := flying(t, s)
	if math.Abs(f.Pos.X-306) > 1e-6 {
		t.Errorf("ball should stop at the wall contact, x = %v", f.Pos.X)
	}
	if f.Vel.X != -4000 {
		t.Errorf("ball should be reflected, vel = %v", f.Vel)
	}
}

func TestRepeatedSurfaceIsIgnored(t *testing.T) {
	s := newTestState(t, farBlock(0))
	s.ball.serve(geom.P(305, 300), geom.V(400, 0))
	f := flying(t, s)
	f.prevCollision = &collisionKey{id: EntityID{Kind: EntityWalls}, normal: geom.V(-1, 0)}

	s.Update(testDT, Input{})

	if f.Vel != geom.V(400, 0) {
		t.Errorf("hit on the same surface should be ignored, vel = %v", f.Vel)
	}
	if !near(f.Pos.X, 305+400*testDT) {
		t.Errorf("ball should travel the full tick, x = %v", f.Pos.X)
	}
}

func TestSweepTerminatesInCorner(t *testing.T) {
	s := newTestState(t, farBlock(0))
	s.ball.serve(geom.P(300, 590), geom.V(5000, 5000))
	bounds := s.Arena().ExpandRect(s.ballRect).Expand(1e-6)

	for i := range 100 {
		s.Update(testDT, Input{})
		f, ok := s.ball.Flying()
		if !ok {
			return
		}
		if !bounds.Contains(f.Pos) {
			t.Fatalf("tick %d: ball left the arena at %v", i, f.Pos)
		}
	}
}

func TestFrameInterpolation(t *testing.T) {
	s := newTestState(t, farBlock(0))

	fr := s.Frame(0.5)
	if !fr.Serving || fr.BallPos != geom.P(0, 50) {
		t.Errorf("serving ball should rest above the paddle, got %v", fr.BallPos)
	}

	s.Update(testDT, Input{Serve: true})
	s.Update(testDT, Input{PaddleDir: 1})

	f := flying(t, s)
	p := s.Paddle()
	if got := s.Frame(0).BallPos; got != f.PrevPos {
		t.Errorf("Frame(0) ball = %v, expected %v", got, f.PrevPos)
	}
	if got := s.Frame(1).BallPos; !near(got.X, f.Pos.X) || !near(got.Y, f.Pos.Y) {
		t.Errorf("Frame(1) ball = %v, expected %v", got, f.Pos)
	}
	mid := s.Frame(0.5)
	if !near(mid.BallPos.Y, (f.PrevPos.Y+f.Pos.Y)/2) {
		t.Errorf("Frame(0.5) ball y = %v", mid.BallPos.Y)
	}
	if !near(mid.PaddlePos.X, (p.PrevX+p.X)/2) {
		t.Errorf("Frame(0.5) paddle x = %v", mid.PaddlePos.X)
	}
}

func TestFrameIsReadOnly(t *testing.T) {
	s := newTestState(t, farBlock(0))
	fr := s.Frame(1)
	fr.Blocks[0].HP = 99
	if s.blocks[0].HP != 1 {
		t.Error("Frame should not expose the live block slice")
	}
}

func TestStateDeterminism(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	a := New(2024, cfg)
	b := New(2024, cfg)
	pa, pb := NewAutopilot(), NewAutopilot()

	for i := range 3000 {
		ca := a.Update(testDT, pa.Input(a.Frame(1)))
		cb := b.Update(testDT, pb.Input(b.Frame(1)))
		if ca != cb {
			t.Fatalf("tick %d: sessions disagree on continuing", i)
		}
		if a.Digest() != b.Digest() {
			t.Fatalf("tick %d: digests differ", i)
		}
		if !ca {
			break
		}
	}
	if a.Ticks() == 0 {
		t.Error("no ticks simulated")
	}
}

func TestAutopilotScores(t *testing.T) {
	s := New(5, config.DefaultBreakoutConfig())
	pilot := NewAutopilot()
	for range 120 * 60 {
		if !s.Update(testDT, pilot.Input(s.Frame(1))) {
			break
		}
	}
	if s.Scoring().Score+s.Scoring().Penalties == 0 && s.Scoring().ComboScore == 0 {
		t.Error("a minute of autopilot should break something")
	}
}

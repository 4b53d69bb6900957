// Package config provides YAML-based configuration for the breakout engine
// and the difficulty progression that scales it during play.
package config

import (
	"errors"
	"fmt"
)

// BreakoutConfig contains every tunable of the simulation.
// World units are arbitrary "pixels" with y pointing up; speeds are per second.
type BreakoutConfig struct {
	Arena      ArenaConfig      `yaml:"arena"`
	Paddle     PaddleConfig     `yaml:"paddle"`
	Ball       BallConfig       `yaml:"ball"`
	Level      LevelConfig      `yaml:"level"`
	Pickups    PickupConfig     `yaml:"pickups"`
	Sim        SimConfig        `yaml:"sim"`
	Input      InputConfig      `yaml:"input"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// ArenaConfig defines the playfield. The floor sits at y=0 and the field is
// centred on x=0.
type ArenaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PaddleConfig defines paddle geometry and kinematics.
type PaddleConfig struct {
	Y             float64 `yaml:"y"`              // Height of the paddle's top face
	Width         float64 `yaml:"width"`          // Full width
	Thickness     float64 `yaml:"thickness"`      // Depth below the top face
	MaxSpeed      float64 `yaml:"max_speed"`      // Velocity clamp
	Acceleration  float64 `yaml:"acceleration"`   // Applied per unit of input direction
	Friction      float64 `yaml:"friction"`       // Linear drag coefficient
	SteerDeadzone float64 `yaml:"steer_deadzone"` // Min paddle speed that steers the ball
}

// BallConfig defines ball size and serve behaviour.
type BallConfig struct {
	Size        float64 `yaml:"size"`         // Edge length of the square ball
	ServeSpeed  float64 `yaml:"serve_speed"`  // Launch speed before difficulty scaling
	ServeCosine float64 `yaml:"serve_cosine"` // Horizontal share of the serve direction
	ServeLift   float64 `yaml:"serve_lift"`   // Launch height above the paddle
}

// LevelConfig drives seeded wall generation.
type LevelConfig struct {
	Rows              int     `yaml:"rows"`               // Row slots; row 0 is left empty
	BlockHeight       float64 `yaml:"block_height"`       // Height of one row
	SplitStep         float64 `yaml:"split_step"`         // Width of one split unit
	SplitChance       float64 `yaml:"split_chance"`       // Bernoulli p per split candidate
	KeepChance        float64 `yaml:"keep_chance"`        // Bernoulli p per generated block
	InvulnerableWidth int     `yaml:"invulnerable_width"` // Blocks wider than this never break
	InvulnerableInset float64 `yaml:"invulnerable_inset"` // Shrink applied to unbreakable blocks
	ScorePerUnit      int     `yaml:"score_per_unit"`     // Points per split unit of width
}

// PickupConfig defines the falling pickup side channel.
type PickupConfig struct {
	Enabled     bool    `yaml:"enabled"`
	DropChance  float64 `yaml:"drop_chance"`
	DropSpeed   float64 `yaml:"drop_speed"`
	CatchMargin float64 `yaml:"catch_margin"` // Half extent of the catch box around a pickup
}

// SimConfig defines the fixed time step of the simulation.
type SimConfig struct {
	TickRate    int `yaml:"tick_rate"`     // Simulation ticks per second
	MaxSubSteps int `yaml:"max_sub_steps"` // Upper bound on collisions resolved per tick
}

// InputConfig defines how terminal key presses map to held directions.
type InputConfig struct {
	HoldMillis int `yaml:"hold_ms"` // How long a key press keeps the paddle moving
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to the serve speed factor at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the selectable presets in menu order.
var Presets = []DifficultyPreset{
	DifficultyEasy,
	DifficultyNormal,
	DifficultyHard,
	DifficultyFixed,
}

// ParsePreset converts a flag value to a preset. Empty means "keep config".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyBreakoutPreset modifies the config based on a difficulty preset.
func ApplyBreakoutPreset(cfg *BreakoutConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate rejects configurations the engine cannot run with.
func (c BreakoutConfig) Validate() error {
	switch {
	case c.Arena.Width <= 0 || c.Arena.Height <= 0:
		return fmt.Errorf("config: arena must have positive size: %w", ErrInvalid)
	case c.Paddle.Width <= 0 || c.Paddle.Width >= c.Arena.Width:
		return fmt.Errorf("config: paddle width %.1f does not fit arena: %w", c.Paddle.Width, ErrInvalid)
	case c.Paddle.Thickness < 0 || c.Paddle.MaxSpeed <= 0:
		return fmt.Errorf("config: paddle thickness and max speed: %w", ErrInvalid)
	case c.Ball.Size <= 0 || c.Ball.ServeSpeed <= 0:
		return fmt.Errorf("config: ball size and serve speed must be positive: %w", ErrInvalid)
	case c.Level.Rows < 1 || c.Level.BlockHeight <= 0 || c.Level.SplitStep <= 0:
		return fmt.Errorf("config: level grid: %w", ErrInvalid)
	case !isChance(c.Level.SplitChance) || !isChance(c.Level.KeepChance) || !isChance(c.Pickups.DropChance):
		return fmt.Errorf("config: chances must lie in [0, 1]: %w", ErrInvalid)
	case c.Level.InvulnerableInset*2 >= c.Level.BlockHeight:
		return fmt.Errorf("config: invulnerable inset too large for block height: %w", ErrInvalid)
	case c.Sim.TickRate <= 0 || c.Sim.MaxSubSteps <= 0:
		return fmt.Errorf("config: tick rate and sub steps must be positive: %w", ErrInvalid)
	}
	return nil
}

func isChance(p float64) bool {
	return p >= 0 && p <= 1
}

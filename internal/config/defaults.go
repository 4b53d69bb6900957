package config

import (
	_ "embed"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// DefaultBreakoutConfig returns the default Breakout configuration.
// It matches defaults/breakout.yaml and is used when the embedded file
// cannot be parsed.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Arena: ArenaConfig{
			Width:  600,
			Height: 600,
		},
		Paddle: PaddleConfig{
			Y:             40,
			Width:         80,
			Thickness:     6,
			MaxSpeed:      600,
			Acceleration:  6000,
			Friction:      7,
			SteerDeadzone: 5,
		},
		Ball: BallConfig{
			Size:        12,
			ServeSpeed:  400,
			ServeCosine: 0.7,
			ServeLift:   8,
		},
		Level: LevelConfig{
			Rows:              10,
			BlockHeight:       30,
			SplitStep:         15,
			SplitChance:       0.3,
			KeepChance:        0.95,
			InvulnerableWidth: 8,
			InvulnerableInset: 8,
			ScorePerUnit:      10,
		},
		Pickups: PickupConfig{
			Enabled:     true,
			DropChance:  0.5,
			DropSpeed:   300,
			CatchMargin: 8,
		},
		Sim: SimConfig{
			TickRate:    120,
			MaxSubSteps: 32,
		},
		Input: InputConfig{
			HoldMillis: 180,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 5000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultBreakoutYAML
}

package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Simulation ticks per second
	Seed     uint64 // Level seed; the variant decides how it is chosen
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 120,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score     int64  // Banked score
	Combo     int64  // Points pending until the ball returns to the paddle
	Penalties int64  // Points lost to floor breaches
	ComboMax  int64  // Largest combo seen
	Rank      string // Letter grade S..F
	Cleared   bool   // Every scoring block is gone and no combo is pending
	GameOver  bool   // Whether the run has ended
	Paused    bool   // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}

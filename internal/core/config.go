package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by State() to communicate status to the platform.
type GameState struct {
	Score     int    // Current score
	HighScore int    // Best score known to this process
	GameOver  bool   // Whether the bird died this session
	Running   bool   // Whether the simulation is advancing
	Paused    bool   // Whether the game is paused
	Autoplay  bool   // Whether the autoplay controller is enabled
	Power     string // Active power-up label for status text
}

// StepResult is returned by Step() after each simulation tick.
type StepResult struct {
	State GameState

	// NewHighScore is set on the tick where a finished run beat the high score.
	NewHighScore bool
}

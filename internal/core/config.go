package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW    int    // Screen width in characters
	ScreenH    int    // Screen height in characters
	TickRate   int    // Simulation ticks per second (default 60)
	Seed       int64  // RNG seed for deterministic gameplay
	Difficulty string // Difficulty preset name, empty for the configured default
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

// RunStats summarizes a game for the run history.
type RunStats struct {
	Delivered int
	Elapsed   float64 // Simulated seconds
	Stations  int
	Trains    int
}

// GameState represents the current state of a game.
type GameState struct {
	Score    int
	GameOver bool
	Paused   bool
	Stats    RunStats
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}

package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second driven by the platform (default 60)
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
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score (food plus bonus once scored)
	Food     int  // Food eaten this session
	Bonus    int  // Bonus awarded when the session was scored
	GameOver bool // Whether the session has ended and been scored
	Paused   bool // Whether the game is paused
	Active   bool // Whether a session is running (not waiting in the game's menu)

	Ticks   int           // Movement ticks survived
	Elapsed time.Duration // Session length, set once scored
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}

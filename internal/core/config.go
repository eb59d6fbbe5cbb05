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

// Dt returns the fixed timestep in seconds for this tick rate.
func (c RuntimeConfig) Dt() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the run has ended
	Paused   bool // Whether the game is paused
}

// Event is a one-shot notification raised during a tick.
type Event int

const (
	EventLapStarted Event = iota + 1 // The recycle queue wrapped to row 0
	EventCollected                   // A collectible was picked up
	EventJumped                      // A jump intent succeeded
	EventTerminated                  // The run ended
)

// String returns a human-readable name for the event.
func (e Event) String() string {
	switch e {
	case EventLapStarted:
		return "lap_started"
	case EventCollected:
		return "collected"
	case EventJumped:
		return "jumped"
	case EventTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}

// Has reports whether the given event was raised this tick.
func (r StepResult) Has(e Event) bool {
	for _, ev := range r.Events {
		if ev == e {
			return true
		}
	}
	return false
}

// RunStats is the read-only telemetry of a run: the raw numbers scoring
// and UI layers build on. Heights are in world units.
type RunStats struct {
	Tick      uint64  `json:"tick"`
	Score     int     `json:"score"`
	Donuts    int     `json:"donuts"`
	Distance  float64 `json:"distance"`
	MaxHeight float64 `json:"max_height"`
	Laps      int     `json:"laps"`
	Speed     float64 `json:"speed"`
	Lowest    float64 `json:"lowest"`  // 0 until the lap has a spawned segment
	Highest   float64 `json:"highest"` // 0 until the lap has a spawned segment
	Stalling  bool    `json:"stalling"`
	StallLeft float64 `json:"stall_left,omitempty"`
	Cause     string  `json:"cause,omitempty"`
}

package runner

import (
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/survival"
)

// GameStateType represents the current run state.
type GameStateType string

const (
	StatePlaying  GameStateType = "playing"
	StatePaused   GameStateType = "paused"
	StateGameOver GameStateType = "game_over"
)

// Snapshot captures the complete run state for determinism testing.
type Snapshot struct {
	Tick      uint64
	Mode      string
	Score     int
	Donuts    int
	Laps      int
	Frontier  int
	Live      int // Live rows
	Dormant   int // Rows waiting in the recycle queue
	Colliders int
	Position  core.Vec3
	Velocity  core.Vec3
	Yaw       float64
	Camera    core.Vec3
	Survival  survival.State
	State     GameStateType
}

// Snapshot returns the current run snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.gameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	return Snapshot{
		Tick:      g.tick,
		Mode:      string(g.mode),
		Score:     g.track.Score(),
		Donuts:    g.player.DonutCount,
		Laps:      g.track.Laps(),
		Frontier:  g.track.Frontier(),
		Live:      g.track.LiveRows(),
		Dormant:   g.track.DormantRows(),
		Colliders: g.world.Colliders(),
		Position:  g.player.Position,
		Velocity:  g.player.Velocity,
		Yaw:       g.player.Yaw,
		Camera:    g.camera.Pos,
		Survival:  g.machine.State(),
		State:     state,
	}
}

// Package runner implements the stack runner: the player races along a
// recycled track that rises behind them and gets taller every lap.
package runner

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/food"
	"github.com/vovakirdan/tui-runner/internal/physics"
	"github.com/vovakirdan/tui-runner/internal/player"
	"github.com/vovakirdan/tui-runner/internal/registry"
	"github.com/vovakirdan/tui-runner/internal/survival"
	"github.com/vovakirdan/tui-runner/internal/track"
)

// localPlayer is the only controllable entity in a single-player run.
const localPlayer player.EntityID = 0

// Game is one run of the stack runner in a fixed difficulty mode.
type Game struct {
	mode    config.DifficultyPreset
	runtime core.RuntimeConfig
	cfg     config.RunnerConfig

	track   *track.Manager
	world   *physics.World
	ctrl    *physics.Controller
	player  *player.Player
	intents *player.IntentQueue
	machine *survival.Machine
	food    *food.Spawner
	camera  Camera

	tick     uint64
	elapsed  float64
	gameOver bool
	paused   bool
}

// configPath stores the custom config path set via CLI
var configPath string

// logger is optional; nil disables game logging.
var logger *log.Logger

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetLogger sets the logger used for lap and termination events.
func SetLogger(l *log.Logger) {
	logger = l
}

// New creates a runner in the given mode.
func New(mode config.DifficultyPreset) *Game {
	return &Game{mode: mode, intents: player.NewIntentQueue()}
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name for this mode.
func (g *Game) Title() string {
	return config.PresetTitle(g.mode)
}

// Config returns the configuration of the current run.
func (g *Game) Config() config.RunnerConfig {
	return g.cfg
}

// Reset starts a fresh run: new track, physics world, player and survival
// state. The config file is reloaded on every reset.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadRunner(configPath)
	if err != nil {
		debugf("config rejected, using defaults", "err", err)
		cfg = config.DefaultRunnerConfig()
	}
	config.ApplyPreset(&cfg, g.mode)
	g.cfg = cfg

	g.track, err = track.NewManager(cfg.Track, runtime.Seed)
	if err != nil {
		// Defaults always validate
		g.cfg = config.DefaultRunnerConfig()
		config.ApplyPreset(&g.cfg, g.mode)
		g.track, _ = track.NewManager(g.cfg.Track, runtime.Seed)
	}

	g.world = physics.NewWorld()
	g.ctrl = physics.NewController(g.world, g.cfg.Player.HalfExtent, g.cfg.Player.StepHeight)
	g.player = player.New(g.cfg.Player)
	g.intents = player.NewIntentQueue()
	g.machine = survival.New(g.cfg.Survival, g.cfg.Player.Speed)
	g.food = food.NewSpawner(g.cfg.Food, runtime.Seed)
	g.camera = NewCamera(g.cfg.Camera, g.player.Position)

	g.tick = 0
	g.elapsed = 0
	g.gameOver = false
	g.paused = false

	g.track.Flush(g.world)
	g.placeDonuts()
}

// Step advances the run by one fixed tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	dt := g.runtime.Dt()
	g.tick++
	g.elapsed += dt
	var events []core.Event

	// Intents
	g.pushIntents(in)
	applied := g.intents.Drain()[localPlayer]

	// Locomotion
	if rep := g.player.Step(dt, applied, g.ctrl); rep.Jumped {
		events = append(events, core.EventJumped)
	}
	pos := g.player.Position

	// Collectibles
	if n := g.food.Update(dt, g.elapsed, pos); n > 0 {
		g.track.AddScore(n * g.cfg.Food.ScoreValue)
		g.player.DonutCount += n
		events = append(events, core.EventCollected)
	}

	// Survival
	lowest, _ := g.track.CurrentLevelHeights()
	sample := survival.Sample{ForwardVelocity: g.player.Velocity.X, Height: pos.Y, Lowest: lowest}
	if g.machine.Update(dt, sample) {
		g.gameOver = true
		events = append(events, core.EventTerminated)
		debugf("run terminated", "mode", g.mode, "cause", g.machine.Cause(), "tick", g.tick, "distance", pos.X)
	}

	// Track, camera, recycling
	g.track.Update(pos)
	g.camera.Follow(pos, dt)
	g.track.Shift(g.camera.Pos.X)
	g.track.Flush(g.world)

	if g.placeDonuts() > 0 {
		events = append(events, core.EventLapStarted)
	}

	return core.StepResult{State: g.State(), Events: events}
}

// pushIntents translates platform actions into locomotion intents.
// Held directions are unioned into a single move.
func (g *Game) pushIntents(in core.InputFrame) {
	var dir player.Direction
	if in.Has(core.ActionRight) {
		dir |= player.North
	}
	if in.Has(core.ActionLeft) {
		dir |= player.South
	}
	if in.Has(core.ActionDown) {
		dir |= player.East
	}
	if in.Has(core.ActionUp) {
		dir |= player.West
	}
	if dir != 0 {
		g.intents.Push(localPlayer, player.Move(dir))
	}
	if in.Has(core.ActionJump) {
		g.intents.Push(localPlayer, player.Jump())
	}
}

// placeDonuts consumes pending lap triggers and drops one donut per lap.
func (g *Game) placeDonuts() int {
	laps := g.track.TakeLapTriggers()
	for i := 0; i < laps; i++ {
		near, far := g.track.CurrentLevelSize()
		_, highest := g.track.CurrentLevelHeights()
		if d, ok := g.food.Place(food.LevelBounds{Near: near, Far: far, Highest: highest}); ok {
			debugf("lap started", "mode", g.mode, "lap", g.track.Laps(), "donut_x", d.Pos.X, "donut_z", d.Pos.Z)
		}
	}
	return laps
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.track.Score(),
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Stats returns the telemetry readout of the run.
func (g *Game) Stats() core.RunStats {
	lowest, highest := g.track.CurrentLevelHeights()
	timer, stalling := g.machine.Timer()
	s := core.RunStats{
		Tick:      g.tick,
		Score:     g.track.Score(),
		Donuts:    g.player.DonutCount,
		Distance:  g.player.Distance(),
		MaxHeight: g.player.MaxHeight,
		Laps:      g.track.Laps(),
		Speed:     g.player.Velocity.Len(),
		Lowest:    finite(lowest),
		Highest:   finite(highest),
		Stalling:  stalling,
		Cause:     g.machine.Cause().String(),
	}
	if stalling {
		s.StallLeft = timer
	}
	return s
}

// finite maps the unset lap bounds to 0 so the stats stay JSON-safe.
func finite(v float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return v
}

func debugf(msg string, keyvals ...interface{}) {
	if logger != nil {
		logger.Debug(msg, keyvals...)
	}
}

// Register every difficulty mode with the registry
func init() {
	for i, mode := range config.Presets {
		mode := mode
		info :=registry.ModeInfo{ID: string(mode), Title: config.PresetTitle(mode), Order: i}
		registry.Register(info, func() registry.Game {
			return New(mode)
		})
	}
}

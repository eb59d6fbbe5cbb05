// Package survival decides when a run ends: stalling too long below a
// fraction of top speed, or falling below the track.
package survival

import (
	"math"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
)

// State is the survival state of the runner.
type State int

const (
	Healthy State = iota
	Stalling
	Terminated
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Healthy:
		return "healthy"
	case Stalling:
		return "stalling"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Cause explains why a run terminated.
type Cause int

const (
	CauseNone Cause = iota
	CauseStalled
	CauseFell
)

// String returns the cause name as stored with finished runs.
func (c Cause) String() string {
	switch c {
	case CauseStalled:
		return "stalled"
	case CauseFell:
		return "fell"
	default:
		return ""
	}
}

// Sample is what the machine observes each tick.
type Sample struct {
	ForwardVelocity float64
	Height          float64 // Player vertical position
	Lowest          float64 // Lowest segment height this lap, world units
}

// Machine tracks one run. Terminated is absorbing; a new run needs a new
// Machine or a Reset.
type Machine struct {
	cfg      config.SurvivalConfig
	maxSpeed float64
	state    State
	timer    float64
	cause    Cause
}

// New creates a healthy machine for a player with the given top speed.
func New(cfg config.SurvivalConfig, maxSpeed float64) *Machine {
	return &Machine{cfg: cfg, maxSpeed: maxSpeed}
}

// Reset returns the machine to Healthy.
func (m *Machine) Reset() {
	m.state = Healthy
	m.timer = 0
	m.cause = CauseNone
}

// Update advances the machine by dt. It returns true exactly once, on the
// tick the run terminates.
func (m *Machine) Update(dt float64, s Sample) bool {
	if m.state == Terminated {
		return false
	}

	if !math.IsInf(s.Lowest, 0) && s.Height < s.Lowest-m.cfg.FallMargin {
		m.terminate(CauseFell)
		return true
	}

	if s.ForwardVelocity >= m.cfg.StallFraction*m.maxSpeed {
		m.state = Healthy
		m.timer = 0
		return false
	}

	if m.state == Healthy {
		m.state = Stalling
		m.timer = m.cfg.StallTime
	}
	m.timer = core.ClampF(m.timer-dt, -m.cfg.TimerClamp, m.cfg.TimerClamp)
	if m.timer < 0 {
		m.terminate(CauseStalled)
		return true
	}
	return false
}

func (m *Machine) terminate(c Cause) {
	m.state = Terminated
	m.cause = c
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Cause returns why the run ended, or CauseNone while it is running.
func (m *Machine) Cause() Cause { return m.cause }

// Timer returns the stall countdown. It reports false unless stalling.
func (m *Machine) Timer() (float64, bool) {
	return m.timer, m.state == Stalling
}

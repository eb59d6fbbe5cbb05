// Package player implements runner locomotion: drag, constant forward
// push, steering and jump impulses fed through a kinematic controller.
package player

import (
	"math"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/physics"
)

// CooldownLimit bounds the jump cooldown in both directions.
const CooldownLimit = 3.0

// Mover is the kinematic controller the player moves through.
type Mover interface {
	Move(pos, delta core.Vec3) physics.MoveResult
}

// StepReport describes what happened during one locomotion step.
type StepReport struct {
	Jumped       bool
	Displacement core.Vec3
	Move         physics.MoveResult
}

// Player is the controllable runner.
type Player struct {
	cfg config.PlayerConfig

	Position     core.Vec3
	Velocity     core.Vec3
	Yaw          float64 // Facing around the vertical axis, radians
	Grounded     bool    // Controller report from the last step
	JumpCooldown float64
	DonutCount   int
	MaxHeight    float64
}

// New creates a player at the configured start position.
func New(cfg config.PlayerConfig) *Player {
	p := &Player{cfg: cfg}
	p.Reset()
	return p
}

// Reset returns the player to the start position at rest.
func (p *Player) Reset() {
	p.Position = p.cfg.Start
	p.Velocity = core.Vec3{}
	p.Yaw = 0
	p.Grounded = false
	p.JumpCooldown = 0
	p.DonutCount = 0
	p.MaxHeight = p.cfg.Start.Y
}

// Speed returns the maximum velocity length.
func (p *Player) Speed() float64 { return p.cfg.Speed }

// Distance returns how far the player has run along the track.
func (p *Player) Distance() float64 { return p.Position.X }

// Step advances locomotion by dt using the applied intent record.
func (p *Player) Step(dt float64, in Applied, mover Mover) StepReport {
	var rep StepReport

	if p.Grounded {
		p.JumpCooldown = max(p.JumpCooldown, p.cfg.CoyoteTime)
	}

	p.Velocity = p.Velocity.Scale(math.Pow(p.cfg.Friction, dt))
	p.Velocity.X += p.cfg.ForwardAccel * dt

	if in.HasMove {
		impulse := in.Dir.Vec().ZeroSignum().Scale(p.cfg.Speed * dt)
		if !p.Grounded {
			impulse.X *= 0.5
		}
		p.Velocity = p.Velocity.Add(impulse)
	}

	gravity := core.V3(0, -p.cfg.Gravity, 0)
	if in.Jump && p.JumpCooldown > 0 {
		p.Velocity.Y += p.cfg.JumpImpulse
		p.JumpCooldown = 0
		gravity = core.Vec3{}
		rep.Jumped = true
	}

	p.Velocity = p.Velocity.ClampLen(p.cfg.Speed)
	if !p.Velocity.IsFinite() {
		p.Velocity = core.Vec3{}
	}

	rep.Displacement = gravity.Add(p.Velocity).Scale(dt)
	rep.Move = mover.Move(p.Position, rep.Displacement)
	p.Position = rep.Move.Position
	p.Grounded = rep.Move.Grounded
	if rep.Move.BlockedX {
		p.Velocity.X = 0
	}

	p.turn(rep.Displacement)

	p.JumpCooldown = core.ClampF(p.JumpCooldown-dt, -CooldownLimit, CooldownLimit)
	p.MaxHeight = max(p.MaxHeight, p.Position.Y)
	return rep
}

// turn faces the player along the planar displacement. A slow player or a
// degenerate angle skips the update and keeps the previous facing.
func (p *Player) turn(disp core.Vec3) {
	planar := disp.Planar()
	if p.Velocity.Len() <= p.cfg.MinTurnSpeed || planar.LenSq() == 0 {
		return
	}
	if yaw := math.Atan2(-planar.Z, planar.X); !math.IsNaN(yaw) {
		p.Yaw = yaw
	}
}

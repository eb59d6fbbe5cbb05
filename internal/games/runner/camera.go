package runner

import (
	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
)

// Camera trails the player. Its X position decides which track rows have
// scrolled out of view.
type Camera struct {
	cfg config.CameraConfig
	Pos core.Vec3
}

// NewCamera places the camera at its resting offset from target.
func NewCamera(cfg config.CameraConfig, target core.Vec3) Camera {
	return Camera{cfg: cfg, Pos: cfgGoal(cfg, target)}
}

// Follow eases the camera toward its offset from target. The vertical axis
// lags the most and the forward axis the least.
func (c *Camera) Follow(target core.Vec3, dt float64) {
	goal := cfgGoal(c.cfg, target)
	c.Pos.X += (goal.X - c.Pos.X) * min(1, c.cfg.Speed*dt)
	c.Pos.Y += (goal.Y - c.Pos.Y) * min(1, c.cfg.Speed*0.25*dt)
	c.Pos.Z += (goal.Z - c.Pos.Z) * min(1, c.cfg.Speed*0.5*dt)
}

func cfgGoal(cfg config.CameraConfig, target core.Vec3) core.Vec3 {
	return core.V3(target.X+cfg.OffsetX, target.Y+cfg.OffsetY, target.Z)
}

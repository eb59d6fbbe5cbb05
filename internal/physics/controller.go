package physics

import "github.com/vovakirdan/tui-runner/internal/core"

const skin = 1e-6

// MoveResult is what the controller reports after a move.
type MoveResult struct {
	Position core.Vec3
	Grounded bool // Resting on a collider top after the move
	BlockedX bool // Forward/backward motion was stopped by a wall
	BlockedZ bool // Lateral motion was stopped by a wall
}

// Controller moves an axis-aligned box through the world. Horizontal axes
// are resolved one at a time: ledges no taller than StepHeight are climbed,
// anything taller blocks that axis. Vertical motion lands on the highest
// collider top crossed while falling.
type Controller struct {
	World      *World
	HalfExtent float64
	StepHeight float64
}

// NewController creates a controller for a cube of the given half extent.
func NewController(w *World, halfExtent, stepHeight float64) *Controller {
	return &Controller{World: w, HalfExtent: halfExtent, StepHeight: stepHeight}
}

// Move translates pos by delta and resolves collisions.
func (c *Controller) Move(pos, delta core.Vec3) MoveResult {
	res := MoveResult{Position: pos}
	res.Position, res.BlockedX = c.slide(res.Position, core.V3(delta.X, 0, 0))
	res.Position, res.BlockedZ = c.slide(res.Position, core.V3(0, 0, delta.Z))

	from := res.Position
	to := from.Add(core.V3(0, delta.Y, 0))
	if delta.Y <= 0 {
		if top, ok := c.landing(to, from.Y-c.HalfExtent); ok {
			to.Y = top + c.HalfExtent
			res.Grounded = true
		}
	}
	res.Position = to
	return res
}

// slide moves along one horizontal axis, stepping up low ledges.
func (c *Controller) slide(pos, d core.Vec3) (core.Vec3, bool) {
	if d.X == 0 && d.Z == 0 {
		return pos, false
	}
	next := pos.Add(d)
	body := c.body(next)
	feet := next.Y - c.HalfExtent

	rise := 0.0
	for _, b := range c.World.colliders {
		if !body.OverlapsPlanar(b) || b.Min.Y >= body.Max.Y {
			continue
		}
		if r := b.Max.Y - feet; r > rise+skin {
			rise = r
		}
	}
	switch {
	case rise <= skin:
		return next, false
	case rise <= c.StepHeight:
		next.Y += rise
		return next, false
	default:
		return pos, true
	}
}

// landing finds the highest collider top between the body's feet before
// the vertical move (prevFeet) and after it.
func (c *Controller) landing(next core.Vec3, prevFeet float64) (float64, bool) {
	body := c.body(next)
	feet := next.Y - c.HalfExtent
	best, found := 0.0, false
	for _, b := range c.World.colliders {
		if !body.OverlapsPlanar(b) {
			continue
		}
		top := b.Max.Y
		if top < feet-skin || top > prevFeet+skin {
			continue
		}
		if !found || top > best {
			best, found = top, true
		}
	}
	return best, found
}

func (c *Controller) body(center core.Vec3) core.Box {
	h := c.HalfExtent
	return core.BoxAround(center, core.V3(h, h, h))
}

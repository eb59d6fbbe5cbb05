// Package track implements the procedural ground of the runner: a fixed
// ring of rows that is windowed into the world ahead of the player,
// recycled once it scrolls behind the camera and made taller every lap.
package track

import "github.com/vovakirdan/tui-runner/internal/core"

// Segment is one lane-wide, one-row-deep cell of ground.
// Height is measured in cells; the world-space extent is Height*CellSize.
type Segment struct {
	RowID  int      // Logical row identity, 0 marks the start of a lap
	Lane   int      // Lateral slot, fixed for the segment's lifetime
	Height float64  // Grows on every lap and behind the player
	Color  core.RGB // Darkens a little on every spawn
}

// Row holds the segments sharing one row identity, sorted by lane.
type Row struct {
	ID       int
	Segments []Segment
}

// Placed is a read-only view of a live segment in world space.
type Placed struct {
	Segment
	X, Z     float64 // Center on the ground plane
	Top      float64 // World height of the upper face
	Collider bool    // Whether a collider is currently attached
}

// Key returns the arena key of the segment.
func (s Segment) Key() core.CellKey {
	return core.CellKey{Row: s.RowID, Lane: s.Lane}
}

// Package physics provides the collider store the track writes into and a
// kinematic character controller that moves the player against it.
package physics

import (
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/track"
)

// World holds the box colliders currently attached to track segments.
// It applies staged track commands and is read by the Controller.
type World struct {
	colliders map[core.CellKey]core.Box
	segments  int
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{colliders: make(map[core.CellKey]core.Box)}
}

// Apply implements track.CommandSink.
func (w *World) Apply(cmd track.Command) {
	switch cmd.Kind {
	case track.CmdSpawn:
		w.segments++
	case track.CmdDespawn:
		w.segments--
		delete(w.colliders, cmd.Key)
	case track.CmdAttachCollider:
		w.colliders[cmd.Key] = cmd.Box
	case track.CmdDetachCollider:
		delete(w.colliders, cmd.Key)
	case track.CmdResize:
		if _, ok := w.colliders[cmd.Key]; ok {
			w.colliders[cmd.Key] = cmd.Box
		}
	}
}

// Attach adds or replaces a collider directly.
func (w *World) Attach(key core.CellKey, box core.Box) {
	w.colliders[key] = box
}

// Detach removes a collider. Missing keys are ignored.
func (w *World) Detach(key core.CellKey) {
	delete(w.colliders, key)
}

// Collider returns the collider attached to key.
func (w *World) Collider(key core.CellKey) (core.Box, bool) {
	b, ok := w.colliders[key]
	return b, ok
}

// Colliders returns the number of attached colliders.
func (w *World) Colliders() int {
	return len(w.colliders)
}

// Segments returns the number of spawned segments the world has been told
// about.
func (w *World) Segments() int {
	return w.segments
}

// Reset drops all colliders and segment bookkeeping.
func (w *World) Reset() {
	clear(w.colliders)
	w.segments = 0
}

package track

import "github.com/vovakirdan/tui-runner/internal/core"

// CommandKind identifies a staged world mutation.
type CommandKind int

const (
	CmdSpawn          CommandKind = iota + 1 // Materialize a segment
	CmdDespawn                               // Remove a segment and any collider it has
	CmdResize                                // Segment height changed
	CmdAttachCollider                        // Give a segment a box collider
	CmdDetachCollider                        // Remove a segment's collider
)

// String returns a short name for logs.
func (k CommandKind) String() string {
	switch k {
	case CmdSpawn:
		return "spawn"
	case CmdDespawn:
		return "despawn"
	case CmdResize:
		return "resize"
	case CmdAttachCollider:
		return "attach"
	case CmdDetachCollider:
		return "detach"
	default:
		return "unknown"
	}
}

// Command is one pending change to the world, addressed by segment key.
type Command struct {
	Kind   CommandKind
	Key    core.CellKey
	Pos    core.Vec3 // Segment center
	Height float64   // Segment height in cells
	Box    core.Box  // Collider or visual extent
	Color  core.RGB
}

// CommandSink receives staged commands at the end of a tick.
// The physics world and renderers implement it.
type CommandSink interface {
	Apply(cmd Command)
}

// SinkFunc adapts a function to CommandSink.
type SinkFunc func(cmd Command)

// Apply calls f(cmd).
func (f SinkFunc) Apply(cmd Command) {
	f(cmd)
}

// Pending returns the number of staged commands.
func (m *Manager) Pending() int {
	return len(m.commands)
}

// Flush applies every staged command to sink in the order it was staged
// and clears the buffer. It returns the number of commands applied.
// A nil sink discards the commands.
func (m *Manager) Flush(sink CommandSink) int {
	n := len(m.commands)
	if sink != nil {
		for _, cmd := range m.commands {
			sink.Apply(cmd)
		}
	}
	m.commands = m.commands[:0]
	return n
}

func (m *Manager) stage(cmd Command) {
	m.commands = append(m.commands, cmd)
}

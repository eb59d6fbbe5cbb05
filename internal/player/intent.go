package player

import "github.com/vovakirdan/tui-runner/internal/core"

// Direction is a set of compass bits. Opposite bits cancel out.
type Direction uint8

const (
	North Direction = 1 << iota // +X, along the track
	South                       // -X
	East                        // +Z
	West                        // -Z
)

// Has reports whether every bit of o is set in d.
func (d Direction) Has(o Direction) bool {
	return d&o == o && o != 0
}

// Vec returns the unnormalized world direction of the set bits.
func (d Direction) Vec() core.Vec3 {
	var v core.Vec3
	if d&North != 0 {
		v.X++
	}
	if d&South != 0 {
		v.X--
	}
	if d&East != 0 {
		v.Z++
	}
	if d&West != 0 {
		v.Z--
	}
	return v
}

// IntentKind tags an Intent.
type IntentKind int

const (
	IntentNone IntentKind = iota
	IntentMove
	IntentJump
)

// Intent is one abstract request from an input source.
type Intent struct {
	Kind IntentKind
	Dir  Direction // Only meaningful for IntentMove
}

// Move returns a movement intent.
func Move(d Direction) Intent { return Intent{Kind: IntentMove, Dir: d} }

// Jump returns a jump intent.
func Jump() Intent { return Intent{Kind: IntentJump} }

// EntityID identifies a controllable entity.
type EntityID int

// Applied is the per-tick intent record for one entity. Movement and jump
// are independent fields, so both can be applied in the same tick.
type Applied struct {
	Dir     Direction
	HasMove bool
	Jump    bool
}

// IntentQueue collects intents during a tick and hands out at most one
// applied record per entity.
type IntentQueue struct {
	order   []EntityID
	pending map[EntityID]Applied
}

// NewIntentQueue creates an empty queue.
func NewIntentQueue() *IntentQueue {
	return &IntentQueue{pending: make(map[EntityID]Applied)}
}

// Push records an intent. The first movement intent recorded for an
// entity wins; later ones are dropped until the next Drain.
func (q *IntentQueue) Push(id EntityID, in Intent) {
	a, seen := q.pending[id]
	if !seen {
		q.order = append(q.order, id)
	}
	switch in.Kind {
	case IntentMove:
		if !a.HasMove {
			a.Dir = in.Dir
			a.HasMove = true
		}
	case IntentJump:
		a.Jump = true
	}
	q.pending[id] = a
}

// Len returns the number of entities with pending intents.
func (q *IntentQueue) Len() int {
	return len(q.order)
}

// Drain returns the applied records and empties the queue.
func (q *IntentQueue) Drain() map[EntityID]Applied {
	out := make(map[EntityID]Applied, len(q.order))
	for _, id := range q.order {
		out[id] = q.pending[id]
	}
	q.order = q.order[:0]
	clear(q.pending)
	return out
}

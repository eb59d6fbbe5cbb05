package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-runner/internal/core"
)

// HoldTicks is how long a movement key counts as held after its last
// press. Terminals report key repeats but never releases.
const HoldTicks = 8

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "w", "up":
		return core.ActionUp, false
	case "s", "down":
		return core.ActionDown, false
	case "a", "left":
		return core.ActionLeft, false
	case "d", "right":
		return core.ActionRight, false
	case " ", "space":
		return core.ActionJump, false
	case "enter":
		return core.ActionConfirm, false
	case "b":
		return core.ActionBack, false
	case "p", "esc":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}
	return core.ActionNone, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}

// isMovement reports whether an action is a held steering action.
func isMovement(a core.Action) bool {
	switch a {
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		return true
	}
	return false
}

// HeldInput turns discrete key presses into per-tick input frames.
// Movement actions stay active for HoldTicks ticks after the last press;
// every other action fires on the next tick only.
type HeldInput struct {
	held    map[core.Action]int
	pending core.InputFrame
}

// NewHeldInput creates an empty input accumulator.
func NewHeldInput() *HeldInput {
	return &HeldInput{
		held:    make(map[core.Action]int),
		pending: core.NewInputFrame(),
	}
}

// Press records a key press.
func (h *HeldInput) Press(a core.Action) {
	if a == core.ActionNone {
		return
	}
	if isMovement(a) {
		h.held[a] = HoldTicks
		return
	}
	h.pending.Set(a)
}

// Pending reports whether a one-shot action is waiting for the next tick.
func (h *HeldInput) Pending(a core.Action) bool {
	return h.pending.Has(a)
}

// Frame returns the input for the next tick and ages held keys.
func (h *HeldInput) Frame() core.InputFrame {
	frame := h.pending.Clone()
	for a, left := range h.held {
		frame.Set(a)
		if left <= 1 {
			delete(h.held, a)
		} else {
			h.held[a] = left - 1
		}
	}
	h.pending.Clear()
	return frame
}

// Release drops every held and pending action.
func (h *HeldInput) Release() {
	clear(h.held)
	h.pending.Clear()
}

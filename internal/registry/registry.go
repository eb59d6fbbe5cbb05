// Package registry maps run mode IDs to game factories.
// Each difficulty preset registers one mode from an init function; the CLI,
// the menu and the SSH server create runs through Create.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-runner/internal/core"
)

// Game is one playable run. Implementations hold pure simulation state;
// the platform owns input mapping, timing and the terminal.
type Game interface {
	// ID is the mode identifier, also used as the storage key for runs.
	ID() string
	Title() string

	// Reset discards the current run and builds a fresh track from cfg.
	Reset(cfg core.RuntimeConfig)

	// Step advances the run by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a pre-cleared screen.
	Render(dst *core.Screen)

	State() core.GameState

	// Stats feeds scoring, storage and telemetry.
	Stats() core.RunStats
}

// ModeInfo describes a registered mode. Order is the menu position.
type ModeInfo struct {
	ID    string
	Title string
	Order int
}

// Factory creates an unstarted run; callers Reset it before stepping.
type Factory func() Game

type entry struct {
	info    ModeInfo
	factory Factory
}

var (
	mu    sync.RWMutex
	modes = make(map[string]entry)
)

// Register adds a mode. It panics on an empty or duplicate ID.
func Register(info ModeInfo, f Factory) {
	if info.ID == "" {
		panic("registry: empty mode id")
	}

	mu.Lock()
	defer mu.Unlock()
	if _, dup := modes[info.ID]; dup {
		panic(fmt.Sprintf("registry: mode %q already registered", info.ID))
	}
	if info.Title == "" {
		info.Title = info.ID
	}
	modes[info.ID] = entry{info: info, factory: f}
}

// List returns every mode in menu order; ties fall back to the ID.
func List() []ModeInfo {
	mu.RLock()
	list := make([]ModeInfo, 0, len(modes))
	for _, e := range modes {
		list = append(list, e.info)
	}
	mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		if list[i].Order != list[j].Order {
			return list[i].Order < list[j].Order
		}
		return list[i].ID < list[j].ID
	})
	return list
}

// Create returns a new run of mode id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := modes[id]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("registry: unknown mode %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := modes[id]
	return ok
}

package tui

import (
	"path/filepath"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/storage"
	"github.com/vovakirdan/tui-runner/internal/telemetry"
)

// stubGame ends after a fixed number of ticks.
type stubGame struct {
	endAt  uint64
	tick   uint64
	resets int
	last   core.InputFrame
}

func (g *stubGame) ID() string    { return "normal" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(cfg core.RuntimeConfig) {
	g.tick = 0
	g.resets++
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.last = in
	if g.tick < g.endAt {
		g.tick++
	}
	return core.StepResult{State: g.State()}
}

func (g *stubGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "stub") }

func (g *stubGame) State() core.GameState {
	return core.GameState{Score: 20, GameOver: g.tick >= g.endAt}
}

func (g *stubGame) Stats() core.RunStats {
	return core.RunStats{Tick: g.tick, Score: 20, Donuts: 2, Distance: 10, MaxHeight: 1, Laps: 1, Cause: "fell"}
}

// recorder collects published frames.
type recorder struct {
	mu     sync.Mutex
	frames []telemetry.Frame
}

func (r *recorder) Publish(v any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, v.(telemetry.Frame))
	return nil
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	next, _ := m.Update(TickMsg{})
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model
}

func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
}

func TestModelSavesRunOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	game := &stubGame{endAt: 3}
	m := NewModel(game, Options{Store: store}, testConfig())
	m.Init()

	for i := 0; i < 10; i++ {
		m = tick(t, m)
	}

	// 20*2 + 10*10 + 1*100
	if m.Final() != 240 {
		t.Errorf("Final() = %d, want 240", m.Final())
	}
	if m.RunID() == "" {
		t.Error("run should have been saved")
	}

	runs, err := store.AllRuns("normal")
	if err != nil {
		t.Fatalf("AllRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("saved %d runs, want 1", len(runs))
	}
	if runs[0].FinalScore != 240 || runs[0].Cause != "fell" || runs[0].Donuts != 2 {
		t.Errorf("saved run = %+v", runs[0])
	}
}

func TestModelRestartAfterGameOver(t *testing.T) {
	game := &stubGame{endAt: 2}
	m := NewModel(game, Options{}, testConfig())
	m.Init()

	// Restart is ignored while running
	m = press(t, m, runeKey('r'))
	m = tick(t, m)
	if game.resets != 1 {
		t.Fatalf("restart while running reset the game")
	}

	m = tick(t, m)
	m = tick(t, m)
	if m.Final() == 0 {
		t.Fatal("run should be over")
	}

	m = press(t, m, runeKey('r'))
	m = tick(t, m)
	if game.resets != 2 {
		t.Errorf("resets = %d, want 2", game.resets)
	}
	if m.RunID() != "" {
		t.Error("restart should clear the saved run")
	}
}

func TestModelHoldsSteering(t *testing.T) {
	game := &stubGame{endAt: 100}
	m := NewModel(game, Options{}, testConfig())
	m.Init()

	m = press(t, m, runeKey('d'))
	for i := 0; i < 3; i++ {
		m = tick(t, m)
		if !game.last.Has(core.ActionRight) {
			t.Fatalf("tick %d: right should be held", i)
		}
	}
}

func TestModelPublishesTelemetry(t *testing.T) {
	rec := &recorder{}
	game := &stubGame{endAt: 6}
	m := NewModel(game, Options{Publisher: rec, PublishEvery: 2, Session: "s"}, testConfig())
	m.Init()

	for i := 0; i < 10; i++ {
		m = tick(t, m)
	}

	// Ticks 2 and 4 while running, then the final frame at game over.
	if len(rec.frames) != 3 {
		t.Fatalf("published %d frames, want 3", len(rec.frames))
	}
	last := rec.frames[len(rec.frames)-1]
	if last.State != "game_over" || last.Session != "s" || last.Mode != "normal" {
		t.Errorf("final frame = %+v", last)
	}
}

func TestModelGameOverView(t *testing.T) {
	game := &stubGame{endAt: 1}
	m := NewModel(game, Options{}, testConfig())
	m.Init()
	m = tick(t, m)

	view := m.View()
	if !strings.Contains(view, "GAME OVER") {
		t.Error("game over view should show the title")
	}
	if strings.Contains(view, "Final") {
		t.Error("breakdown should be revealed gradually")
	}

	for i := 0; i < revealTicks*len(m.breakdown); i++ {
		m = tick(t, m)
	}
	view = m.View()
	for _, want := range []string{"Final", "240", "R: restart"} {
		if !strings.Contains(view, want) {
			t.Errorf("full game over view missing %q", want)
		}
	}
}

func TestModelEmbeddedBack(t *testing.T) {
	game := &stubGame{endAt: 1}
	m := NewModel(game, Options{Embedded: true}, testConfig())
	m.Init()
	m = tick(t, m)

	m = press(t, m, runeKey('b'))
	if !m.BackToMenu() {
		t.Error("b after game over should return to the menu")
	}
	if m.IsQuitting() {
		t.Error("embedded back should not quit")
	}
}

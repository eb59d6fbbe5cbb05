package registry

import (
	"testing"

	"github.com/vovakirdan/tui-runner/internal/core"
)

type stubGame struct{ id string }

func (g stubGame) ID() string                           { return g.id }
func (g stubGame) Title() string                        { return "Stub " + g.id }
func (g stubGame) Reset(core.RuntimeConfig)             {}
func (g stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g stubGame) Render(*core.Screen)                  {}
func (g stubGame) State() core.GameState                { return core.GameState{} }
func (g stubGame) Stats() core.RunStats                 { return core.RunStats{} }

func stub(id string) Factory {
	return func() Game { return stubGame{id: id} }
}

func find(id string) (ModeInfo, bool) {
	for _, info := range List() {
		if info.ID == id {
			return info, true
		}
	}
	return ModeInfo{}, false
}

func TestRegisterAndCreate(t *testing.T) {
	Register(ModeInfo{ID: "zz-stub", Title: "Stub zz-stub", Order: 90}, stub("zz-stub"))

	if !Exists("zz-stub") {
		t.Fatal("registered mode not found")
	}
	g, err := Create("zz-stub")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "zz-stub" {
		t.Errorf("ID() = %q", g.ID())
	}
	if info, ok := find("zz-stub"); !ok || info.Title != "Stub zz-stub" {
		t.Errorf("List() entry = %+v, %v", info, ok)
	}

	if _, err := Create("missing"); err == nil {
		t.Error("expected error for unknown mode")
	}
	if Exists("missing") {
		t.Error("Exists() reported an unknown mode")
	}
}

func TestCreateReturnsFreshRuns(t *testing.T) {
	calls := 0
	Register(ModeInfo{ID: "zz-count"}, func() Game {
		calls++
		return stubGame{id: "zz-count"}
	})
	if calls != 0 {
		t.Fatalf("Register() called the factory %d times", calls)
	}

	for i := 0; i < 2; i++ {
		if _, err := Create("zz-count"); err != nil {
			t.Fatalf("Create() failed: %v", err)
		}
	}
	if calls != 2 {
		t.Errorf("factory called %d times, expected 2", calls)
	}
}

func TestListOrder(t *testing.T) {
	Register(ModeInfo{ID: "zz-b", Order: 50}, stub("zz-b"))
	Register(ModeInfo{ID: "zz-a", Order: 51}, stub("zz-a"))
	Register(ModeInfo{ID: "zz-c", Order: 50}, stub("zz-c"))

	var got []string
	for _, info := range List() {
		if info.Order >= 50 && info.Order <= 51 {
			got = append(got, info.ID)
		}
	}
	want := []string{"zz-b", "zz-c", "zz-a"}
	if len(got) != len(want) {
		t.Fatalf("List() = %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List()[%d] = %q, expected %q", i, got[i], want[i])
		}
	}
}

func TestRegisterDefaultsTitleToID(t *testing.T) {
	Register(ModeInfo{ID: "zz-untitled"}, stub("zz-untitled"))
	if info, _ := find("zz-untitled"); info.Title != "zz-untitled" {
		t.Errorf("Title = %q, expected the id", info.Title)
	}
}

func TestRegisterRejectsBadIDs(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"empty", ""},
		{"duplicate", "zz-dup"},
	}
	Register(ModeInfo{ID: "zz-dup"}, stub("zz-dup"))

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("expected panic registering %q", tc.id)
				}
			}()
			Register(ModeInfo{ID: tc.id}, stub(tc.id))
		})
	}
}

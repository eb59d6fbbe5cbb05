package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func run(mode string, final int) RunRecord {
	return RunRecord{Mode: mode, Score: final / 2, FinalScore: final, Cause: "fell"}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAssignsID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(RunRecord{
		Mode:       "normal",
		Score:      40,
		Donuts:     3,
		Distance:   12.5,
		MaxHeight:  1.75,
		FinalScore: 420,
		Laps:       2,
		Cause:      "stalled",
	})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("SaveRun() returned non-uuid id %q: %v", id, err)
	}

	got, err := store.Run(id)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if got == nil {
		t.Fatal("Run() returned nil for saved id")
	}
	if got.Donuts != 3 || got.Distance != 12.5 || got.MaxHeight != 1.75 || got.Laps != 2 || got.Cause != "stalled" {
		t.Errorf("Run() = %+v, fields not preserved", *got)
	}

	missing, err := store.Run(uuid.NewString())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if missing != nil {
		t.Errorf("Run() for unknown id = %+v, want nil", *missing)
	}
}

func TestStoreSaveKeepsGivenID(t *testing.T) {
	store := openTestStore(t)

	want := uuid.NewString()
	r := run("normal", 10)
	r.ID = want
	id, err := store.SaveRun(r)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id != want {
		t.Errorf("SaveRun() id = %q, want %q", id, want)
	}

	if _, err := store.SaveRun(r); err == nil {
		t.Error("SaveRun() with duplicate id should fail")
	}
}

func TestStoreTopRunsOrder(t *testing.T) {
	store := openTestStore(t)

	for _, final := range []int{100, 50, 200} {
		if _, err := store.SaveRun(run("normal", final)); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	if _, err := store.SaveRun(run("hard", 500)); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := store.TopRuns("normal", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}
	want := []int{200, 100, 50}
	for i, r := range runs {
		if r.FinalScore != want[i] {
			t.Errorf("runs[%d].FinalScore = %d, want %d", i, r.FinalScore, want[i])
		}
		if r.Mode != "normal" {
			t.Errorf("runs[%d].Mode = %q, want normal", i, r.Mode)
		}
	}

	hard, err := store.TopRuns("hard", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(hard) != 1 {
		t.Errorf("Expected 1 hard run, got %d", len(hard))
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveRun(run("test", (i+1)*100))
	}

	runs, err := store.TopRuns("test", 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(runs))
	}
	if runs[0].FinalScore != 500 || runs[1].FinalScore != 400 || runs[2].FinalScore != 300 {
		t.Errorf("Runs not in expected order: %v", runs)
	}

	// Non-positive limit falls back to ten.
	runs, err = store.TopRuns("test", 0)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 5 {
		t.Errorf("Expected 5 runs with default limit, got %d", len(runs))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("normal")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty mode, got %d", high)
	}

	store.SaveRun(run("normal", 100))
	store.SaveRun(run("normal", 300))
	store.SaveRun(run("normal", 200))

	high, err = store.HighScore("normal")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(run("normal", 100))
	store.SaveRun(run("normal", 200))
	store.SaveRun(run("easy", 300))

	if err := store.ClearRuns("normal"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.TopRuns("normal", 10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}

	easy, _ := store.TopRuns("easy", 10)
	if len(easy) != 1 {
		t.Errorf("Other modes should not be affected by clearing normal")
	}
}

func TestStoreAllRuns(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		store.SaveRun(run("test", i*10))
	}

	runs, err := store.AllRuns("test")
	if err != nil {
		t.Fatalf("AllRuns() failed: %v", err)
	}
	if len(runs) != 20 {
		t.Errorf("Expected 20 runs, got %d", len(runs))
	}
}

func TestStoreModeStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.ModeStats("normal")
	if err != nil {
		t.Fatalf("ModeStats() failed: %v", err)
	}
	if empty.Runs != 0 || empty.HighScore != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("ModeStats() on empty mode = %+v", *empty)
	}

	store.SaveRun(RunRecord{Mode: "normal", FinalScore: 100, Donuts: 2, Distance: 10, MaxHeight: 1})
	store.SaveRun(RunRecord{Mode: "normal", FinalScore: 300, Donuts: 1, Distance: 30, MaxHeight: 0.5})
	store.SaveRun(RunRecord{Mode: "hard", FinalScore: 999})

	stats, err := store.ModeStats("normal")
	if err != nil {
		t.Fatalf("ModeStats() failed: %v", err)
	}
	if stats.Runs != 2 {
		t.Errorf("Runs = %d, want 2", stats.Runs)
	}
	if stats.HighScore != 300 {
		t.Errorf("HighScore = %d, want 300", stats.HighScore)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, want 200", stats.AvgScore)
	}
	if stats.BestDistance != 30 || stats.BestHeight != 1 {
		t.Errorf("BestDistance/BestHeight = %v/%v, want 30/1", stats.BestDistance, stats.BestHeight)
	}
	if stats.TotalDonuts != 3 {
		t.Errorf("TotalDonuts = %d, want 3", stats.TotalDonuts)
	}

	all, err := store.AllModeStats()
	if err != nil {
		t.Fatalf("AllModeStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("AllModeStats() returned %d modes, want 2", len(all))
	}
	if all["hard"].HighScore != 999 {
		t.Errorf("hard HighScore = %d, want 999", all["hard"].HighScore)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

package storage

import (
	"os"
	"path/filepath"
	"testing"
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

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Parent directories are created on demand
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("match3", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("match3_endless", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("match3", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	expected := []int{200, 100, 50}
	for i, want := range expected {
		if scores[i].Score != want {
			t.Errorf("scores[%d] = %d, expected %d", i, scores[i].Score, want)
		}
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be populated")
	}
}

func TestStoreSaveRun(t *testing.T) {
	store := openTestStore(t)

	run := Run{GameID: "match3", Score: 1840, Level: 2, MaxChain: 4, Moves: 31, Seed: 42}
	id, err := store.SaveRun(run)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("SaveRun() id = %d, expected positive", id)
	}

	runs, err := store.TopScores("match3", 1)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	got := runs[0]
	if got.Level != 2 || got.MaxChain != 4 || got.Moves != 31 || got.Seed != 42 {
		t.Errorf("round trip lost fields: %+v", got)
	}

	if _, err := store.SaveRun(Run{Score: 1}); err == nil {
		t.Error("SaveRun() without a game id should fail")
	}
}

func TestStoreHighScoreAndBestChain(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("match3")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("empty HighScore() = %d, expected 0", high)
	}

	store.SaveRun(Run{GameID: "match3", Score: 300, MaxChain: 5})
	store.SaveRun(Run{GameID: "match3", Score: 900, MaxChain: 2})

	if high, _ := store.HighScore("match3"); high != 900 {
		t.Errorf("HighScore() = %d, expected 900", high)
	}
	if chain, _ := store.BestChain("match3"); chain != 5 {
		t.Errorf("BestChain() = %d, expected 5", chain)
	}
}

func TestStoreLimitAndClear(t *testing.T) {
	store := openTestStore(t)

	for i := range 15 {
		store.SaveScore("match3", i*10)
	}

	scores, err := store.TopScores("match3", 5)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 5 {
		t.Errorf("Expected 5 scores with limit, got %d", len(scores))
	}

	if err := store.ClearScores("match3"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	scores, _ = store.TopScores("match3", 5)
	if len(scores) != 0 {
		t.Errorf("Expected no scores after clear, got %d", len(scores))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{GameID: "match3", Score: 100, MaxChain: 1})
	store.SaveRun(Run{GameID: "match3", Score: 300, MaxChain: 3})

	stats, err := store.GetGameStats("match3")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.BestChain != 3 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, expected 200", stats.AvgScore)
	}

	empty, err := store.GetGameStats("nothing")
	if err != nil {
		t.Fatalf("GetGameStats() on empty game failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("unexpected empty stats: %+v", empty)
	}
}

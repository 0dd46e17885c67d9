package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"
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

func TestStoreReopenKeepsScores(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveScore("flappy", 42, false); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("flappy")
	if err != nil || high != 42 {
		t.Errorf("HighScore() = %d, %v; want 42", high, err)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, sc := range []int{100, 50, 200} {
		if _, err := store.SaveScore("flappy", sc, false); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("flappy", 150, true); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	if _, err := store.SaveScore("other", 500, false); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("flappy", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 4 {
		t.Fatalf("Expected 4 scores, got %d", len(scores))
	}

	want := []int{200, 150, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, want %d", i, scores[i].Score, w)
		}
	}
	if !scores[1].Autoplay || scores[0].Autoplay {
		t.Errorf("autoplay flags not round-tripped: %+v", scores[:2])
	}
	if scores[0].GameID != "flappy" {
		t.Errorf("GameID = %q", scores[0].GameID)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("test", (i+1)*100, false)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	all, err := store.TopScores("test", 0)
	if err != nil || len(all) != 5 {
		t.Errorf("default limit returned %d rows, %v", len(all), err)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("flappy")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("flappy", 100, false)
	store.SaveScore("flappy", 300, true)
	store.SaveScore("flappy", 200, false)

	high, err = store.HighScore("flappy")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("flappy", 100, false)
	store.SaveScore("flappy", 200, false)
	store.SaveScore("other", 300, false)

	if err := store.ClearScores("flappy"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	flappyScores, _ := store.TopScores("flappy", 10)
	if len(flappyScores) != 0 {
		t.Errorf("Expected 0 flappy scores after clear, got %d", len(flappyScores))
	}

	otherScores, _ := store.TopScores("other", 10)
	if len(otherScores) != 1 {
		t.Errorf("Other scores should not be affected by clearing flappy")
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats("flappy")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.HighScore != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	store.SaveScore("flappy", 10, false)
	store.SaveScore("flappy", 30, false)

	stats, err := store.Stats("flappy")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 30 || stats.TotalScore != 40 || stats.AvgScore != 20 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed not set")
	}
}

func TestStoreRuns(t *testing.T) {
	store := openTestStore(t)
	key := RunKey{Seed: 7, Duration: time.Minute, FPS: 60, Config: "0123456789abcdef"}

	none, err := store.LastRun(key)
	if err != nil || none != nil {
		t.Fatalf("LastRun() on empty table = %v, %v", none, err)
	}

	first := RunRecord{Seed: 7, Duration: time.Minute, FPS: 60, Config: key.Config, Deaths: 3, BestScore: 12, Flaps: 400, Hash: 0xdeadbeefcafef00d}
	if _, err := store.SaveRun(first); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	second := first
	second.Hash = 1
	if _, err := store.SaveRun(second); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	store.SaveRun(RunRecord{Seed: 8, Duration: time.Minute, FPS: 60, Config: key.Config})

	got, err := store.LastRun(key)
	if err != nil {
		t.Fatalf("LastRun() failed: %v", err)
	}
	if got == nil || got.Hash != 1 || got.Deaths != 3 || got.Key() != key {
		t.Errorf("LastRun() = %+v", got)
	}

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 || runs[0].Seed != 8 || runs[2].Hash != 0xdeadbeefcafef00d {
		t.Errorf("RecentRuns() = %+v", runs)
	}
}

func TestStoreLastRunMatchesWholeKey(t *testing.T) {
	store := openTestStore(t)
	saved := RunRecord{Seed: 7, Duration: 10 * time.Second, FPS: 60, Config: "aaaaaaaaaaaaaaaa", Hash: 42}
	if _, err := store.SaveRun(saved); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	tests := []struct {
		name  string
		key   RunKey
		found bool
	}{
		{"same key", saved.Key(), true},
		{"other fps", RunKey{Seed: 7, Duration: 10 * time.Second, FPS: 30, Config: saved.Config}, false},
		{"other config", RunKey{Seed: 7, Duration: 10 * time.Second, FPS: 60, Config: "bbbbbbbbbbbbbbbb"}, false},
		{"other duration", RunKey{Seed: 7, Duration: 20 * time.Second, FPS: 60, Config: saved.Config}, false},
		{"other seed", RunKey{Seed: 8, Duration: 10 * time.Second, FPS: 60, Config: saved.Config}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.LastRun(tt.key)
			if err != nil {
				t.Fatalf("LastRun() failed: %v", err)
			}
			if (got != nil) != tt.found {
				t.Errorf("LastRun(%+v) = %+v, found want %v", tt.key, got, tt.found)
			}
		})
	}
}

func TestStoreMigratesOldRunsTable(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "old.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("sql.Open() failed: %v", err)
	}
	_, err = db.Exec(`
		CREATE TABLE runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			deaths INTEGER NOT NULL DEFAULT 0,
			best_score INTEGER NOT NULL DEFAULT 0,
			flaps INTEGER NOT NULL DEFAULT 0,
			hash TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		INSERT INTO runs (seed, duration_ms, hash) VALUES (7, 60000, '00000000000000ff');
	`)
	db.Close()
	if err != nil {
		t.Fatalf("creating old schema failed: %v", err)
	}

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() on old schema failed: %v", err)
	}

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 || runs[0].Hash != 0xff || runs[0].FPS != 0 {
		t.Errorf("RecentRuns() = %+v", runs)
	}

	got, err := store.LastRun(RunKey{Seed: 7, Duration: time.Minute, FPS: 60, Config: "x"})
	if err != nil || got != nil {
		t.Errorf("old run matched a keyed lookup: %+v, %v", got, err)
	}

	// Opening again must not try to add the columns twice.
	store.Close()
	if again, err := Open(dbPath); err != nil {
		t.Errorf("second Open() failed: %v", err)
	} else {
		again.Close()
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

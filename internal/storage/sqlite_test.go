package storage

import (
	"errors"
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

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieveScript(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveScript("intro", "Bob neutral M\nHello"); err != nil {
		t.Fatalf("SaveScript() failed: %v", err)
	}

	entry, err := store.Script("intro")
	if err != nil {
		t.Fatalf("Script() failed: %v", err)
	}
	if entry.Name != "intro" || entry.Source != "Bob neutral M\nHello" {
		t.Errorf("unexpected entry: %+v", entry)
	}
	if entry.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestStoreSaveScriptReplaces(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveScript("intro", "v1"); err != nil {
		t.Fatalf("SaveScript() failed: %v", err)
	}
	if err := store.SaveScript("intro", "v2"); err != nil {
		t.Fatalf("SaveScript() failed: %v", err)
	}

	entry, err := store.Script("intro")
	if err != nil {
		t.Fatalf("Script() failed: %v", err)
	}
	if entry.Source != "v2" {
		t.Errorf("expected replaced source v2, got %q", entry.Source)
	}

	entries, err := store.ListScripts()
	if err != nil {
		t.Fatalf("ListScripts() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 script after replace, got %d", len(entries))
	}
}

func TestStoreListScriptsSorted(t *testing.T) {
	store := openTestStore(t)

	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := store.SaveScript(name, "src"); err != nil {
			t.Fatalf("SaveScript(%q) failed: %v", name, err)
		}
	}

	entries, err := store.ListScripts()
	if err != nil {
		t.Fatalf("ListScripts() failed: %v", err)
	}
	want := []string{"alpha", "mid", "zeta"}
	if len(entries) != len(want) {
		t.Fatalf("expected %d scripts, got %d", len(want), len(entries))
	}
	for i, name := range want {
		if entries[i].Name != name {
			t.Errorf("entry %d = %q, expected %q", i, entries[i].Name, name)
		}
		if entries[i].Source != "" {
			t.Errorf("list should not load sources, got %q", entries[i].Source)
		}
	}
}

func TestStoreScriptNotFound(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.Script("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Script() error = %v, expected ErrNotFound", err)
	}
	if err := store.DeleteScript("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteScript() error = %v, expected ErrNotFound", err)
	}
}

func TestStoreDeleteScript(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveScript("intro", "src"); err != nil {
		t.Fatalf("SaveScript() failed: %v", err)
	}
	if _, err := store.SavePlay("intro", 3, true); err != nil {
		t.Fatalf("SavePlay() failed: %v", err)
	}

	if err := store.DeleteScript("intro"); err != nil {
		t.Fatalf("DeleteScript() failed: %v", err)
	}
	if _, err := store.Script("intro"); !errors.Is(err, ErrNotFound) {
		t.Errorf("script should be gone, got %v", err)
	}

	stats, err := store.PlayStats("intro")
	if err != nil {
		t.Fatalf("PlayStats() failed: %v", err)
	}
	if stats.Plays != 0 {
		t.Errorf("plays should be deleted with the script, got %d", stats.Plays)
	}
}

func TestStorePlayStats(t *testing.T) {
	store := openTestStore(t)

	plays := []struct {
		steps     int
		completed bool
	}{
		{2, false},
		{6, true},
		{4, true},
	}
	for _, p := range plays {
		if _, err := store.SavePlay("intro", p.steps, p.completed); err != nil {
			t.Fatalf("SavePlay() failed: %v", err)
		}
	}
	// Different script
	if _, err := store.SavePlay("other", 100, true); err != nil {
		t.Fatalf("SavePlay() failed: %v", err)
	}

	stats, err := store.PlayStats("intro")
	if err != nil {
		t.Fatalf("PlayStats() failed: %v", err)
	}
	if stats.Plays != 3 {
		t.Errorf("expected 3 plays, got %d", stats.Plays)
	}
	if stats.Completed != 2 {
		t.Errorf("expected 2 completed, got %d", stats.Completed)
	}
	if stats.MaxSteps != 6 {
		t.Errorf("expected max steps 6, got %d", stats.MaxSteps)
	}
	if stats.AvgSteps != 4 {
		t.Errorf("expected avg steps 4, got %v", stats.AvgSteps)
	}
	if stats.LastPlay.IsZero() {
		t.Error("LastPlay should be set")
	}
}

func TestStorePlayStatsEmpty(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.PlayStats("never")
	if err != nil {
		t.Fatalf("PlayStats() failed: %v", err)
	}
	if stats.Plays != 0 || stats.Completed != 0 || !stats.LastPlay.IsZero() {
		t.Errorf("expected empty stats, got %+v", stats)
	}
}

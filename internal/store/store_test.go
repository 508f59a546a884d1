package store

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCursor_SetGet(t *testing.T) {
	s := openTestStore(t)

	// Miss on empty.
	if _, _, ok := s.Cursor("/tmp/a.go"); ok {
		t.Fatal("expected miss")
	}

	s.SetCursor("/tmp/a.go", 12, 4)

	line, col, ok := s.Cursor("/tmp/a.go")
	if !ok {
		t.Fatal("expected hit")
	}
	if line != 12 || col != 4 {
		t.Errorf("got %d:%d, want 12:4", line, col)
	}

	// Replace refreshes the position.
	s.SetCursor("/tmp/a.go", 3, 0)
	line, col, _ = s.Cursor("/tmp/a.go")
	if line != 3 || col != 0 {
		t.Errorf("got %d:%d, want 3:0", line, col)
	}
}

func TestCursor_Purge(t *testing.T) {
	s := openTestStore(t)
	s.SetCursor("/tmp/old.go", 1, 1)

	// Backdate the entry past the retention window.
	s.db.Exec("UPDATE file_state SET updated = ? WHERE path = ?",
		time.Now().Add(-retention-time.Hour).Unix(), "/tmp/old.go")
	s.purgeStale()

	if _, _, ok := s.Cursor("/tmp/old.go"); ok {
		t.Fatal("expected purged entry to miss")
	}
}

func TestSearchHistory(t *testing.T) {
	s := openTestStore(t)

	if got := s.RecentSearches(5); got != nil {
		t.Fatalf("expected empty history, got %v", got)
	}

	s.AddSearch("first")
	s.db.Exec("UPDATE search_history SET used = ? WHERE pattern = ?",
		time.Now().Add(-time.Minute).Unix(), "first")
	s.AddSearch("second")

	got := s.RecentSearches(5)
	want := []string{"second", "first"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if got := s.RecentSearches(1); !reflect.DeepEqual(got, []string{"second"}) {
		t.Errorf("limit 1: %v", got)
	}
}

func TestNilStoreIsSafe(t *testing.T) {
	var s *Store
	if err := s.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	s.SetCursor("/tmp/x", 1, 1)
	if _, _, ok := s.Cursor("/tmp/x"); ok {
		t.Error("nil store reported a hit")
	}
	s.AddSearch("p")
	if got := s.RecentSearches(3); got != nil {
		t.Errorf("nil store returned history: %v", got)
	}
}

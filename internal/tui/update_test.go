package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xonecas/caffee/internal/config"
	"github.com/xonecas/caffee/internal/session"
)

func TestExternalChangeWarnsPerSession(t *testing.T) {
	dir := t.TempDir()
	var sessions []*session.Session
	for _, name := range []string{"a.txt", "b.txt"} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("x\n"), 0600); err != nil {
			t.Fatal(err)
		}
		s, err := session.Open(path, 0)
		if err != nil {
			t.Fatal(err)
		}
		sessions = append(sessions, s)
	}
	m := New(Options{Config: &config.Config{}, Sessions: sessions})

	// Both files change on disk behind their sessions.
	future := time.Now().Add(2 * time.Second)
	for _, s := range sessions {
		if err := os.Chtimes(s.Path, future, future); err != nil {
			t.Fatal(err)
		}
	}

	mdl, _ := m.handleMtimeTick()
	m = mdl.(Model)
	if !strings.Contains(m.status, "a.txt") {
		t.Fatalf("status = %q, want warning for a.txt", m.status)
	}

	// Switching tabs must not suppress the other session's warning.
	m.status = ""
	m.focused = 1
	mdl, _ = m.handleMtimeTick()
	m = mdl.(Model)
	if !strings.Contains(m.status, "b.txt") {
		t.Fatalf("status = %q, want warning for b.txt", m.status)
	}

	// The same session never warns twice for one change.
	m.status = ""
	mdl, _ = m.handleMtimeTick()
	m = mdl.(Model)
	if m.status != "" {
		t.Fatalf("repeat warning: %q", m.status)
	}
}

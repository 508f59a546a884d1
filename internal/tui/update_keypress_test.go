package tui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xonecas/caffee/internal/config"
	"github.com/xonecas/caffee/internal/session"
)

func newTestModel(n int) Model {
	sessions := make([]*session.Session, 0, n)
	for i := 0; i < n; i++ {
		sessions = append(sessions, session.New(0))
	}
	return New(Options{Config: &config.Config{}, Sessions: sessions})
}

func TestCloseUnmodifiedSessionNeedsNoPrompt(t *testing.T) {
	m := newTestModel(2)
	mdl, _, handled := m.handleClose()
	m = mdl
	if !handled || m.prompt != nil {
		t.Fatal("unmodified session should close without prompting")
	}
	if len(m.sessions) != 1 {
		t.Fatalf("session count = %d, want 1", len(m.sessions))
	}
}

func TestCloseUnnamedSessionSavesThenCloses(t *testing.T) {
	m := newTestModel(2)
	m.cur().InsertText("draft")

	mdl, _, handled := m.handleClose()
	m = mdl
	if !handled || m.prompt == nil {
		t.Fatal("modified session should prompt before closing")
	}

	// Confirm saving; the session has no name, so a save-as prompt follows
	// and the close runs as its continuation.
	m, _ = m.handlePromptKey(key('y'))
	if m.prompt == nil || m.prompt.Label != "save as" {
		t.Fatal("expected the save-as prompt to follow")
	}

	path := filepath.Join(t.TempDir(), "draft.txt")
	typeString(&m, path)
	m, _ = m.handlePromptKey(special("enter"))

	if len(m.sessions) != 1 {
		t.Fatalf("session count = %d after save-as, want 1", len(m.sessions))
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("saved file missing: %v", err)
	}
}

func TestCloseDiscardSkipsSave(t *testing.T) {
	m := newTestModel(2)
	m.cur().InsertText("scratch")

	mdl, _, _ := m.handleClose()
	m = mdl
	m, _ = m.handlePromptKey(key('n'))

	if len(m.sessions) != 1 {
		t.Fatalf("session count = %d, want 1", len(m.sessions))
	}
}

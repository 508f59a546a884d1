package session

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/xonecas/caffee/internal/buffer"
)

func TestInsertAndModified(t *testing.T) {
	s := New(0)
	if s.Modified() {
		t.Fatal("fresh session modified")
	}
	s.InsertText("hello")
	if got := s.Ed.Buffer().Line(0); got != "hello" {
		t.Errorf("line = %q", got)
	}
	if !s.Modified() {
		t.Error("insert did not mark modified")
	}
	if got := s.Ed.Pos(); got != (buffer.Pos{Line: 0, Col: 5}) {
		t.Errorf("pos = %v", got)
	}
}

func TestUndoRedoRestoresCursor(t *testing.T) {
	s := New(0)
	s.InsertText("one")
	s.InsertNewline()
	s.InsertText("two")

	if !s.Undo() {
		t.Fatal("undo failed")
	}
	if got := s.Ed.Buffer().Lines(); !reflect.DeepEqual(got, []string{"one", ""}) {
		t.Errorf("after undo: %v", got)
	}
	if !s.Redo() {
		t.Fatal("redo failed")
	}
	if got := s.Ed.Buffer().Lines(); !reflect.DeepEqual(got, []string{"one", "two"}) {
		t.Errorf("after redo: %v", got)
	}
	if got := s.Ed.Pos(); got != (buffer.Pos{Line: 1, Col: 3}) {
		t.Errorf("cursor after redo = %v", got)
	}

	// Undo all the way back clears the modified flag.
	for s.Undo() {
	}
	if s.Modified() {
		t.Error("fully undone session still modified")
	}
}

func TestAutoIndent(t *testing.T) {
	s := New(0)
	s.InsertText("    indented")
	s.InsertNewline()
	if got := s.Ed.Buffer().Line(1); got != "    " {
		t.Errorf("new line = %q", got)
	}
	if got := s.Ed.Pos(); got != (buffer.Pos{Line: 1, Col: 4}) {
		t.Errorf("pos = %v", got)
	}
}

func TestBackspaceJoinsLines(t *testing.T) {
	s := New(0)
	s.Ed.SetLines([]string{"ab", "cd"})
	s.Ed.MoveTo(buffer.Pos{Line: 1, Col: 0})
	s.Backspace()
	if got := s.Ed.Buffer().Lines(); !reflect.DeepEqual(got, []string{"abcd"}) {
		t.Errorf("lines = %v", got)
	}
	if got := s.Ed.Pos(); got != (buffer.Pos{Line: 0, Col: 2}) {
		t.Errorf("pos = %v", got)
	}
}

func TestCutWithoutSelectionTakesLine(t *testing.T) {
	s := New(0)
	s.Ed.SetLines([]string{"first", "second"})
	s.Ed.MoveTo(buffer.Pos{Line: 0, Col: 3})

	got := s.Cut()
	if !reflect.DeepEqual(got, []string{"first"}) {
		t.Errorf("cut = %v", got)
	}
	if lines := s.Ed.Buffer().Lines(); !reflect.DeepEqual(lines, []string{"second"}) {
		t.Errorf("remaining = %v", lines)
	}
}

func TestCutPasteSelectionRoundTrip(t *testing.T) {
	s := New(0)
	s.Ed.SetLines([]string{"hello world"})
	s.Ed.MoveTo(buffer.Pos{Line: 0, Col: 5})
	s.Ed.SetMark()
	s.Ed.MoveTo(buffer.Pos{Line: 0, Col: 11})

	clip := s.Cut()
	if !reflect.DeepEqual(clip, []string{" world"}) {
		t.Fatalf("cut = %v", clip)
	}
	if s.Ed.HasMark() {
		t.Error("mark survived cut")
	}
	s.Paste(clip)
	if got := s.Ed.Buffer().Line(0); got != "hello world" {
		t.Errorf("after paste = %q", got)
	}
}

func TestToggleComment(t *testing.T) {
	s := New(0)
	s.Ed.SetLines([]string{"  value = 1"})
	s.Ed.MoveTo(buffer.Pos{Line: 0, Col: 4})

	s.ToggleComment()
	if got := s.Ed.Buffer().Line(0); got != "  # value = 1" {
		t.Errorf("commented = %q", got)
	}
	if got := s.Ed.Pos().Col; got != 6 {
		t.Errorf("cursor col = %d", got)
	}

	s.ToggleComment()
	if got := s.Ed.Buffer().Line(0); got != "  value = 1" {
		t.Errorf("uncommented = %q", got)
	}
	if got := s.Ed.Pos().Col; got != 4 {
		t.Errorf("cursor col = %d", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	s := New(0)
	s.Path = path
	s.Ed.SetLines([]string{"a", "b", "c"})
	s.Checkpoint()

	if err := s.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	if s.Modified() {
		t.Error("modified after save")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "a\nb\nc\n" {
		t.Errorf("file content = %q", data)
	}

	loaded, err := Open(path, 0)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if got := loaded.Ed.Buffer().Lines(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("loaded = %v", got)
	}
}

func TestSaveWithoutPathFails(t *testing.T) {
	s := New(0)
	if err := s.Save(); err == nil {
		t.Fatal("expected error")
	}
}

func TestOpenMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.txt")
	s, err := Open(path, 0)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if got := s.Ed.Buffer().Lines(); !reflect.DeepEqual(got, []string{""}) {
		t.Errorf("lines = %v", got)
	}
}

func TestOpenRejectsInvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bin")
	if err := os.WriteFile(path, []byte{0xff, 0xfe, 0x00}, 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path, 0); !errors.Is(err, ErrNotText) {
		t.Fatalf("err = %v, want ErrNotText", err)
	}
}

func TestBackupsPrunedToRetention(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	s := New(0)
	s.Path = path
	s.BackupDir = filepath.Join(dir, "backups")
	s.BackupRetention = 2

	for i := 0; i < 5; i++ {
		s.InsertText("x")
		if err := s.Save(); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	entries, err := os.ReadDir(s.BackupDir)
	if err != nil {
		t.Fatal(err)
	}
	// First save has nothing to back up, so four backups were written and
	// pruned down to two.
	if len(entries) != 2 {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("backups = %v", names)
	}
}

func TestExternallyModified(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte("x\n"), 0600); err != nil {
		t.Fatal(err)
	}
	s, err := Open(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if s.ExternallyModified() {
		t.Error("fresh open reports external change")
	}

	// Rewrite with a clearly different mtime.
	future := s.mtime.Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}
	if !s.ExternallyModified() {
		t.Error("mtime change not detected")
	}
}

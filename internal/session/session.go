// Package session composes a buffer, an editor view model and an undo
// engine into one open document with a file identity. All mutating commands
// go through here so every change lands in the history with its cursor.
package session

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/xonecas/caffee/internal/buffer"
	"github.com/xonecas/caffee/internal/editor"
	"github.com/xonecas/caffee/internal/history"
	"github.com/xonecas/caffee/internal/syntax"
)

// Session is one open document.
type Session struct {
	Ed editor.Model

	Path  string    // empty for a scratch buffer
	mtime time.Time // file mtime at last load or save

	hist      *history.Engine
	histLimit int

	BackupDir       string // empty disables backups
	BackupRetention int
}

// New creates an empty scratch session.
func New(histLimit int) *Session {
	s := &Session{
		Ed:        editor.New(),
		histLimit: histLimit,
	}
	s.resetHistory()
	return s
}

// Open loads path into a new session. A missing file opens an empty buffer
// bound to that path, matching the "edit a new file" flow.
func Open(path string, histLimit int) (*Session, error) {
	lines, mtime, err := loadLines(path)
	if err != nil {
		return nil, err
	}
	s := New(histLimit)
	s.Path = path
	s.mtime = mtime
	s.Ed.SetLines(lines)
	s.Ed.Rules = syntax.Resolve(path)
	s.resetHistory()
	return s, nil
}

// Name returns the display name for the status bar and tab list.
func (s *Session) Name() string {
	if s.Path == "" {
		return "untitled"
	}
	return filepath.Base(s.Path)
}

// Modified reports whether the buffer has diverged from the last saved
// state. The history index is zero exactly at the last save point.
func (s *Session) Modified() bool { return s.hist.Index() > 0 }

func (s *Session) CanUndo() bool { return s.hist.CanUndo() }
func (s *Session) CanRedo() bool { return s.hist.CanRedo() }

// resetHistory reseeds the engine with the current state as the save point.
func (s *Session) resetHistory() {
	p := s.Ed.Pos()
	s.hist = history.New(s.histLimit, s.Ed.Buffer().Lines(), p.Line, p.Col)
}

// Checkpoint records the current state. Identical content coalesces, so
// calling it after a no-op command is harmless.
func (s *Session) Checkpoint() {
	p := s.Ed.Pos()
	s.hist.Record(s.Ed.Buffer().Lines(), p.Line, p.Col)
}

// ---------------------------------------------------------------------------
// Editing commands
// ---------------------------------------------------------------------------

// InsertText inserts text at the cursor. Multi-line text splices.
func (s *Session) InsertText(text string) {
	if text == "" {
		return
	}
	end := s.Ed.Buffer().Insert(s.Ed.Pos(), text)
	s.Ed.MoveTo(end)
	s.Checkpoint()
}

// InsertNewline splits the line at the cursor. The new line inherits the
// leading whitespace of the one it came from.
func (s *Session) InsertNewline() {
	p := s.Ed.Pos()
	indent := leadingWhitespace(s.Ed.Buffer().Line(p.Line))
	if len(indent) > p.Col {
		indent = indent[:p.Col]
	}
	end := s.Ed.Buffer().Insert(p, "\n"+indent)
	s.Ed.MoveTo(end)
	s.Checkpoint()
}

// Backspace deletes the rune before the cursor, joining lines at column 0.
func (s *Session) Backspace() {
	p := s.Ed.Pos()
	if p.Line == 0 && p.Col == 0 {
		return
	}
	var start buffer.Pos
	if p.Col > 0 {
		start = buffer.Pos{Line: p.Line, Col: p.Col - 1}
	} else {
		start = buffer.Pos{Line: p.Line - 1, Col: s.Ed.Buffer().LineLen(p.Line - 1)}
	}
	s.Ed.Buffer().DeleteRange(start, p)
	s.Ed.MoveTo(start)
	s.Checkpoint()
}

// DeleteForward deletes the rune under the cursor, joining lines at the end.
func (s *Session) DeleteForward() {
	p := s.Ed.Pos()
	var end buffer.Pos
	if p.Col < s.Ed.Buffer().LineLen(p.Line) {
		end = buffer.Pos{Line: p.Line, Col: p.Col + 1}
	} else if p.Line < s.Ed.Buffer().Len()-1 {
		end = buffer.Pos{Line: p.Line + 1, Col: 0}
	} else {
		return
	}
	s.Ed.Buffer().DeleteRange(p, end)
	s.Ed.MoveTo(p)
	s.Checkpoint()
}

// DeleteLine removes the current line without touching the clipboard.
func (s *Session) DeleteLine() {
	p := s.Ed.Pos()
	s.Ed.Buffer().DeleteLine(p.Line)
	s.Ed.MoveTo(buffer.Pos{Line: p.Line, Col: 0})
	s.Checkpoint()
}

// DeleteRange removes [start, end) and places the cursor at start.
func (s *Session) DeleteRange(start, end buffer.Pos) {
	s.Ed.Buffer().DeleteRange(start, end)
	s.Ed.MoveTo(start)
	s.Checkpoint()
}

// ReplaceRange replaces [start, end) with text and places the cursor after
// the inserted text.
func (s *Session) ReplaceRange(start, end buffer.Pos, text string) {
	s.Ed.Buffer().DeleteRange(start, end)
	ins := s.Ed.Buffer().Insert(s.Ed.Buffer().Clamp(start), text)
	s.Ed.MoveTo(ins)
	s.Checkpoint()
}

// Cut removes the selection, or the whole current line when no selection is
// active, and returns the removed lines for the clipboard.
func (s *Session) Cut() []string {
	if start, end, ok := s.Ed.SelectionRange(); ok {
		lines := s.Ed.Buffer().Extract(start, end)
		s.Ed.Buffer().DeleteRange(start, end)
		s.Ed.ClearMark()
		s.Ed.MoveTo(start)
		s.Checkpoint()
		return lines
	}
	p := s.Ed.Pos()
	line := s.Ed.Buffer().Line(p.Line)
	s.Ed.Buffer().DeleteLine(p.Line)
	s.Ed.MoveTo(buffer.Pos{Line: p.Line, Col: 0})
	s.Checkpoint()
	return []string{line}
}

// Copy returns the selected lines without modifying the buffer. With no
// selection it copies the current line. The mark is cleared either way.
func (s *Session) Copy() []string {
	if start, end, ok := s.Ed.SelectionRange(); ok {
		lines := s.Ed.Buffer().Extract(start, end)
		s.Ed.ClearMark()
		return lines
	}
	p := s.Ed.Pos()
	return []string{s.Ed.Buffer().Line(p.Line)}
}

// Paste splices clipboard lines in at the cursor.
func (s *Session) Paste(lines []string) {
	if len(lines) == 0 {
		return
	}
	s.InsertText(strings.Join(lines, "\n"))
}

// ToggleComment adds or removes a "#" line comment on the current line,
// preserving indentation and keeping the cursor on the same character.
func (s *Session) ToggleComment() {
	p := s.Ed.Pos()
	line := s.Ed.Buffer().Line(p.Line)
	indent := leadingWhitespace(line)
	rest := line[len(indent):]

	var newLine string
	var delta int
	switch {
	case strings.HasPrefix(rest, "# "):
		newLine = indent + rest[2:]
		delta = -2
	case strings.HasPrefix(rest, "#"):
		newLine = indent + rest[1:]
		delta = -1
	default:
		newLine = indent + "# " + rest
		delta = 2
	}
	s.Ed.Buffer().ReplaceLine(p.Line, newLine)

	col := p.Col + delta
	if col < 0 {
		col = 0
	}
	s.Ed.MoveTo(buffer.Pos{Line: p.Line, Col: col})
	s.Checkpoint()
}

// GotoLine moves the cursor to a 1-based line number.
func (s *Session) GotoLine(n int) {
	s.Ed.MoveTo(buffer.Pos{Line: n - 1, Col: 0})
}

// ---------------------------------------------------------------------------
// Undo / redo
// ---------------------------------------------------------------------------

// Undo restores the previous snapshot. Returns false when at the oldest.
func (s *Session) Undo() bool {
	p := s.Ed.Pos()
	snap, ok := s.hist.Undo(s.Ed.Buffer().Lines(), p.Line, p.Col)
	if !ok {
		return false
	}
	s.restore(snap)
	return true
}

// Redo restores the next snapshot. Returns false when at the newest.
func (s *Session) Redo() bool {
	snap, ok := s.hist.Redo()
	if !ok {
		return false
	}
	s.restore(snap)
	return true
}

func (s *Session) restore(snap history.Snapshot) {
	s.Ed.Buffer().SetLines(snap.Lines)
	s.Ed.ClearMark()
	s.Ed.CenterOn(buffer.Pos{Line: snap.Line, Col: snap.Col})
}

func leadingWhitespace(line string) string {
	for i, r := range line {
		if r != ' ' && r != '\t' {
			return line[:i]
		}
	}
	return line
}

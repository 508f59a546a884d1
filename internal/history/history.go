// Package history implements snapshot-based undo and redo for an edit
// session. Each entry captures the full document content plus the cursor
// position at the time of the snapshot. The engine holds a bounded list of
// entries and an index pointing at the entry the session last diverged from.
package history

// DefaultLimit is the snapshot cap used when no limit is configured.
const DefaultLimit = 50

// Snapshot is one recorded state: the document lines and the cursor that
// produced them.
type Snapshot struct {
	Lines []string
	Line  int
	Col   int
}

func (s Snapshot) equalContent(lines []string) bool {
	if len(s.Lines) != len(lines) {
		return false
	}
	for i := range lines {
		if s.Lines[i] != lines[i] {
			return false
		}
	}
	return true
}

func cloneLines(lines []string) []string {
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}

// Engine keeps the snapshot list. The zero value is not usable; construct
// with New.
type Engine struct {
	entries []Snapshot
	index   int
	limit   int
}

// New returns an engine seeded with the initial document state. The seed is
// entry 0 and does not count as a modification.
func New(limit int, lines []string, line, col int) *Engine {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Engine{
		entries: []Snapshot{{Lines: cloneLines(lines), Line: line, Col: col}},
		index:   0,
		limit:   limit,
	}
}

// Index returns the position of the current entry. Zero means the session is
// at its initial state.
func (e *Engine) Index() int { return e.index }

// Len returns the number of stored snapshots.
func (e *Engine) Len() int { return len(e.entries) }

// CanUndo reports whether an earlier snapshot exists.
func (e *Engine) CanUndo() bool { return e.index > 0 }

// CanRedo reports whether a later snapshot exists.
func (e *Engine) CanRedo() bool { return e.index < len(e.entries)-1 }

// Record stores a new snapshot after the current entry. If the content is
// identical to the current entry the call coalesces into it (only the cursor
// is refreshed) and the redo tail survives. Genuinely new content discards
// everything after the current entry before appending. When the cap is
// exceeded the oldest entry is evicted.
func (e *Engine) Record(lines []string, line, col int) {
	cur := &e.entries[e.index]
	if cur.equalContent(lines) {
		cur.Line, cur.Col = line, col
		return
	}
	e.entries = append(e.entries[:e.index+1], Snapshot{
		Lines: cloneLines(lines), Line: line, Col: col,
	})
	e.index++
	if len(e.entries) > e.limit {
		e.entries = e.entries[1:]
		e.index--
	}
}

// Undo records the live state so that a following Redo restores it exactly,
// then steps back one entry. Returns false when there is nothing to undo.
func (e *Engine) Undo(lines []string, line, col int) (Snapshot, bool) {
	e.Record(lines, line, col)
	if e.index == 0 {
		return Snapshot{}, false
	}
	e.index--
	return e.snapshotAt(e.index), true
}

// Redo steps forward one entry. Returns false when there is nothing to redo.
func (e *Engine) Redo() (Snapshot, bool) {
	if e.index >= len(e.entries)-1 {
		return Snapshot{}, false
	}
	e.index++
	return e.snapshotAt(e.index), true
}

func (e *Engine) snapshotAt(i int) Snapshot {
	s := e.entries[i]
	return Snapshot{Lines: cloneLines(s.Lines), Line: s.Line, Col: s.Col}
}

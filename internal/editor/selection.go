package editor

import "github.com/xonecas/caffee/internal/buffer"

// ---------------------------------------------------------------------------
// Selection
// ---------------------------------------------------------------------------

// SetMark drops the selection anchor at the cursor. A second call moves it.
func (m *Model) SetMark() {
	p := m.Pos()
	m.mark = &p
}

// ClearMark deactivates the selection.
func (m *Model) ClearMark() { m.mark = nil }

// HasMark reports whether a selection anchor is set.
func (m Model) HasMark() bool { return m.mark != nil }

// SelectionRange returns the active selection as a normalized half-open
// range [start, end). The second return is false when no anchor is set or
// the anchor sits on the cursor.
func (m Model) SelectionRange() (start, end buffer.Pos, ok bool) {
	if m.mark == nil {
		return buffer.Pos{}, buffer.Pos{}, false
	}
	a := m.buf.Clamp(*m.mark)
	c := m.Pos()
	if a == c {
		return buffer.Pos{}, buffer.Pos{}, false
	}
	if c.Less(a) {
		return c, a, true
	}
	return a, c, true
}

// SelectionContains reports whether p falls inside the active selection.
// The end position is excluded, matching the half-open range.
func (m Model) SelectionContains(p buffer.Pos) bool {
	start, end, ok := m.SelectionRange()
	if !ok {
		return false
	}
	return !p.Less(start) && p.Less(end)
}

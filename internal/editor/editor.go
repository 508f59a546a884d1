// Package editor provides the text editing view model: cursor and viewport
// state over a buffer, selection, search, and rendering. It owns no file or
// history concerns; those live one level up in the session.
package editor

import (
	"charm.land/bubbles/v2/cursor"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/xonecas/caffee/internal/buffer"
	"github.com/xonecas/caffee/internal/syntax"
)

// ---------------------------------------------------------------------------
// Model
// ---------------------------------------------------------------------------

// Model is the editing component for one open buffer.
type Model struct {
	// Public configuration — set before first View.
	TabWidth int
	Rules    []syntax.Rule // nil = no highlighting

	// Styles — set by parent.
	Text      lipgloss.Style
	LineNum   lipgloss.Style
	Selection lipgloss.Style
	Category  map[syntax.Category]lipgloss.Style

	buf *buffer.Buffer

	row     int // cursor line (0-indexed)
	col     int // cursor column in runes
	desired int // screen column the cursor tries to keep on vertical moves

	scroll  int // first visible line
	hscroll int // first visible screen column

	width  int
	height int

	focus  bool
	cursor cursor.Model

	mark *buffer.Pos // selection anchor, nil when inactive
}

// New creates an editor over an empty buffer.
func New() Model {
	c := cursor.New()
	return Model{
		TabWidth: 4,
		buf:      buffer.New(),
		cursor:   c,
	}
}

// Buffer exposes the backing buffer for session-level edits.
func (m *Model) Buffer() *buffer.Buffer { return m.buf }

func (m *Model) SetWidth(w int)  { m.width = w; m.scrollToCursor() }
func (m *Model) SetHeight(h int) { m.height = h; m.scrollToCursor() }

func (m *Model) Focus() tea.Cmd {
	m.focus = true
	return m.cursor.Focus()
}

func (m *Model) Blur() {
	m.focus = false
	m.cursor.Blur()
}

func (m Model) Focused() bool { return m.focus }

// Pos returns the cursor position.
func (m Model) Pos() buffer.Pos { return buffer.Pos{Line: m.row, Col: m.col} }

// Scroll returns the first visible line.
func (m Model) Scroll() int { return m.scroll }

// SetLines replaces the content and resets cursor and viewport.
func (m *Model) SetLines(lines []string) {
	m.buf.SetLines(lines)
	m.row, m.col, m.desired = 0, 0, 0
	m.scroll, m.hscroll = 0, 0
	m.mark = nil
}

// ---------------------------------------------------------------------------
// Cursor movement
// ---------------------------------------------------------------------------

// MoveTo clamps the target into the buffer, places the cursor there, resets
// the desired column and re-scrolls both axes. Every cursor relocation that
// is not a plain vertical step goes through here: edits, undo, redo, search
// hits, goto line.
func (m *Model) MoveTo(p buffer.Pos) {
	p = m.buf.Clamp(p)
	m.row, m.col = p.Line, p.Col
	m.desired = m.screenCol(m.row, m.col)
	m.scrollToCursor()
}

// MoveVertical steps the cursor up (negative) or down by delta lines,
// keeping the desired screen column where line lengths allow.
func (m *Model) MoveVertical(delta int) {
	m.row += delta
	if m.row < 0 {
		m.row = 0
	}
	if m.row >= m.buf.Len() {
		m.row = m.buf.Len() - 1
	}
	m.col = m.colForScreen(m.row, m.desired)
	m.scrollToCursor()
}

// MoveHorizontal steps the cursor left (negative) or right by one column,
// wrapping across line boundaries.
func (m *Model) MoveHorizontal(delta int) {
	if delta < 0 {
		if m.col > 0 {
			m.col--
		} else if m.row > 0 {
			m.row--
			m.col = m.buf.LineLen(m.row)
		}
	} else {
		if m.col < m.buf.LineLen(m.row) {
			m.col++
		} else if m.row < m.buf.Len()-1 {
			m.row++
			m.col = 0
		}
	}
	m.desired = m.screenCol(m.row, m.col)
	m.scrollToCursor()
}

// LineStart moves to column zero.
func (m *Model) LineStart() { m.MoveTo(buffer.Pos{Line: m.row, Col: 0}) }

// LineEnd moves past the last character of the line.
func (m *Model) LineEnd() {
	m.MoveTo(buffer.Pos{Line: m.row, Col: m.buf.LineLen(m.row)})
}

// Page moves a viewport height up or down.
func (m *Model) Page(dir int) {
	h := m.height
	if h < 1 {
		h = 1
	}
	m.MoveVertical(dir * h)
}

// DocStart moves to the beginning of the buffer.
func (m *Model) DocStart() { m.MoveTo(buffer.Pos{}) }

// DocEnd moves past the last character of the buffer.
func (m *Model) DocEnd() {
	last := m.buf.Len() - 1
	m.MoveTo(buffer.Pos{Line: last, Col: m.buf.LineLen(last)})
}

// CenterOn places the cursor at p and centers the viewport on it when the
// target would otherwise sit at the very edge. Used for search hits.
func (m *Model) CenterOn(p buffer.Pos) {
	m.MoveTo(p)
	if m.height > 0 {
		m.scroll = m.row - m.height/2
		m.clampScroll()
	}
}

// ---------------------------------------------------------------------------
// Screen-column mapping
// ---------------------------------------------------------------------------

// screenCol maps a rune column on a line to its screen column, counting
// East-Asian wide runes as two cells and tabs as a fixed TabWidth cells.
func (m *Model) screenCol(line, col int) int {
	runes := m.buf.LineRunes(line)
	if col > len(runes) {
		col = len(runes)
	}
	w := 0
	for _, r := range runes[:col] {
		w += m.runeWidth(r)
	}
	return w
}

// colForScreen maps a target screen column back to the closest rune column
// on the given line, never landing inside a wide rune.
func (m *Model) colForScreen(line, target int) int {
	runes := m.buf.LineRunes(line)
	w := 0
	for i, r := range runes {
		rw := m.runeWidth(r)
		if w+rw > target {
			return i
		}
		w += rw
	}
	return len(runes)
}

func (m *Model) runeWidth(r rune) int {
	if r == '\t' {
		return m.tabWidth()
	}
	w := runewidth.RuneWidth(r)
	if w < 1 {
		w = 1
	}
	return w
}

func (m *Model) tabWidth() int {
	if m.TabWidth < 1 {
		return 4
	}
	return m.TabWidth
}

// ---------------------------------------------------------------------------
// Scrolling
// ---------------------------------------------------------------------------

// scrollToCursor adjusts both scroll offsets so the cursor is visible.
func (m *Model) scrollToCursor() {
	if m.height > 0 {
		if m.row < m.scroll {
			m.scroll = m.row
		}
		if m.row >= m.scroll+m.height {
			m.scroll = m.row - m.height + 1
		}
		m.clampScroll()
	}
	tw := m.textWidth()
	if tw > 0 {
		sc := m.screenCol(m.row, m.col)
		if sc < m.hscroll {
			m.hscroll = sc
		}
		if sc >= m.hscroll+tw {
			m.hscroll = sc - tw + 1
		}
		if m.hscroll < 0 {
			m.hscroll = 0
		}
	}
}

func (m *Model) clampScroll() {
	maxScroll := m.buf.Len() - m.height
	if maxScroll < 0 {
		maxScroll = 0
	}
	if m.scroll > maxScroll {
		m.scroll = maxScroll
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

// Package buffer implements the line-oriented text storage behind an edit
// session. A buffer is an ordered sequence of lines without terminator
// characters, and it is never empty: an empty document is a single
// zero-length line. Positions are (line, column) pairs counted in runes.
//
// All mutating operations clamp out-of-range arguments to the nearest valid
// position instead of failing, so callers driven by history restores or
// plugin requests cannot corrupt the buffer.
package buffer

import "strings"

// Pos is a rune-indexed position. Col == line length means "after the last
// character", which is a valid caret position.
type Pos struct {
	Line, Col int
}

// Less reports whether p precedes q in (line, column) lexicographic order.
func (p Pos) Less(q Pos) bool {
	return p.Line < q.Line || (p.Line == q.Line && p.Col < q.Col)
}

// Buffer holds the document lines.
type Buffer struct {
	lines [][]rune
}

// New returns an empty buffer containing one zero-length line.
func New() *Buffer {
	return &Buffer{lines: [][]rune{{}}}
}

// FromLines builds a buffer from the given lines. An empty slice yields the
// single-empty-line document.
func FromLines(lines []string) *Buffer {
	b := &Buffer{}
	b.SetLines(lines)
	return b
}

// Len returns the number of lines. Always >= 1.
func (b *Buffer) Len() int { return len(b.lines) }

// Line returns the content of line i, clamped into range.
func (b *Buffer) Line(i int) string { return string(b.lines[b.clampLine(i)]) }

// LineLen returns the rune length of line i, clamped into range.
func (b *Buffer) LineLen(i int) int { return len(b.lines[b.clampLine(i)]) }

// LineRunes returns the runes of line i without copying. Callers must not
// mutate the returned slice.
func (b *Buffer) LineRunes(i int) []rune { return b.lines[b.clampLine(i)] }

// Lines returns a copy of all lines as strings.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	for i, l := range b.lines {
		out[i] = string(l)
	}
	return out
}

// SetLines replaces the entire content. An empty slice leaves one empty line.
func (b *Buffer) SetLines(lines []string) {
	if len(lines) == 0 {
		b.lines = [][]rune{{}}
		return
	}
	b.lines = make([][]rune, len(lines))
	for i, l := range lines {
		b.lines[i] = []rune(l)
	}
}

func (b *Buffer) clampLine(i int) int {
	if i < 0 {
		return 0
	}
	if i >= len(b.lines) {
		return len(b.lines) - 1
	}
	return i
}

// Clamp returns p adjusted to the nearest valid position.
func (b *Buffer) Clamp(p Pos) Pos {
	p.Line = b.clampLine(p.Line)
	if p.Col < 0 {
		p.Col = 0
	}
	if n := len(b.lines[p.Line]); p.Col > n {
		p.Col = n
	}
	return p
}

// Insert places text at p, splitting into multiple lines on "\n" and
// reindexing the tail. Carriage returns are dropped. Returns the position
// immediately after the inserted text.
func (b *Buffer) Insert(p Pos, text string) Pos {
	p = b.Clamp(p)
	text = strings.ReplaceAll(text, "\r", "")
	parts := strings.Split(text, "\n")

	line := b.lines[p.Line]
	head := append([]rune{}, line[:p.Col]...)
	tail := append([]rune{}, line[p.Col:]...)

	if len(parts) == 1 {
		merged := append(head, []rune(parts[0])...)
		b.lines[p.Line] = append(merged, tail...)
		return Pos{Line: p.Line, Col: p.Col + len([]rune(parts[0]))}
	}

	b.lines[p.Line] = append(head, []rune(parts[0])...)
	inserted := make([][]rune, 0, len(parts)-1)
	for _, part := range parts[1 : len(parts)-1] {
		inserted = append(inserted, []rune(part))
	}
	last := append([]rune(parts[len(parts)-1]), tail...)
	inserted = append(inserted, last)

	rest := append([][]rune{}, b.lines[p.Line+1:]...)
	b.lines = append(b.lines[:p.Line+1], append(inserted, rest...)...)

	endLine := p.Line + len(parts) - 1
	return Pos{Line: endLine, Col: len([]rune(parts[len(parts)-1]))}
}

// DeleteRange removes the half-open range [start, end). Reversed arguments
// are swapped; out-of-range positions are clamped. Deleting everything
// leaves one empty line.
func (b *Buffer) DeleteRange(start, end Pos) {
	start, end = b.Clamp(start), b.Clamp(end)
	if end.Less(start) {
		start, end = end, start
	}
	if start == end {
		return
	}
	if start.Line == end.Line {
		line := b.lines[start.Line]
		b.lines[start.Line] = append(append([]rune{}, line[:start.Col]...), line[end.Col:]...)
		return
	}
	head := b.lines[start.Line][:start.Col]
	tail := b.lines[end.Line][end.Col:]
	merged := append(append([]rune{}, head...), tail...)
	rest := append([][]rune{}, b.lines[end.Line+1:]...)
	b.lines = append(b.lines[:start.Line], append([][]rune{merged}, rest...)...)
}

// Extract returns the text inside the half-open range [start, end) as lines.
func (b *Buffer) Extract(start, end Pos) []string {
	start, end = b.Clamp(start), b.Clamp(end)
	if end.Less(start) {
		start, end = end, start
	}
	if start.Line == end.Line {
		return []string{string(b.lines[start.Line][start.Col:end.Col])}
	}
	out := []string{string(b.lines[start.Line][start.Col:])}
	for i := start.Line + 1; i < end.Line; i++ {
		out = append(out, string(b.lines[i]))
	}
	return append(out, string(b.lines[end.Line][:end.Col]))
}

// SplitLine breaks line p.Line at p.Col into two lines.
func (b *Buffer) SplitLine(p Pos) {
	p = b.Clamp(p)
	line := b.lines[p.Line]
	head := append([]rune{}, line[:p.Col]...)
	tail := append([]rune{}, line[p.Col:]...)
	rest := append([][]rune{}, b.lines[p.Line+1:]...)
	b.lines = append(b.lines[:p.Line], append([][]rune{head, tail}, rest...)...)
}

// JoinWithNext appends line i+1 onto line i. No-op on the last line.
func (b *Buffer) JoinWithNext(i int) {
	i = b.clampLine(i)
	if i >= len(b.lines)-1 {
		return
	}
	b.lines[i] = append(b.lines[i], b.lines[i+1]...)
	b.lines = append(b.lines[:i+1], b.lines[i+2:]...)
}

// ReplaceLine overwrites line i with content.
func (b *Buffer) ReplaceLine(i int, content string) {
	b.lines[b.clampLine(i)] = []rune(content)
}

// DeleteLine removes line i entirely. Removing the only line leaves one
// empty line instead.
func (b *Buffer) DeleteLine(i int) {
	i = b.clampLine(i)
	if len(b.lines) == 1 {
		b.lines[0] = []rune{}
		return
	}
	b.lines = append(b.lines[:i], b.lines[i+1:]...)
}

package editor

import (
	"fmt"
	"regexp"

	"github.com/xonecas/caffee/internal/buffer"
)

// ---------------------------------------------------------------------------
// Search
// ---------------------------------------------------------------------------

// Search finds the next match of pattern after the cursor, scanning forward
// and wrapping to the top of the buffer. The scan starts one column past the
// cursor, so a match at the exact cursor position is never reported; repeated
// searches with the same pattern therefore step through every occurrence.
// Returns the match position and true, or false when the pattern matches
// nowhere in the buffer.
func (m *Model) Search(pattern string) (buffer.Pos, bool, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return buffer.Pos{}, false, fmt.Errorf("bad pattern: %w", err)
	}

	startRow, startCol := m.row, m.col+1

	// Forward from the cursor to the end of the buffer.
	if loc := matchOnLine(re, m.buf.Line(startRow), startCol); loc >= 0 {
		return buffer.Pos{Line: startRow, Col: loc}, true, nil
	}
	for i := startRow + 1; i < m.buf.Len(); i++ {
		if loc := matchOnLine(re, m.buf.Line(i), 0); loc >= 0 {
			return buffer.Pos{Line: i, Col: loc}, true, nil
		}
	}

	// Wrap: top of the buffer back to the start line. On the start line only
	// matches strictly before the cursor column count; the cursor's own
	// position stays excluded, and the forward pass covered everything after.
	for i := 0; i < startRow; i++ {
		if loc := matchOnLine(re, m.buf.Line(i), 0); loc >= 0 {
			return buffer.Pos{Line: i, Col: loc}, true, nil
		}
	}
	if loc := matchOnLine(re, m.buf.Line(startRow), 0); loc >= 0 && loc < startCol-1 {
		return buffer.Pos{Line: startRow, Col: loc}, true, nil
	}

	return buffer.Pos{}, false, nil
}

// matchOnLine returns the rune index of the first match at or after fromCol,
// or -1. Match positions are rune-indexed to line up with buffer columns.
func matchOnLine(re *regexp.Regexp, line string, fromCol int) int {
	runes := []rune(line)
	if fromCol > len(runes) {
		return -1
	}
	sub := string(runes[fromCol:])
	loc := re.FindStringIndex(sub)
	if loc == nil {
		return -1
	}
	return fromCol + len([]rune(sub[:loc[0]]))
}

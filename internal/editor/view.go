package editor

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/xonecas/caffee/internal/buffer"
	"github.com/xonecas/caffee/internal/syntax"
)

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

// gutterWidth returns the width of the line number column including its
// trailing space.
func (m Model) gutterWidth() int {
	digits := len(fmt.Sprintf("%d", m.buf.Len()))
	if digits < 2 {
		digits = 2
	}
	return digits + 1
}

// textWidth returns the width available for line content.
func (m Model) textWidth() int {
	w := m.width - m.gutterWidth()
	if w < 1 {
		w = 1
	}
	return w
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	tw := m.textWidth()
	gw := m.gutterWidth()
	var b strings.Builder

	for vi := 0; vi < m.height; vi++ {
		row := m.scroll + vi
		if vi > 0 {
			b.WriteByte('\n')
		}

		if row >= m.buf.Len() {
			b.WriteString(m.Text.Render(strings.Repeat(" ", m.width)))
			continue
		}

		num := fmt.Sprintf("%*d ", gw-1, row+1)
		b.WriteString(m.LineNum.Render(num))

		rendered := m.renderLine(row)
		rw := lipgloss.Width(rendered)
		if rw > tw {
			rendered = ansi.Truncate(rendered, tw, "")
			rw = lipgloss.Width(rendered)
		}
		b.WriteString(rendered)
		if rw < tw {
			b.WriteString(m.Text.Render(strings.Repeat(" ", tw-rw)))
		}
	}

	return b.String()
}

// renderLine renders one buffer line in screen space: tabs expanded, wide
// runes two cells, horizontal scroll applied, selection and syntax styling
// per rune, and the cursor glyph on the focused row.
func (m Model) renderLine(row int) string {
	runes := m.buf.LineRunes(row)
	cats := syntax.Apply(runes, m.Rules)
	tw := m.textWidth()
	end := m.hscroll + tw

	var b strings.Builder
	screen := 0
	for i, r := range runes {
		w := m.runeWidth(r)
		if screen+w <= m.hscroll {
			screen += w
			continue
		}
		if screen >= end {
			break
		}

		text := string(r)
		if r == '\t' {
			text = strings.Repeat(" ", w)
		}

		isCursor := m.focus && row == m.row && i == m.col
		selected := m.SelectionContains(buffer.Pos{Line: row, Col: i})
		b.WriteString(m.renderCell(text, cats[i], selected, isCursor))
		screen += w
	}

	// Cursor past the last character.
	if m.focus && row == m.row && m.col >= len(runes) {
		b.WriteString(m.renderCell(" ", syntax.None, false, true))
	}

	return b.String()
}

// renderCell styles a single cell's text by precedence: cursor glyph wins,
// then selection, then syntax category, then plain text.
func (m Model) renderCell(text string, cat syntax.Category, selected, isCursor bool) string {
	sty := m.styleFor(cat)
	if selected {
		sty = m.Selection
	}
	if isCursor {
		m.cursor.SetChar(text)
		m.cursor.TextStyle = sty
		return m.cursor.View()
	}
	return sty.Render(text)
}

func (m Model) styleFor(cat syntax.Category) lipgloss.Style {
	if sty, ok := m.Category[cat]; ok {
		return sty
	}
	return m.Text
}

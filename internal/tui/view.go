package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

func (m Model) View() tea.View {
	v := tea.NewView(m.renderContent())
	v.AltScreen = true
	return v
}

// renderContent produces the string content for the view: the focused
// editor, the optional terminal panel, and the status area.
func (m Model) renderContent() string {
	if m.width == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.cur().Ed.View())
	b.WriteByte('\n')

	if m.showTerm {
		b.WriteString(m.styles.Border.Render(strings.Repeat("─", m.width)))
		b.WriteByte('\n')
		m.renderTerminal(&b)
	}

	m.renderStatusBar(&b)
	return b.String()
}

// renderTerminal writes the panel rows: the scrollback tail, or the slice
// the user scrolled back to, padded to the panel height.
func (m Model) renderTerminal(b *strings.Builder) {
	h := m.termHeight()
	lines := m.panel.Visible(h)
	if note := m.panel.Note(); note != "" && len(lines) == 0 {
		lines = []string{note}
	}
	style := m.styles.TermText
	if m.focus != focusTerminal {
		style = m.styles.TermDim
	}
	for row := 0; row < h; row++ {
		if row < len(lines) {
			b.WriteString(style.Render(ansi.Truncate(lines[row], m.width, "")))
		}
		b.WriteByte('\n')
	}
}

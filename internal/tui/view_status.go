package tui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

// renderStatusBar writes the status separator and the bottom line, which is
// either the status bar or an open prompt.
func (m Model) renderStatusBar(b *strings.Builder) {
	b.WriteString(m.styles.Border.Render(strings.Repeat("─", m.width)))
	b.WriteByte('\n')

	if m.prompt != nil {
		b.WriteString(m.renderPromptLine())
		return
	}

	// -- Left segments --
	s := m.cur()
	name := s.Name()
	if s.Modified() {
		name += " *"
	}
	leftParts := []string{m.styles.StatusText.Render(" " + name)}

	if s.Ed.HasMark() {
		leftParts = append(leftParts, m.styles.StatusMark.Render("MARK"))
	}
	if m.status != "" {
		leftParts = append(leftParts, m.styles.Accent.Render(m.status))
	}
	left := strings.Join(leftParts, m.styles.StatusText.Render("  "))

	// -- Right segments --
	var rightParts []string
	if len(m.sessions) > 1 {
		rightParts = append(rightParts,
			m.styles.StatusText.Render(fmt.Sprintf("[%d/%d]", m.focused+1, len(m.sessions))))
	}
	p := s.Ed.Pos()
	rightParts = append(rightParts,
		m.styles.StatusText.Render(fmt.Sprintf("%d:%d", p.Line+1, p.Col+1)))
	right := strings.Join(rightParts, m.styles.StatusText.Render("  "))

	// -- Compose: left + gap + right + trailing space --
	leftW := lipgloss.Width(left)
	rightW := lipgloss.Width(right)
	gap := m.width - leftW - rightW - 1
	if gap < 0 {
		gap = 0
	}
	b.WriteString(left)
	b.WriteString(m.styles.StatusText.Render(strings.Repeat(" ", gap)))
	b.WriteString(right)
	b.WriteString(m.styles.StatusText.Render(" "))
}

// renderPromptLine draws the open prompt over the status bar, with a block
// cursor at the insertion point.
func (m Model) renderPromptLine() string {
	p := m.prompt
	label := m.styles.Accent.Render(" " + p.Label + ": ")

	var input string
	if p.Choices != "" {
		input = m.styles.Prompt.Render(string(p.input))
	} else {
		before := string(p.input[:p.cursor])
		var at, after string
		if p.cursor < len(p.input) {
			at = string(p.input[p.cursor])
			after = string(p.input[p.cursor+1:])
		} else {
			at = " "
		}
		input = m.styles.Prompt.Render(before) +
			m.styles.Selection.Render(at) +
			m.styles.Prompt.Render(after)
	}

	line := label + input
	gap := m.width - lipgloss.Width(line)
	if gap > 0 {
		line += m.styles.StatusText.Render(strings.Repeat(" ", gap))
	}
	return line
}

package editor

import tea "charm.land/bubbletea/v2"

// Update forwards messages to the cursor component for blink handling.
// Keyboard routing happens in the parent; the editor only needs to see the
// blink ticks and focus messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.cursor, cmd = m.cursor.Update(msg)
	return m, cmd
}

// ResetBlink restarts the cursor blink cycle after a keystroke so the
// cursor is solid while typing.
func (m *Model) ResetBlink() tea.Cmd {
	return m.cursor.Blink()
}

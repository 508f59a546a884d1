package tui

import (
	tea "charm.land/bubbletea/v2"
)

// handleEditorKey routes a keystroke to the focused session. Navigation
// goes straight to the editor; mutations go through session commands so
// every change is checkpointed.
func (m Model) handleEditorKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	s := m.cur()
	ed := &s.Ed
	var cmd tea.Cmd

	switch msg.Keystroke() {
	// --- Navigation ---
	case "up":
		ed.MoveVertical(-1)
	case "down":
		ed.MoveVertical(1)
	case "left":
		ed.MoveHorizontal(-1)
	case "right":
		ed.MoveHorizontal(1)
	case "home", "ctrl+a":
		ed.LineStart()
	case "end", "ctrl+e":
		ed.LineEnd()
	case "pgup":
		ed.Page(-1)
	case "pgdown":
		ed.Page(1)
	case "ctrl+home":
		ed.DocStart()
	case "ctrl+end":
		ed.DocEnd()

	// --- Selection ---
	case "ctrl+6":
		if ed.HasMark() {
			ed.ClearMark()
			cmd = m.setStatus("mark cleared")
		} else {
			ed.SetMark()
			cmd = m.setStatus("mark set")
		}
	case "alt+6":
		m.clipboard = s.Copy()
		cmd = m.setStatus("copied")

	// --- Editing ---
	case "enter":
		s.InsertNewline()
	case "backspace", "ctrl+h":
		s.Backspace()
	case "delete", "ctrl+d":
		s.DeleteForward()
	case "tab":
		s.InsertText("\t")
	case "ctrl+k":
		m.clipboard = s.Cut()
	case "ctrl+u":
		s.Paste(m.clipboard)
	case "ctrl+y":
		s.DeleteLine()
	case "ctrl+_", "ctrl+/":
		s.ToggleComment()

	// --- History ---
	case "ctrl+z":
		if !s.Undo() {
			cmd = m.setStatus("nothing to undo")
		}
	case "ctrl+r":
		if !s.Redo() {
			cmd = m.setStatus("nothing to redo")
		}

	default:
		if msg.Text == "" {
			return m, nil
		}
		s.InsertText(msg.Text)
	}

	return m, tea.Batch(cmd, ed.ResetBlink())
}

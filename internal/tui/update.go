package tui

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/xonecas/caffee/internal/term"
)

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// -- Window resize -------------------------------------------------------
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layoutSessions()
		return m, nil

	// -- Paste (bracketed paste) ---------------------------------------------
	case tea.PasteMsg:
		if m.focus == focusEditor && msg.Content != "" {
			m.cur().InsertText(msg.Content)
		}
		return m, nil

	// -- Keyboard ------------------------------------------------------------
	case tea.KeyPressMsg:
		if m.focus == focusPrompt {
			return m.handlePromptKey(msg)
		}
		if mdl, cmd, handled := m.handleKeyPress(msg); handled {
			return mdl, cmd
		}
		if m.focus == focusTerminal {
			m.panel.WriteKey(msg.Keystroke())
			return m, nil
		}
		return m.handleEditorKey(msg)

	// -- Terminal panel ------------------------------------------------------
	case ptyChunkMsg:
		m.panel.Append(msg)
		return m, readPTY(m.panel)

	case ptyClosedMsg:
		m.ptyAlive = false
		m.panel.AppendLine("terminal closed")
		if m.focus == focusTerminal {
			m.focus = focusEditor
			return m, m.cur().Ed.Focus()
		}
		return m, nil

	case cmdDoneMsg:
		return m.handleCmdDone(msg)

	// -- Ticks ---------------------------------------------------------------
	case mtimeTickMsg:
		return m.handleMtimeTick()

	case statusTickMsg:
		if !m.statusExpiry.IsZero() && time.Now().After(m.statusExpiry) {
			m.status = ""
			m.statusExpiry = time.Time{}
		}
		return m, nil
	}

	// Forward everything else to the focused editor for cursor blinking.
	var cmd tea.Cmd
	m.cur().Ed, cmd = m.cur().Ed.Update(msg)
	return m, cmd
}

// handleCmdDone appends one-shot command output to the terminal scrollback.
func (m Model) handleCmdDone(msg cmdDoneMsg) (tea.Model, tea.Cmd) {
	m.panel.AppendLine("$ " + msg.command)
	for _, line := range msg.lines {
		m.panel.AppendLine(line)
	}
	if msg.err != nil {
		m.panel.AppendLine(fmt.Sprintf("[exit %d]", term.ExitCode(msg.err)))
	}
	m.showTerm = true
	m.layoutSessions()
	return m, nil
}

// handleMtimeTick warns once per change when a file is modified on disk
// behind an open session. Warned state is tracked per session, so tab
// switches neither repeat nor suppress a warning. No auto-reload; saving
// will overwrite.
func (m Model) handleMtimeTick() (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	s := m.cur()
	if s.ExternallyModified() {
		if !m.extWarned[s] {
			m.extWarned[s] = true
			cmd = m.setStatus(s.Name() + " changed on disk")
		}
	} else {
		delete(m.extWarned, s)
	}
	return m, tea.Batch(cmd, mtimeTick())
}

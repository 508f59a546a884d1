package tui

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/xonecas/caffee/internal/session"
	"github.com/xonecas/caffee/internal/term"
)

// handleKeyPress processes global key events. Returns (model, cmd, true) if
// handled; unhandled keys fall through to the focused surface.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (Model, tea.Cmd, bool) {
	key := msg.Keystroke()
	if handler := m.keyPressHandlers()[key]; handler != nil {
		return handler(m)
	}
	// Plugin bindings come after the built-in map so they cannot shadow
	// core keys.
	if m.focus == focusEditor && m.plugins != nil {
		api := &pluginAPI{m: m}
		if m.plugins.Invoke(key, api) {
			return *m, api.cmd, true
		}
	}
	return Model{}, nil, false
}

func (m *Model) keyPressHandlers() map[string]func(*Model) (Model, tea.Cmd, bool) {
	return map[string]func(*Model) (Model, tea.Cmd, bool){
		"ctrl+x":       (*Model).handleClose,
		"ctrl+o":       (*Model).handleSave,
		"ctrl+w":       (*Model).handleSearch,
		"ctrl+g":       (*Model).handleGoto,
		"ctrl+n":       (*Model).handleNewSession,
		"ctrl+right":   (*Model).handleNextSession,
		"ctrl+pgdown":  (*Model).handleNextSession,
		"ctrl+left":    (*Model).handlePrevSession,
		"ctrl+pgup":    (*Model).handlePrevSession,
		"ctrl+t":       (*Model).handleTerminalToggle,
		"ctrl+j":       (*Model).handleCommandPrompt,
		"shift+pgup":   (*Model).handleTermScrollUp,
		"shift+pgdown": (*Model).handleTermScrollDown,
	}
}

// ---------------------------------------------------------------------------
// Session lifecycle
// ---------------------------------------------------------------------------

// handleClose closes the focused session, prompting when it has unsaved
// changes. Closing the last session quits.
func (m *Model) handleClose() (Model, tea.Cmd, bool) {
	s := m.cur()
	if !s.Modified() {
		return m.closeFocused()
	}
	m.openPrompt(&Prompt{
		Label:   "save " + s.Name() + " before closing? (y/n)",
		Choices: "yn",
		onSubmit: func(m *Model, choice string) tea.Cmd {
			if choice == "y" {
				// The save-as path is asynchronous; the close runs as its
				// continuation once a name is submitted.
				if cmd, saved := m.saveFocused(closeContinuation); !saved {
					return cmd
				}
			}
			return closeContinuation(m)
		},
	})
	return *m, nil, true
}

// closeContinuation closes the focused session from inside a prompt
// continuation.
func closeContinuation(m *Model) tea.Cmd {
	mdl, cmd, _ := m.closeFocused()
	*m = mdl
	return cmd
}

func (m *Model) closeFocused() (Model, tea.Cmd, bool) {
	m.rememberCursor(m.cur())
	delete(m.extWarned, m.cur())
	if len(m.sessions) == 1 {
		return *m, m.shutdown(), true
	}
	m.sessions = append(m.sessions[:m.focused], m.sessions[m.focused+1:]...)
	if m.focused >= len(m.sessions) {
		m.focused = len(m.sessions) - 1
	}
	m.layoutSessions()
	return *m, m.cur().Ed.Focus(), true
}

// shutdown persists cursor positions, closes the terminal child and quits.
func (m *Model) shutdown() tea.Cmd {
	for _, s := range m.sessions {
		m.rememberCursor(s)
	}
	panel := m.panel
	return func() tea.Msg {
		if panel != nil {
			panel.Close()
		}
		return tea.Quit()
	}
}

func (m *Model) rememberCursor(s *session.Session) {
	if s.Path != "" {
		p := s.Ed.Pos()
		m.st.SetCursor(s.Path, p.Line, p.Col)
	}
}

func (m *Model) handleNewSession() (Model, tea.Cmd, bool) {
	s := session.New(m.cfg.HistoryLimitOrDefault())
	m.applyStyles(s)
	m.sessions = append(m.sessions, s)
	m.focused = len(m.sessions) - 1
	m.layoutSessions()
	return *m, s.Ed.Focus(), true
}

func (m *Model) handleNextSession() (Model, tea.Cmd, bool) {
	return m.cycleSession(1)
}

func (m *Model) handlePrevSession() (Model, tea.Cmd, bool) {
	return m.cycleSession(-1)
}

func (m *Model) cycleSession(dir int) (Model, tea.Cmd, bool) {
	if len(m.sessions) > 1 {
		m.cur().Ed.Blur()
		m.focused = (m.focused + dir + len(m.sessions)) % len(m.sessions)
	}
	return *m, m.cur().Ed.Focus(), true
}

// ---------------------------------------------------------------------------
// Saving
// ---------------------------------------------------------------------------

func (m *Model) handleSave() (Model, tea.Cmd, bool) {
	cmd, _ := m.saveFocused(nil)
	return *m, cmd, true
}

// saveFocused saves the focused session, opening a save-as prompt when it
// has no file name. The second return reports whether the save completed
// synchronously; then, when non-nil, runs after an asynchronous save-as
// succeeds so callers can chain work past the prompt. A cancelled or failed
// save-as drops the continuation.
func (m *Model) saveFocused(then func(m *Model) tea.Cmd) (tea.Cmd, bool) {
	s := m.cur()
	if s.Path == "" {
		m.openPrompt(&Prompt{
			Label: "save as",
			onSubmit: func(m *Model, name string) tea.Cmd {
				name = strings.TrimSpace(name)
				if name == "" {
					return m.setStatus("save cancelled")
				}
				if err := m.cur().SaveAs(name); err != nil {
					return m.setStatus(err.Error())
				}
				cmd := m.setStatus("saved " + m.cur().Name())
				if then != nil {
					return tea.Batch(cmd, then(m))
				}
				return cmd
			},
		})
		return nil, false
	}
	if err := s.Save(); err != nil {
		return m.setStatus(err.Error()), false
	}
	return m.setStatus("saved " + s.Name()), true
}

// ---------------------------------------------------------------------------
// Search and goto
// ---------------------------------------------------------------------------

func (m *Model) handleSearch() (Model, tea.Cmd, bool) {
	m.openPrompt(&Prompt{
		Label:   "search",
		history: m.st.RecentSearches(20),
		onSubmit: func(m *Model, pattern string) tea.Cmd {
			if pattern == "" {
				return nil
			}
			m.st.AddSearch(pattern)
			s := m.cur()
			pos, found, err := s.Ed.Search(pattern)
			if err != nil {
				return m.setStatus(err.Error())
			}
			if !found {
				return m.setStatus("no match for " + pattern)
			}
			s.Ed.CenterOn(pos)
			return nil
		},
	})
	return *m, nil, true
}

func (m *Model) handleGoto() (Model, tea.Cmd, bool) {
	m.openPrompt(&Prompt{
		Label: "goto line",
		onSubmit: func(m *Model, input string) tea.Cmd {
			n, err := strconv.Atoi(strings.TrimSpace(input))
			if err != nil {
				return m.setStatus("not a line number: " + input)
			}
			m.cur().GotoLine(n)
			return nil
		},
	})
	return *m, nil, true
}

// ---------------------------------------------------------------------------
// Terminal panel
// ---------------------------------------------------------------------------

// handleTerminalToggle shows the panel and moves focus into it, or returns
// focus to the editor when it is already focused. The shell child starts
// lazily on first use.
func (m *Model) handleTerminalToggle() (Model, tea.Cmd, bool) {
	if m.focus == focusTerminal {
		m.focus = focusEditor
		m.showTerm = false
		m.layoutSessions()
		return *m, m.cur().Ed.Focus(), true
	}

	m.showTerm = true
	m.focus = focusTerminal
	m.cur().Ed.Blur()
	m.layoutSessions()

	var cmd tea.Cmd
	if m.panel.State() == term.Uninitialized && !m.ptyAlive {
		if err := m.panel.Start(m.cfg.Terminal.ShellOrDefault(), m.termHeight(), m.width); err != nil {
			cmd = m.setStatus("no pty; ctrl+j runs commands instead")
		} else {
			m.ptyAlive = true
			cmd = readPTY(m.panel)
		}
	}
	return *m, cmd, true
}

func (m *Model) handleCommandPrompt() (Model, tea.Cmd, bool) {
	m.openPrompt(&Prompt{
		Label: "command",
		onSubmit: func(m *Model, command string) tea.Cmd {
			command = strings.TrimSpace(command)
			if command == "" {
				return nil
			}
			return runCommand(m.runner, command)
		},
	})
	return *m, nil, true
}

func (m *Model) handleTermScrollUp() (Model, tea.Cmd, bool) {
	return m.termScroll(m.termHeight() / 2)
}

func (m *Model) handleTermScrollDown() (Model, tea.Cmd, bool) {
	return m.termScroll(-m.termHeight() / 2)
}

func (m *Model) termScroll(delta int) (Model, tea.Cmd, bool) {
	if !m.showTerm {
		return Model{}, nil, false
	}
	m.panel.Scroll(delta, m.termHeight())
	return *m, nil, true
}

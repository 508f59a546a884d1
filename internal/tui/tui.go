// Package tui is the application shell: it owns the open sessions, the
// terminal panel, the prompt line and the key routing, and drives everything
// through the bubbletea event loop.
package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/xonecas/caffee/internal/config"
	"github.com/xonecas/caffee/internal/plugin"
	"github.com/xonecas/caffee/internal/session"
	"github.com/xonecas/caffee/internal/store"
	"github.com/xonecas/caffee/internal/term"
)

// focusArea identifies which surface receives keystrokes.
type focusArea int

const (
	focusEditor focusArea = iota
	focusTerminal
	focusPrompt
)

const statusRows = 2 // separator + status bar

// Model is the application model.
type Model struct {
	width  int
	height int

	cfg     *config.Config
	st      *store.Store
	styles  Styles
	plugins *plugin.Registry

	// Open documents. Exactly one is focused; there is always at least one.
	sessions []*session.Session
	focused  int

	// Terminal panel, lazily started on first toggle.
	panel    *term.Panel
	runner   *term.Runner
	showTerm bool
	ptyAlive bool // a readPTY command is in flight

	focus focusArea

	prompt *Prompt // nil when no prompt line is open

	clipboard []string

	status       string
	statusExpiry time.Time

	// Sessions already warned about an on-disk change, so switching tabs
	// cannot suppress or repeat another file's warning.
	extWarned map[*session.Session]bool
}

// Options configures the application model.
type Options struct {
	Config   *config.Config
	Store    *store.Store
	Plugins  *plugin.Registry
	Sessions []*session.Session
	Panel    *term.Panel
	Runner   *term.Runner

	// StartupStatus is shown on the status bar right away, for warnings
	// raised before the program started.
	StartupStatus string
}

// New creates the application model. At least one session is required;
// callers pass a scratch session when no files were named.
func New(opts Options) Model {
	m := Model{
		cfg:       opts.Config,
		st:        opts.Store,
		styles:    NewStyles(opts.Config.UI.SyntaxThemeOrDefault()),
		plugins:   opts.Plugins,
		sessions:  opts.Sessions,
		panel:     opts.Panel,
		runner:    opts.Runner,
		extWarned: make(map[*session.Session]bool),
	}
	for _, s := range m.sessions {
		m.applyStyles(s)
	}
	if opts.StartupStatus != "" {
		m.status = opts.StartupStatus
		m.statusExpiry = time.Now().Add(4 * time.Second)
	}
	return m
}

// Init starts the periodic ticks and focuses the first session.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.cur().Ed.Focus(),
		mtimeTick(),
	}
	if !m.statusExpiry.IsZero() {
		cmds = append(cmds, statusTick(m.statusExpiry))
	}
	return tea.Batch(cmds...)
}

// cur returns the focused session.
func (m *Model) cur() *session.Session { return m.sessions[m.focused] }

// applyStyles pushes theme styles and config into a session's editor.
func (m *Model) applyStyles(s *session.Session) {
	s.Ed.TabWidth = m.cfg.TabWidthOrDefault()
	s.Ed.Text = m.styles.Text
	s.Ed.LineNum = m.styles.LineNum
	s.Ed.Selection = m.styles.Selection
	s.Ed.Category = m.styles.Category
}

// setStatus shows a transient status message for a few seconds.
func (m *Model) setStatus(msg string) tea.Cmd {
	m.status = msg
	m.statusExpiry = time.Now().Add(4 * time.Second)
	return statusTick(m.statusExpiry)
}

// editorHeight is the number of rows the focused editor occupies.
func (m Model) editorHeight() int {
	h := m.height - statusRows
	if m.showTerm {
		h -= m.termHeight() + 1 // panel + separator
	}
	if h < 1 {
		h = 1
	}
	return h
}

// termHeight is the number of content rows in the terminal panel.
func (m Model) termHeight() int {
	h := m.height / 3
	if h < 3 {
		h = 3
	}
	return h
}

// layoutSessions pushes the current layout into every session's editor.
func (m *Model) layoutSessions() {
	for _, s := range m.sessions {
		s.Ed.SetWidth(m.width)
		s.Ed.SetHeight(m.editorHeight())
	}
	if m.panel != nil && m.showTerm {
		m.panel.Resize(m.termHeight(), m.width)
	}
}

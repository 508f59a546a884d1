package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/xonecas/caffee/internal/buffer"
)

// pluginAPI adapts the application model to the plugin capability surface.
// Callbacks run synchronously inside Update; any command they produce (a
// prompt continuation, a status expiry tick) is collected in cmd.
type pluginAPI struct {
	m   *Model
	cmd tea.Cmd
}

func (a *pluginAPI) CursorPos() buffer.Pos { return a.m.cur().Ed.Pos() }

func (a *pluginAPI) CurrentLine() string {
	s := a.m.cur()
	return s.Ed.Buffer().Line(s.Ed.Pos().Line)
}

func (a *pluginAPI) BufferContent() []string { return a.m.cur().Ed.Buffer().Lines() }

func (a *pluginAPI) LineCount() int { return a.m.cur().Ed.Buffer().Len() }

func (a *pluginAPI) FileName() string { return a.m.cur().Name() }

func (a *pluginAPI) ConfigValue(key string) (string, bool) { return a.m.cfg.Value(key) }

func (a *pluginAPI) MoveCursor(p buffer.Pos) { a.m.cur().Ed.MoveTo(p) }

func (a *pluginAPI) InsertText(text string) { a.m.cur().InsertText(text) }

func (a *pluginAPI) DeleteRange(start, end buffer.Pos) { a.m.cur().DeleteRange(start, end) }

func (a *pluginAPI) ReplaceRange(start, end buffer.Pos, text string) {
	a.m.cur().ReplaceRange(start, end, text)
}

func (a *pluginAPI) Checkpoint() { a.m.cur().Checkpoint() }

func (a *pluginAPI) SetStatus(msg string) { a.addCmd(a.m.setStatus(msg)) }

// Prompt opens the shared prompt line; the continuation runs when the user
// submits, on a later Update pass. The adapter is re-pointed at the model
// copy alive at submission time, so captures of the API stay valid.
func (a *pluginAPI) Prompt(label string, then func(string)) {
	a.m.openPrompt(&Prompt{
		Label: label,
		onSubmit: func(m *Model, input string) tea.Cmd {
			a.m = m
			a.cmd = nil
			then(input)
			return a.cmd
		},
	})
}

// Redraw is a no-op: the event loop renders after every Update already.
func (a *pluginAPI) Redraw() {}

func (a *pluginAPI) addCmd(c tea.Cmd) {
	if c == nil {
		return
	}
	if a.cmd == nil {
		a.cmd = c
		return
	}
	a.cmd = tea.Batch(a.cmd, c)
}

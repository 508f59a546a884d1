package tui

import (
	tea "charm.land/bubbletea/v2"
)

// ---------------------------------------------------------------------------
// Prompt line
// ---------------------------------------------------------------------------

// Prompt is a single-line input rendered over the status bar. Submission
// runs a continuation against the model, so prompts compose with the event
// loop instead of blocking it.
type Prompt struct {
	Label string

	// Choice mode: any single listed rune submits immediately, everything
	// else is ignored. Used for yes/no confirmations.
	Choices string

	input   []rune
	cursor  int
	history []string // recall ring, newest first
	histIdx int      // -1 = editing a fresh line

	onSubmit func(m *Model, input string) tea.Cmd
	onCancel func(m *Model) tea.Cmd
}

// openPrompt shows a prompt line and moves focus to it.
func (m *Model) openPrompt(p *Prompt) {
	p.histIdx = -1
	m.prompt = p
	m.focus = focusPrompt
}

// closePrompt dismisses the prompt and returns focus to the editor.
func (m *Model) closePrompt() {
	m.prompt = nil
	if m.focus == focusPrompt {
		m.focus = focusEditor
	}
}

// handlePromptKey routes a keystroke to the open prompt.
func (m *Model) handlePromptKey(msg tea.KeyPressMsg) (Model, tea.Cmd) {
	p := m.prompt
	key := msg.Keystroke()

	if p.Choices != "" {
		switch {
		case key == "esc" || key == "ctrl+c":
			return m.cancelPrompt()
		case len(msg.Text) == 1 && containsRune(p.Choices, []rune(msg.Text)[0]):
			return m.submitPrompt(msg.Text)
		}
		return *m, nil
	}

	switch key {
	case "esc", "ctrl+c":
		return m.cancelPrompt()
	case "enter":
		return m.submitPrompt(string(p.input))
	case "backspace":
		if p.cursor > 0 {
			p.input = append(p.input[:p.cursor-1], p.input[p.cursor:]...)
			p.cursor--
		}
	case "delete":
		if p.cursor < len(p.input) {
			p.input = append(p.input[:p.cursor], p.input[p.cursor+1:]...)
		}
	case "left":
		if p.cursor > 0 {
			p.cursor--
		}
	case "right":
		if p.cursor < len(p.input) {
			p.cursor++
		}
	case "home", "ctrl+a":
		p.cursor = 0
	case "end", "ctrl+e":
		p.cursor = len(p.input)
	case "up":
		if p.histIdx+1 < len(p.history) {
			p.histIdx++
			p.input = []rune(p.history[p.histIdx])
			p.cursor = len(p.input)
		}
	case "down":
		if p.histIdx > 0 {
			p.histIdx--
			p.input = []rune(p.history[p.histIdx])
			p.cursor = len(p.input)
		} else if p.histIdx == 0 {
			p.histIdx = -1
			p.input = nil
			p.cursor = 0
		}
	default:
		if msg.Text != "" {
			for _, r := range msg.Text {
				p.input = append(p.input[:p.cursor], append([]rune{r}, p.input[p.cursor:]...)...)
				p.cursor++
			}
		}
	}
	return *m, nil
}

func (m *Model) submitPrompt(input string) (Model, tea.Cmd) {
	p := m.prompt
	m.closePrompt()
	if p.onSubmit == nil {
		return *m, nil
	}
	return *m, p.onSubmit(m, input)
}

func (m *Model) cancelPrompt() (Model, tea.Cmd) {
	p := m.prompt
	m.closePrompt()
	if p.onCancel == nil {
		return *m, nil
	}
	return *m, p.onCancel(m)
}

func containsRune(s string, r rune) bool {
	for _, c := range s {
		if c == r {
			return true
		}
	}
	return false
}

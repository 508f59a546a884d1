package tui

import (
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(ch rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: ch, Text: string(ch)}
}

func special(name string) tea.KeyPressMsg {
	switch name {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	case "home":
		return tea.KeyPressMsg{Code: tea.KeyHome}
	default:
		return tea.KeyPressMsg{}
	}
}

func typeString(m *Model, s string) {
	for _, r := range s {
		*m, _ = m.handlePromptKey(key(r))
	}
}

func TestPromptSubmit(t *testing.T) {
	var got string
	m := Model{}
	m.openPrompt(&Prompt{
		Label: "search",
		onSubmit: func(m *Model, input string) tea.Cmd {
			got = input
			return nil
		},
	})
	if m.focus != focusPrompt {
		t.Fatal("opening a prompt should move focus to it")
	}

	typeString(&m, "needle")
	m, _ = m.handlePromptKey(special("enter"))

	if got != "needle" {
		t.Fatalf("submitted %q, want %q", got, "needle")
	}
	if m.prompt != nil || m.focus != focusEditor {
		t.Fatal("submit should close the prompt and refocus the editor")
	}
}

func TestPromptEscapeCancels(t *testing.T) {
	submitted := false
	m := Model{}
	m.openPrompt(&Prompt{
		onSubmit: func(m *Model, input string) tea.Cmd {
			submitted = true
			return nil
		},
	})
	typeString(&m, "abc")
	m, _ = m.handlePromptKey(special("esc"))

	if submitted {
		t.Fatal("escape must not submit")
	}
	if m.prompt != nil {
		t.Fatal("escape should close the prompt")
	}
}

func TestPromptEditing(t *testing.T) {
	var got string
	m := Model{}
	m.openPrompt(&Prompt{
		onSubmit: func(m *Model, input string) tea.Cmd {
			got = input
			return nil
		},
	})

	typeString(&m, "abd")
	m, _ = m.handlePromptKey(special("left"))
	m, _ = m.handlePromptKey(special("backspace"))
	typeString(&m, "c")
	m, _ = m.handlePromptKey(special("enter"))

	if got != "acd" {
		t.Fatalf("edited input = %q, want %q", got, "acd")
	}
}

func TestPromptHistoryRecall(t *testing.T) {
	var got string
	m := Model{}
	m.openPrompt(&Prompt{
		history: []string{"newest", "older"},
		onSubmit: func(m *Model, input string) tea.Cmd {
			got = input
			return nil
		},
	})

	m, _ = m.handlePromptKey(special("up"))
	m, _ = m.handlePromptKey(special("up"))
	m, _ = m.handlePromptKey(special("down"))
	m, _ = m.handlePromptKey(special("enter"))

	if got != "newest" {
		t.Fatalf("recalled %q, want %q", got, "newest")
	}
}

func TestPromptHistoryDownClearsFreshLine(t *testing.T) {
	var got string
	m := Model{}
	m.openPrompt(&Prompt{
		history: []string{"one"},
		onSubmit: func(m *Model, input string) tea.Cmd {
			got = input
			return nil
		},
	})

	m, _ = m.handlePromptKey(special("up"))
	m, _ = m.handlePromptKey(special("down"))
	m, _ = m.handlePromptKey(special("enter"))

	if got != "" {
		t.Fatalf("down past newest should clear the line, got %q", got)
	}
}

func TestPromptChoices(t *testing.T) {
	var got string
	m := Model{}
	m.openPrompt(&Prompt{
		Choices: "yn",
		onSubmit: func(m *Model, choice string) tea.Cmd {
			got = choice
			return nil
		},
	})

	// Unlisted runes are ignored.
	m, _ = m.handlePromptKey(key('x'))
	if m.prompt == nil {
		t.Fatal("unlisted rune must not submit")
	}

	m, _ = m.handlePromptKey(key('n'))
	if got != "n" {
		t.Fatalf("choice = %q, want %q", got, "n")
	}
	if m.prompt != nil {
		t.Fatal("a listed choice submits immediately")
	}
}

package tui

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/xonecas/caffee/internal/term"
)

// ---------------------------------------------------------------------------
// ELM messages
// ---------------------------------------------------------------------------

// ptyChunkMsg carries raw output read from the terminal child.
type ptyChunkMsg []byte

// ptyClosedMsg is sent when the terminal child reaches EOF.
type ptyClosedMsg struct{}

// cmdDoneMsg carries the result of a one-shot shell command.
type cmdDoneMsg struct {
	command string
	lines   []string
	err     error
}

// mtimeTickMsg drives the periodic external-modification check.
type mtimeTickMsg time.Time

// statusTickMsg expires transient status messages.
type statusTickMsg time.Time

// ---------------------------------------------------------------------------
// ELM commands
// ---------------------------------------------------------------------------

// readPTY blocks on the next chunk of terminal output. The pty read runs in
// this command's goroutine, so the update loop never blocks; each delivered
// chunk schedules the next read.
func readPTY(p *term.Panel) tea.Cmd {
	return func() tea.Msg {
		chunk := p.ReadChunk()
		if chunk == nil {
			return ptyClosedMsg{}
		}
		return ptyChunkMsg(chunk)
	}
}

// runCommand executes a one-shot command through the embedded interpreter.
func runCommand(r *term.Runner, command string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		lines, err := r.Run(ctx, command)
		return cmdDoneMsg{command: command, lines: lines, err: err}
	}
}

// mtimeTick schedules the next external-modification check.
func mtimeTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return mtimeTickMsg(t)
	})
}

// statusTick schedules the status expiry check.
func statusTick(at time.Time) tea.Cmd {
	return tea.Tick(time.Until(at), func(t time.Time) tea.Msg {
		return statusTickMsg(t)
	})
}

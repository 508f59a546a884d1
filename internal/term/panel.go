// Package term hosts the embedded terminal panel: a shell child process on
// a pty with a bounded plain-text scrollback, plus an in-process interpreter
// for one-shot commands on platforms without pty support.
package term

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"
	"github.com/creack/pty"
	"github.com/rs/zerolog/log"
)

// State describes the panel lifecycle.
type State int

const (
	Uninitialized State = iota
	Running
	Exited
)

// Panel owns the pty child and its scrollback. Methods are safe for
// concurrent use; the reader goroutine and the update loop both touch it.
type Panel struct {
	mu sync.Mutex

	state State
	ptmx  *os.File
	cmd   *exec.Cmd

	scrollback []string
	limit      int
	partial    bool // last scrollback line is an unterminated fragment
	reaped     bool // cmd.Wait already issued for this child

	viewOffset int    // lines scrolled up from the bottom, 0 = live
	note       string // degraded-mode or exit note shown in the panel
}

// NewPanel creates a panel with the given scrollback cap.
func NewPanel(limit int) *Panel {
	if limit <= 0 {
		limit = 1000
	}
	return &Panel{limit: limit}
}

// Start launches shell on a new pty sized rows x cols. Failure leaves the
// panel in degraded mode: one-shot commands still work through the embedded
// interpreter, but there is no interactive child.
func (p *Panel) Start(shell string, rows, cols int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == Running {
		return nil
	}

	cmd := exec.Command(shell)
	cmd.Env = append(os.Environ(), "TERM=dumb")
	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(max(rows, 1)), Cols: uint16(max(cols, 1)),
	})
	if err != nil {
		p.note = "terminal unavailable: " + err.Error()
		log.Warn().Err(err).Str("shell", shell).Msg("pty start failed")
		return fmt.Errorf("start %s on pty: %w", shell, err)
	}

	p.cmd = cmd
	p.ptmx = ptmx
	p.state = Running
	p.reaped = false
	p.note = ""
	return nil
}

// State returns the current lifecycle state.
func (p *Panel) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Note returns the degraded-mode or exit note, if any.
func (p *Panel) Note() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.note
}

// Resize propagates a size change to the pty.
func (p *Panel) Resize(rows, cols int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != Running {
		return
	}
	if err := pty.Setsize(p.ptmx, &pty.Winsize{
		Rows: uint16(max(rows, 1)), Cols: uint16(max(cols, 1)),
	}); err != nil {
		log.Warn().Err(err).Msg("pty resize failed")
	}
}

// ReadChunk blocks until the child produces output. On EOF the child is
// reaped and the panel transitions to Exited. Returns nil on EOF.
func (p *Panel) ReadChunk() []byte {
	p.mu.Lock()
	ptmx := p.ptmx
	p.mu.Unlock()
	if ptmx == nil {
		return nil
	}

	buf := make([]byte, 4096)
	n, err := ptmx.Read(buf)
	if n > 0 {
		return buf[:n]
	}
	if err != nil {
		p.markExited()
	}
	return nil
}

func (p *Panel) markExited() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != Running {
		return
	}
	p.state = Exited
	p.note = "terminal closed"
	if p.cmd != nil {
		go p.reap(p.cmd)
	}
}

// reap waits on the child exactly once; Wait may only be called a single
// time per command, so both exit paths funnel through here.
func (p *Panel) reap(cmd *exec.Cmd) {
	p.mu.Lock()
	done := p.reaped
	p.reaped = true
	p.mu.Unlock()
	if done {
		return
	}
	cmd.Wait()
}

// WriteKey encodes a key name to bytes and writes it to the pty. A write
// failure transitions to Exited.
func (p *Panel) WriteKey(key string) {
	data := EncodeKey(key)
	if len(data) == 0 {
		return
	}
	p.mu.Lock()
	ptmx := p.ptmx
	running := p.state == Running
	p.mu.Unlock()
	if !running || ptmx == nil {
		return
	}
	if _, err := ptmx.Write(data); err != nil {
		log.Warn().Err(err).Msg("pty write failed")
		p.markExited()
	}
}

// Append strips escape sequences from raw output and merges it into the
// scrollback. A chunk that does not end in a newline leaves a fragment that
// the next chunk extends, so partial lines render as they arrive.
func (p *Panel) Append(raw []byte) {
	text := ansi.Strip(string(raw))
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "")
	if text == "" {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	parts := strings.Split(text, "\n")
	endsWithNewline := parts[len(parts)-1] == ""
	if endsWithNewline {
		parts = parts[:len(parts)-1]
	}

	for i, part := range parts {
		if i == 0 && p.partial && len(p.scrollback) > 0 {
			p.scrollback[len(p.scrollback)-1] += part
		} else {
			p.scrollback = append(p.scrollback, part)
		}
	}
	p.partial = !endsWithNewline

	if over := len(p.scrollback) - p.limit; over > 0 {
		p.scrollback = p.scrollback[over:]
	}
}

// AppendLine adds a complete line, terminating any pending fragment first.
// Used by the one-shot command runner.
func (p *Panel) AppendLine(line string) {
	p.mu.Lock()
	p.partial = false
	p.mu.Unlock()
	p.Append([]byte(line + "\n"))
}

// Visible returns the height lines ending viewOffset lines above the
// bottom of the scrollback.
func (p *Panel) Visible(height int) []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	end := len(p.scrollback) - p.viewOffset
	if end > len(p.scrollback) {
		end = len(p.scrollback)
	}
	start := end - height
	if start < 0 {
		start = 0
	}
	if end < start {
		end = start
	}
	out := make([]string, end-start)
	copy(out, p.scrollback[start:end])
	return out
}

// Scroll moves the view offset by delta lines (positive = older output)
// and clamps. Offset zero pins the view to the latest output.
func (p *Panel) Scroll(delta, height int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.viewOffset += delta
	maxOff := len(p.scrollback) - height
	if maxOff < 0 {
		maxOff = 0
	}
	if p.viewOffset > maxOff {
		p.viewOffset = maxOff
	}
	if p.viewOffset < 0 {
		p.viewOffset = 0
	}
}

// Close shuts the pty and reaps the child.
func (p *Panel) Close() {
	p.mu.Lock()
	ptmx := p.ptmx
	cmd := p.cmd
	p.ptmx = nil
	if p.state == Running {
		p.state = Exited
	}
	p.mu.Unlock()

	if ptmx != nil {
		ptmx.Close()
	}
	if cmd != nil && cmd.Process != nil {
		cmd.Process.Kill()
		p.reap(cmd)
	}
}

// EncodeKey maps a keystroke name to the bytes a terminal would send.
// Unknown multi-rune names map to nothing; single runes pass through.
func EncodeKey(key string) []byte {
	switch key {
	case "enter":
		return []byte("\n")
	case "backspace":
		return []byte{0x7f}
	case "tab":
		return []byte("\t")
	case "esc":
		return []byte{0x1b}
	case "space":
		return []byte(" ")
	case "ctrl+c":
		return []byte{0x03}
	case "ctrl+d":
		return []byte{0x04}
	case "ctrl+z":
		return []byte{0x1a}
	case "ctrl+l":
		return []byte{0x0c}
	case "up":
		return []byte("\x1b[A")
	case "down":
		return []byte("\x1b[B")
	case "right":
		return []byte("\x1b[C")
	case "left":
		return []byte("\x1b[D")
	}
	if len([]rune(key)) == 1 {
		return []byte(key)
	}
	return nil
}

package plugin

import (
	"fmt"
	"strings"
	"time"

	"github.com/xonecas/caffee/internal/buffer"
)

// RegisterBuiltins installs the stock plugins. They double as living
// documentation of the API: one reader, one mutator, one prompt user.
func RegisterBuiltins(r *Registry) {
	r.Register(Binding{Key: "ctrl+b", Name: "buffer-stats", Callback: bufferStats})
	r.Register(Binding{Key: "alt+d", Name: "insert-date", Callback: insertDate})
	r.Register(Binding{Key: "alt+r", Name: "replace-line", Callback: replaceLine})
}

// bufferStats reports document size and cursor position in the status bar.
func bufferStats(api API) {
	lines := api.BufferContent()
	chars := 0
	for _, l := range lines {
		chars += len([]rune(l)) + 1
	}
	p := api.CursorPos()
	api.SetStatus(fmt.Sprintf("%s: %d lines, %d chars, cursor %d:%d",
		api.FileName(), api.LineCount(), chars, p.Line+1, p.Col+1))
}

// insertDate inserts the current date at the cursor.
func insertDate(api API) {
	api.InsertText(time.Now().Format("2006-01-02"))
}

// replaceLine prompts for text and replaces the current line with it.
func replaceLine(api API) {
	api.Prompt("replace line with", func(input string) {
		if strings.TrimSpace(input) == "" {
			api.SetStatus("replace cancelled")
			return
		}
		p := api.CursorPos()
		lineLen := len([]rune(api.CurrentLine()))
		api.ReplaceRange(
			buffer.Pos{Line: p.Line, Col: 0},
			buffer.Pos{Line: p.Line, Col: lineLen},
			input,
		)
		api.Redraw()
	})
}

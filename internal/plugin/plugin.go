// Package plugin defines the capability surface exposed to compiled-in
// editor extensions and the registry that binds them to keystrokes.
// Plugins never touch editor internals; everything goes through the API,
// so a misbehaving callback can at worst garble its own document edits.
package plugin

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/xonecas/caffee/internal/buffer"
)

// API is the capability surface handed to plugin callbacks.
type API interface {
	// Read access.
	CursorPos() buffer.Pos
	CurrentLine() string
	BufferContent() []string
	LineCount() int
	FileName() string
	ConfigValue(key string) (string, bool)

	// Write access. Mutations are recorded as one history checkpoint each.
	MoveCursor(p buffer.Pos)
	InsertText(text string)
	DeleteRange(start, end buffer.Pos)
	ReplaceRange(start, end buffer.Pos, text string)
	Checkpoint()

	// UI access. Prompt shows a single-line input and calls then with the
	// submitted text on a later event loop pass; it cannot block.
	SetStatus(msg string)
	Prompt(label string, then func(input string))
	Redraw()
}

// Callback is a plugin entry point.
type Callback func(api API)

// Binding attaches a named callback to a keystroke.
type Binding struct {
	Key      string // bubbletea keystroke name, e.g. "ctrl+b"
	Name     string
	Callback Callback
}

// Registry holds the registered bindings, keyed by keystroke.
type Registry struct {
	bindings map[string]Binding
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{bindings: make(map[string]Binding)}
}

// Register adds a binding. A later registration for the same key wins;
// the replacement is logged.
func (r *Registry) Register(b Binding) {
	if prev, ok := r.bindings[b.Key]; ok {
		log.Warn().Str("key", b.Key).Str("old", prev.Name).Str("new", b.Name).
			Msg("plugin key binding replaced")
	}
	r.bindings[b.Key] = b
}

// Lookup returns the binding for a keystroke.
func (r *Registry) Lookup(key string) (Binding, bool) {
	b, ok := r.bindings[key]
	return b, ok
}

// Invoke runs the callback bound to key, recovering panics so a broken
// plugin cannot take the editor down. Returns false when no binding exists.
// A recovered panic is reported through the API status line.
func (r *Registry) Invoke(key string, api API) bool {
	b, ok := r.bindings[key]
	if !ok {
		return false
	}
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Str("plugin", b.Name).Interface("panic", rec).
				Msg("plugin callback panicked")
			api.SetStatus(fmt.Sprintf("plugin %s failed: %v", b.Name, rec))
		}
	}()
	b.Callback(api)
	return true
}

package term

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Runner is an in-process POSIX shell with persistent cwd and env across
// calls. It backs the one-shot command prompt and is the only execution
// path when no pty is available.
type Runner struct {
	mu  sync.Mutex
	cwd string
	env []string
}

// NewRunner creates a Runner anchored at cwd (defaults to the process cwd).
func NewRunner(cwd string) *Runner {
	if cwd == "" {
		cwd, _ = os.Getwd()
	}
	return &Runner{
		cwd: cwd,
		env: os.Environ(),
	}
}

// Run executes a command synchronously and returns its combined output as
// lines. The exit code is folded into the error.
func (r *Runner) Run(ctx context.Context, command string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out bytes.Buffer
	err := r.exec(ctx, command, &out)

	text := strings.TrimRight(out.String(), "\n")
	var lines []string
	if text != "" {
		lines = strings.Split(text, "\n")
	}
	return lines, err
}

// Dir returns the current working directory.
func (r *Runner) Dir() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cwd
}

func (r *Runner) exec(ctx context.Context, command string, out *bytes.Buffer) (err error) {
	var runner *interp.Runner
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("command execution panic: %v", rec)
		}
		if runner != nil {
			r.updateFromRunner(runner)
		}
	}()

	parsed, err := syntax.NewParser().Parse(strings.NewReader(command), "")
	if err != nil {
		return fmt.Errorf("could not parse command: %w", err)
	}

	runner, err = interp.New(
		interp.StdIO(nil, out, out),
		interp.Interactive(false),
		interp.Env(expand.ListEnviron(r.env...)),
		interp.Dir(r.cwd),
	)
	if err != nil {
		return fmt.Errorf("could not create interpreter: %w", err)
	}

	return runner.Run(ctx, parsed)
}

// updateFromRunner persists cwd and exported env vars after execution.
func (r *Runner) updateFromRunner(runner *interp.Runner) {
	r.cwd = runner.Dir
	r.env = r.env[:0]
	runner.Env.Each(func(name string, vr expand.Variable) bool {
		if vr.Exported {
			r.env = append(r.env, name+"="+vr.Str)
		}
		return true
	})
}

// ExitCode extracts the exit code from an interpreter error.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr interp.ExitStatus
	if errors.As(err, &exitErr) {
		return int(exitErr)
	}
	return 1
}

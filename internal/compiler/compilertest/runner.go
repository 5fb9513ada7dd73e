// Package compilertest provides a scripted compiler.Runner for tests.
package compilertest

import (
	"context"
	"strings"
	"sync"

	"github.com/Norgate-AV/sgb/internal/compiler"
)

// Runner records every command and answers with Handler
type Runner struct {
	// Handler returns the command's stdout and error. A nil Handler succeeds with no output.
	Handler func(c compiler.Command) (string, error)

	mu    sync.Mutex
	calls []compiler.Command
}

func (r *Runner) Run(ctx context.Context, c compiler.Command) error {
	_, err := r.call(c)
	return err
}

func (r *Runner) Output(ctx context.Context, c compiler.Command) (string, error) {
	return r.call(c)
}

// Calls returns the recorded commands in order
func (r *Runner) Calls() []compiler.Command {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]compiler.Command(nil), r.calls...)
}

// Count returns how many recorded command lines contain substr
func (r *Runner) Count(substr string) int {
	n := 0
	for _, c := range r.Calls() {
		if strings.Contains(c.String(), substr) {
			n++
		}
	}

	return n
}

func (r *Runner) call(c compiler.Command) (string, error) {
	r.mu.Lock()
	r.calls = append(r.calls, c)
	handler := r.Handler
	r.mu.Unlock()

	if handler == nil {
		return "", nil
	}

	return handler(c)
}

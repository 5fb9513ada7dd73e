package compiler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/Norgate-AV/sgb/internal/logger"
)

// Command is an external program invocation
type Command struct {
	Name string
	Args []string

	// Working directory, empty for the current one
	Dir string

	// Quiet discards the program's stdout. Stderr is always shown.
	Quiet bool
}

// String renders the command line for logs and error messages
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Runner runs external programs synchronously
type Runner interface {
	// Run fails if the program cannot start or exits non-zero
	Run(ctx context.Context, c Command) error
	// Output is Run, capturing stdout instead of printing it
	Output(ctx context.Context, c Command) (string, error)
}

// ExecRunner runs commands with os/exec
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
	Log    *logger.Logger

	execCommand func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewExecRunner creates a runner attached to the process's stdout and stderr
func NewExecRunner(log *logger.Logger) *ExecRunner {
	return &ExecRunner{
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Log:         log,
		execCommand: exec.CommandContext,
	}
}

// Run runs c with stdout attached unless c.Quiet
func (r *ExecRunner) Run(ctx context.Context, c Command) error {
	cmd := r.command(ctx, c)
	if c.Quiet {
		cmd.Stdout = io.Discard
	} else {
		cmd.Stdout = r.Stdout
	}

	return r.wait(cmd, c)
}

// Output runs c and returns everything it wrote to stdout
func (r *ExecRunner) Output(ctx context.Context, c Command) (string, error) {
	var out bytes.Buffer

	cmd := r.command(ctx, c)
	cmd.Stdout = &out

	if err := r.wait(cmd, c); err != nil {
		return "", err
	}

	return out.String(), nil
}

func (r *ExecRunner) command(ctx context.Context, c Command) *exec.Cmd {
	if r.Log != nil {
		if c.Dir != "" {
			r.Log.Debug("Running: %s (cwd: %s)", c, c.Dir)
		} else {
			r.Log.Debug("Running: %s", c)
		}
	}

	cmd := r.execCommand(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stderr = r.Stderr

	return cmd
}

func (r *ExecRunner) wait(cmd *exec.Cmd, c Command) error {
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("unable to run command: %s: %w", c.Name, err)
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &CommandError{Command: c, ExitCode: exitErr.ExitCode()}
		}

		return fmt.Errorf("command failed: %s: %w", c, err)
	}

	return nil
}

// CommandError is a command that ran and exited non-zero
type CommandError struct {
	Command  Command
	ExitCode int
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command failed: %s (exit code %d)", e.Command, e.ExitCode)
}

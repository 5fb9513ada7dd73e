// Package launcher runs Godot against the generated project.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"

	"github.com/Norgate-AV/sgb/internal/logger"
)

// Launcher starts Godot and waits for it to exit
type Launcher struct {
	GodotCommand string
	ProjectDir   string
	WorkDir      string
	Stdout       io.Writer
	Stderr       io.Writer
	Log          *logger.Logger
}

// Args are the arguments Godot is started with
func (l *Launcher) Args() []string {
	return []string{"--path", l.ProjectDir, "--disable-crash-handler"}
}

// Launch runs Godot until it exits and returns its exit code. While it
// runs, an interrupt is forwarded to Godot as a termination request
// instead of killing this process. Only a failure to start is an error.
func (l *Launcher) Launch(ctx context.Context) (int, error) {
	l.Log.Info("Launching Godot from %s...", l.ProjectDir)

	cmd := exec.Command(l.GodotCommand, l.Args()...)
	cmd.Dir = l.WorkDir
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr

	interrupts, release := acquireInterrupts()
	defer release()

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("unable to launch %s: %w", l.GodotCommand, err)
	}

	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			select {
			case <-interrupts:
				l.Log.Debug("Interrupt received, stopping Godot")
				if err := terminate(cmd.Process); err != nil {
					l.Log.Warn("Failed to stop Godot: %v", err)
				}
			case <-ctx.Done():
				_ = terminate(cmd.Process)
				return
			case <-done:
				return
			}
		}
	}()

	err := cmd.Wait()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}

	return 0, fmt.Errorf("waiting for Godot: %w", err)
}

// acquireInterrupts takes over SIGINT delivery for the calling process.
// The returned release restores default handling and must always run.
func acquireInterrupts() (<-chan os.Signal, func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)

	return ch, func() {
		signal.Stop(ch)
	}
}

// New creates a launcher attached to the process's stdout and stderr
func New(godotCommand, projectDir, workDir string, log *logger.Logger) *Launcher {
	return &Launcher{
		GodotCommand: godotCommand,
		ProjectDir:   projectDir,
		WorkDir:      workDir,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		Log:          log,
	}
}

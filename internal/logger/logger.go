// Package logger prints console output honoring the quiet and verbose flags.
package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	debugStyle = lipgloss.NewStyle().Faint(true)
)

// Logger writes informational output to Out and warnings to Err
type Logger struct {
	Verbose bool
	Quiet   bool
	Out     io.Writer
	Err     io.Writer
}

// New creates a logger writing to stdout and stderr
func New(verbose, quiet bool) *Logger {
	return &Logger{
		Verbose: verbose,
		Quiet:   quiet,
		Out:     os.Stdout,
		Err:     os.Stderr,
	}
}

// Discard returns a logger that drops all output
func Discard() *Logger {
	return &Logger{Out: io.Discard, Err: io.Discard}
}

// Info is suppressed when quiet
func (l *Logger) Info(format string, args ...any) {
	if l.Quiet {
		return
	}

	fmt.Fprintf(l.Out, format+"\n", args...)
}

// Debug is only printed when verbose and not quiet
func (l *Logger) Debug(format string, args ...any) {
	if !l.Verbose || l.Quiet {
		return
	}

	fmt.Fprintln(l.Out, debugStyle.Render(fmt.Sprintf(format, args...)))
}

// Warn is printed even when quiet
func (l *Logger) Warn(format string, args ...any) {
	fmt.Fprintf(l.Err, "%s %s\n", warnStyle.Render("warning:"), fmt.Sprintf(format, args...))
}

// Error prints err to Err even when quiet
func (l *Logger) Error(err error) {
	fmt.Fprintf(l.Err, "%s %v\n", errorStyle.Render("error:"), err)
}

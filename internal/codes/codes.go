// Package codes classifies failures and maps them to process exit codes.
package codes

import (
	"errors"
	"fmt"
)

// Kind identifies which stage of the pipeline a hard failure came from
type Kind int

const (
	Unknown Kind = iota
	Config
	Toolchain
	Scaffold
	Build
	Sync
)

// ExitCodes maps process exit codes to their descriptions
var ExitCodes = map[int]string{
	0: "Success",
	1: "General failure",
	2: "Invalid configuration",
	3: "Toolchain not available",
	4: "Workspace scaffolding failed",
	5: "Build failed",
	6: "Library sync failed",
}

var kindExitCodes = map[Kind]int{
	Unknown:   1,
	Config:    2,
	Toolchain: 3,
	Scaffold:  4,
	Build:     5,
	Sync:      6,
}

// Error is a hard failure tagged with the stage it came from
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap tags err with kind. A nil err stays nil and an already tagged
// error keeps its original kind.
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}

	var tagged *Error
	if errors.As(err, &tagged) {
		return err
	}

	return &Error{Kind: kind, Err: err}
}

// Errorf formats a message and tags it with kind
func Errorf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the kind err was tagged with, or Unknown
func KindOf(err error) Kind {
	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged.Kind
	}

	return Unknown
}

// ExitCode returns the process exit code for err
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	return kindExitCodes[KindOf(err)]
}

// GetErrorMessage returns the description for a given exit code, or a generic message if unknown
func GetErrorMessage(code int) string {
	if msg, ok := ExitCodes[code]; ok {
		return msg
	}

	return "Unknown error"
}

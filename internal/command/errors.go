package command

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when the requested program cannot be started,
// typically because it is not installed or not on PATH.
var ErrNotFound = errors.New("command not found")

// ErrTimeout is returned when a command exceeds the configured timeout.
var ErrTimeout = errors.New("command timed out")

// ExitError reports a command that started but exited with a non-zero status.
// The standard output captured before exit is still returned by Run.
type ExitError struct {
	// Command is the program name with its arguments.
	Command string

	// Code is the process exit status.
	Code int

	// Stderr holds the trimmed standard error of the child, if any.
	Stderr string
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s exited with status %d", e.Command, e.Code)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

// commandLine joins a program name and its arguments for messages and logs.
func commandLine(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}

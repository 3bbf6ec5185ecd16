package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Output is the captured result of a finished command.
type Output struct {
	// Stdout is the standard output decoded as UTF-8. Ill-formed byte
	// sequences are replaced with U+FFFD.
	Stdout string

	// Duration is the wall time between start and exit.
	Duration time.Duration
}

// Trimmed returns Stdout without leading and trailing white space.
func (o Output) Trimmed() string {
	return strings.TrimSpace(o.Stdout)
}

// Runner executes an external program and waits for it to exit.
//
// Collectors depend on Runner instead of os/exec so they can be driven by
// canned output in tests (see commandtest.FakeRunner).
//
// Design decision: Run returns the captured output together with the error.
// Some utilities print usable data and still exit non-zero, so each caller
// decides whether partial output is worth parsing:
//  1. uname treats any error as a failure
//  2. vm_stat and df parse whatever was printed
//  3. sysctl falls back to zero
type Runner interface {
	// Run starts name with args, waits for completion and returns the
	// captured standard output. A non-zero exit is reported as *ExitError
	// together with whatever output was produced.
	Run(ctx context.Context, name string, args ...string) (Output, error)
}

// ExecRunner is the Runner backed by os/exec.
type ExecRunner struct {
	// timeout bounds each command. Zero waits forever.
	timeout time.Duration
}

// ExecRunnerOption configures an ExecRunner.
type ExecRunnerOption func(*ExecRunner)

// WithTimeout bounds every command started by the runner.
// A zero or negative value disables the bound.
func WithTimeout(timeout time.Duration) ExecRunnerOption {
	return func(r *ExecRunner) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

// NewExecRunner creates an ExecRunner.
func NewExecRunner(opts ...ExecRunnerOption) *ExecRunner {
	r := &ExecRunner{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (Output, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // Program names are fixed by the collectors
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	out := Output{
		Stdout:   DecodeLossy(stdout.Bytes()),
		Duration: time.Since(start),
	}

	if err == nil {
		return out, nil
	}

	line := commandLine(name, args)
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return out, fmt.Errorf("%s: %w", line, ErrTimeout)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return out, &ExitError{
			Command: line,
			Code:    exitErr.ExitCode(),
			Stderr:  strings.TrimSpace(DecodeLossy(stderr.Bytes())),
		}
	}

	if errors.Is(err, exec.ErrNotFound) {
		return out, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return out, fmt.Errorf("failed to run %s: %w", line, err)
}

// DecodeLossy converts raw command output into valid UTF-8, replacing each
// ill-formed sequence with the Unicode replacement character.
func DecodeLossy(b []byte) string {
	s, _, err := transform.Bytes(runes.ReplaceIllFormed(), b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "\uFFFD")
	}
	return string(s)
}

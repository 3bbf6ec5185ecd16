// Package commandtest provides a scripted command.Runner for tests.
package commandtest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/nao1215/sysreport/internal/command"
)

// Response is the scripted result for one command line.
type Response struct {
	Stdout string
	Err    error
}

// FakeRunner returns canned responses keyed by the full command line,
// for example "uname -r". Unknown commands fail with command.ErrNotFound.
type FakeRunner struct {
	mu        sync.Mutex
	responses map[string]Response
	calls     []string
}

// NewFakeRunner creates an empty FakeRunner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{responses: make(map[string]Response)}
}

// Set scripts the response for a command line.
func (f *FakeRunner) Set(line, stdout string, err error) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[line] = Response{Stdout: stdout, Err: err}
	return f
}

// Calls returns the command lines run so far, in order.
func (f *FakeRunner) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// Run implements command.Runner.
func (f *FakeRunner) Run(_ context.Context, name string, args ...string) (command.Output, error) {
	line := strings.TrimSpace(name + " " + strings.Join(args, " "))

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, line)

	resp, ok := f.responses[line]
	if !ok {
		return command.Output{}, fmt.Errorf("%s: %w", name, command.ErrNotFound)
	}
	return command.Output{Stdout: resp.Stdout}, resp.Err
}

package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/sysreport/internal/model"
)

// Step defines the interface that all collection steps implement.
type Step interface {
	// Do collects one section into the snapshot. A returned error is
	// recorded on the snapshot; the step is expected to have logged its
	// own diagnostic and to leave the section absent.
	Do(ctx context.Context, snapshot *model.Snapshot) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline executes steps sequentially.
//
// Each step fills one section of the snapshot. Steps always run in the order
// they were added, which is also the order of the report sections, and a
// failed step never prevents the next one from running.
//
// Design decision: there is no stop-on-error mode. Every step degrades to an
// absent section on failure, so a partial report is always more useful than
// none. Cancellation of the context is the only way to end a run early.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a new Pipeline with the given options.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step to the pipeline.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	for _, step := range steps {
		p.AddStep(step)
	}
}

// Execute runs every step in order. Step failures are recorded on the
// snapshot and do not stop execution. Only cancellation of ctx ends the run
// early, in which case ctx.Err() is returned.
func (p *Pipeline) Execute(ctx context.Context, snapshot *model.Snapshot) error {
	p.logger.Debug("pipeline started",
		"step_count", p.StepCount(),
		"steps", p.StepNames(),
	)

	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("collection cancelled",
				"step", step.Name(),
				"reason", err,
			)
			return err
		}

		p.logger.Debug("executing step", "step", step.Name())

		if err := step.Do(ctx, snapshot); err != nil {
			snapshot.AddError(step.Name(), err)
			p.logger.Debug("step failed", "step", step.Name(), "error", err)
			continue
		}

		p.logger.Debug("step completed", "step", step.Name())
	}

	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}

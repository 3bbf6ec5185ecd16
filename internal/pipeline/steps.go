package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nao1215/sysreport/internal/command"
	"github.com/nao1215/sysreport/internal/model"
	"github.com/nao1215/sysreport/internal/sysinfo"
)

// KernelStep fills the kernel section from `uname -r` and `uname -a`.
// The two commands are independent: a failure of one does not skip the other.
type KernelStep struct {
	runner command.Runner
	logger *slog.Logger
}

// NewKernelStep creates a KernelStep.
func NewKernelStep(runner command.Runner, logger *slog.Logger) *KernelStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &KernelStep{runner: runner, logger: logger}
}

// Name returns the step name.
func (s *KernelStep) Name() string {
	return "kernel"
}

// Do executes the kernel step.
func (s *KernelStep) Do(ctx context.Context, snapshot *model.Snapshot) error {
	var errs []error

	release, err := sysinfo.KernelRelease(ctx, s.runner)
	if err != nil {
		s.logger.Error("failed to get kernel version", "command", "uname -r", "error", err)
		errs = append(errs, err)
	} else {
		snapshot.Kernel.Release = release
		snapshot.Kernel.HasRelease = true
	}

	full, err := sysinfo.KernelFull(ctx, s.runner)
	if err != nil {
		s.logger.Error("failed to get full kernel info", "command", "uname -a", "error", err)
		errs = append(errs, err)
	} else {
		snapshot.Kernel.Full = full
		snapshot.Kernel.HasFull = true
	}

	return errors.Join(errs...)
}

// MemoryStep fills the memory section from a MemorySource.
type MemoryStep struct {
	source sysinfo.MemorySource
	logger *slog.Logger
}

// NewMemoryStep creates a MemoryStep.
func NewMemoryStep(source sysinfo.MemorySource, logger *slog.Logger) *MemoryStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemoryStep{source: source, logger: logger}
}

// Name returns the step name.
func (s *MemoryStep) Name() string {
	return "memory"
}

// Do executes the memory step. A zero total only disables the percentage;
// the used figure is still reported.
func (s *MemoryStep) Do(ctx context.Context, snapshot *model.Snapshot) error {
	total := s.source.TotalBytes(ctx)
	if total == 0 {
		s.logger.Debug("total memory unavailable, reporting 0")
	}
	snapshot.Memory.TotalBytes = total

	pc, err := s.source.PageCounts(ctx)
	if err != nil {
		s.logger.Error("failed to get memory info", "command", "vm_stat", "error", err)
		return err
	}

	if pc == (sysinfo.PageCounts{}) {
		s.logger.Debug("no page counters found in vm_stat output")
	}

	snapshot.Memory.ActivePages = pc.Active
	snapshot.Memory.WiredPages = pc.Wired
	snapshot.Memory.CompressedPages = pc.Compressed
	snapshot.Memory.Present = true

	percent := snapshot.Memory.Percent()
	s.logger.Debug("memory collected",
		"used_bytes", snapshot.Memory.UsedBytes(),
		"total_bytes", total,
		"percent", percent,
		"level", model.LevelFor(percent).String(),
	)
	return nil
}

// DiskStep fills the disk section from `df -h <path>`.
type DiskStep struct {
	runner command.Runner
	path   string
	logger *slog.Logger
}

// NewDiskStep creates a DiskStep for path. An empty path means "/".
func NewDiskStep(runner command.Runner, path string, logger *slog.Logger) *DiskStep {
	if logger == nil {
		logger = slog.Default()
	}
	if path == "" {
		path = sysinfo.DefaultDiskPath
	}
	return &DiskStep{runner: runner, path: path, logger: logger}
}

// Name returns the step name.
func (s *DiskStep) Name() string {
	return "disk"
}

// Do executes the disk step. A short or missing data row is not an error.
func (s *DiskStep) Do(ctx context.Context, snapshot *model.Snapshot) error {
	info, err := sysinfo.Disk(ctx, s.runner, s.path)
	snapshot.Disk = info
	if err != nil {
		s.logger.Error("failed to get disk info", "command", "df -h "+s.path, "error", err)
		return err
	}

	if !info.Present {
		s.logger.Debug("df returned no usable data row", "path", s.path)
	}
	return nil
}

// DefaultSteps returns the report steps in print order.
func DefaultSteps(runner command.Runner, diskPath string, logger *slog.Logger) []Step {
	return []Step{
		NewKernelStep(runner, logger),
		NewMemoryStep(sysinfo.NewDarwinSource(runner), logger),
		NewDiskStep(runner, diskPath, logger),
	}
}

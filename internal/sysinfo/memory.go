package sysinfo

import (
	"context"
	"fmt"

	"github.com/nao1215/sysreport/internal/command"
)

// MemorySource provides the raw inputs of the memory section.
type MemorySource interface {
	// TotalBytes returns physical memory in bytes, or 0 if unknown.
	TotalBytes(ctx context.Context) uint64

	// PageCounts returns the used-memory page counters. An error means the
	// statistics could not be obtained at all.
	PageCounts(ctx context.Context) (PageCounts, error)
}

// DarwinSource reads memory figures through sysctl and vm_stat.
type DarwinSource struct {
	runner command.Runner
}

// NewDarwinSource creates a DarwinSource that runs commands through r.
func NewDarwinSource(r command.Runner) *DarwinSource {
	return &DarwinSource{runner: r}
}

// TotalBytes runs `sysctl -n hw.memsize`. Any failure yields 0.
func (s *DarwinSource) TotalBytes(ctx context.Context) uint64 {
	out, err := s.runner.Run(ctx, "sysctl", "-n", "hw.memsize")
	if err != nil {
		return 0
	}
	return ParseMemSize(out.Stdout)
}

// PageCounts runs `vm_stat`. A command that starts but exits non-zero still
// has its output parsed; only a launch failure is returned as an error.
func (s *DarwinSource) PageCounts(ctx context.Context) (PageCounts, error) {
	out, err := s.runner.Run(ctx, "vm_stat")
	if err != nil && out.Stdout == "" {
		return PageCounts{}, fmt.Errorf("vm_stat: %w", err)
	}
	return ParseVMStat(out.Stdout), nil
}

package sysinfo

import (
	"context"
	"fmt"

	"github.com/nao1215/sysreport/internal/command"
)

// KernelRelease returns the trimmed output of `uname -r`.
func KernelRelease(ctx context.Context, r command.Runner) (string, error) {
	return uname(ctx, r, "-r")
}

// KernelFull returns the trimmed output of `uname -a`.
func KernelFull(ctx context.Context, r command.Runner) (string, error) {
	return uname(ctx, r, "-a")
}

func uname(ctx context.Context, r command.Runner, flag string) (string, error) {
	out, err := r.Run(ctx, "uname", flag)
	if err != nil {
		return "", fmt.Errorf("uname %s: %w", flag, err)
	}
	return out.Trimmed(), nil
}

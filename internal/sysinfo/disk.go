package sysinfo

import (
	"context"
	"fmt"
	"strings"

	"github.com/nao1215/sysreport/internal/command"
	"github.com/nao1215/sysreport/internal/model"
)

// DefaultDiskPath is the filesystem reported when none is configured.
const DefaultDiskPath = "/"

// dfColumns is the number of leading df columns kept in the report.
const dfColumns = 5

// ParseDF extracts the first data row of `df -h` output. The returned
// DiskInfo has Present set only when the row has at least five fields;
// values are copied verbatim.
func ParseDF(text string) model.DiskInfo {
	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return model.DiskInfo{}
	}

	fields := strings.Fields(lines[1])
	if len(fields) < dfColumns {
		return model.DiskInfo{}
	}

	return model.DiskInfo{
		Filesystem: fields[0],
		Size:       fields[1],
		Used:       fields[2],
		Available:  fields[3],
		Capacity:   fields[4],
		Present:    true,
	}
}

// Disk runs `df -h path` and parses the result. Output from a non-zero exit
// is still parsed; only a launch failure without output is an error.
func Disk(ctx context.Context, r command.Runner, path string) (model.DiskInfo, error) {
	if path == "" {
		path = DefaultDiskPath
	}

	out, err := r.Run(ctx, "df", "-h", path)
	if err != nil && out.Stdout == "" {
		return model.DiskInfo{Path: path}, fmt.Errorf("df: %w", err)
	}

	info := ParseDF(out.Stdout)
	info.Path = path
	return info, nil
}

package sysinfo

import (
	"strconv"
	"strings"
)

// PageCounts holds the vm_stat counters that make up used memory.
type PageCounts struct {
	Active     uint64
	Wired      uint64
	Compressed uint64
}

// counter binds a vm_stat label to the PageCounts field it fills.
type counter struct {
	label string
	slot  func(*PageCounts) *uint64
}

// usedCounters are the vm_stat lines summed into used memory.
// Adding a counter is a new entry here.
var usedCounters = []counter{
	{label: "Pages active", slot: func(p *PageCounts) *uint64 { return &p.Active }},
	{label: "Pages wired down", slot: func(p *PageCounts) *uint64 { return &p.Wired }},
	{label: "Pages occupied by compressor", slot: func(p *PageCounts) *uint64 { return &p.Compressed }},
}

// ParseVMStat scans vm_stat output once and extracts the used-memory
// counters. Each line is matched against the first label it contains;
// absent lines leave their counter at zero.
func ParseVMStat(text string) PageCounts {
	var pc PageCounts
	for _, line := range strings.Split(text, "\n") {
		for _, c := range usedCounters {
			if strings.Contains(line, c.label) {
				*c.slot(&pc) = ExtractNumber(line)
				break
			}
		}
	}
	return pc
}

// ExtractNumber returns the first white-space separated token of line that
// parses as an unsigned integer once trailing periods are removed. A single
// leading "+" is accepted. It returns 0 when no token qualifies.
func ExtractNumber(line string) uint64 {
	for _, tok := range strings.Fields(line) {
		tok = strings.TrimPrefix(strings.TrimRight(tok, "."), "+")
		n, err := strconv.ParseUint(tok, 10, 64)
		if err == nil {
			return n
		}
	}
	return 0
}

// ParseMemSize parses the `sysctl -n hw.memsize` output. It returns 0 when
// the text is not an unsigned integer.
func ParseMemSize(text string) uint64 {
	n, err := strconv.ParseUint(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

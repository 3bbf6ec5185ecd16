// Package sysinfo runs the host utilities behind each report section and
// parses their text output.
//
// The memory source is macOS specific: total memory comes from
// `sysctl -n hw.memsize` and page counters from `vm_stat`. Parsing never
// fails hard. A missing counter or an unparsable number yields zero, so a
// partially readable host still produces a report.
package sysinfo

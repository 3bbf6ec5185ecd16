package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/sysreport/internal/model"
)

// Section headers of the text report and their underlines.
const (
	kernelHeader = "Kernel Version Information"
	kernelRule   = "========================="
	memoryHeader = "Memory Usage"
	memoryRule   = "============"
	diskHeader   = "Disk Usage"
	diskRule     = "=========="
)

// TextWriter renders the plain terminal report. Headers are always
// printed; lines of absent sections are omitted.
type TextWriter struct {
	baseWriter
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the snapshot.
func (w *TextWriter) Write(snapshot *model.Snapshot) (int, error) {
	var sb strings.Builder

	w.writeKernel(&sb, snapshot.Kernel)
	w.writeMemory(&sb, snapshot.Memory)
	w.writeDisk(&sb, snapshot.Disk)

	return io.WriteString(w.output, sb.String())
}

func (w *TextWriter) writeKernel(sb *strings.Builder, k model.KernelInfo) {
	sb.WriteString(kernelHeader + "\n")
	sb.WriteString(kernelRule + "\n\n")

	if k.HasRelease {
		fmt.Fprintf(sb, "Kernel Release: %s\n", k.Release)
	}
	if k.HasFull {
		fmt.Fprintf(sb, "Full Info: %s\n", k.Full)
	}
}

func (w *TextWriter) writeMemory(sb *strings.Builder, m model.MemoryInfo) {
	sb.WriteString("\n" + memoryHeader + "\n")
	sb.WriteString(memoryRule + "\n")

	if m.Present {
		fmt.Fprintf(sb, "Memory: %.2f GiB / %.2f GiB (%d%%)\n", m.UsedGiB(), m.TotalGiB(), m.Percent())
	}
}

func (w *TextWriter) writeDisk(sb *strings.Builder, d model.DiskInfo) {
	sb.WriteString("\n" + diskHeader + "\n")
	sb.WriteString(diskRule + "\n")

	if !d.Present {
		return
	}
	fmt.Fprintf(sb, "Filesystem: %s\n", d.Filesystem)
	fmt.Fprintf(sb, "Size:       %s\n", d.Size)
	fmt.Fprintf(sb, "Used:       %s\n", d.Used)
	fmt.Fprintf(sb, "Available:  %s\n", d.Available)
	fmt.Fprintf(sb, "Capacity:   %s\n", d.Capacity)
}

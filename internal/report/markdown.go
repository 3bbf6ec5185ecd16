package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/sysreport/internal/model"
)

// MarkdownWriter outputs the report as a GitHub flavored Markdown document.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the snapshot in Markdown format.
func (w *MarkdownWriter) Write(snapshot *model.Snapshot) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, snapshot)
	w.writeKernel(md, snapshot.Kernel)
	w.writeMemory(md, snapshot.Memory)
	w.writeDisk(md, snapshot.Disk)
	w.writeErrors(md, snapshot)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, snapshot *model.Snapshot) {
	md.H1("System Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Host", orDash(snapshot.Hostname)},
			{"Collected", snapshot.CollectedAt.Format("2006-01-02 15:04:05 MST")},
		},
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeKernel(md *markdown.Markdown, k model.KernelInfo) {
	md.H2(kernelHeader)
	md.PlainText("")

	if !k.HasRelease && !k.HasFull {
		md.PlainText("Kernel information unavailable.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, 2)
	if k.HasRelease {
		rows = append(rows, []string{"Kernel Release", "`" + k.Release + "`"})
	}
	if k.HasFull {
		rows = append(rows, []string{"Full Info", "`" + k.Full + "`"})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Field", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeMemory(md *markdown.Markdown, m model.MemoryInfo) {
	md.H2(memoryHeader)
	md.PlainText("")

	if !m.Present {
		md.PlainText("Memory statistics unavailable.")
		md.PlainText("")
		return
	}

	md.Table(markdown.TableSet{
		Header: []string{"Used", "Total", "Usage"},
		Rows: [][]string{{
			fmt.Sprintf("%.2f GiB", m.UsedGiB()),
			fmt.Sprintf("%.2f GiB", m.TotalGiB()),
			strconv.FormatUint(m.Percent(), 10) + "%",
		}},
	})
	md.PlainText("")

	w.writeMemoryChart(md, m)
	w.writeMemoryAlert(md, m)
}

// writeMemoryChart draws the used-memory composition as a mermaid pie chart.
// Slices with zero pages are left out.
func (w *MarkdownWriter) writeMemoryChart(md *markdown.Markdown, m model.MemoryInfo) {
	if m.UsedBytes() == 0 && m.TotalBytes == 0 {
		return
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Memory Composition (MiB)"),
		piechart.WithShowData(true),
	)

	slices := []struct {
		label string
		bytes uint64
	}{
		{"Active", m.ActiveBytes()},
		{"Wired", m.WiredBytes()},
		{"Compressed", m.CompressedBytes()},
		{"Other", m.FreeBytes()},
	}
	for _, s := range slices {
		if mib := s.bytes / (1024 * 1024); mib > 0 {
			chart.LabelAndIntValue(s.label, mib)
		}
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownWriter) writeMemoryAlert(md *markdown.Markdown, m model.MemoryInfo) {
	if m.TotalBytes == 0 {
		md.Note("Total memory could not be read; usage is reported as 0%.")
		md.PlainText("")
		return
	}

	switch model.LevelFor(m.Percent()) {
	case model.UsageCritical:
		md.Cautionf("Memory usage is at %d%%.", m.Percent())
		md.PlainText("")
	case model.UsageElevated:
		md.Warningf("Memory usage is at %d%%.", m.Percent())
		md.PlainText("")
	case model.UsageNormal:
	}
}

func (w *MarkdownWriter) writeDisk(md *markdown.Markdown, d model.DiskInfo) {
	md.H2(diskHeader)
	md.PlainText("")

	if !d.Present {
		md.PlainText("Disk usage unavailable.")
		md.PlainText("")
		return
	}

	md.Table(markdown.TableSet{
		Header: []string{"Filesystem", "Size", "Used", "Available", "Capacity"},
		Rows:   [][]string{d.Fields()},
	})
	md.PlainText("")
}

// writeErrors lists the steps that failed so the document is self-explanatory.
func (w *MarkdownWriter) writeErrors(md *markdown.Markdown, snapshot *model.Snapshot) {
	if !snapshot.HasErrors() {
		return
	}

	md.H2("Collection Errors")
	md.PlainText("")
	items := make([]string, len(snapshot.Errors))
	for i, e := range snapshot.Errors {
		items[i] = e.Step + ": " + e.Message
	}
	md.BulletList(items...)
	md.PlainText("")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

package report

import (
	"io"

	"github.com/nao1215/sysreport/internal/model"
)

// Writer outputs a snapshot in a specific format.
type Writer interface {
	// Write renders the snapshot to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(snapshot *model.Snapshot) (int, error)
}

// MultiWriter writes to multiple Writers in order.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the snapshot to all configured Writers.
// Returns the total bytes written and stops on the first error.
func (m *MultiWriter) Write(snapshot *model.Snapshot) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(snapshot)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// New returns the writer for a format name. Unknown names fall back to text.
func New(format string, output io.Writer) Writer {
	switch format {
	case "markdown":
		return NewMarkdownWriter(output)
	default:
		return NewTextWriter(output)
	}
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

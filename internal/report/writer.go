package report

import (
	"io"
	"strconv"

	"github.com/zvalenta/forumscan/internal/model"
)

// Writer defines the interface for run summary output.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or network
// connections with the same API.
type Writer interface {
	// Write outputs the summary to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(summary *model.RunSummary) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface is different
// from io.Writer - we write summaries, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the summary to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(summary *model.RunSummary) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(summary)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for summary writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// pageRow flattens one page result into summary table cells.
func pageRow(p model.PageResult) []string {
	return []string{
		p.Target.Identifier,
		p.Target.StartOffset,
		p.Fetch.Status.String(),
		strconv.Itoa(p.Fetch.HTTPStatus),
		strconv.Itoa(p.Fetch.ContentLength),
		strconv.Itoa(p.Records),
		p.FileName,
		p.Fetch.FetchedAt.Format("2006-01-02 15:04:05"),
	}
}

// pageHeader is the column set for the per-page summary table.
var pageHeader = []string{
	"Identifier", "Page/Offset", "Status", "HTTP", "Length", "Records", "File", "Fetched At",
}

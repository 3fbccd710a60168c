package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/zvalenta/forumscan/internal/model"
)

// timeRounding trims sub-second noise from displayed durations.
const timeRounding = time.Second

// SimpleWriter outputs human-readable text summaries.
// This format is designed for terminal display at the end of a run.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// verbose enables the per-page table in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables the per-page breakdown in addition to the
// aggregate counts.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the run summary in human-readable format.
func (w *SimpleWriter) Write(summary *model.RunSummary) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, summary)
	if w.verbose {
		w.writePages(&sb, summary)
	}

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the run header with aggregate counts.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, summary *model.RunSummary) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                         CRAWL SUMMARY\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Mode:          %s\n", summary.Mode))
	sb.WriteString(fmt.Sprintf("Started:       %s\n", summary.StartedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Duration:      %s\n", summary.Duration().Round(timeRounding)))
	sb.WriteString(fmt.Sprintf("Pages fetched: %d\n", len(summary.Pages)))
	sb.WriteString(fmt.Sprintf("Succeeded:     %d\n", summary.Succeeded))
	sb.WriteString(fmt.Sprintf("Skipped:       %d\n", summary.Skipped))
	sb.WriteString("\n")
}

// writePages writes one line per fetched page.
func (w *SimpleWriter) writePages(sb *strings.Builder, summary *model.RunSummary) {
	if len(summary.Pages) == 0 {
		sb.WriteString("No pages were fetched.\n\n")
		return
	}

	sb.WriteString(strings.Join(pageHeader, "\t"))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	for _, p := range summary.Pages {
		sb.WriteString(strings.Join(pageRow(p), "\t"))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/zvalenta/forumscan/internal/model"
)

// MarkdownWriter outputs run summaries in Markdown format.
// This format is designed to be archived next to the crawled data.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the full run summary in Markdown format.
func (w *MarkdownWriter) Write(summary *model.RunSummary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, summary)
	w.writePages(md, summary)
	w.writeAlert(md, summary)

	return len(md.String()), md.Build()
}

// writeHeader writes the run header with aggregate counts.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, summary *model.RunSummary) {
	md.H1("Crawl Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Mode", summary.Mode},
			{"Started", summary.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Finished", summary.FinishedAt.Format("2006-01-02 15:04:05 MST")},
			{"Duration", summary.Duration().Round(timeRounding).String()},
			{"Pages fetched", strconv.Itoa(len(summary.Pages))},
			{"Succeeded", strconv.Itoa(summary.Succeeded)},
			{"Skipped", strconv.Itoa(summary.Skipped)},
		},
	})
	md.PlainText("")
}

// writePages writes the per-page result table.
func (w *MarkdownWriter) writePages(md *markdown.Markdown, summary *model.RunSummary) {
	md.H2("Pages")
	md.PlainText("")

	if len(summary.Pages) == 0 {
		md.PlainText("No pages were fetched.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(summary.Pages))
	for _, p := range summary.Pages {
		rows = append(rows, pageRow(p))
	}
	md.Table(markdown.TableSet{
		Header: pageHeader,
		Rows:   rows,
	})
	md.PlainText("")
}

// writeAlert writes an alert reflecting how complete the run was.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, summary *model.RunSummary) {
	switch {
	case summary.Succeeded == 0 && len(summary.Pages) > 0:
		md.Warningf("No page of this run was usable. Check credentials and connectivity.")
	case summary.Skipped > 0:
		md.Importantf("%d page(s) were skipped. The rest of the run completed normally.", summary.Skipped)
	default:
		md.Tip("All pages fetched successfully.")
	}
	md.PlainText("")
}

// Package report renders crawl run summaries.
//
// Two formats are provided:
//   - SimpleWriter: human-readable text for terminal display
//   - MarkdownWriter: a markdown document for archiving alongside the data
//
// Design decision: We separate summary rendering from the summary data
// structures (which live in the model package) so formats can be added
// without touching the crawl pipeline. Writers implement the Writer
// interface and can be composed with MultiWriter to emit both formats
// in one pass.
package report

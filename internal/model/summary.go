package model

import "time"

// PageResult pairs a crawl target with the classified outcome of its fetch
// and the name of the archived page file, if one was written.
type PageResult struct {
	// Target is the crawl target that produced this result.
	Target CrawlTarget

	// Fetch is the classified fetch outcome.
	Fetch FetchResult

	// FileName is the base name of the archived raw page file.
	// Empty when the page was not usable.
	FileName string

	// Records is the number of records extracted from the page.
	Records int
}

// RunSummary is the ordered account of a whole crawl run.
// It is produced once at the end of the run (or at interruption, covering
// what completed) and consumed only by the report and database sinks.
type RunSummary struct {
	// Mode names the traversal strategy ("forum" or "election-roll").
	Mode string

	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time
	FinishedAt time.Time

	// Pages lists every target processed, in input order.
	Pages []PageResult

	// Succeeded counts usable pages; Skipped counts everything else,
	// including input lines rejected before fetching. Partial success
	// is the expected steady state, not a failure.
	Succeeded int
	Skipped   int
}

// Duration returns the wall-clock duration of the run.
func (s RunSummary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}

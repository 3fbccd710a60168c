package model

// TargetKind selects the traversal strategy for a crawl target.
type TargetKind int

const (
	// KindForum targets a forum topic page. Each target is exactly one
	// fetch; pagination is expressed by explicit start offsets in the
	// input URL list.
	KindForum TargetKind = iota

	// KindElectionRoll targets an election voter list. The controller
	// expands the base URL into an ascending page-number sequence and
	// stops at the first page without real data.
	KindElectionRoll
)

// String returns a human-readable name for the target kind.
func (k TargetKind) String() string {
	switch k {
	case KindForum:
		return "forum"
	case KindElectionRoll:
		return "election-roll"
	default:
		return "unknown"
	}
}

// CrawlTarget is one unit of work for the crawl controller.
// Targets are parsed from the input URL list and are immutable
// for the duration of the run.
type CrawlTarget struct {
	// Kind selects the traversal strategy.
	Kind TargetKind

	// Identifier is the topic ID (forum) or election ID (election roll).
	Identifier string

	// StartOffset is the pagination offset for forum targets ("start"
	// query parameter, "0" when absent) or the page number for
	// election-roll targets.
	StartOffset string

	// URL is the fully resolved URL to fetch.
	URL string
}

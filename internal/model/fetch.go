package model

import "time"

// FetchStatus classifies the outcome of a single page fetch.
// Classification happens in the fetch package before any structural
// extraction; the extractor is only ever invoked on StatusUsable results.
//
// Design decision: We propagate outcomes as value variants rather than
// errors because a skipped page is the expected steady state of a crawl,
// not an exceptional condition. The controller decides continue/stop
// based on the variant.
type FetchStatus int

const (
	// StatusUsable means the page returned real content and can be
	// handed to the extractor.
	StatusUsable FetchStatus = iota

	// StatusEmpty means the response body was too short to contain
	// real content (below the fetcher's viability threshold).
	StatusEmpty

	// StatusErrorPage means the body matched a known error marker
	// (topic not found, page not found, registration required).
	StatusErrorPage

	// StatusTransportFailure means the request itself failed
	// (network error, timeout). The error is logged, not propagated.
	StatusTransportFailure
)

// String returns a human-readable name for the status.
func (s FetchStatus) String() string {
	switch s {
	case StatusUsable:
		return "usable"
	case StatusEmpty:
		return "empty"
	case StatusErrorPage:
		return "error-page"
	case StatusTransportFailure:
		return "transport-failure"
	default:
		return "unknown"
	}
}

// FetchResult is the classified outcome of one validated GET.
//
// Invariant: RawMarkup is non-empty if and only if Status == StatusUsable.
type FetchResult struct {
	// Status is the classification of the response.
	Status FetchStatus

	// RawMarkup is the full response body. Only set for usable pages.
	RawMarkup string

	// HTTPStatus is the HTTP response status code, zero when the
	// request never completed.
	HTTPStatus int

	// FetchedAt is the time the response was received.
	FetchedAt time.Time

	// ContentLength is the length of the response body in bytes.
	// Recorded even for non-usable pages so the pagination-end
	// heuristic and the run summary can use it.
	ContentLength int
}

// Usable reports whether the result carries markup for extraction.
func (r FetchResult) Usable() bool {
	return r.Status == StatusUsable
}

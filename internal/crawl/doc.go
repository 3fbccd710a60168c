// Package crawl orchestrates the fetch loop over a list of targets.
//
// Two traversal strategies exist. Forum targets come straight from the
// input URL list: each line is exactly one fetch, with the topic id and
// pagination offset parsed from the query string. Election rolls are
// expanded from a base URL into an ascending page-number sequence that
// terminates at the first page without real data.
//
// The controller enforces a fixed delay between every fetch it issues,
// regardless of strategy. One fetch is in flight at a time; targets are
// processed in input order and an interrupt stops the loop before its
// next scheduled fetch.
package crawl

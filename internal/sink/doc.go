// Package sink persists crawl output: raw page archives on disk, extracted
// records as xlsx workbooks, and the merge step that concatenates per-page
// workbook shards into one file per topic or election.
//
// Everything here is flushed per call. A crawl interrupted mid-run leaves
// every page it completed fully written; nothing is buffered across pages.
package sink

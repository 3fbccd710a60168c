// Package input reads the newline-delimited URL lists that drive a crawl.
// Blank lines and # comments are ignored; forum-mode lines are validated
// against the expected host and path before they become crawl targets.
package input

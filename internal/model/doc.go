// Package model defines the core data types shared across forumscan:
// crawl targets, classified fetch results, extracted records, and run
// summaries. Types here carry no behavior beyond simple accessors so
// that the crawl, extract, and sink packages stay decoupled.
package model

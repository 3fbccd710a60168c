// Package main provides the entry point for the forumscan CLI.
//
// forumscan crawls the Czech Pirate Party phpBB forum and its Helios
// election voter rolls, archives the raw pages, and extracts structured
// post and vote records into xlsx workbooks.
//
// Usage:
//
//	forumscan crawl -f links.txt
//	forumscan votes -f links_helios.txt
//	forumscan parse data/
//	forumscan merge data/
//
// See --help for all available options.
package main

// main is the entry point for forumscan.
func main() {
	Execute()
}

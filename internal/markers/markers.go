// Package markers provides locale-keyed marker phrase sets used to
// classify pages by substring scanning.
//
// Both the fetcher (error-page detection) and the authenticator
// (login-success detection) classify raw markup by looking for known
// phrases rather than parsing structure: the phrases survive template
// changes better than selectors do, but they vary by interface locale.
// Keeping them in pluggable per-locale sets means adding a locale never
// touches control flow.
package markers

import "strings"

// Set maps a locale tag (e.g. "cs", "en") to the marker phrases for
// that locale. Matching is a case-insensitive substring scan, not a
// structural parse.
type Set map[string][]string

// Add appends phrases for a locale, creating the locale on first use.
func (s Set) Add(locale string, phrases ...string) {
	s[locale] = append(s[locale], phrases...)
}

// Match reports whether body contains any marker phrase of any locale.
func (s Set) Match(body string) bool {
	lower := strings.ToLower(body)
	for _, phrases := range s {
		for _, phrase := range phrases {
			if strings.Contains(lower, strings.ToLower(phrase)) {
				return true
			}
		}
	}
	return false
}

package extract

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	digitRun      = regexp.MustCompile(`\d+`)
)

// cleanText collapses all whitespace runs to single spaces and trims
// leading and trailing whitespace.
func cleanText(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// selectionText returns the selection's cleaned text content.
func selectionText(s *goquery.Selection) string {
	return cleanText(s.Text())
}

// firstDigits returns the first run of digits in s, or "" when none.
func firstDigits(s string) string {
	return digitRun.FindString(s)
}

// hrefQueryParam extracts one query parameter from a link target.
// phpBB profile links are relative ("./memberlist.php?...&u=123"),
// which url.Parse handles fine.
func hrefQueryParam(href, key string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return u.Query().Get(key)
}

// labeledText returns the selection's text with the given label prefix
// stripped, and reports whether the label was actually present. Fields
// behind a label (registration date, profession, location) only exist
// when the label text is found.
func labeledText(s *goquery.Selection, label string) (string, bool) {
	text := s.Text()
	if !strings.Contains(text, label) {
		return "", false
	}
	return cleanText(strings.Replace(text, label, "", 1)), true
}

// firstOf returns the first selection among the given selectors that
// matches anything under root.
func firstOf(root *goquery.Selection, selectors ...string) *goquery.Selection {
	for _, sel := range selectors {
		if found := root.Find(sel).First(); found.Length() > 0 {
			return found
		}
	}
	return root.Find(selectors[len(selectors)-1]).First()
}

package extract

import (
	"regexp"
	"strings"
	"time"
)

// outputTimeLayout is the normalized timestamp format of post records.
const outputTimeLayout = "2006-01-02 15:04:05"

// visibleDatetime matches the forum's human-readable timestamp
// ("1 únor 2022, 14:05"). \p{L} rather than \w because Czech month names
// carry letters outside ASCII.
var visibleDatetime = regexp.MustCompile(`(\d{1,2}\s+\p{L}+\s+\d{4}),?\s+(\d{1,2}:\d{2})`)

// normalizeDatetime normalizes a post timestamp. The machine-readable
// datetime attribute is preferred and parsed as ISO-8601; when it is
// absent or unparseable, a date/time pair extracted from the visible
// label is used instead; failing both, the raw visible text is kept
// verbatim. A timestamp we cannot parse must never fail the record.
func normalizeDatetime(attr, visible string) string {
	if attr != "" {
		// RFC 3339 is the ISO-8601 profile the forum emits; a literal Z
		// suffix parses natively.
		if t, err := time.Parse(time.RFC3339, strings.TrimSpace(attr)); err == nil {
			return t.Format(outputTimeLayout)
		}
	}

	if m := visibleDatetime.FindStringSubmatch(visible); m != nil {
		return m[1] + " " + m[2]
	}

	return cleanText(visible)
}

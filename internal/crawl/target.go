package crawl

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/zvalenta/forumscan/internal/model"
)

// Target parsing errors.
var (
	// ErrNoTopicID is returned when a forum URL has no "t" query
	// parameter to identify the topic.
	ErrNoTopicID = errors.New("forum URL has no topic id (t parameter)")

	// ErrNoElectionID is returned when an election roll URL does not
	// contain an /elections/<id>/ path segment.
	ErrNoElectionID = errors.New("election URL has no election id path segment")
)

// ParseTopicInfo extracts the topic identifier and pagination offset from
// a forum topic URL. The "t" query parameter is the identifier and is
// required; "start" is the offset and defaults to "0" when absent.
func ParseTopicInfo(rawURL string) (id, start string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse forum URL %q: %w", rawURL, err)
	}

	q := u.Query()
	id = q.Get("t")
	if id == "" {
		return "", "", ErrNoTopicID
	}

	start = q.Get("start")
	if start == "" {
		start = "0"
	}
	return id, start, nil
}

// ForumTarget builds a crawl target from a forum topic URL.
func ForumTarget(rawURL string) (model.CrawlTarget, error) {
	id, start, err := ParseTopicInfo(rawURL)
	if err != nil {
		return model.CrawlTarget{}, err
	}
	return model.CrawlTarget{
		Kind:        model.KindForum,
		Identifier:  id,
		StartOffset: start,
		URL:         rawURL,
	}, nil
}

// ParseElectionID extracts the election identifier from a voter list URL.
// The identifier is the path segment following "elections", which holds
// for both /elections/<id>/voters/list and prefixed variants.
func ParseElectionID(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse election URL %q: %w", rawURL, err)
	}

	segments := splitPath(u.Path)
	for i, seg := range segments {
		if seg == "elections" && i+1 < len(segments) && segments[i+1] != "" {
			return segments[i+1], nil
		}
	}
	return "", ErrNoElectionID
}

// PageURL rewrites or inserts the page query parameter on a base URL,
// producing the synthetic enumeration target for one page number.
func PageURL(baseURL string, page int) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse base URL %q: %w", baseURL, err)
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// splitPath splits a URL path into its non-empty segments.
func splitPath(path string) []string {
	var segments []string
	start := 0
	for i := 0; i <= len(path); i++ {
		if i == len(path) || path[i] == '/' {
			if i > start {
				segments = append(segments, path[start:i])
			}
			start = i + 1
		}
	}
	return segments
}

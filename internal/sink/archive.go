package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
)

const (
	dirPerm  = 0o750
	filePerm = 0o644
)

// Archive writes raw page markup into a single output directory so that
// extraction can be rerun offline without refetching.
type Archive struct {
	dir string
}

// NewArchive creates the output directory if needed and returns an
// archive rooted there.
func NewArchive(dir string) (*Archive, error) {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	return &Archive{dir: dir}, nil
}

// Dir returns the archive's root directory.
func (a *Archive) Dir() string {
	return a.dir
}

// WritePage writes one page's raw markup under the given base name.
// Each page is written and closed before the next fetch starts.
func (a *Archive) WritePage(name, markup string) error {
	path := filepath.Join(a.dir, name)
	if err := os.WriteFile(path, []byte(markup), filePerm); err != nil {
		return fmt.Errorf("archive page %s: %w", name, err)
	}
	return nil
}

// TopicPageName returns the archive file name for a forum topic page
// identified by its topic id and pagination start offset.
func TopicPageName(topicID, start string) string {
	return fmt.Sprintf("topic_%s-%s.html", topicID, start)
}

// ElectionPageName returns the archive file name for one page of an
// election roll.
func ElectionPageName(electionID string, page int) string {
	return fmt.Sprintf("election_%s_page_%d.html", electionID, page)
}

// TopicRecordsName returns the xlsx file name for the records extracted
// from one forum topic page.
func TopicRecordsName(topicID, start string) string {
	return fmt.Sprintf("topic_%s-%s_parsed.xlsx", topicID, start)
}

// ElectionRecordsName returns the xlsx file name for the records
// extracted from one election roll page.
func ElectionRecordsName(electionID string, page int) string {
	return fmt.Sprintf("election_%s_page_%d.xlsx", electionID, page)
}

// Archived page name patterns, the inverse of TopicPageName and
// ElectionPageName. The parse command uses these to recognize pages
// for offline re-extraction.
var (
	topicPagePattern    = regexp.MustCompile(`^topic_(\d+)-(\d+)\.html$`)
	electionPagePattern = regexp.MustCompile(`^election_([A-Za-z0-9-]+)_page_(\d+)\.html$`)
)

// ParseTopicPageName extracts the topic id and start offset from an
// archived topic page file name.
func ParseTopicPageName(name string) (topicID, start string, ok bool) {
	m := topicPagePattern.FindStringSubmatch(name)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// ParseElectionPageName extracts the election id and page number from an
// archived election page file name.
func ParseElectionPageName(name string) (electionID string, page int, ok bool) {
	m := electionPagePattern.FindStringSubmatch(name)
	if m == nil {
		return "", 0, false
	}
	page, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, false
	}
	return m[1], page, true
}

package input

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Forum URL validation substrings. A forum line must contain both; lines
// failing the check are reported and skipped, never fatal to the run.
const (
	forumHostMarker = "forum.pirati.cz"
	forumPathMarker = "viewtopic.php"
)

// SkippedLine records an input line that was rejected during reading,
// so the run summary can report it.
type SkippedLine struct {
	// Number is the 1-based line number in the input file.
	Number int

	// Text is the offending line.
	Text string

	// Reason explains why the line was skipped.
	Reason string
}

// ReadLinks reads URLs from a newline-delimited file. Blank lines and
// lines starting with # are silently ignored. When validateForum is true,
// each remaining line must contain both the forum host and the topic path;
// failing lines are returned in skipped rather than URLs.
func ReadLinks(path string, validateForum bool) (urls []string, skipped []SkippedLine, err error) {
	file, err := os.Open(path) //nolint:gosec // User-provided links file is intentional
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open links file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if validateForum && !isForumURL(line) {
			skipped = append(skipped, SkippedLine{
				Number: lineNum,
				Text:   line,
				Reason: "does not look like a forum topic URL",
			})
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read links file: %w", err)
	}

	return urls, skipped, nil
}

// isForumURL reports whether the line carries both the known forum host
// and the topic path.
func isForumURL(line string) bool {
	return strings.Contains(line, forumHostMarker) && strings.Contains(line, forumPathMarker)
}

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zvalenta/forumscan/internal/extract"
	"github.com/zvalenta/forumscan/internal/sink"
)

// NewParseCmd creates the parse command.
func NewParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <dir>",
		Short: "Re-extract records from archived pages offline",
		Long: `Parse walks a directory of archived pages (topic_<id>-<start>.html and
election_<id>_page_<n>.html) and re-runs structural extraction on each,
writing the per-page xlsx workbooks next to the pages.

Extraction is pure and deterministic, so selector fixes can be applied
to an existing archive without refetching anything.

Examples:
  forumscan parse data/`,
		Args: cobra.ExactArgs(1),
		RunE: runParseCmd,
	}
	return cmd
}

// runParseCmd executes the parse command.
func runParseCmd(cmd *cobra.Command, args []string) error {
	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)
	return runParse(args[0], cmd, logger)
}

// runParse re-extracts every archived page in dir.
func runParse(dir string, cmd *cobra.Command, logger *slog.Logger) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read archive directory: %w", err)
	}

	var parsed, failed int
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()

		switch {
		case isTopicPage(name):
			if err := parseTopicPage(dir, name, logger); err != nil {
				logger.Error("failed to parse page", "file", name, "error", err)
				failed++
				continue
			}
			parsed++
		case isElectionPage(name):
			if err := parseElectionPage(dir, name, logger); err != nil {
				logger.Error("failed to parse page", "file", name, "error", err)
				failed++
				continue
			}
			parsed++
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "parsed %d page(s), %d failed\n", parsed, failed)
	if parsed == 0 && failed == 0 {
		return fmt.Errorf("no archived pages found in %s", dir)
	}
	if failed > 0 {
		return fmt.Errorf("%d page(s) failed to parse", failed)
	}
	return nil
}

func isTopicPage(name string) bool {
	_, _, ok := sink.ParseTopicPageName(name)
	return ok
}

func isElectionPage(name string) bool {
	_, _, ok := sink.ParseElectionPageName(name)
	return ok
}

// parseTopicPage extracts post records from one archived topic page.
func parseTopicPage(dir, name string, logger *slog.Logger) error {
	topicID, start, _ := sink.ParseTopicPageName(name)

	f, err := os.Open(filepath.Join(dir, name)) //nolint:gosec // names come from the directory listing
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck // read-only handle

	records, err := extract.Posts(f, topicID)
	if err != nil {
		return err
	}

	out := filepath.Join(dir, sink.TopicRecordsName(topicID, start))
	if err := sink.WritePosts(out, records); err != nil {
		return err
	}
	logger.Info("parsed topic page", "file", name, "records", len(records))
	return nil
}

// parseElectionPage extracts vote records from one archived election page.
func parseElectionPage(dir, name string, logger *slog.Logger) error {
	electionID, page, _ := sink.ParseElectionPageName(name)

	f, err := os.Open(filepath.Join(dir, name)) //nolint:gosec // names come from the directory listing
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck // read-only handle

	records, err := extract.Votes(f)
	if err != nil {
		return err
	}

	out := filepath.Join(dir, sink.ElectionRecordsName(electionID, page))
	if err := sink.WriteVotes(out, records); err != nil {
		return err
	}
	logger.Info("parsed election page", "file", name, "records", len(records))
	return nil
}

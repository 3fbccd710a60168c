package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zvalenta/forumscan/internal/sink"
)

// defaultMergeSubdir receives the merged workbooks inside the input dir.
const defaultMergeSubdir = "merged"

// NewMergeCmd creates the merge command.
func NewMergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge <dir>",
		Short: "Merge per-page xlsx shards into one file per topic or election",
		Long: `Merge groups the per-page xlsx workbooks in a directory and writes one
combined workbook per group:

  topic_<id>-<start>_parsed.xlsx  ->  merged/topic_<id>.xlsx
  election_<id>_page_<n>.xlsx     ->  merged/election_<id>.xlsx

Rows keep their crawl order: topic shards are concatenated by start
offset, election shards by page number.

Examples:
  forumscan merge data/
  forumscan merge data/ --out combined/`,
		Args: cobra.ExactArgs(1),
		RunE: runMergeCmd,
	}

	cmd.Flags().String("out", "", "Output directory (default: <dir>/merged)")

	return cmd
}

// runMergeCmd executes the merge command.
func runMergeCmd(cmd *cobra.Command, args []string) error {
	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	inDir := args[0]
	outDir, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}
	if outDir == "" {
		outDir = filepath.Join(inDir, defaultMergeSubdir)
	}

	topics, err := sink.MergeTopics(inDir, outDir)
	if err != nil {
		return fmt.Errorf("failed to merge topic shards: %w", err)
	}
	for _, name := range topics {
		logger.Info("merged topic", "file", name)
	}

	elections, err := sink.MergeElections(inDir, outDir)
	if err != nil {
		return fmt.Errorf("failed to merge election shards: %w", err)
	}
	for _, name := range elections {
		logger.Info("merged election", "file", name)
	}

	if len(topics)+len(elections) == 0 {
		return fmt.Errorf("no xlsx shards found in %s", inDir)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "merged %d topic(s) and %d election(s) into %s\n",
		len(topics), len(elections), outDir)
	return nil
}

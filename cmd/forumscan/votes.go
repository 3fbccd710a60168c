package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/zvalenta/forumscan/internal/auth"
	"github.com/zvalenta/forumscan/internal/config"
	"github.com/zvalenta/forumscan/internal/crawl"
	"github.com/zvalenta/forumscan/internal/extract"
	"github.com/zvalenta/forumscan/internal/fetch"
	"github.com/zvalenta/forumscan/internal/input"
	"github.com/zvalenta/forumscan/internal/model"
	"github.com/zvalenta/forumscan/internal/sink"
)

// NewVotesCmd creates the votes command.
func NewVotesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "votes",
		Short: "Crawl Helios election voter rolls from a URL list",
		Long: `Votes enumerates the pages of each Helios election voter roll in the
given list, archives the raw pages, and extracts one xlsx workbook of
voter records per page.

The voter rolls are public; no login is performed. For each base URL the
crawler fetches ascending page numbers and stops at the first page that
is missing or too small to carry real rows.

Examples:
  forumscan votes -f links_helios.txt
  forumscan votes -f links_helios.txt --max-pages 50`,
		Args: cobra.NoArgs,
		RunE: runVotesCmd,
	}

	addCrawlFlags(cmd)
	cmd.Flags().Int("max-pages", config.DefaultMaxPages,
		"Maximum pages to enumerate per election roll")
	cmd.Flags().Int("data-threshold", config.DefaultDataThreshold,
		"Minimum page size in bytes to count as carrying voter rows")

	return cmd
}

// runVotesCmd executes the votes command.
func runVotesCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()

	return runVotes(ctx, cfg, logger)
}

// runVotes executes the election roll crawl.
func runVotes(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	startedAt := time.Now()

	urls, skippedLines, err := input.ReadLinks(cfg.LinksFile, false)
	if err != nil {
		return fmt.Errorf("failed to read links file: %w", err)
	}
	for _, s := range skippedLines {
		logger.Warn("skipping input line", "line", s.Number, "reason", s.Reason)
	}
	if len(urls) == 0 {
		return fmt.Errorf("no usable URLs in %s", cfg.LinksFile)
	}

	logger.Info("starting election roll crawl",
		"rolls", len(urls),
		"maxPages", cfg.MaxPages,
		"output", cfg.OutputDir,
	)

	session, err := auth.NewSession(auth.SessionOptions{
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.Timeout,
	})
	if err != nil {
		return fmt.Errorf("failed to create HTTP session: %w", err)
	}

	archive, err := sink.NewArchive(cfg.OutputDir)
	if err != nil {
		return err
	}

	fetcher := fetch.NewFetcher(session,
		fetch.WithMinViableLength(cfg.MinViableLength),
		fetch.WithLogger(logger),
	)
	controller := crawl.NewController(fetcher,
		crawl.WithDelay(cfg.Delay),
		crawl.WithMaxPages(cfg.MaxPages),
		crawl.WithDataThreshold(cfg.DataThreshold),
		crawl.WithLogger(logger),
		crawl.WithProgress(!cfg.Verbose),
	)

	handler := func(ctx context.Context, target model.CrawlTarget, res model.FetchResult) (string, int, error) {
		if !res.Usable() {
			logger.Info("end of roll",
				"election", target.Identifier,
				"page", target.StartOffset,
				"status", res.Status.String(),
			)
			return "", 0, nil
		}

		page, err := strconv.Atoi(target.StartOffset)
		if err != nil {
			return "", 0, fmt.Errorf("invalid page number %q: %w", target.StartOffset, err)
		}

		pageName := sink.ElectionPageName(target.Identifier, page)
		if err := archive.WritePage(pageName, res.RawMarkup); err != nil {
			return "", 0, err
		}

		records, err := extract.Votes(strings.NewReader(res.RawMarkup))
		if err != nil {
			logger.Error("extraction failed",
				"election", target.Identifier,
				"page", page,
				"error", err,
			)
			return pageName, 0, nil
		}

		recordsPath := filepath.Join(archive.Dir(), sink.ElectionRecordsName(target.Identifier, page))
		if err := sink.WriteVotes(recordsPath, records); err != nil {
			return "", 0, err
		}
		return pageName, len(records), nil
	}

	results, crawlErr := controller.CrawlElections(ctx, urls, handler)

	summary := buildSummary(model.KindElectionRoll.String(), startedAt, results, len(skippedLines))
	writeOutputs(cfg, summary, logger)

	if crawlErr != nil && !errors.Is(crawlErr, context.Canceled) {
		return crawlErr
	}
	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
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

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Crawl forum topic pages from a URL list",
		Long: `Crawl fetches every forum topic URL in the given list, in order,
archives the raw pages, and extracts one xlsx workbook of post records
per page.

The crawler logs in through the forum's SSO provider when credentials
are available (config file or flags). A failed login degrades to an
anonymous crawl instead of aborting: public topics still work, and
protected topics are classified as error pages and skipped.

Examples:
  # Crawl with credentials from .forumscan
  forumscan crawl -f links.txt

  # Crawl anonymously
  forumscan crawl -f links.txt --anonymous

  # Slow down and write elsewhere
  forumscan crawl -f links.txt -d 5s -o archive/

Configuration file (.forumscan) example:
  username: some.user
  password: "..."
  delay: 2s
  output: data`,
		Args: cobra.NoArgs,
		RunE: runCrawlCmd,
	}

	addCrawlFlags(cmd)
	cmd.Flags().StringP("username", "u", "", "SSO username (config file preferred)")
	cmd.Flags().StringP("password", "p", "", "SSO password (config file preferred)")
	cmd.Flags().BoolP("anonymous", "a", false, "Skip login even when credentials are configured")

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, _ []string) error {
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

	return runCrawl(ctx, cfg, logger)
}

// runCrawl executes the forum crawl.
func runCrawl(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	startedAt := time.Now()

	urls, skippedLines, err := input.ReadLinks(cfg.LinksFile, true)
	if err != nil {
		return fmt.Errorf("failed to read links file: %w", err)
	}
	for _, s := range skippedLines {
		logger.Warn("skipping input line", "line", s.Number, "reason", s.Reason)
	}
	if len(urls) == 0 {
		return fmt.Errorf("no usable forum URLs in %s", cfg.LinksFile)
	}

	logger.Info("starting forum crawl",
		"targets", len(urls),
		"skippedLines", len(skippedLines),
		"output", cfg.OutputDir,
		"delay", cfg.Delay,
	)

	session, err := newAuthenticatedSession(ctx, cfg, logger)
	if err != nil {
		return err
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
		crawl.WithLogger(logger),
		crawl.WithProgress(!cfg.Verbose),
	)

	handler := func(ctx context.Context, target model.CrawlTarget, res model.FetchResult) (string, int, error) {
		if !res.Usable() {
			logger.Warn("skipping page",
				"topic", target.Identifier,
				"start", target.StartOffset,
				"status", res.Status.String(),
			)
			return "", 0, nil
		}

		pageName := sink.TopicPageName(target.Identifier, target.StartOffset)
		if err := archive.WritePage(pageName, res.RawMarkup); err != nil {
			return "", 0, err
		}

		records, err := extract.Posts(strings.NewReader(res.RawMarkup), target.Identifier)
		if err != nil {
			// Broken markup on one page must not kill the run; the raw
			// page is archived for a later offline parse.
			logger.Error("extraction failed",
				"topic", target.Identifier,
				"start", target.StartOffset,
				"error", err,
			)
			return pageName, 0, nil
		}

		recordsPath := filepath.Join(archive.Dir(), sink.TopicRecordsName(target.Identifier, target.StartOffset))
		if err := sink.WritePosts(recordsPath, records); err != nil {
			return "", 0, err
		}
		return pageName, len(records), nil
	}

	results, crawlErr := controller.CrawlList(ctx, urls, handler)

	summary := buildSummary(model.KindForum.String(), startedAt, results, len(skippedLines))
	writeOutputs(cfg, summary, logger)

	if crawlErr != nil && !errors.Is(crawlErr, context.Canceled) {
		return crawlErr
	}
	return nil
}

// newAuthenticatedSession builds the HTTP session and performs the SSO
// login when credentials are available. Login failure is reported and
// degraded to anonymous mode rather than propagated.
func newAuthenticatedSession(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*auth.Session, error) {
	session, err := auth.NewSession(auth.SessionOptions{
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP session: %w", err)
	}

	if cfg.Anonymous || cfg.Username == "" || cfg.Password == "" {
		logger.Info("crawling anonymously; protected topics will be skipped")
		return session, nil
	}

	authenticator := auth.NewAuthenticator(session, cfg.LoginURL, cfg.VerifyURL, cfg.BaseURL,
		auth.WithLogger(logger),
	)
	if err := authenticator.Login(ctx, cfg.Username, cfg.Password); err != nil {
		logger.Warn("login failed, continuing anonymously", "error", err)
		return session, nil
	}

	logger.Info("login verified", "username", cfg.Username)
	return session, nil
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/zvalenta/forumscan/internal/config"
	"github.com/zvalenta/forumscan/internal/database"
	"github.com/zvalenta/forumscan/internal/log"
	"github.com/zvalenta/forumscan/internal/model"
	"github.com/zvalenta/forumscan/internal/report"
)

// summaryFileName is the markdown run summary written into the output
// directory at the end of each crawl.
const summaryFileName = "crawl_report.md"

// addCrawlFlags registers the flags shared by the crawl and votes
// commands.
func addCrawlFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("file", "f", "",
		"Newline-delimited list of target URLs (required)")
	cmd.Flags().StringP("output", "o", config.DefaultOutputDir,
		"Directory for archived pages, xlsx workbooks, and the summary")
	cmd.Flags().DurationP("delay", "d", config.DefaultDelay,
		"Pause between consecutive requests")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Per-request timeout")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .forumscan in current or home directory)")
}

// buildConfig creates a Config from cobra command flags, then merges the
// optional YAML config file on top of the unset fields.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.LinksFile, err = cmd.Flags().GetString("file")
	if err != nil {
		return nil, err
	}
	cfg.OutputDir, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}
	cfg.Delay, err = cmd.Flags().GetDuration("delay")
	if err != nil {
		return nil, err
	}
	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg.Verbose = getVerboseFlag(cmd)

	// Credential flags exist only on the crawl command; the votes
	// command never authenticates.
	if cmd.Flags().Lookup("username") != nil {
		cfg.Username, err = cmd.Flags().GetString("username")
		if err != nil {
			return nil, err
		}
		cfg.Password, err = cmd.Flags().GetString("password")
		if err != nil {
			return nil, err
		}
		cfg.Anonymous, err = cmd.Flags().GetBool("anonymous")
		if err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Lookup("max-pages") != nil {
		cfg.MaxPages, err = cmd.Flags().GetInt("max-pages")
		if err != nil {
			return nil, err
		}
		cfg.DataThreshold, err = cmd.Flags().GetInt("data-threshold")
		if err != nil {
			return nil, err
		}
	}

	// If the user explicitly specified a config file path, error if it
	// is not found. Otherwise silently run on defaults.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		if err := cf.Apply(cfg); err != nil {
			return nil, err
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates the sanitizing structured logger.
func setupLogger(verbose bool) *slog.Logger {
	return log.NewLogger(os.Stderr, verbose)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
// Cancellation stops the controller before its next fetch; pages already
// flushed to disk survive the interrupt.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}

// buildSummary folds controller results into the run summary.
// skippedInput counts input lines rejected before any fetch happened.
func buildSummary(mode string, startedAt time.Time, pages []model.PageResult, skippedInput int) *model.RunSummary {
	summary := &model.RunSummary{
		Mode:       mode,
		StartedAt:  startedAt,
		FinishedAt: time.Now(),
		Pages:      pages,
		Skipped:    skippedInput,
	}
	for _, p := range pages {
		if p.Fetch.Usable() {
			summary.Succeeded++
		} else {
			summary.Skipped++
		}
	}
	return summary
}

// writeOutputs emits the run summary: a short text form on stdout, a
// markdown document in the output directory, and a run-history row in
// the database. Summary persistence never fails the run; the crawled
// data is already on disk. It runs on a fresh context so an interrupted
// run still gets its summary recorded.
func writeOutputs(cfg *config.Config, summary *model.RunSummary, logger *slog.Logger) {
	writers := []report.Writer{
		report.NewSimpleWriter(os.Stdout, report.WithVerbose(cfg.Verbose)),
	}

	mdPath := filepath.Join(cfg.OutputDir, summaryFileName)
	mdFile, err := os.Create(mdPath) //nolint:gosec // path is under the user-chosen output dir
	if err != nil {
		logger.Error("failed to create summary file", "path", mdPath, "error", err)
	} else {
		writers = append(writers, report.NewMarkdownWriter(mdFile))
		defer func() {
			if err := mdFile.Close(); err != nil {
				logger.Error("failed to close summary file", "path", mdPath, "error", err)
			}
		}()
	}

	if _, err := report.NewMultiWriter(writers...).Write(summary); err != nil {
		logger.Error("failed to write run summary", "error", err)
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		logger.Error("failed to open run database", "dir", cfg.DBDir, "error", err)
		return
	}
	defer db.Close() //nolint:errcheck // nothing actionable on close failure

	if _, err := db.SaveRun(context.Background(), summary); err != nil {
		logger.Error("failed to save run history", "error", err)
		return
	}
	logger.Info("run recorded", "db", db.Path())
}

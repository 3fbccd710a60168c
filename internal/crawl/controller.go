package crawl

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/zvalenta/forumscan/internal/fetch"
	"github.com/zvalenta/forumscan/internal/model"
)

// Default controller settings. The pagination bound and the data
// threshold come from the production crawls this tool grew out of; they
// are configuration, not derived values.
const (
	// DefaultDelay is the mandatory pause between consecutive fetches.
	DefaultDelay = 2 * time.Second

	// DefaultMaxPages bounds page enumeration per election roll.
	DefaultMaxPages = 25

	// DefaultDataThreshold is the minimum content length for an
	// election page to count as carrying real rows. It is larger than
	// the fetcher's viability threshold on purpose: past the last page
	// the site still serves a small, perfectly valid HTML shell.
	DefaultDataThreshold = 500
)

// PageHandler consumes one fetched page. It is invoked for every target
// in order, usable or not, so sinks can archive pages and record skips as
// they happen; a handler error aborts the run (it means the sink itself
// is broken, not the page).
//
// For usable pages the handler returns the archived file name and the
// number of records it extracted; both feed the run summary.
type PageHandler func(ctx context.Context, target model.CrawlTarget, res model.FetchResult) (fileName string, records int, err error)

// Controller runs the fetch loop. It is strictly sequential: one fetch
// in flight, a fixed delay between fetches, targets in input order.
type Controller struct {
	fetcher *fetch.Fetcher

	delay         time.Duration
	maxPages      int
	dataThreshold int

	showProgress bool
	logger       *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithDelay overrides the inter-request delay.
func WithDelay(d time.Duration) Option {
	return func(c *Controller) { c.delay = d }
}

// WithMaxPages overrides the per-election pagination bound.
func WithMaxPages(n int) Option {
	return func(c *Controller) { c.maxPages = n }
}

// WithDataThreshold overrides the pagination-end content-length bound.
func WithDataThreshold(n int) Option {
	return func(c *Controller) { c.dataThreshold = n }
}

// WithProgress enables a terminal progress bar over the target list.
func WithProgress(enabled bool) Option {
	return func(c *Controller) { c.showProgress = enabled }
}

// WithLogger sets the logger for per-target diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// NewController creates a Controller around the given fetcher.
func NewController(fetcher *fetch.Fetcher, opts ...Option) *Controller {
	c := &Controller{
		fetcher:       fetcher,
		delay:         DefaultDelay,
		maxPages:      DefaultMaxPages,
		dataThreshold: DefaultDataThreshold,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CrawlList runs the explicit-list strategy: one fetch per forum URL, in
// input order. URLs whose topic id cannot be parsed are logged and
// skipped. Returns the ordered page results; on cancellation the results
// collected so far are returned together with the context error.
func (c *Controller) CrawlList(ctx context.Context, urls []string, handle PageHandler) ([]model.PageResult, error) {
	bar := c.newProgressBar(len(urls), "crawling topics")
	results := make([]model.PageResult, 0, len(urls))

	for i, rawURL := range urls {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		target, err := ForumTarget(rawURL)
		if err != nil {
			c.logger.Warn("skipping unparseable forum URL", "url", rawURL, "error", err)
			c.barAdd(bar)
			continue
		}

		c.logger.Info("fetching topic",
			"topic", target.Identifier,
			"start", target.StartOffset,
			"progress", strconv.Itoa(i+1)+"/"+strconv.Itoa(len(urls)),
		)

		result, err := c.fetchAndHandle(ctx, target, handle)
		if err != nil {
			return results, err
		}
		results = append(results, result)
		c.barAdd(bar)

		if err := c.wait(ctx); err != nil {
			return results, err
		}
	}

	return results, nil
}

// CrawlElections runs the enumerated-pagination strategy: for each base
// URL, fetch synthetic pages 1..maxPages and stop the inner loop at the
// first page that is not usable or falls below the data threshold. A
// short page past the end of the roll is the expected terminator, not a
// transient error, so the terminating page is never retried.
func (c *Controller) CrawlElections(ctx context.Context, baseURLs []string, handle PageHandler) ([]model.PageResult, error) {
	bar := c.newProgressBar(len(baseURLs), "crawling election rolls")
	var results []model.PageResult

	for _, baseURL := range baseURLs {
		electionID, err := ParseElectionID(baseURL)
		if err != nil {
			c.logger.Warn("skipping unrecognized election URL", "url", baseURL, "error", err)
			c.barAdd(bar)
			continue
		}

		for page := 1; page <= c.maxPages; page++ {
			if err := ctx.Err(); err != nil {
				return results, err
			}

			pageURL, err := PageURL(baseURL, page)
			if err != nil {
				c.logger.Warn("skipping election roll", "url", baseURL, "error", err)
				break
			}

			target := model.CrawlTarget{
				Kind:        model.KindElectionRoll,
				Identifier:  electionID,
				StartOffset: strconv.Itoa(page),
				URL:         pageURL,
			}

			c.logger.Info("fetching election page", "election", electionID, "page", page)

			result, err := c.fetchAndHandle(ctx, target, handle)
			if err != nil {
				return results, err
			}

			results = append(results, result)

			// Pagination-end heuristic: a missing or thin page means we
			// are past the last real page of this roll.
			terminated := !result.Fetch.Usable() || result.Fetch.ContentLength < c.dataThreshold
			if terminated {
				c.logger.Info("pagination terminated",
					"election", electionID,
					"page", page,
					"status", result.Fetch.Status.String(),
					"contentLength", result.Fetch.ContentLength,
				)
			}

			// The delay follows every fetch, including the terminating
			// one, so consecutive rolls never hit the site back-to-back.
			if err := c.wait(ctx); err != nil {
				return results, err
			}
			if terminated {
				break
			}
		}
		c.barAdd(bar)
	}

	return results, nil
}

// fetchAndHandle performs one fetch and hands the outcome to the page
// handler. Thin usable election pages are still handed over so the sink
// can account for them; the handler sees the same classification the
// controller acts on.
func (c *Controller) fetchAndHandle(ctx context.Context, target model.CrawlTarget, handle PageHandler) (model.PageResult, error) {
	res := c.fetcher.Fetch(ctx, target.URL)

	fileName, records, err := handle(ctx, target, res)
	if err != nil {
		return model.PageResult{}, err
	}

	return model.PageResult{
		Target:   target,
		Fetch:    res,
		FileName: fileName,
		Records:  records,
	}, nil
}

// wait blocks for the inter-request delay or until the context is
// cancelled, whichever comes first. This is what guarantees an interrupt
// stops the controller before its next scheduled fetch.
func (c *Controller) wait(ctx context.Context) error {
	if c.delay <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(c.delay):
		return nil
	}
}

// newProgressBar creates the terminal progress bar, or nil when disabled.
func (c *Controller) newProgressBar(total int, description string) *progressbar.ProgressBar {
	if !c.showProgress {
		return nil
	}
	return progressbar.Default(int64(total), description)
}

// barAdd advances the progress bar if one is active.
func (c *Controller) barAdd(bar *progressbar.ProgressBar) {
	if bar != nil {
		_ = bar.Add(1)
	}
}

package fetch

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/zvalenta/forumscan/internal/auth"
	"github.com/zvalenta/forumscan/internal/markers"
	"github.com/zvalenta/forumscan/internal/model"
)

// DefaultMinViableLength is the minimum trimmed body length for a
// response that could contain real content.
const DefaultMinViableLength = 100

// defaultErrorMarkers matches the forum's failure pages in both
// supported locales: missing topics, missing pages, and topics that
// require a login the session does not have.
func defaultErrorMarkers() markers.Set {
	s := markers.Set{}
	s.Add("en",
		"this topic does not exist",
		"topic not found",
		"page not found",
		"requires you to be registered and logged in",
	)
	s.Add("cs",
		"toto téma neexistuje",
		"téma nenalezeno",
		"stránka nenalezena",
		"požaduje, abyste byli registrováni a přihlášeni",
	)
	return s
}

// Fetcher performs validated GETs using the run's session.
//
// Design decision: Fetch never returns an error. Every outcome,
// including transport failures, becomes a classified FetchResult so the
// controller's skip/stop decisions are plain value checks and a single
// dead page cannot abort a multi-hour crawl.
type Fetcher struct {
	session *auth.Session

	// minViable is the empty-page threshold in bytes (trimmed).
	minViable int

	// errorMarkers classify failure pages by substring scan.
	errorMarkers markers.Set

	logger *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithMinViableLength overrides the empty-page threshold.
func WithMinViableLength(n int) Option {
	return func(f *Fetcher) { f.minViable = n }
}

// WithErrorMarkers replaces the error-page marker set.
func WithErrorMarkers(s markers.Set) Option {
	return func(f *Fetcher) { f.errorMarkers = s }
}

// WithLogger sets the logger for per-fetch diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) { f.logger = logger }
}

// NewFetcher creates a Fetcher bound to the given session. The session's
// cookie jar carries authentication state into every request.
func NewFetcher(session *auth.Session, opts ...Option) *Fetcher {
	f := &Fetcher{
		session:      session,
		minViable:    DefaultMinViableLength,
		errorMarkers: defaultErrorMarkers(),
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch GETs the URL and classifies the response.
func (f *Fetcher) Fetch(ctx context.Context, url string) model.FetchResult {
	res, err := f.session.Client.R().SetContext(ctx).Get(url)
	fetchedAt := time.Now()
	if err != nil {
		f.logger.Warn("fetch failed", "url", url, "error", err)
		return model.FetchResult{
			Status:    model.StatusTransportFailure,
			FetchedAt: fetchedAt,
		}
	}

	body := string(res.Body())
	result := model.FetchResult{
		HTTPStatus:    res.StatusCode(),
		FetchedAt:     fetchedAt,
		ContentLength: len(body),
	}

	switch {
	case res.StatusCode() != http.StatusOK:
		f.logger.Debug("non-OK response", "url", url, "status", res.StatusCode())
		result.Status = model.StatusErrorPage
	case len(strings.TrimSpace(body)) < f.minViable:
		result.Status = model.StatusEmpty
	case f.errorMarkers.Match(body):
		f.logger.Debug("error-page marker matched", "url", url)
		result.Status = model.StatusErrorPage
	default:
		result.Status = model.StatusUsable
		result.RawMarkup = body
	}

	return result
}

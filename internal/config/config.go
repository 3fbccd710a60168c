package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values. The thresholds and the pagination bound
// mirror the long-running production crawls this tool was built for; they
// have no derivation beyond having worked, so they are exposed as
// configuration rather than inferred.
const (
	// DefaultBaseURL is the forum root.
	DefaultBaseURL = "https://forum.pirati.cz"

	// DefaultLoginURL is the forum's login entry point, which redirects
	// to the SSO identity provider.
	DefaultLoginURL = DefaultBaseURL + "/ucp.php?mode=login&redirect=index.php"

	// DefaultVerifyURL is a known-protected topic used to verify that a
	// login actually produced an authenticated session. Anonymous
	// sessions see a registration-required page here.
	DefaultVerifyURL = DefaultBaseURL + "/viewtopic.php?t=47593"

	// DefaultUserAgent is sent on every request. A browser-like agent
	// keeps the forum from serving the crawler a degraded page.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	// DefaultDelay is the mandatory pause between consecutive fetches.
	// This is crawl etiquette toward a volunteer-run forum, enforced as
	// a hard sequencing rule rather than best-effort pacing.
	DefaultDelay = 2 * time.Second

	// DefaultMinViableLength is the minimum body length (after trimming
	// whitespace) for a response to possibly contain real content.
	// Anything shorter is classified empty without further inspection.
	DefaultMinViableLength = 100

	// DefaultDataThreshold is the minimum body length for an election
	// roll page to count as carrying real voter rows. It is deliberately
	// larger than DefaultMinViableLength: a page can be a valid, usable
	// HTML document and still be the empty shell past the last page of
	// results. Crossing below it terminates the pagination sequence.
	DefaultDataThreshold = 500

	// DefaultMaxPages bounds the synthetic page-number enumeration for a
	// single election roll.
	DefaultMaxPages = 25

	// DefaultOutputDir is where raw pages, extracted spreadsheets, and
	// the run summary are written.
	DefaultOutputDir = "data"

	// DefaultTimeout is the per-request timeout.
	DefaultTimeout = 30 * time.Second

	// AppName is used for XDG directory paths.
	AppName = "forumscan"
)

// Config holds all options for a forumscan run. It is populated from CLI
// flags and the optional YAML config file and passed explicitly into the
// components that need it; there is no ambient global state.
type Config struct {
	// BaseURL is the forum root URL.
	BaseURL string

	// LoginURL is the SSO login entry point.
	LoginURL string

	// VerifyURL is the protected resource used to verify the login.
	VerifyURL string

	// UserAgent is sent on every request.
	UserAgent string

	// Username and Password authenticate against the SSO provider.
	// Empty credentials (or Anonymous) skip the login handshake; the
	// crawl then proceeds in anonymous mode and protected topics will
	// classify as error pages.
	Username string
	Password string

	// Anonymous skips the login handshake even when credentials are set.
	Anonymous bool

	// LinksFile is the newline-delimited list of target URLs.
	LinksFile string

	// OutputDir receives raw pages, spreadsheets, and the summary.
	OutputDir string

	// Delay is the mandatory pause between consecutive fetches.
	Delay time.Duration

	// Timeout is the per-request timeout.
	Timeout time.Duration

	// MinViableLength is the fetcher's empty-page threshold in bytes.
	MinViableLength int

	// DataThreshold is the pagination-end threshold in bytes, applied
	// only by the enumerated-pagination strategy.
	DataThreshold int

	// MaxPages bounds page-number enumeration per election roll.
	MaxPages int

	// Verbose enables debug-level logging.
	Verbose bool

	// ConfigFilePath is the explicit YAML config file path, if any.
	ConfigFilePath string

	// DBDir is the directory of the run-history database.
	DBDir string
}

// NewConfig returns a Config populated with the package defaults.
func NewConfig() *Config {
	return &Config{
		BaseURL:         DefaultBaseURL,
		LoginURL:        DefaultLoginURL,
		VerifyURL:       DefaultVerifyURL,
		UserAgent:       DefaultUserAgent,
		OutputDir:       DefaultOutputDir,
		Delay:           DefaultDelay,
		Timeout:         DefaultTimeout,
		MinViableLength: DefaultMinViableLength,
		DataThreshold:   DefaultDataThreshold,
		MaxPages:        DefaultMaxPages,
		DBDir:           XDGDataDir(),
	}
}

// Validate checks the configuration for values that would break the run.
func (c *Config) Validate() error {
	if c.LinksFile == "" {
		return ErrNoLinksFile
	}
	if c.Delay < 0 {
		return ErrInvalidDelay
	}
	if c.MaxPages <= 0 {
		return ErrInvalidMaxPages
	}
	if c.MinViableLength < 0 || c.DataThreshold < 0 {
		return ErrInvalidThreshold
	}
	return nil
}

// XDGDataDir returns the per-user data directory for the run-history
// database, following the XDG base directory specification.
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

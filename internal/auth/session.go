package auth

import (
	"net/http/cookiejar"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/net/publicsuffix"
)

// Session holds the cookie and header state shared by every request of a
// run. It is created once, mutated implicitly by each response's
// Set-Cookie headers, and discarded at process exit; it is never
// persisted.
//
// The crawl loop is strictly sequential, so the cookie jar needs no
// locking here. If fetches are ever parallelized, the session becomes a
// shared resource and must be synchronized.
type Session struct {
	// Client is the HTTP client carrying the cookie jar and the
	// browser-like default headers.
	Client *resty.Client

	// Authenticated reports whether the login handshake was verified.
	// A degraded (anonymous) session still fetches public pages.
	Authenticated bool
}

// SessionOptions configures a new session.
type SessionOptions struct {
	// UserAgent is sent on every request.
	UserAgent string

	// Timeout is the per-request timeout.
	Timeout time.Duration
}

// NewSession creates an anonymous session with a fresh cookie jar and
// standard browser-like headers. The same headers the forum sees from a
// real browser keep it from serving the crawler degraded markup.
func NewSession(opts SessionOptions) (*Session, error) {
	// The session spans two domains (the forum and its SSO provider);
	// the public suffix list keeps their cookies properly scoped.
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetCookieJar(jar)
	client.SetTimeout(opts.Timeout)
	client.SetHeaders(map[string]string{
		"User-Agent":                opts.UserAgent,
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
		"Accept-Language":           "en-US,en;q=0.9,cs;q=0.8",
		"Connection":                "keep-alive",
		"Upgrade-Insecure-Requests": "1",
	})

	return &Session{Client: client}, nil
}

package auth

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"github.com/zvalenta/forumscan/internal/markers"
)

// DefaultFormID is the id attribute of the identity provider's login
// form. The provider renders it on the page the forum redirects to.
const DefaultFormID = "kc-form-login"

// Login handshake errors. All of them are recoverable: the caller keeps
// the degraded anonymous session and continues the crawl.
var (
	// ErrLoginFormNotFound is returned when the login page does not
	// contain the identity provider's form. Usually means the provider
	// changed its markup or the entry URL is wrong.
	ErrLoginFormNotFound = errors.New("login form not found on login page")

	// ErrLoginRejected is returned when the protected resource still
	// shows the registration-required page after submitting credentials.
	ErrLoginRejected = errors.New("login rejected: protected content still requires registration")

	// ErrLoginUnverified is returned when neither the denied nor the
	// logged-in marker was found after both verification attempts.
	ErrLoginUnverified = errors.New("login could not be verified")
)

// Authenticator drives the SSO login handshake.
//
// States, in order, with no backward transitions:
// unauthenticated -> form loaded -> credentials submitted -> verified/failed.
// All resulting state lives in the session's cookie jar; the
// authenticator itself stays stateless across calls.
type Authenticator struct {
	session *Session

	// loginURL is the forum's login entry point; it redirects to the
	// identity provider.
	loginURL string

	// verifyURL is a known-protected resource used to check whether the
	// handshake actually produced an authenticated session.
	verifyURL string

	// baseURL is the site root, used as the verification fallback when
	// the protected resource shows neither marker.
	baseURL string

	// formID locates the provider's login form on the login page.
	formID string

	// denied matches the "authentication required" page; loggedIn
	// matches the presence of a logout control. Both are locale-keyed.
	denied   markers.Set
	loggedIn markers.Set

	logger *slog.Logger
}

// Option configures an Authenticator.
type Option func(*Authenticator)

// WithFormID overrides the login form id to search for.
func WithFormID(id string) Option {
	return func(a *Authenticator) { a.formID = id }
}

// WithDeniedMarkers replaces the registration-required marker set.
func WithDeniedMarkers(s markers.Set) Option {
	return func(a *Authenticator) { a.denied = s }
}

// WithLoggedInMarkers replaces the logout-control marker set.
func WithLoggedInMarkers(s markers.Set) Option {
	return func(a *Authenticator) { a.loggedIn = s }
}

// WithLogger sets the logger used for handshake progress.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Authenticator) { a.logger = logger }
}

// defaultDeniedMarkers matches the forum's registration-required page in
// both supported locales.
func defaultDeniedMarkers() markers.Set {
	s := markers.Set{}
	s.Add("en", "requires you to be registered and logged in")
	s.Add("cs", "požaduje, abyste byli registrováni a přihlášeni")
	return s
}

// defaultLoggedInMarkers matches the logout control shown to
// authenticated users in both supported locales.
func defaultLoggedInMarkers() markers.Set {
	s := markers.Set{}
	s.Add("en", "Logout")
	s.Add("cs", "Odhlásit se")
	return s
}

// NewAuthenticator creates an Authenticator bound to the given session.
func NewAuthenticator(session *Session, loginURL, verifyURL, baseURL string, opts ...Option) *Authenticator {
	a := &Authenticator{
		session:   session,
		loginURL:  loginURL,
		verifyURL: verifyURL,
		baseURL:   baseURL,
		formID:    DefaultFormID,
		denied:    defaultDeniedMarkers(),
		loggedIn:  defaultLoggedInMarkers(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Login performs the full handshake. On success the session is marked
// authenticated. On failure the session stays anonymous and the error
// describes the stage that broke; callers log it and continue.
func (a *Authenticator) Login(ctx context.Context, username, password string) error {
	a.logger.Info("attempting login", "user", username, "url", a.loginURL)

	// State 1: load the login page. The forum redirects to the identity
	// provider; resty follows and the final URL is the provider's.
	res, err := a.session.Client.R().SetContext(ctx).Get(a.loginURL)
	if err != nil {
		return fmt.Errorf("failed to load login page: %w", err)
	}

	// State 2: locate the provider's form and collect its hidden fields.
	actionURL, fields, err := a.parseLoginForm(res)
	if err != nil {
		return err
	}
	fields["username"] = username
	fields["password"] = password

	a.logger.Debug("submitting credentials", "action", actionURL)

	// State 3: submit credentials, following redirects back to the forum.
	if _, err := a.session.Client.R().
		SetContext(ctx).
		SetFormData(fields).
		Post(actionURL); err != nil {
		return fmt.Errorf("failed to submit credentials: %w", err)
	}

	// State 4: verify against a known-protected resource.
	if err := a.verify(ctx); err != nil {
		return err
	}

	a.session.Authenticated = true
	a.logger.Info("login verified", "user", username)
	return nil
}

// parseLoginForm finds the provider's form, extracts the hidden fields
// verbatim, and resolves the action URL against the response's final URL.
// The hidden fields bind the submission to the provider's CSRF/session
// state and must be resubmitted unchanged.
func (a *Authenticator) parseLoginForm(res *resty.Response) (string, map[string]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return "", nil, fmt.Errorf("failed to parse login page: %w", err)
	}

	form := doc.Find("form#" + a.formID).First()
	if form.Length() == 0 {
		return "", nil, ErrLoginFormNotFound
	}

	fields := make(map[string]string)
	form.Find(`input[type="hidden"]`).Each(func(_ int, input *goquery.Selection) {
		name, ok := input.Attr("name")
		if !ok || name == "" {
			return
		}
		fields[name] = input.AttrOr("value", "")
	})

	action := form.AttrOr("action", "")
	actionRef, err := url.Parse(action)
	if err != nil {
		return "", nil, fmt.Errorf("invalid form action %q: %w", action, err)
	}

	// Resolve against the final URL after redirects, not the entry URL:
	// the provider's form action is usually relative to its own host.
	finalURL := res.RawResponse.Request.URL
	return finalURL.ResolveReference(actionRef).String(), fields, nil
}

// verify classifies the post-login state by fetching a protected page.
// When neither marker is present there (some forum skins hide the logout
// control on topic pages), it retries against the site root before
// declaring the login failed.
func (a *Authenticator) verify(ctx context.Context) error {
	res, err := a.session.Client.R().SetContext(ctx).Get(a.verifyURL)
	if err != nil {
		return fmt.Errorf("failed to fetch verification page: %w", err)
	}

	body := string(res.Body())
	switch {
	case a.denied.Match(body):
		return ErrLoginRejected
	case a.loggedIn.Match(body):
		return nil
	}

	res, err = a.session.Client.R().SetContext(ctx).Get(a.baseURL)
	if err != nil {
		return fmt.Errorf("failed to fetch site root for verification: %w", err)
	}
	if a.loggedIn.Match(string(res.Body())) {
		a.logger.Debug("login verified on site root")
		return nil
	}

	return ErrLoginUnverified
}

package config

import "errors"

// Configuration validation errors returned by Config.Validate().
// Package-level sentinels allow errors.Is() checks while keeping
// human-readable messages.
var (
	// ErrNoLinksFile is returned when no input URL list was specified.
	ErrNoLinksFile = errors.New("no links file specified: use --file to provide a URL list")

	// ErrInvalidDelay is returned when the inter-request delay is
	// negative. Use 0 to disable pacing (not recommended against the
	// live forum).
	ErrInvalidDelay = errors.New("invalid delay: must be non-negative")

	// ErrInvalidMaxPages is returned when the pagination bound is not
	// positive. Zero would silently fetch nothing per election roll.
	ErrInvalidMaxPages = errors.New("invalid max pages: must be positive")

	// ErrInvalidThreshold is returned when a content-length threshold
	// is negative.
	ErrInvalidThreshold = errors.New("invalid content-length threshold: must be non-negative")

	// ErrConfigNotFound is returned when an explicitly requested
	// configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
)

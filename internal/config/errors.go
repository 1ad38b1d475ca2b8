package config

import "errors"

// Configuration validation errors returned by Config.Validate.
//
// Package-level sentinels let callers use errors.Is while keeping
// human-readable messages for the CLI diagnostic line.
var (
	// ErrNoSite is returned when no site URL was provided for a fresh crawl.
	ErrNoSite = errors.New("no site URL provided (use --site, or --resume to continue an interrupted session)")

	// ErrInvalidSite is returned when the site URL is not an absolute http(s) URL.
	ErrInvalidSite = errors.New("site URL must be an absolute http or https URL")

	// ErrInvalidConcurrency is returned when concurrency is zero or negative.
	ErrInvalidConcurrency = errors.New("concurrency must be positive")

	// ErrInvalidTimeout is returned when the request timeout is zero or negative.
	ErrInvalidTimeout = errors.New("timeout must be positive")

	// ErrInvalidCrawlDelay is returned when the crawl delay is negative.
	ErrInvalidCrawlDelay = errors.New("crawl delay must not be negative")

	// ErrInvalidMaxPages is returned when the page cap is negative.
	ErrInvalidMaxPages = errors.New("max pages must not be negative")

	// ErrInvalidMaxBodySize is returned when the body size limit is negative.
	ErrInvalidMaxBodySize = errors.New("max body size must not be negative")
)

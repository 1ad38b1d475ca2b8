package config

import (
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values. These are deliberately conservative:
// a polite crawler that still finishes a mid-sized site in minutes.
const (
	// DefaultConcurrency is the number of in-flight fetches. Most
	// sites tolerate a handful of concurrent requests without strain.
	DefaultConcurrency = 5

	// DefaultTimeout bounds each HTTP request. 30 seconds covers slow
	// origin servers without letting a dead host stall a worker for long.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent identifies seolens in HTTP requests so site
	// operators can recognize crawler traffic in their logs.
	DefaultUserAgent = "seolens/1.0 (+https://github.com/seolens/seolens)"

	// DefaultMaxPages caps pages per session to prevent runaway crawls
	// on calendar pages and other infinitely-generating URL spaces.
	// Override with --max-pages.
	DefaultMaxPages = 10000

	// DefaultMaxBodySize limits response bodies to 5MB. Larger bodies
	// are truncated; HTML pages of SEO interest are far smaller.
	DefaultMaxBodySize = 5 * 1024 * 1024

	// AppName is used for XDG directory paths.
	AppName = "seolens"
)

// Config holds all options for a crawl run.
//
// Design decision: a single flat struct instead of nested sub-configs.
// The option count is manageable and flat access keeps the call sites
// simple; revisit if the surface grows substantially.
type Config struct {
	// SiteURL is the root URL of the site to crawl.
	// Required for a fresh crawl, ignored on resume (the site is
	// recovered from the interrupted session).
	SiteURL string

	// Label is an optional human-readable session name.
	Label string

	// Resume continues the most recent interrupted session instead of
	// starting a fresh crawl.
	Resume bool

	// Concurrency is the maximum number of in-flight fetches.
	Concurrency int

	// Timeout bounds each individual HTTP request.
	Timeout time.Duration

	// UserAgent is sent with every request and matched against
	// robots.txt groups.
	UserAgent string

	// CrawlDelay is a fixed pause each worker takes between units of
	// work. Zero disables pacing.
	CrawlDelay time.Duration

	// RespectRobotsDelay enables honoring the robots.txt Crawl-delay
	// directive. When the directive is present it overrides CrawlDelay.
	// Off by default: many robots.txt files carry delays of minutes
	// that make a full crawl impractical, so honoring it is opt-in.
	RespectRobotsDelay bool

	// MaxPages caps the number of URLs dispatched in one session.
	// Zero means DefaultMaxPages.
	MaxPages int

	// MaxBodySize is the maximum response body size in bytes to read.
	MaxBodySize int64

	// IgnorePatterns are URL path globs never enqueued (e.g. "/cart/*",
	// "*.pdf"). Matched before a URL enters the frontier.
	IgnorePatterns []string

	// DBDir is the directory holding the SQLite database.
	// Defaults to the XDG data directory.
	DBDir string

	// ConfigFilePath is an explicit .seolens config file path.
	// Empty means search the current directory, then home.
	ConfigFilePath string

	// Verbose enables debug-level logging.
	Verbose bool
}

// NewConfig returns a Config populated with defaults. Many defaults
// are non-zero, so relying on zero values would be error-prone.
func NewConfig() *Config {
	return &Config{
		Concurrency: DefaultConcurrency,
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,
		MaxPages:    DefaultMaxPages,
		MaxBodySize: DefaultMaxBodySize,
		DBDir:       XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for seolens.
// On Linux: ~/.local/share/seolens
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for seolens.
// On Linux: ~/.config/seolens
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration and returns a sentinel error
// describing the first problem found. Called once after flag parsing,
// before the store is opened, so startup failures surface early with
// a clear message.
func (c *Config) Validate() error {
	if !c.Resume {
		if c.SiteURL == "" {
			return ErrNoSite
		}
		u, err := url.Parse(c.SiteURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return ErrInvalidSite
		}
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.CrawlDelay < 0 {
		return ErrInvalidCrawlDelay
	}

	if c.MaxPages < 0 {
		return ErrInvalidMaxPages
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	return nil
}

package crawler

import (
	"context"
	"time"

	"github.com/seolens/seolens/internal/analyzer"
	"github.com/seolens/seolens/internal/database"
	"github.com/seolens/seolens/internal/fetch"
	"github.com/seolens/seolens/internal/model"
)

// Policy is the resolved robots.txt policy for one site.
type Policy interface {
	// IsAllowed reports whether the URL may be fetched.
	IsAllowed(rawURL string) bool

	// CrawlDelay returns the robots Crawl-delay directive and whether
	// one was present.
	CrawlDelay() (time.Duration, bool)

	// SitemapURLs returns sitemap URLs advertised in robots.txt.
	SitemapURLs() []string
}

// PolicySource resolves the robots policy for a site. Lookup never
// fails in practice: implementations degrade to an allow-all policy.
type PolicySource interface {
	Lookup(ctx context.Context, siteRoot string) (Policy, error)
}

// SeedProvider resolves sitemap-derived seed URLs for a site.
type SeedProvider interface {
	// URLs returns deduplicated page URLs, empty on total failure.
	URLs(ctx context.Context, siteRoot string, hints []string) []string
}

// Fetcher retrieves a single URL without following redirects.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) *fetch.Result
}

// AnalyzeFunc extracts SEO signals from a fetched HTML body. The
// default is analyzer.Analyze.
type AnalyzeFunc func(pageURL string, body []byte, contentType, xRobotsTag string) (*analyzer.Analysis, error)

// Store is the persistence surface the crawler requires. The real
// implementation is database.Store; tests substitute fakes.
type Store interface {
	CreateSession(ctx context.Context, rootURL, label string) (*model.Session, error)
	LatestInterruptedSession(ctx context.Context) (*model.Session, error)
	MarkSessionRunning(ctx context.Context, id int64) error
	MarkSessionInterrupted(ctx context.Context, id int64) error
	CompleteSession(ctx context.Context, id int64) error

	InsertPendingPage(ctx context.Context, sessionID int64, url string, depth int, inSitemap bool) error
	MarkPageSkipped(ctx context.Context, sessionID int64, url, reason string) error
	MarkPageError(ctx context.Context, sessionID int64, url string, statusCode *int, message string) error
	SavePageResult(ctx context.Context, page *model.Page, links []model.Link, images []model.Image) error

	PendingPages(ctx context.Context, sessionID int64) ([]database.PendingPage, error)
	PageURLs(ctx context.Context, sessionID int64) ([]string, error)
	LinkTargets(ctx context.Context, sessionID int64) ([]string, error)
}

package model

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// PageStatus represents the lifecycle state of a page within a session.
// A page is in exactly one of these states at any time.
type PageStatus string

// Page lifecycle states.
const (
	// PagePending means the URL is enqueued but not yet processed.
	PagePending PageStatus = "pending"

	// PageCrawled means the URL was fetched and its result recorded.
	// Redirects and non-HTML responses are crawled, not errors.
	PageCrawled PageStatus = "crawled"

	// PageError means the fetch failed (transport error) or the server
	// answered with a 4xx/5xx status.
	PageError PageStatus = "error"

	// PageSkipped means robots policy disallowed the URL and no fetch
	// was attempted.
	PageSkipped PageStatus = "skipped"
)

// Terminal reports whether the status is a terminal state.
func (s PageStatus) Terminal() bool {
	return s == PageCrawled || s == PageError || s == PageSkipped
}

// Page is both a frontier entry and a result record: one row per
// (session, URL). The SEO fields stay at their zero values until the
// page is processed.
type Page struct {
	// ID is the database identifier of the page row.
	ID int64

	// SessionID is the owning crawl session.
	SessionID int64

	// URL is the normalized page URL, unique within the session.
	URL string

	// Status is the current lifecycle state.
	Status PageStatus

	// Depth is the hop count from a seed URL via internal links.
	// Seeds and the site root are depth 0.
	Depth int

	// InSitemap records whether the URL was seeded from a sitemap.
	InSitemap bool

	// StatusCode is the HTTP response status. Nil when the fetch
	// failed before a status line was received.
	StatusCode *int

	// RedirectURL is the absolute redirect target for 3xx responses.
	RedirectURL string

	// ContentType is the response Content-Type header value.
	ContentType string

	// Title is the <title> text.
	Title string

	// MetaDescription is the <meta name="description"> content.
	MetaDescription string

	// H1Count and H2Count are heading tag counts.
	H1Count int
	H2Count int

	// FirstH1 is the text of the first <h1> on the page.
	FirstH1 string

	// CanonicalURL is the <link rel="canonical"> href, resolved to an
	// absolute URL.
	CanonicalURL string

	// RobotsMeta is the raw <meta name="robots"> content combined with
	// any X-Robots-Tag header values.
	RobotsMeta string

	// Indexable reports whether search engines may index the page.
	// Nil for non-HTML resources, where indexability has no meaning.
	Indexable *bool

	// WordCount is the number of words in the visible page text.
	WordCount int

	// InternalLinkCount and ExternalLinkCount are counts of anchors by
	// scope; ImageCount is the number of <img> elements.
	InternalLinkCount int
	ExternalLinkCount int
	ImageCount        int

	// ContentHash is the SHA-256 hash of the response body, used for
	// change detection between sessions.
	ContentHash string

	// ResponseTimeMs is the fetch duration in milliseconds.
	ResponseTimeMs int64

	// SizeBytes is the response body size.
	SizeBytes int64

	// ErrorMessage describes a fetch failure, an HTTP error status, or
	// the robots rule that caused a skip.
	ErrorMessage string

	// CrawledAt is when the page reached a terminal state.
	CrawledAt *time.Time
}

// Link is a link discovered on a successfully analyzed HTML page.
type Link struct {
	// SessionID is the owning crawl session.
	SessionID int64

	// SourceURL is the page the link appeared on.
	SourceURL string

	// TargetURL is the absolute link target.
	TargetURL string

	// AnchorText is the trimmed text content of the anchor.
	AnchorText string

	// IsExternal reports whether the target host differs from the
	// source host. External links are recorded but never enqueued.
	IsExternal bool
}

// Image is an <img> element discovered on a successfully analyzed
// HTML page.
type Image struct {
	// SessionID is the owning crawl session.
	SessionID int64

	// PageURL is the page the image appeared on.
	PageURL string

	// Src is the absolute image source URL.
	Src string

	// Alt is the alt attribute. Nil means the attribute was absent;
	// a non-nil empty string means alt="" was present. The two are
	// SEO-relevant in different ways, so the distinction is kept all
	// the way into storage.
	Alt *string
}

// HashContent returns the hex-encoded SHA-256 hash of body, or the
// empty string for an empty body.
func HashContent(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

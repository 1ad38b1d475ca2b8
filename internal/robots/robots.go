package robots

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/temoto/robotstxt"
)

// maxRobotsSize limits how much of a robots.txt file is read.
// Google's parser stops at 500KB; anything larger is noise.
const maxRobotsSize = 512 * 1024

// Policy is the resolved robots.txt policy for one site.
type Policy struct {
	// group holds the rule group matched for our user agent.
	// Nil means allow everything.
	group *robotstxt.Group

	// sitemaps are the sitemap URLs advertised in robots.txt.
	sitemaps []string
}

// allowAll is the permissive policy used on any resolution failure.
var allowAll = &Policy{}

// IsAllowed reports whether the URL may be fetched. Unparsable URLs
// are allowed: the fetch itself will surface the real problem.
func (p *Policy) IsAllowed(rawURL string) bool {
	if p.group == nil {
		return true
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return true
	}

	path := u.Path
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}

	return p.group.Test(path)
}

// CrawlDelay returns the Crawl-delay directive for our agent group
// and whether one was present.
func (p *Policy) CrawlDelay() (time.Duration, bool) {
	if p.group == nil || p.group.CrawlDelay <= 0 {
		return 0, false
	}
	return p.group.CrawlDelay, true
}

// SitemapURLs returns the sitemap URLs advertised in robots.txt.
func (p *Policy) SitemapURLs() []string {
	return p.sitemaps
}

// Source fetches robots.txt policies over HTTP.
type Source struct {
	// Client performs the robots.txt request. Should carry the same
	// timeout as the crawl fetches.
	Client *http.Client

	// UserAgent selects the robots.txt rule group and is sent with
	// the request.
	UserAgent string

	// Logger receives resolution diagnostics. Nil means slog.Default.
	Logger *slog.Logger
}

// Lookup fetches and parses robots.txt for the site root.
// It never returns an error: every failure mode degrades to the
// permissive allow-all policy, which is logged but not fatal.
func (s *Source) Lookup(ctx context.Context, siteRoot string) (*Policy, error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	root, err := url.Parse(siteRoot)
	if err != nil {
		logger.Warn("invalid site root for robots.txt lookup", "site", siteRoot, "error", err)
		return allowAll, nil
	}

	robotsURL := fmt.Sprintf("%s://%s/robots.txt", root.Scheme, root.Host)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return allowAll, nil
	}
	req.Header.Set("User-Agent", s.UserAgent)

	resp, err := s.Client.Do(req)
	if err != nil {
		logger.Warn("robots.txt fetch failed, allowing all", "url", robotsURL, "error", err)
		return allowAll, nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRobotsSize))
	if err != nil {
		logger.Warn("robots.txt read failed, allowing all", "url", robotsURL, "error", err)
		return allowAll, nil
	}

	// FromStatusAndBytes applies the conventional status semantics:
	// 4xx means no restrictions, 5xx means tread carefully.
	data, err := robotstxt.FromStatusAndBytes(resp.StatusCode, body)
	if err != nil {
		logger.Warn("robots.txt parse failed, allowing all", "url", robotsURL, "error", err)
		return allowAll, nil
	}

	policy := &Policy{
		group:    data.FindGroup(s.UserAgent),
		sitemaps: data.Sitemaps,
	}

	logger.Debug("robots.txt resolved",
		"url", robotsURL,
		"status", resp.StatusCode,
		"sitemaps", len(policy.sitemaps),
	)

	return policy, nil
}

package sitemap

import (
	"compress/gzip"
	"context"
	"encoding/xml"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

const (
	// maxSitemapSize limits how much of one sitemap document is read.
	// The sitemap protocol caps files at 50MB; 10MB covers nearly all
	// real sites without risking memory exhaustion.
	maxSitemapSize = 10 * 1024 * 1024

	// maxSitemapFetches bounds the total number of sitemap documents
	// fetched for one site, indexes included.
	maxSitemapFetches = 50
)

// urlSet is the <urlset> document of the sitemap protocol.
type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	URLs    []sitemapLoc `xml:"url"`
}

// sitemapIndex is the <sitemapindex> document listing child sitemaps.
type sitemapIndex struct {
	XMLName  xml.Name     `xml:"sitemapindex"`
	Sitemaps []sitemapLoc `xml:"sitemap"`
}

// sitemapLoc is a <url> or <sitemap> entry; only <loc> matters here.
type sitemapLoc struct {
	Loc string `xml:"loc"`
}

// Provider fetches and parses sitemaps to seed the crawl frontier.
type Provider struct {
	// Client performs sitemap requests.
	Client *http.Client

	// UserAgent is sent with every request.
	UserAgent string

	// Logger receives resolution diagnostics. Nil means slog.Default.
	Logger *slog.Logger
}

// URLs returns the deduplicated page URLs found in the site's
// sitemaps. Hints (sitemap URLs advertised in robots.txt) are
// preferred; without hints the conventional /sitemap.xml location is
// tried. Failures never propagate: the worst case is an empty seed
// list, which the caller treats as "crawl from the root only".
func (p *Provider) URLs(ctx context.Context, siteRoot string, hints []string) []string {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	candidates := hints
	if len(candidates) == 0 {
		root, err := url.Parse(siteRoot)
		if err != nil {
			logger.Warn("invalid site root for sitemap lookup", "site", siteRoot, "error", err)
			return nil
		}
		candidates = []string{root.Scheme + "://" + root.Host + "/sitemap.xml"}
	}

	seen := make(map[string]bool)
	var pages []string
	fetches := 0

	// Indexes discovered along the way are appended and processed in
	// order, bounded by maxSitemapFetches.
	queue := append([]string(nil), candidates...)
	for len(queue) > 0 && fetches < maxSitemapFetches {
		smURL := queue[0]
		queue = queue[1:]
		fetches++

		urls, children, err := p.fetchOne(ctx, smURL)
		if err != nil {
			logger.Warn("sitemap fetch failed, skipping", "url", smURL, "error", err)
			continue
		}

		queue = append(queue, children...)

		for _, u := range urls {
			u = strings.TrimSpace(u)
			if u == "" || seen[u] {
				continue
			}
			seen[u] = true
			pages = append(pages, u)
		}
	}

	logger.Debug("sitemap resolution finished",
		"site", siteRoot,
		"documents", fetches,
		"urls", len(pages),
	)

	return pages
}

// fetchOne fetches a single sitemap document and returns its page
// URLs and any child sitemap URLs (for index documents).
func (p *Provider) fetchOne(ctx context.Context, smURL string) (urls, children []string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, smURL, nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("User-Agent", p.UserAgent)

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, &statusError{status: resp.StatusCode}
	}

	var reader io.Reader = io.LimitReader(resp.Body, maxSitemapSize)

	// .xml.gz sitemaps arrive as application/gzip payloads; the
	// transport only undoes Content-Encoding, not payload compression.
	if strings.HasSuffix(strings.ToLower(smURL), ".gz") ||
		strings.Contains(resp.Header.Get("Content-Type"), "gzip") {
		gz, err := gzip.NewReader(reader)
		if err != nil {
			return nil, nil, err
		}
		defer gz.Close()
		reader = gz
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, nil, err
	}

	return parseSitemap(data)
}

// parseSitemap parses a sitemap document, trying the urlset form
// first and the index form second.
func parseSitemap(data []byte) (urls, children []string, err error) {
	var us urlSet
	if err := xml.Unmarshal(data, &us); err == nil && len(us.URLs) > 0 {
		for _, entry := range us.URLs {
			urls = append(urls, entry.Loc)
		}
		return urls, nil, nil
	}

	var idx sitemapIndex
	if err := xml.Unmarshal(data, &idx); err == nil && len(idx.Sitemaps) > 0 {
		for _, entry := range idx.Sitemaps {
			loc := strings.TrimSpace(entry.Loc)
			if loc != "" {
				children = append(children, loc)
			}
		}
		return nil, children, nil
	}

	// Neither form matched; treat as empty rather than failing so one
	// malformed document doesn't hide a valid sibling sitemap.
	return nil, nil, nil
}

// statusError reports a non-200 sitemap response.
type statusError struct {
	status int
}

// Error implements the error interface.
func (e *statusError) Error() string {
	return "unexpected status " + http.StatusText(e.status)
}

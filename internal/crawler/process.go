package crawler

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/seolens/seolens/internal/model"
)

// process handles one unit of work: policy check, fetch, outcome
// classification, persistence, and discovery feedback. Failures are
// contained here; a broken page never takes the pool down.
func (c *Crawler) process(ctx context.Context, item frontierItem) {
	if !c.policy.IsAllowed(item.url) {
		c.logger.Info("skipped by robots policy", "url", item.url)
		if err := c.store.MarkPageSkipped(ctx, c.session.ID, item.url, "disallowed by robots.txt"); err != nil {
			c.logger.Error("skip persist failed", "url", item.url, "error", err)
		}
		return
	}

	res := c.fetcher.Fetch(ctx, item.url)

	switch {
	case !res.OK():
		c.logger.Warn("fetch failed", "url", item.url, "error", res.ErrorMessage)
		if err := c.store.MarkPageError(ctx, c.session.ID, item.url, nil, res.ErrorMessage); err != nil {
			c.logger.Error("error persist failed", "url", item.url, "error", err)
		}

	case res.StatusCode >= 300 && res.StatusCode < 400:
		c.processRedirect(ctx, item, res.StatusCode, res.RedirectLocation, res.Elapsed, int64(len(res.Body)))

	case res.StatusCode >= 400:
		code := res.StatusCode
		msg := fmt.Sprintf("HTTP %d %s", code, http.StatusText(code))
		c.logger.Warn("http error", "url", item.url, "status", code)
		if err := c.store.MarkPageError(ctx, c.session.ID, item.url, &code, msg); err != nil {
			c.logger.Error("error persist failed", "url", item.url, "error", err)
		}

	default:
		contentType := res.Headers.Get("Content-Type")
		if len(res.Body) == 0 || !strings.Contains(strings.ToLower(contentType), "html") {
			c.processNonHTML(ctx, item, res.StatusCode, contentType, res.Elapsed, res.Body)
			return
		}
		c.processHTML(ctx, item, res.StatusCode, contentType, res.Headers.Get("X-Robots-Tag"), res.Elapsed, res.Body)
	}
}

// processRedirect records a 3xx hop. The page is crawled, not an
// error, and explicitly non-indexable. The resolved target continues
// the chain at the same depth: a redirect is the same logical page,
// not a hop deeper. Loops terminate at the seen-set gate.
func (c *Crawler) processRedirect(ctx context.Context, item frontierItem, statusCode int, location string, elapsed time.Duration, size int64) {
	target := resolveRedirect(item.url, location)

	indexable := false
	now := time.Now().UTC()
	page := &model.Page{
		SessionID:      c.session.ID,
		URL:            item.url,
		Status:         model.PageCrawled,
		StatusCode:     &statusCode,
		RedirectURL:    target,
		Indexable:      &indexable,
		ResponseTimeMs: elapsed.Milliseconds(),
		SizeBytes:      size,
		CrawledAt:      &now,
	}
	if err := c.store.SavePageResult(ctx, page, nil, nil); err != nil {
		c.logger.Error("redirect persist failed", "url", item.url, "error", err)
		return
	}

	c.logger.Info("redirect", "url", item.url, "status", statusCode, "target", target)

	if target != "" {
		c.enqueue(ctx, target, item.depth, false)
	}
}

// processNonHTML records a successful fetch of something the analyzer
// has no business parsing. Indexability stays nil: the concept does
// not apply to a PDF or an image. No URLs are discovered.
func (c *Crawler) processNonHTML(ctx context.Context, item frontierItem, statusCode int, contentType string, elapsed time.Duration, body []byte) {
	now := time.Now().UTC()
	page := &model.Page{
		SessionID:      c.session.ID,
		URL:            item.url,
		Status:         model.PageCrawled,
		StatusCode:     &statusCode,
		ContentType:    contentType,
		ContentHash:    model.HashContent(body),
		ResponseTimeMs: elapsed.Milliseconds(),
		SizeBytes:      int64(len(body)),
		CrawledAt:      &now,
	}
	if err := c.store.SavePageResult(ctx, page, nil, nil); err != nil {
		c.logger.Error("non-html persist failed", "url", item.url, "error", err)
		return
	}

	c.logger.Info("crawled non-html", "url", item.url, "content_type", contentType, "size", page.SizeBytes)
}

// processHTML analyzes the page, persists the full result record with
// its links and images in one transaction, and feeds internal link
// targets back into the frontier at depth+1.
func (c *Crawler) processHTML(ctx context.Context, item frontierItem, statusCode int, contentType, xRobotsTag string, elapsed time.Duration, body []byte) {
	a, err := c.analyze(item.url, body, contentType, xRobotsTag)
	if err != nil {
		c.logger.Error("analysis failed", "url", item.url, "error", err)
		if perr := c.store.MarkPageError(ctx, c.session.ID, item.url, &statusCode, "analysis failed: "+err.Error()); perr != nil {
			c.logger.Error("error persist failed", "url", item.url, "error", perr)
		}
		return
	}

	links := make([]model.Link, 0, len(a.Links))
	for _, l := range a.Links {
		links = append(links, model.Link{
			SessionID:  c.session.ID,
			SourceURL:  item.url,
			TargetURL:  l.TargetURL,
			AnchorText: l.AnchorText,
			IsExternal: l.IsExternal,
		})
	}

	images := make([]model.Image, 0, len(a.Images))
	for _, img := range a.Images {
		images = append(images, model.Image{
			SessionID: c.session.ID,
			PageURL:   item.url,
			Src:       img.Src,
			Alt:       img.Alt,
		})
	}

	indexable := a.Indexable
	now := time.Now().UTC()
	page := &model.Page{
		SessionID:         c.session.ID,
		URL:               item.url,
		Status:            model.PageCrawled,
		StatusCode:        &statusCode,
		ContentType:       contentType,
		Title:             a.Title,
		MetaDescription:   a.MetaDescription,
		H1Count:           a.H1Count,
		H2Count:           a.H2Count,
		FirstH1:           a.FirstH1,
		CanonicalURL:      a.CanonicalURL,
		RobotsMeta:        a.RobotsMeta,
		Indexable:         &indexable,
		WordCount:         a.WordCount,
		InternalLinkCount: a.InternalLinkCount(),
		ExternalLinkCount: a.ExternalLinkCount(),
		ImageCount:        len(a.Images),
		ContentHash:       model.HashContent(body),
		ResponseTimeMs:    elapsed.Milliseconds(),
		SizeBytes:         int64(len(body)),
		CrawledAt:         &now,
	}

	if err := c.store.SavePageResult(ctx, page, links, images); err != nil {
		c.logger.Error("page persist failed", "url", item.url, "error", err)
		return
	}

	c.logger.Info("crawled",
		"url", item.url,
		"status", statusCode,
		"title", a.Title,
		"links", len(links),
		"images", len(images),
	)

	for _, l := range links {
		if !l.IsExternal {
			c.enqueue(ctx, l.TargetURL, item.depth+1, false)
		}
	}
}

// resolveRedirect resolves a Location header against the source URL.
// Returns "" when either side is unparsable.
func resolveRedirect(sourceURL, location string) string {
	if location == "" {
		return ""
	}
	src, err := url.Parse(sourceURL)
	if err != nil {
		return ""
	}
	loc, err := url.Parse(location)
	if err != nil {
		return ""
	}
	return model.NormalizeURL(src.ResolveReference(loc).String())
}

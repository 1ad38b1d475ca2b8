package crawler

import (
	"context"
	"fmt"
	"net/url"

	"github.com/seolens/seolens/internal/model"
)

// initSession creates a fresh session and seeds the frontier from the
// sitemap and the site root.
func (c *Crawler) initSession(ctx context.Context) error {
	rootURL := model.NormalizeURL(c.cfg.SiteURL)

	root, err := url.Parse(rootURL)
	if err != nil {
		return fmt.Errorf("parse site url: %w", err)
	}
	c.siteRoot = root

	session, err := c.store.CreateSession(ctx, rootURL, c.cfg.Label)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	c.session = session
	c.frontier = newFrontier(c.cfg.MaxPages)

	policy, err := c.policies.Lookup(ctx, rootURL)
	if err != nil {
		return fmt.Errorf("resolve robots policy: %w", err)
	}
	c.policy = policy

	seeds := c.seeds.URLs(ctx, rootURL, policy.SitemapURLs())
	for _, seed := range seeds {
		c.enqueue(ctx, seed, 0, true)
	}

	// The root itself is always seeded. enqueue's seen-set gate makes
	// this a no-op only when the sitemap already listed the exact same
	// URL, trailing slash included.
	c.enqueue(ctx, rootURL, 0, false)

	c.logger.Info("session initialized",
		"session", session.ID,
		"site", rootURL,
		"sitemap_seeds", len(seeds),
	)
	return nil
}

// resumeSession continues the most recent interrupted session. The
// seen-set is rebuilt from every persisted page URL plus every
// distinct link target, so URLs discovered before the interruption
// are not re-enqueued as duplicates. Pending pages are loaded
// shallowest first.
func (c *Crawler) resumeSession(ctx context.Context) error {
	session, err := c.store.LatestInterruptedSession(ctx)
	if err != nil {
		return fmt.Errorf("find interrupted session: %w", err)
	}
	c.session = session
	c.frontier = newFrontier(c.cfg.MaxPages)

	root, err := url.Parse(session.RootURL)
	if err != nil {
		return fmt.Errorf("parse session root url: %w", err)
	}
	c.siteRoot = root

	// Robots policy is re-fetched, not cached: robots.txt may have
	// changed since the interrupted run.
	policy, err := c.policies.Lookup(ctx, session.RootURL)
	if err != nil {
		return fmt.Errorf("resolve robots policy: %w", err)
	}
	c.policy = policy

	pageURLs, err := c.store.PageURLs(ctx, session.ID)
	if err != nil {
		return fmt.Errorf("load page urls: %w", err)
	}
	linkTargets, err := c.store.LinkTargets(ctx, session.ID)
	if err != nil {
		return fmt.Errorf("load link targets: %w", err)
	}
	for _, u := range pageURLs {
		c.frontier.markSeen(u)
	}
	for _, u := range linkTargets {
		c.frontier.markSeen(u)
	}

	pending, err := c.store.PendingPages(ctx, session.ID)
	if err != nil {
		return fmt.Errorf("load pending pages: %w", err)
	}
	for _, p := range pending {
		c.frontier.push(p.URL, p.Depth)
	}

	if err := c.store.MarkSessionRunning(ctx, session.ID); err != nil {
		return fmt.Errorf("mark session running: %w", err)
	}

	c.logger.Info("session resumed",
		"session", session.ID,
		"site", session.RootURL,
		"pending", len(pending),
		"seen", len(pageURLs)+len(linkTargets),
	)
	return nil
}

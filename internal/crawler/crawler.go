package crawler

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/seolens/seolens/internal/analyzer"
	"github.com/seolens/seolens/internal/config"
	"github.com/seolens/seolens/internal/fetch"
	"github.com/seolens/seolens/internal/model"
	"github.com/seolens/seolens/internal/robots"
	"github.com/seolens/seolens/internal/sitemap"
)

// Crawler runs one crawl session: it owns the frontier, coordinates
// the worker pool, and is the only component that mutates session
// state.
type Crawler struct {
	cfg      *config.Config
	store    Store
	policies PolicySource
	seeds    SeedProvider
	fetcher  Fetcher
	analyze  AnalyzeFunc
	logger   *slog.Logger

	// Run-scoped state, set during session initialization.
	session  *model.Session
	siteRoot *url.URL
	policy   Policy
	frontier *frontier
	delay    time.Duration
}

// Option configures a Crawler. Options exist mainly so tests can
// substitute collaborators; production use relies on the defaults.
type Option func(*Crawler)

// WithPolicySource replaces the robots.txt policy source.
func WithPolicySource(ps PolicySource) Option {
	return func(c *Crawler) { c.policies = ps }
}

// WithSeedProvider replaces the sitemap seed provider.
func WithSeedProvider(sp SeedProvider) Option {
	return func(c *Crawler) { c.seeds = sp }
}

// WithFetcher replaces the page fetch client.
func WithFetcher(f Fetcher) Option {
	return func(c *Crawler) { c.fetcher = f }
}

// WithAnalyzer replaces the HTML analysis function.
func WithAnalyzer(fn AnalyzeFunc) Option {
	return func(c *Crawler) { c.analyze = fn }
}

// WithLogger sets the logger. The default is slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Crawler) { c.logger = logger }
}

// robotsPolicySource adapts robots.Source to the PolicySource
// interface (Go interfaces are not covariant in return types).
type robotsPolicySource struct {
	src *robots.Source
}

// Lookup implements PolicySource.
func (r robotsPolicySource) Lookup(ctx context.Context, siteRoot string) (Policy, error) {
	return r.src.Lookup(ctx, siteRoot)
}

// New returns a Crawler for one session using the given configuration
// and store.
func New(cfg *config.Config, store Store, opts ...Option) *Crawler {
	c := &Crawler{
		cfg:     cfg,
		store:   store,
		analyze: analyzer.Analyze,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.policies == nil {
		c.policies = robotsPolicySource{src: &robots.Source{
			Client:    &http.Client{Timeout: cfg.Timeout},
			UserAgent: cfg.UserAgent,
			Logger:    c.logger,
		}}
	}
	if c.seeds == nil {
		c.seeds = &sitemap.Provider{
			Client:    &http.Client{Timeout: cfg.Timeout},
			UserAgent: cfg.UserAgent,
			Logger:    c.logger,
		}
	}
	if c.fetcher == nil {
		c.fetcher = fetch.NewClient(cfg.Timeout, cfg.UserAgent, cfg.MaxBodySize)
	}

	return c
}

// Run executes the session to completion. A fresh session is created
// unless cfg.Resume is set, in which case the most recent interrupted
// session is continued.
//
// On a normal drain the session is marked complete and returned with
// exit state recorded. If the dispatch cap stops the crawl while URLs
// are still queued, the session is marked interrupted instead, so the
// remaining pending pages can be picked up with a resume. When ctx is
// canceled mid-run, Run stops
// dispatching, abandons in-flight fetches, and returns the session
// together with ctx.Err(); the caller decides how to mark the session
// (the CLI marks it interrupted so it can be resumed).
func (c *Crawler) Run(ctx context.Context) (*model.Session, error) {
	var err error
	if c.cfg.Resume {
		err = c.resumeSession(ctx)
	} else {
		err = c.initSession(ctx)
	}
	if err != nil {
		return nil, err
	}

	c.delay = c.cfg.CrawlDelay
	if c.cfg.RespectRobotsDelay {
		if d, ok := c.policy.CrawlDelay(); ok {
			c.delay = d
		}
	}

	c.logger.Info("crawl starting",
		"session", c.session.ID,
		"site", c.session.RootURL,
		"queued", c.frontier.pendingCount(),
		"concurrency", c.cfg.Concurrency,
		"delay", c.delay,
	)

	// Cancellation only stops new dispatch here; the shared context
	// makes workers abandon whatever fetch they are in.
	stopWatch := context.AfterFunc(ctx, c.frontier.shutdown)
	defer stopWatch()

	var g errgroup.Group
	for i := 0; i < c.cfg.Concurrency; i++ {
		g.Go(func() error {
			c.worker(ctx)
			return nil
		})
	}
	_ = g.Wait()

	if ctx.Err() != nil {
		return c.session, ctx.Err()
	}

	// A non-empty queue after the pool exits means the dispatch cap
	// stopped the crawl, not a drain. The queued URLs are already
	// persisted as pending, so the session stays resumable.
	if c.frontier.pendingCount() > 0 {
		if err := c.store.MarkSessionInterrupted(ctx, c.session.ID); err != nil {
			return c.session, err
		}
		c.session.Status = model.SessionInterrupted
		c.logger.Info("page cap reached, session left resumable",
			"session", c.session.ID,
			"dispatched", len(c.frontier.dispatchLog()),
			"queued", c.frontier.pendingCount(),
		)
		return c.session, nil
	}

	if err := c.store.CompleteSession(ctx, c.session.ID); err != nil {
		return c.session, err
	}
	c.session.Status = model.SessionComplete

	c.logger.Info("crawl complete",
		"session", c.session.ID,
		"dispatched", len(c.frontier.dispatchLog()),
	)
	return c.session, nil
}

// worker pulls items from the frontier until it drains or shutdown is
// requested. With a crawl delay configured, the limiter paces this
// worker independently of its siblings, so aggregate throughput still
// scales with concurrency.
func (c *Crawler) worker(ctx context.Context) {
	var limiter *rate.Limiter
	if c.delay > 0 {
		limiter = rate.NewLimiter(rate.Every(c.delay), 1)
	}

	for {
		item, ok := c.frontier.next()
		if !ok {
			return
		}

		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				c.frontier.done()
				return
			}
		}

		c.process(ctx, item)
		c.frontier.done()
	}
}

// enqueue admits a URL into the frontier if it passes the scope
// gates: crawlable scheme, same host as the site root, not matching
// an ignore pattern, and never seen before. A pending page row is
// persisted before the URL becomes dispatchable, keeping storage the
// complete record of the frontier.
func (c *Crawler) enqueue(ctx context.Context, rawURL string, depth int, inSitemap bool) {
	normalized := model.NormalizeURL(rawURL)

	u, err := url.Parse(normalized)
	if err != nil || !model.IsCrawlableScheme(u) || !model.SameHost(c.siteRoot, u) {
		return
	}
	if c.ignored(u) {
		return
	}

	if !c.frontier.markSeen(normalized) {
		return
	}

	if err := c.store.InsertPendingPage(ctx, c.session.ID, normalized, depth, inSitemap); err != nil {
		c.logger.Error("pending page insert failed", "url", normalized, "error", err)
		return
	}

	c.frontier.push(normalized, depth)
}

// ignored reports whether the URL path matches an ignore pattern.
func (c *Crawler) ignored(u *url.URL) bool {
	path := u.Path
	if path == "" {
		path = "/"
	}
	for _, pattern := range c.cfg.IgnorePatterns {
		if matchPattern(pattern, path) {
			return true
		}
	}
	return false
}

// matchPattern checks a URL path against a glob pattern.
//
// "/cart/*" matches "/cart" and anything below it, "*.pdf" matches
// any path with that suffix, and everything else goes through
// filepath.Match single-segment globbing.
func matchPattern(pattern, path string) bool {
	if strings.HasSuffix(pattern, "/*") {
		prefix := strings.TrimSuffix(pattern, "/*")
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}

	if strings.HasPrefix(pattern, "*") && !strings.ContainsAny(pattern[1:], "*?[") {
		if strings.HasSuffix(path, pattern[1:]) {
			return true
		}
	}

	matched, err := filepath.Match(pattern, path)
	if err != nil {
		return false
	}
	if matched {
		return true
	}

	if strings.Contains(pattern, "*") && !strings.Contains(pattern, "/") {
		if matched, err := filepath.Match(pattern, filepath.Base(path)); err == nil && matched {
			return true
		}
	}

	return false
}

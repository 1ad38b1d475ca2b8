// Package crawler implements the crawl orchestration engine: the
// bounded-concurrency frontier scheduler that drives URL discovery,
// fetch dispatch, robots policy enforcement, crawl-delay pacing,
// per-URL outcome classification, durable incremental persistence,
// and graceful interruption with resume.
//
// The frontier (seen-set plus pending queue) is owned exclusively by
// one Crawler instance for the duration of a run. The database is the
// durable source of truth: every enqueued URL has a pending page row
// before it is dispatched, so an interrupted session can be resumed
// from storage alone.
package crawler

// Package fetch performs single-page HTTP retrieval for the crawler.
//
// The client never follows redirects: a 3xx response is returned
// as-is with its Location header so the caller can record the hop and
// decide whether to enqueue the target. Transport failures are
// reported in the result rather than as errors, because for a crawler
// an unreachable page is an observation, not a fault.
package fetch

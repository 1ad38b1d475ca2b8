// Package log provides logging for seolens on top of the standard
// slog package, with automatic sanitization of sensitive values.
//
// The crawler logs response headers and per-URL lifecycle events.
// Sites occasionally leak credentials through headers (Set-Cookie,
// Authorization echoes, API keys in custom headers), and crawl logs
// are often shared when debugging. The SanitizingHandler masks such
// values before they reach the log output:
//   - HTTP credential headers (Authorization, Cookie, Set-Cookie, X-Api-Key)
//   - Values that look like bearer tokens, basic auth blobs, or API keys
//   - Attribute keys containing password/secret/token keywords
//
// Usage:
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
package log

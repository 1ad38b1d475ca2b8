// Package report turns persisted crawl data into CSV exports,
// markdown summaries, and session-to-session comparisons.
//
// Everything here is a pure batch transform: the caller loads session
// data from storage and hands it over, and the package writes to an
// io.Writer. No I/O decisions are made in this package.
package report

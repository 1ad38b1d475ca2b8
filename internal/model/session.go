package model

import "time"

// SessionStatus represents the lifecycle state of a crawl session.
type SessionStatus string

// Session lifecycle states. A session is created as running and
// transitions to complete or interrupted exactly once, at shutdown.
const (
	// SessionRunning indicates a crawl in progress.
	SessionRunning SessionStatus = "running"

	// SessionComplete indicates the frontier drained normally.
	SessionComplete SessionStatus = "complete"

	// SessionInterrupted indicates the crawl was stopped before the
	// frontier drained. Interrupted sessions can be resumed.
	SessionInterrupted SessionStatus = "interrupted"
)

// Valid reports whether s is one of the known session states.
func (s SessionStatus) Valid() bool {
	switch s {
	case SessionRunning, SessionComplete, SessionInterrupted:
		return true
	}
	return false
}

// Session represents one crawl run against a site.
//
// Design decision: We keep the session record minimal and compute the
// crawled page count at completion time from the pages table rather
// than incrementing a counter per page. This avoids a hot write on the
// sessions row and keeps the count correct after a resume.
type Session struct {
	// ID is the database identifier of the session.
	ID int64

	// RootURL is the site root the crawl was started from.
	RootURL string

	// Label is an optional human-readable name for the session.
	Label string

	// Status is the current lifecycle state.
	Status SessionStatus

	// StartedAt is when the session was created.
	StartedAt time.Time

	// CompletedAt is when the session reached a terminal state.
	// Nil while the session is running or interrupted.
	CompletedAt *time.Time

	// TotalPages is the number of successfully crawled pages,
	// computed when the session completes. Zero until then.
	TotalPages int
}

package database

import "errors"

// Store errors.
var (
	// ErrNoInterruptedSession is returned by LatestInterruptedSession
	// when the database holds no session that can be resumed.
	ErrNoInterruptedSession = errors.New("no interrupted session to resume")

	// ErrSessionNotFound is returned when a session ID does not exist.
	ErrSessionNotFound = errors.New("session not found")
)

// Package session tracks staged import uploads between the validate and
// process steps. A session binds an owner to exactly one staged file; a new
// upload by the same owner replaces the previous one.
package session

import "time"

// ImportSession is the staged state between a successful validation and the
// import that consumes it.
type ImportSession struct {
	FilePath     string
	OriginalName string
	UploadedAt   time.Time
}

// Store holds at most one ImportSession per owner key. Implementations must
// be safe for concurrent use.
type Store interface {
	// Put stores the session under key, replacing any existing one. The
	// session expires after ttl.
	Put(key string, s ImportSession, ttl time.Duration)

	// Get returns the live session for key, if any. Expired sessions are
	// treated as absent.
	Get(key string) (ImportSession, bool)

	// Delete removes and returns the session for key so the caller can
	// release its staged file.
	Delete(key string) (ImportSession, bool)
}

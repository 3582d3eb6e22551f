package model

import "time"

// Session is a bearer-token credential. Tokens are opaque and unguessable;
// a session past its expiry must never authenticate, but rows are only
// removed lazily (on logout) rather than by a background sweeper.
type Session struct {
	Token     string
	PlayerID  PlayerID
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is no longer valid at the given instant
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

package model

import (
	"time"

	"github.com/google/uuid"
)

type SessionID string

// NewSessionID generates a new opaque session token
func NewSessionID() SessionID {
	return SessionID(uuid.New().String())
}

// Session is one authenticated web session. Sessions live only in memory;
// a process restart invalidates all of them.
type Session struct {
	ID        SessionID
	Username  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry at the given time
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

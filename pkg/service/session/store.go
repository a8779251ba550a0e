// Package session provides the web layer's session capability. The store
// is interface-isolated so the process-local map could be swapped for a
// persistent backend without touching any handler.
package session

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/medlar/pkg/model"
)

var ErrSessionNotFound = goerr.New("session not found")

// Store manages authenticated sessions. Get must check expiry and delete
// expired entries on every access path.
type Store interface {
	// Create opens a session for the user with the given lifetime
	Create(username string, ttl time.Duration) *model.Session

	// Get returns the live session for the token. Expired sessions are
	// deleted and reported as ErrSessionNotFound.
	Get(id model.SessionID) (*model.Session, error)

	// Delete removes a session; deleting an unknown token is a no-op
	Delete(id model.SessionID)
}

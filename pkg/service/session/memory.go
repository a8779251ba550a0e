package session

import (
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/medlar/pkg/model"
)

// Memory is the process-local Store. All map access is serialized under one
// mutex so two requests racing to check-and-delete the same expired entry
// cannot tear each other's reads.
type Memory struct {
	mu       sync.Mutex
	sessions map[model.SessionID]*model.Session
	now      func() time.Time
}

// NewMemory creates an empty in-memory session store
func NewMemory() *Memory {
	return &Memory{
		sessions: make(map[model.SessionID]*model.Session),
		now:      time.Now,
	}
}

// NewMemoryWithClock creates a store with an injected clock for tests
func NewMemoryWithClock(now func() time.Time) *Memory {
	s := NewMemory()
	s.now = now
	return s
}

func (s *Memory) Create(username string, ttl time.Duration) *model.Session {
	now := s.now()
	sess := &model.Session{
		ID:        model.NewSessionID(),
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return sess
}

func (s *Memory) Get(id model.SessionID) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, goerr.Wrap(ErrSessionNotFound, "unknown session token")
	}
	if sess.Expired(s.now()) {
		delete(s.sessions, id)
		return nil, goerr.Wrap(ErrSessionNotFound, "session expired",
			goerr.V("username", sess.Username))
	}
	return sess, nil
}

func (s *Memory) Delete(id model.SessionID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

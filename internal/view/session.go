// Package view holds per-visitor display state and the load pipeline behind it.
package view

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// State of a visitor session
type State int

const (
	// NotRequested is the state of a fresh session
	NotRequested State = iota
	// Requested is entered on the first load and never left
	Requested
)

func (s State) String() string {
	if s == Requested {
		return "requested"
	}
	return "not_requested"
}

// Session is the display state of one visitor
type Session struct {
	ID        string
	State     State
	Outcome   *Outcome
	UpdatedAt time.Time
}

// DefaultIdleTimeout is how long an untouched session is kept
const DefaultIdleTimeout = 24 * time.Hour

// Store keeps sessions in memory, keyed by id
type Store struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	idleTimeout time.Duration
	now         func() time.Time
}

// NewStore creates an empty session store
func NewStore(idleTimeout time.Duration) *Store {
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}
	return &Store{
		sessions:    make(map[string]*Session),
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
}

// Create starts a new session in the NotRequested state
func (s *Store) Create() Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked()
	sess := &Session{
		ID:        uuid.New().String(),
		State:     NotRequested,
		UpdatedAt: s.now(),
	}
	s.sessions[sess.ID] = sess
	return *sess
}

// Get returns a snapshot of the session
func (s *Store) Get(id string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, false
	}
	return *sess, true
}

// Record replaces the session's outcome with a new one and marks it Requested.
// Unknown ids are recreated under the same id.
func (s *Store) Record(id string, outcome *Outcome) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		sess = &Session{ID: id}
		s.sessions[id] = sess
	}
	sess.State = Requested
	sess.Outcome = outcome
	sess.UpdatedAt = s.now()
	return *sess
}

// Len returns the number of sessions held
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Store) pruneLocked() {
	cutoff := s.now().Add(-s.idleTimeout)
	for id, sess := range s.sessions {
		if sess.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}

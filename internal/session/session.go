// Package session holds per-user state and drives the generate/refine/clear
// pipeline. A session stores at most one result; a successful action replaces
// it atomically and a failed action leaves it untouched.
package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/content-hub/content-hub/internal/model"
)

// Session is one user's workspace. actionMu serializes pipeline actions so
// only one generate or refine runs per session at a time.
type Session struct {
	ID string

	actionMu sync.Mutex

	mu     sync.Mutex
	result *model.GenerationResult
}

func newSession() *Session {
	return &Session{ID: uuid.New().String()}
}

// Current returns the stored result, or nil when there is none.
func (s *Session) Current() *model.GenerationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// SetResult replaces the stored result.
func (s *Session) SetResult(r *model.GenerationResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = r
}

// Clear drops the stored result.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = nil
}

// Store is an in-memory session registry.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Create registers a new session and returns it.
func (s *Store) Create() *Session {
	sess := newSession()
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

// Get looks a session up by ID.
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// Delete removes a session.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

package db

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cipondok/astra-villa-nexus-sub022/models"
)

// Store is a simple in-memory store for shared search sessions
type Store struct {
	sessions map[string]*models.Session
	mutex    sync.RWMutex
}

// NewStore creates a new in-memory store
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*models.Session),
	}
}

// CreateSession creates a shareable session from the owner's current
// filters with the given time to live.
func (s *Store) CreateSession(ownerID string, filters models.FilterState, ttl time.Duration) models.Session {
	now := time.Now()
	session := &models.Session{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Filters:   filters.Clone(),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	s.mutex.Lock()
	s.sessions[session.ID] = session
	s.mutex.Unlock()

	return snapshot(session)
}

// LoadSession returns a session and counts one access. Expired and unknown
// identifiers both return false; callers cannot probe which share ids
// exist.
func (s *Store) LoadSession(id string) (models.Session, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	session, exists := s.sessions[id]
	if !exists || !session.Usable(time.Now()) {
		return models.Session{}, false
	}

	session.AccessCount++
	return snapshot(session), true
}

// PeekSession returns a session without counting an access. Used by the
// websocket bridge, which attaches after the session has already been
// opened and counted.
func (s *Store) PeekSession(id string) (models.Session, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	session, exists := s.sessions[id]
	if !exists || !session.Usable(time.Now()) {
		return models.Session{}, false
	}

	return snapshot(session), true
}

// DeleteSession removes a session from the store
func (s *Store) DeleteSession(id string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.sessions[id]; !exists {
		return false
	}

	delete(s.sessions, id)
	return true
}

// CleanupExpired removes sessions past their expiry
func (s *Store) CleanupExpired() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := time.Now()
	count := 0
	for id, session := range s.sessions {
		if !session.Usable(now) {
			delete(s.sessions, id)
			count++
		}
	}

	return count
}

// snapshot returns a detached copy so callers cannot mutate stored state.
func snapshot(session *models.Session) models.Session {
	out := *session
	out.Filters = session.Filters.Clone()
	return out
}

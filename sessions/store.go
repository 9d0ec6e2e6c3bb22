package sessions

import (
	"sync"
	"time"

	"github.com/Krishnaraj-06/AttendIQ/models"
)

// Store tracks currently-active sessions in memory, independent of durable
// storage. It is an owned instance, not a package global, so each manager
// (and each test) gets its own.
//
// Expired entries may linger between sweeps; every read path re-checks
// ExpiresAt itself, so the sweep is maintenance only.
type Store struct {
	mu       sync.Mutex
	sessions map[string]models.Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]models.Session)}
}

// Put inserts or overwrites by session id.
func (s *Store) Put(session models.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
}

// Get returns the session and true, or false if it was never created or has
// been purged.
func (s *Store) Get(sessionID string) (models.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	return session, ok
}

func (s *Store) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// SweepExpired removes every session whose window ended before now and
// returns how many were removed. A session expiring exactly at now survives
// until the next sweep; it is unreadable anyway once reads see it expired.
func (s *Store) SweepExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, session := range s.sessions {
		if session.ExpiresAt.Before(now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of tracked sessions, expired or not.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// internal/catalog/schedule.go
package catalog

import (
	"sync"

	"fitnexus/internal/apperr"
	"fitnexus/internal/membership"
)

// Schedule is the in-memory session collection. Reads return copies.
type Schedule struct {
	mu       sync.RWMutex
	sessions []*Session
}

// NewSchedule creates an empty schedule.
func NewSchedule() *Schedule {
	return &Schedule{}
}

// Add appends a session. Key uniqueness is the loader's responsibility.
func (s *Schedule) Add(session Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := session.clone()
	s.sessions = append(s.sessions, &c)
}

// Find returns the first session with the given key.
func (s *Schedule) Find(key SessionKey) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if sess := s.find(key); sess != nil {
		return sess.clone(), true
	}
	return Session{}, false
}

// FindContaining returns the first session whose participants include id.
// Guest rosters are not searched.
func (s *Schedule) FindContaining(id membership.Identity) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sess := range s.sessions {
		if sess.HasParticipant(id) {
			return sess.clone(), true
		}
	}
	return Session{}, false
}

// Containing returns every session whose participants include id.
func (s *Schedule) Containing(id membership.Identity) []Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Session
	for _, sess := range s.sessions {
		if sess.HasParticipant(id) {
			out = append(out, sess.clone())
		}
	}
	return out
}

// Modify applies fn to the first session with the given key. The change is
// kept only when fn returns nil.
func (s *Schedule) Modify(key SessionKey, fn func(*Session) error) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.find(key)
	if sess == nil {
		return Session{}, apperr.New(apperr.CodeSessionNotFound, "%s - class does not exist", key)
	}
	updated := sess.clone()
	if err := fn(&updated); err != nil {
		return Session{}, err
	}
	*sess = updated
	return updated.clone(), nil
}

// List returns the sessions in schedule order.
func (s *Schedule) List() []Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess.clone())
	}
	return out
}

func (s *Schedule) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions) == 0
}

func (s *Schedule) find(key SessionKey) *Session {
	for _, sess := range s.sessions {
		if sess.SessionKey == key {
			return sess
		}
	}
	return nil
}

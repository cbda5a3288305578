// internal/membership/store.go
package membership

import (
	"sort"
	"strings"
	"sync"

	"fitnexus/internal/apperr"
)

// SortKey selects an ordering for Sorted.
type SortKey string

const (
	SortNone         SortKey = ""
	SortByCounty     SortKey = "county"
	SortByExpiration SortKey = "expiration"
	SortByName       SortKey = "name"
)

// ParseSortKey accepts county, expiration, name or an empty string.
func ParseSortKey(s string) (SortKey, error) {
	switch key := SortKey(strings.ToLower(strings.TrimSpace(s))); key {
	case SortNone, SortByCounty, SortByExpiration, SortByName:
		return key, nil
	default:
		return "", apperr.New(apperr.CodeInvalidArgument, "unknown sort key %q", s)
	}
}

// Store is the in-memory member collection. Identities are unique.
// Every read returns copies.
type Store struct {
	mu      sync.RWMutex
	members []Member
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Add appends m unless a member with the same identity exists.
func (s *Store) Add(m Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(m.Identity) >= 0 {
		return apperr.New(apperr.CodeDuplicateIdentity, "%s is already in the member database", m.Identity)
	}
	s.members = append(s.members, m)
	return nil
}

// Remove deletes the first member matching id, keeping the order of the rest.
func (s *Store) Remove(id Identity) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.members = append(s.members[:i], s.members[i+1:]...)
	return true
}

// Find returns a copy of the member matching id.
func (s *Store) Find(id Identity) (Member, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return Member{}, false
	}
	return s.members[i], true
}

// Update applies fn to the stored member matching id. The change is kept
// only when fn returns nil.
func (s *Store) Update(id Identity, fn func(*Member) error) (Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Member{}, apperr.New(apperr.CodeMemberNotFound, "%s is not in the member database", id)
	}
	updated := s.members[i]
	if err := fn(&updated); err != nil {
		return Member{}, err
	}
	s.members[i] = updated
	return updated, nil
}

func (s *Store) IsEmpty() bool {
	return s.Len() == 0
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.members)
}

// List returns the members in insertion order.
func (s *Store) List() []Member {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Member, len(s.members))
	copy(out, s.members)
	return out
}

// Sorted returns the members ordered by key. The stored order is untouched.
func (s *Store) Sorted(key SortKey) []Member {
	out := s.List()
	switch key {
	case SortByCounty:
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i].Location, out[j].Location
			if a.County() != b.County() {
				return a.County() < b.County()
			}
			return a.ZipCode() < b.ZipCode()
		})
	case SortByExpiration:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Expiration.Before(out[j].Expiration)
		})
	case SortByName:
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i].Key(), out[j].Key()
			if a.LastName != b.LastName {
				return a.LastName < b.LastName
			}
			return a.FirstName < b.FirstName
		})
	}
	return out
}

func (s *Store) indexOf(id Identity) int {
	key := id.Key()
	for i := range s.members {
		if s.members[i].Key() == key {
			return i
		}
	}
	return -1
}

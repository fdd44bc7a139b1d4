package cart

import (
	"sync"
	"time"
)

// Store holds one cart per session. Carts live for the lifetime of the
// process only; there is no persistence across restarts. Sessions that go
// quiet are reaped through PruneIdle so the map does not grow unbounded.
type Store struct {
	mu       sync.Mutex
	carts    map[string]*Cart
	lastSeen map[string]time.Time
	now      func() time.Time
}

// NewStore creates an empty cart store.
func NewStore() *Store {
	return &Store{
		carts:    make(map[string]*Cart),
		lastSeen: make(map[string]time.Time),
		now:      time.Now,
	}
}

// Get returns the cart for the session, creating it on first touch.
func (s *Store) Get(sessionID string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[sessionID]
	if !ok {
		c = New()
		s.carts[sessionID] = c
	}
	s.lastSeen[sessionID] = s.now()
	return c
}

// Drop discards the cart for the session, if any.
func (s *Store) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	delete(s.lastSeen, sessionID)
}

// PruneIdle discards carts not touched within maxIdle and reports how many
// were dropped. An evicted session starts over with an empty cart on its
// next request.
func (s *Store) PruneIdle(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxIdle)
	pruned := 0
	for id, seen := range s.lastSeen {
		if seen.Before(cutoff) {
			delete(s.carts, id)
			delete(s.lastSeen, id)
			pruned++
		}
	}
	return pruned
}

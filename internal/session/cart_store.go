package session

import (
	"sync"

	"sklep/internal/apperr"
	"sklep/internal/models"
)

// CartStore holds one cart per visitor, keyed by the opaque visitor ID the
// session cookie carries. Carts hold item snapshots, not live catalog
// references, and live only as long as the visitor's session.
type CartStore struct {
	carts map[string][]models.CartEntry
	mu    sync.RWMutex
}

// NewCartStore creates an empty CartStore.
func NewCartStore() *CartStore {
	return &CartStore{
		carts: make(map[string][]models.CartEntry),
	}
}

// Append adds a snapshot to the end of the visitor's cart. Adding the same
// item again appends another entry; there is no quantity field.
func (s *CartStore) Append(visitorID string, entry models.CartEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[visitorID] = append(s.carts[visitorID], entry)
}

// RemoveAt deletes the entry at the given position.
func (s *CartStore) RemoveAt(visitorID string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.carts[visitorID]
	if index < 0 || index >= len(cart) {
		return apperr.ErrIndexOutOfRange
	}
	s.carts[visitorID] = append(cart[:index], cart[index+1:]...)
	return nil
}

// Clear empties the visitor's cart.
func (s *CartStore) Clear(visitorID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, visitorID)
}

// Entries returns a copy of the visitor's cart in add order.
func (s *CartStore) Entries(visitorID string) []models.CartEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart := s.carts[visitorID]
	entries := make([]models.CartEntry, len(cart))
	copy(entries, cart)
	return entries
}

// Total sums the snapshot prices. The result is not rounded here; rounding
// happens exactly once, when the order total is computed.
func (s *CartStore) Total(visitorID string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total float64
	for _, entry := range s.carts[visitorID] {
		total += entry.Price
	}
	return total
}

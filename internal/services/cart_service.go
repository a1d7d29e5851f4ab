package services

import (
	"fmt"

	"sklep/internal/apperr"
	"sklep/internal/models"
	"sklep/internal/repositories"
	"sklep/internal/session"
)

// CartService handles cart operations for one visitor at a time. Every call
// takes the opaque visitor ID the session middleware established; there is
// no shared cart.
type CartService struct {
	carts    *session.CartStore
	itemRepo repositories.ItemRepository
}

// NewCartService creates a new CartService.
func NewCartService(carts *session.CartStore, itemRepo repositories.ItemRepository) *CartService {
	return &CartService{carts: carts, itemRepo: itemRepo}
}

// AddItem snapshots the item and appends it amount times. Each add is its
// own entry; there is no quantity on an entry. Hidden items are not
// addable, same as they are not listed.
func (s *CartService) AddItem(visitorID string, itemID uint, amount int) ([]models.CartEntry, error) {
	item, err := s.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if !item.Visible {
		return nil, fmt.Errorf("item %d: %w", itemID, apperr.ErrNotFound)
	}
	if amount < 1 {
		amount = 1
	}
	snapshot := item.Snapshot()
	for i := 0; i < amount; i++ {
		s.carts.Append(visitorID, snapshot)
	}
	return s.carts.Entries(visitorID), nil
}

// RemoveAt drops the cart entry at the given position.
func (s *CartService) RemoveAt(visitorID string, index int) error {
	return s.carts.RemoveAt(visitorID, index)
}

// Clear empties the visitor's cart.
func (s *CartService) Clear(visitorID string) {
	s.carts.Clear(visitorID)
}

// View returns the cart entries in add order together with the running sum
// of snapshot prices.
func (s *CartService) View(visitorID string) ([]models.CartEntry, float64) {
	return s.carts.Entries(visitorID), s.carts.Total(visitorID)
}

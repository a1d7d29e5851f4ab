package repositories

import (
	"sync"

	"sklep/internal/apperr"
	"sklep/internal/models"
)

// MockItemRepository is an in-memory implementation of ItemRepository.
type MockItemRepository struct {
	items  map[uint]models.Item
	nextID uint
	mu     sync.RWMutex
}

// NewMockItemRepository creates a new instance of MockItemRepository.
func NewMockItemRepository() *MockItemRepository {
	return &MockItemRepository{
		items:  make(map[uint]models.Item),
		nextID: 1,
	}
}

// GetAll returns catalog items, hidden ones only when asked for.
func (r *MockItemRepository) GetAll(includeHidden bool) ([]models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	itemList := make([]models.Item, 0, len(r.items))
	for _, item := range r.items {
		if !includeHidden && !item.Visible {
			continue
		}
		itemList = append(itemList, item)
	}
	return itemList, nil
}

// GetByID returns an item by its ID.
func (r *MockItemRepository) GetByID(id uint) (*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &item, nil
}

// FindByEANCode returns the item carrying the given EAN code, if any.
func (r *MockItemRepository) FindByEANCode(code int64) (*models.Item, error) {
	return r.find(func(i models.Item) bool { return i.EANCode == code })
}

// FindByManufacturerCode returns the item carrying the given manufacturer
// code, if any.
func (r *MockItemRepository) FindByManufacturerCode(code string) (*models.Item, error) {
	return r.find(func(i models.Item) bool { return i.ManufacturerCode == code })
}

// FindByShopCode returns the item carrying the given shop code, if any.
func (r *MockItemRepository) FindByShopCode(code int64) (*models.Item, error) {
	return r.find(func(i models.Item) bool { return i.ShopCode == code })
}

func (r *MockItemRepository) find(match func(models.Item) bool) (*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if match(item) {
			found := item
			return &found, nil
		}
	}
	return nil, apperr.ErrNotFound
}

// Create adds a new item, assigning an ID when missing.
func (r *MockItemRepository) Create(item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == 0 {
		item.ID = r.nextID
	}
	if item.ID >= r.nextID {
		r.nextID = item.ID + 1
	}
	r.items[item.ID] = *item
	return nil
}

// Update modifies an existing item.
func (r *MockItemRepository) Update(item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return apperr.ErrNotFound
	}
	r.items[item.ID] = *item
	return nil
}

// Delete removes an item by ID. It exists for test cleanup only; the service
// layer never retires items except through the visibility flag.
func (r *MockItemRepository) Delete(id uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
}

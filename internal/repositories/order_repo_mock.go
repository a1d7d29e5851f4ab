package repositories

import (
	"sort"
	"sync"

	"sklep/internal/apperr"
	"sklep/internal/models"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders     map[uint]models.Order
	nextID     uint
	nextLineID uint
	mu         sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders:     make(map[uint]models.Order),
		nextID:     1,
		nextLineID: 1,
	}
}

// GetAll returns all orders sorted by status ascending.
func (r *MockOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orderList = append(orderList, order)
	}
	sort.Slice(orderList, func(i, j int) bool {
		return orderList[i].Status < orderList[j].Status
	})
	return orderList, nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id uint) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &order, nil
}

// CreateWithLines stores the header and lines as one unit. The map write
// happens once, so a partially written order is never observable.
func (r *MockOrderRepository) CreateWithLines(order *models.Order, lines []models.OrderLineEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == 0 {
		order.ID = r.nextID
		r.nextID++
	}
	for i := range lines {
		lines[i].ID = r.nextLineID
		lines[i].OrderID = order.ID
		r.nextLineID++
	}
	order.Lines = lines
	r.orders[order.ID] = *order
	return nil
}

// AdvanceStatus increments the status of an order by one.
func (r *MockOrderRepository) AdvanceStatus(id uint) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return 0, apperr.ErrNotFound
	}
	order.Status++
	r.orders[id] = order
	return order.Status, nil
}

// UpdateDetails overwrites purchaser and address fields of an order.
func (r *MockOrderRepository) UpdateDetails(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.orders[order.ID]
	if !ok {
		return apperr.ErrNotFound
	}
	stored.Name = order.Name
	stored.Surname = order.Surname
	stored.Email = order.Email
	stored.Country = order.Country
	stored.City = order.City
	stored.Street = order.Street
	stored.HouseNumber = order.HouseNumber
	stored.ZipCode = order.ZipCode
	r.orders[order.ID] = stored
	return nil
}

package repositories

import "sklep/internal/models"

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// GetAll returns all orders ordered by status ascending, the way the
	// admin dashboard lists them.
	GetAll() ([]models.Order, error)
	GetByID(id uint) (*models.Order, error)
	// CreateWithLines persists the order header and its line entries as one
	// atomic unit. An order with zero lines must never survive a partial
	// failure.
	CreateWithLines(order *models.Order, lines []models.OrderLineEntry) error
	// AdvanceStatus increments the order status by exactly one and returns
	// the new value. There is no other status mutation path.
	AdvanceStatus(id uint) (int, error)
	// UpdateDetails overwrites purchaser and address fields only. Status and
	// total are deliberately not writable through this method.
	UpdateDetails(order *models.Order) error
}

package repositories

import (
	"errors"
	"fmt"

	"sklep/internal/apperr"
	"sklep/internal/models"

	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

// GetAll retrieves all orders sorted by status ascending.
func (r *GORMOrderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Lines").Order("status asc").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	return orders, nil
}

// GetByID retrieves a single order with its line entries.
func (r *GORMOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Lines").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %d: %w", id, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order %d: %w", id, err)
	}
	return &order, nil
}

// CreateWithLines persists the header and every line entry in one
// transaction. If any line insert fails the header is rolled back, so a
// zero-line order can never be observed.
func (r *GORMOrderRepository) CreateWithLines(order *models.Order, lines []models.OrderLineEntry) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for i := range lines {
			lines[i].OrderID = order.ID
			if err := tx.Create(&lines[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	order.Lines = lines
	return nil
}

// AdvanceStatus atomically increments the status column and returns the new
// value.
func (r *GORMOrderRepository) AdvanceStatus(id uint) (int, error) {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).
		UpdateColumn("status", gorm.Expr("status + 1"))
	if res.Error != nil {
		return 0, fmt.Errorf("failed to advance order %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, fmt.Errorf("order %d: %w", id, apperr.ErrNotFound)
	}
	var order models.Order
	if err := r.db.Select("status").First(&order, "id = ?", id).Error; err != nil {
		return 0, fmt.Errorf("failed to read back order %d: %w", id, err)
	}
	return order.Status, nil
}

// UpdateDetails overwrites the purchaser and address columns only.
func (r *GORMOrderRepository) UpdateDetails(order *models.Order) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", order.ID).
		Select("name", "surname", "email", "country", "city", "street", "house_number", "zip_code").
		Updates(order)
	if res.Error != nil {
		return fmt.Errorf("failed to update order %d: %w", order.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order %d: %w", order.ID, apperr.ErrNotFound)
	}
	return nil
}

package repositories

import (
	"errors"
	"fmt"

	"sklep/internal/apperr"
	"sklep/internal/models"

	"gorm.io/gorm"
)

// GORMItemRepository is a GORM implementation of ItemRepository.
type GORMItemRepository struct {
	db *gorm.DB
}

// NewGORMItemRepository creates a new instance of GORMItemRepository.
func NewGORMItemRepository(db *gorm.DB) *GORMItemRepository {
	return &GORMItemRepository{db: db}
}

// GetAll retrieves catalog items, hidden ones only when asked for.
func (r *GORMItemRepository) GetAll(includeHidden bool) ([]models.Item, error) {
	var items []models.Item
	query := r.db
	if !includeHidden {
		query = query.Where("visible = ?", true)
	}
	if err := query.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	return items, nil
}

// GetByID retrieves a single item by its ID.
func (r *GORMItemRepository) GetByID(id uint) (*models.Item, error) {
	var item models.Item
	if err := r.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("item %d: %w", id, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get item %d: %w", id, err)
	}
	return &item, nil
}

// FindByEANCode retrieves the item carrying the given EAN code, if any.
func (r *GORMItemRepository) FindByEANCode(code int64) (*models.Item, error) {
	return r.findBy("ean_code = ?", code)
}

// FindByManufacturerCode retrieves the item carrying the given manufacturer
// code, if any.
func (r *GORMItemRepository) FindByManufacturerCode(code string) (*models.Item, error) {
	return r.findBy("manufacturer_code = ?", code)
}

// FindByShopCode retrieves the item carrying the given shop code, if any.
func (r *GORMItemRepository) FindByShopCode(code int64) (*models.Item, error) {
	return r.findBy("shop_code = ?", code)
}

func (r *GORMItemRepository) findBy(cond string, value interface{}) (*models.Item, error) {
	var item models.Item
	if err := r.db.First(&item, cond, value).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up item: %w", err)
	}
	return &item, nil
}

// Create inserts a new catalog item.
func (r *GORMItemRepository) Create(item *models.Item) error {
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

// Update saves all fields of an existing item.
func (r *GORMItemRepository) Update(item *models.Item) error {
	res := r.db.Save(item)
	if res.Error != nil {
		return fmt.Errorf("failed to update item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("item %d: %w", item.ID, apperr.ErrNotFound)
	}
	return nil
}

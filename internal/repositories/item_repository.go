package repositories

import "sklep/internal/models"

// ItemRepository defines the interface for catalog data access.
//
// The three FindBy lookups exist so the service can check each business code
// independently before an insert. The check and the insert are not atomic
// with respect to concurrent admins; the storage-level unique indexes are the
// backstop for that race.
type ItemRepository interface {
	GetAll(includeHidden bool) ([]models.Item, error)
	GetByID(id uint) (*models.Item, error)
	FindByEANCode(code int64) (*models.Item, error)
	FindByManufacturerCode(code string) (*models.Item, error)
	FindByShopCode(code int64) (*models.Item, error)
	Create(item *models.Item) error
	Update(item *models.Item) error
}

package repositories

import "sklep/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	// Count backs the bootstrap-admin rule: the first registered user ever
	// becomes an administrator.
	Count() (int64, error)
}

package repositories

import (
	"errors"
	"fmt"

	"sklep/internal/apperr"
	"sklep/internal/models"

	"gorm.io/gorm"
)

// GORMSubscriberRepository is a GORM implementation of SubscriberRepository.
type GORMSubscriberRepository struct {
	db *gorm.DB
}

// NewGORMSubscriberRepository creates a new instance of
// GORMSubscriberRepository.
func NewGORMSubscriberRepository(db *gorm.DB) *GORMSubscriberRepository {
	return &GORMSubscriberRepository{db: db}
}

// Create appends a new subscriber.
func (r *GORMSubscriberRepository) Create(sub *models.NewsletterSubscriber) error {
	if err := r.db.Create(sub).Error; err != nil {
		return fmt.Errorf("failed to create subscriber: %w", err)
	}
	return nil
}

// GetByEmail retrieves a subscriber by email.
func (r *GORMSubscriberRepository) GetByEmail(email string) (*models.NewsletterSubscriber, error) {
	var sub models.NewsletterSubscriber
	if err := r.db.First(&sub, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get subscriber %s: %w", email, err)
	}
	return &sub, nil
}

package repositories

import "sklep/internal/models"

// SubscriberRepository defines the interface for newsletter opt-in records.
// The list is append-only; the core never mutates or removes subscribers.
type SubscriberRepository interface {
	Create(sub *models.NewsletterSubscriber) error
	GetByEmail(email string) (*models.NewsletterSubscriber, error)
}

package services

import (
	"errors"
	"fmt"
	"time"

	"sklep/internal/apperr"
	"sklep/internal/models"
	"sklep/internal/repositories"
)

// NewsletterService appends opt-in subscribers. The list is append-only; the
// core never mutates or removes entries.
type NewsletterService struct {
	repo repositories.SubscriberRepository
}

// NewNewsletterService creates a new NewsletterService.
func NewNewsletterService(repo repositories.SubscriberRepository) *NewsletterService {
	return &NewsletterService{repo: repo}
}

// Subscribe records an opt-in. A repeated opt-in for the same email fails
// with a duplicate error and leaves the original join date untouched.
func (s *NewsletterService) Subscribe(email string) (*models.NewsletterSubscriber, error) {
	if existing, err := s.repo.GetByEmail(email); err == nil && existing != nil {
		return nil, &apperr.DuplicateEmailError{Email: email}
	} else if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up subscriber: %w", err)
	}

	sub := &models.NewsletterSubscriber{
		Email:    email,
		JoinedAt: time.Now(),
	}
	if err := s.repo.Create(sub); err != nil {
		return nil, fmt.Errorf("failed to subscribe %s: %w", email, err)
	}
	return sub, nil
}

package services_test

import (
	"testing"

	"sklep/internal/apperr"
	"sklep/internal/models"
	"sklep/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockSubscriberRepository is a mock implementation of
// repositories.SubscriberRepository.
type MockSubscriberRepository struct {
	mock.Mock
}

func (m *MockSubscriberRepository) Create(sub *models.NewsletterSubscriber) error {
	args := m.Called(sub)
	return args.Error(0)
}

func (m *MockSubscriberRepository) GetByEmail(email string) (*models.NewsletterSubscriber, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NewsletterSubscriber), args.Error(1)
}

func TestNewsletterService_Subscribe(t *testing.T) {
	mockRepo := new(MockSubscriberRepository)
	svc := services.NewNewsletterService(mockRepo)

	mockRepo.On("GetByEmail", "ada@example.com").Return(nil, apperr.ErrNotFound).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.NewsletterSubscriber")).Return(nil).Once()

	sub, err := svc.Subscribe("ada@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "ada@example.com", sub.Email)
	assert.False(t, sub.JoinedAt.IsZero())
	mockRepo.AssertExpectations(t)
}

func TestNewsletterService_Subscribe_Duplicate(t *testing.T) {
	mockRepo := new(MockSubscriberRepository)
	svc := services.NewNewsletterService(mockRepo)

	mockRepo.On("GetByEmail", "ada@example.com").
		Return(&models.NewsletterSubscriber{ID: 1, Email: "ada@example.com"}, nil).Once()

	_, err := svc.Subscribe("ada@example.com")
	var dup *apperr.DuplicateEmailError
	assert.ErrorAs(t, err, &dup)
	mockRepo.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

package services_test

import (
	"log"
	"os"
	"testing"
	"time"

	"sklep/internal/apperr"
	"sklep/internal/models"
	"sklep/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func TestMain(m *testing.M) {
	log.SetOutput(os.Stdout)
	os.Exit(m.Run())
}

func TestAuthService_RegisterUser_BootstrapAdmin(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	// The first registration ever lands as an administrator.
	first := &models.User{Name: "Ada", Surname: "First", Email: "ada@example.com", Password: "password123"}
	mockRepo.On("GetByEmail", first.Email).Return(nil, apperr.ErrNotFound).Once()
	mockRepo.On("Count").Return(int64(0), nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	err := authService.RegisterUser(first)
	assert.NoError(t, err)
	assert.Equal(t, models.PermissionAdmin, first.PermissionLevel)

	// Every later one is an ordinary shopper.
	second := &models.User{Name: "Bob", Surname: "Second", Email: "bob@example.com", Password: "password123"}
	mockRepo.On("GetByEmail", second.Email).Return(nil, apperr.ErrNotFound).Once()
	mockRepo.On("Count").Return(int64(1), nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	err = authService.RegisterUser(second)
	assert.NoError(t, err)
	assert.Equal(t, models.PermissionShopper, second.PermissionLevel)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterUser_HashesPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	user := &models.User{Name: "Ada", Surname: "First", Email: "ada@example.com", Password: "password123"}
	mockRepo.On("GetByEmail", user.Email).Return(nil, apperr.ErrNotFound).Once()
	mockRepo.On("Count").Return(int64(0), nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	err := authService.RegisterUser(user)
	assert.NoError(t, err)
	assert.NotEqual(t, "password123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterUser_DuplicateEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	user := &models.User{Name: "Ada", Surname: "First", Email: "ada@example.com", Password: "password123"}
	mockRepo.On("GetByEmail", user.Email).Return(&models.User{ID: 1}, nil).Once()

	err := authService.RegisterUser(user)
	var dup *apperr.DuplicateEmailError
	if assert.ErrorAs(t, err, &dup) {
		assert.Equal(t, "ada@example.com", dup.Email)
	}
	mockRepo.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	secret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, secret)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:              7,
		Email:           "ada@example.com",
		Name:            "Ada",
		Surname:         "First",
		Password:        string(hashedPassword),
		PermissionLevel: models.PermissionAdmin,
	}

	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	token, err := authService.LoginUser(user.Email, "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, float64(7), claims["user_id"])
	assert.Equal(t, "ada@example.com", claims["email"])
	assert.Equal(t, float64(models.PermissionAdmin), claims["permission_level"])

	// Wrong password.
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	_, err = authService.LoginUser(user.Email, "wrongpassword")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)

	// Unknown email collapses into the same failure.
	mockRepo.On("GetByEmail", "nobody@example.com").Return(nil, apperr.ErrNotFound).Once()
	_, err = authService.LoginUser("nobody@example.com", "password123")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	secret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, secret)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":          7,
		"email":            "ada@example.com",
		"permission_level": models.PermissionShopper,
		"exp":              time.Now().Add(time.Hour).Unix(),
	})
	validToken, _ := token.SignedString([]byte(secret))

	claims, err := authService.ValidateToken(validToken)
	assert.NoError(t, err)
	assert.Equal(t, "ada@example.com", claims["email"])

	_, err = authService.ValidateToken("not.a.token")
	assert.Error(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 7,
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	expiredToken, _ := expired.SignedString([]byte(secret))
	_, err = authService.ValidateToken(expiredToken)
	assert.Error(t, err)
}

package services_test

import (
	"fmt"
	"testing"
	"time"

	"bakery/internal/models"
	"bakery/internal/services"
	pkgerrors "bakery/pkg/errors"
	"bakery/pkg/logger"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockStaffRepository is a mock implementation of repositories.StaffRepository
type MockStaffRepository struct {
	mock.Mock
}

func (m *MockStaffRepository) Create(staff *models.Staff) error {
	args := m.Called(staff)
	return args.Error(0)
}

func (m *MockStaffRepository) GetByUsername(username string) (*models.Staff, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Staff), args.Error(1)
}

func (m *MockStaffRepository) GetByID(id string) (*models.Staff, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Staff), args.Error(1)
}

func TestAuthService_RegisterStaff(t *testing.T) {
	mockRepo := new(MockStaffRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret", logger.Nop())

	notFound := pkgerrors.New(pkgerrors.CodeNotFound, "not found")

	// Test successful registration
	mockRepo.On("GetByUsername", "hanako").Return(nil, notFound).Once()
	mockRepo.On("Create", mock.MatchedBy(func(s *models.Staff) bool {
		return s.Username == "hanako" && bcrypt.CompareHashAndPassword([]byte(s.Password), []byte("melonpan")) == nil
	})).Return(nil).Once()

	staff, err := authService.RegisterStaff("hanako", "melonpan")
	assert.NoError(t, err)
	assert.Equal(t, "hanako", staff.Username)
	assert.NotEqual(t, "melonpan", staff.Password)
	mockRepo.AssertExpectations(t)

	// Test username already taken
	mockRepo.On("GetByUsername", "hanako").Return(&models.Staff{ID: "1"}, nil).Once()
	_, err = authService.RegisterStaff("hanako", "melonpan")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))
	assert.Contains(t, err.Error(), "username 'hanako' already taken")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockStaffRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, testJWTSecret, logger.Nop())

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("melonpan"), bcrypt.DefaultCost)
	staff := &models.Staff{
		ID:       "staff-123",
		Username: "hanako",
		Password: string(hashedPassword),
	}

	// Test successful login
	mockRepo.On("GetByUsername", staff.Username).Return(staff, nil).Once()
	token, err := authService.Login("hanako", "melonpan")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, staff.ID, claims["staff_id"])
	assert.Equal(t, staff.Username, claims["username"])

	// Test wrong password
	mockRepo.On("GetByUsername", staff.Username).Return(staff, nil).Once()
	_, err = authService.Login("hanako", "wrong")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))
	assert.Contains(t, err.Error(), "invalid credentials")

	// Test unknown staff
	mockRepo.On("GetByUsername", "nobody").Return(nil, fmt.Errorf("record not found")).Once()
	_, err = authService.Login("nobody", "melonpan")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))

	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	authService := services.NewAuthService(new(MockStaffRepository), "test_jwt_secret", logger.Nop())

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"staff_id": "staff-123",
		"exp":      time.Now().Add(-time.Hour).Unix(),
	})
	expiredToken, _ := expired.SignedString([]byte("test_jwt_secret"))

	otherKey := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"staff_id": "staff-123",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	otherKeyToken, _ := otherKey.SignedString([]byte("another_secret"))

	for name, token := range map[string]string{
		"expired":     expiredToken,
		"wrong key":   otherKeyToken,
		"malformed":   "not-a-token",
		"empty token": "",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := authService.ValidateToken(token)
			assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))
		})
	}
}

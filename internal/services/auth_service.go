package services

import (
	"fmt"
	"time"

	"bakery/internal/models"
	"bakery/internal/repositories"
	pkgerrors "bakery/pkg/errors"

	"github.com/dgrijalva/jwt-go"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles cashier accounts and terminal sessions.
type AuthService struct {
	staffRepo repositories.StaffRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	log       zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(staffRepo repositories.StaffRepository, jwtSecret string, log zerolog.Logger) *AuthService {
	return &AuthService{
		staffRepo: staffRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  12 * time.Hour, // One shift
		log:       log.With().Str("component", "auth").Logger(),
	}
}

// RegisterStaff creates a cashier account with a hashed password.
func (s *AuthService) RegisterStaff(username, password string) (*models.Staff, error) {
	if existing, err := s.staffRepo.GetByUsername(username); err == nil && existing != nil {
		return nil, pkgerrors.Newf(pkgerrors.CodeConflict, "username '%s' already taken", username)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	staff := &models.Staff{Username: username, Password: string(hashedPassword)}
	if err := s.staffRepo.Create(staff); err != nil {
		return nil, fmt.Errorf("failed to register staff: %w", err)
	}
	s.log.Info().Str("staff_id", staff.ID).Str("username", username).Msg("staff registered")
	return staff, nil
}

// Login authenticates a cashier and returns a signed token.
func (s *AuthService) Login(username, password string) (string, error) {
	staff, err := s.staffRepo.GetByUsername(username)
	if err != nil {
		// Do not reveal whether the username exists.
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte(password)); err != nil {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"staff_id": staff.ID,
		"username": staff.Username,
		"exp":      now.Add(s.tokenTTL).Unix(),
		"iat":      now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a token, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		s.log.Debug().Err(err).Msg("token validation failed")
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token")
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid token")
}

package services

import (
	"errors"
	"fmt"
	"strings"

	"inkpress/app/models"
	"inkpress/app/repositories"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUnknownEmail = errors.New("no account registered for that email")
	ErrBadPassword  = errors.New("incorrect password")
)

// AuthService handles registration and credential checks
type AuthService struct {
	userRepo repositories.UserRepository
	hashCost int
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repositories.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hashCost: bcrypt.DefaultCost,
	}
}

// NewAuthServiceWithCost creates an AuthService with a custom bcrypt cost.
// Tests use bcrypt.MinCost to stay fast.
func NewAuthServiceWithCost(userRepo repositories.UserRepository, cost int) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hashCost: cost,
	}
}

// Register hashes the password and creates the account. The repository
// decides the role: the first account ever created is the administrator.
// A duplicate email surfaces as repositories.ErrDuplicateEmail with nothing
// persisted.
func (s *AuthService) Register(email, name, password string) (*models.User, error) {
	if err := validateRegistration(email, name, password); err != nil {
		return nil, fmt.Errorf("invalid registration: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login resolves the account by email and verifies the password. The
// password check never mutates anything and fails closed.
func (s *AuthService) Login(email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUnknownEmail
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrBadPassword
	}
	return user, nil
}

// validateRegistration validates the registration form fields
func validateRegistration(email, name, password string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("email is required")
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("email is malformed")
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is required")
	}
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}

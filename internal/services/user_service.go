// filepath: internal/services/user_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"mediacatalog/internal/logging"
	"mediacatalog/internal/models"
	"mediacatalog/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

var _ UserService = (*userService)(nil)

// userService handles registration and login.
type userService struct {
	Repo repository.Repository
	Cost int
}

// NewUserService creates a new UserService.
func NewUserService(repo repository.Repository) *userService {
	return &userService{Repo: repo, Cost: bcrypt.DefaultCost}
}

// Register creates an account. The password is stored as a bcrypt hash.
func (s *userService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: Name, email, and password are required", ErrValidation)
	}
	if len(password) > MaxPasswordBytes {
		return nil, fmt.Errorf("%w: Password must be at most %d bytes", ErrValidation, MaxPasswordBytes)
	}

	logging.Log.Debugf("UserService: Hashing password for '%s'", email)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.Cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.Repo.CreateUser(ctx, &models.User{Name: name, Email: email, PasswordHash: string(hash)})
	if err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return nil, fmt.Errorf("%w: Email already exists", ErrConflict)
		}
		logging.Log.Errorf("UserService: Failed to create user '%s': %v", email, err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

// Login checks the credentials and returns the matching user.
func (s *userService) Login(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: Email and password are required", ErrValidation)
	}

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: User does not exist", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: Incorrect password", ErrUnauthorized)
	}
	return user, nil
}

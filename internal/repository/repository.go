// filepath: internal/repository/repository.go
package repository

import (
	"context"
	"errors"
	"mediacatalog/internal/catalog"
	"mediacatalog/internal/models"
)

var (
	// ErrNotFound is returned when no record matches the requested identifier or email.
	ErrNotFound = errors.New("record not found")
	// ErrUserExists is returned when trying to create a user that already exists.
	ErrUserExists = errors.New("user already exists")
)

// Repository is the persistence contract shared by every store driver.
// Each mutation is atomic: concurrent callers never lose each other's writes.
type Repository interface {
	Close() error

	// Media
	ListMedia(ctx context.Context, q catalog.Query) ([]models.MediaItem, int, error)
	GetMedia(ctx context.Context, id int64) (*models.MediaItem, error)
	// CreateMedia assigns the next identifier (max existing id + 1, or 1).
	CreateMedia(ctx context.Context, item *models.MediaItem) (*models.MediaItem, error)
	// UpdateMedia loads the record, passes it to apply and stores the result,
	// all inside one critical section. If apply fails nothing is written.
	UpdateMedia(ctx context.Context, id int64, apply func(*models.MediaItem) error) (*models.MediaItem, error)
	// DeleteMedia removes the record and returns it.
	DeleteMedia(ctx context.Context, id int64) (*models.MediaItem, error)

	// User
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)

	// Transfer
	Export(ctx context.Context) (*models.Document, error)
	// Import replaces the whole store with doc, keeping media identifiers.
	Import(ctx context.Context, doc *models.Document) error
}

// UserExists checks if a user with the given email exists.
func UserExists(ctx context.Context, r Repository, email string) (bool, error) {
	_, err := r.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

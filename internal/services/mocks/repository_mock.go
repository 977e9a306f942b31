// filepath: internal/services/mocks/repository_mock.go
package mocks

import (
	"context"
	"mediacatalog/internal/catalog"
	"mediacatalog/internal/models"
	"mediacatalog/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of repository.Repository.
// UpdateMedia runs the apply callback against the item given as the first
// return value, like a real store would.
type MockRepository struct {
	mock.Mock
}

var _ repository.Repository = (*MockRepository)(nil)

func (m *MockRepository) Close() error {
	return m.Called().Error(0)
}

func (m *MockRepository) ListMedia(ctx context.Context, q catalog.Query) ([]models.MediaItem, int, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.MediaItem), args.Int(1), args.Error(2)
}

func (m *MockRepository) GetMedia(ctx context.Context, id int64) (*models.MediaItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MediaItem), args.Error(1)
}

func (m *MockRepository) CreateMedia(ctx context.Context, item *models.MediaItem) (*models.MediaItem, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MediaItem), args.Error(1)
}

func (m *MockRepository) UpdateMedia(ctx context.Context, id int64, apply func(*models.MediaItem) error) (*models.MediaItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	item := *args.Get(0).(*models.MediaItem)
	if err := apply(&item); err != nil {
		return nil, err
	}
	return &item, args.Error(1)
}

func (m *MockRepository) DeleteMedia(ctx context.Context, id int64) (*models.MediaItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MediaItem), args.Error(1)
}

func (m *MockRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepository) Export(ctx context.Context) (*models.Document, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Document), args.Error(1)
}

func (m *MockRepository) Import(ctx context.Context, doc *models.Document) error {
	return m.Called(ctx, doc).Error(0)
}

// filepath: internal/services/mocks/media_mock.go
package mocks

import (
	"context"
	"mediacatalog/internal/models"
	"mediacatalog/internal/services"

	"github.com/stretchr/testify/mock"
)

// MockMediaService is a mock implementation of services.MediaService
type MockMediaService struct {
	mock.Mock
}

var _ services.MediaService = (*MockMediaService)(nil)

func (m *MockMediaService) page(args mock.Arguments) (*models.MediaPage, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MediaPage), args.Error(1)
}

func (m *MockMediaService) item(args mock.Arguments) (*models.MediaItem, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MediaItem), args.Error(1)
}

func (m *MockMediaService) ListMedia(ctx context.Context, page, limit int) (*models.MediaPage, error) {
	return m.page(m.Called(ctx, page, limit))
}

func (m *MockMediaService) GetMedia(ctx context.Context, id int64) (*models.MediaItem, error) {
	return m.item(m.Called(ctx, id))
}

func (m *MockMediaService) SearchMedia(ctx context.Context, query string) (*models.MediaPage, error) {
	return m.page(m.Called(ctx, query))
}

func (m *MockMediaService) ListByType(ctx context.Context, segment string, page, limit int) (*models.MediaPage, error) {
	return m.page(m.Called(ctx, segment, page, limit))
}

func (m *MockMediaService) ListByGenre(ctx context.Context, genre string, page, limit int) (*models.MediaPage, error) {
	return m.page(m.Called(ctx, genre, page, limit))
}

func (m *MockMediaService) ListByAuthor(ctx context.Context, author string, page, limit int) (*models.MediaPage, error) {
	return m.page(m.Called(ctx, author, page, limit))
}

func (m *MockMediaService) CreateMedia(ctx context.Context, input models.MediaInput, images models.ImageUploads) (*models.MediaItem, error) {
	return m.item(m.Called(ctx, input, images))
}

func (m *MockMediaService) UpdateMedia(ctx context.Context, id int64, input models.MediaInput, images models.ImageUploads) (*models.MediaItem, error) {
	return m.item(m.Called(ctx, id, input, images))
}

func (m *MockMediaService) DeleteMedia(ctx context.Context, id int64) (*models.MediaItem, error) {
	return m.item(m.Called(ctx, id))
}

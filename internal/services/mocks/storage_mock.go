// filepath: internal/services/mocks/storage_mock.go
package mocks

import (
	"mediacatalog/internal/services"
	"mime/multipart"

	"github.com/stretchr/testify/mock"
)

// MockStorageService mocks the image storage operations
type MockStorageService struct {
	mock.Mock
}

var _ services.ImageStorage = (*MockStorageService)(nil)

func (m *MockStorageService) SaveImage(field string, header *multipart.FileHeader) (string, error) {
	args := m.Called(field, header)
	return args.String(0), args.Error(1)
}

func (m *MockStorageService) DeleteImage(ref string) error {
	args := m.Called(ref)
	return args.Error(0)
}

// filepath: internal/services/mocks/user_mock.go
package mocks

import (
	"context"
	"mediacatalog/internal/models"
	"mediacatalog/internal/services"

	"github.com/stretchr/testify/mock"
)

// MockUserService is a mock implementation of services.UserService
type MockUserService struct {
	mock.Mock
}

// Compile-time check to ensure interface compliance
var _ services.UserService = (*MockUserService)(nil)

func (m *MockUserService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

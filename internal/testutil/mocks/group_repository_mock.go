package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/avelar/wordflash/internal/models"
)

// MockGroupRepository is a mock implementation of repository.GroupRepository
type MockGroupRepository struct {
	mock.Mock
}

func (m *MockGroupRepository) Get(ctx context.Context, id string) (*models.WordGroup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WordGroup), args.Error(1)
}

func (m *MockGroupRepository) List(ctx context.Context) ([]models.WordGroup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WordGroup), args.Error(1)
}

func (m *MockGroupRepository) Insert(ctx context.Context, group models.WordGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockGroupRepository) Update(ctx context.Context, group models.WordGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockGroupRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/avelar/wordflash/internal/models"
)

// MockProgressRepository is a mock implementation of repository.ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) Get(ctx context.Context, wordID string) (*models.ProgressRecord, error) {
	args := m.Called(ctx, wordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProgressRecord), args.Error(1)
}

func (m *MockProgressRepository) Upsert(ctx context.Context, rec models.ProgressRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockProgressRepository) List(ctx context.Context) ([]models.ProgressRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProgressRecord), args.Error(1)
}

func (m *MockProgressRepository) Delete(ctx context.Context, wordID string) error {
	args := m.Called(ctx, wordID)
	return args.Error(0)
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/avelar/wordflash/internal/models"
)

// MockStatsRepository is a mock implementation of repository.StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) GetDaily(ctx context.Context, date string) (*models.DailyStats, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DailyStats), args.Error(1)
}

func (m *MockStatsRepository) UpsertDaily(ctx context.Context, stats models.DailyStats) error {
	args := m.Called(ctx, stats)
	return args.Error(0)
}

func (m *MockStatsRepository) ListDaily(ctx context.Context, from, to string) ([]models.DailyStats, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DailyStats), args.Error(1)
}

func (m *MockStatsRepository) GetStreak(ctx context.Context) (models.StreakData, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.StreakData), args.Error(1)
}

func (m *MockStatsRepository) SaveStreak(ctx context.Context, streak models.StreakData) error {
	args := m.Called(ctx, streak)
	return args.Error(0)
}

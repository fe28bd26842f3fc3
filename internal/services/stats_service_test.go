package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/avelar/wordflash/internal/models"
	"github.com/avelar/wordflash/internal/services"
	"github.com/avelar/wordflash/internal/testutil/mocks"
)

func statsFixture() (*mocks.MockProgressRepository, *mocks.MockStatsRepository, services.StatsService) {
	progressRepo := new(mocks.MockProgressRepository)
	statsRepo := new(mocks.MockStatsRepository)
	progress := services.NewProgressService(progressRepo, statsRepo)
	return progressRepo, statsRepo, services.NewStatsService(progress, statsRepo)
}

func TestOverview_CombinesLedgerTodayAndStreak(t *testing.T) {
	progressRepo, statsRepo, svc := statsFixture()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	past := now.Add(-time.Hour)
	progressRepo.On("List", mock.Anything).Return([]models.ProgressRecord{
		{WordID: "w1", Status: models.StatusNew},
		{WordID: "w2", Status: models.StatusLearning, ReviewCount: 2, SuccessCount: 1, NextReviewAt: &past},
	}, nil)
	statsRepo.On("GetDaily", mock.Anything, "2026-03-10").Return(&models.DailyStats{
		Date:         "2026-03-10",
		CardsStudied: 5,
	}, nil)
	statsRepo.On("GetStreak", mock.Anything).Return(models.StreakData{
		CurrentStreak: 3,
		LongestStreak: 7,
		LastStudyDate: "2026-03-10",
	}, nil)

	overview, err := svc.Overview(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 2, overview.Overall.TotalWords)
	assert.Equal(t, 1, overview.Overall.NewWords)
	assert.Equal(t, 1, overview.Overall.LearningWords)
	assert.Equal(t, 1, overview.Overall.DueForReview)
	assert.Equal(t, 5, overview.Today.CardsStudied)
	assert.Equal(t, 3, overview.Streak.CurrentStreak)
}

func TestHistory_QueriesTheRequestedWindow(t *testing.T) {
	_, statsRepo, svc := statsFixture()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	statsRepo.On("ListDaily", mock.Anything, "2026-03-04", "2026-03-10").Return([]models.DailyStats{
		{Date: "2026-03-08", CardsStudied: 4},
		{Date: "2026-03-10", CardsStudied: 6},
	}, nil)

	history, err := svc.History(context.Background(), 7, now)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "2026-03-08", history[0].Date)
	statsRepo.AssertExpectations(t)
}

func TestHistory_RejectsNonPositiveDays(t *testing.T) {
	_, _, svc := statsFixture()

	_, err := svc.History(context.Background(), 0, time.Now())
	assert.Error(t, err)
}

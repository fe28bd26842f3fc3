package services

import (
	"context"
	"time"

	"github.com/avelar/wordflash/internal/errors"
	"github.com/avelar/wordflash/internal/models"
	"github.com/avelar/wordflash/internal/repository"
)

// Overview is the dashboard payload: ledger totals, today's activity
// and the streak in one shot.
type Overview struct {
	Overall models.OverallStats `json:"overall"`
	Today   models.DailyStats   `json:"today"`
	Streak  models.StreakData   `json:"streak"`
}

// StatsService handles statistics-related business logic
type StatsService interface {
	Overview(ctx context.Context, now time.Time) (*Overview, error)
	History(ctx context.Context, days int, now time.Time) ([]models.DailyStats, error)
}

type statsService struct {
	progress  ProgressService
	statsRepo repository.StatsRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(progress ProgressService, statsRepo repository.StatsRepository) StatsService {
	return &statsService{progress: progress, statsRepo: statsRepo}
}

func (s *statsService) Overview(ctx context.Context, now time.Time) (*Overview, error) {
	overall, err := s.progress.OverallStats(ctx, now)
	if err != nil {
		return nil, err
	}
	today, err := s.progress.TodayStats(ctx, now)
	if err != nil {
		return nil, err
	}
	streak, err := s.progress.Streak(ctx)
	if err != nil {
		return nil, err
	}
	return &Overview{Overall: overall, Today: today, Streak: streak}, nil
}

// History returns the last days of daily aggregates, oldest first. Days
// with no activity are absent, not zero-filled.
func (s *statsService) History(ctx context.Context, days int, now time.Time) ([]models.DailyStats, error) {
	if days < 1 {
		return nil, errors.NewValidationError("days", "must be at least 1")
	}
	from := now.AddDate(0, 0, -(days - 1)).Format("2006-01-02")
	to := now.Format("2006-01-02")
	daily, err := s.statsRepo.ListDaily(ctx, from, to)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return daily, nil
}

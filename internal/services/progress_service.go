package services

import (
	"context"
	"sort"
	"time"

	"github.com/avelar/wordflash/internal/errors"
	"github.com/avelar/wordflash/internal/logger"
	"github.com/avelar/wordflash/internal/models"
	"github.com/avelar/wordflash/internal/repository"
	"github.com/avelar/wordflash/internal/srs"
)

// exportVersion tags the progress export envelope.
const exportVersion = "1"

// ProgressService is the progress ledger: the only writer of spaced
// repetition records, daily aggregates and the study streak.
type ProgressService interface {
	GetOrCreate(ctx context.Context, wordID string) (*models.ProgressRecord, error)
	RecordReview(ctx context.Context, wordID string, result models.ReviewResult, responseTime float64, now time.Time) (*models.ProgressRecord, error)
	DueWords(ctx context.Context, now time.Time) ([]models.ProgressRecord, error)
	RetryReady(ctx context.Context, now time.Time) ([]models.ProgressRecord, error)
	ScheduleRetry(ctx context.Context, wordID string, minutes int) error
	SkipRetry(ctx context.Context, wordID string) error
	Reset(ctx context.Context, wordID string) error
	OverallStats(ctx context.Context, now time.Time) (models.OverallStats, error)
	TodayStats(ctx context.Context, now time.Time) (models.DailyStats, error)
	Streak(ctx context.Context) (models.StreakData, error)
	Export(ctx context.Context, now time.Time) (*models.ProgressExport, error)
	Import(ctx context.Context, export models.ProgressExport) error
}

type progressService struct {
	progressRepo repository.ProgressRepository
	statsRepo    repository.StatsRepository
}

// NewProgressService creates a new ProgressService
func NewProgressService(progressRepo repository.ProgressRepository, statsRepo repository.StatsRepository) ProgressService {
	return &progressService{progressRepo: progressRepo, statsRepo: statsRepo}
}

func (s *progressService) GetOrCreate(ctx context.Context, wordID string) (*models.ProgressRecord, error) {
	rec, err := s.progressRepo.Get(ctx, wordID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if rec != nil {
		return rec, nil
	}

	fresh := models.NewProgressRecord(wordID, time.Now().UTC())
	if err := s.progressRepo.Upsert(ctx, fresh); err != nil {
		return nil, errors.NewInternalError(err)
	}
	return &fresh, nil
}

func (s *progressService) RecordReview(ctx context.Context, wordID string, result models.ReviewResult, responseTime float64, now time.Time) (*models.ProgressRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("progress")

	if !result.Valid() {
		return nil, errors.NewValidationError("result", "must be remember or not-remember")
	}

	rec, err := s.GetOrCreate(ctx, wordID)
	if err != nil {
		return nil, err
	}
	wasNew := rec.Status == models.StatusNew

	updated := srs.Schedule(*rec, result, responseTime, now)
	if err := s.progressRepo.Upsert(ctx, updated); err != nil {
		return nil, errors.NewInternalError(err)
	}
	log.Debug("review recorded: word=%s result=%s interval=%d ease=%.2f",
		wordID, result, updated.CurrentInterval, updated.EaseFactor)

	if err := s.recordDaily(ctx, result, responseTime, wasNew, now); err != nil {
		log.Warn("failed to update daily stats: %v", err)
	}
	return &updated, nil
}

// recordDaily updates the day's aggregates and the streak for one review.
func (s *progressService) recordDaily(ctx context.Context, result models.ReviewResult, responseTime float64, wasNew bool, now time.Time) error {
	date := now.Format("2006-01-02")

	daily, err := s.statsRepo.GetDaily(ctx, date)
	if err != nil {
		return err
	}
	if daily == nil {
		daily = &models.DailyStats{Date: date}
	}

	daily.AverageResponseTime = (daily.AverageResponseTime*float64(daily.CardsStudied) + responseTime) / float64(daily.CardsStudied+1)
	daily.CardsStudied++
	if wasNew {
		daily.NewCards++
	} else {
		daily.ReviewCards++
	}
	if result == models.ResultRemember {
		daily.RememberedCards++
	} else {
		daily.ForgottenCards++
	}
	if err := s.statsRepo.UpsertDaily(ctx, *daily); err != nil {
		return err
	}

	return s.bumpStreak(ctx, now)
}

func (s *progressService) bumpStreak(ctx context.Context, now time.Time) error {
	streak, err := s.statsRepo.GetStreak(ctx)
	if err != nil {
		return err
	}

	date := now.Format("2006-01-02")
	if streak.LastStudyDate == date {
		return nil
	}

	yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")
	if streak.LastStudyDate == yesterday {
		streak.CurrentStreak++
	} else {
		streak.CurrentStreak = 1
	}
	if streak.CurrentStreak > streak.LongestStreak {
		streak.LongestStreak = streak.CurrentStreak
	}
	streak.LastStudyDate = date
	return s.statsRepo.SaveStreak(ctx, streak)
}

// DueWords returns due records, never-reviewed words first, then by
// ascending next review time.
func (s *progressService) DueWords(ctx context.Context, now time.Time) ([]models.ProgressRecord, error) {
	records, err := s.progressRepo.List(ctx)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	var due []models.ProgressRecord
	for _, rec := range records {
		if rec.Status != models.StatusSuspended && rec.IsDue(now) {
			due = append(due, rec)
		}
	}
	sort.SliceStable(due, func(i, j int) bool {
		a, b := due[i], due[j]
		if (a.Status == models.StatusNew) != (b.Status == models.StatusNew) {
			return a.Status == models.StatusNew
		}
		if a.NextReviewAt == nil || b.NextReviewAt == nil {
			return b.NextReviewAt != nil
		}
		return a.NextReviewAt.Before(*b.NextReviewAt)
	})
	return due, nil
}

func (s *progressService) RetryReady(ctx context.Context, now time.Time) ([]models.ProgressRecord, error) {
	records, err := s.progressRepo.List(ctx)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	var ready []models.ProgressRecord
	for _, rec := range records {
		if rec.RetryReady(now) {
			ready = append(ready, rec)
		}
	}
	return ready, nil
}

func (s *progressService) ScheduleRetry(ctx context.Context, wordID string, minutes int) error {
	if minutes < 1 {
		return errors.NewValidationError("minutes", "must be at least 1")
	}
	rec, err := s.GetOrCreate(ctx, wordID)
	if err != nil {
		return err
	}
	deadline := time.Now().UTC().Add(time.Duration(minutes) * time.Minute)
	rec.RetryDeadline = &deadline
	rec.UpdatedAt = time.Now().UTC()
	if err := s.progressRepo.Upsert(ctx, *rec); err != nil {
		return errors.NewInternalError(err)
	}
	return nil
}

// SkipRetry clears the pending retry deadline for one word, or for every
// word when wordID is empty.
func (s *progressService) SkipRetry(ctx context.Context, wordID string) error {
	if wordID != "" {
		rec, err := s.progressRepo.Get(ctx, wordID)
		if err != nil {
			return errors.NewInternalError(err)
		}
		if rec == nil || rec.RetryDeadline == nil {
			return nil
		}
		rec.RetryDeadline = nil
		rec.UpdatedAt = time.Now().UTC()
		if err := s.progressRepo.Upsert(ctx, *rec); err != nil {
			return errors.NewInternalError(err)
		}
		return nil
	}

	records, err := s.progressRepo.List(ctx)
	if err != nil {
		return errors.NewInternalError(err)
	}
	for _, rec := range records {
		if rec.RetryDeadline == nil {
			continue
		}
		rec.RetryDeadline = nil
		rec.UpdatedAt = time.Now().UTC()
		if err := s.progressRepo.Upsert(ctx, rec); err != nil {
			return errors.NewInternalError(err)
		}
	}
	return nil
}

// Reset deletes the record entirely, returning the word to the new pool.
// Resetting a word with no record is an error, not a silent no-op.
func (s *progressService) Reset(ctx context.Context, wordID string) error {
	rec, err := s.progressRepo.Get(ctx, wordID)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if rec == nil {
		return errors.NewNotFoundError("progress record", wordID)
	}
	if err := s.progressRepo.Delete(ctx, wordID); err != nil {
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *progressService) OverallStats(ctx context.Context, now time.Time) (models.OverallStats, error) {
	records, err := s.progressRepo.List(ctx)
	if err != nil {
		return models.OverallStats{}, errors.NewInternalError(err)
	}

	var stats models.OverallStats
	var rateSum float64
	var reviewed int
	for _, rec := range records {
		stats.TotalWords++
		switch rec.Status {
		case models.StatusNew:
			stats.NewWords++
		case models.StatusLearning:
			stats.LearningWords++
		case models.StatusMastered:
			stats.MasteredWords++
		default:
			stats.ReviewWords++
		}
		if rec.Status != models.StatusNew && rec.IsDue(now) {
			stats.DueForReview++
		}
		if rec.ReviewCount > 0 {
			rateSum += rec.SuccessRate()
			reviewed++
		}
	}
	if reviewed > 0 {
		stats.AverageSuccessRate = rateSum / float64(reviewed)
	}
	return stats, nil
}

func (s *progressService) TodayStats(ctx context.Context, now time.Time) (models.DailyStats, error) {
	date := now.Format("2006-01-02")
	daily, err := s.statsRepo.GetDaily(ctx, date)
	if err != nil {
		return models.DailyStats{}, errors.NewInternalError(err)
	}
	if daily == nil {
		return models.DailyStats{Date: date}, nil
	}
	return *daily, nil
}

func (s *progressService) Streak(ctx context.Context) (models.StreakData, error) {
	streak, err := s.statsRepo.GetStreak(ctx)
	if err != nil {
		return models.StreakData{}, errors.NewInternalError(err)
	}
	return streak, nil
}

func (s *progressService) Export(ctx context.Context, now time.Time) (*models.ProgressExport, error) {
	records, err := s.progressRepo.List(ctx)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	daily, err := s.statsRepo.ListDaily(ctx, "0000-01-01", "9999-12-31")
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	streak, err := s.statsRepo.GetStreak(ctx)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return &models.ProgressExport{
		Version:    exportVersion,
		ExportedAt: now,
		Records:    records,
		DailyStats: daily,
		Streak:     streak,
	}, nil
}

func (s *progressService) Import(ctx context.Context, export models.ProgressExport) error {
	log := logger.FromContext(ctx).WithPrefix("progress")

	if export.Version != exportVersion {
		return errors.NewValidationError("version", "unsupported export version")
	}
	for _, rec := range export.Records {
		if rec.WordID == "" {
			return errors.NewValidationError("records", "record without word_id")
		}
		if err := s.progressRepo.Upsert(ctx, rec); err != nil {
			return errors.NewInternalError(err)
		}
	}
	for _, daily := range export.DailyStats {
		if err := s.statsRepo.UpsertDaily(ctx, daily); err != nil {
			return errors.NewInternalError(err)
		}
	}
	if err := s.statsRepo.SaveStreak(ctx, export.Streak); err != nil {
		return errors.NewInternalError(err)
	}
	log.Info("imported %d progress records, %d daily stats", len(export.Records), len(export.DailyStats))
	return nil
}

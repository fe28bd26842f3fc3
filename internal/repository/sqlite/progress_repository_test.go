package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/avelar/wordflash/internal/models"
	"github.com/avelar/wordflash/internal/repository"
	"github.com/avelar/wordflash/internal/repository/sqlite"
	"github.com/avelar/wordflash/internal/testutil"
)

type ProgressRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.ProgressRepository
}

func (s *ProgressRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewProgressRepository(s.db)
}

func (s *ProgressRepositorySuite) TestGetMissingReturnsNil() {
	rec, err := s.repo.Get(context.Background(), "no-such-word")
	s.Require().NoError(err)
	s.Assert().Nil(rec)
}

func (s *ProgressRepositorySuite) TestUpsertInsertsThenUpdates() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	rec := models.NewProgressRecord("w1", now)
	s.Require().NoError(s.repo.Upsert(ctx, rec))

	got, err := s.repo.Get(ctx, "w1")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal("w1", got.WordID)
	s.Assert().Equal(1, got.CurrentInterval)
	s.Assert().Equal(2.5, got.EaseFactor)
	s.Assert().Equal(models.StatusNew, got.Status)
	s.Assert().Nil(got.NextReviewAt)

	next := now.AddDate(0, 0, 6)
	rec.ReviewCount = 2
	rec.SuccessCount = 2
	rec.CurrentInterval = 6
	rec.EaseFactor = 2.6
	rec.LastReviewAt = &now
	rec.NextReviewAt = &next
	rec.LastResult = models.ResultRemember
	rec.Status = models.StatusLearning
	rec.ReviewHistory = []models.ReviewHistoryEntry{
		{Timestamp: now, Result: models.ResultRemember, ResponseTime: 1.5, IntervalBefore: 1, EaseBefore: 2.5},
	}
	s.Require().NoError(s.repo.Upsert(ctx, rec))

	got, err = s.repo.Get(ctx, "w1")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal(2, got.ReviewCount)
	s.Assert().Equal(6, got.CurrentInterval)
	s.Assert().Equal(models.ResultRemember, got.LastResult)
	s.Assert().Equal(models.StatusLearning, got.Status)
	s.Require().NotNil(got.NextReviewAt)
	s.Assert().True(got.NextReviewAt.Equal(next))
	s.Require().Len(got.ReviewHistory, 1)
	s.Assert().Equal(1, got.ReviewHistory[0].IntervalBefore)
	s.Assert().Equal(2.5, got.ReviewHistory[0].EaseBefore)
}

func (s *ProgressRepositorySuite) TestListReturnsAllRecords() {
	ctx := context.Background()
	now := time.Now().UTC()

	for _, id := range []string{"w1", "w2", "w3"} {
		s.Require().NoError(s.repo.Upsert(ctx, models.NewProgressRecord(id, now)))
	}

	records, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Assert().Len(records, 3)
}

func (s *ProgressRepositorySuite) TestDelete() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Upsert(ctx, models.NewProgressRecord("w1", time.Now().UTC())))

	s.Require().NoError(s.repo.Delete(ctx, "w1"))

	rec, err := s.repo.Get(ctx, "w1")
	s.Require().NoError(err)
	s.Assert().Nil(rec)
}

func (s *ProgressRepositorySuite) TestRetryDeadlineRoundTrip() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)
	deadline := now.Add(10 * time.Minute)

	rec := models.NewProgressRecord("w1", now)
	rec.RetryDeadline = &deadline
	s.Require().NoError(s.repo.Upsert(ctx, rec))

	got, err := s.repo.Get(ctx, "w1")
	s.Require().NoError(err)
	s.Require().NotNil(got.RetryDeadline)
	s.Assert().True(got.RetryDeadline.Equal(deadline))

	rec.RetryDeadline = nil
	s.Require().NoError(s.repo.Upsert(ctx, rec))

	got, err = s.repo.Get(ctx, "w1")
	s.Require().NoError(err)
	s.Assert().Nil(got.RetryDeadline)
}

func TestProgressRepositorySuite(t *testing.T) {
	suite.Run(t, new(ProgressRepositorySuite))
}

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

type SessionRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.SessionRepository
}

func (s *SessionRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewSessionRepository(s.db)
}

func sampleSession() models.StudySession {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return models.StudySession{
		ID:             "s1",
		DeckIDs:        []string{"d1"},
		RoundSize:      5,
		NewReviewRatio: 30,
		SessionType:    models.SessionMixed,
		Status:         models.SessionActive,
		OrderedCards: []models.SessionCard{
			{CardID: "c1", Word: "affect", DeckID: "d1", Difficulty: models.DifficultyNew},
			{CardID: "c2", Word: "effect", DeckID: "d1", Difficulty: models.DifficultyHard},
		},
		Cursor:       1,
		CurrentRound: 1,
		TotalRounds:  1,
		RetryQueue: []models.RetryEntry{
			{CardID: "c2", ReadyAt: now.Add(10 * time.Minute)},
		},
		Statistics: models.SessionStatistics{TotalCards: 2, RememberedCards: 1},
		StartedAt:  now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (s *SessionRepositorySuite) TestCurrentEmptyReturnsNil() {
	sess, err := s.repo.Current(context.Background())
	s.Require().NoError(err)
	s.Assert().Nil(sess)
}

func (s *SessionRepositorySuite) TestSaveAndCurrentRoundTrip() {
	ctx := context.Background()
	want := sampleSession()

	s.Require().NoError(s.repo.Save(ctx, want))

	got, err := s.repo.Current(ctx)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal(want.ID, got.ID)
	s.Assert().Equal(want.Cursor, got.Cursor)
	s.Assert().Equal(want.OrderedCards, got.OrderedCards)
	s.Assert().Equal(want.RetryQueue, got.RetryQueue)
	s.Assert().Equal(want.Statistics, got.Statistics)
}

func (s *SessionRepositorySuite) TestSaveOverwritesSingleSlot() {
	ctx := context.Background()

	first := sampleSession()
	s.Require().NoError(s.repo.Save(ctx, first))

	second := sampleSession()
	second.ID = "s2"
	second.Cursor = 2
	s.Require().NoError(s.repo.Save(ctx, second))

	got, err := s.repo.Current(ctx)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal("s2", got.ID)
	s.Assert().Equal(2, got.Cursor)

	var count int
	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM study_sessions`).Scan(&count)
	s.Require().NoError(err)
	s.Assert().Equal(1, count)
}

func (s *SessionRepositorySuite) TestClear() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Save(ctx, sampleSession()))

	s.Require().NoError(s.repo.Clear(ctx))

	sess, err := s.repo.Current(ctx)
	s.Require().NoError(err)
	s.Assert().Nil(sess)
}

func TestSessionRepositorySuite(t *testing.T) {
	suite.Run(t, new(SessionRepositorySuite))
}

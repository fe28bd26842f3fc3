package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/avelar/wordflash/internal/models"
	"github.com/avelar/wordflash/internal/repository"
	"github.com/avelar/wordflash/internal/repository/sqlite"
	"github.com/avelar/wordflash/internal/testutil"
)

type StatsRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.StatsRepository
}

func (s *StatsRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewStatsRepository(s.db)
}

func (s *StatsRepositorySuite) TestGetDailyMissingReturnsNil() {
	ds, err := s.repo.GetDaily(context.Background(), "2026-03-01")
	s.Require().NoError(err)
	s.Assert().Nil(ds)
}

func (s *StatsRepositorySuite) TestUpsertDaily() {
	ctx := context.Background()

	ds := models.DailyStats{
		Date:                "2026-03-01",
		CardsStudied:        10,
		NewCards:            3,
		ReviewCards:         7,
		RememberedCards:     8,
		ForgottenCards:      2,
		AverageResponseTime: 2.4,
	}
	s.Require().NoError(s.repo.UpsertDaily(ctx, ds))

	ds.CardsStudied = 15
	ds.RememberedCards = 12
	s.Require().NoError(s.repo.UpsertDaily(ctx, ds))

	got, err := s.repo.GetDaily(ctx, "2026-03-01")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal(15, got.CardsStudied)
	s.Assert().Equal(12, got.RememberedCards)
	s.Assert().Equal(2.4, got.AverageResponseTime)
}

func (s *StatsRepositorySuite) TestListDailyRange() {
	ctx := context.Background()

	for _, date := range []string{"2026-02-27", "2026-02-28", "2026-03-01", "2026-03-02"} {
		s.Require().NoError(s.repo.UpsertDaily(ctx, models.DailyStats{Date: date, CardsStudied: 1}))
	}

	list, err := s.repo.ListDaily(ctx, "2026-02-28", "2026-03-01")
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Assert().Equal("2026-02-28", list[0].Date)
	s.Assert().Equal("2026-03-01", list[1].Date)
}

func (s *StatsRepositorySuite) TestStreakDefaultsToZero() {
	streak, err := s.repo.GetStreak(context.Background())
	s.Require().NoError(err)
	s.Assert().Equal(0, streak.CurrentStreak)
	s.Assert().Equal(0, streak.LongestStreak)
	s.Assert().Empty(streak.LastStudyDate)
}

func (s *StatsRepositorySuite) TestSaveAndGetStreak() {
	ctx := context.Background()

	want := models.StreakData{CurrentStreak: 4, LongestStreak: 9, LastStudyDate: "2026-03-01"}
	s.Require().NoError(s.repo.SaveStreak(ctx, want))

	got, err := s.repo.GetStreak(ctx)
	s.Require().NoError(err)
	s.Assert().Equal(want, got)

	want.CurrentStreak = 5
	want.LastStudyDate = "2026-03-02"
	s.Require().NoError(s.repo.SaveStreak(ctx, want))

	got, err = s.repo.GetStreak(ctx)
	s.Require().NoError(err)
	s.Assert().Equal(5, got.CurrentStreak)
	s.Assert().Equal("2026-03-02", got.LastStudyDate)
}

func TestStatsRepositorySuite(t *testing.T) {
	suite.Run(t, new(StatsRepositorySuite))
}

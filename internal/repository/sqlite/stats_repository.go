package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/avelar/wordflash/internal/models"
	"github.com/avelar/wordflash/internal/repository"
)

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new StatsRepository implementation.
func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

const dailyStatsColumns = `date, cards_studied, new_cards, review_cards, remembered_cards, forgotten_cards, average_response_time`

func (r *statsRepository) GetDaily(ctx context.Context, date string) (*models.DailyStats, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+dailyStatsColumns+` FROM daily_stats WHERE date = ?`, date)
	ds, err := scanDailyStats(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ds, nil
}

func (r *statsRepository) UpsertDaily(ctx context.Context, ds models.DailyStats) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO daily_stats (`+dailyStatsColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(date) DO UPDATE SET
    cards_studied = excluded.cards_studied,
    new_cards = excluded.new_cards,
    review_cards = excluded.review_cards,
    remembered_cards = excluded.remembered_cards,
    forgotten_cards = excluded.forgotten_cards,
    average_response_time = excluded.average_response_time
`, ds.Date, ds.CardsStudied, ds.NewCards, ds.ReviewCards, ds.RememberedCards, ds.ForgottenCards, ds.AverageResponseTime)
	return err
}

// ListDaily returns stats for dates in [from, to] inclusive, oldest first.
// The YYYY-MM-DD date key sorts lexicographically in calendar order.
func (r *statsRepository) ListDaily(ctx context.Context, from, to string) ([]models.DailyStats, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+dailyStatsColumns+` FROM daily_stats WHERE date >= ? AND date <= ? ORDER BY date ASC`,
		from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.DailyStats
	for rows.Next() {
		ds, err := scanDailyStats(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *ds)
	}
	return out, rows.Err()
}

func (r *statsRepository) GetStreak(ctx context.Context) (models.StreakData, error) {
	var (
		streak   models.StreakData
		lastDate sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT current_streak, longest_streak, last_study_date FROM streak WHERE slot = 'current'`).
		Scan(&streak.CurrentStreak, &streak.LongestStreak, &lastDate)
	if errors.Is(err, sql.ErrNoRows) {
		return models.StreakData{}, nil
	}
	if err != nil {
		return models.StreakData{}, err
	}
	streak.LastStudyDate = lastDate.String
	return streak, nil
}

func (r *statsRepository) SaveStreak(ctx context.Context, streak models.StreakData) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO streak (slot, current_streak, longest_streak, last_study_date)
VALUES ('current', ?, ?, ?)
ON CONFLICT(slot) DO UPDATE SET
    current_streak = excluded.current_streak,
    longest_streak = excluded.longest_streak,
    last_study_date = excluded.last_study_date
`, streak.CurrentStreak, streak.LongestStreak, nullable(streak.LastStudyDate))
	return err
}

func scanDailyStats(row rowScanner) (*models.DailyStats, error) {
	var ds models.DailyStats
	err := row.Scan(&ds.Date, &ds.CardsStudied, &ds.NewCards, &ds.ReviewCards,
		&ds.RememberedCards, &ds.ForgottenCards, &ds.AverageResponseTime)
	if err != nil {
		return nil, err
	}
	return &ds, nil
}

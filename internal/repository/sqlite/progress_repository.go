package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/avelar/wordflash/internal/logger"
	"github.com/avelar/wordflash/internal/models"
	"github.com/avelar/wordflash/internal/repository"
)

type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new ProgressRepository implementation.
func NewProgressRepository(db *sql.DB) repository.ProgressRepository {
	return &progressRepository{db: db}
}

const progressColumns = `word_id, review_count, success_count, failure_count, current_interval,
ease_factor, last_review_at, next_review_at, last_result, status, review_history,
retry_deadline, created_at, updated_at`

func (r *progressRepository) Get(ctx context.Context, wordID string) (*models.ProgressRecord, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+progressColumns+`
FROM progress_records
WHERE word_id = ?
`, wordID)

	rec, err := scanProgress(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *progressRepository) Upsert(ctx context.Context, rec models.ProgressRecord) error {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")

	history, err := marshalJSON(rec.ReviewHistory)
	if err != nil {
		return err
	}

	var lastResult sql.NullString
	if rec.LastResult != "" {
		lastResult = sql.NullString{String: string(rec.LastResult), Valid: true}
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO progress_records (`+progressColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(word_id) DO UPDATE SET
    review_count = excluded.review_count,
    success_count = excluded.success_count,
    failure_count = excluded.failure_count,
    current_interval = excluded.current_interval,
    ease_factor = excluded.ease_factor,
    last_review_at = excluded.last_review_at,
    next_review_at = excluded.next_review_at,
    last_result = excluded.last_result,
    status = excluded.status,
    review_history = excluded.review_history,
    retry_deadline = excluded.retry_deadline,
    updated_at = excluded.updated_at
`, rec.WordID, rec.ReviewCount, rec.SuccessCount, rec.FailureCount, rec.CurrentInterval,
		rec.EaseFactor, rec.LastReviewAt, rec.NextReviewAt, lastResult, string(rec.Status), history,
		rec.RetryDeadline, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		log.Error("failed to upsert progress record for %s: %v", rec.WordID, err)
	}
	return err
}

func (r *progressRepository) List(ctx context.Context) ([]models.ProgressRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+progressColumns+`
FROM progress_records
ORDER BY word_id
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.ProgressRecord
	for rows.Next() {
		rec, err := scanProgress(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func (r *progressRepository) Delete(ctx context.Context, wordID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM progress_records WHERE word_id = ?`, wordID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProgress(row rowScanner) (*models.ProgressRecord, error) {
	var rec models.ProgressRecord
	var lastResult sql.NullString
	var history string
	err := row.Scan(&rec.WordID, &rec.ReviewCount, &rec.SuccessCount, &rec.FailureCount,
		&rec.CurrentInterval, &rec.EaseFactor, &rec.LastReviewAt, &rec.NextReviewAt,
		&lastResult, &rec.Status, &history, &rec.RetryDeadline, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if lastResult.Valid {
		rec.LastResult = models.ReviewResult(lastResult.String)
	}
	if err := unmarshalJSON(history, &rec.ReviewHistory); err != nil {
		return nil, err
	}
	return &rec, nil
}

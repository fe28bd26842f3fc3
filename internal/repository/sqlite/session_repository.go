package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/avelar/wordflash/internal/logger"
	"github.com/avelar/wordflash/internal/models"
	"github.com/avelar/wordflash/internal/repository"
)

// sessionRepository stores the single in-flight session as a JSON payload
// in a one-row table, mirroring the session/current key the rest of the
// system thinks in.
type sessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SessionRepository implementation.
func NewSessionRepository(db *sql.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Current(ctx context.Context) (*models.StudySession, error) {
	var payload string
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM study_sessions WHERE slot = 'current'`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var s models.StudySession
	if err := unmarshalJSON(payload, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepository) Save(ctx context.Context, s models.StudySession) error {
	log := logger.FromContext(ctx).WithPrefix("session_repo")

	payload, err := marshalJSON(s)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
INSERT INTO study_sessions (slot, payload, updated_at)
VALUES ('current', ?, ?)
ON CONFLICT(slot) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
`, payload, time.Now().UTC())
	if err != nil {
		log.Error("failed to save session %s: %v", s.ID, err)
	}
	return err
}

func (r *sessionRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM study_sessions WHERE slot = 'current'`)
	return err
}

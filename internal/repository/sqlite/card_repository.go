package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/avelar/wordflash/internal/logger"
	"github.com/avelar/wordflash/internal/models"
	"github.com/avelar/wordflash/internal/repository"
)

type cardRepository struct {
	db *sql.DB
}

// NewCardRepository creates a new CardRepository implementation.
func NewCardRepository(db *sql.DB) repository.CardRepository {
	return &cardRepository{db: db}
}

const cardColumns = "id, word, translation, part_of_speech, hint, audio_url, cefr, tags, created_at, updated_at"

func (r *cardRepository) Get(ctx context.Context, id string) (*models.WordCard, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+cardColumns+` FROM word_cards WHERE id = ?`, id)
	card, err := scanCard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return card, nil
}

func cardQuery(filter models.CardFilter) squirrel.SelectBuilder {
	query := sqlBuilder.Select().From("word_cards")
	if filter.DeckID != "" {
		query = query.Join("deck_cards ON deck_cards.card_id = word_cards.id").
			Where(squirrel.Eq{"deck_cards.deck_id": filter.DeckID})
	}
	if filter.PartOfSpeech != "" {
		query = query.Where(squirrel.Eq{"part_of_speech": filter.PartOfSpeech})
	}
	if filter.CEFR != "" {
		query = query.Where(squirrel.Eq{"cefr": filter.CEFR})
	}
	if filter.Tag != "" {
		query = query.Where("tags LIKE ?", "%\""+filter.Tag+"\"%")
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where(squirrel.Or{
			squirrel.Like{"word": like},
			squirrel.Like{"translation": like},
		})
	}
	return query
}

func (r *cardRepository) List(ctx context.Context, filter models.CardFilter) ([]models.WordCard, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")

	query := cardQuery(filter).
		Columns("word_cards.id", "word", "translation", "part_of_speech", "hint", "audio_url", "cefr", "tags", "word_cards.created_at", "word_cards.updated_at").
		OrderBy("word ASC")
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list word cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.WordCard
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, *card)
	}
	return cards, rows.Err()
}

func (r *cardRepository) Count(ctx context.Context, filter models.CardFilter) (int, error) {
	sqlStr, args, err := cardQuery(filter).Columns("COUNT(*)").ToSql()
	if err != nil {
		return 0, err
	}
	var count int
	err = r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count)
	return count, err
}

func (r *cardRepository) Insert(ctx context.Context, card models.WordCard) error {
	return r.insert(ctx, r.db, card)
}

func (r *cardRepository) InsertBatch(ctx context.Context, cards []models.WordCard) error {
	return tx(ctx, r.db, func(tx *sql.Tx) error {
		for _, card := range cards {
			if err := r.insert(ctx, tx, card); err != nil {
				return err
			}
		}
		return nil
	})
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *cardRepository) insert(ctx context.Context, ex execer, card models.WordCard) error {
	tags, err := marshalJSON(card.Tags)
	if err != nil {
		return err
	}
	_, err = ex.ExecContext(ctx, `
INSERT INTO word_cards (`+cardColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, card.ID, card.Word, card.Translation, card.PartOfSpeech, nullable(card.Hint),
		nullable(card.AudioURL), nullable(card.CEFR), tags, card.CreatedAt, card.UpdatedAt)
	return err
}

func (r *cardRepository) Update(ctx context.Context, card models.WordCard) error {
	tags, err := marshalJSON(card.Tags)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
UPDATE word_cards
SET word = ?, translation = ?, part_of_speech = ?, hint = ?, audio_url = ?, cefr = ?, tags = ?, updated_at = ?
WHERE id = ?
`, card.Word, card.Translation, card.PartOfSpeech, nullable(card.Hint),
		nullable(card.AudioURL), nullable(card.CEFR), tags, card.UpdatedAt, card.ID)
	return err
}

func (r *cardRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM word_cards WHERE id = ?`, id)
	return err
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func scanCard(row rowScanner) (*models.WordCard, error) {
	var card models.WordCard
	var hint, audioURL, cefr sql.NullString
	var tags string
	err := row.Scan(&card.ID, &card.Word, &card.Translation, &card.PartOfSpeech,
		&hint, &audioURL, &cefr, &tags, &card.CreatedAt, &card.UpdatedAt)
	if err != nil {
		return nil, err
	}
	card.Hint = hint.String
	card.AudioURL = audioURL.String
	card.CEFR = cefr.String
	if err := unmarshalJSON(tags, &card.Tags); err != nil {
		return nil, err
	}
	return &card, nil
}

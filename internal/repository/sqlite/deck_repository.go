package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/avelar/wordflash/internal/logger"
	"github.com/avelar/wordflash/internal/models"
	"github.com/avelar/wordflash/internal/repository"
)

type deckRepository struct {
	db *sql.DB
}

// NewDeckRepository creates a new DeckRepository implementation.
func NewDeckRepository(db *sql.DB) repository.DeckRepository {
	return &deckRepository{db: db}
}

const deckColumns = `decks.id, decks.name, decks.description, decks.category, decks.source,
decks.enabled, COUNT(deck_cards.card_id), decks.created_at, decks.updated_at`

func (r *deckRepository) Get(ctx context.Context, id string) (*models.Deck, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+deckColumns+`
FROM decks
LEFT JOIN deck_cards ON deck_cards.deck_id = decks.id
WHERE decks.id = ?
GROUP BY decks.id
`, id)
	deck, err := scanDeck(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return deck, nil
}

func (r *deckRepository) GetWithCards(ctx context.Context, id string) (*models.DeckWithCards, error) {
	deck, err := r.Get(ctx, id)
	if err != nil || deck == nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT `+cardColumns+`
FROM word_cards
JOIN deck_cards ON deck_cards.card_id = word_cards.id
WHERE deck_cards.deck_id = ?
ORDER BY word ASC
`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := &models.DeckWithCards{Deck: *deck}
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		out.Cards = append(out.Cards, *card)
	}
	return out, rows.Err()
}

func (r *deckRepository) List(ctx context.Context) ([]models.Deck, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+deckColumns+`
FROM decks
LEFT JOIN deck_cards ON deck_cards.deck_id = decks.id
GROUP BY decks.id
ORDER BY decks.name ASC
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var decks []models.Deck
	for rows.Next() {
		deck, err := scanDeck(rows)
		if err != nil {
			return nil, err
		}
		decks = append(decks, *deck)
	}
	return decks, rows.Err()
}

func (r *deckRepository) Insert(ctx context.Context, deck models.Deck) error {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("inserting deck: id=%s name=%s", deck.ID, deck.Name)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO decks (id, name, description, category, source, enabled, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, deck.ID, deck.Name, deck.Description, string(deck.Category), deck.Source, deck.Enabled,
		deck.CreatedAt, deck.UpdatedAt)
	return err
}

func (r *deckRepository) Update(ctx context.Context, deck models.Deck) error {
	_, err := r.db.ExecContext(ctx, `
UPDATE decks
SET name = ?, description = ?, category = ?, source = ?, enabled = ?, updated_at = ?
WHERE id = ?
`, deck.Name, deck.Description, string(deck.Category), deck.Source, deck.Enabled,
		deck.UpdatedAt, deck.ID)
	return err
}

func (r *deckRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM decks WHERE id = ?`, id)
	return err
}

func (r *deckRepository) AddCards(ctx context.Context, deckID string, cardIDs []string) error {
	return tx(ctx, r.db, func(tx *sql.Tx) error {
		for _, cardID := range cardIDs {
			if _, err := tx.ExecContext(ctx, `
INSERT OR IGNORE INTO deck_cards (deck_id, card_id) VALUES (?, ?)
`, deckID, cardID); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *deckRepository) RemoveCard(ctx context.Context, deckID, cardID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM deck_cards WHERE deck_id = ? AND card_id = ?`, deckID, cardID)
	return err
}

func scanDeck(row rowScanner) (*models.Deck, error) {
	var deck models.Deck
	err := row.Scan(&deck.ID, &deck.Name, &deck.Description, &deck.Category, &deck.Source,
		&deck.Enabled, &deck.CardCount, &deck.CreatedAt, &deck.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &deck, nil
}

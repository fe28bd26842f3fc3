package repository

import (
	"context"

	"github.com/avelar/wordflash/internal/models"
)

// ProgressRepository handles spaced-repetition record data access.
// Records are keyed by word ID; missing keys return (nil, nil).
type ProgressRepository interface {
	Get(ctx context.Context, wordID string) (*models.ProgressRecord, error)
	Upsert(ctx context.Context, rec models.ProgressRecord) error
	List(ctx context.Context) ([]models.ProgressRecord, error)
	Delete(ctx context.Context, wordID string) error
}

// CardRepository handles word card data access.
type CardRepository interface {
	Get(ctx context.Context, id string) (*models.WordCard, error)
	List(ctx context.Context, filter models.CardFilter) ([]models.WordCard, error)
	Count(ctx context.Context, filter models.CardFilter) (int, error)
	Insert(ctx context.Context, card models.WordCard) error
	InsertBatch(ctx context.Context, cards []models.WordCard) error
	Update(ctx context.Context, card models.WordCard) error
	Delete(ctx context.Context, id string) error
}

// DeckRepository handles deck data access, including card membership.
type DeckRepository interface {
	Get(ctx context.Context, id string) (*models.Deck, error)
	GetWithCards(ctx context.Context, id string) (*models.DeckWithCards, error)
	List(ctx context.Context) ([]models.Deck, error)
	Insert(ctx context.Context, deck models.Deck) error
	Update(ctx context.Context, deck models.Deck) error
	Delete(ctx context.Context, id string) error
	AddCards(ctx context.Context, deckID string, cardIDs []string) error
	RemoveCard(ctx context.Context, deckID, cardID string) error
}

// GroupRepository handles confusable word group data access.
type GroupRepository interface {
	Get(ctx context.Context, id string) (*models.WordGroup, error)
	List(ctx context.Context) ([]models.WordGroup, error)
	Insert(ctx context.Context, group models.WordGroup) error
	Update(ctx context.Context, group models.WordGroup) error
	Delete(ctx context.Context, id string) error
}

// SessionRepository stores the single in-flight study session. Current
// returns (nil, nil) when no session is stored.
type SessionRepository interface {
	Current(ctx context.Context) (*models.StudySession, error)
	Save(ctx context.Context, s models.StudySession) error
	Clear(ctx context.Context) error
}

// StatsRepository handles daily aggregates and the study streak.
type StatsRepository interface {
	GetDaily(ctx context.Context, date string) (*models.DailyStats, error)
	UpsertDaily(ctx context.Context, stats models.DailyStats) error
	ListDaily(ctx context.Context, from, to string) ([]models.DailyStats, error)
	GetStreak(ctx context.Context) (models.StreakData, error)
	SaveStreak(ctx context.Context, streak models.StreakData) error
}

package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/avelar/wordflash/internal/errors"
	"github.com/avelar/wordflash/internal/logger"
	"github.com/avelar/wordflash/internal/models"
	"github.com/avelar/wordflash/internal/repository"
)

// DeckService handles deck and card management business logic
type DeckService interface {
	ListDecks(ctx context.Context) ([]models.Deck, error)
	GetDeck(ctx context.Context, id string) (*models.DeckWithCards, error)
	CreateDeck(ctx context.Context, deck models.Deck) (*models.Deck, error)
	UpdateDeck(ctx context.Context, deck models.Deck) (*models.Deck, error)
	DeleteDeck(ctx context.Context, id string) error
	AddCards(ctx context.Context, deckID string, cards []models.WordCard) error
	RemoveCard(ctx context.Context, deckID, cardID string) error
	ListCards(ctx context.Context, filter models.CardFilter) ([]models.WordCard, int, error)
}

type deckService struct {
	deckRepo repository.DeckRepository
	cardRepo repository.CardRepository
}

// NewDeckService creates a new DeckService
func NewDeckService(deckRepo repository.DeckRepository, cardRepo repository.CardRepository) DeckService {
	return &deckService{deckRepo: deckRepo, cardRepo: cardRepo}
}

func (s *deckService) ListDecks(ctx context.Context) ([]models.Deck, error) {
	decks, err := s.deckRepo.List(ctx)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return decks, nil
}

func (s *deckService) GetDeck(ctx context.Context, id string) (*models.DeckWithCards, error) {
	deck, err := s.deckRepo.GetWithCards(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", id)
	}
	return deck, nil
}

func (s *deckService) CreateDeck(ctx context.Context, deck models.Deck) (*models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck")

	if deck.ID == "" {
		deck.ID = uuid.NewString()
	}
	if deck.Category == "" {
		deck.Category = models.DeckImported
	}
	now := time.Now().UTC()
	deck.CreatedAt = now
	deck.UpdatedAt = now
	deck.Enabled = true

	if err := deck.Validate(); err != nil {
		return nil, errors.NewValidationError("deck", err.Error())
	}
	if err := s.deckRepo.Insert(ctx, deck); err != nil {
		return nil, errors.NewInternalError(err)
	}
	log.Info("deck created: %s (%s)", deck.Name, deck.ID)
	return &deck, nil
}

func (s *deckService) UpdateDeck(ctx context.Context, deck models.Deck) (*models.Deck, error) {
	existing, err := s.deckRepo.Get(ctx, deck.ID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if existing == nil {
		return nil, errors.NewNotFoundError("deck", deck.ID)
	}

	deck.CreatedAt = existing.CreatedAt
	deck.UpdatedAt = time.Now().UTC()
	if deck.Category == "" {
		deck.Category = existing.Category
	}
	if err := deck.Validate(); err != nil {
		return nil, errors.NewValidationError("deck", err.Error())
	}
	if err := s.deckRepo.Update(ctx, deck); err != nil {
		return nil, errors.NewInternalError(err)
	}
	return &deck, nil
}

func (s *deckService) DeleteDeck(ctx context.Context, id string) error {
	existing, err := s.deckRepo.Get(ctx, id)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if existing == nil {
		return errors.NewNotFoundError("deck", id)
	}
	if err := s.deckRepo.Delete(ctx, id); err != nil {
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *deckService) AddCards(ctx context.Context, deckID string, cards []models.WordCard) error {
	deck, err := s.deckRepo.Get(ctx, deckID)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if deck == nil {
		return errors.NewNotFoundError("deck", deckID)
	}

	now := time.Now().UTC()
	ids := make([]string, 0, len(cards))
	var fresh []models.WordCard
	for i := range cards {
		card := cards[i]
		if card.ID == "" {
			card.ID = uuid.NewString()
		}
		if card.CreatedAt.IsZero() {
			card.CreatedAt = now
			card.UpdatedAt = now
		}
		if err := card.Validate(); err != nil {
			return errors.NewValidationError("card", err.Error())
		}
		existing, err := s.cardRepo.Get(ctx, card.ID)
		if err != nil {
			return errors.NewInternalError(err)
		}
		if existing == nil {
			fresh = append(fresh, card)
		}
		ids = append(ids, card.ID)
	}

	if len(fresh) > 0 {
		if err := s.cardRepo.InsertBatch(ctx, fresh); err != nil {
			return errors.NewInternalError(err)
		}
	}
	if err := s.deckRepo.AddCards(ctx, deckID, ids); err != nil {
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *deckService) RemoveCard(ctx context.Context, deckID, cardID string) error {
	if err := s.deckRepo.RemoveCard(ctx, deckID, cardID); err != nil {
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *deckService) ListCards(ctx context.Context, filter models.CardFilter) ([]models.WordCard, int, error) {
	cards, err := s.cardRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, errors.NewInternalError(err)
	}
	total, err := s.cardRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, errors.NewInternalError(err)
	}
	return cards, total, nil
}

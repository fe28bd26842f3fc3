package services

import (
	"context"
	"encoding/csv"
	"io"
	"strings"

	"github.com/avelar/wordflash/internal/errors"
	"github.com/avelar/wordflash/internal/importer"
	"github.com/avelar/wordflash/internal/logger"
	"github.com/avelar/wordflash/internal/models"
)

// ImportSummary reports one deck import to the caller.
type ImportSummary struct {
	Deck      models.Deck `json:"deck"`
	TotalRows int         `json:"total_rows"`
	Imported  int         `json:"imported"`
	Skipped   int         `json:"skipped"`
	Errors    []string    `json:"errors,omitempty"`
}

// ImportService turns uploaded CSV/XLSX files into decks and exports
// decks back to CSV.
type ImportService interface {
	ImportCSV(ctx context.Context, deckName string, r io.Reader) (*ImportSummary, error)
	ImportXLSX(ctx context.Context, deckName string, r io.Reader) (*ImportSummary, error)
	ExportCSV(ctx context.Context, deckID string, w io.Writer) error
}

type importService struct {
	decks DeckService
}

// NewImportService creates a new ImportService
func NewImportService(decks DeckService) ImportService {
	return &importService{decks: decks}
}

func (s *importService) ImportCSV(ctx context.Context, deckName string, r io.Reader) (*ImportSummary, error) {
	result, err := importer.ParseCSV(r)
	if err != nil {
		return nil, errors.NewBadRequestError(err.Error())
	}
	return s.createDeck(ctx, deckName, result)
}

func (s *importService) ImportXLSX(ctx context.Context, deckName string, r io.Reader) (*ImportSummary, error) {
	result, err := importer.ParseXLSX(r)
	if err != nil {
		return nil, errors.NewBadRequestError(err.Error())
	}
	return s.createDeck(ctx, deckName, result)
}

func (s *importService) createDeck(ctx context.Context, deckName string, result *importer.Result) (*ImportSummary, error) {
	log := logger.FromContext(ctx).WithPrefix("import")

	if len(result.Cards) == 0 {
		return nil, errors.NewValidationError("file", "no importable rows")
	}
	deck, err := s.decks.CreateDeck(ctx, models.Deck{
		Name:     strings.TrimSpace(deckName),
		Category: models.DeckImported,
		Source:   "file",
	})
	if err != nil {
		return nil, err
	}
	if err := s.decks.AddCards(ctx, deck.ID, result.Cards); err != nil {
		return nil, err
	}
	deck.CardCount = len(result.Cards)

	log.Info("imported deck %q: %d cards, %d rows skipped", deck.Name, result.Imported, result.Skipped)
	return &ImportSummary{
		Deck:      *deck,
		TotalRows: result.TotalRows,
		Imported:  result.Imported,
		Skipped:   result.Skipped,
		Errors:    result.Errors,
	}, nil
}

func (s *importService) ExportCSV(ctx context.Context, deckID string, w io.Writer) error {
	deck, err := s.decks.GetDeck(ctx, deckID)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"word", "translation", "part of speech", "hint", "cefr", "tags"}); err != nil {
		return errors.NewInternalError(err)
	}
	for _, card := range deck.Cards {
		row := []string{
			card.Word,
			card.Translation,
			card.PartOfSpeech,
			card.Hint,
			card.CEFR,
			strings.Join(card.Tags, ";"),
		}
		if err := writer.Write(row); err != nil {
			return errors.NewInternalError(err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.NewInternalError(err)
	}
	return nil
}

// Package seed provides the built-in starter deck and the system word
// groups that ship with the application.
package seed

import (
	"context"
	"time"

	"github.com/avelar/wordflash/internal/logger"
	"github.com/avelar/wordflash/internal/models"
	"github.com/avelar/wordflash/internal/services"
)

const StarterDeckID = "preset-starter"

type seedWord struct {
	id           string
	word         string
	translation  string
	partOfSpeech string
	hint         string
	cefr         string
	tags         []string
}

// Starter vocabulary with deterministic IDs so the system groups below can
// reference cards before the user imports anything.
var starterWords = []seedWord{
	{"seed-accept", "accept", "to agree to receive or do something", "verb", "", "A2", []string{"confusable"}},
	{"seed-except", "except", "not including", "preposition", "often confused with accept", "A2", []string{"confusable"}},
	{"seed-affect", "affect", "to influence something", "verb", "", "B1", []string{"confusable"}},
	{"seed-effect", "effect", "a result or consequence", "noun", "often confused with affect", "B1", []string{"confusable"}},
	{"seed-lose", "lose", "to no longer have something", "verb", "", "A2", []string{"confusable"}},
	{"seed-loose", "loose", "not firmly fixed", "adjective", "one o means misplacing, two means not tight", "A2", []string{"confusable"}},
	{"seed-quiet", "quiet", "making little noise", "adjective", "", "A1", []string{"confusable"}},
	{"seed-quite", "quite", "to a certain degree", "adverb", "", "A2", []string{"confusable"}},
	{"seed-borrow", "borrow", "to take something temporarily", "verb", "", "A2", []string{"confusable"}},
	{"seed-lend", "lend", "to give something temporarily", "verb", "direction is opposite of borrow", "A2", []string{"confusable"}},
	{"seed-journey", "journey", "an act of travelling from one place to another", "noun", "", "B1", nil},
	{"seed-travel", "travel", "to go from one place to another", "verb", "", "A1", nil},
	{"seed-trip", "trip", "a short journey for a purpose", "noun", "", "A2", nil},
}

// Deck returns the starter preset deck and its cards.
func Deck() (models.Deck, []models.WordCard) {
	now := time.Now().UTC()

	deck := models.Deck{
		ID:          StarterDeckID,
		Name:        "Starter vocabulary",
		Description: "Common English words and classic confusable pairs to begin studying with.",
		Category:    models.DeckPreset,
		Source:      "built-in",
		Enabled:     true,
	}

	cards := make([]models.WordCard, 0, len(starterWords))
	for _, w := range starterWords {
		cards = append(cards, models.WordCard{
			ID:           w.id,
			Word:         w.word,
			Translation:  w.translation,
			PartOfSpeech: w.partOfSpeech,
			Hint:         w.hint,
			CEFR:         w.cefr,
			Tags:         w.tags,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	return deck, cards
}

// Groups returns the system word groups covering the starter deck's
// confusable pairs.
func Groups() []models.WordGroup {
	return []models.WordGroup{
		{
			ID:          "sysgroup-accept-except",
			Name:        "accept / except",
			WordIDs:     []string{"seed-accept", "seed-except"},
			Source:      models.GroupSystem,
			Category:    models.CategoryPhonetic,
			Confidence:  95,
			Description: "Near-homophones with unrelated meanings.",
		},
		{
			ID:          "sysgroup-affect-effect",
			Name:        "affect / effect",
			WordIDs:     []string{"seed-affect", "seed-effect"},
			Source:      models.GroupSystem,
			Category:    models.CategorySpelling,
			Confidence:  95,
			Description: "Verb versus noun, one letter apart.",
		},
		{
			ID:          "sysgroup-lose-loose",
			Name:        "lose / loose",
			WordIDs:     []string{"seed-lose", "seed-loose"},
			Source:      models.GroupSystem,
			Category:    models.CategorySpelling,
			Confidence:  90,
		},
		{
			ID:          "sysgroup-quiet-quite",
			Name:        "quiet / quite",
			WordIDs:     []string{"seed-quiet", "seed-quite"},
			Source:      models.GroupSystem,
			Category:    models.CategorySpelling,
			Confidence:  90,
		},
		{
			ID:          "sysgroup-borrow-lend",
			Name:        "borrow / lend",
			WordIDs:     []string{"seed-borrow", "seed-lend"},
			Source:      models.GroupSystem,
			Category:    models.CategoryMeaning,
			Confidence:  85,
			Description: "Same exchange seen from opposite sides.",
		},
		{
			ID:         "sysgroup-journey-travel-trip",
			Name:       "journey / travel / trip",
			WordIDs:    []string{"seed-journey", "seed-travel", "seed-trip"},
			Source:     models.GroupSystem,
			Category:   models.CategoryMeaning,
			Confidence: 80,
		},
	}
}

// Apply installs the starter deck and system groups if they are not
// already present. Safe to run on every startup.
func Apply(ctx context.Context, decks services.DeckService, groups services.GroupService) error {
	log := logger.Default().WithPrefix("seed")

	existing, err := decks.ListDecks(ctx)
	if err != nil {
		return err
	}
	found := false
	for _, d := range existing {
		if d.ID == StarterDeckID {
			found = true
			break
		}
	}

	if !found {
		deck, cards := Deck()
		if _, err := decks.CreateDeck(ctx, deck); err != nil {
			return err
		}
		if err := decks.AddCards(ctx, deck.ID, cards); err != nil {
			return err
		}
		log.Info("installed starter deck with %d cards", len(cards))
	}

	if err := groups.SeedSystemGroups(ctx, Groups()); err != nil {
		return err
	}
	return nil
}

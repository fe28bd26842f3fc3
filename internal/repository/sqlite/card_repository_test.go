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

type CardRepositorySuite struct {
	suite.Suite
	db    *sql.DB
	repo  repository.CardRepository
	decks repository.DeckRepository
}

func (s *CardRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewCardRepository(s.db)
	s.decks = sqlite.NewDeckRepository(s.db)
}

func (s *CardRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()

	card := testutil.Card("c1", "affect")
	card.Hint = "to influence something"
	card.Tags = []string{"confusable"}
	s.Require().NoError(s.repo.Insert(ctx, card))

	got, err := s.repo.Get(ctx, "c1")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal("affect", got.Word)
	s.Assert().Equal("to influence something", got.Hint)
	s.Assert().Equal([]string{"confusable"}, got.Tags)
}

func (s *CardRepositorySuite) TestGetMissingReturnsNil() {
	got, err := s.repo.Get(context.Background(), "nope")
	s.Require().NoError(err)
	s.Assert().Nil(got)
}

func (s *CardRepositorySuite) TestInsertBatchAndCount() {
	ctx := context.Background()

	cards := []models.WordCard{
		testutil.Card("c1", "accept"),
		testutil.Card("c2", "except"),
		testutil.Card("c3", "expect"),
	}
	s.Require().NoError(s.repo.InsertBatch(ctx, cards))

	count, err := s.repo.Count(ctx, models.CardFilter{})
	s.Require().NoError(err)
	s.Assert().Equal(3, count)
}

func (s *CardRepositorySuite) TestListFilters() {
	ctx := context.Background()

	verb := testutil.Card("c1", "accept")
	verb.PartOfSpeech = "verb"
	verb.CEFR = "A2"
	noun := testutil.Card("c2", "exception")
	noun.PartOfSpeech = "noun"
	noun.CEFR = "B1"
	noun.Tags = []string{"formal"}
	s.Require().NoError(s.repo.InsertBatch(ctx, []models.WordCard{verb, noun}))

	byPOS, err := s.repo.List(ctx, models.CardFilter{PartOfSpeech: "verb"})
	s.Require().NoError(err)
	s.Require().Len(byPOS, 1)
	s.Assert().Equal("accept", byPOS[0].Word)

	byCEFR, err := s.repo.List(ctx, models.CardFilter{CEFR: "B1"})
	s.Require().NoError(err)
	s.Require().Len(byCEFR, 1)
	s.Assert().Equal("exception", byCEFR[0].Word)

	byTag, err := s.repo.List(ctx, models.CardFilter{Tag: "formal"})
	s.Require().NoError(err)
	s.Require().Len(byTag, 1)
	s.Assert().Equal("c2", byTag[0].ID)

	bySearch, err := s.repo.List(ctx, models.CardFilter{Search: "cept"})
	s.Require().NoError(err)
	s.Assert().Len(bySearch, 2)
}

func (s *CardRepositorySuite) TestListByDeck() {
	ctx := context.Background()

	s.Require().NoError(s.repo.InsertBatch(ctx, []models.WordCard{
		testutil.Card("c1", "their"),
		testutil.Card("c2", "there"),
		testutil.Card("c3", "they're"),
	}))
	s.Require().NoError(s.decks.Insert(ctx, testutil.Deck("d1", "Homophones")))
	s.Require().NoError(s.decks.AddCards(ctx, "d1", []string{"c1", "c2"}))

	cards, err := s.repo.List(ctx, models.CardFilter{DeckID: "d1"})
	s.Require().NoError(err)
	s.Assert().Len(cards, 2)

	count, err := s.repo.Count(ctx, models.CardFilter{DeckID: "d1"})
	s.Require().NoError(err)
	s.Assert().Equal(2, count)
}

func (s *CardRepositorySuite) TestListPagination() {
	ctx := context.Background()

	s.Require().NoError(s.repo.InsertBatch(ctx, []models.WordCard{
		testutil.Card("c1", "alpha"),
		testutil.Card("c2", "bravo"),
		testutil.Card("c3", "charlie"),
	}))

	page, err := s.repo.List(ctx, models.CardFilter{Limit: 2, Offset: 1})
	s.Require().NoError(err)
	s.Require().Len(page, 2)
	s.Assert().Equal("bravo", page[0].Word)
	s.Assert().Equal("charlie", page[1].Word)
}

func (s *CardRepositorySuite) TestUpdate() {
	ctx := context.Background()

	card := testutil.Card("c1", "affect")
	s.Require().NoError(s.repo.Insert(ctx, card))

	card.Translation = "afetar"
	card.Hint = "verb, not the noun"
	s.Require().NoError(s.repo.Update(ctx, card))

	got, err := s.repo.Get(ctx, "c1")
	s.Require().NoError(err)
	s.Assert().Equal("afetar", got.Translation)
	s.Assert().Equal("verb, not the noun", got.Hint)
}

func (s *CardRepositorySuite) TestDelete() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Insert(ctx, testutil.Card("c1", "affect")))

	s.Require().NoError(s.repo.Delete(ctx, "c1"))

	got, err := s.repo.Get(ctx, "c1")
	s.Require().NoError(err)
	s.Assert().Nil(got)
}

func TestCardRepositorySuite(t *testing.T) {
	suite.Run(t, new(CardRepositorySuite))
}

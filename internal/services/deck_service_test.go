package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/avelar/wordflash/internal/errors"
	"github.com/avelar/wordflash/internal/models"
	"github.com/avelar/wordflash/internal/services"
	"github.com/avelar/wordflash/internal/testutil/mocks"
)

func TestCreateDeck_AssignsIDAndDefaults(t *testing.T) {
	deckRepo := new(mocks.MockDeckRepository)
	cardRepo := new(mocks.MockCardRepository)
	svc := services.NewDeckService(deckRepo, cardRepo)

	deckRepo.On("Insert", mock.Anything, mock.MatchedBy(func(d models.Deck) bool {
		return d.ID != "" && d.Category == models.DeckImported && d.Enabled
	})).Return(nil)

	created, err := svc.CreateDeck(context.Background(), models.Deck{Name: "Travel words"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.DeckImported, created.Category)
	assert.True(t, created.Enabled)
	deckRepo.AssertExpectations(t)
}

func TestCreateDeck_RejectsEmptyName(t *testing.T) {
	deckRepo := new(mocks.MockDeckRepository)
	cardRepo := new(mocks.MockCardRepository)
	svc := services.NewDeckService(deckRepo, cardRepo)

	_, err := svc.CreateDeck(context.Background(), models.Deck{})
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
	deckRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestGetDeck_NotFound(t *testing.T) {
	deckRepo := new(mocks.MockDeckRepository)
	cardRepo := new(mocks.MockCardRepository)
	svc := services.NewDeckService(deckRepo, cardRepo)

	deckRepo.On("GetWithCards", mock.Anything, "missing").Return(nil, nil)

	_, err := svc.GetDeck(context.Background(), "missing")
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
}

func TestAddCards_InsertsOnlyFreshCards(t *testing.T) {
	deckRepo := new(mocks.MockDeckRepository)
	cardRepo := new(mocks.MockCardRepository)
	svc := services.NewDeckService(deckRepo, cardRepo)

	known := models.WordCard{ID: "c1", Word: "cat", Translation: "a small pet"}
	fresh := models.WordCard{ID: "c2", Word: "dog", Translation: "a loyal pet"}

	deckRepo.On("Get", mock.Anything, "d1").Return(&models.Deck{ID: "d1", Name: "Animals"}, nil)
	cardRepo.On("Get", mock.Anything, "c1").Return(&known, nil)
	cardRepo.On("Get", mock.Anything, "c2").Return(nil, nil)
	cardRepo.On("InsertBatch", mock.Anything, mock.MatchedBy(func(cards []models.WordCard) bool {
		return len(cards) == 1 && cards[0].ID == "c2"
	})).Return(nil)
	deckRepo.On("AddCards", mock.Anything, "d1", []string{"c1", "c2"}).Return(nil)

	err := svc.AddCards(context.Background(), "d1", []models.WordCard{known, fresh})
	require.NoError(t, err)
	deckRepo.AssertExpectations(t)
	cardRepo.AssertExpectations(t)
}

func TestAddCards_DeckNotFound(t *testing.T) {
	deckRepo := new(mocks.MockDeckRepository)
	cardRepo := new(mocks.MockCardRepository)
	svc := services.NewDeckService(deckRepo, cardRepo)

	deckRepo.On("Get", mock.Anything, "missing").Return(nil, nil)

	err := svc.AddCards(context.Background(), "missing", []models.WordCard{
		{Word: "cat", Translation: "a small pet"},
	})
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
	cardRepo.AssertNotCalled(t, "InsertBatch", mock.Anything, mock.Anything)
}

package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/avelar/wordflash/internal/models"
	"github.com/avelar/wordflash/internal/services"
	"github.com/avelar/wordflash/internal/testutil/mocks"
)

func resumeFixture() (*mocks.MockSessionRepository, *mocks.MockGroupRepository, services.SessionService) {
	sessionRepo := new(mocks.MockSessionRepository)
	groupRepo := new(mocks.MockGroupRepository)
	svc := services.NewSessionService(
		new(mocks.MockDeckRepository),
		new(mocks.MockCardRepository),
		groupRepo,
		sessionRepo,
		nil,
		nil,
	)
	return sessionRepo, groupRepo, svc
}

func TestResumeFromStore_RestoresActiveSession(t *testing.T) {
	sessionRepo, groupRepo, svc := resumeFixture()

	stored := &models.StudySession{
		ID:          "sess-1",
		Status:      models.SessionActive,
		RoundSize:   5,
		TotalRounds: 1,
		OrderedCards: []models.SessionCard{
			{CardID: "c1", Word: "accept", DeckID: "d1"},
			{CardID: "c2", Word: "except", DeckID: "d1"},
		},
		Cursor:    1,
		StartedAt: time.Now().Add(-time.Hour),
	}
	sessionRepo.On("Current", mock.Anything).Return(stored, nil)
	groupRepo.On("List", mock.Anything).Return([]models.WordGroup{}, nil)

	require.NoError(t, svc.ResumeFromStore(context.Background()))

	current, err := svc.Current(context.Background())
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "sess-1", current.ID)
	assert.Equal(t, 1, current.Cursor)
	sessionRepo.AssertExpectations(t)
}

func TestResumeFromStore_DiscardsTerminalSession(t *testing.T) {
	sessionRepo, groupRepo, svc := resumeFixture()

	ended := time.Now().Add(-time.Minute)
	sessionRepo.On("Current", mock.Anything).Return(&models.StudySession{
		ID:      "sess-done",
		Status:  models.SessionCompleted,
		EndedAt: &ended,
	}, nil)
	sessionRepo.On("Clear", mock.Anything).Return(nil)

	require.NoError(t, svc.ResumeFromStore(context.Background()))

	current, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Nil(t, current)
	sessionRepo.AssertCalled(t, "Clear", mock.Anything)
	groupRepo.AssertNotCalled(t, "List", mock.Anything)
}

func TestResumeFromStore_NothingStored(t *testing.T) {
	sessionRepo, _, svc := resumeFixture()

	sessionRepo.On("Current", mock.Anything).Return(nil, nil)

	require.NoError(t, svc.ResumeFromStore(context.Background()))

	current, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Nil(t, current)
	sessionRepo.AssertNotCalled(t, "Clear", mock.Anything)
}

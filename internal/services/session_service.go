package services

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/avelar/wordflash/internal/errors"
	"github.com/avelar/wordflash/internal/logger"
	"github.com/avelar/wordflash/internal/models"
	"github.com/avelar/wordflash/internal/repository"
	"github.com/avelar/wordflash/internal/session"
)

// NextCardResponse pairs the engine's work item with the full card
// records the presentation layer needs.
type NextCardResponse struct {
	Item    session.WorkItem  `json:"item"`
	Details []models.WordCard `json:"details,omitempty"`
}

// SessionService coordinates the single active study session: planning,
// engine calls, the progress ledger, and persistence after every
// mutation. All methods are safe for concurrent use.
type SessionService interface {
	Create(ctx context.Context, cfg models.SessionConfig) (*models.StudySession, error)
	Current(ctx context.Context) (*models.StudySession, error)
	NextCard(ctx context.Context) (*NextCardResponse, error)
	RecordResult(ctx context.Context, cardID string, result models.ReviewResult, responseTime float64) (*models.ProgressRecord, error)
	Pause(ctx context.Context) (*models.StudySession, error)
	Resume(ctx context.Context) (*models.StudySession, error)
	Complete(ctx context.Context) (*models.SessionSummary, error)
	Abandon(ctx context.Context) error
	Undo(ctx context.Context) (*models.StudySession, error)
	RetryCards(ctx context.Context) ([]session.RetryStatus, error)
	SkipRetryWait(ctx context.Context, cardID string) (int, error)
	ResumeFromStore(ctx context.Context) error
}

// Preloader warms pronunciation audio for upcoming words.
type Preloader interface {
	Preload(ctx context.Context, words []string)
}

type sessionService struct {
	mu sync.Mutex

	deckRepo     repository.DeckRepository
	cardRepo     repository.CardRepository
	groupRepo    repository.GroupRepository
	sessionRepo  repository.SessionRepository
	progress     ProgressService
	preloader    Preloader
	newRand      func() *rand.Rand
	now          func() time.Time
	engine       *session.Engine
	markedCursor int
}

// NewSessionService creates a new SessionService. The preloader may be
// nil.
func NewSessionService(
	deckRepo repository.DeckRepository,
	cardRepo repository.CardRepository,
	groupRepo repository.GroupRepository,
	sessionRepo repository.SessionRepository,
	progress ProgressService,
	preloader Preloader,
) SessionService {
	return &sessionService{
		deckRepo:    deckRepo,
		cardRepo:    cardRepo,
		groupRepo:   groupRepo,
		sessionRepo: sessionRepo,
		progress:    progress,
		preloader:   preloader,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
		now:          time.Now,
		markedCursor: -1,
	}
}

// groupIndex maps word IDs to the group they belong to. Words in several
// groups resolve to the first one listed.
type groupIndex map[string]models.WordGroup

func (g groupIndex) GroupFor(wordID string) (models.WordGroup, bool) {
	group, ok := g[wordID]
	return group, ok
}

func (s *sessionService) loadGroups(ctx context.Context) (groupIndex, error) {
	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	idx := make(groupIndex)
	for _, group := range groups {
		for _, wordID := range group.WordIDs {
			if _, taken := idx[wordID]; !taken {
				idx[wordID] = group
			}
		}
	}
	return idx, nil
}

func (s *sessionService) Create(ctx context.Context, cfg models.SessionConfig) (*models.StudySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	log := logger.FromContext(ctx).WithPrefix("session")

	if err := cfg.Validate(); err != nil {
		return nil, errors.NewValidationError("config", err.Error())
	}
	if s.engine != nil {
		state := s.engine.State()
		if state.Status == models.SessionActive || state.Status == models.SessionPaused {
			return nil, errors.NewConflictError("a study session is already in progress")
		}
	}

	groups, err := s.loadGroups(ctx)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	candidates, err := s.candidates(ctx, cfg, groups)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	hint := (len(candidates) + cfg.RoundSize - 1) / cfg.RoundSize
	ordered := session.Plan(candidates, cfg.RoundSize, cfg.NewReviewRatio, hint, s.newRand())
	if len(ordered) == 0 {
		return nil, errors.NewValidationError("decks", "no studyable cards in the selected decks")
	}

	s.engine = session.Start(uuid.NewString(), cfg, ordered, groups, now)
	s.markedCursor = -1
	state := s.engine.State()

	if err := s.sessionRepo.Save(ctx, state); err != nil {
		return nil, errors.NewInternalError(err)
	}
	log.Info("session %s created with %d cards over %d rounds", state.ID, len(ordered), state.TotalRounds)

	if s.preloader != nil {
		words := make([]string, 0, len(ordered))
		for _, card := range ordered {
			words = append(words, card.Word)
		}
		s.preloader.Preload(ctx, words)
	}
	return &state, nil
}

// candidates gathers the studyable cards of the selected decks, frozen
// with the difficulty they have right now.
func (s *sessionService) candidates(ctx context.Context, cfg models.SessionConfig, groups groupIndex) ([]models.SessionCard, error) {
	now := s.now().UTC()
	seen := make(map[string]bool)
	var out []models.SessionCard

	for _, deckID := range cfg.DeckIDs {
		deck, err := s.deckRepo.GetWithCards(ctx, deckID)
		if err != nil {
			return nil, errors.NewInternalError(err)
		}
		if deck == nil {
			return nil, errors.NewNotFoundError("deck", deckID)
		}
		if !deck.Enabled {
			continue
		}
		for _, card := range deck.Cards {
			if seen[card.ID] {
				continue
			}
			seen[card.ID] = true

			rec, err := s.progress.GetOrCreate(ctx, card.ID)
			if err != nil {
				return nil, err
			}
			if !s.eligible(cfg.SessionType, *rec, card.ID, groups, now) {
				continue
			}
			out = append(out, models.SessionCard{
				CardID:     card.ID,
				Word:       card.Word,
				DeckID:     deckID,
				Difficulty: rec.Difficulty(),
			})
		}
	}
	return out, nil
}

func (s *sessionService) eligible(sessionType models.SessionType, rec models.ProgressRecord, cardID string, groups groupIndex, now time.Time) bool {
	if rec.Status == models.StatusSuspended {
		return false
	}
	switch sessionType {
	case models.SessionNewOnly:
		return rec.Status == models.StatusNew
	case models.SessionReviewOnly:
		return rec.Status != models.StatusNew && rec.IsDue(now)
	case models.SessionComparisonOnly:
		_, grouped := groups[cardID]
		return grouped
	default:
		return rec.IsDue(now)
	}
}

func (s *sessionService) Current(ctx context.Context) (*models.StudySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine == nil {
		return nil, nil
	}
	state := s.engine.State()
	return &state, nil
}

func (s *sessionService) NextCard(ctx context.Context) (*NextCardResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engine == nil {
		return nil, errors.NewNotFoundError("session", "current")
	}
	state := s.engine.State()
	if state.Status != models.SessionActive {
		return nil, errors.NewConflictError("session is " + string(state.Status))
	}

	item := s.engine.CurrentWorkItem(s.now().UTC())
	if item.Type == session.WorkComparison && state.Cursor != s.markedCursor {
		s.engine.MarkComparisonShown()
		s.markedCursor = state.Cursor
		if err := s.sessionRepo.Save(ctx, s.engine.State()); err != nil {
			return nil, errors.NewInternalError(err)
		}
	}

	resp := &NextCardResponse{Item: item}
	for _, card := range item.Cards {
		full, err := s.cardRepo.Get(ctx, card.CardID)
		if err != nil {
			return nil, errors.NewInternalError(err)
		}
		if full != nil {
			resp.Details = append(resp.Details, *full)
		}
	}
	return resp, nil
}

func (s *sessionService) RecordResult(ctx context.Context, cardID string, result models.ReviewResult, responseTime float64) (*models.ProgressRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engine == nil {
		return nil, errors.NewNotFoundError("session", "current")
	}
	if !result.Valid() {
		return nil, errors.NewValidationError("result", "must be remember or not-remember")
	}

	now := s.now().UTC()
	item := s.engine.CurrentWorkItem(now)
	if item.IsRetry && len(item.Cards) == 1 && item.Cards[0].CardID == cardID {
		s.engine.ClearRetry(cardID, now)
	}

	// The engine rejects cards outside the session, so the ledger is
	// only touched once membership is established.
	if err := s.engine.RecordResult(cardID, result, responseTime, now); err != nil {
		return nil, errors.NewBadRequestError(err.Error())
	}

	rec, err := s.progress.GetOrCreate(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if rec.ReviewCount == 0 && result == models.ResultRemember {
		s.engine.MarkNewWordLearned()
	}

	updated, err := s.progress.RecordReview(ctx, cardID, result, responseTime, now)
	if err != nil {
		return nil, err
	}
	if err := s.sessionRepo.Save(ctx, s.engine.State()); err != nil {
		return nil, errors.NewInternalError(err)
	}
	return updated, nil
}

func (s *sessionService) Pause(ctx context.Context) (*models.StudySession, error) {
	return s.transition(ctx, func(e *session.Engine, now time.Time) { e.Pause(now) })
}

func (s *sessionService) Resume(ctx context.Context) (*models.StudySession, error) {
	return s.transition(ctx, func(e *session.Engine, now time.Time) { e.Resume(now) })
}

func (s *sessionService) transition(ctx context.Context, apply func(*session.Engine, time.Time)) (*models.StudySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engine == nil {
		return nil, errors.NewNotFoundError("session", "current")
	}
	apply(s.engine, s.now().UTC())
	state := s.engine.State()
	if err := s.sessionRepo.Save(ctx, state); err != nil {
		return nil, errors.NewInternalError(err)
	}
	return &state, nil
}

func (s *sessionService) Complete(ctx context.Context) (*models.SessionSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	log := logger.FromContext(ctx).WithPrefix("session")

	if s.engine == nil {
		return nil, errors.NewNotFoundError("session", "current")
	}
	now := s.now().UTC()
	s.engine.Complete(now)
	state := s.engine.State()

	if err := s.sessionRepo.Clear(ctx); err != nil {
		return nil, errors.NewInternalError(err)
	}
	s.engine = nil
	s.markedCursor = -1

	streak, err := s.progress.Streak(ctx)
	if err != nil {
		return nil, err
	}
	log.Info("session %s completed: %d/%d remembered", state.ID,
		state.Statistics.RememberedCards, state.Statistics.RememberedCards+state.Statistics.ForgottenCards)

	return &models.SessionSummary{
		TotalCards:          state.Statistics.TotalCards,
		RememberedCards:     state.Statistics.RememberedCards,
		ForgottenCards:      state.Statistics.ForgottenCards,
		TimeSpentMinutes:    state.Statistics.TimeSpentMinutes,
		AverageResponseTime: state.Statistics.AverageResponseTime,
		NewWordsLearned:     state.Statistics.NewWordsLearned,
		Streak:              streak.CurrentStreak,
	}, nil
}

func (s *sessionService) Abandon(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engine == nil {
		return errors.NewNotFoundError("session", "current")
	}
	s.engine.Abandon(s.now().UTC())
	if err := s.sessionRepo.Clear(ctx); err != nil {
		return errors.NewInternalError(err)
	}
	s.engine = nil
	s.markedCursor = -1
	return nil
}

func (s *sessionService) Undo(ctx context.Context) (*models.StudySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engine == nil {
		return nil, errors.NewNotFoundError("session", "current")
	}
	if err := s.engine.Undo(s.now().UTC()); err != nil {
		return nil, errors.NewBadRequestError(err.Error())
	}
	s.markedCursor = -1
	state := s.engine.State()
	if err := s.sessionRepo.Save(ctx, state); err != nil {
		return nil, errors.NewInternalError(err)
	}
	return &state, nil
}

func (s *sessionService) RetryCards(ctx context.Context) ([]session.RetryStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engine == nil {
		return nil, errors.NewNotFoundError("session", "current")
	}
	return s.engine.RetryCards(s.now().UTC()), nil
}

func (s *sessionService) SkipRetryWait(ctx context.Context, cardID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engine == nil {
		return 0, errors.NewNotFoundError("session", "current")
	}
	n := s.engine.SkipRetryWait(cardID, s.now().UTC())
	if err := s.sessionRepo.Save(ctx, s.engine.State()); err != nil {
		return 0, errors.NewInternalError(err)
	}
	return n, nil
}

// ResumeFromStore rebuilds the in-memory engine from the persisted
// session, if one survived a restart. Terminal sessions are discarded.
func (s *sessionService) ResumeFromStore(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	log := logger.FromContext(ctx).WithPrefix("session")

	stored, err := s.sessionRepo.Current(ctx)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if stored == nil {
		return nil
	}
	if stored.Status != models.SessionActive && stored.Status != models.SessionPaused {
		log.Debug("discarding stored %s session %s", stored.Status, stored.ID)
		return s.sessionRepo.Clear(ctx)
	}

	groups, err := s.loadGroups(ctx)
	if err != nil {
		return errors.NewInternalError(err)
	}
	s.engine = session.NewEngine(*stored, groups)
	s.markedCursor = -1
	log.Info("resumed session %s at card %d/%d", stored.ID, stored.Cursor, len(stored.OrderedCards))
	return nil
}

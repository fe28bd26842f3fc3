package session

import (
	"fmt"
	"sort"
	"time"

	"github.com/avelar/wordflash/internal/models"
)

// RetryDelay is the "10-minute rule": a failed card comes back for a
// short-horizon do-over this long after the failure, independent of the
// long-horizon review schedule.
const RetryDelay = 10 * time.Minute

// GroupResolver reports the comparison group, if any, that a word belongs
// to. The engine never owns group configuration; the coordinator wires in
// a resolver backed by the static group table.
type GroupResolver interface {
	GroupFor(wordID string) (models.WordGroup, bool)
}

// WorkItemType tags what the presentation layer should render next.
type WorkItemType string

const (
	WorkSingle     WorkItemType = "single"
	WorkComparison WorkItemType = "comparison"
	WorkComplete   WorkItemType = "session-complete"
)

// Progress locates the learner inside the session and the current round.
type Progress struct {
	Position      int `json:"position"`
	Total         int `json:"total"`
	RoundPosition int `json:"round_position"`
	RoundTotal    int `json:"round_total"`
}

// WorkItem is the next unit of work: a single card, a retry, or a
// comparison unit of several mutually confusable cards.
type WorkItem struct {
	Type     WorkItemType         `json:"type"`
	Cards    []models.SessionCard `json:"cards,omitempty"`
	IsRetry  bool                 `json:"is_retry,omitempty"`
	Progress Progress             `json:"progress"`
}

// Engine is the study-session state machine. It exclusively owns the
// StudySession value it was built around; callers mutate the session only
// through the engine. The engine is not safe for concurrent use, the
// coordinator serializes access.
type Engine struct {
	state  models.StudySession
	groups GroupResolver
}

// NewEngine wraps an existing session state. Pass a nil resolver to
// disable comparison-unit detection.
func NewEngine(state models.StudySession, groups GroupResolver) *Engine {
	return &Engine{state: state, groups: groups}
}

// Start builds a fresh active session around the planned card order.
func Start(id string, cfg models.SessionConfig, ordered []models.SessionCard, groups GroupResolver, now time.Time) *Engine {
	totalRounds := (len(ordered) + cfg.RoundSize - 1) / cfg.RoundSize
	if totalRounds < 1 {
		totalRounds = 1
	}
	state := models.StudySession{
		ID:             id,
		DeckIDs:        cfg.DeckIDs,
		RoundSize:      cfg.RoundSize,
		NewReviewRatio: cfg.NewReviewRatio,
		SessionType:    cfg.SessionType,
		Status:         models.SessionActive,
		OrderedCards:   ordered,
		CurrentRound:   1,
		TotalRounds:    totalRounds,
		Statistics:     models.SessionStatistics{TotalCards: len(ordered)},
		StartedAt:      now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return &Engine{state: state, groups: groups}
}

// State returns a copy of the current session state for persistence and
// reporting. The ordered card list is shared but never mutated after
// planning.
func (e *Engine) State() models.StudySession {
	return e.state
}

// CurrentWorkItem derives the next thing to present. Ready retries always
// preempt normal progression, oldest deadline first.
func (e *Engine) CurrentWorkItem(now time.Time) WorkItem {
	if retry, ok := e.readyRetry(now); ok {
		if card, found := e.findCard(retry.CardID); found {
			return WorkItem{
				Type:     WorkSingle,
				Cards:    []models.SessionCard{card},
				IsRetry:  true,
				Progress: e.progress(),
			}
		}
	}

	if e.state.IsComplete() {
		return WorkItem{Type: WorkComplete, Progress: e.progress()}
	}

	current := e.state.OrderedCards[e.state.Cursor]
	if members := e.comparisonUnit(current); len(members) >= models.MinGroupSize {
		return WorkItem{
			Type:     WorkComparison,
			Cards:    members,
			Progress: e.progress(),
		}
	}

	return WorkItem{
		Type:     WorkSingle,
		Cards:    []models.SessionCard{current},
		Progress: e.progress(),
	}
}

// RecordResult applies one card outcome: statistics, the 10-minute retry
// rule on failure, and cursor/round advancement. Members of a comparison
// unit are recorded one call each. The cursor advances regardless of the
// result; failed cards come back through the retry queue, not by holding
// the position.
func (e *Engine) RecordResult(cardID string, result models.ReviewResult, responseTime float64, now time.Time) error {
	if e.state.Status != models.SessionActive {
		return fmt.Errorf("session is %s, not active", e.state.Status)
	}
	if _, found := e.findCard(cardID); !found {
		return fmt.Errorf("card %s is not part of this session", cardID)
	}

	answered := e.state.Statistics.RememberedCards + e.state.Statistics.ForgottenCards
	stats := &e.state.Statistics
	stats.AverageResponseTime = (stats.AverageResponseTime*float64(answered) + responseTime) / float64(answered+1)

	if result == models.ResultRemember {
		stats.RememberedCards++
	} else {
		stats.ForgottenCards++
		e.scheduleRetry(cardID, now.Add(RetryDelay))
	}

	e.advance(now)
	e.state.UpdatedAt = now
	return nil
}

// scheduleRetry enqueues a retry entry. A card that fails again before its
// pending retry fires replaces the existing entry rather than stacking a
// second one.
func (e *Engine) scheduleRetry(cardID string, readyAt time.Time) {
	for i, entry := range e.state.RetryQueue {
		if entry.CardID == cardID {
			e.state.RetryQueue[i].ReadyAt = readyAt
			return
		}
	}
	e.state.RetryQueue = append(e.state.RetryQueue, models.RetryEntry{CardID: cardID, ReadyAt: readyAt})
}

func (e *Engine) advance(now time.Time) {
	if e.state.Cursor >= len(e.state.OrderedCards) {
		return
	}
	e.state.Cursor++
	if e.state.Cursor >= len(e.state.OrderedCards) {
		e.complete(now)
		return
	}
	if e.state.Cursor%e.state.RoundSize == 0 {
		e.state.CurrentRound++
	}
}

// RetryCards lists the retry queue with readiness evaluated against now.
// Deadlines are checked lazily here; there is no timer goroutine.
func (e *Engine) RetryCards(now time.Time) []RetryStatus {
	out := make([]RetryStatus, 0, len(e.state.RetryQueue))
	for _, entry := range e.state.RetryQueue {
		remaining := entry.ReadyAt.Sub(now)
		if remaining < 0 {
			remaining = 0
		}
		out = append(out, RetryStatus{
			CardID:    entry.CardID,
			ReadyAt:   entry.ReadyAt,
			Remaining: remaining,
			Ready:     !now.Before(entry.ReadyAt),
		})
	}
	return out
}

// RetryStatus is one retry-queue entry annotated with readiness.
type RetryStatus struct {
	CardID    string        `json:"card_id"`
	ReadyAt   time.Time     `json:"ready_at"`
	Remaining time.Duration `json:"remaining"`
	Ready     bool          `json:"ready"`
}

// ClearRetry removes the retry entry for cardID, reporting whether one
// existed.
func (e *Engine) ClearRetry(cardID string, now time.Time) bool {
	for i, entry := range e.state.RetryQueue {
		if entry.CardID == cardID {
			e.state.RetryQueue = append(e.state.RetryQueue[:i], e.state.RetryQueue[i+1:]...)
			e.state.UpdatedAt = now
			return true
		}
	}
	return false
}

// SkipRetryWait makes one retry (or all, for an empty cardID) immediately
// eligible by dropping the wait. Returns how many entries were affected.
func (e *Engine) SkipRetryWait(cardID string, now time.Time) int {
	if cardID != "" {
		if e.ClearRetry(cardID, now) {
			return 1
		}
		return 0
	}
	n := len(e.state.RetryQueue)
	e.state.RetryQueue = nil
	e.state.UpdatedAt = now
	return n
}

// Undo rewinds the session position by one card. It deliberately does not
// reverse the statistics or any ledger update the undone result caused;
// only the position moves, so the same card is presented again.
func (e *Engine) Undo(now time.Time) error {
	if e.state.Cursor == 0 {
		return fmt.Errorf("nothing to undo")
	}
	e.state.Cursor--
	e.state.CurrentRound = e.state.Cursor/e.state.RoundSize + 1
	if e.state.Status == models.SessionCompleted {
		e.state.Status = models.SessionActive
		e.state.EndedAt = nil
	}
	e.state.UpdatedAt = now
	return nil
}

// Pause suspends an active session; a no-op in any other state.
func (e *Engine) Pause(now time.Time) {
	if e.state.Status == models.SessionActive {
		e.state.Status = models.SessionPaused
		e.state.UpdatedAt = now
	}
}

// Resume reactivates a paused session; a no-op in any other state.
func (e *Engine) Resume(now time.Time) {
	if e.state.Status == models.SessionPaused {
		e.state.Status = models.SessionActive
		e.state.UpdatedAt = now
	}
}

// Complete forces the session into its terminal completed state and
// freezes the statistics.
func (e *Engine) Complete(now time.Time) {
	e.complete(now)
	e.state.UpdatedAt = now
}

func (e *Engine) complete(now time.Time) {
	if e.state.Status == models.SessionCompleted {
		return
	}
	e.state.Status = models.SessionCompleted
	end := now
	e.state.EndedAt = &end
	e.state.Statistics.TimeSpentMinutes = e.state.DurationMinutes(now)
}

// Abandon terminally discards the session without the completion summary
// semantics.
func (e *Engine) Abandon(now time.Time) {
	if e.state.Status == models.SessionCompleted || e.state.Status == models.SessionAbandoned {
		return
	}
	e.state.Status = models.SessionAbandoned
	end := now
	e.state.EndedAt = &end
	e.state.Statistics.TimeSpentMinutes = e.state.DurationMinutes(now)
	e.state.UpdatedAt = now
}

// readyRetry returns the ready retry entry with the oldest deadline.
func (e *Engine) readyRetry(now time.Time) (models.RetryEntry, bool) {
	var ready []models.RetryEntry
	for _, entry := range e.state.RetryQueue {
		if !now.Before(entry.ReadyAt) {
			ready = append(ready, entry)
		}
	}
	if len(ready) == 0 {
		return models.RetryEntry{}, false
	}
	sort.Slice(ready, func(i, j int) bool { return ready[i].ReadyAt.Before(ready[j].ReadyAt) })
	return ready[0], true
}

// comparisonUnit returns all session cards sharing the current card's
// group, provided at least two of the group's members were actually drawn
// into this session. Membership defined outside the session is not enough.
func (e *Engine) comparisonUnit(current models.SessionCard) []models.SessionCard {
	if e.groups == nil {
		return nil
	}
	group, ok := e.groups.GroupFor(current.CardID)
	if !ok {
		return nil
	}
	var members []models.SessionCard
	for _, card := range e.state.OrderedCards {
		if group.Contains(card.CardID) {
			members = append(members, card)
		}
	}
	if len(members) < models.MinGroupSize {
		return nil
	}
	return members
}

func (e *Engine) findCard(cardID string) (models.SessionCard, bool) {
	for _, card := range e.state.OrderedCards {
		if card.CardID == cardID {
			return card, true
		}
	}
	return models.SessionCard{}, false
}

func (e *Engine) progress() Progress {
	pos := e.state.Cursor + 1
	if pos > len(e.state.OrderedCards) {
		pos = len(e.state.OrderedCards)
	}
	return Progress{
		Position:      pos,
		Total:         len(e.state.OrderedCards),
		RoundPosition: e.state.Cursor%e.state.RoundSize + 1,
		RoundTotal:    e.state.RoundSize,
	}
}

// MarkComparisonShown bumps the comparison-unit counter once per unit
// presented.
func (e *Engine) MarkComparisonShown() {
	e.state.Statistics.ComparisonUnitsShown++
}

// MarkNewWordLearned counts a first-ever successful review inside this
// session.
func (e *Engine) MarkNewWordLearned() {
	e.state.Statistics.NewWordsLearned++
}

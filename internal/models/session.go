package models

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// SessionCard is one card drawn into a session, frozen at planning time
// together with the difficulty it had when the session was created.
type SessionCard struct {
	CardID     string     `json:"card_id"`
	Word       string     `json:"word"`
	DeckID     string     `json:"deck_id"`
	Difficulty Difficulty `json:"difficulty"`
}

// RetryEntry schedules a short-horizon re-presentation of a failed card,
// independent of the long-horizon review schedule.
type RetryEntry struct {
	CardID  string    `json:"card_id"`
	ReadyAt time.Time `json:"ready_at"`
}

// SessionStatistics holds running aggregates for an in-flight session.
type SessionStatistics struct {
	TotalCards           int     `json:"total_cards"`
	RememberedCards      int     `json:"remembered_cards"`
	ForgottenCards       int     `json:"forgotten_cards"`
	AverageResponseTime  float64 `json:"average_response_time"`
	ComparisonUnitsShown int     `json:"comparison_units_shown"`
	NewWordsLearned      int     `json:"new_words_learned"`
	TimeSpentMinutes     int     `json:"time_spent_minutes"`
}

// StudySession is the ephemeral state of the single active study session.
// The ordered card list is fixed at creation; only the cursor, the retry
// queue and the statistics move afterwards.
type StudySession struct {
	ID             string            `json:"id"`
	DeckIDs        []string          `json:"deck_ids"`
	RoundSize      int               `json:"round_size"`
	NewReviewRatio int               `json:"new_review_ratio"`
	SessionType    SessionType       `json:"session_type"`
	Status         SessionStatus     `json:"status"`
	OrderedCards   []SessionCard     `json:"ordered_cards"`
	Cursor         int               `json:"cursor"`
	CurrentRound   int               `json:"current_round"`
	TotalRounds    int               `json:"total_rounds"`
	RetryQueue     []RetryEntry      `json:"retry_queue"`
	Statistics     SessionStatistics `json:"statistics"`
	StartedAt      time.Time         `json:"started_at"`
	EndedAt        *time.Time        `json:"ended_at"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// SessionConfig is the caller-supplied recipe for a new session.
type SessionConfig struct {
	DeckIDs        []string    `json:"deck_ids"`
	RoundSize      int         `json:"round_size"`
	NewReviewRatio int         `json:"new_review_ratio"`
	SessionType    SessionType `json:"session_type"`
}

// Validate checks the config without touching any collaborator.
func (c SessionConfig) Validate() error {
	var problems []string
	if len(c.DeckIDs) == 0 {
		problems = append(problems, "at least one deck must be selected")
	}
	if c.RoundSize < 1 || c.RoundSize > 100 {
		problems = append(problems, "round size must be between 1 and 100")
	}
	if c.NewReviewRatio < 0 || c.NewReviewRatio > 100 {
		problems = append(problems, "new/review ratio must be between 0 and 100")
	}
	if !c.SessionType.Valid() {
		problems = append(problems, fmt.Sprintf("unknown session type %q", c.SessionType))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid session config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// TotalCards is the fixed length of the planned card sequence.
func (s StudySession) TotalCards() int {
	return len(s.OrderedCards)
}

// CardsCompleted equals the cursor position.
func (s StudySession) CardsCompleted() int {
	return s.Cursor
}

// IsComplete reports whether the session has run out of cards or was
// explicitly completed.
func (s StudySession) IsComplete() bool {
	return s.Status == SessionCompleted || s.Cursor >= len(s.OrderedCards)
}

// ProgressPercent is the completed share of the card sequence.
func (s StudySession) ProgressPercent() float64 {
	if len(s.OrderedCards) == 0 {
		return 0
	}
	return float64(s.Cursor) / float64(len(s.OrderedCards)) * 100
}

// DurationMinutes is the wall-clock session length, using now for a
// session that has not ended yet.
func (s StudySession) DurationMinutes(now time.Time) int {
	end := now
	if s.EndedAt != nil {
		end = *s.EndedAt
	}
	return int(math.Round(end.Sub(s.StartedAt).Minutes()))
}

// CardAt returns the session card at index i, if any.
func (s StudySession) CardAt(i int) (SessionCard, bool) {
	if i < 0 || i >= len(s.OrderedCards) {
		return SessionCard{}, false
	}
	return s.OrderedCards[i], true
}

// SessionSummary is the presentation-layer report for a finished session.
type SessionSummary struct {
	TotalCards          int     `json:"total_cards"`
	RememberedCards     int     `json:"remembered_cards"`
	ForgottenCards      int     `json:"forgotten_cards"`
	TimeSpentMinutes    int     `json:"time_spent_minutes"`
	AverageResponseTime float64 `json:"average_response_time"`
	NewWordsLearned     int     `json:"new_words_learned"`
	Streak              int     `json:"streak"`
}

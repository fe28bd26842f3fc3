package models

import "time"

// ReviewHistoryCap bounds the per-word review history. Only the most recent
// entries matter for ease adjustment, so older ones are dropped.
const ReviewHistoryCap = 10

// ReviewHistoryEntry is one recorded review outcome, captured before the
// scheduler mutates the record so the pre-update interval and ease survive.
type ReviewHistoryEntry struct {
	Timestamp      time.Time    `json:"timestamp"`
	Result         ReviewResult `json:"result"`
	ResponseTime   float64      `json:"response_time"`
	IntervalBefore int          `json:"interval_before"`
	EaseBefore     float64      `json:"ease_before"`
}

// ProgressRecord tracks spaced-repetition scheduling state for one word.
type ProgressRecord struct {
	WordID          string               `json:"word_id"`
	ReviewCount     int                  `json:"review_count"`
	SuccessCount    int                  `json:"success_count"`
	FailureCount    int                  `json:"failure_count"`
	CurrentInterval int                  `json:"current_interval"`
	EaseFactor      float64              `json:"ease_factor"`
	LastReviewAt    *time.Time           `json:"last_review_at"`
	NextReviewAt    *time.Time           `json:"next_review_at"`
	LastResult      ReviewResult         `json:"last_result,omitempty"`
	Status          ReviewStatus         `json:"status"`
	ReviewHistory   []ReviewHistoryEntry `json:"review_history"`
	RetryDeadline   *time.Time           `json:"retry_deadline,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// NewProgressRecord returns a fresh record for a word never reviewed before.
func NewProgressRecord(wordID string, now time.Time) ProgressRecord {
	return ProgressRecord{
		WordID:          wordID,
		CurrentInterval: 1,
		EaseFactor:      2.5,
		Status:          StatusNew,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// SuccessRate is the fraction of reviews answered with "remember".
func (p ProgressRecord) SuccessRate() float64 {
	if p.ReviewCount == 0 {
		return 0
	}
	return float64(p.SuccessCount) / float64(p.ReviewCount)
}

// IsDue reports whether the word should be offered for review at t.
// New words are always due; scheduled words are due once their next
// review time has passed.
func (p ProgressRecord) IsDue(t time.Time) bool {
	if p.NextReviewAt == nil {
		return p.Status == StatusNew
	}
	return !t.Before(*p.NextReviewAt)
}

// Difficulty derives the session-ordering bucket from recent performance.
func (p ProgressRecord) Difficulty() Difficulty {
	if p.Status == StatusNew {
		return DifficultyNew
	}
	recent := p.ReviewHistory
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}
	for _, entry := range recent {
		if entry.Result == ResultNotRemember {
			return DifficultyHard
		}
	}
	switch {
	case p.CurrentInterval <= 3:
		return DifficultyHard
	case p.CurrentInterval <= 7:
		return DifficultyMedium
	default:
		return DifficultyEasy
	}
}

// RetryReady reports whether a pending retry deadline has passed.
func (p ProgressRecord) RetryReady(t time.Time) bool {
	return p.RetryDeadline != nil && !t.Before(*p.RetryDeadline)
}

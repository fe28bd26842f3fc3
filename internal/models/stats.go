package models

import "time"

// DailyStats aggregates one day of study activity. The date key is the
// day in YYYY-MM-DD form.
type DailyStats struct {
	Date                string  `json:"date"`
	CardsStudied        int     `json:"cards_studied"`
	NewCards            int     `json:"new_cards"`
	ReviewCards         int     `json:"review_cards"`
	RememberedCards     int     `json:"remembered_cards"`
	ForgottenCards      int     `json:"forgotten_cards"`
	AverageResponseTime float64 `json:"average_response_time"`
}

// StreakData tracks consecutive study days.
type StreakData struct {
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
	LastStudyDate string `json:"last_study_date,omitempty"`
}

// OverallStats summarizes the whole progress ledger.
type OverallStats struct {
	TotalWords         int     `json:"total_words"`
	NewWords           int     `json:"new_words"`
	LearningWords      int     `json:"learning_words"`
	ReviewWords        int     `json:"review_words"`
	MasteredWords      int     `json:"mastered_words"`
	DueForReview       int     `json:"due_for_review"`
	AverageSuccessRate float64 `json:"average_success_rate"`
}

// ProgressExport is the envelope for progress export/import.
type ProgressExport struct {
	Version    string           `json:"version"`
	ExportedAt time.Time        `json:"exported_at"`
	Records    []ProgressRecord `json:"records"`
	DailyStats []DailyStats     `json:"daily_stats"`
	Streak     StreakData       `json:"streak"`
}

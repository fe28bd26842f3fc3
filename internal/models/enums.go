package models

// ReviewResult is the outcome of a single card review.
type ReviewResult string

const (
	ResultRemember    ReviewResult = "remember"
	ResultNotRemember ReviewResult = "not-remember"
)

func (r ReviewResult) Valid() bool {
	return r == ResultRemember || r == ResultNotRemember
}

// ReviewStatus is the learning stage of a word, derived from its counters.
type ReviewStatus string

const (
	StatusNew       ReviewStatus = "new"
	StatusLearning  ReviewStatus = "learning"
	StatusReview    ReviewStatus = "review"
	StatusMastered  ReviewStatus = "mastered"
	StatusSuspended ReviewStatus = "suspended"
)

func (s ReviewStatus) Valid() bool {
	switch s {
	case StatusNew, StatusLearning, StatusReview, StatusMastered, StatusSuspended:
		return true
	}
	return false
}

// Difficulty buckets words for session ordering.
type Difficulty string

const (
	DifficultyNew    Difficulty = "new"
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyNew, DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// SessionStatus is the lifecycle state of a study session.
type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionPaused    SessionStatus = "paused"
	SessionCompleted SessionStatus = "completed"
	SessionAbandoned SessionStatus = "abandoned"
)

func (s SessionStatus) Valid() bool {
	switch s {
	case SessionActive, SessionPaused, SessionCompleted, SessionAbandoned:
		return true
	}
	return false
}

// SessionType selects which cards a session draws from.
type SessionType string

const (
	SessionMixed          SessionType = "mixed"
	SessionNewOnly        SessionType = "new-only"
	SessionReviewOnly     SessionType = "review-only"
	SessionComparisonOnly SessionType = "comparison-only"
)

func (t SessionType) Valid() bool {
	switch t {
	case SessionMixed, SessionNewOnly, SessionReviewOnly, SessionComparisonOnly:
		return true
	}
	return false
}

// GroupCategory is the similarity axis of a word group.
type GroupCategory string

const (
	CategoryPhonetic GroupCategory = "phonetic"
	CategorySpelling GroupCategory = "spelling"
	CategoryMeaning  GroupCategory = "meaning"
	CategoryGrammar  GroupCategory = "grammar"
)

func (c GroupCategory) Valid() bool {
	switch c {
	case CategoryPhonetic, CategorySpelling, CategoryMeaning, CategoryGrammar:
		return true
	}
	return false
}

// GroupSource distinguishes built-in groups from user-defined ones.
type GroupSource string

const (
	GroupSystem GroupSource = "system"
	GroupUser   GroupSource = "user"
)

func (s GroupSource) Valid() bool {
	return s == GroupSystem || s == GroupUser
}

// DeckCategory describes where a deck came from.
type DeckCategory string

const (
	DeckPreset    DeckCategory = "preset"
	DeckImported  DeckCategory = "imported"
	DeckGenerated DeckCategory = "generated"
)

func (c DeckCategory) Valid() bool {
	switch c {
	case DeckPreset, DeckImported, DeckGenerated:
		return true
	}
	return false
}

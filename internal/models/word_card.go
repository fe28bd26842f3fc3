package models

import (
	"fmt"
	"strings"
	"time"
)

var partsOfSpeech = map[string]bool{
	"noun": true, "verb": true, "adjective": true, "adverb": true,
	"pronoun": true, "preposition": true, "conjunction": true,
	"interjection": true, "article": true,
}

var cefrLevels = map[string]bool{
	"A1": true, "A2": true, "B1": true, "B2": true, "C1": true, "C2": true,
}

// WordCard is one vocabulary entry being learned.
type WordCard struct {
	ID           string    `json:"id"`
	Word         string    `json:"word"`
	Translation  string    `json:"translation"`
	PartOfSpeech string    `json:"part_of_speech"`
	Hint         string    `json:"hint,omitempty"`
	AudioURL     string    `json:"audio_url,omitempty"`
	CEFR         string    `json:"cefr,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Validate checks required fields and closed vocabularies.
func (c WordCard) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Word) == "" {
		problems = append(problems, "word is required")
	}
	if strings.TrimSpace(c.Translation) == "" {
		problems = append(problems, "translation is required")
	}
	if c.PartOfSpeech != "" && !partsOfSpeech[c.PartOfSpeech] {
		problems = append(problems, fmt.Sprintf("unknown part of speech %q", c.PartOfSpeech))
	}
	if len(c.Hint) > 200 {
		problems = append(problems, "hint must be 200 characters or less")
	}
	if c.CEFR != "" && !cefrLevels[c.CEFR] {
		problems = append(problems, fmt.Sprintf("unknown CEFR level %q", c.CEFR))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid word card: %s", strings.Join(problems, "; "))
	}
	return nil
}

// CardFilter narrows word card listings.
type CardFilter struct {
	DeckID       string
	PartOfSpeech string
	CEFR         string
	Tag          string
	Search       string
	Limit        int
	Offset       int
}

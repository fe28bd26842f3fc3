package models

import (
	"fmt"
	"strings"
	"time"
)

// Word group size limits. Groups below two members carry no comparison
// value; above six the presentation layer cannot lay them out.
const (
	MinGroupSize = 2
	MaxGroupSize = 6
)

// WordGroup is a set of mutually confusable words presented together so
// the learner practices telling them apart.
type WordGroup struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	WordIDs     []string      `json:"word_ids"`
	Source      GroupSource   `json:"source"`
	Category    GroupCategory `json:"category"`
	Confidence  int           `json:"confidence"`
	Description string        `json:"description,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Validate checks group naming, size and category constraints.
func (g WordGroup) Validate() error {
	var problems []string
	if strings.TrimSpace(g.Name) == "" {
		problems = append(problems, "group name is required")
	}
	if len(g.WordIDs) < MinGroupSize {
		problems = append(problems, fmt.Sprintf("group must contain at least %d words", MinGroupSize))
	}
	if len(g.WordIDs) > MaxGroupSize {
		problems = append(problems, fmt.Sprintf("group cannot contain more than %d words", MaxGroupSize))
	}
	if !g.Source.Valid() {
		problems = append(problems, fmt.Sprintf("unknown group source %q", g.Source))
	}
	if !g.Category.Valid() {
		problems = append(problems, fmt.Sprintf("unknown group category %q", g.Category))
	}
	if g.Confidence < 0 || g.Confidence > 100 {
		problems = append(problems, "confidence must be between 0 and 100")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid word group: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Contains reports whether the group lists the given word ID.
func (g WordGroup) Contains(wordID string) bool {
	for _, id := range g.WordIDs {
		if id == wordID {
			return true
		}
	}
	return false
}

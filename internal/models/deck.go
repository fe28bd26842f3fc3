package models

import (
	"fmt"
	"strings"
	"time"
)

// Deck is a named collection of word cards.
type Deck struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Category    DeckCategory `json:"category"`
	Source      string       `json:"source,omitempty"`
	Enabled     bool         `json:"enabled"`
	CardCount   int          `json:"card_count"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Validate checks deck naming and category constraints.
func (d Deck) Validate() error {
	var problems []string
	name := strings.TrimSpace(d.Name)
	if name == "" {
		problems = append(problems, "deck name is required")
	}
	if len(name) > 100 {
		problems = append(problems, "deck name must be 100 characters or less")
	}
	if len(d.Description) > 500 {
		problems = append(problems, "deck description must be 500 characters or less")
	}
	if !d.Category.Valid() {
		problems = append(problems, fmt.Sprintf("unknown deck category %q", d.Category))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid deck: %s", strings.Join(problems, "; "))
	}
	return nil
}

// DeckWithCards bundles a deck and its cards for study planning.
type DeckWithCards struct {
	Deck
	Cards []WordCard `json:"cards"`
}

package testutil

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/avelar/wordflash/internal/db"
	"github.com/avelar/wordflash/internal/models"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(":memory:")
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, conn.Close())
	})
	return conn
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// Card builds a valid word card for tests. Override fields after the call
// when a test needs something specific.
func Card(id, word string) models.WordCard {
	return models.WordCard{
		ID:           id,
		Word:         word,
		Translation:  word + "-translation",
		PartOfSpeech: "noun",
		CEFR:         "A1",
		Tags:         []string{},
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
}

// Deck builds a valid deck for tests.
func Deck(id, name string) models.Deck {
	return models.Deck{
		ID:        id,
		Name:      name,
		Category:  models.DeckImported,
		Enabled:   true,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"alpine/translate/internal/db"
)

// NewTestDB opens a migrated sqlite database in a per-test temp dir.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

// SeedTranslation inserts a row directly and returns its ID.
func SeedTranslation(t *testing.T, database *sql.DB, id int64, sourceText, translatedText string) int64 {
	t.Helper()
	_, err := database.Exec(
		`INSERT INTO translations (id, source_text, translated_text, source_lang, target_lang, created_at)
		 VALUES (?, ?, ?, 'Español', 'Inglés', '2025-01-01T00:00:00Z')`,
		id, sourceText, translatedText,
	)
	require.NoError(t, err)
	return id
}

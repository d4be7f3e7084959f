package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/lherron/lexq/internal/db"
	"github.com/lherron/lexq/internal/store"
)

// TempDB creates a temporary migrated SQLite database for testing
func TempDB(t *testing.T) (*db.DB, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	if err := database.Migrate(); err != nil {
		database.Close()
		t.Fatalf("Failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		database.Close()
	})

	return database, dbPath
}

// TempStore creates a store over a temporary database and registers the
// given actors as editors
func TempStore(t *testing.T, editors ...string) *store.Store {
	t.Helper()

	database, _ := TempDB(t)
	s := store.New(database)
	for _, slug := range editors {
		if err := s.Permissions.AddActor(context.Background(), slug, "editor"); err != nil {
			t.Fatalf("Failed to add actor %s: %v", slug, err)
		}
	}
	return s
}

// WriteFile writes content to a file in dir and returns its path
func WriteFile(t *testing.T, dir, filename, content string) string {
	t.Helper()
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
	return path
}

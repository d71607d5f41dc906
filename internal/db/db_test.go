package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestSQLiteInit(t *testing.T) {
	SetLogger(zerolog.New(os.Stderr).Level(zerolog.Disabled))

	database := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	defer database.Close()

	if err := database.Init(); err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}

	if database.Get() == nil {
		t.Fatal("Expected database connection to be established")
	}

	if err := database.Get().Ping(); err != nil {
		t.Errorf("Failed to ping database: %v", err)
	}

	t.Run("tables are created", func(t *testing.T) {
		tables := []string{"posts", "media_entries", "site_content"}

		for _, table := range tables {
			var name string
			row := database.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table)
			if err := row.Scan(&name); err != nil {
				t.Errorf("Expected table %s to exist: %v", table, err)
			}
		}
	})

	t.Run("slug uniqueness is enforced", func(t *testing.T) {
		_, err := database.Exec(
			`INSERT INTO posts (id, slug, created_at, updated_at) VALUES ('1', 'dup', datetime('now'), datetime('now'))`)
		if err != nil {
			t.Fatalf("First insert failed: %v", err)
		}

		_, err = database.Exec(
			`INSERT INTO posts (id, slug, created_at, updated_at) VALUES ('2', 'dup', datetime('now'), datetime('now'))`)
		if err == nil {
			t.Error("Expected unique constraint violation for duplicate slug")
		}
	})
}

func TestSQLiteCloseWithoutInit(t *testing.T) {
	database := NewSQLite("unused.db")
	if err := database.Close(); err != nil {
		t.Errorf("Close on uninitialized database should be a no-op, got %v", err)
	}
}

package repositories

import (
	"database/sql"
	"testing"

	"github.com/sun-mit/streamhub/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func TestSQLiteStorage(t *testing.T) {
	t.Run("Get Set Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		storage := NewSQLiteStorage(db)

		if _, ok, err := storage.Get("missing"); err != nil || ok {
			t.Errorf("expected missing key to report absent, got ok=%v err=%v", ok, err)
		}

		if err := storage.Set("authUser", `{"name":"Ana","email":"ana@x.com"}`); err != nil {
			t.Fatalf("failed to set: %v", err)
		}

		value, ok, err := storage.Get("authUser")
		if err != nil || !ok {
			t.Fatalf("Get() ok=%v err=%v", ok, err)
		}
		if value != `{"name":"Ana","email":"ana@x.com"}` {
			t.Errorf("unexpected value %s", value)
		}

		// Upsert replaces
		if err := storage.Set("authUser", `{}`); err != nil {
			t.Fatalf("failed to overwrite: %v", err)
		}
		if value, _, _ := storage.Get("authUser"); value != `{}` {
			t.Errorf("expected overwrite to win, got %s", value)
		}

		if err := storage.Delete("authUser"); err != nil {
			t.Fatalf("failed to delete: %v", err)
		}
		if _, ok, _ := storage.Get("authUser"); ok {
			t.Error("expected key to be gone after delete")
		}
		if err := storage.Delete("authUser"); err != nil {
			t.Errorf("deleting absent key should be a no-op: %v", err)
		}
	})

	t.Run("Backs Repositories", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		storage := NewSQLiteStorage(db)

		sessions := NewSessionRepository(storage)
		identity, err := sessions.Register("Ana", "ana@x.com", "pw1")
		if err != nil {
			t.Fatalf("failed to register: %v", err)
		}

		watchlists := NewWatchlistRepository(storage)
		if _, err := watchlists.Toggle(identity, "550"); err != nil {
			t.Fatalf("failed to toggle: %v", err)
		}

		// Fresh repositories over the same database see the same state
		if _, ok := NewSessionRepository(storage).Current(); !ok {
			t.Error("expected session to persist in sqlite")
		}
		if !NewWatchlistRepository(storage).Contains(identity, "550") {
			t.Error("expected watchlist entry to persist in sqlite")
		}
	})
}

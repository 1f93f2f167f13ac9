package repositories

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/desertthunder/songhub/internal/models"
	"github.com/desertthunder/songhub/internal/session"
	"github.com/desertthunder/songhub/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	shared.ConfigureDatabase(db, 1, 1)

	if err := shared.RunMigrations(context.Background(), db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func TestSessionRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Get Missing Key", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSessionRepository(db)
		value, err := repo.Get(ctx, session.KeyToken)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if value != "" {
			t.Errorf("expected empty value, got %q", value)
		}
	})

	t.Run("Set And Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSessionRepository(db)
		if err := repo.Set(ctx, session.KeyToken, "first"); err != nil {
			t.Fatalf("failed to set value: %v", err)
		}
		if err := repo.Set(ctx, session.KeyToken, "second"); err != nil {
			t.Fatalf("failed to overwrite value: %v", err)
		}

		value, err := repo.Get(ctx, session.KeyToken)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if value != "second" {
			t.Errorf("expected second, got %q", value)
		}

		var count int
		db.QueryRow("SELECT COUNT(*) FROM session_store").Scan(&count)
		if count != 1 {
			t.Errorf("expected a single row, got %d", count)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSessionRepository(db)
		repo.Set(ctx, session.KeyUserID, "1")

		if err := repo.Delete(ctx, session.KeyUserID); err != nil {
			t.Fatalf("failed to delete value: %v", err)
		}
		if err := repo.Delete(ctx, session.KeyUserID); err != nil {
			t.Fatalf("deleting a missing key should not fail: %v", err)
		}
		if value, _ := repo.Get(ctx, session.KeyUserID); value != "" {
			t.Errorf("expected empty value after delete, got %q", value)
		}
	})

	t.Run("UpdatedAt", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSessionRepository(db)
		if _, ok, err := repo.UpdatedAt(ctx, session.KeyToken); err != nil || ok {
			t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
		}

		before := time.Now().UTC().Add(-time.Minute)
		repo.Set(ctx, session.KeyToken, "abc")

		updatedAt, ok, err := repo.UpdatedAt(ctx, session.KeyToken)
		if err != nil || !ok {
			t.Fatalf("expected timestamp, got ok=%v err=%v", ok, err)
		}
		if updatedAt.Before(before) {
			t.Errorf("expected recent timestamp, got %v", updatedAt)
		}
	})

	t.Run("Backs A Session", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		s := session.New(NewSessionRepository(db))
		guard := session.NewGuard(s, "")

		if _, err := guard.Enter(ctx); err == nil {
			t.Fatal("expected guard to fail before login")
		}

		if err := s.Begin(ctx, models.Credential{Token: "abc", UserID: "1"}); err != nil {
			t.Fatalf("failed to begin session: %v", err)
		}
		cred, err := guard.Enter(ctx)
		if err != nil {
			t.Fatalf("expected guard to pass, got %v", err)
		}
		if cred.Token != "abc" || cred.UserID != "1" {
			t.Errorf("unexpected credential %+v", cred)
		}

		if redirect := guard.Logout(ctx); redirect.Cause != nil {
			t.Fatalf("unexpected logout failure: %v", redirect.Cause)
		}
		if _, err := guard.Enter(ctx); err == nil {
			t.Error("expected guard to fail after logout")
		}
	})

	t.Run("Closed Database", func(t *testing.T) {
		db := setupTestDB(t)
		db.Close()

		repo := NewSessionRepository(db)
		if _, err := repo.Get(ctx, session.KeyToken); err == nil {
			t.Error("expected error from Get")
		}
		if err := repo.Set(ctx, session.KeyToken, "x"); err == nil {
			t.Error("expected error from Set")
		}
		if err := repo.Delete(ctx, session.KeyToken); err == nil {
			t.Error("expected error from Delete")
		}
		if _, _, err := repo.UpdatedAt(ctx, session.KeyToken); err == nil {
			t.Error("expected error from UpdatedAt")
		}
	})
}

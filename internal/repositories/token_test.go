package repositories

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/desertthunder/spotify-mcp/internal/auth"
	"github.com/desertthunder/spotify-mcp/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	shared.ConfigureDatabase(db, 1, 1)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func TestTokenRepository(t *testing.T) {
	ctx := context.Background()
	expiry := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("Load Empty", func(t *testing.T) {
		repo := NewTokenRepository(setupTestDB(t), "")

		tok, err := repo.Load(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if tok != nil {
			t.Errorf("expected nil token, got %+v", tok)
		}
	})

	t.Run("Save And Load", func(t *testing.T) {
		repo := NewTokenRepository(setupTestDB(t), "")
		want := &auth.Token{AccessToken: "a", RefreshToken: "r", TokenType: "Bearer", Scope: "streaming", ExpiresAt: expiry}

		if err := repo.Save(ctx, want); err != nil {
			t.Fatalf("failed to save token: %v", err)
		}
		got, err := repo.Load(ctx)
		if err != nil {
			t.Fatalf("failed to load token: %v", err)
		}

		if got.AccessToken != "a" || got.RefreshToken != "r" || got.Scope != "streaming" {
			t.Errorf("unexpected token %+v", got)
		}
		if !got.ExpiresAt.Equal(expiry) {
			t.Errorf("expected expiry %v, got %v", expiry, got.ExpiresAt)
		}
	})

	t.Run("Save Replaces", func(t *testing.T) {
		repo := NewTokenRepository(setupTestDB(t), "")

		if err := repo.Save(ctx, &auth.Token{AccessToken: "old", RefreshToken: "r1", ExpiresAt: expiry}); err != nil {
			t.Fatal(err)
		}
		if err := repo.Save(ctx, &auth.Token{AccessToken: "new", RefreshToken: "r2", ExpiresAt: expiry.Add(time.Hour)}); err != nil {
			t.Fatal(err)
		}

		got, err := repo.Load(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if got.AccessToken != "new" || got.RefreshToken != "r2" {
			t.Errorf("expected replaced token, got %+v", got)
		}
	})

	t.Run("Zero Expiry", func(t *testing.T) {
		repo := NewTokenRepository(setupTestDB(t), "")
		if err := repo.Save(ctx, &auth.Token{AccessToken: "a"}); err != nil {
			t.Fatalf("failed to save token: %v", err)
		}
		got, err := repo.Load(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if !got.ExpiresAt.IsZero() {
			t.Errorf("expected zero expiry, got %v", got.ExpiresAt)
		}
	})

	t.Run("Nil Token", func(t *testing.T) {
		repo := NewTokenRepository(setupTestDB(t), "")
		if err := repo.Save(ctx, nil); err == nil {
			t.Error("expected error for nil token")
		}
	})

	t.Run("Accounts Are Isolated", func(t *testing.T) {
		db := setupTestDB(t)
		work := NewTokenRepository(db, "work")
		home := NewTokenRepository(db, "home")

		if err := work.Save(ctx, &auth.Token{AccessToken: "w", ExpiresAt: expiry}); err != nil {
			t.Fatal(err)
		}
		got, err := home.Load(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if got != nil {
			t.Errorf("expected no token for other account, got %+v", got)
		}
	})

	t.Run("Clear", func(t *testing.T) {
		repo := NewTokenRepository(setupTestDB(t), "")
		if err := repo.Clear(ctx); err != nil {
			t.Fatalf("expected clearing empty cache to succeed, got %v", err)
		}
		if err := repo.Save(ctx, &auth.Token{AccessToken: "a", ExpiresAt: expiry}); err != nil {
			t.Fatal(err)
		}
		if err := repo.Clear(ctx); err != nil {
			t.Fatal(err)
		}
		if got, _ := repo.Load(ctx); got != nil {
			t.Errorf("expected token cleared, got %+v", got)
		}
	})

	t.Run("UpdatedAt", func(t *testing.T) {
		repo := NewTokenRepository(setupTestDB(t), "")
		written := time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)
		repo.now = func() time.Time { return written }

		if _, ok, err := repo.UpdatedAt(ctx); ok || err != nil {
			t.Errorf("expected no row, got %v %v", ok, err)
		}
		if err := repo.Save(ctx, &auth.Token{AccessToken: "a", ExpiresAt: expiry}); err != nil {
			t.Fatal(err)
		}
		got, ok, err := repo.UpdatedAt(ctx)
		if err != nil || !ok || !got.Equal(written) {
			t.Errorf("expected %v, got %v %v %v", written, got, ok, err)
		}
	})

	t.Run("Serves As Token Cache", func(t *testing.T) {
		repo := NewTokenRepository(setupTestDB(t), "")
		if err := repo.Save(ctx, &auth.Token{AccessToken: "a", RefreshToken: "r", ExpiresAt: expiry}); err != nil {
			t.Fatal(err)
		}

		var cache auth.TokenCache = repo
		tok, err := cache.Load(ctx)
		if err != nil || tok.RefreshToken != "r" {
			t.Errorf("expected repository to serve as token cache, got %+v %v", tok, err)
		}
	})
}

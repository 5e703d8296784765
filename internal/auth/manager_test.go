package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/desertthunder/spotify-mcp/internal/shared"
)

var testCredentials = map[string]string{
	"client_id":     "test_client_id",
	"client_secret": "test_client_secret",
	"redirect_uri":  "http://127.0.0.1:8888/callback",
}

func newTokenServer(t *testing.T, status int, body map[string]any) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if err := r.ParseForm(); err != nil {
			t.Errorf("failed to parse form: %v", err)
		}
		if got := r.PostForm.Get("grant_type"); got != "refresh_token" {
			t.Errorf("expected refresh_token grant, got %q", got)
		}
		if _, _, ok := r.BasicAuth(); !ok {
			t.Error("expected client credentials in basic auth header")
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestManager(t *testing.T) {
	ctx := context.Background()

	t.Run("NewManager", func(t *testing.T) {
		t.Run("missing credentials", func(t *testing.T) {
			for _, key := range []string{"client_id", "client_secret", "redirect_uri"} {
				creds := map[string]string{}
				for k, v := range testCredentials {
					if k != key {
						creds[k] = v
					}
				}
				_, err := NewManager(ManagerOpts{Credentials: creds, Cache: NewMemoryCache(nil)})
				if !errors.Is(err, shared.ErrMissingCredentials) {
					t.Errorf("expected ErrMissingCredentials without %s, got %v", key, err)
				}
			}
		})

		t.Run("missing cache", func(t *testing.T) {
			if _, err := NewManager(ManagerOpts{Credentials: testCredentials}); !errors.Is(err, shared.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})

		t.Run("auth URL", func(t *testing.T) {
			m, err := NewManager(ManagerOpts{Credentials: testCredentials, Cache: NewMemoryCache(nil)})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			authURL := m.AuthURL("test_state")
			for _, want := range []string{"accounts.spotify.com", "test_client_id", "test_state", "user-modify-playback-state"} {
				if !strings.Contains(authURL, want) {
					t.Errorf("auth URL should contain %q: %s", want, authURL)
				}
			}
		})
	})

	t.Run("IsExpired", func(t *testing.T) {
		now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
		m, _ := NewManager(ManagerOpts{Credentials: testCredentials, Cache: NewMemoryCache(nil), Now: func() time.Time { return now }})

		tc := []struct {
			name  string
			token *Token
			want  bool
		}{
			{name: "nil", token: nil, want: true},
			{name: "past", token: &Token{AccessToken: "a", ExpiresAt: now.Add(-time.Second)}, want: true},
			{name: "inside leeway", token: &Token{AccessToken: "a", ExpiresAt: now.Add(30 * time.Second)}, want: true},
			{name: "future", token: &Token{AccessToken: "a", ExpiresAt: now.Add(time.Hour)}, want: false},
			{name: "no expiry", token: &Token{AccessToken: "a"}, want: true},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				if got := m.IsExpired(tt.token); got != tt.want {
					t.Errorf("IsExpired() = %v, want %v", got, tt.want)
				}
			})
		}
	})

	t.Run("Refresh persists new token", func(t *testing.T) {
		srv, calls := newTokenServer(t, http.StatusOK, map[string]any{
			"access_token": "new_access",
			"token_type":   "Bearer",
			"expires_in":   3600,
			"scope":        "user-read-playback-state",
		})

		cache := NewMemoryCache(&Token{AccessToken: "old_access", RefreshToken: "refresh", ExpiresAt: time.Now().Add(-time.Hour)})
		m, _ := NewManager(ManagerOpts{Credentials: testCredentials, Cache: cache, TokenURL: srv.URL})

		tok, err := m.Refresh(ctx, "refresh")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if calls.Load() != 1 {
			t.Errorf("expected one token request, got %d", calls.Load())
		}
		if tok.AccessToken != "new_access" {
			t.Errorf("expected new access token, got %s", tok.AccessToken)
		}
		if tok.RefreshToken != "refresh" {
			t.Errorf("expected refresh token to be kept when omitted, got %q", tok.RefreshToken)
		}

		access, err := m.AccessToken(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if access != "new_access" {
			t.Errorf("old access token must not be reused after refresh, got %s", access)
		}
		if m.IsExpired(tok) {
			t.Error("refreshed token should be valid")
		}
	})

	t.Run("Refresh rejected", func(t *testing.T) {
		srv, _ := newTokenServer(t, http.StatusBadRequest, map[string]any{
			"error":             "invalid_grant",
			"error_description": "Refresh token revoked",
		})

		cache := NewMemoryCache(expiredToken())
		m, _ := NewManager(ManagerOpts{Credentials: testCredentials, Cache: cache, TokenURL: srv.URL})

		_, err := m.Refresh(ctx, "refresh-1")
		if !errors.Is(err, shared.ErrRefreshFailed) {
			t.Fatalf("expected ErrRefreshFailed, got %v", err)
		}

		tok, _ := cache.Load(ctx)
		if tok.AccessToken != "stale" {
			t.Error("cache must not change on a failed refresh")
		}
	})

	t.Run("Guard with Manager end to end", func(t *testing.T) {
		srv, calls := newTokenServer(t, http.StatusOK, map[string]any{
			"access_token":  "rotated",
			"refresh_token": "refresh-2",
			"token_type":    "Bearer",
			"expires_in":    3600,
		})

		cache := NewFileCache(filepath.Join(t.TempDir(), "token.json"))
		if err := cache.Save(ctx, expiredToken()); err != nil {
			t.Fatalf("failed to seed cache: %v", err)
		}
		m, _ := NewManager(ManagerOpts{Credentials: testCredentials, Cache: cache, TokenURL: srv.URL})
		guard, _ := newTestGuard(m)

		for i := 0; i < 3; i++ {
			if err := guard.Ensure(ctx); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		}
		if calls.Load() != 1 {
			t.Errorf("expected one refresh across calls, got %d", calls.Load())
		}

		tok, _ := cache.Load(ctx)
		if tok.RefreshToken != "refresh-2" {
			t.Errorf("expected rotated refresh token, got %s", tok.RefreshToken)
		}
	})

	t.Run("AccessToken without token", func(t *testing.T) {
		m, _ := NewManager(ManagerOpts{Credentials: testCredentials, Cache: NewMemoryCache(nil)})
		if _, err := m.AccessToken(ctx); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("Status", func(t *testing.T) {
		m, _ := NewManager(ManagerOpts{Credentials: testCredentials, Cache: NewMemoryCache(nil)})
		status, err := m.Status(ctx)
		if err != nil || status != "no token cached" {
			t.Errorf("unexpected status %q, %v", status, err)
		}

		m.cache.Save(ctx, validToken())
		status, _ = m.Status(ctx)
		if !strings.Contains(status, "token valid") {
			t.Errorf("expected valid status, got %q", status)
		}

		if err := m.Logout(ctx); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if tok, _ := m.CachedToken(ctx); tok != nil {
			t.Error("expected token to be cleared")
		}
	})
}

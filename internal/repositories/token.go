package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/spotify-mcp/internal/auth"
)

// DefaultAccount is the row key used when no account name is configured.
const DefaultAccount = "default"

// TokenRepository implements [auth.TokenCache] on the oauth_tokens table.
type TokenRepository struct {
	db      *sql.DB
	account string
	now     func() time.Time
}

// NewTokenRepository creates a new [TokenRepository] for account.
func NewTokenRepository(db *sql.DB, account string) *TokenRepository {
	if account == "" {
		account = DefaultAccount
	}
	return &TokenRepository{db: db, account: account, now: time.Now}
}

// Load returns the cached token, or nil when the account has none.
func (r *TokenRepository) Load(ctx context.Context) (*auth.Token, error) {
	query := `
		SELECT access_token, refresh_token, token_type, scope, expires_at
		FROM oauth_tokens
		WHERE account = ?
	`

	var (
		token     auth.Token
		expiresAt sql.NullTime
	)

	err := r.db.QueryRowContext(ctx, query, r.account).Scan(
		&token.AccessToken, &token.RefreshToken, &token.TokenType, &token.Scope, &expiresAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query token: %w", err)
	}

	if expiresAt.Valid {
		token.ExpiresAt = expiresAt.Time
	}
	return &token, nil
}

// Save inserts or replaces the account's token.
func (r *TokenRepository) Save(ctx context.Context, token *auth.Token) error {
	if token == nil {
		return fmt.Errorf("cannot save nil token")
	}

	query := `
		INSERT INTO oauth_tokens (account, access_token, refresh_token, token_type, scope, expires_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(account) DO UPDATE SET
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			token_type = excluded.token_type,
			scope = excluded.scope,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at
	`

	var expiresAt sql.NullTime
	if !token.ExpiresAt.IsZero() {
		expiresAt = sql.NullTime{Time: token.ExpiresAt.UTC(), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		r.account, token.AccessToken, token.RefreshToken, token.TokenType, token.Scope, expiresAt, r.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

// Clear deletes the account's token. Clearing an empty cache is not an error.
func (r *TokenRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM oauth_tokens WHERE account = ?", r.account); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

// UpdatedAt reports when the account's token was last written. ok is false when there is none.
func (r *TokenRepository) UpdatedAt(ctx context.Context) (t time.Time, ok bool, err error) {
	err = r.db.QueryRowContext(ctx, "SELECT updated_at FROM oauth_tokens WHERE account = ?", r.account).Scan(&t)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to query token: %w", err)
	}
	return t, true, nil
}

var _ auth.TokenCache = (*TokenRepository)(nil)

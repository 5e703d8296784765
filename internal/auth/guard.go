package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotify-mcp/internal/shared"
)

// Guard ensures an operation only runs with a non-expired access token.
//
// Concurrent callers that observe the same expired token share one refresh.
// The refresh lock is never held while the wrapped operation runs.
type Guard struct {
	auth   Authenticator
	logger *log.Logger

	mu sync.Mutex
	// rejected is the refresh token the collaborator last refused. While the
	// cache still holds it the session stays in the reauthentication state.
	rejected string
}

// NewGuard creates a [Guard] around the auth collaborator.
func NewGuard(a Authenticator, logger *log.Logger) *Guard {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Guard{auth: a, logger: shared.WithLogger(logger, "component", "auth")}
}

// Ensure checks the cached token and refreshes it when expired.
//
// Fails with [shared.ErrNotAuthenticated] when no token exists and with
// [shared.ErrReauthRequired] when the refresh grant is rejected.
func (g *Guard) Ensure(ctx context.Context) error {
	tok, err := g.auth.CachedToken(ctx)
	if err != nil {
		g.logger.Error("failed to read cached token", "error", err)
		return fmt.Errorf("%w: %v", shared.ErrNotAuthenticated, err)
	}
	if tok == nil {
		g.logger.Warn("no auth token found")
		return shared.ErrNotAuthenticated
	}
	if !g.auth.IsExpired(tok) {
		return nil
	}
	return g.refresh(ctx)
}

func (g *Guard) refresh(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	// Re-read under the lock: a concurrent caller may have refreshed already.
	tok, err := g.auth.CachedToken(ctx)
	if err != nil {
		g.logger.Error("failed to read cached token", "error", err)
		return fmt.Errorf("%w: %v", shared.ErrNotAuthenticated, err)
	}
	if tok == nil {
		g.logger.Warn("auth token disappeared before refresh")
		return shared.ErrNotAuthenticated
	}
	if !g.auth.IsExpired(tok) {
		return nil
	}

	if tok.RefreshToken == "" {
		g.logger.Error("token expired and no refresh token is available")
		return fmt.Errorf("%w: %v", shared.ErrReauthRequired, shared.ErrNoRefreshToken)
	}
	if tok.RefreshToken == g.rejected {
		return shared.ErrReauthRequired
	}

	g.logger.Info("auth token expired, refreshing")
	if _, err := g.auth.Refresh(ctx, tok.RefreshToken); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			g.logger.Warn("token refresh interrupted", "error", err)
			return err
		}
		g.rejected = tok.RefreshToken
		g.logger.Error("token refresh failed", "error", err)
		return fmt.Errorf("%w: %v", shared.ErrReauthRequired, err)
	}

	g.rejected = ""
	g.logger.Info("auth token refreshed")
	return nil
}

// Do runs op after [Guard.Ensure] succeeds.
func (g *Guard) Do(ctx context.Context, op func(ctx context.Context) error) error {
	if err := g.Ensure(ctx); err != nil {
		return err
	}
	return op(ctx)
}

// EnsureAuthenticated runs op with a valid token and returns its result unchanged.
func EnsureAuthenticated[T any](ctx context.Context, g *Guard, op func(ctx context.Context) (T, error)) (T, error) {
	if err := g.Ensure(ctx); err != nil {
		var zero T
		return zero, err
	}
	return op(ctx)
}

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/spotify-mcp/internal/server"
	"github.com/desertthunder/spotify-mcp/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin runs the browser consent flow and stores the resulting token.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	m, err := r.Manager()
	if err != nil {
		return err
	}

	state, err := shared.GenerateState()
	if err != nil {
		return err
	}

	redirect := r.config.Credentials.Spotify.RedirectURI
	handler := server.NewOAuthHandler(m, state, redirect, r.logger)
	callback := server.NewCallbackServer(handler, r.logger)

	addr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
	if err := callback.Start(addr); err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := callback.Shutdown(shutdownCtx); err != nil {
			r.logger.Warn("failed to shut down callback server", "error", err)
		}
	}()

	authURL := m.AuthURL(state)
	r.writePlain("%s\n\n%s\n\n", r.palette.Title("Authorize spotify-mcp with Spotify:"), authURL)

	if !cmd.Bool("no-browser") {
		if err := shared.OpenBrowser(authURL); err != nil {
			r.logger.Warn("failed to open browser, open the URL manually", "error", err)
		}
	}

	timeout := cmd.Duration("timeout")
	if timeout <= 0 {
		timeout = server.ConsentTimeout
	}
	r.logger.Info("waiting for authorization", "redirect_uri", redirect, "timeout", timeout)

	tok, err := callback.Wait(ctx, timeout)
	if err != nil {
		return err
	}

	r.logger.Info("token cached", "expires_at", tok.ExpiresAt)
	return r.writePlain("%s\n", r.palette.OK("Authentication successful"))
}

// AuthStatus reports the cached token state without contacting Spotify.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	m, err := r.Manager()
	if err != nil {
		return err
	}

	status, err := m.Status(ctx)
	if err != nil {
		return err
	}

	tok, err := m.CachedToken(ctx)
	if err != nil {
		return err
	}

	valid := tok != nil && !m.IsExpired(tok)
	r.writePlain("%s\n", r.palette.Status("Token:", status, valid))
	if tok == nil {
		r.writePlain("%s\n", r.palette.Help("Run `spotify-mcp auth login` to authorize."))
	} else if !valid && tok.RefreshToken != "" {
		r.writePlain("%s\n", r.palette.Help("The token will be refreshed on the next tool call."))
	}
	return nil
}

// AuthLogout removes the cached token.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	m, err := r.Manager()
	if err != nil {
		return err
	}
	if err := m.Logout(ctx); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	r.logger.Info("token cache cleared")
	return r.writePlain("%s\n", r.palette.OK("Logged out"))
}

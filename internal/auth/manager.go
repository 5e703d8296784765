package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotify-mcp/internal/shared"
	"golang.org/x/oauth2"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"

	// ExpiryLeeway treats a token as expired this long before its actual expiry.
	ExpiryLeeway = 60 * time.Second
)

// Scopes requested during consent.
var Scopes = []string{
	"user-read-currently-playing",
	"user-read-playback-state",
	"user-modify-playback-state",
	"app-remote-control",
	"streaming",
	"playlist-read-private",
	"playlist-read-collaborative",
	"playlist-modify-private",
	"playlist-modify-public",
	"user-read-playback-position",
	"user-top-read",
	"user-read-recently-played",
	"user-library-modify",
	"user-library-read",
}

// Manager is the OAuth2 collaborator: it owns the [TokenCache], answers expiry
// checks and performs refresh grants. It implements [Authenticator].
type Manager struct {
	config     *oauth2.Config
	cache      TokenCache
	httpClient *http.Client
	logger     *log.Logger
	now        func() time.Time
}

// ManagerOpts configures a [Manager].
type ManagerOpts struct {
	Credentials map[string]string
	Cache       TokenCache
	HTTPClient  *http.Client
	Logger      *log.Logger
	TokenURL    string
	Now         func() time.Time
}

// NewManager creates a [Manager] from client credentials. client_id, client_secret and redirect_uri are required.
func NewManager(opts ManagerOpts) (*Manager, error) {
	for _, key := range []string{"client_id", "client_secret", "redirect_uri"} {
		if opts.Credentials[key] == "" {
			return nil, fmt.Errorf("%w: missing %s in credentials", shared.ErrMissingCredentials, key)
		}
	}
	if opts.Cache == nil {
		return nil, fmt.Errorf("%w: token cache is required", shared.ErrInvalidConfig)
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.TokenURL == "" {
		opts.TokenURL = spotifyTokenURL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	config := &oauth2.Config{
		ClientID:     opts.Credentials["client_id"],
		ClientSecret: opts.Credentials["client_secret"],
		RedirectURL:  opts.Credentials["redirect_uri"],
		Scopes:       Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   spotifyAuthURL,
			TokenURL:  opts.TokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}

	return &Manager{
		config:     config,
		cache:      opts.Cache,
		httpClient: opts.HTTPClient,
		logger:     shared.WithLogger(opts.Logger, "component", "oauth"),
		now:        opts.Now,
	}, nil
}

// OAuthConfig exposes the underlying [oauth2.Config] for the consent callback handler.
func (m *Manager) OAuthConfig() *oauth2.Config {
	return m.config
}

// AuthURL returns the consent URL for the given CSRF state.
func (m *Manager) AuthURL(state string) string {
	return m.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// CachedToken returns the stored token, or nil when none exists.
func (m *Manager) CachedToken(ctx context.Context) (*Token, error) {
	return m.cache.Load(ctx)
}

// IsExpired reports whether the token expires within [ExpiryLeeway].
//
// A token without an expiry is treated as expired so it is refreshed.
func (m *Manager) IsExpired(token *Token) bool {
	if token == nil || token.AccessToken == "" || token.ExpiresAt.IsZero() {
		return true
	}
	return !m.now().Add(ExpiryLeeway).Before(token.ExpiresAt)
}

// Refresh exchanges refreshToken for a new token and persists it.
//
// Spotify may omit the refresh token from the response, in which case the old one is kept.
func (m *Manager) Refresh(ctx context.Context, refreshToken string) (*Token, error) {
	if refreshToken == "" {
		return nil, shared.ErrNoRefreshToken
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, m.httpClient)
	src := m.config.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken, Expiry: m.now().Add(-time.Hour)})

	fresh, err := src.Token()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", shared.ErrRefreshFailed, err)
	}

	tok := FromOAuth2(fresh)
	if tok.RefreshToken == "" {
		tok.RefreshToken = refreshToken
	}

	if err := m.cache.Save(ctx, tok); err != nil {
		return nil, fmt.Errorf("%w: failed to persist refreshed token: %v", shared.ErrRefreshFailed, err)
	}

	m.logger.Debug("persisted refreshed token", "expires_at", tok.ExpiresAt.Format(time.RFC3339))
	return tok, nil
}

// Exchange trades an authorization code from the consent callback for a token and persists it.
func (m *Manager) Exchange(ctx context.Context, code string) (*Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, m.httpClient)
	t, err := m.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to exchange auth code: %v", shared.ErrAuthFailed, err)
	}
	return m.Store(ctx, t)
}

// Store persists a token obtained by the consent flow.
func (m *Manager) Store(ctx context.Context, t *oauth2.Token) (*Token, error) {
	tok := FromOAuth2(t)
	if tok == nil || tok.AccessToken == "" {
		return nil, fmt.Errorf("%w: empty token", shared.ErrAuthFailed)
	}
	if err := m.cache.Save(ctx, tok); err != nil {
		return nil, fmt.Errorf("failed to save token: %w", err)
	}
	return tok, nil
}

// Logout removes the cached token.
func (m *Manager) Logout(ctx context.Context) error {
	return m.cache.Clear(ctx)
}

// AccessToken returns the current access token from the cache.
//
// The API client calls this for every request so a refreshed token replaces the old one immediately.
func (m *Manager) AccessToken(ctx context.Context) (string, error) {
	tok, err := m.cache.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read cached token: %w", err)
	}
	if tok == nil || tok.AccessToken == "" {
		return "", shared.ErrNotAuthenticated
	}
	return tok.AccessToken, nil
}

// Status describes the cached token for `auth status`.
func (m *Manager) Status(ctx context.Context) (string, error) {
	tok, err := m.cache.Load(ctx)
	if err != nil {
		return "", err
	}
	if tok == nil {
		return "no token cached", nil
	}

	state := "valid"
	if m.IsExpired(tok) {
		state = "expired"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "token %s, expires %s", state, tok.ExpiresAt.Local().Format(time.RFC1123))
	if tok.RefreshToken == "" {
		b.WriteString(", no refresh token")
	}
	return b.String(), nil
}

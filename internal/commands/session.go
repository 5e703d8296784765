package commands

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotify-mcp/internal/auth"
	"github.com/desertthunder/spotify-mcp/internal/device"
	"github.com/desertthunder/spotify-mcp/internal/services"
	"github.com/desertthunder/spotify-mcp/internal/shared"
	"golang.org/x/sync/singleflight"
)

// SessionOpts configures a [Session].
type SessionOpts struct {
	Client services.Client
	Guard  *auth.Guard
	Logger *log.Logger
}

// Session is the process-lifetime handle every command runs against.
type Session struct {
	client   services.Client
	guard    *auth.Guard
	resolver *device.Resolver
	logger   *log.Logger

	lookups  singleflight.Group
	mu       sync.RWMutex
	username string
}

// NewSession creates a [Session]. Client and Guard are required.
func NewSession(opts SessionOpts) (*Session, error) {
	if opts.Client == nil {
		return nil, fmt.Errorf("%w: spotify client is required", shared.ErrMissingConfig)
	}
	if opts.Guard == nil {
		return nil, fmt.Errorf("%w: token guard is required", shared.ErrMissingConfig)
	}

	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Session{
		client:   opts.Client,
		guard:    opts.Guard,
		resolver: device.NewResolver(opts.Client, logger),
		logger:   shared.WithLogger(logger, "component", "commands"),
	}, nil
}

// Username returns the current user's display name, fetching it once.
func (s *Session) Username(ctx context.Context) (string, error) {
	return auth.EnsureAuthenticated(ctx, s.guard, s.lookupUsername)
}

// lookupUsername must run inside the guard. Concurrent first lookups share one request.
func (s *Session) lookupUsername(ctx context.Context) (string, error) {
	s.mu.RLock()
	name := s.username
	s.mu.RUnlock()
	if name != "" {
		return name, nil
	}

	v, err, _ := s.lookups.Do("username", func() (any, error) {
		user, err := s.client.CurrentUser(ctx)
		if err != nil {
			return "", err
		}
		if user == nil {
			return "", fmt.Errorf("%w: empty user profile", shared.ErrAPIRequest)
		}

		s.mu.Lock()
		s.username = user.DisplayName
		s.mu.Unlock()
		s.logger.Debug("cached display name", "username", user.DisplayName)
		return user.DisplayName, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// authed runs op inside the token guard.
func authed[T any](ctx context.Context, s *Session, op func(ctx context.Context) (T, error)) (T, error) {
	return auth.EnsureAuthenticated(ctx, s.guard, op)
}

// onDevice runs op inside the token guard and then the device resolver.
func onDevice[T any](ctx context.Context, s *Session, explicit string, op func(ctx context.Context, deviceID string) (T, error)) (T, error) {
	return auth.EnsureAuthenticated(ctx, s.guard, func(ctx context.Context) (T, error) {
		return device.WithActiveDevice(ctx, s.resolver, explicit, op)
	})
}

func missing(name string) error {
	return fmt.Errorf("%w: %s is required", shared.ErrMissingArgument, name)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", shared.ErrInvalidArgument, fmt.Sprintf(format, args...))
}

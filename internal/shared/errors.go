package shared

import (
	"errors"
	"fmt"
)

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authentication errors
	ErrAuthFailed         = fmt.Errorf("authentication failed")
	ErrNotAuthenticated   = fmt.Errorf("not authenticated: run 'spotify-mcp auth login' to authorize this application")
	ErrReauthRequired     = fmt.Errorf("reauthentication required: the refresh token was rejected, run 'spotify-mcp auth login' again")
	ErrTokenExpired       = fmt.Errorf("access token expired")
	ErrRefreshFailed      = fmt.Errorf("token refresh failed")
	ErrNoRefreshToken     = fmt.Errorf("no refresh token available")
	ErrTimeout            = fmt.Errorf("operation timed out")
	ErrNoDeviceAvailable  = fmt.Errorf("no devices available: open Spotify on a phone, computer or speaker")
	ErrNoTrackToResume    = fmt.Errorf("no track to resume playback")
	ErrNothingPlaying     = fmt.Errorf("no track playing")
	ErrUnsupportedBackend = fmt.Errorf("unsupported token cache backend")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrPlaylistNotFound   = fmt.Errorf("playlist not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)

// APIError is a failed call against the remote Web API.
//
// The remote message is preserved verbatim so it can be shown to the caller.
type APIError struct {
	StatusCode int
	Message    string
	RetryAfter string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("status %d", e.StatusCode)
	}
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
}

// Unwrap lets callers match any remote failure with [ErrAPIRequest].
func (e *APIError) Unwrap() error {
	return ErrAPIRequest
}

// IsValidation reports whether err came from a caller-supplied argument failing a precondition.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrMissingArgument) || errors.Is(err, ErrInvalidArgument)
}

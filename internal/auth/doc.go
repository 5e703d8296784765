// Package auth keeps the Spotify OAuth2 access token valid for a long-running session.
//
// # Guard
//
// [Guard] wraps authenticated operations. Before the operation runs it reads the
// cached token through an [Authenticator]:
//
//	no token          -> shared.ErrNotAuthenticated (complete `auth login` first)
//	valid             -> run the operation
//	expired           -> one refresh grant, then run the operation
//	refresh rejected  -> shared.ErrReauthRequired, operation not run
//
// Expiry is decided by [Authenticator.IsExpired] alone. The refresh is a
// critical section: callers that see the same expired token wait for a single
// refresh and reuse its result. The lock covers only the refresh.
//
// A rejected refresh token keeps the session in the reauthentication state
// until a new consent replaces the cached token.
//
// # Manager
//
// [Manager] is the production [Authenticator] built on [golang.org/x/oauth2].
// It persists tokens to a [TokenCache]: [FileCache] (JSON, mode 0600),
// [MemoryCache], or the sqlite repository in internal/repositories.
package auth

// Package commands implements the Spotify operations exposed as tools.
//
// # Composition
//
// Every operation runs inside the token guard ([auth.EnsureAuthenticated]).
// Player operations additionally run inside the device resolver
// ([device.WithActiveDevice]), always in that order: authentication is
// checked before the device list is fetched, because listing devices is
// itself an authenticated call.
//
// Arguments are validated before either wrapper runs, so a rejected argument
// never causes a token refresh or a remote call. Validation failures match
// [shared.IsValidation].
//
// # Session
//
// [Session] lives as long as the process. It holds the API client and the
// user's display name, fetched lazily on first use and cached afterwards.
// The display name decides whether a playlist belongs to the user.
package commands

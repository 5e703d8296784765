// Package server hosts the local HTTP listener for the OAuth consent redirect.
//
// # Consent Flow
//
// `spotify-mcp auth login` starts a [CallbackServer] on the [server] address
// from the configuration, opens the Spotify consent page in a browser, and
// waits up to [ConsentTimeout] for the redirect. [OAuthHandler] validates the
// state parameter (CSRF protection), hands the code to an [Exchanger]
// ([auth.Manager]) which stores the token, and reports the outcome once.
// Only the first callback is processed.
//
// # Router Infrastructure
//
// [BasicRouter] uses [http.ServeMux] with method filtering and a
// [Middleware] stack. [RequestLogger] logs paths and statuses but never
// query strings, which carry the authorization code.
package server

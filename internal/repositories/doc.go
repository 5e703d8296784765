// Package repositories implements SQLite persistence for the OAuth token cache.
//
// [TokenRepository] satisfies [auth.TokenCache] and is selected with
// [cache] backend = "sqlite". The schema lives in the embedded migrations
// of the shared package and must be applied with [shared.RunMigrations]
// before use (the setup command does this).
//
// Rows are keyed by account so several Spotify logins can share one
// database file; the server reads the account named in its configuration.
package repositories

// Package services implements [Client] for the Spotify Web API.
//
// # Authentication
//
// [SpotifyService] never holds an access token. Each request asks its
// [TokenSource] for the current token, so the token guard can refresh it
// between calls without the client noticing. The client itself never
// refreshes and never retries.
//
// # Pacing
//
// Requests pass through a [rate.Limiter] configured from the [api] config
// section. Waiting on the limiter honors context cancellation.
//
// # Error Handling
//
// Non-2xx responses become [shared.APIError] with the HTTP status and the
// message from Spotify's error body:
//
//	{"error": {"status": 404, "message": "Non existing id"}}
//
// A 429 carries the Retry-After header in [shared.APIError.RetryAfter].
// 404 on a playlist is additionally wrapped with [shared.ErrPlaylistNotFound].
//
// # Empty Responses
//
// Player endpoints answer 204 with no body when nothing is playing;
// [SpotifyService.PlaybackState] and [SpotifyService.CurrentlyPlaying] return nil, nil in that case.
package services

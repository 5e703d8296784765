package services

import (
	"context"

	"github.com/desertthunder/spotify-mcp/internal/device"
)

// Client is the set of Spotify Web API resource calls the command layer uses.
//
// Each call is authenticated and fails with [shared.APIError] on a non-2xx response.
type Client interface {
	CurrentUser(ctx context.Context) (*SpotifyUser, error)

	Search(ctx context.Context, query string, types []string, limit int) (*SpotifySearchResult, error)
	Track(ctx context.Context, trackID string) (*SpotifyTrack, error)
	Album(ctx context.Context, albumID string) (*SpotifyAlbum, error)
	Artist(ctx context.Context, artistID string) (*SpotifyArtist, error)
	ArtistAlbums(ctx context.Context, artistID string) (*Paging[SpotifyAlbum], error)
	ArtistTopTracks(ctx context.Context, artistID string) ([]SpotifyTrack, error)

	Playlist(ctx context.Context, playlistID string) (*SpotifyPlaylist, error)
	UserPlaylists(ctx context.Context, limit, offset int) (*Paging[SpotifySimplePlaylist], error)
	AddPlaylistItems(ctx context.Context, playlistID string, uris []string, position *int) (string, error)
	RemovePlaylistItems(ctx context.Context, playlistID string, uris []string) (string, error)
	CreatePlaylist(ctx context.Context, userID string, details PlaylistDetails) (*SpotifyPlaylist, error)
	ChangePlaylistDetails(ctx context.Context, playlistID string, details PlaylistDetails) error

	// PlaybackState returns nil when nothing is playing anywhere.
	PlaybackState(ctx context.Context) (*SpotifyPlaybackState, error)
	// CurrentlyPlaying returns nil when nothing is playing.
	CurrentlyPlaying(ctx context.Context) (*SpotifyPlaybackState, error)
	Devices(ctx context.Context) ([]device.Device, error)
	Queue(ctx context.Context) (*SpotifyQueue, error)

	Play(ctx context.Context, deviceID string, opts PlayOptions) error
	Pause(ctx context.Context, deviceID string) error
	Next(ctx context.Context, deviceID string) error
	Previous(ctx context.Context, deviceID string) error
	Seek(ctx context.Context, deviceID string, positionMS int) error
	SetVolume(ctx context.Context, deviceID string, percent int) error
	AddToQueue(ctx context.Context, deviceID, uri string) error
}

// TokenSource supplies the current access token for every request.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// PlayOptions selects what to start. Empty options resume the current context.
type PlayOptions struct {
	URIs       []string `json:"uris,omitempty"`
	ContextURI string   `json:"context_uri,omitempty"`
}

// PlaylistDetails is the mutable subset of a playlist. Nil fields are left unchanged.
type PlaylistDetails struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Public      *bool   `json:"public,omitempty"`
}

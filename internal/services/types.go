// Spotify API response types, see https://developer.spotify.com/documentation/web-api/reference/
package services

import "github.com/desertthunder/spotify-mcp/internal/device"

type followers struct {
	Total int `json:"total"`
}

// SpotifyUser represents a Spotify user profile.
type SpotifyUser struct {
	ID          string         `json:"id"`
	DisplayName string         `json:"display_name"`
	Email       string         `json:"email"`
	Country     string         `json:"country"`
	Product     string         `json:"product"` // premium, free, etc.
	Followers   followers      `json:"followers"`
	Images      []SpotifyImage `json:"images"`
}

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

type externalIDs struct {
	ISRC string `json:"isrc"`
}

// Paging is Spotify's paging object.
type Paging[T any] struct {
	Items    []T     `json:"items"`
	Total    int     `json:"total"`
	Limit    int     `json:"limit"`
	Offset   int     `json:"offset"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
}

// SpotifyTrack represents a full or simplified Spotify track.
//
// Album is nil for simplified tracks (album track listings).
type SpotifyTrack struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Artists     []SpotifyArtist `json:"artists"`
	Album       *SpotifyAlbum   `json:"album,omitempty"`
	DurationMS  int             `json:"duration_ms"`
	TrackNumber int             `json:"track_number"`
	Explicit    bool            `json:"explicit"`
	IsPlayable  *bool           `json:"is_playable,omitempty"`
	ExternalIDs externalIDs     `json:"external_ids"`
	Popularity  int             `json:"popularity"`
	URI         string          `json:"uri"`
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Genres []string       `json:"genres"`
	Images []SpotifyImage `json:"images"`
	URI    string         `json:"uri"`
}

// SpotifyAlbum represents a Spotify album. Tracks is only populated by the album endpoint.
type SpotifyAlbum struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Artists     []SpotifyArtist      `json:"artists"`
	ReleaseDate string               `json:"release_date"`
	TotalTracks int                  `json:"total_tracks"`
	Genres      []string             `json:"genres"`
	Images      []SpotifyImage       `json:"images"`
	Tracks      Paging[SpotifyTrack] `json:"tracks"`
	URI         string               `json:"uri"`
}

type Owner struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// SpotifyPlaylist represents a full Spotify playlist.
type SpotifyPlaylist struct {
	ID          string                       `json:"id"`
	Name        string                       `json:"name"`
	Description string                       `json:"description"`
	Owner       Owner                        `json:"owner"`
	Public      bool                         `json:"public"`
	Tracks      Paging[SpotifyPlaylistTrack] `json:"tracks"`
	Images      []SpotifyImage               `json:"images"`
	URI         string                       `json:"uri"`
}

// SpotifyPlaylistTrack represents a track within a playlist context.
//
// Track is nil for local files or removed tracks.
type SpotifyPlaylistTrack struct {
	AddedAt string        `json:"added_at"`
	Track   *SpotifyTrack `json:"track"`
}

type simplePlaylistTrack struct {
	Total int `json:"total"`
}

// SpotifySimplePlaylist represents a simplified playlist object (used in lists).
type SpotifySimplePlaylist struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Owner       Owner               `json:"owner"`
	Public      bool                `json:"public"`
	Tracks      simplePlaylistTrack `json:"tracks"`
	Images      []SpotifyImage      `json:"images"`
	URI         string              `json:"uri"`
}

// SpotifySearchResult holds one paging object per requested type.
//
// Spotify may return null entries in items, hence the pointer slices.
type SpotifySearchResult struct {
	Tracks    *Paging[*SpotifyTrack]          `json:"tracks,omitempty"`
	Artists   *Paging[*SpotifyArtist]         `json:"artists,omitempty"`
	Albums    *Paging[*SpotifyAlbum]          `json:"albums,omitempty"`
	Playlists *Paging[*SpotifySimplePlaylist] `json:"playlists,omitempty"`
}

// SpotifyPlaybackState is the player state returned by /me/player and /me/player/currently-playing.
type SpotifyPlaybackState struct {
	Device               *device.Device `json:"device,omitempty"`
	IsPlaying            bool           `json:"is_playing"`
	ProgressMS           int            `json:"progress_ms"`
	ShuffleState         bool           `json:"shuffle_state"`
	RepeatState          string         `json:"repeat_state"`
	CurrentlyPlayingType string         `json:"currently_playing_type"`
	Item                 *SpotifyTrack  `json:"item"`
}

// SpotifyQueue is the user's playback queue.
type SpotifyQueue struct {
	CurrentlyPlaying *SpotifyTrack  `json:"currently_playing"`
	Queue            []SpotifyTrack `json:"queue"`
}

type spotifyErrorBody struct {
	Error struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

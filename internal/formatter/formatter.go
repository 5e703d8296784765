// package formatter narrows Spotify API objects into the compact records returned to tool callers
package formatter

import (
	"encoding/json"
	"fmt"

	"github.com/desertthunder/spotify-mcp/internal/services"
)

// Track is a compact track record.
//
// A single artist is reported as Artist, several as Artists.
// IsPlayable is only set when the track cannot be played.
type Track struct {
	Name        string   `json:"name"`
	ID          string   `json:"id"`
	IsPlaying   *bool    `json:"is_playing,omitempty"`
	Album       *Album   `json:"album,omitempty"`
	TrackNumber int      `json:"track_number,omitempty"`
	DurationMS  int      `json:"duration_ms,omitempty"`
	IsPlayable  *bool    `json:"is_playable,omitempty"`
	Artist      string   `json:"artist,omitempty"`
	Artists     []string `json:"artists,omitempty"`
}

// Artist is a compact artist record.
type Artist struct {
	Name      string   `json:"name"`
	ID        string   `json:"id"`
	Genres    []string `json:"genres,omitempty"`
	TopTracks []*Track `json:"top_tracks,omitempty"`
	Albums    []*Album `json:"albums,omitempty"`
}

// Album is a compact album record. Detailed albums carry their tracks.
type Album struct {
	Name        string   `json:"name"`
	ID          string   `json:"id"`
	Tracks      []*Track `json:"tracks,omitempty"`
	TotalTracks int      `json:"total_tracks,omitempty"`
	ReleaseDate string   `json:"release_date,omitempty"`
	Genres      []string `json:"genres,omitempty"`
	Artist      string   `json:"artist,omitempty"`
	Artists     []string `json:"artists,omitempty"`
}

// Playlist is a compact playlist record.
type Playlist struct {
	Name        string   `json:"name"`
	ID          string   `json:"id"`
	Owner       string   `json:"owner"`
	UserIsOwner bool     `json:"user_is_owner"`
	TotalTracks int      `json:"total_tracks"`
	Description string   `json:"description,omitempty"`
	Tracks      []*Track `json:"tracks,omitempty"`
}

// SearchResults holds one list per requested search type.
type SearchResults struct {
	Tracks    []*Track    `json:"tracks,omitempty"`
	Artists   []*Artist   `json:"artists,omitempty"`
	Albums    []*Album    `json:"albums,omitempty"`
	Playlists []*Playlist `json:"playlists,omitempty"`
}

// Queue is the current item plus the upcoming tracks.
type Queue struct {
	CurrentlyPlaying *Track   `json:"currently_playing"`
	Queue            []*Track `json:"queue"`
}

func artistNames(artists []services.SpotifyArtist) (single string, many []string) {
	if len(artists) == 1 {
		return artists[0].Name, nil
	}
	many = make([]string, 0, len(artists))
	for _, a := range artists {
		many = append(many, a.Name)
	}
	return "", many
}

// FormatTrack narrows t. Detailed adds album, track number and duration.
func FormatTrack(t *services.SpotifyTrack, detailed bool) *Track {
	if t == nil {
		return nil
	}

	track := &Track{Name: t.Name, ID: t.ID}
	if detailed {
		track.Album = FormatAlbum(t.Album, false)
		track.TrackNumber = t.TrackNumber
		track.DurationMS = t.DurationMS
	}
	if t.IsPlayable != nil && !*t.IsPlayable {
		notPlayable := false
		track.IsPlayable = &notPlayable
	}
	track.Artist, track.Artists = artistNames(t.Artists)
	return track
}

// FormatTracks narrows every track in ts, skipping nil entries.
func FormatTracks[T *services.SpotifyTrack | services.SpotifyTrack](ts []T) []*Track {
	tracks := make([]*Track, 0, len(ts))
	for _, t := range ts {
		var f *Track
		switch v := any(t).(type) {
		case *services.SpotifyTrack:
			f = FormatTrack(v, false)
		case services.SpotifyTrack:
			f = FormatTrack(&v, false)
		}
		if f != nil {
			tracks = append(tracks, f)
		}
	}
	return tracks
}

// FormatPlaylistTracks narrows playlist entries, skipping local files and removed tracks.
func FormatPlaylistTracks(items []services.SpotifyPlaylistTrack) []*Track {
	tracks := make([]*Track, 0, len(items))
	for _, item := range items {
		if t := FormatTrack(item.Track, false); t != nil {
			tracks = append(tracks, t)
		}
	}
	return tracks
}

// FormatArtist narrows a. Detailed adds genres.
func FormatArtist(a *services.SpotifyArtist, detailed bool) *Artist {
	if a == nil {
		return nil
	}
	artist := &Artist{Name: a.Name, ID: a.ID}
	if detailed {
		artist.Genres = a.Genres
	}
	return artist
}

// FormatAlbum narrows a. Detailed adds tracks, total tracks, release date and genres.
func FormatAlbum(a *services.SpotifyAlbum, detailed bool) *Album {
	if a == nil {
		return nil
	}
	album := &Album{Name: a.Name, ID: a.ID}
	if detailed {
		album.Tracks = FormatTracks(a.Tracks.Items)
		album.TotalTracks = a.TotalTracks
		album.ReleaseDate = a.ReleaseDate
		album.Genres = a.Genres
	}
	album.Artist, album.Artists = artistNames(a.Artists)
	return album
}

// FormatPlaylist narrows a full playlist. username decides UserIsOwner.
func FormatPlaylist(p *services.SpotifyPlaylist, username string, detailed bool) *Playlist {
	if p == nil {
		return nil
	}
	playlist := &Playlist{
		Name:        p.Name,
		ID:          p.ID,
		Owner:       p.Owner.DisplayName,
		UserIsOwner: p.Owner.DisplayName == username,
		TotalTracks: p.Tracks.Total,
	}
	if detailed {
		playlist.Description = p.Description
		playlist.Tracks = FormatPlaylistTracks(p.Tracks.Items)
	}
	return playlist
}

// FormatSimplePlaylist narrows a playlist list entry.
func FormatSimplePlaylist(p *services.SpotifySimplePlaylist, username string) *Playlist {
	if p == nil {
		return nil
	}
	return &Playlist{
		Name:        p.Name,
		ID:          p.ID,
		Owner:       p.Owner.DisplayName,
		UserIsOwner: p.Owner.DisplayName == username,
		TotalTracks: p.Tracks.Total,
	}
}

// FormatSearchResults narrows the requested types of r, dropping null entries.
func FormatSearchResults(r *services.SpotifySearchResult, types []string, username string) (*SearchResults, error) {
	results := &SearchResults{}
	if r == nil {
		return results, nil
	}

	for _, kind := range types {
		switch kind {
		case services.KindTrack:
			if r.Tracks != nil {
				results.Tracks = FormatTracks(r.Tracks.Items)
			}
		case services.KindArtist:
			if r.Artists != nil {
				for _, a := range r.Artists.Items {
					if a != nil {
						results.Artists = append(results.Artists, FormatArtist(a, false))
					}
				}
			}
		case services.KindAlbum:
			if r.Albums != nil {
				for _, a := range r.Albums.Items {
					if a != nil {
						results.Albums = append(results.Albums, FormatAlbum(a, false))
					}
				}
			}
		case services.KindPlaylist:
			if r.Playlists != nil {
				for _, p := range r.Playlists.Items {
					if p != nil {
						results.Playlists = append(results.Playlists, FormatSimplePlaylist(p, username))
					}
				}
			}
		default:
			return nil, fmt.Errorf("unknown search type %q", kind)
		}
	}
	return results, nil
}

// JSON renders v as indented JSON, the format every tool result uses.
func JSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return string(data), nil
}

package commands

import (
	"context"
	"strings"

	"github.com/desertthunder/spotify-mcp/internal/formatter"
	"github.com/desertthunder/spotify-mcp/internal/services"
	"github.com/desertthunder/spotify-mcp/internal/shared"
)

const playlistPageSize = 50

// UserPlaylists returns the first page of the user's playlists.
func (s *Session) UserPlaylists(ctx context.Context) ([]*formatter.Playlist, error) {
	return authed(ctx, s, func(ctx context.Context) ([]*formatter.Playlist, error) {
		username, err := s.lookupUsername(ctx)
		if err != nil {
			return nil, err
		}
		page, err := s.client.UserPlaylists(ctx, playlistPageSize, 0)
		if err != nil {
			return nil, err
		}

		playlists := make([]*formatter.Playlist, 0, len(page.Items))
		for i := range page.Items {
			playlists = append(playlists, formatter.FormatSimplePlaylist(&page.Items[i], username))
		}
		return playlists, nil
	})
}

// PlaylistTracks returns the tracks of a playlist, skipping local files.
func (s *Session) PlaylistTracks(ctx context.Context, playlistID string) ([]*formatter.Track, error) {
	playlistID = strings.TrimSpace(playlistID)
	if playlistID == "" {
		return nil, missing("playlist_id")
	}

	return authed(ctx, s, func(ctx context.Context) ([]*formatter.Track, error) {
		playlist, err := s.client.Playlist(ctx, playlistID)
		if err != nil {
			return nil, err
		}
		if playlist == nil {
			return nil, shared.ErrPlaylistNotFound
		}
		return formatter.FormatPlaylistTracks(playlist.Tracks.Items), nil
	})
}

func validateTrackEdit(playlistID string, trackIDs []string) ([]string, error) {
	if strings.TrimSpace(playlistID) == "" {
		return nil, missing("playlist_id")
	}
	if len(trackIDs) == 0 {
		return nil, missing("track_ids")
	}
	for i, id := range trackIDs {
		if strings.TrimSpace(id) == "" {
			return nil, invalid("track_ids[%d] is empty", i)
		}
	}
	return services.ToURIs(services.KindTrack, trackIDs), nil
}

// AddTracksToPlaylist adds tracks to a playlist, at position when set.
func (s *Session) AddTracksToPlaylist(ctx context.Context, playlistID string, trackIDs []string, position *int) error {
	uris, err := validateTrackEdit(playlistID, trackIDs)
	if err != nil {
		return err
	}
	if position != nil && *position < 0 {
		return invalid("position must not be negative, got %d", *position)
	}

	_, err = authed(ctx, s, func(ctx context.Context) (string, error) {
		return s.client.AddPlaylistItems(ctx, playlistID, uris, position)
	})
	if err == nil {
		s.logger.Info("added tracks to playlist", "playlist", playlistID, "count", len(uris))
	}
	return err
}

// RemoveTracksFromPlaylist removes every occurrence of the tracks from a playlist.
func (s *Session) RemoveTracksFromPlaylist(ctx context.Context, playlistID string, trackIDs []string) error {
	uris, err := validateTrackEdit(playlistID, trackIDs)
	if err != nil {
		return err
	}

	_, err = authed(ctx, s, func(ctx context.Context) (string, error) {
		return s.client.RemovePlaylistItems(ctx, playlistID, uris)
	})
	if err == nil {
		s.logger.Info("removed tracks from playlist", "playlist", playlistID, "count", len(uris))
	}
	return err
}

// CreatePlaylist creates a playlist owned by the current user.
func (s *Session) CreatePlaylist(ctx context.Context, name string, description *string, public bool) (*formatter.Playlist, error) {
	if strings.TrimSpace(name) == "" {
		return nil, missing("name")
	}

	return authed(ctx, s, func(ctx context.Context) (*formatter.Playlist, error) {
		user, err := s.client.CurrentUser(ctx)
		if err != nil {
			return nil, err
		}
		if user == nil || user.ID == "" {
			return nil, shared.ErrNotAuthenticated
		}
		username, err := s.lookupUsername(ctx)
		if err != nil {
			return nil, err
		}

		playlist, err := s.client.CreatePlaylist(ctx, user.ID, services.PlaylistDetails{
			Name:        &name,
			Description: description,
			Public:      &public,
		})
		if err != nil {
			return nil, err
		}
		s.logger.Info("created playlist", "name", name, "id", playlist.ID)
		return formatter.FormatPlaylist(playlist, username, true), nil
	})
}

// ChangePlaylistDetails renames or redescribes a playlist. At least one of
// name and description must be set.
func (s *Session) ChangePlaylistDetails(ctx context.Context, playlistID string, name, description *string) error {
	if strings.TrimSpace(playlistID) == "" {
		return missing("playlist_id")
	}
	if name == nil && description == nil {
		return missing("name or description")
	}
	if name != nil && strings.TrimSpace(*name) == "" {
		return invalid("name must not be empty")
	}

	_, err := authed(ctx, s, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.client.ChangePlaylistDetails(ctx, playlistID, services.PlaylistDetails{
			Name:        name,
			Description: description,
		})
	})
	if err == nil {
		s.logger.Info("updated playlist details", "playlist", playlistID)
	}
	return err
}

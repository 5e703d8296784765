package commands

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/desertthunder/spotify-mcp/internal/formatter"
	"github.com/desertthunder/spotify-mcp/internal/services"
	"github.com/desertthunder/spotify-mcp/internal/shared"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultSearchLimit = 10
	MaxSearchLimit     = 50
)

var searchTypes = []string{services.KindTrack, services.KindAlbum, services.KindArtist, services.KindPlaylist}

// ParseSearchTypes splits a comma separated qtype ("track,artist"). Empty means track.
func ParseSearchTypes(qtype string) ([]string, error) {
	if strings.TrimSpace(qtype) == "" {
		return []string{services.KindTrack}, nil
	}

	var types []string
	for _, kind := range strings.Split(qtype, ",") {
		kind = strings.ToLower(strings.TrimSpace(kind))
		if !slices.Contains(searchTypes, kind) {
			return nil, invalid("unknown search type %q, expected one of %s", kind, strings.Join(searchTypes, ", "))
		}
		if !slices.Contains(types, kind) {
			types = append(types, kind)
		}
	}
	return types, nil
}

// Search queries the catalog. limit must be within 1..50.
func (s *Session) Search(ctx context.Context, query, qtype string, limit int) (*formatter.SearchResults, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, missing("query")
	}
	if limit < 1 || limit > MaxSearchLimit {
		return nil, invalid("limit must be between 1 and %d, got %d", MaxSearchLimit, limit)
	}
	types, err := ParseSearchTypes(qtype)
	if err != nil {
		return nil, err
	}

	return authed(ctx, s, func(ctx context.Context) (*formatter.SearchResults, error) {
		username, err := s.lookupUsername(ctx)
		if err != nil {
			return nil, err
		}
		result, err := s.client.Search(ctx, query, types, limit)
		if err != nil {
			return nil, err
		}
		return formatter.FormatSearchResults(result, types, username)
	})
}

// ItemInfo returns a detailed record for a spotify:<type>:<id> uri.
//
// Albums and playlists include their tracks; artists include their albums
// and top tracks.
func (s *Session) ItemInfo(ctx context.Context, uri string) (any, error) {
	kind, id, err := services.ParseURI(uri)
	if err != nil {
		return nil, err
	}

	return authed(ctx, s, func(ctx context.Context) (any, error) {
		switch kind {
		case services.KindTrack:
			track, err := s.client.Track(ctx, id)
			if err != nil {
				return nil, err
			}
			return notFound(formatter.FormatTrack(track, true), uri)
		case services.KindAlbum:
			album, err := s.client.Album(ctx, id)
			if err != nil {
				return nil, err
			}
			return notFound(formatter.FormatAlbum(album, true), uri)
		case services.KindArtist:
			return s.artistInfo(ctx, id, uri)
		default:
			username, err := s.lookupUsername(ctx)
			if err != nil {
				return nil, err
			}
			playlist, err := s.client.Playlist(ctx, id)
			if err != nil {
				return nil, err
			}
			return notFound(formatter.FormatPlaylist(playlist, username, true), uri)
		}
	})
}

// artistInfo fetches the artist, its albums and its top tracks concurrently.
func (s *Session) artistInfo(ctx context.Context, id, uri string) (any, error) {
	var (
		artist    *services.SpotifyArtist
		albums    *services.Paging[services.SpotifyAlbum]
		topTracks []services.SpotifyTrack
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		artist, err = s.client.Artist(ctx, id)
		return err
	})
	g.Go(func() (err error) {
		albums, err = s.client.ArtistAlbums(ctx, id)
		return err
	})
	g.Go(func() (err error) {
		topTracks, err = s.client.ArtistTopTracks(ctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	info := formatter.FormatArtist(artist, true)
	if info == nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrAPIRequest, uri)
	}
	info.TopTracks = formatter.FormatTracks(topTracks)
	if albums != nil {
		for i := range albums.Items {
			info.Albums = append(info.Albums, formatter.FormatAlbum(&albums.Items[i], false))
		}
	}
	return info, nil
}

// notFound converts a nil record into an error so callers never see "null".
func notFound[T any](record *T, uri string) (any, error) {
	if record == nil {
		return nil, fmt.Errorf("%w: no item found for %s", shared.ErrAPIRequest, uri)
	}
	return record, nil
}

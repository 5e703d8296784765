package services

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/desertthunder/spotify-mcp/internal/shared"
)

// Item kinds accepted in spotify:<kind>:<id> URIs.
const (
	KindTrack    = "track"
	KindAlbum    = "album"
	KindArtist   = "artist"
	KindPlaylist = "playlist"
)

// SplitURI splits a spotify:<kind>:<id> URI without restricting kind.
func SplitURI(uri string) (kind, id string, err error) {
	parts := strings.Split(strings.TrimSpace(uri), ":")
	if len(parts) != 3 || parts[0] != "spotify" || parts[1] == "" || parts[2] == "" {
		return "", "", fmt.Errorf("%w: malformed item uri %q, expected spotify:<type>:<id>", shared.ErrInvalidArgument, uri)
	}
	return parts[1], parts[2], nil
}

// ParseURI splits a URI naming a track, album, artist or playlist.
func ParseURI(uri string) (kind, id string, err error) {
	kind, id, err = SplitURI(uri)
	if err != nil {
		return "", "", err
	}
	switch kind {
	case KindTrack, KindAlbum, KindArtist, KindPlaylist:
		return kind, id, nil
	default:
		return "", "", fmt.Errorf("%w: unsupported item type %q in %q", shared.ErrInvalidArgument, kind, uri)
	}
}

// ToURI normalizes a bare id, an open.spotify.com link, or a URI into spotify:<kind>:<id>.
func ToURI(kind, idOrURI string) string {
	v := strings.TrimSpace(idOrURI)
	if strings.HasPrefix(v, "spotify:") {
		return v
	}
	if u, err := url.Parse(v); err == nil && u.Host == "open.spotify.com" {
		segments := strings.Split(strings.Trim(u.Path, "/"), "/")
		if n := len(segments); n >= 2 {
			return "spotify:" + segments[n-2] + ":" + segments[n-1]
		}
	}
	return "spotify:" + kind + ":" + v
}

// ToURIs applies [ToURI] to every element.
func ToURIs(kind string, ids []string) []string {
	uris := make([]string, 0, len(ids))
	for _, id := range ids {
		uris = append(uris, ToURI(kind, id))
	}
	return uris
}

package formatter

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/desertthunder/spotify-mcp/internal/services"
)

func boolPtr(b bool) *bool { return &b }

func artists(names ...string) []services.SpotifyArtist {
	as := make([]services.SpotifyArtist, 0, len(names))
	for _, n := range names {
		as = append(as, services.SpotifyArtist{ID: strings.ToLower(n), Name: n})
	}
	return as
}

func decode(t *testing.T, v any) map[string]any {
	t.Helper()
	s, err := JSON(v)
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		t.Fatalf("failed to decode %s: %v", s, err)
	}
	return m
}

func TestFormatTrack(t *testing.T) {
	t.Run("Nil", func(t *testing.T) {
		if FormatTrack(nil, true) != nil {
			t.Error("expected nil for nil track")
		}
	})

	t.Run("Single Artist", func(t *testing.T) {
		m := decode(t, FormatTrack(&services.SpotifyTrack{ID: "t1", Name: "Song", Artists: artists("Solo")}, false))

		if m["artist"] != "Solo" {
			t.Errorf("expected artist Solo, got %v", m["artist"])
		}
		if _, ok := m["artists"]; ok {
			t.Error("expected no artists key for a single artist")
		}
		if _, ok := m["album"]; ok {
			t.Error("expected no album in compact record")
		}
	})

	t.Run("Several Artists", func(t *testing.T) {
		m := decode(t, FormatTrack(&services.SpotifyTrack{ID: "t1", Name: "Song", Artists: artists("A", "B")}, false))

		list, ok := m["artists"].([]any)
		if !ok || len(list) != 2 || list[0] != "A" || list[1] != "B" {
			t.Errorf("expected artists [A B], got %v", m["artists"])
		}
		if _, ok := m["artist"]; ok {
			t.Error("expected no artist key for several artists")
		}
	})

	t.Run("Playability", func(t *testing.T) {
		tests := []struct {
			name     string
			playable *bool
			present  bool
		}{
			{"Unknown", nil, false},
			{"Playable", boolPtr(true), false},
			{"Not Playable", boolPtr(false), true},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				m := decode(t, FormatTrack(&services.SpotifyTrack{ID: "t", Name: "n", IsPlayable: tt.playable}, false))
				v, ok := m["is_playable"]
				if ok != tt.present {
					t.Fatalf("expected is_playable present=%v, got %v", tt.present, m)
				}
				if ok && v != false {
					t.Errorf("expected is_playable false, got %v", v)
				}
			})
		}
	})

	t.Run("Detailed", func(t *testing.T) {
		track := FormatTrack(&services.SpotifyTrack{
			ID: "t1", Name: "Song", TrackNumber: 3, DurationMS: 200000,
			Artists: artists("A"),
			Album:   &services.SpotifyAlbum{ID: "al", Name: "Album", Artists: artists("A")},
		}, true)

		if track.Album == nil || track.Album.Name != "Album" || track.Album.Artist != "A" {
			t.Errorf("unexpected album %+v", track.Album)
		}
		if track.TrackNumber != 3 || track.DurationMS != 200000 {
			t.Errorf("unexpected detail fields %+v", track)
		}
	})
}

func TestFormatAlbum(t *testing.T) {
	album := &services.SpotifyAlbum{
		ID: "al", Name: "Album", TotalTracks: 2, ReleaseDate: "2001-03-12", Genres: []string{"house"},
		Artists: artists("Daft Punk"),
		Tracks: services.Paging[services.SpotifyTrack]{Items: []services.SpotifyTrack{
			{ID: "t1", Name: "One", Artists: artists("Daft Punk")},
			{ID: "t2", Name: "Two", Artists: artists("Daft Punk", "Romanthony")},
		}},
	}

	t.Run("Compact", func(t *testing.T) {
		a := FormatAlbum(album, false)
		if a.Tracks != nil || a.TotalTracks != 0 {
			t.Errorf("expected compact album without tracks, got %+v", a)
		}
		if a.Artist != "Daft Punk" {
			t.Errorf("expected artist, got %+v", a)
		}
	})

	t.Run("Detailed", func(t *testing.T) {
		a := FormatAlbum(album, true)
		if len(a.Tracks) != 2 || a.Tracks[1].Artists[1] != "Romanthony" {
			t.Errorf("unexpected tracks %+v", a.Tracks)
		}
		if a.ReleaseDate != "2001-03-12" || a.TotalTracks != 2 || a.Genres[0] != "house" {
			t.Errorf("unexpected detail fields %+v", a)
		}
	})
}

func TestFormatPlaylist(t *testing.T) {
	p := &services.SpotifyPlaylist{
		ID: "pl", Name: "Mix", Description: "desc",
		Owner: services.Owner{ID: "u1", DisplayName: "Owner"},
		Tracks: services.Paging[services.SpotifyPlaylistTrack]{
			Total: 2,
			Items: []services.SpotifyPlaylistTrack{
				{Track: &services.SpotifyTrack{ID: "t1", Name: "One", Artists: artists("A")}},
				{Track: nil},
			},
		},
	}

	t.Run("Ownership", func(t *testing.T) {
		if !FormatPlaylist(p, "Owner", false).UserIsOwner {
			t.Error("expected user to own playlist")
		}
		if FormatPlaylist(p, "Someone", false).UserIsOwner {
			t.Error("expected user not to own playlist")
		}
	})

	t.Run("Detailed Skips Missing Tracks", func(t *testing.T) {
		pl := FormatPlaylist(p, "Owner", true)
		if pl.Description != "desc" || len(pl.Tracks) != 1 || pl.TotalTracks != 2 {
			t.Errorf("unexpected playlist %+v", pl)
		}
	})

	t.Run("Simple", func(t *testing.T) {
		pl := FormatSimplePlaylist(&services.SpotifySimplePlaylist{ID: "pl", Name: "Mix", Owner: services.Owner{DisplayName: "Me"}}, "Me")
		if !pl.UserIsOwner || pl.Tracks != nil {
			t.Errorf("unexpected playlist %+v", pl)
		}
	})
}

func TestFormatSearchResults(t *testing.T) {
	r := &services.SpotifySearchResult{
		Tracks:    &services.Paging[*services.SpotifyTrack]{Items: []*services.SpotifyTrack{{ID: "t1", Name: "One"}, nil}},
		Artists:   &services.Paging[*services.SpotifyArtist]{Items: []*services.SpotifyArtist{{ID: "a1", Name: "A"}}},
		Playlists: &services.Paging[*services.SpotifySimplePlaylist]{Items: []*services.SpotifySimplePlaylist{nil, {ID: "p1", Owner: services.Owner{DisplayName: "Me"}}}},
	}

	t.Run("Requested Types Only", func(t *testing.T) {
		res, err := FormatSearchResults(r, []string{"track"}, "Me")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(res.Tracks) != 1 || res.Artists != nil {
			t.Errorf("unexpected results %+v", res)
		}
	})

	t.Run("Several Types Drop Nulls", func(t *testing.T) {
		res, err := FormatSearchResults(r, []string{"track", "artist", "playlist"}, "Me")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(res.Artists) != 1 || len(res.Playlists) != 1 || !res.Playlists[0].UserIsOwner {
			t.Errorf("unexpected results %+v", res)
		}
	})

	t.Run("Unknown Type", func(t *testing.T) {
		if _, err := FormatSearchResults(r, []string{"show"}, ""); err == nil {
			t.Error("expected error for unknown type")
		}
	})
}

func TestJSON(t *testing.T) {
	s, err := JSON(&Queue{CurrentlyPlaying: nil, Queue: []*Track{}})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(s, "\n  \"currently_playing\": null") {
		t.Errorf("expected indented output, got %s", s)
	}
}

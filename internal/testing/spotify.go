package testing

import (
	"context"
	"sync"
	"time"

	"github.com/desertthunder/spotify-mcp/internal/auth"
	"github.com/desertthunder/spotify-mcp/internal/device"
	"github.com/desertthunder/spotify-mcp/internal/services"
)

// Call is one recorded [FakeClient] invocation.
type Call struct {
	Method   string
	DeviceID string
	Arg      any
}

// FakeClient is an in-memory [services.Client] that records every call.
//
// Errs maps a method name to the error it returns.
type FakeClient struct {
	mu    sync.Mutex
	calls []Call

	User               *services.SpotifyUser
	DeviceList         []device.Device
	Playback           *services.SpotifyPlaybackState
	QueueResult        *services.SpotifyQueue
	SearchResult       *services.SpotifySearchResult
	Tracks             map[string]*services.SpotifyTrack
	Albums             map[string]*services.SpotifyAlbum
	Artists            map[string]*services.SpotifyArtist
	ArtistAlbumsResult *services.Paging[services.SpotifyAlbum]
	TopTracks          []services.SpotifyTrack
	Playlists          map[string]*services.SpotifyPlaylist
	PlaylistPage       *services.Paging[services.SpotifySimplePlaylist]
	Errs               map[string]error
}

func (f *FakeClient) record(method, deviceID string, arg any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Method: method, DeviceID: deviceID, Arg: arg})
	return f.Errs[method]
}

// Calls returns a copy of the recorded calls.
func (f *FakeClient) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Count returns how many times method was called.
func (f *FakeClient) Count(method string) int {
	n := 0
	for _, c := range f.Calls() {
		if c.Method == method {
			n++
		}
	}
	return n
}

// Last returns the most recent call of method.
func (f *FakeClient) Last(method string) (Call, bool) {
	calls := f.Calls()
	for i := len(calls) - 1; i >= 0; i-- {
		if calls[i].Method == method {
			return calls[i], true
		}
	}
	return Call{}, false
}

func (f *FakeClient) CurrentUser(ctx context.Context) (*services.SpotifyUser, error) {
	if err := f.record("CurrentUser", "", nil); err != nil {
		return nil, err
	}
	return f.User, nil
}

func (f *FakeClient) Search(ctx context.Context, query string, types []string, limit int) (*services.SpotifySearchResult, error) {
	if err := f.record("Search", "", query); err != nil {
		return nil, err
	}
	return f.SearchResult, nil
}

func (f *FakeClient) Track(ctx context.Context, id string) (*services.SpotifyTrack, error) {
	if err := f.record("Track", "", id); err != nil {
		return nil, err
	}
	return f.Tracks[id], nil
}

func (f *FakeClient) Album(ctx context.Context, id string) (*services.SpotifyAlbum, error) {
	if err := f.record("Album", "", id); err != nil {
		return nil, err
	}
	return f.Albums[id], nil
}

func (f *FakeClient) Artist(ctx context.Context, id string) (*services.SpotifyArtist, error) {
	if err := f.record("Artist", "", id); err != nil {
		return nil, err
	}
	return f.Artists[id], nil
}

func (f *FakeClient) ArtistAlbums(ctx context.Context, id string) (*services.Paging[services.SpotifyAlbum], error) {
	if err := f.record("ArtistAlbums", "", id); err != nil {
		return nil, err
	}
	if f.ArtistAlbumsResult == nil {
		return &services.Paging[services.SpotifyAlbum]{}, nil
	}
	return f.ArtistAlbumsResult, nil
}

func (f *FakeClient) ArtistTopTracks(ctx context.Context, id string) ([]services.SpotifyTrack, error) {
	if err := f.record("ArtistTopTracks", "", id); err != nil {
		return nil, err
	}
	return f.TopTracks, nil
}

func (f *FakeClient) Playlist(ctx context.Context, id string) (*services.SpotifyPlaylist, error) {
	if err := f.record("Playlist", "", id); err != nil {
		return nil, err
	}
	return f.Playlists[id], nil
}

func (f *FakeClient) UserPlaylists(ctx context.Context, limit, offset int) (*services.Paging[services.SpotifySimplePlaylist], error) {
	if err := f.record("UserPlaylists", "", limit); err != nil {
		return nil, err
	}
	if f.PlaylistPage == nil {
		return &services.Paging[services.SpotifySimplePlaylist]{}, nil
	}
	return f.PlaylistPage, nil
}

func (f *FakeClient) AddPlaylistItems(ctx context.Context, id string, uris []string, position *int) (string, error) {
	if err := f.record("AddPlaylistItems", "", uris); err != nil {
		return "", err
	}
	return "snapshot", nil
}

func (f *FakeClient) RemovePlaylistItems(ctx context.Context, id string, uris []string) (string, error) {
	if err := f.record("RemovePlaylistItems", "", uris); err != nil {
		return "", err
	}
	return "snapshot", nil
}

func (f *FakeClient) CreatePlaylist(ctx context.Context, userID string, details services.PlaylistDetails) (*services.SpotifyPlaylist, error) {
	if err := f.record("CreatePlaylist", "", details); err != nil {
		return nil, err
	}
	p := &services.SpotifyPlaylist{ID: "new-playlist", Owner: services.Owner{ID: userID}}
	if details.Name != nil {
		p.Name = *details.Name
	}
	if details.Description != nil {
		p.Description = *details.Description
	}
	if details.Public != nil {
		p.Public = *details.Public
	}
	if f.User != nil {
		p.Owner.DisplayName = f.User.DisplayName
	}
	return p, nil
}

func (f *FakeClient) ChangePlaylistDetails(ctx context.Context, id string, details services.PlaylistDetails) error {
	return f.record("ChangePlaylistDetails", "", details)
}

func (f *FakeClient) PlaybackState(ctx context.Context) (*services.SpotifyPlaybackState, error) {
	if err := f.record("PlaybackState", "", nil); err != nil {
		return nil, err
	}
	return f.Playback, nil
}

func (f *FakeClient) CurrentlyPlaying(ctx context.Context) (*services.SpotifyPlaybackState, error) {
	if err := f.record("CurrentlyPlaying", "", nil); err != nil {
		return nil, err
	}
	return f.Playback, nil
}

func (f *FakeClient) Devices(ctx context.Context) ([]device.Device, error) {
	if err := f.record("Devices", "", nil); err != nil {
		return nil, err
	}
	return append([]device.Device(nil), f.DeviceList...), nil
}

func (f *FakeClient) Queue(ctx context.Context) (*services.SpotifyQueue, error) {
	if err := f.record("Queue", "", nil); err != nil {
		return nil, err
	}
	if f.QueueResult == nil {
		return &services.SpotifyQueue{}, nil
	}
	return f.QueueResult, nil
}

func (f *FakeClient) Play(ctx context.Context, deviceID string, opts services.PlayOptions) error {
	return f.record("Play", deviceID, opts)
}

func (f *FakeClient) Pause(ctx context.Context, deviceID string) error {
	return f.record("Pause", deviceID, nil)
}

func (f *FakeClient) Next(ctx context.Context, deviceID string) error {
	return f.record("Next", deviceID, nil)
}

func (f *FakeClient) Previous(ctx context.Context, deviceID string) error {
	return f.record("Previous", deviceID, nil)
}

func (f *FakeClient) Seek(ctx context.Context, deviceID string, positionMS int) error {
	return f.record("Seek", deviceID, positionMS)
}

func (f *FakeClient) SetVolume(ctx context.Context, deviceID string, percent int) error {
	return f.record("SetVolume", deviceID, percent)
}

func (f *FakeClient) AddToQueue(ctx context.Context, deviceID, uri string) error {
	return f.record("AddToQueue", deviceID, uri)
}

var _ services.Client = (*FakeClient)(nil)

// StaticAuth is an [auth.Authenticator] serving a fixed token.
//
// A nil Token means no token is cached. Refresh replaces Token with a fresh
// one unless RefreshErr is set.
type StaticAuth struct {
	mu         sync.Mutex
	Token      *auth.Token
	Expired    bool
	RefreshErr error
	Refreshes  int
}

// ValidAuth returns a [StaticAuth] holding a non-expired token.
func ValidAuth() *StaticAuth {
	return &StaticAuth{Token: &auth.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		ExpiresAt:    time.Now().Add(time.Hour),
	}}
}

func (s *StaticAuth) CachedToken(ctx context.Context) (*auth.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Token, nil
}

func (s *StaticAuth) IsExpired(t *auth.Token) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Expired
}

func (s *StaticAuth) Refresh(ctx context.Context, refreshToken string) (*auth.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Refreshes++
	if s.RefreshErr != nil {
		return nil, s.RefreshErr
	}
	s.Expired = false
	s.Token = &auth.Token{AccessToken: "refreshed", RefreshToken: refreshToken, ExpiresAt: time.Now().Add(time.Hour)}
	return s.Token, nil
}

var _ auth.Authenticator = (*StaticAuth)(nil)

// Spotify Web API implementation of [Client]
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotify-mcp/internal/device"
	"github.com/desertthunder/spotify-mcp/internal/shared"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://api.spotify.com/v1"
	DefaultTimeout = 15 * time.Second
	// Market used where Spotify requires one and the caller has no preference.
	DefaultMarket = "US"
)

// SpotifyOpts configures a [SpotifyService].
type SpotifyOpts struct {
	BaseURL           string
	Tokens            TokenSource
	HTTPClient        *http.Client
	RequestsPerSecond float64
	Burst             int
	Logger            *log.Logger
}

// SpotifyService implements [Client] against the Spotify Web API.
//
// The access token is read from Tokens on every request so a refreshed token
// takes effect immediately.
type SpotifyService struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

// NewSpotifyService creates a Spotify client. A zero RequestsPerSecond disables pacing.
func NewSpotifyService(opts SpotifyOpts) (*SpotifyService, error) {
	if opts.Tokens == nil {
		return nil, fmt.Errorf("%w: token source is required", shared.ErrMissingConfig)
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RequestsPerSecond > 0 {
		burst := max(opts.Burst, 1)
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}

	return &SpotifyService{
		baseURL:    baseURL,
		tokens:     opts.Tokens,
		httpClient: httpClient,
		limiter:    limiter,
		logger:     shared.WithLogger(logger, "component", "spotify"),
	}, nil
}

// doRequest performs an authenticated HTTP request to the Spotify API.
//
// A nil result or an empty response body (204) skips decoding.
func (s *SpotifyService) doRequest(ctx context.Context, method, endpoint string, query url.Values, body, result any) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	token, err := s.tokens.AccessToken(ctx)
	if err != nil {
		return err
	}

	apiURL := s.baseURL + endpoint
	if len(query) > 0 {
		apiURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	s.logger.Debug("request", "method", method, "endpoint", endpoint)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := parseAPIError(resp, data)
		s.logger.Debug("request failed", "endpoint", endpoint, "status", apiErr.StatusCode, "message", apiErr.Message)
		return apiErr
	}

	if result != nil && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// parseAPIError builds an [shared.APIError] from Spotify's {"error":{...}} body,
// falling back to the status text for bodies in other shapes.
func parseAPIError(resp *http.Response, data []byte) *shared.APIError {
	apiErr := &shared.APIError{
		StatusCode: resp.StatusCode,
		RetryAfter: resp.Header.Get("Retry-After"),
	}

	var body spotifyErrorBody
	if err := json.Unmarshal(data, &body); err == nil && body.Error.Message != "" {
		apiErr.Message = body.Error.Message
	} else if text := strings.TrimSpace(string(data)); text != "" && len(text) <= 200 && !strings.HasPrefix(text, "{") {
		apiErr.Message = text
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

func deviceQuery(deviceID string) url.Values {
	q := url.Values{}
	if deviceID != "" {
		q.Set("device_id", deviceID)
	}
	return q
}

// CurrentUser retrieves the current authenticated user's profile.
func (s *SpotifyService) CurrentUser(ctx context.Context) (*SpotifyUser, error) {
	var user SpotifyUser
	if err := s.doRequest(ctx, http.MethodGet, "/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Search queries the catalog for one or more comma separated types (track, album, artist, playlist).
func (s *SpotifyService) Search(ctx context.Context, query string, types []string, limit int) (*SpotifySearchResult, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("type", strings.Join(types, ","))
	q.Set("limit", strconv.Itoa(limit))

	var result SpotifySearchResult
	if err := s.doRequest(ctx, http.MethodGet, "/search", q, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Track retrieves a single track by ID.
func (s *SpotifyService) Track(ctx context.Context, trackID string) (*SpotifyTrack, error) {
	var track SpotifyTrack
	endpoint := fmt.Sprintf("/tracks/%s", url.PathEscape(trackID))
	if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, nil, &track); err != nil {
		return nil, err
	}
	return &track, nil
}

// Album retrieves a single album, including its first page of tracks.
func (s *SpotifyService) Album(ctx context.Context, albumID string) (*SpotifyAlbum, error) {
	var album SpotifyAlbum
	endpoint := fmt.Sprintf("/albums/%s", url.PathEscape(albumID))
	if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, nil, &album); err != nil {
		return nil, err
	}
	return &album, nil
}

// Artist retrieves a single artist.
func (s *SpotifyService) Artist(ctx context.Context, artistID string) (*SpotifyArtist, error) {
	var artist SpotifyArtist
	endpoint := fmt.Sprintf("/artists/%s", url.PathEscape(artistID))
	if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, nil, &artist); err != nil {
		return nil, err
	}
	return &artist, nil
}

// ArtistAlbums retrieves the first page of an artist's albums.
func (s *SpotifyService) ArtistAlbums(ctx context.Context, artistID string) (*Paging[SpotifyAlbum], error) {
	var page Paging[SpotifyAlbum]
	endpoint := fmt.Sprintf("/artists/%s/albums", url.PathEscape(artistID))
	if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ArtistTopTracks retrieves an artist's top tracks in [DefaultMarket].
func (s *SpotifyService) ArtistTopTracks(ctx context.Context, artistID string) ([]SpotifyTrack, error) {
	var result struct {
		Tracks []SpotifyTrack `json:"tracks"`
	}
	endpoint := fmt.Sprintf("/artists/%s/top-tracks", url.PathEscape(artistID))
	q := url.Values{"market": {DefaultMarket}}
	if err := s.doRequest(ctx, http.MethodGet, endpoint, q, nil, &result); err != nil {
		return nil, err
	}
	return result.Tracks, nil
}

// Playlist retrieves a specific playlist by ID.
func (s *SpotifyService) Playlist(ctx context.Context, playlistID string) (*SpotifyPlaylist, error) {
	var playlist SpotifyPlaylist
	endpoint := fmt.Sprintf("/playlists/%s", url.PathEscape(playlistID))
	if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, nil, &playlist); err != nil {
		var apiErr *shared.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s: %w", shared.ErrPlaylistNotFound, playlistID, err)
		}
		return nil, err
	}
	return &playlist, nil
}

// UserPlaylists retrieves the current user's playlists.
func (s *SpotifyService) UserPlaylists(ctx context.Context, limit, offset int) (*Paging[SpotifySimplePlaylist], error) {
	if limit <= 0 || limit > 50 {
		limit = 50
	}

	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))

	var page Paging[SpotifySimplePlaylist]
	if err := s.doRequest(ctx, http.MethodGet, "/me/playlists", q, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

type snapshot struct {
	SnapshotID string `json:"snapshot_id"`
}

// AddPlaylistItems appends uris to a playlist, or inserts them at position when set.
func (s *SpotifyService) AddPlaylistItems(ctx context.Context, playlistID string, uris []string, position *int) (string, error) {
	body := struct {
		URIs     []string `json:"uris"`
		Position *int     `json:"position,omitempty"`
	}{URIs: uris, Position: position}

	var result snapshot
	endpoint := fmt.Sprintf("/playlists/%s/tracks", url.PathEscape(playlistID))
	if err := s.doRequest(ctx, http.MethodPost, endpoint, nil, body, &result); err != nil {
		return "", err
	}
	return result.SnapshotID, nil
}

// RemovePlaylistItems removes every occurrence of uris from a playlist.
func (s *SpotifyService) RemovePlaylistItems(ctx context.Context, playlistID string, uris []string) (string, error) {
	type item struct {
		URI string `json:"uri"`
	}
	body := struct {
		Tracks []item `json:"tracks"`
	}{Tracks: make([]item, 0, len(uris))}
	for _, uri := range uris {
		body.Tracks = append(body.Tracks, item{URI: uri})
	}

	var result snapshot
	endpoint := fmt.Sprintf("/playlists/%s/tracks", url.PathEscape(playlistID))
	if err := s.doRequest(ctx, http.MethodDelete, endpoint, nil, body, &result); err != nil {
		return "", err
	}
	return result.SnapshotID, nil
}

// CreatePlaylist creates a playlist owned by userID.
func (s *SpotifyService) CreatePlaylist(ctx context.Context, userID string, details PlaylistDetails) (*SpotifyPlaylist, error) {
	var playlist SpotifyPlaylist
	endpoint := fmt.Sprintf("/users/%s/playlists", url.PathEscape(userID))
	if err := s.doRequest(ctx, http.MethodPost, endpoint, nil, details, &playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// ChangePlaylistDetails updates the non-nil fields of details.
func (s *SpotifyService) ChangePlaylistDetails(ctx context.Context, playlistID string, details PlaylistDetails) error {
	endpoint := fmt.Sprintf("/playlists/%s", url.PathEscape(playlistID))
	return s.doRequest(ctx, http.MethodPut, endpoint, nil, details, nil)
}

func (s *SpotifyService) playbackState(ctx context.Context, endpoint string) (*SpotifyPlaybackState, error) {
	var state SpotifyPlaybackState
	found := false
	if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, nil, &rawPresence{target: &state, found: &found}); err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &state, nil
}

// PlaybackState retrieves the full player state.
func (s *SpotifyService) PlaybackState(ctx context.Context) (*SpotifyPlaybackState, error) {
	return s.playbackState(ctx, "/me/player")
}

// CurrentlyPlaying retrieves the item currently playing.
func (s *SpotifyService) CurrentlyPlaying(ctx context.Context) (*SpotifyPlaybackState, error) {
	return s.playbackState(ctx, "/me/player/currently-playing")
}

// Devices lists the user's available playback devices.
func (s *SpotifyService) Devices(ctx context.Context) ([]device.Device, error) {
	var result struct {
		Devices []device.Device `json:"devices"`
	}
	if err := s.doRequest(ctx, http.MethodGet, "/me/player/devices", nil, nil, &result); err != nil {
		return nil, err
	}
	return result.Devices, nil
}

// Queue retrieves the user's playback queue.
func (s *SpotifyService) Queue(ctx context.Context) (*SpotifyQueue, error) {
	var queue SpotifyQueue
	if err := s.doRequest(ctx, http.MethodGet, "/me/player/queue", nil, nil, &queue); err != nil {
		return nil, err
	}
	return &queue, nil
}

// Play starts or resumes playback on deviceID.
func (s *SpotifyService) Play(ctx context.Context, deviceID string, opts PlayOptions) error {
	var body any
	if len(opts.URIs) > 0 || opts.ContextURI != "" {
		body = opts
	}
	return s.doRequest(ctx, http.MethodPut, "/me/player/play", deviceQuery(deviceID), body, nil)
}

// Pause pauses playback on deviceID.
func (s *SpotifyService) Pause(ctx context.Context, deviceID string) error {
	return s.doRequest(ctx, http.MethodPut, "/me/player/pause", deviceQuery(deviceID), nil, nil)
}

// Next skips to the next track on deviceID.
func (s *SpotifyService) Next(ctx context.Context, deviceID string) error {
	return s.doRequest(ctx, http.MethodPost, "/me/player/next", deviceQuery(deviceID), nil, nil)
}

// Previous skips to the previous track on deviceID.
func (s *SpotifyService) Previous(ctx context.Context, deviceID string) error {
	return s.doRequest(ctx, http.MethodPost, "/me/player/previous", deviceQuery(deviceID), nil, nil)
}

// Seek moves the playback position of deviceID.
func (s *SpotifyService) Seek(ctx context.Context, deviceID string, positionMS int) error {
	q := deviceQuery(deviceID)
	q.Set("position_ms", strconv.Itoa(positionMS))
	return s.doRequest(ctx, http.MethodPut, "/me/player/seek", q, nil, nil)
}

// SetVolume sets the volume of deviceID.
func (s *SpotifyService) SetVolume(ctx context.Context, deviceID string, percent int) error {
	q := deviceQuery(deviceID)
	q.Set("volume_percent", strconv.Itoa(percent))
	return s.doRequest(ctx, http.MethodPut, "/me/player/volume", q, nil, nil)
}

// AddToQueue appends uri to the queue of deviceID.
func (s *SpotifyService) AddToQueue(ctx context.Context, deviceID, uri string) error {
	q := deviceQuery(deviceID)
	q.Set("uri", uri)
	return s.doRequest(ctx, http.MethodPost, "/me/player/queue", q, nil, nil)
}

// rawPresence records whether a body was decoded at all, distinguishing a 204 from "{}".
type rawPresence struct {
	target any
	found  *bool
}

func (r *rawPresence) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		return nil
	}
	*r.found = true
	return json.Unmarshal(data, r.target)
}

var _ Client = (*SpotifyService)(nil)

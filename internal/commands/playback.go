package commands

import (
	"context"
	"strings"

	"github.com/desertthunder/spotify-mcp/internal/formatter"
	"github.com/desertthunder/spotify-mcp/internal/services"
	"github.com/desertthunder/spotify-mcp/internal/shared"
)

const (
	MaxVolume = 100
	trackType = "track"
)

// CurrentTrack returns the track currently playing, or nil when nothing is.
//
// Episodes and ads are reported as nothing playing.
func (s *Session) CurrentTrack(ctx context.Context) (*formatter.Track, error) {
	return authed(ctx, s, s.currentTrack)
}

func (s *Session) currentTrack(ctx context.Context) (*formatter.Track, error) {
	state, err := s.client.CurrentlyPlaying(ctx)
	if err != nil {
		return nil, err
	}
	if state == nil || state.Item == nil || state.CurrentlyPlayingType != trackType {
		return nil, nil
	}

	track := formatter.FormatTrack(state.Item, false)
	playing := state.IsPlaying
	track.IsPlaying = &playing
	return track, nil
}

// StartPlayback plays uri on the resolved device. A track uri is played on its
// own, any other uri is played as a context (album, playlist, artist).
//
// With no uri the current track is resumed. Resuming while already playing is
// a no-op, and resuming with no current track fails with [shared.ErrNoTrackToResume].
func (s *Session) StartPlayback(ctx context.Context, uri, deviceID string) (bool, error) {
	uri = strings.TrimSpace(uri)
	if uri != "" {
		if _, _, err := services.SplitURI(uri); err != nil {
			return false, err
		}
	}

	return onDevice(ctx, s, deviceID, func(ctx context.Context, deviceID string) (bool, error) {
		var opts services.PlayOptions
		switch {
		case uri == "":
			current, err := s.currentTrack(ctx)
			if err != nil {
				return false, err
			}
			if current == nil {
				return false, shared.ErrNoTrackToResume
			}
			if *current.IsPlaying {
				s.logger.Debug("already playing, nothing to resume", "track", current.Name)
				return false, nil
			}
		case strings.HasPrefix(uri, "spotify:track:"):
			opts.URIs = []string{uri}
		default:
			opts.ContextURI = uri
		}

		if err := s.client.Play(ctx, deviceID, opts); err != nil {
			return false, err
		}
		return true, nil
	})
}

// PausePlayback pauses the resolved device. When nothing is playing no
// remote mutation is issued and changed is false.
func (s *Session) PausePlayback(ctx context.Context, deviceID string) (changed bool, err error) {
	return onDevice(ctx, s, deviceID, func(ctx context.Context, deviceID string) (bool, error) {
		state, err := s.client.PlaybackState(ctx)
		if err != nil {
			return false, err
		}
		if state == nil || !state.IsPlaying {
			s.logger.Debug("nothing playing, pause skipped")
			return false, nil
		}
		if err := s.client.Pause(ctx, deviceID); err != nil {
			return false, err
		}
		return true, nil
	})
}

// SkipTracks skips forward n tracks, one request per track.
func (s *Session) SkipTracks(ctx context.Context, n int, deviceID string) error {
	if n < 1 {
		return invalid("num_skips must be at least 1, got %d", n)
	}

	_, err := onDevice(ctx, s, deviceID, func(ctx context.Context, deviceID string) (struct{}, error) {
		for range n {
			if err := s.client.Next(ctx, deviceID); err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, nil
	})
	return err
}

// PreviousTrack goes back one track.
func (s *Session) PreviousTrack(ctx context.Context, deviceID string) error {
	_, err := onDevice(ctx, s, deviceID, func(ctx context.Context, deviceID string) (struct{}, error) {
		return struct{}{}, s.client.Previous(ctx, deviceID)
	})
	return err
}

// SetVolume sets the resolved device's volume. percent must be within 0..100.
func (s *Session) SetVolume(ctx context.Context, percent int, deviceID string) error {
	if percent < 0 || percent > MaxVolume {
		return invalid("volume must be between 0 and %d, got %d", MaxVolume, percent)
	}

	_, err := onDevice(ctx, s, deviceID, func(ctx context.Context, deviceID string) (struct{}, error) {
		return struct{}{}, s.client.SetVolume(ctx, deviceID, percent)
	})
	return err
}

// SeekToPosition moves playback of the current track to positionMS.
func (s *Session) SeekToPosition(ctx context.Context, positionMS int, deviceID string) error {
	if positionMS < 0 {
		return invalid("position_ms must not be negative, got %d", positionMS)
	}

	_, err := onDevice(ctx, s, deviceID, func(ctx context.Context, deviceID string) (struct{}, error) {
		return struct{}{}, s.client.Seek(ctx, deviceID, positionMS)
	})
	return err
}

// AddToQueue appends a track to the resolved device's queue.
//
// trackID may be a bare id, a track uri or an open.spotify.com link.
func (s *Session) AddToQueue(ctx context.Context, trackID, deviceID string) error {
	trackID = strings.TrimSpace(trackID)
	if trackID == "" {
		return missing("track_id")
	}

	uri := services.ToURI(services.KindTrack, trackID)
	_, err := onDevice(ctx, s, deviceID, func(ctx context.Context, deviceID string) (struct{}, error) {
		return struct{}{}, s.client.AddToQueue(ctx, deviceID, uri)
	})
	return err
}

// Queue returns the currently playing track and the upcoming tracks.
func (s *Session) Queue(ctx context.Context, deviceID string) (*formatter.Queue, error) {
	return onDevice(ctx, s, deviceID, func(ctx context.Context, deviceID string) (*formatter.Queue, error) {
		queue, err := s.client.Queue(ctx)
		if err != nil {
			return nil, err
		}
		current, err := s.currentTrack(ctx)
		if err != nil {
			return nil, err
		}
		return &formatter.Queue{
			CurrentlyPlaying: current,
			Queue:            formatter.FormatTracks(queue.Queue),
		}, nil
	})
}

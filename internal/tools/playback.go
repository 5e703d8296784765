package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (t *Toolset) playbackTools() []Tool {
	return []Tool{
		{
			Def: mcp.NewTool("get_current_track",
				mcp.WithDescription("Get information about the currently playing track"),
			),
			handle: t.getCurrentTrack,
		},
		{
			Def: mcp.NewTool("start_playback",
				mcp.WithDescription("Start or resume playback on Spotify"),
				mcp.WithString("spotify_uri",
					mcp.Description(`Spotify URI of the item to play, e.g. "spotify:track:xxxxx" or "spotify:album:xxxxx". Omit to resume current playback.`),
				),
				deviceProperty(),
			),
			handle: t.startPlayback,
		},
		{
			Def: mcp.NewTool("pause_playback",
				mcp.WithDescription("Pause the current playback"),
				deviceProperty(),
			),
			handle: t.pausePlayback,
		},
		{
			Def: mcp.NewTool("skip_tracks",
				mcp.WithDescription("Skip forward one or more tracks"),
				mcp.WithNumber("num_skips",
					mcp.Description("Number of tracks to skip (default: 1)."),
				),
				deviceProperty(),
			),
			handle: t.skipTracks,
		},
		{
			Def: mcp.NewTool("previous_track",
				mcp.WithDescription("Go back to the previous track"),
				deviceProperty(),
			),
			handle: t.previousTrack,
		},
		{
			Def: mcp.NewTool("set_volume",
				mcp.WithDescription("Set playback volume (0-100)"),
				mcp.WithNumber("volume_percent",
					mcp.Required(),
					mcp.Description("Volume level as percentage (0-100)."),
				),
				deviceProperty(),
			),
			handle: t.setVolume,
		},
		{
			Def: mcp.NewTool("seek_to_position",
				mcp.WithDescription("Seek to a specific position in the current track"),
				mcp.WithNumber("position_ms",
					mcp.Required(),
					mcp.Description("Position in milliseconds to seek to."),
				),
				deviceProperty(),
			),
			handle: t.seekToPosition,
		},
	}
}

func deviceArg(args Args) (string, error) {
	id, _, err := args.String("device_id")
	return id, err
}

func (t *Toolset) getCurrentTrack(ctx context.Context, args Args) (string, error) {
	track, err := t.session.CurrentTrack(ctx)
	if err != nil {
		return "", err
	}
	if track == nil {
		return "No track playing.", nil
	}
	return jsonResult(track, nil)
}

func (t *Toolset) startPlayback(ctx context.Context, args Args) (string, error) {
	uri, _, err := args.String("spotify_uri")
	if err != nil {
		return "", err
	}
	deviceID, err := deviceArg(args)
	if err != nil {
		return "", err
	}

	started, err := t.session.StartPlayback(ctx, uri, deviceID)
	if err != nil {
		return "", err
	}
	if !started {
		return "Already playing.", nil
	}
	return "Playback started.", nil
}

func (t *Toolset) pausePlayback(ctx context.Context, args Args) (string, error) {
	deviceID, err := deviceArg(args)
	if err != nil {
		return "", err
	}

	paused, err := t.session.PausePlayback(ctx, deviceID)
	if err != nil {
		return "", err
	}
	if !paused {
		return "Nothing is playing.", nil
	}
	return "Playback paused.", nil
}

func (t *Toolset) skipTracks(ctx context.Context, args Args) (string, error) {
	n, err := args.Int("num_skips", 1)
	if err != nil {
		return "", err
	}
	deviceID, err := deviceArg(args)
	if err != nil {
		return "", err
	}

	if err := t.session.SkipTracks(ctx, n, deviceID); err != nil {
		return "", err
	}
	return fmt.Sprintf("Skipped %d track(s).", n), nil
}

func (t *Toolset) previousTrack(ctx context.Context, args Args) (string, error) {
	deviceID, err := deviceArg(args)
	if err != nil {
		return "", err
	}
	if err := t.session.PreviousTrack(ctx, deviceID); err != nil {
		return "", err
	}
	return "Switched to previous track.", nil
}

func (t *Toolset) setVolume(ctx context.Context, args Args) (string, error) {
	percent, err := args.RequireInt("volume_percent")
	if err != nil {
		return "", err
	}
	deviceID, err := deviceArg(args)
	if err != nil {
		return "", err
	}

	if err := t.session.SetVolume(ctx, percent, deviceID); err != nil {
		return "", err
	}
	return fmt.Sprintf("Volume set to %d%%.", percent), nil
}

func (t *Toolset) seekToPosition(ctx context.Context, args Args) (string, error) {
	position, err := args.RequireInt("position_ms")
	if err != nil {
		return "", err
	}
	deviceID, err := deviceArg(args)
	if err != nil {
		return "", err
	}

	if err := t.session.SeekToPosition(ctx, position, deviceID); err != nil {
		return "", err
	}
	return fmt.Sprintf("Seeked to position %dms.", position), nil
}

package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

func (t *Toolset) playlistTools() []Tool {
	trackIDs := func() mcp.ToolOption {
		return mcp.WithArray("track_ids",
			mcp.Required(),
			mcp.Description("List of Spotify track IDs or URIs."),
			mcp.Items(map[string]any{"type": "string"}),
		)
	}

	return []Tool{
		{
			Def: mcp.NewTool("get_user_playlists",
				mcp.WithDescription("Get current user's playlists"),
			),
			handle: t.getUserPlaylists,
		},
		{
			Def: mcp.NewTool("get_playlist_tracks",
				mcp.WithDescription("Get tracks from a specific playlist"),
				mcp.WithString("playlist_id",
					mcp.Required(),
					mcp.Description("ID of the playlist to get tracks from."),
				),
			),
			handle: t.getPlaylistTracks,
		},
		{
			Def: mcp.NewTool("add_tracks_to_playlist",
				mcp.WithDescription("Add tracks to a specific playlist"),
				mcp.WithString("playlist_id",
					mcp.Required(),
					mcp.Description("ID of the playlist to add tracks to."),
				),
				trackIDs(),
				mcp.WithNumber("position",
					mcp.Description("Zero-based position to insert the tracks at. Appends when omitted."),
				),
			),
			handle: t.addTracksToPlaylist,
		},
		{
			Def: mcp.NewTool("remove_tracks_from_playlist",
				mcp.WithDescription("Remove tracks from a specific playlist"),
				mcp.WithString("playlist_id",
					mcp.Required(),
					mcp.Description("ID of the playlist to remove tracks from."),
				),
				trackIDs(),
			),
			handle: t.removeTracksFromPlaylist,
		},
		{
			Def: mcp.NewTool("create_playlist",
				mcp.WithDescription("Create a new playlist"),
				mcp.WithString("name",
					mcp.Required(),
					mcp.Description("Name of the new playlist."),
				),
				mcp.WithString("description",
					mcp.Description("Optional description for the playlist."),
				),
				mcp.WithBoolean("public",
					mcp.Description("Whether the playlist is public (default: true)."),
					mcp.DefaultBool(true),
				),
			),
			handle: t.createPlaylist,
		},
		{
			Def: mcp.NewTool("change_playlist_details",
				mcp.WithDescription("Change playlist details (name and/or description)"),
				mcp.WithString("playlist_id",
					mcp.Required(),
					mcp.Description("ID of the playlist to change."),
				),
				mcp.WithString("name",
					mcp.Description("New name for the playlist (optional)."),
				),
				mcp.WithString("description",
					mcp.Description("New description for the playlist (optional)."),
				),
			),
			handle: t.changePlaylistDetails,
		},
	}
}

func (t *Toolset) getUserPlaylists(ctx context.Context, args Args) (string, error) {
	return jsonResult(t.session.UserPlaylists(ctx))
}

func (t *Toolset) getPlaylistTracks(ctx context.Context, args Args) (string, error) {
	id, err := args.RequireString("playlist_id")
	if err != nil {
		return "", err
	}
	return jsonResult(t.session.PlaylistTracks(ctx, id))
}

func trackEditArgs(args Args) (string, []string, error) {
	id, err := args.RequireString("playlist_id")
	if err != nil {
		return "", nil, err
	}
	ids, err := args.StringSlice("track_ids")
	if err != nil {
		return "", nil, err
	}
	return id, ids, nil
}

func (t *Toolset) addTracksToPlaylist(ctx context.Context, args Args) (string, error) {
	id, ids, err := trackEditArgs(args)
	if err != nil {
		return "", err
	}
	position, err := args.OptionalInt("position")
	if err != nil {
		return "", err
	}

	if err := t.session.AddTracksToPlaylist(ctx, id, ids, position); err != nil {
		return "", err
	}
	return "Tracks added to playlist.", nil
}

func (t *Toolset) removeTracksFromPlaylist(ctx context.Context, args Args) (string, error) {
	id, ids, err := trackEditArgs(args)
	if err != nil {
		return "", err
	}

	if err := t.session.RemoveTracksFromPlaylist(ctx, id, ids); err != nil {
		return "", err
	}
	return "Tracks removed from playlist.", nil
}

func (t *Toolset) createPlaylist(ctx context.Context, args Args) (string, error) {
	name, err := args.RequireString("name")
	if err != nil {
		return "", err
	}
	description, err := args.OptionalString("description")
	if err != nil {
		return "", err
	}
	public, err := args.Bool("public", true)
	if err != nil {
		return "", err
	}
	return jsonResult(t.session.CreatePlaylist(ctx, name, description, public))
}

func (t *Toolset) changePlaylistDetails(ctx context.Context, args Args) (string, error) {
	id, err := args.RequireString("playlist_id")
	if err != nil {
		return "", err
	}
	name, err := args.OptionalString("name")
	if err != nil {
		return "", err
	}
	description, err := args.OptionalString("description")
	if err != nil {
		return "", err
	}

	if err := t.session.ChangePlaylistDetails(ctx, id, name, description); err != nil {
		return "", err
	}
	return "Playlist details updated.", nil
}

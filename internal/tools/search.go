package tools

import (
	"context"

	"github.com/desertthunder/spotify-mcp/internal/commands"
	"github.com/mark3labs/mcp-go/mcp"
)

func (t *Toolset) searchTools() []Tool {
	return []Tool{
		{
			Def: mcp.NewTool("search_spotify",
				mcp.WithDescription("Search for tracks, albums, artists, or playlists on Spotify"),
				mcp.WithString("query",
					mcp.Required(),
					mcp.Description("Search query term."),
				),
				mcp.WithString("qtype",
					mcp.Description("Type of items to search for (track, album, artist, playlist, or a comma-separated combination)."),
					mcp.DefaultString("track"),
				),
				mcp.WithNumber("limit",
					mcp.Description("Maximum number of items to return (1-50, default: 10)."),
					mcp.DefaultNumber(commands.DefaultSearchLimit),
				),
			),
			handle: t.searchSpotify,
		},
		{
			Def: mcp.NewTool("add_to_queue",
				mcp.WithDescription("Add a track to the playback queue"),
				mcp.WithString("track_id",
					mcp.Required(),
					mcp.Description("Spotify track ID to add to queue."),
				),
				deviceProperty(),
			),
			handle: t.addToQueue,
		},
		{
			Def: mcp.NewTool("get_queue",
				mcp.WithDescription("Get the current playback queue"),
				deviceProperty(),
			),
			handle: t.getQueue,
		},
		{
			Def: mcp.NewTool("get_item_info",
				mcp.WithDescription("Get detailed information about a Spotify item (track, album, artist, or playlist)"),
				mcp.WithString("item_uri",
					mcp.Required(),
					mcp.Description("URI of the item. Playlists and albums include their tracks; artists include albums and top tracks."),
				),
			),
			handle: t.getItemInfo,
		},
	}
}

func (t *Toolset) searchSpotify(ctx context.Context, args Args) (string, error) {
	query, err := args.RequireString("query")
	if err != nil {
		return "", err
	}
	qtype, _, err := args.String("qtype")
	if err != nil {
		return "", err
	}
	limit, err := args.Int("limit", commands.DefaultSearchLimit)
	if err != nil {
		return "", err
	}
	return jsonResult(t.session.Search(ctx, query, qtype, limit))
}

func (t *Toolset) addToQueue(ctx context.Context, args Args) (string, error) {
	trackID, err := args.RequireString("track_id")
	if err != nil {
		return "", err
	}
	deviceID, err := deviceArg(args)
	if err != nil {
		return "", err
	}

	if err := t.session.AddToQueue(ctx, trackID, deviceID); err != nil {
		return "", err
	}
	return "Track added to queue.", nil
}

func (t *Toolset) getQueue(ctx context.Context, args Args) (string, error) {
	deviceID, err := deviceArg(args)
	if err != nil {
		return "", err
	}
	return jsonResult(t.session.Queue(ctx, deviceID))
}

func (t *Toolset) getItemInfo(ctx context.Context, args Args) (string, error) {
	uri, err := args.RequireString("item_uri")
	if err != nil {
		return "", err
	}
	return jsonResult(t.session.ItemInfo(ctx, uri))
}

package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (t *Toolset) deviceTools() []Tool {
	return []Tool{
		{
			Def: mcp.NewTool("get_devices",
				mcp.WithDescription("Get a list of all available Spotify devices including computers, phones, tablets, and speakers. Shows device name, type, ID, active status, and volume level."),
			),
			handle: t.getDevices,
		},
		{
			Def: mcp.NewTool("is_active_device",
				mcp.WithDescription("Check if there is currently an active Spotify device ready to play music. Returns true if a device is active, false if you need to open Spotify on a device first."),
			),
			handle: t.isActiveDevice,
		},
	}
}

func (t *Toolset) getDevices(ctx context.Context, args Args) (string, error) {
	return jsonResult(t.session.Devices(ctx))
}

func (t *Toolset) isActiveDevice(ctx context.Context, args Args) (string, error) {
	active, err := t.session.IsActiveDevice(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Active device: %t", active), nil
}

package commands

import (
	"context"

	"github.com/desertthunder/spotify-mcp/internal/device"
)

// Devices returns the live device list.
func (s *Session) Devices(ctx context.Context) ([]device.Device, error) {
	return authed(ctx, s, func(ctx context.Context) ([]device.Device, error) {
		devices, err := s.client.Devices(ctx)
		if err != nil {
			return nil, err
		}
		if devices == nil {
			devices = []device.Device{}
		}
		return devices, nil
	})
}

// IsActiveDevice reports whether any device is currently the playback target.
func (s *Session) IsActiveDevice(ctx context.Context) (bool, error) {
	return authed(ctx, s, func(ctx context.Context) (bool, error) {
		devices, err := s.client.Devices(ctx)
		if err != nil {
			return false, err
		}
		return device.AnyActive(devices), nil
	})
}

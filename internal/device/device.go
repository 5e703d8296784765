// Package device picks a playback target when the caller does not name one.
//
// Device availability changes outside this process (the user opens or closes
// Spotify somewhere), so the list is fetched fresh on every resolution and
// never cached. Resolution takes no locks.
package device

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotify-mcp/internal/shared"
)

// Device is a Spotify Connect playback endpoint as reported by the Web API.
type Device struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	IsActive      bool   `json:"is_active"`
	VolumePercent int    `json:"volume_percent"`
	Type          string `json:"type"`
}

// Lister fetches the live device list. It is an authenticated remote call.
type Lister interface {
	Devices(ctx context.Context) ([]Device, error)
}

// AnyActive reports whether any device is the current playback target.
func AnyActive(devices []Device) bool {
	for _, d := range devices {
		if d.IsActive {
			return true
		}
	}
	return false
}

// Candidate returns the first active device, else the first device.
//
// fallback is true when no device was active. The list order is whatever the
// remote API returned; "first" is a usability heuristic, not a guarantee.
func Candidate(devices []Device) (d Device, fallback bool, err error) {
	if len(devices) == 0 {
		return Device{}, false, shared.ErrNoDeviceAvailable
	}
	for _, d := range devices {
		if d.IsActive {
			return d, false, nil
		}
	}
	return devices[0], true, nil
}

// Resolve returns explicit verbatim when set, otherwise the id of [Candidate].
//
// An explicit id is not validated against the list; the remote API rejects unknown ids.
func Resolve(explicit string, devices []Device) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	d, _, err := Candidate(devices)
	if err != nil {
		return "", err
	}
	return d.ID, nil
}

// Resolver injects a device id into operations that need a playback target.
type Resolver struct {
	lister Lister
	logger *log.Logger
}

// NewResolver creates a [Resolver] reading devices from lister.
func NewResolver(lister Lister, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Resolver{lister: lister, logger: shared.WithLogger(logger, "component", "device")}
}

// Resolve picks the device for one call. The list is fetched only when explicit is empty.
func (r *Resolver) Resolve(ctx context.Context, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	devices, err := r.lister.Devices(ctx)
	if err != nil {
		r.logger.Error("failed to list devices", "error", err)
		return "", fmt.Errorf("failed to list devices: %w", err)
	}

	d, fallback, err := Candidate(devices)
	if err != nil {
		r.logger.Warn("no devices available")
		return "", err
	}
	if fallback {
		r.logger.Info("no active device found, using first available", "device", d.Name, "id", d.ID, "type", d.Type)
	}
	return d.ID, nil
}

// WithActiveDevice resolves a device and passes its id to op.
func WithActiveDevice[T any](ctx context.Context, r *Resolver, explicit string, op func(ctx context.Context, deviceID string) (T, error)) (T, error) {
	id, err := r.Resolve(ctx, explicit)
	if err != nil {
		var zero T
		return zero, err
	}
	return op(ctx, id)
}

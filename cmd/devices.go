package main

import (
	"context"

	"github.com/urfave/cli/v3"
)

// Devices lists playback devices through the same guarded session the tools use.
func (r *Runner) Devices(ctx context.Context, cmd *cli.Command) error {
	session, err := r.Session()
	if err != nil {
		return err
	}

	devices, err := session.Devices(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(devices, cmd.Bool("pretty"))
	}

	if len(devices) == 0 {
		return r.writePlain("%s\n", r.palette.Warn("No devices available. Open Spotify on a device first."))
	}

	r.writePlain("%s\n", r.palette.Title("Devices"))
	for _, d := range devices {
		marker := " "
		if d.IsActive {
			marker = "*"
		}
		r.writePlain("%s %-24s %-12s %3d%%  %s\n", marker, d.Name, d.Type, d.VolumePercent, r.palette.Help(d.ID))
	}
	return nil
}

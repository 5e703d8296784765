package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/spotify-mcp/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup writes a config file from the embedded template and initializes the token cache.
//
// With the sqlite backend this creates the database and runs migrations.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err == nil {
		r.logger.Info("config file exists", "path", configPath)
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		r.writePlain("%s\n", r.palette.OK("Config written to "+configPath))
	}

	config, err := shared.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if err := config.LoadEnv(); err != nil {
		r.logger.Warn("failed to load environment", "error", err)
	}
	r.config = config
	r.cache = nil

	if _, err := r.TokenCache(); err != nil {
		return fmt.Errorf("failed to initialize token cache: %w", err)
	}
	r.writePlain("%s\n", r.palette.OK(fmt.Sprintf("Token cache ready (%s: %s)", config.Cache.Backend, config.CachePath())))

	if err := config.Validate(); err != nil {
		r.writePlain("%s\n%v\n", r.palette.Warn("Configuration incomplete:"), err)
		r.writePlain("%s\n", r.palette.Help("Fill in credentials.spotify or set SPOTIFY_CLIENT_ID, SPOTIFY_CLIENT_SECRET and SPOTIFY_REDIRECT_URI."))
		return nil
	}

	r.writePlain("%s\n", r.palette.Help("Next: run `spotify-mcp auth login`."))
	return nil
}

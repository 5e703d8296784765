package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotify-mcp/internal/auth"
	"github.com/desertthunder/spotify-mcp/internal/commands"
	"github.com/desertthunder/spotify-mcp/internal/repositories"
	"github.com/desertthunder/spotify-mcp/internal/services"
	"github.com/desertthunder/spotify-mcp/internal/shared"
	"github.com/desertthunder/spotify-mcp/internal/tools"
	"github.com/desertthunder/spotify-mcp/internal/ui"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// The token cache, OAuth manager and session are built on first use so that
// `setup` and `--help` work without credentials.
type Runner struct {
	config     *shared.Config
	configPath string
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	palette    *ui.Palette

	cache   auth.TokenCache
	client  services.Client
	db      *sql.DB
	manager *auth.Manager
	session *commands.Session
}

// RunnerOpts contains configuration options for creating a Runner.
//
// Cache and Client replace the configured backend and the Spotify client.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	Cache      auth.TokenCache
	Client     services.Client
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		palette:    ui.DefaultPalette,
		cache:      opts.Cache,
		client:     opts.Client,
	}
}

func (r *Runner) register() []*cli.Command {
	cmds := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		serveCommand, authCommand, devicesCommand, setupCommand,
	} {
		cmds = append(cmds, fn(r))
	}

	return cmds
}

// before applies the --debug flag ahead of every action.
func (r *Runner) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool("debug") {
		r.logger.SetLevel(log.DebugLevel)
	}
	return ctx, nil
}

// Close releases the sqlite handle when one was opened.
func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

// TokenCache opens the configured backend.
func (r *Runner) TokenCache() (auth.TokenCache, error) {
	if r.cache != nil {
		return r.cache, nil
	}

	path := r.config.CachePath()
	switch r.config.Cache.Backend {
	case "sqlite":
		db, err := shared.NewDatabase(path)
		if err != nil {
			return nil, err
		}
		shared.ConfigureDatabase(db, r.config.Cache.MaxOpenConns, r.config.Cache.MaxIdleConns)
		if err := shared.RunMigrations(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		r.db = db
		r.cache = repositories.NewTokenRepository(db, repositories.DefaultAccount)
	case "file", "":
		r.cache = auth.NewFileCache(path)
	default:
		return nil, fmt.Errorf("%w: cache.backend %q", shared.ErrUnsupportedBackend, r.config.Cache.Backend)
	}

	r.logger.Debug("token cache ready", "backend", r.config.Cache.Backend, "path", path)
	return r.cache, nil
}

// Manager returns the OAuth collaborator, validating the configuration first.
func (r *Runner) Manager() (*auth.Manager, error) {
	if r.manager != nil {
		return r.manager, nil
	}
	if err := r.config.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidConfig, err)
	}

	cache, err := r.TokenCache()
	if err != nil {
		return nil, err
	}

	m, err := auth.NewManager(auth.ManagerOpts{
		Credentials: r.config.Credentials.Spotify.Map(),
		Cache:       cache,
		HTTPClient:  r.httpClient,
		Logger:      r.logger,
	})
	if err != nil {
		return nil, err
	}
	r.manager = m
	return m, nil
}

// Session returns the command session shared by every tool call.
func (r *Runner) Session() (*commands.Session, error) {
	if r.session != nil {
		return r.session, nil
	}

	m, err := r.Manager()
	if err != nil {
		return nil, err
	}

	client := r.client
	if client == nil {
		client, err = services.NewSpotifyService(services.SpotifyOpts{
			BaseURL:           r.config.API.BaseURL,
			Tokens:            m,
			HTTPClient:        &http.Client{Timeout: r.config.API.Timeout.Duration},
			RequestsPerSecond: r.config.API.RequestsPerSecond,
			Burst:             r.config.API.Burst,
			Logger:            r.logger,
		})
		if err != nil {
			return nil, err
		}
	}

	s, err := commands.NewSession(commands.SessionOpts{
		Client: client,
		Guard:  auth.NewGuard(m, r.logger),
		Logger: r.logger,
	})
	if err != nil {
		return nil, err
	}
	r.session = s
	return s, nil
}

// Toolset returns the MCP tools bound to the session.
func (r *Runner) Toolset() (*tools.Toolset, error) {
	s, err := r.Session()
	if err != nil {
		return nil, err
	}
	return tools.NewToolset(s, r.logger), nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

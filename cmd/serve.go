package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/spotify-mcp/internal/tools"
	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
)

// Serve runs the MCP server over stdin/stdout until the client disconnects or a signal arrives.
//
// The session is built before listening so missing credentials fail here
// rather than on the first tool call.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	session, err := r.Session()
	if err != nil {
		return err
	}

	if m, err := r.Manager(); err == nil {
		if tok, err := m.CachedToken(ctx); err == nil && tok == nil {
			r.logger.Warn("no cached token; run `spotify-mcp auth login` before calling tools")
		}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	stdio := server.NewStdioServer(tools.NewServer(session, r.logger))
	stdio.SetErrorLogger(r.logger.StandardLog())

	r.logger.Info("serving MCP over stdio", "name", tools.ServerName, "version", tools.ServerVersion)
	if err := stdio.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	r.logger.Info("MCP server stopped")
	return nil
}

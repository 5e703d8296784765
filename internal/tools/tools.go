package tools

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotify-mcp/internal/commands"
	"github.com/desertthunder/spotify-mcp/internal/formatter"
	"github.com/desertthunder/spotify-mcp/internal/shared"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	ServerName    = "spotify-mcp"
	ServerVersion = "0.1.0"
)

// Error prefixes shown to tool callers.
const (
	PrefixAPI        = "Spotify API error: "
	PrefixValidation = "Validation error: "
	PrefixAuth       = "Authentication error: "
	PrefixDevice     = "Device error: "
	PrefixUnexpected = "Unexpected error: "
)

// handlerFunc is a tool body. Its error is converted by [Toolset.wrap].
type handlerFunc func(ctx context.Context, args Args) (string, error)

// Tool pairs an MCP tool definition with its handler.
type Tool struct {
	Def    mcp.Tool
	handle handlerFunc
}

// Toolset builds the tools for one [commands.Session].
type Toolset struct {
	session *commands.Session
	logger  *log.Logger
}

// NewToolset creates a [Toolset].
func NewToolset(session *commands.Session, logger *log.Logger) *Toolset {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Toolset{session: session, logger: shared.WithLogger(logger, "component", "tools")}
}

// Tools returns every tool, grouped by playback, search, playlists and devices.
func (t *Toolset) Tools() []Tool {
	var all []Tool
	all = append(all, t.playbackTools()...)
	all = append(all, t.searchTools()...)
	all = append(all, t.playlistTools()...)
	all = append(all, t.deviceTools()...)
	return all
}

// Register adds every tool to s.
func (t *Toolset) Register(s *server.MCPServer) {
	for _, tool := range t.Tools() {
		s.AddTool(tool.Def, t.wrap(tool.Def.Name, tool.handle))
	}
	t.logger.Debug("registered tools", "count", len(t.Tools()))
}

// NewServer creates an MCP server with every tool registered.
func NewServer(session *commands.Session, logger *log.Logger) *server.MCPServer {
	s := server.NewMCPServer(ServerName, ServerVersion, server.WithToolCapabilities(false))
	NewToolset(session, logger).Register(s)
	return s
}

func (t *Toolset) wrap(name string, h handlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (result *mcp.CallToolResult, _ error) {
		logger := t.logger.With("tool", name, "call_id", shared.GenerateID())
		start := time.Now()
		logger.Info("tool call")

		defer func() {
			if r := recover(); r != nil {
				logger.Error("tool call panicked", "panic", r)
				result = mcp.NewToolResultError(PrefixUnexpected + fmt.Sprint(r))
			}
		}()

		text, err := h(ctx, Args(req.GetArguments()))
		if err != nil {
			msg := Describe(err)
			logger.Error("tool call failed", "error", err, "duration", time.Since(start))
			return mcp.NewToolResultError(msg), nil
		}

		logger.Debug("tool call completed", "duration", time.Since(start))
		return mcp.NewToolResultText(text), nil
	}
}

// Describe maps err to the caller-visible message.
func Describe(err error) string {
	var apiErr *shared.APIError
	switch {
	case shared.IsValidation(err), errors.Is(err, shared.ErrNoTrackToResume):
		return PrefixValidation + err.Error()
	case errors.Is(err, shared.ErrNotAuthenticated), errors.Is(err, shared.ErrReauthRequired):
		return PrefixAuth + err.Error()
	case errors.Is(err, shared.ErrNoDeviceAvailable):
		return PrefixDevice + err.Error()
	case errors.As(err, &apiErr):
		return PrefixAPI + apiErr.Error()
	default:
		return PrefixUnexpected + err.Error()
	}
}

func jsonResult(v any, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return formatter.JSON(v)
}

// deviceProperty is the optional explicit target shared by the player tools.
func deviceProperty() mcp.ToolOption {
	return mcp.WithString("device_id",
		mcp.Description("Spotify device id to target. Defaults to the active device, else the first available device."),
	)
}

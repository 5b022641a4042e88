// Package mcp exposes the lifespan estimator and stored calculations as
// Model Context Protocol tools over stdio.
package mcp

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/tartampluch/go-lifecalendar/internal/config"
	"github.com/tartampluch/go-lifecalendar/internal/engine"
	"github.com/tartampluch/go-lifecalendar/internal/store"
)

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer *mcp.Server
	repo      store.Repository
	baseAge   float64
	clock     engine.Clock
}

// Option customizes NewServer.
type Option func(*Server)

// WithClock pins "today" for progress reports.
func WithClock(c engine.Clock) Option {
	return func(s *Server) { s.clock = c }
}

// NewServer registers the tools against repo. baseAge is used when a
// request does not carry its own.
func NewServer(repo store.Repository, baseAge float64, opts ...Option) *Server {
	s := &Server{
		mcpServer: mcp.NewServer(&mcp.Implementation{
			Name:    config.MCPServerName,
			Version: config.Version,
		}, nil),
		repo:    repo,
		baseAge: baseAge,
		clock:   engine.RealClock{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	return s
}

// Serve runs the server on stdio until ctx is cancelled or the client leaves.
func (s *Server) Serve(ctx context.Context) error {
	slog.Info(config.MsgMCPStart, config.LogKeyComponent, config.CompMCP)
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

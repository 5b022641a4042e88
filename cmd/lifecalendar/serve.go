package main

import (
	"github.com/spf13/cobra"
	"github.com/tartampluch/go-lifecalendar/internal/config"
	"github.com/tartampluch/go-lifecalendar/internal/mcp"
	"github.com/tartampluch/go-lifecalendar/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API until interrupted.

ROUTES:

  POST /api/calculations                 estimate and store a calculation
  GET  /api/calculations/{id}            stored calculation with progress
  GET  /calendar/{id}.pdf                printable calendar
  GET  /calendar/{id}.ics                iCalendar feed
  GET  /calendar/{id}/pages/{n}.png      raster preview of year n
  GET  /healthz                          liveness probe`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationService: ""},
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.openRepo()
			if err != nil {
				return err
			}
			return server.New(repo, a.settings, server.WithClock(a.clock)).Start(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&a.settings.Addr, config.FlagAddr, a.settings.Addr, config.FlagDescAddr)
	return cmd
}

func newMCPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server",
		Long: `Start the Model Context Protocol (MCP) server on stdio.

TOOLS:

  calculate_lifespan   estimate and store a calculation
  get_calculation      stored calculation with progress
  list_calculations    recent calculations
  calendar_summary     pages, days and download paths of a calendar

Add to an MCP client configuration:

  {
    "mcpServers": {
      "lifecalendar": { "command": "lifecalendar", "args": ["mcp"] }
    }
  }`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationService: ""},
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.openRepo()
			if err != nil {
				return err
			}
			return mcp.NewServer(repo, a.settings.BaseAge, mcp.WithClock(a.clock)).Serve(cmd.Context())
		},
	}
}

package mcp

import (
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/worklogd/worklogd/internal/export"
)

const serverInstructions = `worklogd tracks a single user's work day: an overall
day session, nested meeting timers, and manually logged time entries.

Typical flow: start_work_day, then start_meeting/stop_meeting around each
meeting, add_entry for completed chunks of work, stop_work_day at the end,
and get_report or export_report for the aggregated summary. Only one work
day and one meeting can be active at a time.`

// Services contains all domain services needed by the MCP surface.
type Services struct {
	Tracking TrackingService
	Reports  ReportService
	Exports  *export.Registry
}

// Config contains server configuration.
type Config struct {
	Services      Services
	Resolver      OwnerResolver
	AuthEnabled   bool
	DefaultOwner  string
	TransportMode string // "stdio" or "http"
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "worklogd",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	defaultOwner := cfg.DefaultOwner
	if defaultOwner == "" {
		defaultOwner = "default"
	}

	// Stdio mode is local-only; auth applies to HTTP mode when enabled.
	if cfg.TransportMode == "stdio" || !cfg.AuthEnabled {
		server.AddReceivingMiddleware(noAuthMiddleware(defaultOwner))
	} else {
		server.AddReceivingMiddleware(authMiddleware(cfg.Resolver))
	}
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services)

	return server
}

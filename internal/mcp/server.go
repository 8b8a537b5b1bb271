package mcp

import (
	"log/slog"

	"github.com/claude/liftplan/internal/ingest/program"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, parser *program.Parser, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("LiftPlan", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("LiftPlan workout program server. Parse program text into days, circuits and exercises, and browse imported plans."),
	)

	h := &handlers{ds: ds, parser: parser, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolParseProgram, Handler: h.parseProgram},
		server.ServerTool{Tool: toolListPlans, Handler: h.listPlans},
		server.ServerTool{Tool: toolGetPlan, Handler: h.getPlan},
		server.ServerTool{Tool: toolListDays, Handler: h.listDays},
		server.ServerTool{Tool: toolGetDay, Handler: h.getDay},
		server.ServerTool{Tool: toolGetStats, Handler: h.getStats},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resPlans, Handler: h.plans},
		server.ServerResource{Resource: resVocabulary, Handler: h.vocabulary},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds     DataSource
	parser *program.Parser
	log    *slog.Logger
}

// --- Resource definitions ---

var resPlans = mcp.NewResource(
	"liftplan://plans",
	"Imported Plans",
	mcp.WithResourceDescription("All imported workout plans with their day counts, newest first"),
	mcp.WithMIMEType("application/json"),
)

var resVocabulary = mcp.NewResource(
	"liftplan://vocabulary",
	"Parser Vocabulary",
	mcp.WithResourceDescription("Exercise keywords, muscle groups, day header keywords, skip patterns and column headers the parser recognises"),
	mcp.WithMIMEType("application/json"),
)

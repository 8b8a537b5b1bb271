package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/claude/liftplan/internal/config"
	"github.com/claude/liftplan/internal/ingest/program"
	"github.com/claude/liftplan/internal/models"
	"github.com/claude/liftplan/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Store is the plan repository as seen by the HTTP handlers.
type Store interface {
	Ping(ctx context.Context) error
	ListPlans(ctx context.Context) ([]models.PlanSummary, error)
	GetPlan(ctx context.Context, id uuid.UUID) (*models.PlanRow, error)
	DeletePlan(ctx context.Context, id uuid.UUID) error
	ListDays(ctx context.Context, planID *uuid.UUID) ([]models.DaySummary, error)
	GetDay(ctx context.Context, id int64) (*models.DayRow, error)
	QueryImportLogs(ctx context.Context, limit int) ([]models.ImportLog, error)
	GetDataStats(ctx context.Context, topN int) (*storage.DataStats, error)
}

var _ Store = (*storage.DB)(nil)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db       Store
	provider *program.Provider
	upload   config.UploadConfig
	log      *slog.Logger
	apiKey   string
	router   chi.Router
}

// New creates a new Server with all routes configured.
func New(db Store, provider *program.Provider, apiKey string, upload config.UploadConfig, log *slog.Logger) *Server {
	s := &Server{
		db:       db,
		provider: provider,
		upload:   upload,
		log:      log,
		apiKey:   apiKey,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Get("/healthz", s.handleHealth)

	// Upload endpoints (API key required)
	s.router.Route("/api/v1/plans", func(r chi.Router) {
		r.With(APIKeyAuth(s.apiKey)).Post("/upload", s.handleUpload)
		r.With(APIKeyAuth(s.apiKey)).Post("/parse", s.handleParse)

		// Read endpoints (no auth; tsnet handles access)
		r.Get("/", s.handleListPlans)
		r.Get("/{id}", s.handleGetPlan)
		r.With(APIKeyAuth(s.apiKey)).Delete("/{id}", s.handleDeletePlan)
	})

	s.router.Get("/api/v1/days", s.handleListDays)
	s.router.Get("/api/v1/days/{id}", s.handleGetDay)
	s.router.Get("/api/v1/imports", s.handleListImports)
	s.router.Get("/api/v1/stats", s.handleStats)
}

// MountMCP serves an MCP streamable HTTP handler at /mcp.
func (s *Server) MountMCP(h http.Handler) {
	s.router.Handle("/mcp", h)
}

// Package server is the HTTP shell: the server-rendered workout form, plan
// and exercise detail views, plus a small JSON API.
package server

import (
	"context"
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"

	"github.com/claude/fitgen/internal/export"
	"github.com/claude/fitgen/internal/workout"
	"github.com/claude/fitgen/internal/workspace"
	"github.com/go-chi/chi/v5"
)

//go:embed templates static
var assets embed.FS

// Generator produces a workout plan for a request.
type Generator interface {
	Generate(ctx context.Context, req workout.Request) (*workout.Plan, error)
	// Ready reports why generation cannot work, or nil.
	Ready() error
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	gen      Generator
	sessions *workspace.Store
	exporter export.Exporter
	pages    *pages
	log      *slog.Logger
	router   chi.Router

	// inflight tracks background generations so shutdown and tests can
	// wait for them.
	inflight sync.WaitGroup
}

// New creates a new Server with all routes configured.
func New(gen Generator, sessions *workspace.Store, exporter export.Exporter, log *slog.Logger) *Server {
	s := &Server{
		gen:      gen,
		sessions: sessions,
		exporter: exporter,
		pages:    mustParsePages(),
		log:      log,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Mount attaches an extra handler, such as the MCP endpoint, under pattern.
func (s *Server) Mount(pattern string, h http.Handler) {
	s.router.Mount(pattern, h)
}

// Wait blocks until every background generation has finished.
func (s *Server) Wait() {
	s.inflight.Wait()
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))

	static, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(static)))
	s.router.Get("/healthz", s.handleHealth)

	// Browser shell (one workspace per session cookie)
	s.router.Group(func(r chi.Router) {
		r.Use(Sessions(s.sessions))
		r.Get("/", s.handleIndex)
		r.Post("/form/field", s.handleFormField)
		r.Post("/form/equipment", s.handleFormEquipment)
		r.Post("/generate", s.handleGenerate)
		r.Post("/start-over", s.handleStartOver)
		r.Post("/plan/exercises/{idx}", s.handleOpenDetail)
		r.Post("/plan/close", s.handleCloseDetail)
		r.Get("/plan/export.pdf", s.handleExport)
	})

	// Stateless JSON API
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(CORS)
		r.Get("/options", s.handleOptions)
		r.Post("/plans", s.handleCreatePlan)
	})
}

package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/mikey/inbox-priority/internal/core"
)

// Server is the HTTP surface consumed by the presentation layer
type Server struct {
	svc     *core.TriageService
	router  chi.Router
	logger  *zap.Logger
	started time.Time
}

// NewServer creates a new API server around the triage service
func NewServer(svc *core.TriageService, logger *zap.Logger) *Server {
	s := &Server{
		svc:     svc,
		logger:  logger,
		started: time.Now(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/score", s.handleScore)
		r.Post("/digest", s.handleDigest)

		r.Get("/vip", s.handleListVIP)
		r.Post("/vip", s.handleUpsertVIP)
		r.Delete("/vip/{contactID}", s.handleRemoveVIP)
		r.Post("/vip/detect", s.handleDetectVIP)

		r.Post("/behavior/{contact}", s.handleUpdateBehavior)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": time.Since(s.started).Seconds(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

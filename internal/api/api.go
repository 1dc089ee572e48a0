// Package api serves the run-status HTTP surface.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/catarr/catarr/internal/catalog"
	"github.com/catarr/catarr/internal/scraper"
)

// Server exposes the engine's run state and catalog counts.
type Server struct {
	engine *scraper.Engine
	merger *catalog.Merger
	logger *slog.Logger
}

// New creates a status API server.
func New(engine *scraper.Engine, merger *catalog.Merger, logger *slog.Logger) *Server {
	return &Server{
		engine: engine,
		merger: merger,
		logger: logger.With("component", "api"),
	}
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /status", s.getStatus)
	mux.HandleFunc("GET /healthz", s.health)
}

type statusResponse struct {
	Scraper scraper.Status `json:"scraper"`
	Catalog catalog.Status `json:"catalog"`
}

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	counts, err := s.merger.CatalogStatus()
	if err != nil {
		s.logger.Error("catalog status failed", "error", err)
		writeError(w, http.StatusInternalServerError, "catalog status unavailable")
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{
		Scraper: s.engine.Status(),
		Catalog: counts,
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

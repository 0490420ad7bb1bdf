package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/skydeck-app/skydeck/internal/config"
	"github.com/skydeck-app/skydeck/internal/engine"
	"github.com/skydeck-app/skydeck/internal/stats"
	"github.com/skydeck-app/skydeck/internal/store"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	cfg    *config.Config
	engine *engine.Engine
	stats  *stats.Aggregator
	store  store.Store
}

func New(cfg *config.Config, eng *engine.Engine, agg *stats.Aggregator, st store.Store) *Server {
	return &Server{cfg: cfg, engine: eng, stats: agg, store: st}
}

// Router returns the HTTP handler with all routes registered.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.corsMiddleware)

	r.Post("/api/airport", s.handleAirport)
	r.Post("/api/flights", s.handleFlights)
	r.Post("/api/layover", s.handleLayover)
	r.Post("/api/fares", s.handleFares)

	r.Get("/api/loyalty", s.handleGetLoyalty)
	r.Post("/api/loyalty", s.handleSaveLoyalty)
	r.Get("/api/settings", s.handleGetSettings)
	r.Post("/api/settings", s.handleSaveSettings)
	r.Get("/api/history", s.handleHistory)

	r.Get("/api/stats", s.handleStats)
	r.Get("/healthz", s.handleHealth)

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

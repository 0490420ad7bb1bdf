package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/skydeck-app/skydeck/internal/engine"
	"github.com/skydeck-app/skydeck/internal/store"
)

// Request bodies accept both the documented field names and the legacy
// aliases the original frontend sent (airport/from/to).

type airportRequest struct {
	AirportCode string `json:"airportCode"`
	Airport     string `json:"airport"`
}

func (r airportRequest) code() string {
	if r.AirportCode != "" {
		return r.AirportCode
	}
	return r.Airport
}

func (s *Server) handleAirport(w http.ResponseWriter, r *http.Request) {
	var req airportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	resp, err := s.engine.LookupAirport(r.Context(), req.code())
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type flightRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	From        string `json:"from"`
	To          string `json:"to"`
	Date        string `json:"date"`
	Travelers   int    `json:"travelers"`
	SeatClass   string `json:"seatClass"`
	SessionID   string `json:"session_id"`
}

func (fr flightRequest) query() engine.FlightQuery {
	origin, destination := fr.Origin, fr.Destination
	if origin == "" {
		origin = fr.From
	}
	if destination == "" {
		destination = fr.To
	}
	return engine.FlightQuery{
		Origin:      origin,
		Destination: destination,
		Date:        fr.Date,
		Travelers:   fr.Travelers,
		SeatClass:   fr.SeatClass,
	}
}

func (s *Server) handleFlights(w http.ResponseWriter, r *http.Request) {
	var req flightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	q := req.query()
	resp, err := s.engine.SearchFlights(r.Context(), q)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	// Search history is analytics: log in the background, never block or
	// fail the response.
	go s.logSearch(req.SessionID, resp.Data.Origin, resp.Data.Destination, q.Date, q.Travelers)

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) logSearch(sessionID, origin, destination, date string, travelers int) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := s.store.LogSearch(ctx, store.SearchLog{
		SessionID:   sessionID,
		Origin:      origin,
		Destination: destination,
		Date:        date,
		Travelers:   travelers,
	})
	if err != nil {
		slog.Warn("failed to log search", "error", err)
	}
}

type layoverRequest struct {
	AirportCode   string  `json:"airportCode"`
	Airport       string  `json:"airport"`
	DurationHours float64 `json:"durationHours"`
}

func (s *Server) handleLayover(w http.ResponseWriter, r *http.Request) {
	var req layoverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	code := req.AirportCode
	if code == "" {
		code = req.Airport
	}

	resp, err := s.engine.LayoverSuggestions(r.Context(), code, req.DurationHours)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type fareRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	From        string `json:"from"`
	To          string `json:"to"`
	Date        string `json:"date"`
	Mode        string `json:"mode"`
}

func (s *Server) handleFares(w http.ResponseWriter, r *http.Request) {
	var req fareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	origin, destination := req.Origin, req.Destination
	if origin == "" {
		origin = req.From
	}
	if destination == "" {
		destination = req.To
	}

	// "flights" mode returns full offers for the date instead of a
	// month calendar.
	if req.Mode == "flights" {
		resp, err := s.engine.SearchFlights(r.Context(), engine.FlightQuery{
			Origin:      origin,
			Destination: destination,
			Date:        req.Date,
		})
		if err != nil {
			s.writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
		return
	}

	resp, err := s.engine.FareCalendar(r.Context(), origin, destination, req.Date)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"stats":   s.stats.Snapshot(),
		"cache":   s.engine.Cache().CacheStats(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "operational",
		"apis_configured": map[string]bool{
			"opensky":       s.cfg.OpenSkyClientID != "" && s.cfg.OpenSkyClientSecret != "",
			"aerodatabox":   s.cfg.RapidAPIKey != "",
			"aviationstack": s.cfg.AviationStackKey != "",
			"travelpayouts": s.cfg.TravelpayoutsToken != "",
			"database":      s.cfg.DatabaseURL != "",
		},
		"cache":     s.engine.Cache().CacheStats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// writeEngineError maps engine errors to HTTP. Only input validation ever
// reaches here; everything else degrades inside the engine.
func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	if errors.Is(err, engine.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	slog.Error("engine error", "error", err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}

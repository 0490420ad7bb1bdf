package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/skydeck-app/skydeck/internal/store"
)

func (s *Server) handleGetLoyalty(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	programs, err := s.store.Loyalty(r.Context(), sessionID)
	if err != nil {
		slog.Error("failed to load loyalty programs", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load loyalty programs")
		return
	}
	if programs == nil {
		programs = []store.LoyaltyProgram{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "programs": programs})
}

type saveLoyaltyRequest struct {
	SessionID    string `json:"session_id"`
	Program      string `json:"loyalty_program"`
	Airline      string `json:"airline"`
	Status       string `json:"status"`
	MemberNumber string `json:"member_number"`
}

func (s *Server) handleSaveLoyalty(w http.ResponseWriter, r *http.Request) {
	var req saveLoyaltyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.SessionID == "" || req.Program == "" {
		writeError(w, http.StatusBadRequest, "session_id and loyalty_program are required")
		return
	}

	saved, err := s.store.SaveLoyalty(r.Context(), req.SessionID, store.LoyaltyProgram{
		Program:      req.Program,
		Airline:      req.Airline,
		Status:       req.Status,
		MemberNumber: req.MemberNumber,
	})
	if err != nil {
		slog.Error("failed to save loyalty program", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save loyalty program")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "program": saved})
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	settings, err := s.store.Settings(r.Context(), sessionID)
	if err != nil {
		slog.Error("failed to load settings", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}
	if settings == nil {
		settings = map[string]any{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "settings": settings})
}

type saveSettingsRequest struct {
	SessionID string         `json:"session_id"`
	Settings  map[string]any `json:"settings"`
}

func (s *Server) handleSaveSettings(w http.ResponseWriter, r *http.Request) {
	var req saveSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "session_id is required")
		return
	}
	if req.Settings == nil {
		req.Settings = map[string]any{}
	}

	if err := s.store.SaveSettings(r.Context(), req.SessionID, req.Settings); err != nil {
		slog.Error("failed to save settings", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save settings")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	history, err := s.store.History(r.Context(), sessionID, limit)
	if err != nil {
		slog.Error("failed to load search history", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load search history")
		return
	}
	if history == nil {
		history = []store.SearchLog{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "history": history})
}

package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/scarevault/scarevault/internal/repository"
)

type offsetsDTO struct {
	StartDeltaSeconds int `json:"start_delta_seconds"`
	EndDeltaSeconds   int `json:"end_delta_seconds"`
}

func (s *Server) handleGetOffsets(w http.ResponseWriter, r *http.Request) {
	start, end, err := s.settingsRepo.ScareOffsets()
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to read offsets")
		return
	}
	s.respondJSON(w, http.StatusOK, Response{Success: true, Data: offsetsDTO{
		StartDeltaSeconds: start,
		EndDeltaSeconds:   end,
	}})
}

// handleUpdateOffsets persists new display deltas. Derivation happens
// per query, so the change applies to every interval immediately.
func (s *Server) handleUpdateOffsets(w http.ResponseWriter, r *http.Request) {
	var req offsetsDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.settingsRepo.SetScareOffsets(req.StartDeltaSeconds, req.EndDeltaSeconds); err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to save offsets")
		return
	}
	s.respondJSON(w, http.StatusOK, Response{Success: true, Data: req})
}

type feedSettingsDTO struct {
	FeedURL          string `json:"feed_url"`
	RefreshHours     int    `json:"refresh_hours"`
	LastRefreshedUTC string `json:"last_refreshed_utc,omitempty"`
}

func (s *Server) handleGetFeedSettings(w http.ResponseWriter, r *http.Request) {
	url, every, last, err := s.settingsRepo.FeedSettings()
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to read feed settings")
		return
	}
	dto := feedSettingsDTO{FeedURL: url, RefreshHours: int(every / time.Hour)}
	if !last.IsZero() {
		dto.LastRefreshedUTC = last.UTC().Format(time.RFC3339)
	}
	s.respondJSON(w, http.StatusOK, Response{Success: true, Data: dto})
}

func (s *Server) handleUpdateFeedSettings(w http.ResponseWriter, r *http.Request) {
	var req feedSettingsDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.RefreshHours < 1 {
		s.respondError(w, http.StatusBadRequest, "refresh_hours must be at least 1")
		return
	}

	if err := s.settingsRepo.Set(repository.KeyFeedURL, req.FeedURL); err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to save feed settings")
		return
	}
	if err := s.settingsRepo.Set(repository.KeyFeedRefreshHours, strconv.Itoa(req.RefreshHours)); err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to save feed settings")
		return
	}
	s.respondJSON(w, http.StatusOK, Response{Success: true, Data: req})
}

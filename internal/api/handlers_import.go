package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/scarevault/scarevault/internal/importer"
	"github.com/scarevault/scarevault/internal/jobs"
	"github.com/scarevault/scarevault/internal/models"
)

const maxImportBytes = 16 << 20

// handleImport ingests a raw CSV body and merges the parsed events into
// the store. Row-level failures only raise the skip count; the call
// fails outright only for unusable input or an unavailable collaborator.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	events, stats, err := s.parser.Parse(r.Context(), string(body))
	if errors.Is(err, importer.ErrInvalidInput) {
		s.respondError(w, http.StatusBadRequest, "import file is empty or has no data rows")
		return
	}
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "catalog unavailable")
		return
	}

	res, err := s.store.AddMerge(r.Context(), events)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to persist events")
		return
	}

	result := models.ImportResult{
		Success:       true,
		ImportedCount: res.Added,
		SkippedCount:  stats.Skipped + res.Skipped,
		TotalRows:     stats.TotalRows,
		Message: fmt.Sprintf("imported %d of %d rows (%d skipped)",
			res.Added, stats.TotalRows, stats.Skipped+res.Skipped),
	}

	s.wsHub.Broadcast("import:complete", result)
	s.respondJSON(w, http.StatusOK, Response{Success: true, Data: result})
}

// handleEnqueueFeedImport queues a background import of the configured
// community feed.
func (s *Server) handleEnqueueFeedImport(w http.ResponseWriter, r *http.Request) {
	feedURL, _, _, err := s.settingsRepo.FeedSettings()
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to read feed settings")
		return
	}
	if feedURL == "" {
		s.respondError(w, http.StatusBadRequest, "no feed URL configured")
		return
	}

	payload := jobs.FeedImportPayload{FeedURL: feedURL}
	if _, err := s.jobQueue.EnqueueUnique(jobs.TaskImportFeed, payload, "import:feed"); err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to enqueue import job")
		return
	}

	s.respondJSON(w, http.StatusOK, Response{Success: true, Data: map[string]string{
		"status": "queued",
	}})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, Response{Success: true, Data: s.store.Stats()})
}

// handleClearEvents removes every stored event.
func (s *Server) handleClearEvents(w http.ResponseWriter, r *http.Request) {
	removed, err := s.store.Clear(r.Context())
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to clear events")
		return
	}
	s.respondJSON(w, http.StatusOK, Response{Success: true, Data: map[string]int{
		"removed": removed,
	}})
}

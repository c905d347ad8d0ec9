package api

import (
	"net/http"

	"github.com/google/uuid"
)

// handleGetSegments returns the display intervals for a catalog item.
// An item with no events yields an empty list, not an error — the common
// case for untouched titles.
func (s *Server) handleGetSegments(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(r.PathValue("itemId"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid item ID")
		return
	}

	intervals := s.segmentSvc.GetSegments(itemID)
	s.respondJSON(w, http.StatusOK, Response{Success: true, Data: intervals})
}

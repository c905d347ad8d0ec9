package segments

import (
	"log"

	"github.com/google/uuid"

	"github.com/scarevault/scarevault/internal/models"
	"github.com/scarevault/scarevault/internal/store"
)

// OffsetSource supplies the currently configured display offsets.
type OffsetSource interface {
	ScareOffsets() (startDeltaSeconds, endDeltaSeconds int, err error)
}

// Service answers per-item interval queries. It holds no state of its
// own: intervals are recomputed on every call, so offset changes apply
// retroactively to everything displayed.
type Service struct {
	store   *store.Store
	offsets OffsetSource
}

func NewService(st *store.Store, offsets OffsetSource) *Service {
	return &Service{store: st, offsets: offsets}
}

// GetSegments returns the display intervals for a catalog item, in the
// order the underlying events were stored. An item with no events gets
// an empty slice, never an error; an unavailable offset source is logged
// and answered with an empty slice so playback is never blocked.
func (s *Service) GetSegments(itemID uuid.UUID) []models.DisplayInterval {
	startDelta, endDelta, err := s.offsets.ScareOffsets()
	if err != nil {
		log.Printf("segments: offsets unavailable, returning no intervals: %v", err)
		return []models.DisplayInterval{}
	}

	events := s.store.ByItem(itemID)
	intervals := make([]models.DisplayInterval, 0, len(events))
	for _, ev := range events {
		intervals = append(intervals, Derive(ev, startDelta, endDelta))
	}
	return intervals
}

// Package segments derives bounded display intervals from point-in-time
// scare events and answers per-item interval queries.
package segments

import (
	"log"

	"github.com/scarevault/scarevault/internal/models"
	"github.com/scarevault/scarevault/internal/timecode"
)

// Default display offsets, in seconds relative to the event timestamp.
const (
	DefaultStartDeltaSeconds = -2
	DefaultEndDeltaSeconds   = 2
)

// Derive converts an event into a display interval by applying the
// configured offsets, then repairing the bounds:
//
//  1. An inverted or zero-length interval is replaced with a flat
//     1-second window starting at the event timestamp.
//  2. A negative start is clamped to 0, leaving the end untouched.
//
// Rule 1 runs strictly before rule 2: an event at timestamp 0 with the
// default offsets yields [0, +2s] (clamped), not the flat window.
// The result always satisfies 0 <= start < end.
func Derive(ev models.ScareEvent, startDeltaSeconds, endDeltaSeconds int) models.DisplayInterval {
	start := ev.TimestampTicks + int64(startDeltaSeconds)*timecode.TicksPerSecond
	end := ev.TimestampTicks + int64(endDeltaSeconds)*timecode.TicksPerSecond

	if start >= end {
		log.Printf("segments: degenerate interval for event %s (start=%d end=%d), using 1s window", ev.ID, start, end)
		start = ev.TimestampTicks
		end = ev.TimestampTicks + timecode.TicksPerSecond
	}

	if start < 0 {
		log.Printf("segments: clamping negative start %d for event %s", start, ev.ID)
		start = 0
	}

	return models.DisplayInterval{
		ID:         ev.ID,
		ItemID:     ev.ItemID,
		StartTicks: start,
		EndTicks:   end,
	}
}

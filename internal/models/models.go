package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ──────────────────── Enums ────────────────────

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

type ScareType string

const (
	ScareVisual   ScareType = "visual"
	ScareAudio    ScareType = "audio"
	ScareCombined ScareType = "combined"
	ScareOther    ScareType = "other"
)

// ParseScareType maps free text to a scare type, case-insensitively.
// Unrecognized text maps to ScareOther.
func ParseScareType(s string) ScareType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "visual":
		return ScareVisual
	case "audio":
		return ScareAudio
	case "combined":
		return ScareCombined
	default:
		return ScareOther
	}
}

type Intensity string

const (
	IntensityUnset Intensity = ""
	IntensityMinor Intensity = "minor"
	IntensityMajor Intensity = "major"
)

// ParseIntensity maps free text to an intensity, case-insensitively.
// Unrecognized text maps to IntensityMinor.
func ParseIntensity(s string) Intensity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "major":
		return IntensityMajor
	default:
		return IntensityMinor
	}
}

// ──────────────────── Scare Events ────────────────────

// ScareEvent is one committed jump-scare event bound to a catalog item.
// The pair (ItemID, TimestampTicks) uniquely identifies an event.
type ScareEvent struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	ItemID         uuid.UUID  `json:"item_id" db:"item_id"`
	TimestampTicks int64      `json:"timestamp_ticks" db:"timestamp_ticks"`
	Description    *string    `json:"description,omitempty" db:"description"`
	Type           ScareType  `json:"type" db:"type"`
	Intensity      Intensity  `json:"intensity,omitempty" db:"intensity"`
	ItemName       *string    `json:"item_name,omitempty" db:"item_name"`
	Source         string     `json:"source" db:"source"`
	CreatedAt      *time.Time `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// DisplayInterval is the derived time window shown on a playback timeline
// for one event. It is computed per query and never stored.
type DisplayInterval struct {
	ID         uuid.UUID `json:"id"`
	ItemID     uuid.UUID `json:"item_id"`
	StartTicks int64     `json:"start_ticks"`
	EndTicks   int64     `json:"end_ticks"`
}

// ScareStats summarizes the event collection. Events with no intensity
// set are counted in neither the major nor the minor bucket.
type ScareStats struct {
	TotalRecords  int `json:"total_records"`
	DistinctItems int `json:"distinct_items"`
	MajorCount    int `json:"major_count"`
	MinorCount    int `json:"minor_count"`
}

// ImportResult is the aggregate outcome of one CSV import. Row-level
// failures are never itemized; they only raise SkippedCount.
type ImportResult struct {
	Success       bool   `json:"success"`
	ImportedCount int    `json:"imported_count"`
	SkippedCount  int    `json:"skipped_count"`
	TotalRows     int    `json:"total_rows"`
	Message       string `json:"message"`
}

// ──────────────────── Users ────────────────────

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         UserRole  `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

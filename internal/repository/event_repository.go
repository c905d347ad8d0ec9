package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/scarevault/scarevault/internal/models"
)

// EventRepository persists the scare event collection. The in-memory
// store owns ordering and dedup; this only mirrors accepted events.
type EventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

// LoadAll returns every persisted event in insertion order.
func (r *EventRepository) LoadAll(ctx context.Context) ([]models.ScareEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, item_id, timestamp_ticks, description, type, intensity,
		       item_name, source, created_at, updated_at
		FROM scare_events
		ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.ScareEvent
	for rows.Next() {
		var (
			ev        models.ScareEvent
			intensity sql.NullString
		)
		if err := rows.Scan(&ev.ID, &ev.ItemID, &ev.TimestampTicks, &ev.Description,
			&ev.Type, &intensity, &ev.ItemName, &ev.Source, &ev.CreatedAt, &ev.UpdatedAt); err != nil {
			return nil, err
		}
		if intensity.Valid {
			ev.Intensity = models.Intensity(intensity.String)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// Insert appends a batch of events in a single transaction.
func (r *EventRepository) Insert(ctx context.Context, events []models.ScareEvent) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO scare_events (id, item_id, timestamp_ticks, description, type,
		                          intensity, item_name, source, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, ev := range events {
		var intensity sql.NullString
		if ev.Intensity != models.IntensityUnset {
			intensity = sql.NullString{String: string(ev.Intensity), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, ev.ID, ev.ItemID, ev.TimestampTicks, ev.Description,
			ev.Type, intensity, ev.ItemName, ev.Source, ev.CreatedAt, ev.UpdatedAt); err != nil {
			return fmt.Errorf("insert event %s: %w", ev.ID, err)
		}
	}

	return tx.Commit()
}

// DeleteAll removes every persisted event and reports the count.
func (r *EventRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM scare_events`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Package importer parses community-sourced scare timestamp CSVs into
// canonical scare events.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/scarevault/scarevault/internal/catalog"
	"github.com/scarevault/scarevault/internal/models"
	"github.com/scarevault/scarevault/internal/timecode"
)

// SourceCSVImport tags events created by a CSV import.
const SourceCSVImport = "csv_import"

// ErrInvalidInput marks input that cannot be imported at all: empty,
// whitespace-only, or missing data rows entirely.
var ErrInvalidInput = errors.New("import input is empty or too short")

// Stats is the aggregate outcome of one parse. TotalRows counts every
// data row seen, including the ones that were skipped.
type Stats struct {
	TotalRows int
	Skipped   int
}

// Parser turns raw CSV text into candidate scare events. Expected
// columns, in order: ItemName, IMDb, TMDb, Timestamp, Intensity,
// Description, Type.
type Parser struct {
	matcher *catalog.Matcher
}

func NewParser(m *catalog.Matcher) *Parser {
	return &Parser{matcher: m}
}

// Parse converts CSV text into scare events. Rows that cannot be
// matched or parsed are skipped and counted, never fatal; the whole
// operation fails only on empty/too-short input or when the catalog
// itself is unavailable.
func (p *Parser) Parse(ctx context.Context, text string) ([]models.ScareEvent, Stats, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || len(strings.Split(trimmed, "\n")) < 2 {
		return nil, Stats{}, ErrInvalidInput
	}

	r := csv.NewReader(strings.NewReader(trimmed))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	// header row
	if _, err := r.Read(); err != nil {
		return nil, Stats{}, ErrInvalidInput
	}

	var (
		events []models.ScareEvent
		stats  Stats
	)
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		stats.TotalRows++
		if err != nil {
			log.Printf("import: skipping malformed row %d: %v", stats.TotalRows, err)
			stats.Skipped++
			continue
		}

		ev, ok, err := p.parseRow(ctx, row)
		if err != nil {
			return nil, stats, err
		}
		if !ok {
			stats.Skipped++
			continue
		}
		events = append(events, ev)
	}

	return events, stats, nil
}

// parseRow builds one event from a data row. A false return means the
// row is skipped; an error means the catalog collaborator failed and the
// whole import must abort.
func (p *Parser) parseRow(ctx context.Context, row []string) (models.ScareEvent, bool, error) {
	if len(row) < 7 {
		log.Printf("import: skipping row with %d fields (want 7)", len(row))
		return models.ScareEvent{}, false, nil
	}

	title := strings.TrimSpace(row[0])
	imdbID := strings.TrimSpace(row[1])
	tmdbID := strings.TrimSpace(row[2])
	tsText := strings.TrimSpace(row[3])
	intensityText := row[4]
	desc := strings.TrimSpace(row[5])
	typeText := row[6]

	itemID, ok, err := p.matcher.FindByExternalID(ctx, imdbID, tmdbID)
	if err != nil {
		return models.ScareEvent{}, false, err
	}
	if !ok {
		itemID, ok, err = p.matcher.FindByName(ctx, title)
		if err != nil {
			return models.ScareEvent{}, false, err
		}
	}
	if !ok {
		log.Printf("import: no catalog match for %q, skipping", title)
		return models.ScareEvent{}, false, nil
	}

	ticks, err := timecode.ParseTimestamp(tsText)
	if err != nil {
		log.Printf("import: unparseable timestamp %q for %q, skipping", tsText, title)
		return models.ScareEvent{}, false, nil
	}

	now := time.Now().UTC()
	ev := models.ScareEvent{
		ID:             uuid.New(),
		ItemID:         itemID,
		TimestampTicks: ticks,
		Type:           models.ParseScareType(typeText),
		Intensity:      models.ParseIntensity(intensityText),
		Source:         SourceCSVImport,
		CreatedAt:      &now,
	}
	if desc != "" {
		ev.Description = &desc
	}
	if title != "" {
		ev.ItemName = &title
	}
	return ev, true, nil
}

// Package catalog resolves free-text titles and external identifiers to
// entries in the host media server's library.
package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Item is one video entry (movie or episode) in the host catalog.
type Item struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	ProductionYear *int      `json:"production_year,omitempty"`
	IMDbID         *string   `json:"imdb_id,omitempty"`
	TMDbID         *string   `json:"tmdb_id,omitempty"`
}

// Catalog is a read-only view over the host's library. VideoItems must
// enumerate all movies and episodes in a stable order.
type Catalog interface {
	VideoItems(ctx context.Context) ([]Item, error)
}

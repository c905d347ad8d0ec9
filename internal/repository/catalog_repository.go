package repository

import (
	"context"
	"database/sql"

	"github.com/scarevault/scarevault/internal/catalog"
)

// CatalogRepository is a read-only view over the host media server's
// library tables. ScareVault never writes to them.
type CatalogRepository struct {
	db *sql.DB
}

func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// VideoItems enumerates all movies and episodes with their external
// provider identifiers, ordered by title for stable matching.
func (r *CatalogRepository) VideoItems(ctx context.Context) ([]catalog.Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, release_year, imdb_id, tmdb_id
		FROM media_items
		WHERE media_type IN ('movie', 'episode')
		ORDER BY title, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []catalog.Item
	for rows.Next() {
		var it catalog.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.ProductionYear, &it.IMDbID, &it.TMDbID); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

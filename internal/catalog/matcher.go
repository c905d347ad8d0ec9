package catalog

import (
	"context"
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var titleYearRx = regexp.MustCompile(`^(.+?)\s*\((\d{4})\)\s*$`)

// Matcher resolves import rows to catalog items. Lookups are pure reads;
// when several items qualify equally, the first in catalog enumeration
// order wins.
type Matcher struct {
	catalog Catalog
}

func NewMatcher(c Catalog) *Matcher {
	return &Matcher{catalog: c}
}

// FindByExternalID matches by provider identifier. IMDb is checked first
// as the more reliable namespace, then TMDb.
func (m *Matcher) FindByExternalID(ctx context.Context, imdbID, tmdbID string) (uuid.UUID, bool, error) {
	imdbID = strings.TrimSpace(imdbID)
	tmdbID = strings.TrimSpace(tmdbID)
	if imdbID == "" && tmdbID == "" {
		return uuid.Nil, false, nil
	}

	items, err := m.catalog.VideoItems(ctx)
	if err != nil {
		return uuid.Nil, false, err
	}

	if imdbID != "" {
		for _, it := range items {
			if it.IMDbID != nil && *it.IMDbID == imdbID {
				return it.ID, true, nil
			}
		}
	}
	if tmdbID != "" {
		for _, it := range items {
			if it.TMDbID != nil && *it.TMDbID == tmdbID {
				return it.ID, true, nil
			}
		}
	}
	return uuid.Nil, false, nil
}

// FindByName matches a free-text title against the catalog. Priority
// order, first hit wins:
//  1. case-insensitive exact name match
//  2. case-insensitive substring match (catalog name contains the input)
//  3. "<title> (<year>)" input: name equals title AND production year equals year
//  4. same as 3 but ignoring the year (tolerates inconsistent year metadata)
func (m *Matcher) FindByName(ctx context.Context, name string) (uuid.UUID, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return uuid.Nil, false, nil
	}

	items, err := m.catalog.VideoItems(ctx)
	if err != nil {
		return uuid.Nil, false, err
	}

	lower := strings.ToLower(name)

	for _, it := range items {
		if strings.ToLower(it.Name) == lower {
			return it.ID, true, nil
		}
	}

	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Name), lower) {
			return it.ID, true, nil
		}
	}

	if sm := titleYearRx.FindStringSubmatch(name); sm != nil {
		title := strings.ToLower(strings.TrimSpace(sm[1]))
		year, _ := strconv.Atoi(sm[2])

		for _, it := range items {
			if strings.ToLower(it.Name) == title && it.ProductionYear != nil && *it.ProductionYear == year {
				return it.ID, true, nil
			}
		}

		// Relaxed fallback: accept a title-only match even when the year
		// disagrees. Logged because this is a lower-confidence match.
		for _, it := range items {
			if strings.ToLower(it.Name) == title {
				log.Printf("catalog: matched %q to item %s by title only, ignoring year %d", name, it.ID, year)
				return it.ID, true, nil
			}
		}
	}

	return uuid.Nil, false, nil
}

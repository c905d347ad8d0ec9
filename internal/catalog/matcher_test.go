package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	items []Item
	err   error
}

func (f *fakeCatalog) VideoItems(ctx context.Context) ([]Item, error) {
	return f.items, f.err
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func testItems() ([]Item, map[string]uuid.UUID) {
	ids := map[string]uuid.UUID{
		"weapons":  uuid.New(),
		"sequel":   uuid.New(),
		"remake":   uuid.New(),
		"original": uuid.New(),
	}
	items := []Item{
		{ID: ids["weapons"], Name: "Weapons", ProductionYear: intPtr(2025), IMDbID: strPtr("tt26581740"), TMDbID: strPtr("1078605")},
		{ID: ids["sequel"], Name: "Weapons II: The Reckoning", ProductionYear: intPtr(2027)},
		{ID: ids["remake"], Name: "The Thing", ProductionYear: intPtr(2011), IMDbID: strPtr("tt0905372")},
		{ID: ids["original"], Name: "The Thing", ProductionYear: intPtr(1982), IMDbID: strPtr("tt0084787")},
	}
	return items, ids
}

func TestFindByExternalID(t *testing.T) {
	items, ids := testItems()
	m := NewMatcher(&fakeCatalog{items: items})
	ctx := context.Background()

	t.Run("imdb hit", func(t *testing.T) {
		id, ok, err := m.FindByExternalID(ctx, "tt26581740", "")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, ids["weapons"], id)
	})

	t.Run("imdb preferred over tmdb", func(t *testing.T) {
		// IMDb id points at the 1982 film, TMDb id at Weapons; IMDb wins.
		id, ok, err := m.FindByExternalID(ctx, "tt0084787", "1078605")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, ids["original"], id)
	})

	t.Run("tmdb fallback", func(t *testing.T) {
		id, ok, err := m.FindByExternalID(ctx, "tt9999999", "1078605")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, ids["weapons"], id)
	})

	t.Run("no ids supplied", func(t *testing.T) {
		_, ok, err := m.FindByExternalID(ctx, "", "")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unknown ids", func(t *testing.T) {
		_, ok, err := m.FindByExternalID(ctx, "tt0000001", "42")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestFindByName(t *testing.T) {
	items, ids := testItems()
	m := NewMatcher(&fakeCatalog{items: items})
	ctx := context.Background()

	t.Run("exact match case-insensitive", func(t *testing.T) {
		id, ok, err := m.FindByName(ctx, "weapons")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, ids["weapons"], id)
	})

	t.Run("exact beats substring", func(t *testing.T) {
		// "Weapons" matches the sequel as a substring too, but the exact
		// name wins regardless of enumeration order.
		id, ok, err := m.FindByName(ctx, "Weapons")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, ids["weapons"], id)
	})

	t.Run("substring match", func(t *testing.T) {
		id, ok, err := m.FindByName(ctx, "reckoning")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, ids["sequel"], id)
	})

	t.Run("title and year", func(t *testing.T) {
		id, ok, err := m.FindByName(ctx, "The Thing (1982)")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, ids["original"], id)
	})

	t.Run("year mismatch falls back to title only", func(t *testing.T) {
		id, ok, err := m.FindByName(ctx, "The Thing (1999)")
		require.NoError(t, err)
		require.True(t, ok)
		// First title match in enumeration order wins.
		assert.Equal(t, ids["remake"], id)
	})

	t.Run("no match", func(t *testing.T) {
		_, ok, err := m.FindByName(ctx, "Hereditary (2018)")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("blank input", func(t *testing.T) {
		_, ok, err := m.FindByName(ctx, "   ")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestFindByName_FirstMatchWinsByEnumerationOrder(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	m := NewMatcher(&fakeCatalog{items: []Item{
		{ID: a, Name: "Halloween", ProductionYear: intPtr(1978)},
		{ID: b, Name: "Halloween", ProductionYear: intPtr(2018)},
	}})

	id, ok, err := m.FindByName(context.Background(), "Halloween")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, a, id)
}

func TestMatcher_CatalogError(t *testing.T) {
	m := NewMatcher(&fakeCatalog{err: assert.AnError})

	_, _, err := m.FindByName(context.Background(), "Weapons")
	assert.Error(t, err)

	_, _, err = m.FindByExternalID(context.Background(), "tt26581740", "")
	assert.Error(t, err)
}

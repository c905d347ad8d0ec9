package importer

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scarevault/scarevault/internal/catalog"
	"github.com/scarevault/scarevault/internal/models"
	"github.com/scarevault/scarevault/internal/timecode"
)

const header = "ItemName,IMDb,TMDb,Timestamp,Intensity,Description,Type\n"

type fakeCatalog struct {
	items []catalog.Item
	err   error
}

func (f *fakeCatalog) VideoItems(ctx context.Context) ([]catalog.Item, error) {
	return f.items, f.err
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func newTestParser(items []catalog.Item) *Parser {
	return NewParser(catalog.NewMatcher(&fakeCatalog{items: items}))
}

func weaponsCatalog() ([]catalog.Item, uuid.UUID) {
	id := uuid.New()
	return []catalog.Item{
		{ID: id, Name: "Weapons", ProductionYear: intPtr(2025), IMDbID: strPtr("tt26581740"), TMDbID: strPtr("1078605")},
	}, id
}

func TestParse_MatchesByExternalID(t *testing.T) {
	items, itemID := weaponsCatalog()
	// A deliberately wrong title proves the external id path was taken.
	p := newTestParser(items)

	events, stats, err := p.Parse(context.Background(),
		header+`Totally Wrong Title,tt26581740,1078605,00:11:51,Minor,Ghost appears,Visual`)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 1, stats.TotalRows)
	assert.Equal(t, 0, stats.Skipped)

	ev := events[0]
	assert.Equal(t, itemID, ev.ItemID)
	assert.Equal(t, 711*timecode.TicksPerSecond, ev.TimestampTicks)
	assert.Equal(t, models.IntensityMinor, ev.Intensity)
	assert.Equal(t, models.ScareVisual, ev.Type)
	assert.Equal(t, SourceCSVImport, ev.Source)
	require.NotNil(t, ev.Description)
	assert.Equal(t, "Ghost appears", *ev.Description)
	assert.NotEqual(t, uuid.Nil, ev.ID)
	require.NotNil(t, ev.CreatedAt)
}

func TestParse_FallsBackToNameMatch(t *testing.T) {
	items, itemID := weaponsCatalog()
	p := newTestParser(items)

	events, _, err := p.Parse(context.Background(),
		header+`Weapons (2025),,,11:51,Major,,Audio`)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, itemID, events[0].ItemID)
	assert.Equal(t, models.IntensityMajor, events[0].Intensity)
	assert.Equal(t, models.ScareAudio, events[0].Type)
	assert.Nil(t, events[0].Description)
}

func TestParse_RowLevelSkips(t *testing.T) {
	items, _ := weaponsCatalog()
	p := newTestParser(items)

	csvText := header +
		"Weapons,tt26581740,,00:11:51,Minor,ok,Visual\n" + // good
		"Unknown Movie,,,00:01:00,Minor,no match,Visual\n" + // no catalog match
		"Weapons,tt26581740,,not-a-time,Minor,bad ts,Visual\n" + // bad timestamp
		"Weapons,tt26581740,00:02:00\n" // too few fields

	events, stats, err := p.Parse(context.Background(), csvText)
	require.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, 4, stats.TotalRows)
	assert.Equal(t, 3, stats.Skipped)
}

func TestParse_LenientEnumDefaults(t *testing.T) {
	items, _ := weaponsCatalog()
	p := newTestParser(items)

	events, stats, err := p.Parse(context.Background(),
		header+`Weapons,tt26581740,,00:11:51,EXTREME,,Poltergeist`)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 0, stats.Skipped)
	assert.Equal(t, models.IntensityMinor, events[0].Intensity)
	assert.Equal(t, models.ScareOther, events[0].Type)
}

func TestParse_CaseInsensitiveEnums(t *testing.T) {
	items, _ := weaponsCatalog()
	p := newTestParser(items)

	events, _, err := p.Parse(context.Background(),
		header+`Weapons,tt26581740,,00:11:51,mAjOr,,COMBINED`)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, models.IntensityMajor, events[0].Intensity)
	assert.Equal(t, models.ScareCombined, events[0].Type)
}

func TestParse_QuotedDescriptionWithComma(t *testing.T) {
	items, _ := weaponsCatalog()
	p := newTestParser(items)

	events, _, err := p.Parse(context.Background(),
		header+`Weapons,tt26581740,,00:11:51,Minor,"Loud bang, then silence",Audio`)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.NotNil(t, events[0].Description)
	assert.Equal(t, "Loud bang, then silence", *events[0].Description)
}

func TestParse_InvalidInput(t *testing.T) {
	items, _ := weaponsCatalog()
	p := newTestParser(items)

	for _, input := range []string{"", "   \n  ", "ItemName,IMDb,TMDb,Timestamp,Intensity,Description,Type"} {
		_, _, err := p.Parse(context.Background(), input)
		assert.ErrorIs(t, err, ErrInvalidInput, "input %q", input)
	}
}

func TestParse_CatalogUnavailableIsFatal(t *testing.T) {
	p := NewParser(catalog.NewMatcher(&fakeCatalog{err: assert.AnError}))

	_, _, err := p.Parse(context.Background(),
		header+`Weapons,tt26581740,,00:11:51,Minor,,Visual`)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidInput)
}

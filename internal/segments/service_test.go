package segments

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scarevault/scarevault/internal/models"
	"github.com/scarevault/scarevault/internal/store"
	"github.com/scarevault/scarevault/internal/timecode"
)

type fixedOffsets struct {
	start, end int
	err        error
}

func (f fixedOffsets) ScareOffsets() (int, int, error) { return f.start, f.end, f.err }

func TestGetSegments(t *testing.T) {
	st := store.New(nil)
	item := uuid.New()
	sec := timecode.TicksPerSecond

	_, err := st.AddMerge(context.Background(), []models.ScareEvent{
		{ID: uuid.New(), ItemID: item, TimestampTicks: 711 * sec},
		{ID: uuid.New(), ItemID: item, TimestampTicks: 100 * sec},
		{ID: uuid.New(), ItemID: uuid.New(), TimestampTicks: 50 * sec},
	})
	require.NoError(t, err)

	svc := NewService(st, fixedOffsets{start: -2, end: 2})
	got := svc.GetSegments(item)
	require.Len(t, got, 2)

	// stored order preserved, no re-sorting
	assert.Equal(t, 709*sec, got[0].StartTicks)
	assert.Equal(t, 713*sec, got[0].EndTicks)
	assert.Equal(t, 98*sec, got[1].StartTicks)
	assert.Equal(t, 102*sec, got[1].EndTicks)
	assert.Equal(t, item, got[0].ItemID)
}

func TestGetSegments_UnknownItemIsEmptyNotError(t *testing.T) {
	svc := NewService(store.New(nil), fixedOffsets{start: -2, end: 2})

	got := svc.GetSegments(uuid.New())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGetSegments_OffsetsUnavailableYieldsEmpty(t *testing.T) {
	st := store.New(nil)
	item := uuid.New()
	_, err := st.AddMerge(context.Background(), []models.ScareEvent{
		{ID: uuid.New(), ItemID: item, TimestampTicks: 100 * timecode.TicksPerSecond},
	})
	require.NoError(t, err)

	svc := NewService(st, fixedOffsets{err: assert.AnError})
	assert.Empty(t, svc.GetSegments(item))
}

func TestGetSegments_OffsetChangesApplyRetroactively(t *testing.T) {
	st := store.New(nil)
	item := uuid.New()
	sec := timecode.TicksPerSecond
	_, err := st.AddMerge(context.Background(), []models.ScareEvent{
		{ID: uuid.New(), ItemID: item, TimestampTicks: 100 * sec},
	})
	require.NoError(t, err)

	offsets := &fixedOffsets{start: -2, end: 2}
	svc := NewService(st, offsets)
	assert.Equal(t, 98*sec, svc.GetSegments(item)[0].StartTicks)

	offsets.start = -5
	offsets.end = 5
	assert.Equal(t, 95*sec, svc.GetSegments(item)[0].StartTicks)
	assert.Equal(t, 105*sec, svc.GetSegments(item)[0].EndTicks)
}

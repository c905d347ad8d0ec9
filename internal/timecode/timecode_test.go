package timecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
		ok    bool
	}{
		{"H:MM:SS", "1:02:03", (3600 + 120 + 3) * TicksPerSecond, true},
		{"H:MM:SS zero hour", "0:23:45", 1425 * TicksPerSecond, true},
		{"H:MM:SS multi-digit hours", "12:00:00", 43200 * TicksPerSecond, true},
		{"MM:SS", "23:45", 1425 * TicksPerSecond, true},
		{"MM:SS leading zero", "00:11:51", 711 * TicksPerSecond, true},
		{"duration fallback", "23m45s", 1425 * TicksPerSecond, true},
		{"duration with fraction", "1.5s", 15_000_000, true},
		{"whitespace trimmed", " 23:45 ", 1425 * TicksPerSecond, true},
		{"single-digit minutes rejected by strict, no unit", "3:45", 0, false},
		{"negative duration rejected", "-5s", 0, false},
		{"bare number", "711", 0, false},
		{"garbage", "not a time", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input)
			if !tt.ok {
				require.ErrorIs(t, err, ErrInvalidTimestamp)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTimestamp_ShapesAgree(t *testing.T) {
	// "0:23:45" (H:MM:SS) and "23:45" (MM:SS) name the same instant.
	a, err := ParseTimestamp("0:23:45")
	require.NoError(t, err)
	b, err := ParseTimestamp("23:45")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, 1425*TicksPerSecond, a)
}

func TestSecondsToTicks_TruncatesTowardZero(t *testing.T) {
	assert.Equal(t, int64(7_110_000_000), SecondsToTicks(711))
	assert.Equal(t, int64(14_999_999), SecondsToTicks(1.49999999))
	assert.Equal(t, int64(0), SecondsToTicks(0))
}

func TestRoundTripStability(t *testing.T) {
	for _, s := range []float64{0, 1, 2, 59, 711, 1425, 86400, 1 << 20} {
		once := SecondsToTicks(s)
		again := SecondsToTicks(TicksToSeconds(once))
		assert.Equal(t, once, again, "seconds=%v", s)
	}
}

// Package timecode converts between the fixed-point tick unit used for
// scare event timestamps and human time representations. One tick is
// 100ns (10,000,000 ticks per second), matching the host's native
// playback position unit so interval math stays exact.
package timecode

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const TicksPerSecond int64 = 10_000_000

var ErrInvalidTimestamp = errors.New("invalid timestamp")

var (
	// hours may be any digit count, minutes/seconds exactly two
	hmmssRx = regexp.MustCompile(`^(\d+):(\d{2}):(\d{2})$`)
	mmssRx  = regexp.MustCompile(`^(\d{2}):(\d{2})$`)
)

// SecondsToTicks converts seconds to ticks, truncating toward zero.
func SecondsToTicks(seconds float64) int64 {
	return int64(seconds * float64(TicksPerSecond))
}

// TicksToSeconds converts ticks to seconds.
func TicksToSeconds(ticks int64) float64 {
	return float64(ticks) / float64(TicksPerSecond)
}

// ParseTimestamp parses a timestamp string into ticks. It tries, in
// order: strict H:MM:SS, strict MM:SS, then a lenient Go duration parse
// ("23m45s"). Returns ErrInvalidTimestamp when all three fail or the
// value would be negative.
func ParseTimestamp(text string) (int64, error) {
	text = strings.TrimSpace(text)

	if m := hmmssRx.FindStringSubmatch(text); m != nil {
		h, _ := strconv.ParseInt(m[1], 10, 64)
		min, _ := strconv.ParseInt(m[2], 10, 64)
		sec, _ := strconv.ParseInt(m[3], 10, 64)
		return (h*3600 + min*60 + sec) * TicksPerSecond, nil
	}

	if m := mmssRx.FindStringSubmatch(text); m != nil {
		min, _ := strconv.ParseInt(m[1], 10, 64)
		sec, _ := strconv.ParseInt(m[2], 10, 64)
		return (min*60 + sec) * TicksPerSecond, nil
	}

	if d, err := time.ParseDuration(text); err == nil && d >= 0 {
		return d.Nanoseconds() / 100, nil
	}

	return 0, ErrInvalidTimestamp
}

package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeSettings struct {
	url   string
	every time.Duration
	last  time.Time
	err   error
}

func (f *fakeSettings) FeedSettings() (string, time.Duration, time.Time, error) {
	return f.url, f.every, f.last, f.err
}

func TestCheck_FiresWhenIntervalElapsed(t *testing.T) {
	settings := &fakeSettings{
		url:   "https://example.com/feed.csv",
		every: 24 * time.Hour,
		last:  time.Now().Add(-25 * time.Hour),
	}

	var fired []string
	s := New(settings, func(url string) { fired = append(fired, url) })

	s.check()

	assert.Equal(t, []string{"https://example.com/feed.csv"}, fired)
}

func TestCheck_FiresWhenNeverRefreshed(t *testing.T) {
	settings := &fakeSettings{
		url:   "https://example.com/feed.csv",
		every: 24 * time.Hour,
	}

	fired := 0
	s := New(settings, func(string) { fired++ })

	s.check()

	assert.Equal(t, 1, fired)
}

func TestCheck_SkipsWhenNotDue(t *testing.T) {
	settings := &fakeSettings{
		url:   "https://example.com/feed.csv",
		every: 24 * time.Hour,
		last:  time.Now().Add(-1 * time.Hour),
	}

	s := New(settings, func(string) { t.Fatal("callback should not fire") })
	s.check()
}

func TestCheck_SkipsWhenNoURLConfigured(t *testing.T) {
	settings := &fakeSettings{every: 24 * time.Hour}

	s := New(settings, func(string) { t.Fatal("callback should not fire") })
	s.check()
}

func TestCheck_SkipsOnSettingsError(t *testing.T) {
	settings := &fakeSettings{err: errors.New("db down")}

	s := New(settings, func(string) { t.Fatal("callback should not fire") })
	s.check()
}

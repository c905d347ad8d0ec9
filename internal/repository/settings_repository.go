package repository

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/scarevault/scarevault/internal/segments"
)

// Setting keys.
const (
	KeyStartDeltaSeconds = "scare_start_delta_seconds"
	KeyEndDeltaSeconds   = "scare_end_delta_seconds"
	KeyFeedURL           = "feed_url"
	KeyFeedRefreshHours  = "feed_refresh_hours"
	KeyFeedLastRefresh   = "feed_last_refresh"
)

type SettingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get retrieves a setting value by key. Returns empty string if not set.
func (r *SettingsRepository) Get(key string) (string, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM system_settings WHERE key = $1`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// Set upserts a setting key-value pair.
func (r *SettingsRepository) Set(key, value string) error {
	query := `INSERT INTO system_settings (key, value, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = CURRENT_TIMESTAMP`
	_, err := r.db.Exec(query, key, value)
	return err
}

func (r *SettingsRepository) getInt(key string, fallback int) (int, error) {
	v, err := r.Get(key)
	if err != nil {
		return 0, err
	}
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback, nil
	}
	return n, nil
}

// ScareOffsets returns the configured display deltas, falling back to
// the defaults (-2, +2) when unset.
func (r *SettingsRepository) ScareOffsets() (int, int, error) {
	start, err := r.getInt(KeyStartDeltaSeconds, segments.DefaultStartDeltaSeconds)
	if err != nil {
		return 0, 0, err
	}
	end, err := r.getInt(KeyEndDeltaSeconds, segments.DefaultEndDeltaSeconds)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// SetScareOffsets persists new display deltas.
func (r *SettingsRepository) SetScareOffsets(start, end int) error {
	if err := r.Set(KeyStartDeltaSeconds, strconv.Itoa(start)); err != nil {
		return err
	}
	return r.Set(KeyEndDeltaSeconds, strconv.Itoa(end))
}

// FeedSettings returns the community feed URL, the refresh interval and
// the time of the last completed refresh. An empty URL disables the
// scheduled refresh.
func (r *SettingsRepository) FeedSettings() (url string, every time.Duration, last time.Time, err error) {
	url, err = r.Get(KeyFeedURL)
	if err != nil {
		return "", 0, time.Time{}, err
	}
	hours, err := r.getInt(KeyFeedRefreshHours, 24)
	if err != nil {
		return "", 0, time.Time{}, err
	}
	raw, err := r.Get(KeyFeedLastRefresh)
	if err != nil {
		return "", 0, time.Time{}, err
	}
	if raw != "" {
		if t, parseErr := time.Parse(time.RFC3339, raw); parseErr == nil {
			last = t
		}
	}
	return url, time.Duration(hours) * time.Hour, last, nil
}

// MarkFeedRefreshed records when the feed was last imported.
func (r *SettingsRepository) MarkFeedRefreshed(t time.Time) error {
	return r.Set(KeyFeedLastRefresh, t.UTC().Format(time.RFC3339))
}

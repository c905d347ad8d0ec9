package config

import (
	"database/sql"
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port             int
	DatabaseURL      string
	RedisAddr        string
	FeedURL          string
	FeedRefreshHours int
}

func Load() *Config {
	return &Config{
		Port:             envInt("PORT", 8080),
		DatabaseURL:      env("DATABASE_URL", "postgres://scarevault:scarevault@db:5432/scarevault?sslmode=disable"),
		RedisAddr:        env("REDIS_ADDR", "redis:6379"),
		FeedURL:          env("FEED_URL", ""),
		FeedRefreshHours: envInt("FEED_REFRESH_HOURS", 24),
	}
}

// MergeFromDB overlays settings persisted by the admin UI on top of the
// environment defaults.
func (c *Config) MergeFromDB(db *sql.DB) {
	rows, err := db.Query("SELECT key, value FROM system_settings")
	if err != nil {
		log.Printf("config: skipping DB merge: %v", err)
		return
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			continue
		}
		switch key {
		case "feed_url":
			c.FeedURL = value
		case "feed_refresh_hours":
			if v, err := strconv.Atoi(value); err == nil {
				c.FeedRefreshHours = v
			}
		}
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

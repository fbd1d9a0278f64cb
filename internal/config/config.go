// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing, the process exits with an error.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the analytics service.
type Config struct {
	Port                 string
	DatabaseURL          string
	RedisURL             string
	SummaryCacheTTL      time.Duration // how long a cached bulk summary stays valid
	RefreshIntervalHours int           // how often the view-refresh cron fires
}

// Load reads environment variables and returns a validated Config.
// A .env file in the working directory is applied first when present.
func Load() (*Config, error) {
	// Local development convenience only; missing file is not an error.
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	port := os.Getenv("ANALYTICS_PORT")
	if port == "" {
		port = "8083"
	}

	cacheTTL := 5 * time.Minute
	if s := os.Getenv("SUMMARY_CACHE_TTL_SECONDS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("SUMMARY_CACHE_TTL_SECONDS must be a positive integer, got %q", s)
		}
		cacheTTL = time.Duration(v) * time.Second
	}

	interval := 24
	if s := os.Getenv("VIEW_REFRESH_INTERVAL_HOURS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("VIEW_REFRESH_INTERVAL_HOURS must be a positive integer, got %q", s)
		}
		interval = v
	}

	return &Config{
		Port:                 port,
		DatabaseURL:          dbURL,
		RedisURL:             redisURL,
		SummaryCacheTTL:      cacheTTL,
		RefreshIntervalHours: interval,
	}, nil
}

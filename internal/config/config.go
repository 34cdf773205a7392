// Package config loads and validates environment variables at startup.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gorm.io/gorm/logger"

	"github.com/jobradar/jobradar/internal/db"
)

// Defaults used when the corresponding environment variable is unset
const (
	DefaultPort            = "8080"
	DefaultRedisURL        = "redis://localhost:6379/0"
	DefaultCronExpression  = "0 */6 * * *" // every 6 hours
	DefaultScrapeWorkers   = 5
	DefaultScrapeTimeoutMs = 30000
)

// Config holds all runtime configuration for the aggregation service.
type Config struct {
	Port           string
	DB             db.Options
	RedisURL       string
	CronExpression string // fallback when no CronConfig row exists yet
	ScrapeWorkers  int    // bounded concurrency for pair fan-out
	ScrapeTimeout  int    // per-pair adapter timeout, milliseconds
}

// GetEnv retrieves the value of an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	cfg := &Config{
		Port: GetEnv("PORT", DefaultPort),
		DB: db.Options{
			Host:     GetEnv("DB_HOST", db.DefaultHost),
			User:     GetEnv("DB_USER", db.DefaultUser),
			Password: GetEnv("DB_PASSWORD", db.DefaultPassword),
			DBName:   GetEnv("DB_NAME", db.DefaultDBName),
			LogLevel: logger.Warn,
		},
		RedisURL:       GetEnv("REDIS_URL", DefaultRedisURL),
		CronExpression: GetEnv("SCRAPE_CRON", DefaultCronExpression),
		ScrapeWorkers:  DefaultScrapeWorkers,
		ScrapeTimeout:  DefaultScrapeTimeoutMs,
	}

	if s := os.Getenv("DB_PORT"); s != "" {
		port, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("DB_PORT must be an integer, got %q", s)
		}
		cfg.DB.Port = port
	}

	if s := os.Getenv("SCRAPE_WORKERS"); s != "" {
		workers, err := strconv.Atoi(s)
		if err != nil || workers < 1 {
			return nil, fmt.Errorf("SCRAPE_WORKERS must be a positive integer, got %q", s)
		}
		cfg.ScrapeWorkers = workers
	}

	if s := os.Getenv("SCRAPE_TIMEOUT_MS"); s != "" {
		timeout, err := strconv.Atoi(s)
		if err != nil || timeout < 1 {
			return nil, fmt.Errorf("SCRAPE_TIMEOUT_MS must be a positive integer, got %q", s)
		}
		cfg.ScrapeTimeout = timeout
	}

	return cfg, nil
}

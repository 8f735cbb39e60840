// Package config reads service configuration from the environment.
// cmd/ binaries call godotenv.Load first so a local .env file is honored.
package config

import (
	"errors"
	"fmt"
	"os"
	"sea-route-service/internal/domain"
	"strconv"
	"strings"
	"time"
)

const (
	PathfinderModeHTTP     = "http"
	PathfinderModeStraight = "straight"
)

type Config struct {
	Port string

	DefaultUnits     domain.Units
	HeadingTolerance float64
	MaxDeviationKm   float64
	WaypointSpacing  int

	PathfinderMode    string
	PathfinderURL     string
	PathfinderTimeout time.Duration

	// Optional cache tiers; empty disables the tier.
	DatabaseURL    string
	DBDriver       string
	RedisURL       string
	RouteCacheSize int
	RouteCacheTTL  time.Duration

	LogFile string
}

// Load reads configuration from environment variables with defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           Get("PORT", "8080"),
		DefaultUnits:   domain.Units(strings.ToLower(Get("DEFAULT_UNITS", string(domain.UnitsNauticalMiles)))),
		PathfinderMode: strings.ToLower(Get("PATHFINDER_MODE", PathfinderModeHTTP)),
		PathfinderURL:  strings.TrimRight(Get("PATHFINDER_URL", ""), "/"),
		DatabaseURL:    Get("DATABASE_URL", ""),
		DBDriver:       Get("DB_DRIVER", "pgx"),
		RedisURL:       Get("REDIS_URL", ""),
		LogFile:        Get("LOG_FILE", ""),
	}

	var err error
	if cfg.HeadingTolerance, err = getFloat("HEADING_TOLERANCE", 45); err != nil {
		return nil, err
	}
	if cfg.MaxDeviationKm, err = getFloat("MAX_DEVIATION_KM", 200); err != nil {
		return nil, err
	}
	if cfg.WaypointSpacing, err = getInt("WAYPOINT_SPACING", 3); err != nil {
		return nil, err
	}
	if cfg.RouteCacheSize, err = getInt("ROUTE_CACHE_SIZE", 1024); err != nil {
		return nil, err
	}
	if cfg.PathfinderTimeout, err = getDuration("PATHFINDER_TIMEOUT", 20*time.Second); err != nil {
		return nil, err
	}
	if cfg.RouteCacheTTL, err = getDuration("ROUTE_CACHE_TTL", 6*time.Hour); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks combinations Load cannot check field by field.
func (c *Config) Validate() error {
	if _, err := domain.ParseUnits(string(c.DefaultUnits), ""); err != nil {
		return fmt.Errorf("config: DEFAULT_UNITS: %w", err)
	}
	if c.HeadingTolerance < 0 || c.HeadingTolerance > 180 {
		return fmt.Errorf("config: HEADING_TOLERANCE must be within [0, 180], got %g", c.HeadingTolerance)
	}
	if c.MaxDeviationKm <= 0 {
		return fmt.Errorf("config: MAX_DEVIATION_KM must be positive, got %g", c.MaxDeviationKm)
	}
	if c.WaypointSpacing < 1 {
		return fmt.Errorf("config: WAYPOINT_SPACING must be >= 1, got %d", c.WaypointSpacing)
	}

	switch c.PathfinderMode {
	case PathfinderModeHTTP:
		if c.PathfinderURL == "" {
			return errors.New("config: PATHFINDER_URL is required when PATHFINDER_MODE=http")
		}
	case PathfinderModeStraight:
	default:
		return fmt.Errorf("config: PATHFINDER_MODE must be %q or %q, got %q", PathfinderModeHTTP, PathfinderModeStraight, c.PathfinderMode)
	}

	switch c.DBDriver {
	case "pgx", "mysql":
	default:
		return fmt.Errorf("config: DB_DRIVER must be pgx or mysql, got %q", c.DBDriver)
	}

	return nil
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getFloat(key string, fallback float64) (float64, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return f, nil
}

func getInt(key string, fallback int) (int, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

// Durations accept Go syntax ("30s") or a bare number of seconds.
func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}

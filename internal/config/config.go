package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Catalog store. Empty DatabaseURL selects the in-memory store.
	DatabaseURL string

	// Statistics API (data.gov.in resource endpoint).
	StatsAPIURL      string
	StatsAPIKey      string
	StatsAPITimeout  time.Duration
	StatsSyncHour    int           // daily sync hour, local time
	StatsBackupEvery time.Duration // backup sync interval
	SyncOnStart      bool

	// Upstream reverse geocoder.
	GeocoderEnabled   bool
	GeocoderBaseURL   string
	GeocoderTimeout   time.Duration
	GeocoderUserAgent string

	// Coordinate resolution cache.
	LocationCacheTTL time.Duration

	// API rate limiting.
	RateLimitRPS   float64
	RateLimitBurst int

	// Sync-event publishing. Empty KafkaBrokers disables publishing.
	KafkaBrokers   []string
	KafkaSyncTopic string
}

// Load reads configuration from the environment, applying defaults where
// unset. A .env file in the working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	geocoderTimeout, err := parseDuration("GEOCODER_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}
	cacheTTL, err := parseDuration("LOCATION_CACHE_TTL", "5m")
	if err != nil {
		return nil, err
	}
	backupEvery, err := parseDuration("STATS_BACKUP_INTERVAL", "6h")
	if err != nil {
		return nil, err
	}
	statsTimeout, err := parseDuration("STATS_API_TIMEOUT", "60s")
	if err != nil {
		return nil, err
	}

	syncHour, err := parseInt("STATS_SYNC_HOUR", 6)
	if err != nil {
		return nil, err
	}
	if syncHour < 0 || syncHour > 23 {
		return nil, errors.New("STATS_SYNC_HOUR must be between 0 and 23")
	}

	burst, err := parseInt("RATE_LIMIT_BURST", 20)
	if err != nil {
		return nil, err
	}
	rps, err := parseFloat("RATE_LIMIT_RPS", 10)
	if err != nil {
		return nil, err
	}

	geocoderEnabled := true
	if v := os.Getenv("GEOCODER_ENABLED"); v != "" {
		geocoderEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		DatabaseURL: os.Getenv("DATABASE_URL"),

		StatsAPIURL:      envOrDefault("STATS_API_URL", "https://api.data.gov.in/resource/ee03643a-ee4c-48c2-ac30-9f2ff26ab722"),
		StatsAPIKey:      os.Getenv("STATS_API_KEY"),
		StatsAPITimeout:  statsTimeout,
		StatsSyncHour:    syncHour,
		StatsBackupEvery: backupEvery,
		SyncOnStart:      os.Getenv("SYNC_ON_START") == "true",

		GeocoderEnabled:   geocoderEnabled,
		GeocoderBaseURL:   envOrDefault("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org/reverse"),
		GeocoderTimeout:   geocoderTimeout,
		GeocoderUserAgent: envOrDefault("GEOCODER_USER_AGENT", "district-stats/1.0 (contact: admin@rozgarmap.in)"),

		LocationCacheTTL: cacheTTL,

		RateLimitRPS:   rps,
		RateLimitBurst: burst,

		KafkaBrokers:   parseBrokers(os.Getenv("KAFKA_BROKERS")),
		KafkaSyncTopic: envOrDefault("KAFKA_SYNC_TOPIC", "district-catalog-updates"),
	}

	if cfg.ShutdownTimeout <= 0 {
		return nil, errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	if cfg.GeocoderTimeout <= 0 {
		return nil, errors.New("GEOCODER_TIMEOUT must be positive")
	}
	if cfg.LocationCacheTTL <= 0 {
		return nil, errors.New("LOCATION_CACHE_TTL must be positive")
	}
	if cfg.StatsAPITimeout <= 0 {
		return nil, errors.New("STATS_API_TIMEOUT must be positive")
	}
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst <= 0 {
		return nil, errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaSyncTopic == "" {
		return nil, errors.New("KAFKA_SYNC_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	s := envOrDefault(key, def)
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func parseInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}

func parseFloat(key string, def float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return f, nil
}

func parseBrokers(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}

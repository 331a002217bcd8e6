package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// County dataset sources.
	CountiesFile        string
	PopulationFile      string
	ExcludedTerritories []string

	// Nearest-county annotation.
	MatchRadiusKm  float64
	MatchFallbackK int

	// Wind field overlay grid.
	WindGridSize    int
	WindGridSpanDeg float64

	// Optional Kafka publisher for computed results.
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string

	// Optional Postgres recorder; enabled when POSTGRES_URL is set.
	PostgresURL string
}

// defaultExcludedTerritories lists the states and territories outside the
// CONUS projection extent. Their boundaries distort badly under the Albers
// parameters, so they are dropped at load time.
const defaultExcludedTerritories = "American Samoa,Commonwealth Of The Northern Mariana Islands,Guam,Puerto Rico,U.S. Virgin Islands,Hawaii,Alaska"

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	matchRadius, err := parseFloat("MATCH_RADIUS_KM", 150)
	if err != nil {
		return nil, err
	}
	fallbackK, err := parseInt("MATCH_FALLBACK_K", 5)
	if err != nil {
		return nil, err
	}
	gridSize, err := parseInt("WIND_GRID_SIZE", 30)
	if err != nil {
		return nil, err
	}
	gridSpan, err := parseFloat("WIND_GRID_SPAN_DEG", 10)
	if err != nil {
		return nil, err
	}

	kafkaEnabled := false
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		CountiesFile:        envOrDefault("COUNTIES_FILE", "data/county_borders.csv"),
		PopulationFile:      envOrDefault("POPULATION_FILE", "data/county_population.csv"),
		ExcludedTerritories: splitList(envOrDefault("EXCLUDED_TERRITORIES", defaultExcludedTerritories)),

		MatchRadiusKm:  matchRadius,
		MatchFallbackK: fallbackK,

		WindGridSize:    gridSize,
		WindGridSpanDeg: gridSpan,

		KafkaEnabled: kafkaEnabled,
		KafkaBrokers: splitList(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:   envOrDefault("KAFKA_TOPIC", "fire-impact-results"),

		PostgresURL: os.Getenv("POSTGRES_URL"),
	}

	if cfg.CountiesFile == "" {
		return nil, errors.New("COUNTIES_FILE is required")
	}
	if cfg.PopulationFile == "" {
		return nil, errors.New("POPULATION_FILE is required")
	}
	if cfg.MatchRadiusKm <= 0 {
		return nil, errors.New("MATCH_RADIUS_KM must be positive")
	}
	if cfg.MatchFallbackK <= 0 {
		return nil, errors.New("MATCH_FALLBACK_K must be positive")
	}
	if cfg.WindGridSize < 2 {
		return nil, errors.New("WIND_GRID_SIZE must be at least 2")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_TOPIC is empty")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseFloat(key string, fallback float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return f, nil
}

func parseInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "data/county_borders.csv", cfg.CountiesFile)
	assert.Equal(t, "data/county_population.csv", cfg.PopulationFile)
	assert.Contains(t, cfg.ExcludedTerritories, "Puerto Rico")
	assert.Contains(t, cfg.ExcludedTerritories, "Hawaii")
	assert.Equal(t, 150.0, cfg.MatchRadiusKm)
	assert.Equal(t, 5, cfg.MatchFallbackK)
	assert.Equal(t, 30, cfg.WindGridSize)
	assert.Equal(t, 10.0, cfg.WindGridSpanDeg)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "fire-impact-results", cfg.KafkaTopic)
	assert.Empty(t, cfg.PostgresURL)
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("COUNTIES_FILE", "/data/borders.csv")
	t.Setenv("POPULATION_FILE", "/data/pop.csv")
	t.Setenv("EXCLUDED_TERRITORIES", "Guam, Puerto Rico")
	t.Setenv("MATCH_RADIUS_KM", "200")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_TOPIC", "impacts")
	t.Setenv("POSTGRES_URL", "postgres://localhost/impacts")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "/data/borders.csv", cfg.CountiesFile)
	assert.Equal(t, []string{"Guam", "Puerto Rico"}, cfg.ExcludedTerritories)
	assert.Equal(t, 200.0, cfg.MatchRadiusKm)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "impacts", cfg.KafkaTopic)
	assert.Equal(t, "postgres://localhost/impacts", cfg.PostgresURL)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad shutdown timeout", "SHUTDOWN_TIMEOUT", "soon"},
		{"negative shutdown timeout", "SHUTDOWN_TIMEOUT", "-5s"},
		{"bad match radius", "MATCH_RADIUS_KM", "wide"},
		{"zero match radius", "MATCH_RADIUS_KM", "0"},
		{"bad fallback k", "MATCH_FALLBACK_K", "few"},
		{"tiny wind grid", "WIND_GRID_SIZE", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}

	t.Run("kafka enabled without brokers", func(t *testing.T) {
		t.Setenv("KAFKA_ENABLED", "true")
		t.Setenv("KAFKA_BROKERS", " , ")
		_, err := Load()
		assert.Error(t, err)
	})
}

package config_test

import (
	"testing"
	"time"

	"crowdshield/config"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	assert.NoError(t, err)

	assert.Equal(t, ":3000", cfg.HTTPAddr)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.GraphFetchTimeout)
	assert.Equal(t, 5.0, cfg.WalkSpeedKmh)
	assert.Equal(t, 30.0, cfg.DispatchSpeedKmh)
	assert.False(t, cfg.CacheEnabled)
	assert.False(t, cfg.AlertsEnabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 50.0, cfg.Thresholds.RainfallMM.High)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":8080")
	t.Setenv("WALK_SPEED_KMH", "4.2")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092, broker-2:9092")
	t.Setenv("RAINFALL_HIGH_MM", "75")
	t.Setenv("CACHE_ENABLED", "true")

	cfg, err := config.Load()
	assert.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 4.2, cfg.WalkSpeedKmh)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 75.0, cfg.Thresholds.RainfallMM.High)
	assert.True(t, cfg.CacheEnabled)
}

func TestLoadRejectsBadDurations(t *testing.T) {
	t.Setenv("GRAPH_FETCH_TIMEOUT", "soon")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoadRejectsNonPositiveWalkSpeed(t *testing.T) {
	t.Setenv("WALK_SPEED_KMH", "-1")
	_, err := config.Load()
	assert.Error(t, err)
}

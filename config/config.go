package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"crowdshield/pkg/risk"

	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	OverpassURL       string
	GraphFetchTimeout time.Duration
	OSMPBFPath        string

	WalkSpeedKmh     float64
	DispatchSpeedKmh float64

	SheltersPath string

	CacheEnabled bool
	CacheDir     string

	AlertsEnabled   bool
	KafkaBrokers    []string
	KafkaAlertTopic string

	GPSSeed uint64

	Thresholds risk.Thresholds
}

// Load reads configuration from environment variables, applying defaults
// where unset. A .env file is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	fetchTimeout, err := time.ParseDuration(envOrDefault("GRAPH_FETCH_TIMEOUT", "10s"))
	if err != nil || fetchTimeout <= 0 {
		return nil, errors.New("invalid GRAPH_FETCH_TIMEOUT")
	}
	shutdownTimeout, err := time.ParseDuration(envOrDefault("SHUTDOWN_TIMEOUT", "10s"))
	if err != nil || shutdownTimeout <= 0 {
		return nil, errors.New("invalid SHUTDOWN_TIMEOUT")
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":3000"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		OverpassURL:       envOrDefault("OVERPASS_URL", "https://overpass-api.de/api/interpreter"),
		GraphFetchTimeout: fetchTimeout,
		OSMPBFPath:        os.Getenv("OSM_PBF_PATH"),

		WalkSpeedKmh:     envFloat("WALK_SPEED_KMH", 5.0),
		DispatchSpeedKmh: envFloat("DISPATCH_SPEED_KMH", 30.0),

		SheltersPath: os.Getenv("SHELTERS_PATH"),

		CacheEnabled: envBool("CACHE_ENABLED", false),
		CacheDir:     envOrDefault("CACHE_DIR", "./crowdshield-cache"),

		AlertsEnabled:   envBool("ALERTS_ENABLED", false),
		KafkaBrokers:    parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaAlertTopic: envOrDefault("KAFKA_ALERT_TOPIC", "evacuation-advisories"),

		GPSSeed: uint64(envInt("GPS_SEED", 42)),

		Thresholds: loadThresholds(),
	}

	if cfg.WalkSpeedKmh <= 0 {
		return nil, errors.New("WALK_SPEED_KMH must be positive")
	}
	if cfg.AlertsEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required when alerts are enabled")
	}
	return cfg, nil
}

// loadThresholds applies env overrides on top of the scorer defaults.
func loadThresholds() risk.Thresholds {
	t := risk.DefaultThresholds()
	t.RainfallMM.Low = envFloat("RAINFALL_LOW_MM", t.RainfallMM.Low)
	t.RainfallMM.Medium = envFloat("RAINFALL_MEDIUM_MM", t.RainfallMM.Medium)
	t.RainfallMM.High = envFloat("RAINFALL_HIGH_MM", t.RainfallMM.High)
	t.WindKph.Low = envFloat("WIND_LOW_KPH", t.WindKph.Low)
	t.WindKph.Medium = envFloat("WIND_MEDIUM_KPH", t.WindKph.Medium)
	t.WindKph.High = envFloat("WIND_HIGH_KPH", t.WindKph.High)
	t.CrowdDensityPerM2.Low = envFloat("CROWD_DENSITY_LOW", t.CrowdDensityPerM2.Low)
	t.CrowdDensityPerM2.Medium = envFloat("CROWD_DENSITY_MEDIUM", t.CrowdDensityPerM2.Medium)
	t.CrowdDensityPerM2.High = envFloat("CROWD_DENSITY_HIGH", t.CrowdDensityPerM2.High)
	return t
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v == "true" || v == "1"
}

func parseBrokers(s string) []string {
	parts := strings.Split(s, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			brokers = append(brokers, trimmed)
		}
	}
	return brokers
}

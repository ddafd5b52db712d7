package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	ProjectID    string
	Region       string
	LogLevel     string
	Port         string
	VertexModel  string
	GridColumns  int
	GridGap      float64
	MetricTick   time.Duration
	AuthDisabled bool
}

func New() *Config {
	return &Config{
		ProjectID:    os.Getenv("PROJECTID"),
		Region:       os.Getenv("REGION"),
		LogLevel:     os.Getenv("LOGLEVEL"),
		Port:         getString("PORT", "8080"),
		VertexModel:  os.Getenv("VERTEXMODEL"),
		GridColumns:  getInt("GRIDCOLUMNS", 8),
		GridGap:      getFloat("GRIDGAP", 16),
		MetricTick:   getDuration("METRICTICK", 5*time.Second),
		AuthDisabled: getBool("AUTHDISABLED", false),
	}
}

// ---- Helpers ----
// Unset or unparsable values fall back to the default.

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

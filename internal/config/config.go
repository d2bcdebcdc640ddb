package config

import (
	"os"
	"strconv"

	"betweenstats/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Data     DataConfig
	Analysis AnalysisConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DatabaseConfig holds the optional Postgres data source settings
type DatabaseConfig struct {
	URL   string
	Table string
}

// DataConfig holds file-backed data source settings
type DataConfig struct {
	File string // xlsx or csv file served as a data source, optional
}

// AnalysisConfig holds statistical defaults surfaced as configuration
type AnalysisConfig struct {
	EqualVarianceAlpha float64
	DefaultTrim        float64
	SweepConcurrency   int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Database: DatabaseConfig{
			URL:   getEnvOrDefault("DATABASE_URL", ""),
			Table: getEnvOrDefault("DATABASE_TABLE", ""),
		},
		Data: DataConfig{
			File: getEnvOrDefault("DATA_FILE", ""),
		},
		Analysis: AnalysisConfig{
			EqualVarianceAlpha: getEnvFloatOrDefault("EQUAL_VARIANCE_ALPHA", 0.05),
			DefaultTrim:        getEnvFloatOrDefault("DEFAULT_TRIM", 0.2),
			SweepConcurrency:   getEnvIntOrDefault("SWEEP_CONCURRENCY", 4),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if a := config.Analysis.EqualVarianceAlpha; a <= 0 || a >= 1 {
		return errors.ConfigInvalid("EQUAL_VARIANCE_ALPHA must be in (0, 1)")
	}
	if t := config.Analysis.DefaultTrim; t < 0 || t >= 0.5 {
		return errors.ConfigInvalid("DEFAULT_TRIM must be in [0, 0.5)")
	}
	if config.Analysis.SweepConcurrency < 1 {
		return errors.ConfigInvalid("SWEEP_CONCURRENCY must be at least 1")
	}
	if config.Database.URL != "" && config.Database.Table == "" {
		return errors.ConfigInvalid("DATABASE_TABLE is required when DATABASE_URL is set")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

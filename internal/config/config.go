package config

import (
	"os"
	"strconv"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Ops      OpsConfig
	Database DatabaseConfig
	Engine   EngineConfig
	Data     DataConfig
}

// ServerConfig holds API server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// OpsConfig holds the operational endpoint settings (health, pprof)
type OpsConfig struct {
	Port    string
	Enabled bool
}

// DatabaseConfig holds database connection settings. An empty URL selects the
// in-memory run repository.
type DatabaseConfig struct {
	URL string
}

// EngineConfig holds fitting engine settings
type EngineConfig struct {
	Seed int64
}

// DataConfig holds data file settings for the CLI and ingestion
type DataConfig struct {
	File string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Ops: OpsConfig{
			Port:    getEnvOrDefault("OPS_PORT", "6060"),
			Enabled: getEnvBoolOrDefault("OPS_ENABLED", true),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
		Engine: EngineConfig{
			Seed: getEnvInt64OrDefault("ENGINE_SEED", 42),
		},
		Data: DataConfig{
			File: getEnvOrDefault("DATA_FILE", ""),
		},
	}, nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// Package config holds the runtime configuration: where the control device
// lives, which pools to show, and how chatty to be. Values come from the
// environment (a .env file is honored), optionally overlaid from a YAML
// file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	// DevicePath is the control device node to open.
	DevicePath string `yaml:"device_path"`

	// PoolWhitelist lists the pools to show (empty = all pools).
	PoolWhitelist []string `yaml:"pool_whitelist"`

	// LogLevel is "info" or "debug".
	LogLevel string `yaml:"log_level"`
}

// NewConfig creates a new configuration from the environment, loading a
// .env file from the working directory first if one exists.
func NewConfig() *Config {
	godotenv.Load(".env")

	return &Config{
		DevicePath:    getEnv("ZFS_DEVICE_PATH", "/dev/zfs"),
		PoolWhitelist: getEnvAsStringSlice("POOL_WHITELIST", []string{}),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}
}

// LoadFile overlays settings from a YAML file onto the config. Fields not
// present in the file keep their current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// IsDebug reports whether debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// IsPoolAllowed checks if a pool is in the whitelist (or if whitelist is
// empty, all pools are allowed)
func (c *Config) IsPoolAllowed(poolName string) bool {
	if len(c.PoolWhitelist) == 0 {
		return true
	}

	for _, allowedPool := range c.PoolWhitelist {
		if allowedPool == poolName {
			return true
		}
	}

	return false
}

// getEnv reads an environment variable, or returns the default value if
// not set
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsStringSlice reads an environment variable as a comma-separated
// list, or returns the default value if not set
func getEnvAsStringSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	parts := strings.Split(valueStr, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	if len(result) == 0 {
		return defaultValue
	}

	return result
}

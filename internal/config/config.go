package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port     int    // HTTP listen port
	Width    int    // default render width in pixels
	Height   int    // default render height in pixels
	LogLevel string // debug, info, warn, error
	DevMode  bool   // pretty logs, no response compression
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:     getEnvAsInt("QPLOT_PORT", 8080),
		Width:    getEnvAsInt("QPLOT_WIDTH", 800),
		Height:   getEnvAsInt("QPLOT_HEIGHT", 600),
		LogLevel: getEnv("QPLOT_LOG_LEVEL", "info"),
		DevMode:  getEnvAsBool("QPLOT_DEV_MODE", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configured values are usable
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("QPLOT_PORT %d out of range", c.Port)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("QPLOT_WIDTH and QPLOT_HEIGHT must be positive, got %dx%d", c.Width, c.Height)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

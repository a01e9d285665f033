// Package config provides process configuration and the routing-rule
// providers for the session router.
//
// Process configuration is loaded from environment variables with sensible
// defaults. Routing rules live in a JSON file that is re-read on every
// dispatch, so edits take effect on the next message without a restart.
//
// Environment Variables:
//   - PORT: status server port (default: 8085)
//   - ROUTES_FILE: path to the routing-rules JSON file (default: ./routes.json)
//   - LOG_LEVEL: logging level (default: info)
//   - LOG_FILE: log file path (default: session-router.log)
//   - TLS_CERT, TLS_KEY: optional TLS material for the status server
package config

import (
	"os"
	"strconv"

	apperrors "session-router/internal/common/errors"
)

// Config holds process-level settings for the session router. Routing rules
// are deliberately not part of this struct; they are pulled fresh from a
// provider on every dispatch.
type Config struct {
	Port       string // Status server port number
	RoutesFile string // Path to the routing-rules JSON file
	LogLevel   string // Logging level (debug, info, warn, error)
	TLSCert    string // TLS certificate path, empty to serve plain HTTP
	TLSKey     string // TLS key path
}

// Load creates a Config with values from environment variables, falling
// back to defaults for anything unset. Call Validate before use.
func Load() *Config {
	return &Config{
		Port:       getEnv("PORT", "8085"),
		RoutesFile: getEnv("ROUTES_FILE", "./routes.json"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		TLSCert:    getEnv("TLS_CERT", ""),
		TLSKey:     getEnv("TLS_KEY", ""),
	}
}

// Validate checks the configuration for values the process cannot start
// with. A missing routes file is not an error: the provider treats it as an
// empty rule set.
func (c *Config) Validate() error {
	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		return apperrors.ConfigError("PORT must be a valid port number between 1 and 65535")
	}

	if c.RoutesFile == "" {
		return apperrors.ConfigError("ROUTES_FILE must not be empty")
	}

	// TLS material must be provided as a pair.
	if (c.TLSCert == "") != (c.TLSKey == "") {
		return apperrors.ConfigError("TLS_CERT and TLS_KEY must be set together")
	}

	return nil
}

// getEnv retrieves an environment variable value or returns a default
// value if not set.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

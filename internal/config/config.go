package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// Database
	SQLiteDBPath string

	// Auth
	JWTSecret      string
	GoogleClientID string
	// AuthDevMode accepts static test credentials instead of Google tokens.
	AuthDevMode bool

	// Tenancy
	DefaultTenantID string

	// Rate limiting
	RequestsPerMinute int

	// Backend selection
	DataBackend string
}

func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8081"),
		ReadTimeout:     getEnvDuration("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvDuration("WRITE_TIMEOUT", 30*time.Second),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/vitien.db"),

		JWTSecret:      getEnv("JWT_SECRET", ""),
		GoogleClientID: getEnv("GOOGLE_CLIENT_ID", ""),
		AuthDevMode:    getEnvBool("AUTH_DEV_MODE", false),

		DefaultTenantID: getEnv("DEFAULT_TENANT_ID", "default"),

		RequestsPerMinute: getEnvInt("REQUESTS_PER_MINUTE", 120),

		DataBackend: getEnv("DATA_BACKEND", "memory"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	validBackends := []string{"memory", "sqlite"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	if c.JWTSecret == "" {
		errors = append(errors, "JWT secret is required")
	} else if len(c.JWTSecret) < 32 {
		errors = append(errors, fmt.Sprintf("JWT secret too short (%d chars): must be at least 32", len(c.JWTSecret)))
	}

	if !c.AuthDevMode && c.GoogleClientID == "" {
		errors = append(errors, "Google client ID is required unless AUTH_DEV_MODE is enabled")
	}

	if c.DefaultTenantID == "" {
		errors = append(errors, "default tenant ID cannot be empty")
	}

	if c.RequestsPerMinute < 1 {
		errors = append(errors, fmt.Sprintf("invalid requests per minute %d: must be at least 1", c.RequestsPerMinute))
	}

	if c.ReadTimeout < time.Second || c.WriteTimeout < time.Second {
		errors = append(errors, "read and write timeouts must be at least 1 second")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

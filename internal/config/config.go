package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Reorder modes
const (
	ReorderPartial = "partial"
	ReorderStrict  = "strict"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port string

	// Database configuration
	DBType            string // mysql, mariadb, postgres, sqlite, sqlite-pure, sqlserver
	DBHost            string
	DBPort            string
	DBDatabase        string
	DBUser            string
	DBPassword        string
	DBConnectionLimit int
	DBLogLevel        string

	// Authorizer configuration
	AuthzURL      string
	AuthzClientID string

	// Component ordering
	ReorderMode string
}

// Load loads configuration from environment variables.
// If ENV_FILE is set, that file is loaded first; variables already present in the
// environment take precedence over the file.
func Load() (*Config, error) {
	cfg, err := LoadDatabase()
	if err != nil {
		return nil, err
	}

	if cfg.AuthzURL == "" {
		return nil, fmt.Errorf("AUTHZ_URL is required")
	}
	if cfg.AuthzClientID == "" {
		return nil, fmt.Errorf("AUTHZ_CLIENT_ID is required")
	}

	return cfg, nil
}

// LoadDatabase loads configuration without requiring the Authorizer settings.
// Used by tools that only talk to the database.
func LoadDatabase() (*Config, error) {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
		log.Printf("Loaded environment from %s", envFile)
	}

	cfg := &Config{
		Port:              getEnv("PORT", "3000"),
		DBType:            strings.ToLower(getEnv("DB_TYPE", "mysql")),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "3306"),
		DBDatabase:        getEnv("DB_DATABASE", ""),
		DBUser:            getEnv("DB_USER", ""),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBConnectionLimit: getEnvAsInt("DB_CONNECTION_LIMIT", 5),
		DBLogLevel:        strings.ToLower(getEnv("DB_LOG_LEVEL", "warn")),
		AuthzURL:          getEnv("AUTHZ_URL", ""),
		AuthzClientID:     getEnv("AUTHZ_CLIENT_ID", ""),
		ReorderMode:       strings.ToLower(getEnv("REORDER_MODE", ReorderPartial)),
	}

	// Validate required fields
	if cfg.DBDatabase == "" {
		return nil, fmt.Errorf("DB_DATABASE is required")
	}
	if cfg.DBUser == "" && !cfg.IsSQLite() {
		return nil, fmt.Errorf("DB_USER is required")
	}
	if cfg.ReorderMode != ReorderPartial && cfg.ReorderMode != ReorderStrict {
		return nil, fmt.Errorf("REORDER_MODE must be %q or %q", ReorderPartial, ReorderStrict)
	}
	if cfg.DBConnectionLimit < 1 {
		cfg.DBConnectionLimit = 1
	}

	return cfg, nil
}

// IsSQLite reports whether the configured database is a SQLite file
func (c *Config) IsSQLite() bool {
	return c.DBType == "sqlite" || c.DBType == "sqlite-pure"
}

// StrictReorder reports whether reorder lists must be exact permutations
func (c *Config) StrictReorder() bool {
	return c.ReorderMode == ReorderStrict
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	Sheets  SheetsConfig
	Catalog CatalogConfig
	Session SessionConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port     string
	LogLevel string
}

// SheetsConfig contains configuration required to interact with Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// CatalogConfig controls which range is read and how often the cached
// snapshot is refreshed.
type CatalogConfig struct {
	Range           string
	RefreshSchedule string
}

// SessionConfig holds delivery-slip session settings.
type SessionConfig struct {
	TTL           time.Duration
	SweepSchedule string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	ttlMinutes, err := strconv.Atoi(getenvWithDefault("SESSION_TTL_MINUTES", "240"))
	if err != nil {
		return nil, fmt.Errorf("SESSION_TTL_MINUTES must be an integer: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:     getenvWithDefault("APP_PORT", "8080"),
			LogLevel: getenvWithDefault("LOG_LEVEL", "info"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
		},
		Catalog: CatalogConfig{
			Range:           getenvWithDefault("SHEET_RANGE", "A:Z"),
			RefreshSchedule: getenvWithDefault("CATALOG_REFRESH_SCHEDULE", "*/15 * * * *"),
		},
		Session: SessionConfig{
			TTL:           time.Duration(ttlMinutes) * time.Minute,
			SweepSchedule: getenvWithDefault("SESSION_SWEEP_SCHEDULE", "*/10 * * * *"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.Sheets.CredentialsPath == "" {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided")
	}

	if c.Sheets.SpreadsheetID == "" {
		return errors.New("GOOGLE_SHEET_DATABASE_ID must be provided")
	}

	if c.Catalog.Range == "" {
		return errors.New("SHEET_RANGE must not be empty")
	}

	if c.Catalog.RefreshSchedule == "" {
		return errors.New("CATALOG_REFRESH_SCHEDULE must be provided")
	}

	if c.Session.TTL <= 0 {
		return errors.New("SESSION_TTL_MINUTES must be positive")
	}

	if c.Session.SweepSchedule == "" {
		return errors.New("SESSION_SWEEP_SCHEDULE must be provided")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

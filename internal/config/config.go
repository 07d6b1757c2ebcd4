package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server      ServerConfig
	MongoDB     MongoDBConfig
	Telematics  TelematicsConfig
	Sheets      SheetsConfig
	Sync        SyncConfig
	Maintenance MaintenanceConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// TelematicsConfig contains credentials and options for the vehicle-data API.
// The integration is optional; with no base URL the sync job stays off.
type TelematicsConfig struct {
	BaseURL    string
	APIToken   string
	VehicleIDs []string
}

// Enabled reports whether the telematics integration is configured.
func (c TelematicsConfig) Enabled() bool {
	return c.BaseURL != "" && len(c.VehicleIDs) > 0
}

// SheetsConfig contains configuration for the optional Google Sheets export.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Enabled reports whether the sheets export is configured.
func (c SheetsConfig) Enabled() bool {
	return c.CredentialsPath != "" && c.SpreadsheetID != ""
}

// SyncConfig holds scheduler-related settings.
type SyncConfig struct {
	CronSchedule string
	Timezone     string
}

// MaintenanceConfig holds tunables for the maintenance calculators.
type MaintenanceConfig struct {
	OilChangeIntervalMiles float64
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
		// Missing .env files are acceptable when configuration comes from the
		// environment directly.
		_ = godotenv.Load()
	}

	interval, err := parseFloatEnv("OIL_CHANGE_INTERVAL_MILES", 5000)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "autodiag"),
		},
		Telematics: TelematicsConfig{
			BaseURL:    os.Getenv("TELEMATICS_BASE_URL"),
			APIToken:   os.Getenv("TELEMATICS_API_TOKEN"),
			VehicleIDs: splitList(os.Getenv("TELEMATICS_VEHICLE_IDS")),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_LOG_ID"),
		},
		Sync: SyncConfig{
			CronSchedule: getenvWithDefault("SYNC_CRON_SCHEDULE", "0 6 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "UTC"),
		},
		Maintenance: MaintenanceConfig{
			OilChangeIntervalMiles: interval,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated and that
// optional integrations are either fully configured or fully absent.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch {
	case c.MongoDB.URI == "":
		return errors.New("MONGODB_URI must be provided")
	case c.MongoDB.DBName == "":
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	if c.Telematics.BaseURL != "" && len(c.Telematics.VehicleIDs) == 0 {
		return errors.New("TELEMATICS_VEHICLE_IDS must be provided when TELEMATICS_BASE_URL is set")
	}

	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_LOG_ID must be set together")
	}

	if c.Sync.CronSchedule == "" {
		return errors.New("SYNC_CRON_SCHEDULE must be provided")
	}

	if c.Maintenance.OilChangeIntervalMiles <= 0 {
		return errors.New("OIL_CHANGE_INTERVAL_MILES must be positive")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseFloatEnv(key string, fallback float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return v, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

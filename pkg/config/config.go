// pkg/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Source selects where raw transaction rows are extracted from.
const (
	SourceCSV       = "csv"
	SourceWarehouse = "warehouse"
)

// Config represents the application configuration
type Config struct {
	// Extract source
	Source         string
	RawDataPath    string
	WarehouseTable string

	// Database connections
	Snowflake *SnowflakeConfig
	Postgres  *PostgresConfig

	// Load targets
	CleanedDataPath string
	FlatTable       string
	LoadRelational  bool

	// Cleaning rules file (optional; defaults apply when empty)
	RulesPath string

	// Load settings
	ChunkSize int

	// Logging
	LogLevel  string
	LogFormat string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Source:         getEnv("INGEST_SOURCE", SourceCSV),
		RawDataPath:    getEnv("RAW_DATA_PATH", "sales_transactions.csv"),
		WarehouseTable: getEnv("WAREHOUSE_TABLE", "raw_sales_transactions"),

		CleanedDataPath: getEnv("CLEANED_DATA_PATH", "cleaned_sales_transactions.csv"),
		FlatTable:       getEnv("FLAT_TABLE", "cleaned_sales"),
		LoadRelational:  getEnvAsBool("LOAD_RELATIONAL", true),

		RulesPath: getEnv("RULES_PATH", ""),

		ChunkSize: getEnvAsInt("CHUNK_SIZE", 1000),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	pgConfig, err := LoadPostgresConfig()
	if err != nil {
		return nil, errors.New("failed to load PostgreSQL configuration: " + err.Error())
	}
	cfg.Postgres = pgConfig

	// The Snowflake connection is only required when extraction comes from
	// the warehouse.
	if cfg.Source == SourceWarehouse {
		snowConfig, err := LoadSnowflakeConfig()
		if err != nil {
			return nil, errors.New("failed to load Snowflake configuration: " + err.Error())
		}
		cfg.Snowflake = snowConfig
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present and valid
func (c *Config) Validate() error {
	switch c.Source {
	case SourceCSV:
		if c.RawDataPath == "" {
			return errors.New("raw data path is required for the csv source")
		}
	case SourceWarehouse:
		if c.Snowflake == nil {
			return errors.New("snowflake configuration is required for the warehouse source")
		}
		if c.WarehouseTable == "" {
			return errors.New("warehouse table is required for the warehouse source")
		}
	default:
		return fmt.Errorf("unknown ingest source %q", c.Source)
	}

	if c.Postgres == nil {
		return errors.New("postgreSQL configuration is required")
	}

	if c.ChunkSize <= 0 {
		return errors.New("chunk size must be positive")
	}

	return nil
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultSeconds int) time.Duration {
	return time.Duration(getEnvAsInt(key, defaultSeconds)) * time.Second
}

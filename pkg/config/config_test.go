// pkg/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setPostgresEnv(t *testing.T) {
	t.Helper()
	t.Setenv("POSTGRES_USER", "ingress")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "sales")
}

func TestLoadConfigDefaults(t *testing.T) {
	setPostgresEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, SourceCSV, cfg.Source)
	assert.Equal(t, "sales_transactions.csv", cfg.RawDataPath)
	assert.Equal(t, "cleaned_sales_transactions.csv", cfg.CleanedDataPath)
	assert.Equal(t, "cleaned_sales", cfg.FlatTable)
	assert.True(t, cfg.LoadRelational)
	assert.Equal(t, 1000, cfg.ChunkSize)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Nil(t, cfg.Snowflake)
	require.NotNil(t, cfg.Postgres)
	assert.Equal(t, "ingress", cfg.Postgres.User)
}

func TestLoadConfigOverrides(t *testing.T) {
	setPostgresEnv(t)
	t.Setenv("RAW_DATA_PATH", "input.csv")
	t.Setenv("CHUNK_SIZE", "250")
	t.Setenv("LOAD_RELATIONAL", "false")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "input.csv", cfg.RawDataPath)
	assert.Equal(t, 250, cfg.ChunkSize)
	assert.False(t, cfg.LoadRelational)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfigWarehouseSource(t *testing.T) {
	setPostgresEnv(t)
	t.Setenv("INGEST_SOURCE", SourceWarehouse)
	t.Setenv("SNOWFLAKE_USER", "loader")
	t.Setenv("SNOWFLAKE_PASSWORD", "secret")
	t.Setenv("SNOWFLAKE_ACCOUNT", "acme-xy12345")
	t.Setenv("SNOWFLAKE_WAREHOUSE", "LOAD_WH")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.NotNil(t, cfg.Snowflake)
	assert.Equal(t, "ESHOP_RAW", cfg.Snowflake.Database)
	assert.Equal(t, "PUBLIC", cfg.Snowflake.Schema)
	assert.Equal(t, 5*time.Minute, cfg.Snowflake.QueryTimeout)
}

func TestLoadConfigWarehouseRequiresSnowflake(t *testing.T) {
	setPostgresEnv(t)
	t.Setenv("INGEST_SOURCE", SourceWarehouse)
	t.Setenv("SNOWFLAKE_USER", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigRequiresPostgres(t *testing.T) {
	t.Setenv("POSTGRES_USER", "")
	t.Setenv("POSTGRES_PASSWORD", "")
	t.Setenv("POSTGRES_DB", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidateRejectsUnknownSource(t *testing.T) {
	setPostgresEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	cfg.Source = "ftp"
	assert.Error(t, cfg.Validate())
}

func TestPostgresConnectionString(t *testing.T) {
	cfg := &PostgresConfig{
		Host: "db.internal", Port: 5433, User: "u", Password: "p",
		Database: "sales", SSLMode: "require",
	}

	assert.Equal(t,
		"host=db.internal port=5433 user=u password=p dbname=sales sslmode=require",
		cfg.ConnectionString())
}

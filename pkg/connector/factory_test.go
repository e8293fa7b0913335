// pkg/connector/factory_test.go
package connector

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ecomdata/sales-ingress/pkg/config"
)

func TestNewConnectorFactory(t *testing.T) {
	cfg := &config.Config{
		Postgres: &config.PostgresConfig{
			Host:     "localhost",
			Port:     5432,
			Database: "sales",
		},
	}

	factory := NewConnectorFactory(cfg, zap.NewNop())

	require.NotNil(t, factory)
	assert.Same(t, cfg, factory.cfg)
}

func TestCreatePostgresConnectorUnreachable(t *testing.T) {
	// Port 1 is never bound on loopback, so the connection attempt fails
	// without touching a real database.
	cfg := &config.Config{
		Postgres: &config.PostgresConfig{
			Host:     "127.0.0.1",
			Port:     1,
			User:     "loader",
			Password: "loader",
			Database: "sales",
			SSLMode:  "disable",
		},
	}

	factory := NewConnectorFactory(cfg, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := factory.CreatePostgresConnector(ctx)
	require.Error(t, err)
	assert.Nil(t, conn)
	assert.Contains(t, err.Error(), "PostgreSQL")
}

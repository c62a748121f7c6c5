package config_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worklog/internal/server/config"
	"worklog/pkg/logger"
)

func TestLoad(t *testing.T) {
	t.Run("error when database name is missing", func(t *testing.T) {
		cfg, err := config.Load(context.Background())
		require.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("defaults applied with required vars present", func(t *testing.T) {
		t.Setenv("SERVER_POSTGRES_DB", "worklog")

		cfg, err := config.Load(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.GetAddress())
		assert.Equal(t, "localhost", cfg.Postgres.Host)
		assert.Equal(t, 5432, cfg.Postgres.Port)
		assert.Equal(t, "worklog", cfg.Postgres.Database)
		assert.Equal(t, 1, cfg.Postgres.MinConn)
		assert.Equal(t, 10, cfg.Postgres.MaxConn)
		assert.Equal(t, "info", cfg.Logging.Level)
		assert.Equal(t, logger.Development, cfg.Logging.GetEnvironment())
		assert.Equal(t, 15*time.Minute, cfg.JWT.GetAccessTokenTTL())
		assert.Equal(t, 5*time.Second, cfg.Shutdown.GetTimeout())
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("SERVER_POSTGRES_DB", "worklog")
		t.Setenv("SERVER_HTTP_PORT", "9090")
		t.Setenv("SERVER_LOGGER_MODE", "production")
		t.Setenv("SERVER_JWT_ACCESS_TOKEN_TTL", "1h")

		cfg, err := config.Load(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.HTTP.Port)
		assert.Equal(t, logger.Production, cfg.Logging.GetEnvironment())
		assert.Equal(t, time.Hour, cfg.JWT.GetAccessTokenTTL())
	})

	t.Run("invalid token TTL falls back to default", func(t *testing.T) {
		cfg := config.JWTConfig{AccessTokenTTL: "soon"}
		assert.Equal(t, 15*time.Minute, cfg.GetAccessTokenTTL())
	})

	t.Run("DSN and migration URL composed from parts", func(t *testing.T) {
		cfg := config.PostgresConfig{
			Host: "db", Port: 5433, User: "svc", Password: "pw", Database: "worklog",
		}
		assert.Equal(t, "host=db port=5433 user=svc password=pw dbname=worklog sslmode=disable", cfg.GetDSN())
		assert.Equal(t, "postgres://svc:pw@db:5433/worklog?sslmode=disable", cfg.GetConnectionURL())
	})
}

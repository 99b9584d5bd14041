package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("loads defaults with DATABASE_URL", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://academia:pw@localhost:5432/academia")

		cfg, err := New(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "development", cfg.Environment)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, "academia-hq", cfg.Auth.Issuer)
		assert.Equal(t, "academia-api", cfg.Auth.Audience)
		assert.Equal(t, "json", cfg.Observability.LogFormat)
	})

	t.Run("production requires a JWT secret", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://academia:pw@localhost:5432/academia")
		t.Setenv("ENVIRONMENT", "production")
		t.Setenv("JWT_SECRET", "")

		_, err := New(context.Background())
		assert.Error(t, err)
	})

	t.Run("missing database config fails validation", func(t *testing.T) {
		cfg := &Config{
			Environment: "development",
			Auth:        AuthConfig{Issuer: "academia-hq", Audience: "academia-api"},
			Observability: ObservabilityConfig{
				LogLevel: "info",
			},
		}

		assert.Error(t, cfg.Validate())
	})
}

func TestDatabaseConfig(t *testing.T) {
	t.Run("DSN prefers the connection string", func(t *testing.T) {
		cfg := DatabaseConfig{
			ConnectionString: "postgres://u:p@db:5432/academia",
			Host:             "ignored",
		}
		assert.Equal(t, "postgres://u:p@db:5432/academia", cfg.DSN())
	})

	t.Run("DSN builds from fields", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host: "localhost", Port: 5432, User: "academia",
			Password: "pw", Database: "academia", SSLMode: "disable",
		}
		assert.Equal(t,
			"host=localhost port=5432 user=academia password=pw dbname=academia sslmode=disable",
			cfg.DSN())
	})

	t.Run("LogString omits the password", func(t *testing.T) {
		cfg := DatabaseConfig{ConnectionString: "postgres://u:secret@db:6543/academia"}
		logString := cfg.LogString()
		assert.NotContains(t, logString, "secret")
		assert.Contains(t, logString, "db")
		assert.Contains(t, logString, "6543")
	})
}

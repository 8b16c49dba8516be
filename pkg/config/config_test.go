package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("fleet-api")
	require.NoError(t, err)

	assert.Equal(t, "fleet-api", cfg.Server.ServiceName)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "motorent", cfg.Database.DBName)
	assert.Equal(t, "MOTORENT", cfg.NATS.Stream)
	assert.False(t, cfg.NATS.Enabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_NAME", "motorent_test")
	t.Setenv("DB_MAX_CONNS", "50")
	t.Setenv("NATS_ENABLED", "true")

	cfg, err := Load("fleet-api")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "motorent_test", cfg.Database.DBName)
	assert.Equal(t, 50, cfg.Database.MaxConns)
	assert.True(t, cfg.NATS.Enabled)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "db", Port: "5432", User: "app", Password: "secret",
		DBName: "motorent", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=db port=5432 user=app password=secret dbname=motorent sslmode=disable",
		cfg.DSN(),
	)
	assert.Equal(t,
		"postgres://app:secret@db:5432/motorent?sslmode=disable",
		cfg.URL(),
	)
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := RedisConfig{Host: "cache", Port: "6379"}
	assert.Equal(t, "cache:6379", cfg.RedisAddr())
}

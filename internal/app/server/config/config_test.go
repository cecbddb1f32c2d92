package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URI", "postgres://localhost/shiftbill")

	cfg := MustLoad()

	assert.Equal(t, EnvLocal, cfg.Env)
	assert.Equal(t, ":8080", cfg.Server.RunAddress)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "migrations", cfg.DB.Migrations)
	assert.Equal(t, "postgres://localhost/shiftbill", cfg.DB.DatabaseURI)
	assert.Equal(t, DefaultTimeZone, cfg.TimeZone)
}

func TestMustLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("RUN_ADDRESS", ":9090")
	t.Setenv("TIME_ZONE", "UTC")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg := MustLoad()

	assert.Equal(t, EnvProd, cfg.Env)
	assert.Equal(t, ":9090", cfg.Server.RunAddress)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONFIG_DIR", dir)
	t.Setenv("SERVER_ADDRESS", "billing.internal:9000")
	t.Setenv("CLOCK_FORMAT", "24h")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "5")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "billing.internal:9000", cfg.ServerAddress)
	assert.Equal(t, dir, cfg.ConfigDir)
	assert.Equal(t, filepath.Join(dir, "drafts.db"), cfg.DraftPath)
	assert.Equal(t, "America/Los_Angeles", cfg.TimeZone)
	assert.Equal(t, "24h", cfg.ClockFormat)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.EnableTLS)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONFIG_DIR", dir)

	file := filepath.Join(dir, "client.yaml")
	require.NoError(t, os.WriteFile(file, []byte("time_zone: America/New_York\ndraft_path: "+filepath.Join(dir, "d.db")+"\n"), 0600))

	cfg, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", cfg.TimeZone)
	assert.Equal(t, filepath.Join(dir, "d.db"), cfg.DraftPath)
}

func TestLoad_InvalidClockFormat(t *testing.T) {
	t.Setenv("CONFIG_DIR", t.TempDir())
	t.Setenv("CLOCK_FORMAT", "48h")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clock_format")
}

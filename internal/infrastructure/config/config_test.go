package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", "")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, 48*time.Hour, cfg.Helpdesk.OverdueThreshold())
	assert.Equal(t, 600*time.Second, cfg.Helpdesk.OverdueCacheTTL())
	assert.Equal(t, 365, cfg.Helpdesk.StatsWindowDays)
	assert.Same(t, cfg, Get())
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  driver: sqlite\n  path: /tmp/x.db\nserver:\n  port: 9000\n"), 0o600))
	t.Setenv("HELPDESK_SERVER_PORT", "9100")

	cfg, err := Load("production", path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/tmp/x.db", cfg.Database.Path)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Mode)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	_, err := Load("", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

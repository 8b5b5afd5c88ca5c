package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv(EnvDBPath, "")
	t.Setenv(EnvLogLevel, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	def := DefaultConfig()
	assert.Equal(t, def.Database.Path, cfg.Database.Path)
	assert.Equal(t, 5*time.Second, cfg.Database.BusyTimeout)
	assert.Equal(t, 4, cfg.Database.MaxConns)
	assert.False(t, cfg.Database.Encrypt)
	assert.Equal(t, "today", cfg.UI.StartView)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	t.Setenv(EnvDBPath, "")
	t.Setenv(EnvLogLevel, "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `database:
  path: /tmp/j.db
  encrypt: true
  busy_timeout: 250ms
ui:
  start_view: entries
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/j.db", cfg.Database.Path)
	assert.True(t, cfg.Database.Encrypt)
	assert.Equal(t, 250*time.Millisecond, cfg.Database.BusyTimeout)
	// untouched keys keep their defaults
	assert.Equal(t, 4, cfg.Database.MaxConns)
	assert.Equal(t, "entries", cfg.UI.StartView)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  path: /tmp/file.db\n"), 0644))

	t.Setenv(EnvDBPath, "/tmp/env.db")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/env.db", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSave_RoundTrip(t *testing.T) {
	t.Setenv(EnvDBPath, "")
	t.Setenv(EnvLogLevel, "")

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Database.Path = "/data/journal.db"
	cfg.Database.BusyTimeout = 2 * time.Second
	cfg.UI.StartView = "new"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "empty path", mutate: func(c *Config) { c.Database.Path = "" }, wantErr: true},
		{name: "negative busy timeout", mutate: func(c *Config) { c.Database.BusyTimeout = -time.Second }, wantErr: true},
		{name: "zero conns", mutate: func(c *Config) { c.Database.MaxConns = 0 }, wantErr: true},
		{name: "unknown view", mutate: func(c *Config) { c.UI.StartView = "library" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

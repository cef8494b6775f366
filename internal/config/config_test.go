package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "manual", cfg.Schedule.Mode)
	assert.Equal(t, "127.0.0.1:7817", cfg.Server.Addr())
	assert.Equal(t, 60*time.Second, cfg.Download.Timeout)
	assert.True(t, cfg.History.Enabled)
	assert.NotEmpty(t, cfg.Storage.SupportDir)
	assert.Equal(t, filepath.Join(cfg.Storage.SupportDir, "themes"), cfg.Storage.BundledThemesDir())
	assert.Equal(t, filepath.Join(cfg.Storage.SupportDir, "state.json"), cfg.Storage.StatePath())
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
storage:
  support_dir: /tmp/tinge-test
logging:
  level: debug
  format: json
schedule:
  mode: scheduled
  light_theme: day-theme
  dark_theme: night-theme
location:
  latitude: 37.7749
  longitude: -122.4194
server:
  port: 9000
favorites:
  - harbor
  - tinge-dark
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/tinge-test", cfg.Storage.SupportDir)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "scheduled", cfg.Schedule.Mode)
	assert.Equal(t, "day-theme", cfg.Schedule.LightTheme)
	assert.InDelta(t, 37.7749, cfg.Location.Latitude, 0.0001)
	assert.True(t, cfg.Location.Set())
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, []string{"harbor", "tinge-dark"}, cfg.Favorites)

	// Unset sections keep defaults.
	assert.Equal(t, "0 7 * * *", cfg.Schedule.LightAt)
	assert.Equal(t, 10, cfg.Download.MaxRedirects)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("TINGE_LOGGING_LEVEL", "warn")
	t.Setenv("TINGE_SERVER_PORT", "8123")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 8123, cfg.Server.Port)
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging: [not a map"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"bad mode", func(c *Config) { c.Schedule.Mode = "automatic" }, "schedule.mode"},
		{"mode without themes", func(c *Config) { c.Schedule.Mode = "sunrise" }, "light_theme"},
		{"bad latitude", func(c *Config) { c.Location.Latitude = 91 }, "latitude"},
		{"bad longitude", func(c *Config) { c.Location.Longitude = -181 }, "longitude"},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"negative retention", func(c *Config) { c.History.RetentionDays = -1 }, "retention_days"},
		{"empty support dir", func(c *Config) { c.Storage.SupportDir = "" }, "support_dir"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNotificationsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Notifications.Desktop)
	assert.True(t, cfg.Notifications.TerminalReload)
	assert.Empty(t, cfg.Notifications.HookScript)
}

// Package config provides configuration management for tinge using Viper.
// It supports configuration from files, environment variables, and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Default configuration values.
const (
	defaultServerHost      = "127.0.0.1"
	defaultServerPort      = 7817
	defaultServerTimeout   = 15 * time.Second
	defaultShutdownTimeout = 5 * time.Second
	defaultHTTPTimeout     = 60 * time.Second
	defaultMaxRedirects    = 10
	defaultMaxBodySize     = 64 * 1024 * 1024
	defaultRetentionDays   = 90
)

// Config holds all configuration for the application.
type Config struct {
	Storage       StorageConfig       `mapstructure:"storage"`
	Logging       LoggingConfig       `mapstructure:"logging"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	Schedule      ScheduleConfig      `mapstructure:"schedule"`
	Location      LocationConfig      `mapstructure:"location"`
	Server        ServerConfig        `mapstructure:"server"`
	History       HistoryConfig       `mapstructure:"history"`
	Download      DownloadConfig      `mapstructure:"download"`

	// Favorites is an ordered list of theme ids pinned in listings.
	Favorites []string `mapstructure:"favorites"`
}

// StorageConfig holds filesystem layout configuration. Everything lives under
// SupportDir unless individually overridden.
type StorageConfig struct {
	SupportDir string `mapstructure:"support_dir"`
}

// BundledThemesDir is where seeded themes are materialized.
func (s StorageConfig) BundledThemesDir() string {
	return filepath.Join(s.SupportDir, "themes")
}

// CustomThemesDir is where user-authored themes live.
func (s StorageConfig) CustomThemesDir() string {
	return filepath.Join(s.SupportDir, "custom-themes")
}

// CurrentDir holds the active-theme symlink.
func (s StorageConfig) CurrentDir() string {
	return filepath.Join(s.SupportDir, "current")
}

// StatePath is the active-theme state file.
func (s StorageConfig) StatePath() string {
	return filepath.Join(s.SupportDir, "state.json")
}

// HistoryPath is the apply-history sqlite database.
func (s StorageConfig) HistoryPath() string {
	return filepath.Join(s.SupportDir, "history.db")
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`  // debug, info, warn, error
	Format     string `mapstructure:"format"` // json, text
	AddSource  bool   `mapstructure:"add_source"`
	TimeFormat string `mapstructure:"time_format"`
}

// NotificationsConfig controls what happens after a successful switch.
type NotificationsConfig struct {
	Desktop          bool   `mapstructure:"desktop"`
	EditorReloadFile string `mapstructure:"editor_reload_file"`
	TerminalReload   bool   `mapstructure:"terminal_reload"`
	HookScript       string `mapstructure:"hook_script"`
}

// ScheduleConfig holds auto-switch configuration.
type ScheduleConfig struct {
	Mode       string `mapstructure:"mode"` // manual, scheduled, sunrise
	LightTheme string `mapstructure:"light_theme"`
	DarkTheme  string `mapstructure:"dark_theme"`
	LightAt    string `mapstructure:"light_at"` // cron, e.g. "0 7 * * *"
	DarkAt     string `mapstructure:"dark_at"`
}

// LocationConfig locates sunrise mode and the suntimes command.
type LocationConfig struct {
	Latitude  float64 `mapstructure:"latitude"`
	Longitude float64 `mapstructure:"longitude"`
}

// Set reports whether a location has been configured. 0,0 (the Gulf of
// Guinea) doubles as the unset sentinel.
func (l LocationConfig) Set() bool {
	return l.Latitude != 0 || l.Longitude != 0
}

// ServerConfig holds control API server configuration.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// HistoryConfig holds apply-history configuration.
type HistoryConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	RetentionDays int  `mapstructure:"retention_days"`
}

// DownloadConfig holds archive download configuration.
type DownloadConfig struct {
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxRedirects int           `mapstructure:"max_redirects"`
	MaxBodySize  int64         `mapstructure:"max_body_size"`
}

// Load reads configuration from file and environment variables.
// Environment variables take precedence over file configuration.
// Environment variables are prefixed with TINGE_ and use underscores for
// nesting. Example: TINGE_SERVER_PORT=7817.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	SetDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "tinge"))
		}
	}

	v.SetEnvPrefix("TINGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file not found is OK, defaults and env vars still apply.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// SetDefaults sets default values on a viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("storage.support_dir", DefaultSupportDir())

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.add_source", false)
	v.SetDefault("logging.time_format", time.RFC3339)

	v.SetDefault("notifications.desktop", true)
	v.SetDefault("notifications.terminal_reload", true)

	v.SetDefault("schedule.mode", "manual")
	v.SetDefault("schedule.light_at", "0 7 * * *")
	v.SetDefault("schedule.dark_at", "0 19 * * *")

	v.SetDefault("server.host", defaultServerHost)
	v.SetDefault("server.port", defaultServerPort)
	v.SetDefault("server.read_timeout", defaultServerTimeout)
	v.SetDefault("server.write_timeout", defaultServerTimeout)
	v.SetDefault("server.shutdown_timeout", defaultShutdownTimeout)

	v.SetDefault("history.enabled", true)
	v.SetDefault("history.retention_days", defaultRetentionDays)

	v.SetDefault("download.timeout", defaultHTTPTimeout)
	v.SetDefault("download.max_redirects", defaultMaxRedirects)
	v.SetDefault("download.max_body_size", defaultMaxBodySize)
}

// DefaultSupportDir returns the platform support root:
// ~/Library/Application Support/tinge on darwin, $XDG_DATA_HOME/tinge or
// ~/.local/share/tinge elsewhere.
func DefaultSupportDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "tinge"
	}
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Application Support", "tinge")
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "tinge")
	}
	return filepath.Join(home, ".local", "share", "tinge")
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Storage.SupportDir == "" {
		return fmt.Errorf("storage.support_dir is required")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("invalid logging.format: %q", c.Logging.Format)
	}

	switch c.Schedule.Mode {
	case "manual", "scheduled", "sunrise":
	default:
		return fmt.Errorf("invalid schedule.mode: %q", c.Schedule.Mode)
	}
	if c.Schedule.Mode != "manual" && (c.Schedule.LightTheme == "" || c.Schedule.DarkTheme == "") {
		return fmt.Errorf("schedule.mode %q requires schedule.light_theme and schedule.dark_theme", c.Schedule.Mode)
	}

	if c.Location.Latitude < -90 || c.Location.Latitude > 90 {
		return fmt.Errorf("invalid location.latitude: %f", c.Location.Latitude)
	}
	if c.Location.Longitude < -180 || c.Location.Longitude > 180 {
		return fmt.Errorf("invalid location.longitude: %f", c.Location.Longitude)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port: %d", c.Server.Port)
	}

	if c.History.RetentionDays < 0 {
		return fmt.Errorf("invalid history.retention_days: %d", c.History.RetentionDays)
	}
	if c.Download.MaxRedirects < 0 {
		return fmt.Errorf("invalid download.max_redirects: %d", c.Download.MaxRedirects)
	}
	if c.Download.MaxBodySize < 0 {
		return fmt.Errorf("invalid download.max_body_size: %d", c.Download.MaxBodySize)
	}

	return nil
}

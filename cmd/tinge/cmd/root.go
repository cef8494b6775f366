// Package cmd implements the CLI commands for tinge.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/tingeapp/tinge/internal/config"
	"github.com/tingeapp/tinge/internal/observability"
	"github.com/tingeapp/tinge/internal/version"
)

// cfgFile holds the config file path from the CLI flag.
var cfgFile string

// cfg is the effective configuration, loaded in the persistent pre-run.
var cfg *config.Config

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:     "tinge",
	Short:   "Desktop theme synchronization",
	Version: version.Short(),
	Long: `tinge keeps every application on the desktop in the same color theme.

A theme is a named palette of 22 colors. tinge generates each application's
native config format from the palette (terminals, editors, shell tools),
switches the active theme atomically via a single symlink, and can follow
the sun or a fixed schedule to alternate between light and dark themes.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("executing root command: %w", err)
	}
	return nil
}

func init() {
	// PersistentPreRunE set here to avoid an initialization cycle
	// (initRuntime references rootCmd.PersistentFlags).
	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		return initRuntime()
	}

	// These flags are NOT bound to viper. We check Changed() and only then
	// override, preserving the priority: CLI flag > env var > config > default.
	// Accept snake_case spellings of flag names so they match config keys.
	rootCmd.PersistentFlags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.config/tinge/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
}

// initRuntime loads the configuration and installs the default logger.
func initRuntime() error {
	loaded, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	flags := rootCmd.PersistentFlags()
	if flags.Changed("log-level") {
		loaded.Logging.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		loaded.Logging.Format, _ = flags.GetString("log-format")
	}
	loaded.Logging.Level = strings.ToLower(loaded.Logging.Level)
	if loaded.Logging.Level == "warning" {
		loaded.Logging.Level = "warn"
	}

	cfg = loaded

	logger := observability.NewLoggerWithWriter(cfg.Logging, os.Stderr)
	observability.SetDefault(logger)
	return nil
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the merged configuration after defaults, config file, environment
variables, and flags have been applied, in config-file YAML form.`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	out, err := yaml.Marshal(configView())
	if err != nil {
		return fmt.Errorf("rendering config: %w", err)
	}
	_, err = os.Stdout.Write(out)
	return err
}

// configView mirrors the config file layout so the output can be pasted back
// into a config file unchanged.
func configView() map[string]any {
	return map[string]any{
		"storage": map[string]any{
			"support_dir": cfg.Storage.SupportDir,
		},
		"logging": map[string]any{
			"level":      cfg.Logging.Level,
			"format":     cfg.Logging.Format,
			"add_source": cfg.Logging.AddSource,
		},
		"notifications": map[string]any{
			"desktop":            cfg.Notifications.Desktop,
			"editor_reload_file": cfg.Notifications.EditorReloadFile,
			"terminal_reload":    cfg.Notifications.TerminalReload,
			"hook_script":        cfg.Notifications.HookScript,
		},
		"schedule": map[string]any{
			"mode":        cfg.Schedule.Mode,
			"light_theme": cfg.Schedule.LightTheme,
			"dark_theme":  cfg.Schedule.DarkTheme,
			"light_at":    cfg.Schedule.LightAt,
			"dark_at":     cfg.Schedule.DarkAt,
		},
		"location": map[string]any{
			"latitude":  cfg.Location.Latitude,
			"longitude": cfg.Location.Longitude,
		},
		"server": map[string]any{
			"host": cfg.Server.Host,
			"port": cfg.Server.Port,
		},
		"history": map[string]any{
			"enabled":        cfg.History.Enabled,
			"retention_days": cfg.History.RetentionDays,
		},
		"favorites": cfg.Favorites,
	}
}

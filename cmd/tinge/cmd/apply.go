package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tingeapp/tinge/internal/models"
)

var applyCmd = &cobra.Command{
	Use:   "apply <theme>",
	Short: "Switch to a theme",
	Long: `Switch the active theme. The theme id is the directory name under the
theme store; run "tinge list" to see what is available. Every generated
config file of the theme becomes active through the current/theme symlink,
and configured notifications fire afterwards.`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	theme, err := a.apply.Apply(cmd.Context(), args[0], models.TriggerManual)
	if err != nil {
		return err
	}

	fmt.Printf("Applied %s\n", theme.Name)
	return nil
}

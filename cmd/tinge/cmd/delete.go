package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <theme>",
	Short: "Delete a custom theme",
	Long: `Delete a custom theme and all its generated files. Bundled themes and
the currently active theme cannot be deleted.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.themes.Delete(cmd.Context(), args[0], a.switcher.ActiveID()); err != nil {
		return err
	}

	fmt.Printf("Deleted %s\n", args[0])
	return nil
}

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file|url>",
	Short: "Import a theme from a .mactheme archive",
	Long: `Install a theme from an archive file or an http(s) URL. The archive is
validated before anything is installed; a name collision with an existing
theme gets a numeric suffix instead of overwriting.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	source := args[0]
	var id string
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		id, err = a.packager.ImportFromURL(cmd.Context(), source)
	} else {
		var f *os.File
		f, err = os.Open(source)
		if err != nil {
			return fmt.Errorf("opening archive: %w", err)
		}
		defer f.Close()
		id, err = a.packager.Import(cmd.Context(), f)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Imported %s\n", id)
	fmt.Printf("Apply it with: tinge apply %s\n", id)
	return nil
}

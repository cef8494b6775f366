package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tingeapp/tinge/internal/archive"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <theme>...",
	Short: "Export themes to a .mactheme archive",
	Long: `Package one or more themes into a portable archive. The archive is a
gzip tarball containing each theme's full directory, so it opens with any
standard archive tool.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default <first-theme>.mactheme)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	out := exportOutput
	if out == "" {
		out = args[0] + archive.Extension
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating archive file: %w", err)
	}

	if err := a.packager.Export(cmd.Context(), args, f); err != nil {
		f.Close()
		os.Remove(out)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("finalizing archive file: %w", err)
	}

	fmt.Printf("Exported %d theme(s) to %s\n", len(args), out)
	return nil
}

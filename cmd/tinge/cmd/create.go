package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tingeapp/tinge/internal/imagepalette"
	"github.com/tingeapp/tinge/internal/models"
)

var (
	createFromImage string
	createFrom      string
	createAuthor    string
	createLight     bool
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a custom theme",
	Long: `Create a custom theme, either by deriving a palette from a wallpaper
image (--from-image) or by duplicating an existing theme (--from). The new
theme gets all config formats generated immediately.`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVar(&createFromImage, "from-image", "", "derive the palette from a png or jpeg image")
	createCmd.Flags().StringVar(&createFrom, "from", "", "duplicate an existing theme's palette and wallpapers")
	createCmd.Flags().StringVar(&createAuthor, "author", "", "theme author")
	createCmd.Flags().BoolVar(&createLight, "light", false, "mark the theme as a light theme")
	createCmd.MarkFlagsMutuallyExclusive("from-image", "from")
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	name := args[0]

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	switch {
	case createFrom != "":
		id, err := a.themes.Duplicate(cmd.Context(), createFrom, name)
		if err != nil {
			return err
		}
		fmt.Printf("Created %s (from %s)\n", id, createFrom)
		return nil

	case createFromImage != "":
		f, err := os.Open(createFromImage)
		if err != nil {
			return fmt.Errorf("opening image: %w", err)
		}
		defer f.Close()

		palette, err := imagepalette.FromImage(f)
		if err != nil {
			return err
		}

		id, err := a.themes.Create(cmd.Context(), models.ThemeMetadata{
			Name:    name,
			Author:  createAuthor,
			IsLight: createLight,
			Palette: palette,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Created %s (from %s)\n", id, createFromImage)
		return nil

	default:
		return fmt.Errorf("one of --from-image or --from is required")
	}
}

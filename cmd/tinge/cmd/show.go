package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/tingeapp/tinge/internal/models"
)

var showCmd = &cobra.Command{
	Use:   "show <theme>",
	Short: "Show a theme's palette as color swatches",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	theme, err := a.themes.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	variant := "dark"
	if theme.IsLight {
		variant = "light"
	}
	title := lipgloss.NewStyle().Bold(true).Render(theme.Name)
	fmt.Fprintf(os.Stdout, "%s (%s, %s)\n", title, variant, theme.Source)
	if theme.Author != "" {
		fmt.Fprintf(os.Stdout, "by %s\n", theme.Author)
	}
	if theme.Description != "" {
		fmt.Fprintln(os.Stdout, theme.Description)
	}
	fmt.Fprintln(os.Stdout)

	for _, role := range models.Roles {
		hex := theme.Palette.Color(role)
		swatch := lipgloss.NewStyle().
			Background(lipgloss.Color(hex)).
			Render("      ")
		fmt.Fprintf(os.Stdout, "%s  %-14s %s\n", swatch, role, hex)
	}
	return nil
}

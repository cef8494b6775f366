package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all themes",
	Long: `List bundled and custom themes. Favorites from the configuration sort
first, and the active theme is marked.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(listCmd)
}

// listEntry is one row of the listing; also the JSON shape.
type listEntry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Author   string `json:"author,omitempty"`
	Variant  string `json:"variant"`
	Source   string `json:"source"`
	Active   bool   `json:"active"`
	Favorite bool   `json:"favorite"`
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	themes, err := a.themes.List(cmd.Context())
	if err != nil {
		return err
	}

	active := a.switcher.ActiveID()
	entries := make([]listEntry, 0, len(themes))
	for _, t := range themes {
		variant := "dark"
		if t.IsLight {
			variant = "light"
		}
		entries = append(entries, listEntry{
			ID:       t.ID,
			Name:     t.Name,
			Author:   t.Author,
			Variant:  variant,
			Source:   string(t.Source),
			Active:   t.ID == active,
			Favorite: slices.Contains(cfg.Favorites, t.ID),
		})
	}

	// Favorites first, bundled before custom inside each group.
	slices.SortStableFunc(entries, func(a, b listEntry) int {
		if a.Favorite != b.Favorite {
			if a.Favorite {
				return -1
			}
			return 1
		}
		return 0
	})

	if listJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"", "ID", "Name", "Variant", "Source"})
	for _, e := range entries {
		marker := ""
		if e.Active {
			marker = "*"
		}
		if e.Favorite {
			marker += "★"
		}
		tw.AppendRow(table.Row{marker, e.ID, e.Name, e.Variant, e.Source})
	}
	tw.SetStyle(table.StyleLight)
	tw.Render()

	if active == "" {
		fmt.Println("\nNo theme applied yet. Run: tinge apply <id>")
	}
	return nil
}

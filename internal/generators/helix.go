package generators

import (
	"fmt"
	"strings"

	"github.com/tingeapp/tinge/internal/models"
)

// helixGenerator emits a Helix editor theme in TOML.
type helixGenerator struct{}

func (helixGenerator) Format() Format   { return FormatHelix }
func (helixGenerator) Filename() string { return "helix.toml" }

func (helixGenerator) Generate(p models.Palette, meta models.ThemeMetadata) (string, error) {
	if err := requireComplete(p); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(header("#", meta.Name))
	b.WriteString("\n")

	// Scopes reference palette entries by name; the hex values live in the
	// [palette] table below so the whole theme stays in one file.
	b.WriteString("\"ui.background\" = { bg = \"background\" }\n")
	b.WriteString("\"ui.text\" = \"foreground\"\n")
	b.WriteString("\"ui.cursor.primary\" = { fg = \"background\", bg = \"cursor\" }\n")
	b.WriteString("\"ui.selection\" = { bg = \"selection\" }\n")
	b.WriteString("\"ui.window\" = { fg = \"border\" }\n")
	b.WriteString("\"ui.statusline\" = { fg = \"foreground\", bg = \"border\" }\n")
	b.WriteString("\"ui.virtual.ruler\" = { bg = \"border\" }\n")
	b.WriteString("\"ui.menu.selected\" = { fg = \"background\", bg = \"accent\" }\n")
	b.WriteString("\"keyword\" = \"magenta\"\n")
	b.WriteString("\"string\" = \"green\"\n")
	b.WriteString("\"function\" = \"blue\"\n")
	b.WriteString("\"type\" = \"yellow\"\n")
	b.WriteString("\"constant\" = \"cyan\"\n")
	b.WriteString("\"comment\" = { fg = \"brightBlack\", modifiers = [\"italic\"] }\n")
	b.WriteString("\"error\" = \"red\"\n")
	b.WriteString("\"warning\" = \"yellow\"\n")

	b.WriteString("\n[palette]\n")
	for _, role := range models.Roles {
		fmt.Fprintf(&b, "%s = %q\n", role, p.Color(role))
	}

	return b.String(), nil
}

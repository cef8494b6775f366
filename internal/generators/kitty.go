package generators

import (
	"fmt"
	"strings"

	"github.com/tingeapp/tinge/internal/models"
)

// kittyGenerator emits a kitty terminal color configuration.
type kittyGenerator struct{}

func (kittyGenerator) Format() Format   { return FormatKitty }
func (kittyGenerator) Filename() string { return "kitty.conf" }

func (kittyGenerator) Generate(p models.Palette, meta models.ThemeMetadata) (string, error) {
	if err := requireComplete(p); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(header("#", meta.Name))
	b.WriteString("\n")

	fmt.Fprintf(&b, "foreground %s\n", p.Color(models.RoleForeground))
	fmt.Fprintf(&b, "background %s\n", p.Color(models.RoleBackground))
	fmt.Fprintf(&b, "cursor %s\n", p.Color(models.RoleCursor))
	fmt.Fprintf(&b, "cursor_text_color %s\n", p.Color(models.RoleBackground))
	fmt.Fprintf(&b, "selection_foreground %s\n", p.Color(models.RoleForeground))
	fmt.Fprintf(&b, "selection_background %s\n", p.Color(models.RoleSelection))
	fmt.Fprintf(&b, "url_color %s\n", p.Color(models.RoleAccent))
	fmt.Fprintf(&b, "active_border_color %s\n", p.Color(models.RoleAccent))
	fmt.Fprintf(&b, "inactive_border_color %s\n", p.Color(models.RoleBorder))
	fmt.Fprintf(&b, "active_tab_foreground %s\n", p.Color(models.RoleBackground))
	fmt.Fprintf(&b, "active_tab_background %s\n", p.Color(models.RoleAccent))
	fmt.Fprintf(&b, "inactive_tab_foreground %s\n", p.Color(models.RoleForeground))
	fmt.Fprintf(&b, "inactive_tab_background %s\n", p.Color(models.RoleBorder))
	b.WriteString("\n")

	for i, role := range models.AnsiRoles {
		fmt.Fprintf(&b, "color%d %s\n", i, p.Color(role))
	}

	return b.String(), nil
}

package generators

import (
	"fmt"
	"strings"

	"github.com/tingeapp/tinge/internal/models"
)

// weztermGenerator emits a WezTerm color scheme as a Lua module.
type weztermGenerator struct{}

func (weztermGenerator) Format() Format   { return FormatWezterm }
func (weztermGenerator) Filename() string { return "wezterm.lua" }

func (weztermGenerator) Generate(p models.Palette, meta models.ThemeMetadata) (string, error) {
	if err := requireComplete(p); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(header("--", meta.Name))
	b.WriteString("\nreturn {\n")

	fmt.Fprintf(&b, "  foreground = %q,\n", p.Color(models.RoleForeground))
	fmt.Fprintf(&b, "  background = %q,\n", p.Color(models.RoleBackground))
	fmt.Fprintf(&b, "  cursor_bg = %q,\n", p.Color(models.RoleCursor))
	fmt.Fprintf(&b, "  cursor_fg = %q,\n", p.Color(models.RoleBackground))
	fmt.Fprintf(&b, "  cursor_border = %q,\n", p.Color(models.RoleCursor))
	fmt.Fprintf(&b, "  selection_bg = %q,\n", p.Color(models.RoleSelection))
	fmt.Fprintf(&b, "  selection_fg = %q,\n", p.Color(models.RoleForeground))
	fmt.Fprintf(&b, "  split = %q,\n", p.Color(models.RoleBorder))
	fmt.Fprintf(&b, "  compose_cursor = %q,\n", p.Color(models.RoleAccent))

	b.WriteString("  ansi = {\n")
	for _, role := range models.AnsiRoles[:8] {
		fmt.Fprintf(&b, "    %q,\n", p.Color(role))
	}
	b.WriteString("  },\n")

	b.WriteString("  brights = {\n")
	for _, role := range models.AnsiRoles[8:] {
		fmt.Fprintf(&b, "    %q,\n", p.Color(role))
	}
	b.WriteString("  },\n")

	b.WriteString("}\n")
	return b.String(), nil
}

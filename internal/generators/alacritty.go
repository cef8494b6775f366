package generators

import (
	"fmt"
	"strings"

	"github.com/tingeapp/tinge/internal/models"
)

// alacrittyGenerator emits an Alacritty colors TOML fragment.
type alacrittyGenerator struct{}

func (alacrittyGenerator) Format() Format   { return FormatAlacritty }
func (alacrittyGenerator) Filename() string { return "alacritty.toml" }

func (alacrittyGenerator) Generate(p models.Palette, meta models.ThemeMetadata) (string, error) {
	if err := requireComplete(p); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(header("#", meta.Name))

	fmt.Fprintf(&b, "\n[colors.primary]\n")
	fmt.Fprintf(&b, "background = %q\n", p.Color(models.RoleBackground))
	fmt.Fprintf(&b, "foreground = %q\n", p.Color(models.RoleForeground))

	fmt.Fprintf(&b, "\n[colors.cursor]\n")
	fmt.Fprintf(&b, "text = %q\n", p.Color(models.RoleBackground))
	fmt.Fprintf(&b, "cursor = %q\n", p.Color(models.RoleCursor))

	fmt.Fprintf(&b, "\n[colors.selection]\n")
	fmt.Fprintf(&b, "text = %q\n", p.Color(models.RoleForeground))
	fmt.Fprintf(&b, "background = %q\n", p.Color(models.RoleSelection))

	normal := []models.Role{
		models.RoleBlack, models.RoleRed, models.RoleGreen, models.RoleYellow,
		models.RoleBlue, models.RoleMagenta, models.RoleCyan, models.RoleWhite,
	}
	bright := []models.Role{
		models.RoleBrightBlack, models.RoleBrightRed, models.RoleBrightGreen, models.RoleBrightYellow,
		models.RoleBrightBlue, models.RoleBrightMagenta, models.RoleBrightCyan, models.RoleBrightWhite,
	}
	names := []string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

	fmt.Fprintf(&b, "\n[colors.normal]\n")
	for i, role := range normal {
		fmt.Fprintf(&b, "%s = %q\n", names[i], p.Color(role))
	}

	fmt.Fprintf(&b, "\n[colors.bright]\n")
	for i, role := range bright {
		fmt.Fprintf(&b, "%s = %q\n", names[i], p.Color(role))
	}

	return b.String(), nil
}

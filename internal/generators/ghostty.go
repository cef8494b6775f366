package generators

import (
	"fmt"
	"strings"

	"github.com/tingeapp/tinge/internal/models"
)

// ghosttyGenerator emits a Ghostty theme file (key = value lines).
type ghosttyGenerator struct{}

func (ghosttyGenerator) Format() Format   { return FormatGhostty }
func (ghosttyGenerator) Filename() string { return "ghostty" }

func (ghosttyGenerator) Generate(p models.Palette, meta models.ThemeMetadata) (string, error) {
	if err := requireComplete(p); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(header("#", meta.Name))
	b.WriteString("\n")

	fmt.Fprintf(&b, "background = %s\n", p.Color(models.RoleBackground))
	fmt.Fprintf(&b, "foreground = %s\n", p.Color(models.RoleForeground))
	fmt.Fprintf(&b, "cursor-color = %s\n", p.Color(models.RoleCursor))
	fmt.Fprintf(&b, "cursor-text = %s\n", p.Color(models.RoleBackground))
	fmt.Fprintf(&b, "selection-background = %s\n", p.Color(models.RoleSelection))
	fmt.Fprintf(&b, "selection-foreground = %s\n", p.Color(models.RoleForeground))
	fmt.Fprintf(&b, "split-divider-color = %s\n", p.Color(models.RoleBorder))
	b.WriteString("\n")

	for i, role := range models.AnsiRoles {
		fmt.Fprintf(&b, "palette = %d=%s\n", i, p.Color(role))
	}

	return b.String(), nil
}

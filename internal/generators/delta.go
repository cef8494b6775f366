package generators

import (
	"fmt"
	"strings"

	"github.com/tingeapp/tinge/internal/models"
)

// deltaGenerator emits a git-delta pager section in gitconfig syntax, meant
// for inclusion via git's include.path.
type deltaGenerator struct{}

func (deltaGenerator) Format() Format   { return FormatDelta }
func (deltaGenerator) Filename() string { return "delta.gitconfig" }

func (deltaGenerator) Generate(p models.Palette, meta models.ThemeMetadata) (string, error) {
	if err := requireComplete(p); err != nil {
		return "", err
	}

	light := "false"
	if meta.IsLight {
		light = "true"
	}

	var b strings.Builder
	b.WriteString(header("#", meta.Name))
	b.WriteString("\n[delta]\n")

	entries := []struct {
		key   string
		value string
	}{
		{"light", light},
		{"minus-style", fmt.Sprintf("%s %s", p.Color(models.RoleForeground), p.Color(models.RoleRed))},
		{"minus-emph-style", fmt.Sprintf("%s bold %s", p.Color(models.RoleBackground), p.Color(models.RoleBrightRed))},
		{"plus-style", fmt.Sprintf("%s %s", p.Color(models.RoleForeground), p.Color(models.RoleGreen))},
		{"plus-emph-style", fmt.Sprintf("%s bold %s", p.Color(models.RoleBackground), p.Color(models.RoleBrightGreen))},
		{"zero-style", p.Color(models.RoleForeground)},
		{"line-numbers-zero-style", p.Color(models.RoleBrightBlack)},
		{"line-numbers-minus-style", p.Color(models.RoleRed)},
		{"line-numbers-plus-style", p.Color(models.RoleGreen)},
		{"file-style", "bold " + p.Color(models.RoleAccent)},
		{"file-decoration-style", "ul " + p.Color(models.RoleBorder)},
		{"hunk-header-style", p.Color(models.RoleYellow)},
		{"hunk-header-decoration-style", "box " + p.Color(models.RoleBorder)},
	}

	for _, e := range entries {
		fmt.Fprintf(&b, "\t%s = %s\n", e.key, e.value)
	}

	return b.String(), nil
}

package generators

import (
	"fmt"
	"strings"

	"github.com/tingeapp/tinge/internal/models"
)

// fishGenerator emits a fish shell theme. Fish color variables take bare hex
// digits without the leading '#'.
type fishGenerator struct{}

func (fishGenerator) Format() Format   { return FormatFish }
func (fishGenerator) Filename() string { return "fish.theme" }

func (fishGenerator) Generate(p models.Palette, meta models.ThemeMetadata) (string, error) {
	if err := requireComplete(p); err != nil {
		return "", err
	}

	bare := func(role models.Role) string {
		return strings.TrimPrefix(p.Color(role), "#")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# name: %s\n", meta.Name)
	b.WriteString("# Generated by tinge; do not edit by hand.\n\n")

	vars := []struct {
		name  string
		value string
	}{
		{"fish_color_normal", bare(models.RoleForeground)},
		{"fish_color_command", bare(models.RoleGreen)},
		{"fish_color_keyword", bare(models.RoleMagenta)},
		{"fish_color_quote", bare(models.RoleYellow)},
		{"fish_color_redirection", bare(models.RoleBrightMagenta)},
		{"fish_color_end", bare(models.RoleBrightBlack)},
		{"fish_color_error", bare(models.RoleRed)},
		{"fish_color_param", bare(models.RoleCyan)},
		{"fish_color_comment", bare(models.RoleBrightBlack)},
		{"fish_color_selection", "--background=" + bare(models.RoleSelection)},
		{"fish_color_operator", bare(models.RoleAccent)},
		{"fish_color_escape", bare(models.RoleBrightCyan)},
		{"fish_color_autosuggestion", bare(models.RoleBrightBlack)},
		{"fish_color_cancel", bare(models.RoleRed)},
		{"fish_color_search_match", "--background=" + bare(models.RoleSelection)},
		{"fish_pager_color_progress", bare(models.RoleBrightBlack)},
		{"fish_pager_color_prefix", bare(models.RoleAccent)},
		{"fish_pager_color_completion", bare(models.RoleForeground)},
		{"fish_pager_color_description", bare(models.RoleBrightBlack)},
		{"fish_pager_color_selected_background", "--background=" + bare(models.RoleSelection)},
	}

	for _, v := range vars {
		fmt.Fprintf(&b, "set -g %s %s\n", v.name, v.value)
	}

	return b.String(), nil
}

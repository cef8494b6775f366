package generators

import (
	"fmt"
	"strings"

	"github.com/tingeapp/tinge/internal/models"
)

// zshSyntaxGenerator emits a zsh-syntax-highlighting style palette.
type zshSyntaxGenerator struct{}

func (zshSyntaxGenerator) Format() Format   { return FormatZshSyntax }
func (zshSyntaxGenerator) Filename() string { return "zsh-syntax-highlighting.zsh" }

func (zshSyntaxGenerator) Generate(p models.Palette, meta models.ThemeMetadata) (string, error) {
	if err := requireComplete(p); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(header("#", meta.Name))
	b.WriteString("\ntypeset -A ZSH_HIGHLIGHT_STYLES\n\n")

	styles := []struct {
		key   string
		style string
	}{
		{"default", "fg=" + p.Color(models.RoleForeground)},
		{"unknown-token", "fg=" + p.Color(models.RoleRed)},
		{"reserved-word", "fg=" + p.Color(models.RoleMagenta)},
		{"command", "fg=" + p.Color(models.RoleGreen)},
		{"builtin", "fg=" + p.Color(models.RoleGreen)},
		{"function", "fg=" + p.Color(models.RoleBlue)},
		{"alias", "fg=" + p.Color(models.RoleGreen)},
		{"precommand", "fg=" + p.Color(models.RoleGreen) + ",underline"},
		{"commandseparator", "fg=" + p.Color(models.RoleBrightBlack)},
		{"path", "fg=" + p.Color(models.RoleCyan)},
		{"globbing", "fg=" + p.Color(models.RoleYellow)},
		{"history-expansion", "fg=" + p.Color(models.RoleMagenta)},
		{"single-quoted-argument", "fg=" + p.Color(models.RoleYellow)},
		{"double-quoted-argument", "fg=" + p.Color(models.RoleYellow)},
		{"dollar-double-quoted-argument", "fg=" + p.Color(models.RoleAccent)},
		{"redirection", "fg=" + p.Color(models.RoleBrightMagenta)},
		{"comment", "fg=" + p.Color(models.RoleBrightBlack)},
		{"cursor", "fg=" + p.Color(models.RoleCursor)},
	}

	for _, s := range styles {
		fmt.Fprintf(&b, "ZSH_HIGHLIGHT_STYLES[%s]='%s'\n", s.key, s.style)
	}

	return b.String(), nil
}

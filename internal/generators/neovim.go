package generators

import (
	"fmt"
	"strings"

	"github.com/tingeapp/tinge/internal/models"
)

// neovimGenerator emits a Neovim colorscheme module in Lua. The module
// exposes the raw palette and an apply() that sets terminal colors and a
// small set of core highlight groups.
type neovimGenerator struct{}

func (neovimGenerator) Format() Format   { return FormatNeovim }
func (neovimGenerator) Filename() string { return "neovim.lua" }

func (neovimGenerator) Generate(p models.Palette, meta models.ThemeMetadata) (string, error) {
	if err := requireComplete(p); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(header("--", meta.Name))
	b.WriteString("\nlocal M = {}\n\nM.palette = {\n")

	for _, role := range models.Roles {
		fmt.Fprintf(&b, "  %s = %q,\n", luaKey(role), p.Color(role))
	}
	b.WriteString("}\n")

	background := "dark"
	if meta.IsLight {
		background = "light"
	}

	b.WriteString("\nfunction M.apply()\n")
	fmt.Fprintf(&b, "  vim.o.background = %q\n", background)
	for i, role := range models.AnsiRoles {
		fmt.Fprintf(&b, "  vim.g.terminal_color_%d = %q\n", i, p.Color(role))
	}
	fmt.Fprintf(&b, "  vim.api.nvim_set_hl(0, \"Normal\", { fg = %q, bg = %q })\n",
		p.Color(models.RoleForeground), p.Color(models.RoleBackground))
	fmt.Fprintf(&b, "  vim.api.nvim_set_hl(0, \"Cursor\", { fg = %q, bg = %q })\n",
		p.Color(models.RoleBackground), p.Color(models.RoleCursor))
	fmt.Fprintf(&b, "  vim.api.nvim_set_hl(0, \"Visual\", { bg = %q })\n",
		p.Color(models.RoleSelection))
	fmt.Fprintf(&b, "  vim.api.nvim_set_hl(0, \"WinSeparator\", { fg = %q })\n",
		p.Color(models.RoleBorder))
	fmt.Fprintf(&b, "  vim.api.nvim_set_hl(0, \"Keyword\", { fg = %q })\n",
		p.Color(models.RoleMagenta))
	fmt.Fprintf(&b, "  vim.api.nvim_set_hl(0, \"String\", { fg = %q })\n",
		p.Color(models.RoleGreen))
	fmt.Fprintf(&b, "  vim.api.nvim_set_hl(0, \"Function\", { fg = %q })\n",
		p.Color(models.RoleBlue))
	fmt.Fprintf(&b, "  vim.api.nvim_set_hl(0, \"Comment\", { fg = %q, italic = true })\n",
		p.Color(models.RoleBrightBlack))
	fmt.Fprintf(&b, "  vim.api.nvim_set_hl(0, \"ErrorMsg\", { fg = %q })\n",
		p.Color(models.RoleRed))
	fmt.Fprintf(&b, "  vim.api.nvim_set_hl(0, \"WarningMsg\", { fg = %q })\n",
		p.Color(models.RoleYellow))
	b.WriteString("end\n\nreturn M\n")

	return b.String(), nil
}

// luaKey maps palette role names onto snake_case Lua table keys.
func luaKey(role models.Role) string {
	var out []rune
	for _, r := range string(role) {
		if r >= 'A' && r <= 'Z' {
			out = append(out, '_', r+('a'-'A'))
			continue
		}
		out = append(out, r)
	}
	return string(out)
}

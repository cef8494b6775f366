package generators

import (
	"encoding/json"
	"fmt"

	"github.com/tingeapp/tinge/internal/models"
)

// vscodeGenerator emits a VS Code color theme document. The JSON encoder
// sorts map keys, so output is deterministic for a fixed palette.
type vscodeGenerator struct{}

func (vscodeGenerator) Format() Format   { return FormatVSCode }
func (vscodeGenerator) Filename() string { return "vscode.json" }

// vscodeTheme mirrors the subset of the VS Code theme schema tinge fills in.
type vscodeTheme struct {
	Name   string            `json:"name"`
	Type   string            `json:"type"`
	Colors map[string]string `json:"colors"`
}

func (vscodeGenerator) Generate(p models.Palette, meta models.ThemeMetadata) (string, error) {
	if err := requireComplete(p); err != nil {
		return "", err
	}

	kind := "dark"
	if meta.IsLight {
		kind = "light"
	}

	doc := vscodeTheme{
		Name: meta.Name,
		Type: kind,
		Colors: map[string]string{
			"editor.background":                p.Color(models.RoleBackground),
			"editor.foreground":                p.Color(models.RoleForeground),
			"editorCursor.foreground":          p.Color(models.RoleCursor),
			"editor.selectionBackground":       p.Color(models.RoleSelection),
			"focusBorder":                      p.Color(models.RoleAccent),
			"panel.border":                     p.Color(models.RoleBorder),
			"sideBar.border":                   p.Color(models.RoleBorder),
			"activityBarBadge.background":      p.Color(models.RoleAccent),
			"statusBar.background":             p.Color(models.RoleBorder),
			"statusBar.foreground":             p.Color(models.RoleForeground),
			"terminal.background":              p.Color(models.RoleBackground),
			"terminal.foreground":              p.Color(models.RoleForeground),
			"terminal.ansiBlack":               p.Color(models.RoleBlack),
			"terminal.ansiRed":                 p.Color(models.RoleRed),
			"terminal.ansiGreen":               p.Color(models.RoleGreen),
			"terminal.ansiYellow":              p.Color(models.RoleYellow),
			"terminal.ansiBlue":                p.Color(models.RoleBlue),
			"terminal.ansiMagenta":             p.Color(models.RoleMagenta),
			"terminal.ansiCyan":                p.Color(models.RoleCyan),
			"terminal.ansiWhite":               p.Color(models.RoleWhite),
			"terminal.ansiBrightBlack":         p.Color(models.RoleBrightBlack),
			"terminal.ansiBrightRed":           p.Color(models.RoleBrightRed),
			"terminal.ansiBrightGreen":         p.Color(models.RoleBrightGreen),
			"terminal.ansiBrightYellow":        p.Color(models.RoleBrightYellow),
			"terminal.ansiBrightBlue":          p.Color(models.RoleBrightBlue),
			"terminal.ansiBrightMagenta":       p.Color(models.RoleBrightMagenta),
			"terminal.ansiBrightCyan":          p.Color(models.RoleBrightCyan),
			"terminal.ansiBrightWhite":         p.Color(models.RoleBrightWhite),
			"terminalCursor.foreground":        p.Color(models.RoleCursor),
			"terminal.selectionBackground":     p.Color(models.RoleSelection),
		},
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding vscode theme: %w", err)
	}
	return string(out) + "\n", nil
}

// Package generators maps a validated palette onto the native config-file
// syntax of each supported application. Every generator is a pure function of
// (palette, metadata): no filesystem, clock, or cross-generator dependencies,
// so repeated calls produce byte-identical output.
package generators

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tingeapp/tinge/internal/models"
)

// Format identifies one target application config format.
type Format string

// The closed set of supported formats.
const (
	FormatAlacritty Format = "alacritty"
	FormatKitty     Format = "kitty"
	FormatGhostty   Format = "ghostty"
	FormatWezterm   Format = "wezterm"
	FormatNeovim    Format = "neovim"
	FormatHelix     Format = "helix"
	FormatVSCode    Format = "vscode"
	FormatZshSyntax Format = "zsh-syntax"
	FormatFish      Format = "fish"
	FormatStarship  Format = "starship"
	FormatDelta     Format = "delta"
	FormatRaycast   Format = "raycast"
)

// Generator produces one application's config file from a palette.
type Generator interface {
	// Format returns the format identifier.
	Format() Format

	// Filename returns the file name written into a theme directory.
	Filename() string

	// Generate renders the config text. It fails only with
	// models.ErrIncompleteTheme when handed a palette missing roles.
	Generate(p models.Palette, meta models.ThemeMetadata) (string, error)
}

// registry holds every generator in stable output order.
var registry = []Generator{
	alacrittyGenerator{},
	kittyGenerator{},
	ghosttyGenerator{},
	weztermGenerator{},
	neovimGenerator{},
	helixGenerator{},
	vscodeGenerator{},
	zshSyntaxGenerator{},
	fishGenerator{},
	starshipGenerator{},
	deltaGenerator{},
	raycastGenerator{},
}

// All returns every generator in stable order.
func All() []Generator {
	out := make([]Generator, len(registry))
	copy(out, registry)
	return out
}

// ByFormat returns the generator for a format id.
func ByFormat(f Format) (Generator, bool) {
	for _, g := range registry {
		if g.Format() == f {
			return g, true
		}
	}
	return nil, false
}

// requireComplete guards against palettes that bypassed validation.
func requireComplete(p models.Palette) error {
	for _, role := range models.Roles {
		if p[role] == "" {
			return fmt.Errorf("%w: %s", models.ErrIncompleteTheme, role)
		}
	}
	return nil
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// slug converts a display name into an identifier-safe token.
func slug(name string) string {
	s := slugRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "theme"
	}
	return s
}

// header renders the shared generated-file banner with the given comment lead.
func header(lead, name string) string {
	return fmt.Sprintf("%s %s\n%s Generated by tinge; do not edit by hand.\n", lead, name, lead)
}

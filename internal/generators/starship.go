package generators

import (
	"fmt"
	"strings"

	"github.com/tingeapp/tinge/internal/models"
)

// starshipGenerator emits a Starship prompt palette in TOML.
type starshipGenerator struct{}

func (starshipGenerator) Format() Format   { return FormatStarship }
func (starshipGenerator) Filename() string { return "starship.toml" }

func (starshipGenerator) Generate(p models.Palette, meta models.ThemeMetadata) (string, error) {
	if err := requireComplete(p); err != nil {
		return "", err
	}

	name := slug(meta.Name)

	var b strings.Builder
	b.WriteString(header("#", meta.Name))
	b.WriteString("\n")
	fmt.Fprintf(&b, "palette = %q\n", name)
	fmt.Fprintf(&b, "\n[palettes.%s]\n", name)
	for _, role := range models.Roles {
		fmt.Fprintf(&b, "%s = %q\n", role, p.Color(role))
	}

	return b.String(), nil
}

package generators

import (
	"encoding/json"
	"fmt"

	"github.com/tingeapp/tinge/internal/models"
)

// raycastGenerator emits a Raycast launcher theme JSON document.
type raycastGenerator struct{}

func (raycastGenerator) Format() Format   { return FormatRaycast }
func (raycastGenerator) Filename() string { return "raycast.json" }

// raycastTheme mirrors the Raycast theme schema.
type raycastTheme struct {
	Schema     string            `json:"$schema"`
	Version    string            `json:"version"`
	Name       string            `json:"name"`
	Author     string            `json:"author,omitempty"`
	Appearance string            `json:"appearance"`
	Colors     map[string]string `json:"colors"`
}

func (raycastGenerator) Generate(p models.Palette, meta models.ThemeMetadata) (string, error) {
	if err := requireComplete(p); err != nil {
		return "", err
	}

	appearance := "dark"
	if meta.IsLight {
		appearance = "light"
	}

	doc := raycastTheme{
		Schema:     "https://www.raycast.com/schemas/theme.json",
		Version:    "1",
		Name:       meta.Name,
		Author:     meta.Author,
		Appearance: appearance,
		Colors: map[string]string{
			"background":          p.Color(models.RoleBackground),
			"backgroundSecondary": p.Color(models.RoleBorder),
			"text":                p.Color(models.RoleForeground),
			"selection":           p.Color(models.RoleSelection),
			"loader":              p.Color(models.RoleAccent),
			"red":                 p.Color(models.RoleRed),
			"orange":              p.Color(models.RoleBrightYellow),
			"yellow":              p.Color(models.RoleYellow),
			"green":               p.Color(models.RoleGreen),
			"blue":                p.Color(models.RoleBlue),
			"purple":              p.Color(models.RoleBrightMagenta),
			"magenta":             p.Color(models.RoleMagenta),
		},
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding raycast theme: %w", err)
	}
	return string(out) + "\n", nil
}

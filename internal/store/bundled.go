package store

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tingeapp/tinge/internal/models"
)

//go:embed bundled.yaml
var bundledManifest []byte

// bundledTheme is one entry of the embedded bundled-themes manifest.
type bundledTheme struct {
	Name        string            `yaml:"name"`
	Author      string            `yaml:"author"`
	Description string            `yaml:"description"`
	Version     string            `yaml:"version"`
	Light       bool              `yaml:"light"`
	Palette     map[string]string `yaml:"palette"`
}

type bundledCatalog struct {
	Themes []bundledTheme `yaml:"themes"`
}

// EnsureBundled materializes the embedded bundled themes into the bundled
// root. Existing theme directories are left untouched so a fresh release can
// add themes without clobbering anything a user has poked at.
func (s *Store) EnsureBundled(ctx context.Context) error {
	var catalog bundledCatalog
	if err := yaml.Unmarshal(bundledManifest, &catalog); err != nil {
		return fmt.Errorf("parsing bundled theme manifest: %w", err)
	}

	for _, entry := range catalog.Themes {
		if err := ctx.Err(); err != nil {
			return err
		}

		palette, err := models.ParsePalette(entry.Palette)
		if err != nil {
			return fmt.Errorf("bundled theme %q: %w", entry.Name, err)
		}
		meta := models.ThemeMetadata{
			Name:        entry.Name,
			Author:      entry.Author,
			Description: entry.Description,
			Version:     entry.Version,
			IsLight:     entry.Light,
			Palette:     palette,
		}

		id := ThemeID(meta.Name)
		dir := filepath.Join(s.bundledRoot, id)
		if _, err := os.Stat(filepath.Join(dir, models.ThemeFile)); err == nil {
			continue
		}

		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating bundled theme directory: %w", err)
		}
		if err := s.writeContents(dir, meta); err != nil {
			os.RemoveAll(dir)
			return fmt.Errorf("seeding bundled theme %q: %w", entry.Name, err)
		}
		s.logger.Debug("bundled theme seeded", slog.String("theme", id))
	}
	return nil
}

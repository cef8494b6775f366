// Package store manages the on-disk theme catalog: a bundled root, read-only
// by convention, and a custom root holding user-authored and imported themes.
// The store owns each theme directory's structural layout; the generated file
// contents are owned by the generators and derived solely from the palette.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tingeapp/tinge/internal/generators"
	"github.com/tingeapp/tinge/internal/models"
)

// Store provides CRUD over the theme catalog.
type Store struct {
	bundledRoot string
	customRoot  string
	logger      *slog.Logger
}

// New creates a store over the two theme roots.
func New(bundledRoot, customRoot string) *Store {
	return &Store{
		bundledRoot: bundledRoot,
		customRoot:  customRoot,
		logger:      slog.Default(),
	}
}

// WithLogger sets a custom logger.
func (s *Store) WithLogger(logger *slog.Logger) *Store {
	s.logger = logger
	return s
}

// CustomRoot returns the custom themes root directory.
func (s *Store) CustomRoot() string {
	return s.customRoot
}

var idRe = regexp.MustCompile(`[^a-z0-9]+`)

// ThemeID derives the directory name for a display name.
func ThemeID(name string) string {
	id := idRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(norm.NFC.String(name))), "-")
	return strings.Trim(id, "-")
}

// List enumerates every theme found across both roots, sorted bundled first,
// each root in directory order. Dot-prefixed directories (update staging) and
// directories without a parseable theme.json are skipped silently: a
// partially-written theme must not break enumeration.
func (s *Store) List(ctx context.Context) ([]models.Theme, error) {
	var out []models.Theme
	for _, root := range []struct {
		dir    string
		source models.ThemeSource
	}{
		{s.bundledRoot, models.ThemeSourceBundled},
		{s.customRoot, models.ThemeSourceCustom},
	} {
		entries, err := os.ReadDir(root.dir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("reading %s themes root: %w", root.source, err)
		}
		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			theme, err := s.read(filepath.Join(root.dir, entry.Name()), entry.Name(), root.source)
			if err != nil {
				s.logger.Debug("skipping unreadable theme directory",
					slog.String("dir", entry.Name()),
					slog.String("error", err.Error()))
				continue
			}
			out = append(out, *theme)
		}
	}
	return out, nil
}

// Get returns one theme by id. Custom themes shadow bundled ones.
func (s *Store) Get(ctx context.Context, id string) (*models.Theme, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if theme, err := s.read(filepath.Join(s.customRoot, id), id, models.ThemeSourceCustom); err == nil {
		return theme, nil
	}
	if theme, err := s.read(filepath.Join(s.bundledRoot, id), id, models.ThemeSourceBundled); err == nil {
		return theme, nil
	}
	return nil, fmt.Errorf("%w: %s", models.ErrThemeNotFound, id)
}

// Dir returns the directory a theme lives in.
func (s *Store) Dir(t *models.Theme) string {
	if t.Source == models.ThemeSourceBundled {
		return filepath.Join(s.bundledRoot, t.ID)
	}
	return filepath.Join(s.customRoot, t.ID)
}

// Create validates metadata, runs every generator, and writes a new custom
// theme directory. If any write fails the whole directory is removed; a
// half-written theme is never visible to List.
func (s *Store) Create(ctx context.Context, meta models.ThemeMetadata) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := meta.Validate(); err != nil {
		return "", err
	}

	id := ThemeID(meta.Name)
	if id == "" {
		return "", models.ErrNameRequired
	}
	if taken, err := s.nameTaken(meta.Name, id); err != nil {
		return "", err
	} else if taken {
		return "", fmt.Errorf("%w: %s", models.ErrDuplicateName, meta.Name)
	}

	dir := filepath.Join(s.customRoot, id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating theme directory: %w", err)
	}

	if err := s.writeContents(dir, meta); err != nil {
		os.RemoveAll(dir)
		return "", err
	}

	s.logger.Info("theme created",
		slog.String("theme", id),
		slog.Bool("light", meta.IsLight))
	return id, nil
}

// Update re-runs the generation pipeline for an existing custom theme.
// New contents are staged in a sibling directory and swapped in with two
// renames, so a failed generator or write never leaves the theme directory
// holding a mix of old and new files. Bundled themes are protected.
func (s *Store) Update(ctx context.Context, id string, meta models.ThemeMetadata) error {
	theme, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !theme.IsCustom() {
		return fmt.Errorf("%w: %s", models.ErrProtectedTheme, id)
	}
	if err := meta.Validate(); err != nil {
		return err
	}

	dir := s.Dir(theme)
	staging := filepath.Join(s.customRoot, "."+id+".staging")
	if err := os.RemoveAll(staging); err != nil {
		return fmt.Errorf("clearing staging directory: %w", err)
	}
	if err := os.MkdirAll(staging, 0o755); err != nil {
		return fmt.Errorf("creating staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	if err := s.writeContents(staging, meta); err != nil {
		return err
	}

	wallpapers := filepath.Join(dir, models.WallpapersDir)
	if _, err := os.Stat(wallpapers); err == nil {
		if err := copyDir(wallpapers, filepath.Join(staging, models.WallpapersDir)); err != nil {
			return fmt.Errorf("copying wallpapers: %w", err)
		}
	}

	old := filepath.Join(s.customRoot, "."+id+".old")
	if err := os.RemoveAll(old); err != nil {
		return fmt.Errorf("clearing swap directory: %w", err)
	}
	if err := os.Rename(dir, old); err != nil {
		return fmt.Errorf("staging theme swap: %w", err)
	}
	if err := os.Rename(staging, dir); err != nil {
		os.Rename(old, dir)
		return fmt.Errorf("swapping in updated theme: %w", err)
	}
	os.RemoveAll(old)

	s.logger.Info("theme updated", slog.String("theme", id))
	return nil
}

// Delete removes a custom theme directory. Bundled themes and the currently
// active theme are protected.
func (s *Store) Delete(ctx context.Context, id, activeID string) error {
	theme, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !theme.IsCustom() {
		return fmt.Errorf("%w: %s", models.ErrProtectedTheme, id)
	}
	if id == activeID {
		return fmt.Errorf("%w: %s", models.ErrThemeInUse, id)
	}

	if err := os.RemoveAll(s.Dir(theme)); err != nil {
		return fmt.Errorf("removing theme directory: %w", err)
	}
	s.logger.Info("theme deleted", slog.String("theme", id))
	return nil
}

// Duplicate creates a new custom theme with newName and the source theme's
// palette and appearance, copying any wallpapers along.
func (s *Store) Duplicate(ctx context.Context, id, newName string) (string, error) {
	src, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}

	meta := src.ThemeMetadata
	meta.Name = newName
	newID, err := s.Create(ctx, meta)
	if err != nil {
		return "", err
	}

	srcWallpapers := filepath.Join(s.Dir(src), models.WallpapersDir)
	if _, err := os.Stat(srcWallpapers); err == nil {
		dest := filepath.Join(s.customRoot, newID, models.WallpapersDir)
		if err := copyDir(srcWallpapers, dest); err != nil {
			os.RemoveAll(filepath.Join(s.customRoot, newID))
			return "", fmt.Errorf("copying wallpapers: %w", err)
		}
	}
	return newID, nil
}

// read loads one theme directory; a missing or corrupt theme.json is an error
// handled by the caller.
func (s *Store) read(dir, id string, source models.ThemeSource) (*models.Theme, error) {
	data, err := os.ReadFile(filepath.Join(dir, models.ThemeFile))
	if err != nil {
		return nil, err
	}
	var meta models.ThemeMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", models.ThemeFile, err)
	}

	// theme.json predating the isLight field: fall back to marker presence.
	if !meta.IsLight {
		if _, err := os.Stat(filepath.Join(dir, models.LightMarkerFile)); err == nil {
			meta.IsLight = true
		}
	}

	return &models.Theme{ID: id, ThemeMetadata: meta, Source: source}, nil
}

// nameTaken reports whether a custom theme already claims the name or id.
// Names compare case-insensitively after NFC normalization.
func (s *Store) nameTaken(name, id string) (bool, error) {
	want := strings.ToLower(norm.NFC.String(strings.TrimSpace(name)))

	entries, err := os.ReadDir(s.customRoot)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("reading custom themes root: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if entry.Name() == id {
			return true, nil
		}
		theme, err := s.read(filepath.Join(s.customRoot, entry.Name()), entry.Name(), models.ThemeSourceCustom)
		if err != nil {
			continue
		}
		if strings.ToLower(norm.NFC.String(theme.Name)) == want {
			return true, nil
		}
	}
	return false, nil
}

// writeContents writes theme.json, every generated file, and the light
// marker into dir. Callers handle rollback.
func (s *Store) writeContents(dir string, meta models.ThemeMetadata) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding theme metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, models.ThemeFile), append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", models.ThemeFile, err)
	}

	for _, g := range generators.All() {
		content, err := g.Generate(meta.Palette, meta)
		if err != nil {
			return fmt.Errorf("generating %s: %w", g.Format(), err)
		}
		if err := os.WriteFile(filepath.Join(dir, g.Filename()), []byte(content), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", g.Filename(), err)
		}
	}

	marker := filepath.Join(dir, models.LightMarkerFile)
	if meta.IsLight {
		if err := os.WriteFile(marker, nil, 0o644); err != nil {
			return fmt.Errorf("writing light marker: %w", err)
		}
	} else if err := os.Remove(marker); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing light marker: %w", err)
	}

	return nil
}

// copyDir copies a directory tree. Symlinks are not followed; theme
// directories contain only regular files.
func copyDir(src, dest string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

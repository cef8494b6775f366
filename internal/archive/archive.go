// Package archive packages themes into portable .mactheme archives and
// validates and installs archives back into the theme store. An archive is a
// gzip tarball whose root holds one directory per theme, openable by any
// standard archive tool.
package archive

import (
	"archive/tar"
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/ulikunitz/xz"

	"github.com/tingeapp/tinge/internal/httpclient"
	"github.com/tingeapp/tinge/internal/models"
	"github.com/tingeapp/tinge/internal/store"
)

// Extension is the conventional archive file extension.
const Extension = ".mactheme"

// maxSuffix bounds the collision-rename search.
const maxSuffix = 100

// Packager wraps the theme store with export/import.
type Packager struct {
	themes *store.Store
	client *httpclient.Client
	logger *slog.Logger
}

// NewPackager creates a packager over the store. client may be nil if
// ImportFromURL is never used.
func NewPackager(themes *store.Store, client *httpclient.Client) *Packager {
	return &Packager{
		themes: themes,
		client: client,
		logger: slog.Default(),
	}
}

// WithLogger sets a custom logger.
func (p *Packager) WithLogger(logger *slog.Logger) *Packager {
	p.logger = logger
	return p
}

// Export writes the full directories of the given themes into w as a gzip
// tarball, one top-level entry per theme directory name.
func (p *Packager) Export(ctx context.Context, ids []string, w io.Writer) error {
	gz := gzip.NewWriter(w)
	tw := tar.NewWriter(gz)

	for _, id := range ids {
		theme, err := p.themes.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := p.addTree(tw, p.themes.Dir(theme), theme.ID); err != nil {
			return fmt.Errorf("packaging theme %s: %w", id, err)
		}
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("finalizing archive: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("finalizing compression: %w", err)
	}
	return nil
}

func (p *Packager) addTree(tw *tar.Writer, dir, prefix string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		name := prefix
		if rel != "." {
			name = prefix + "/" + filepath.ToSlash(rel)
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = name
		if d.IsDir() {
			hdr.Name += "/"
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(tw, f)
		return err
	})
}

// Import validates the archive in r and installs its theme into the custom
// store. Exactly one top-level directory containing a parseable theme.json is
// required. A name collision with an existing custom theme is resolved by
// appending an incrementing numeric suffix. The scratch extraction directory
// is removed on every path.
func (p *Packager) Import(ctx context.Context, r io.Reader) (string, error) {
	scratch := filepath.Join(os.TempDir(), "tinge-import-"+uuid.NewString())
	if err := os.MkdirAll(scratch, 0o755); err != nil {
		return "", fmt.Errorf("creating scratch directory: %w", err)
	}
	defer os.RemoveAll(scratch)

	root, err := p.extract(r, scratch)
	if err != nil {
		return "", err
	}

	meta, err := readMetadata(filepath.Join(scratch, root))
	if err != nil {
		return "", err
	}

	id, err := p.install(ctx, *meta)
	if err != nil {
		return "", err
	}

	srcWallpapers := filepath.Join(scratch, root, models.WallpapersDir)
	if _, err := os.Stat(srcWallpapers); err == nil {
		dest := filepath.Join(p.themes.CustomRoot(), id, models.WallpapersDir)
		if err := copyTree(srcWallpapers, dest); err != nil {
			p.logger.Warn("importing wallpapers failed",
				slog.String("theme", id),
				slog.String("error", err.Error()))
		}
	}

	p.logger.Info("theme imported", slog.String("theme", id))
	return id, nil
}

// ImportFromURL downloads an archive and delegates to Import. Only http and
// https URLs are accepted; a zero-length download is rejected.
func (p *Packager) ImportFromURL(ctx context.Context, rawURL string) (string, error) {
	if err := httpclient.ValidateURL(rawURL); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp("", "tinge-download-*"+Extension)
	if err != nil {
		return "", fmt.Errorf("creating download file: %w", err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	n, err := p.client.Download(ctx, rawURL, tmp)
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", fmt.Errorf("%w: %s", models.ErrEmptyDownload, rawURL)
	}

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewinding download: %w", err)
	}
	return p.Import(ctx, tmp)
}

// extract unpacks the archive into scratch and returns the single top-level
// directory name. The input may be a gzip, bzip2, or xz compressed tarball,
// or a bare tar stream; compression is detected by magic bytes.
func (p *Packager) extract(r io.Reader, scratch string) (string, error) {
	decoded, err := sniffCompression(r)
	if err != nil {
		return "", err
	}

	tr := tar.NewReader(decoded)
	topLevel := map[string]bool{}
	entries := 0

	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%w: unreadable tar stream: %v", models.ErrInvalidArchive, err)
		}

		name := filepath.Clean(filepath.FromSlash(hdr.Name))
		if name == "." {
			continue
		}
		if strings.HasPrefix(name, "..") || filepath.IsAbs(name) {
			return "", fmt.Errorf("%w: entry escapes archive root: %s", models.ErrInvalidArchive, hdr.Name)
		}
		entries++
		topLevel[strings.SplitN(filepath.ToSlash(name), "/", 2)[0]] = true

		dest := filepath.Join(scratch, name)
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return "", fmt.Errorf("extracting directory: %w", err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
				return "", fmt.Errorf("extracting: %w", err)
			}
			if err := writeEntry(dest, tr); err != nil {
				return "", fmt.Errorf("extracting %s: %w", hdr.Name, err)
			}
		default:
			// Symlinks and specials have no business in a theme archive.
			return "", fmt.Errorf("%w: unsupported entry type %d for %s", models.ErrInvalidArchive, hdr.Typeflag, hdr.Name)
		}
	}

	if entries == 0 {
		return "", fmt.Errorf("%w: archive is empty", models.ErrInvalidArchive)
	}
	if len(topLevel) != 1 {
		return "", fmt.Errorf("%w: expected exactly one top-level directory, found %d", models.ErrInvalidArchive, len(topLevel))
	}

	var root string
	for name := range topLevel {
		root = name
	}
	info, err := os.Stat(filepath.Join(scratch, root))
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: top-level entry %q is not a directory", models.ErrInvalidArchive, root)
	}
	return root, nil
}

// readMetadata parses and re-validates the extracted theme.json.
func readMetadata(dir string) (*models.ThemeMetadata, error) {
	data, err := os.ReadFile(filepath.Join(dir, models.ThemeFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: missing %s", models.ErrInvalidArchive, models.ThemeFile)
		}
		return nil, fmt.Errorf("reading %s: %w", models.ThemeFile, err)
	}

	var meta models.ThemeMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%w: corrupted %s: %v", models.ErrInvalidArchive, models.ThemeFile, err)
	}

	// The palette came from outside; run it through full validation.
	candidate := make(map[string]string, len(meta.Palette))
	for role, value := range meta.Palette {
		candidate[string(role)] = value
	}
	palette, err := models.ParsePalette(candidate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidArchive, err)
	}
	meta.Palette = palette

	// Archives written before the isLight field carry only the marker.
	if !meta.IsLight {
		if _, err := os.Stat(filepath.Join(dir, models.LightMarkerFile)); err == nil {
			meta.IsLight = true
		}
	}

	if err := meta.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidArchive, err)
	}
	return &meta, nil
}

// install creates the theme, renaming with an incrementing numeric suffix on
// name collision rather than failing or overwriting.
func (p *Packager) install(ctx context.Context, meta models.ThemeMetadata) (string, error) {
	base := meta.Name
	for n := 1; n <= maxSuffix; n++ {
		if n > 1 {
			meta.Name = fmt.Sprintf("%s %d", base, n)
		}
		id, err := p.themes.Create(ctx, meta)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, models.ErrDuplicateName) {
			return "", err
		}
	}
	return "", fmt.Errorf("%w: %s", models.ErrDuplicateName, base)
}

// Magic prefixes for supported compression containers.
var (
	gzipMagic  = []byte{0x1f, 0x8b}
	bzip2Magic = []byte{'B', 'Z', 'h'}
	xzMagic    = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
)

// sniffCompression wraps r with the matching decompressor, or returns it
// unchanged for a bare tar stream.
func sniffCompression(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(6)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unreadable input: %v", models.ErrInvalidArchive, err)
	}

	switch {
	case bytes.HasPrefix(head, gzipMagic):
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("%w: corrupt gzip stream: %v", models.ErrInvalidArchive, err)
		}
		return gz, nil
	case bytes.HasPrefix(head, bzip2Magic):
		return bzip2.NewReader(br), nil
	case bytes.HasPrefix(head, xzMagic):
		xr, err := xz.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("%w: corrupt xz stream: %v", models.ErrInvalidArchive, err)
		}
		return xr, nil
	default:
		return br, nil
	}
}

func writeEntry(dest string, r io.Reader) error {
	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func copyTree(src, dest string) error {
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
		in, err := os.Open(path)
		if err != nil {
			return err
		}
		defer in.Close()
		out, err := os.Create(target)
		if err != nil {
			return err
		}
		if _, err := io.Copy(out, in); err != nil {
			out.Close()
			return err
		}
		return out.Close()
	})
}

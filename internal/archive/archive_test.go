package archive

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	dbzip2 "github.com/dsnet/compress/bzip2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"

	"github.com/tingeapp/tinge/internal/httpclient"
	"github.com/tingeapp/tinge/internal/models"
	"github.com/tingeapp/tinge/internal/store"
)

func testPalette() models.Palette {
	p := models.Palette{}
	for i, role := range models.Roles {
		p[role] = rgbHex(10+i*3, 20+i*2, 30+i)
	}
	return p
}

func rgbHex(r, g, b int) string {
	const digits = "0123456789abcdef"
	out := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range []int{r, g, b} {
		out[1+i*2] = digits[v>>4]
		out[2+i*2] = digits[v&0xf]
	}
	return string(out)
}

func testMetadata(name string) models.ThemeMetadata {
	return models.ThemeMetadata{
		Name:    name,
		Author:  "archive test",
		Palette: testPalette(),
	}
}

func newFixture(t *testing.T) (*Packager, *store.Store) {
	t.Helper()
	root := t.TempDir()
	themes := store.New(filepath.Join(root, "bundled"), filepath.Join(root, "custom"))
	return NewPackager(themes, httpclient.New(httpclient.Config{})), themes
}

// tarEntry is a flat description used to hand-build archives in tests.
type tarEntry struct {
	name string
	body string
	dir  bool
}

func buildTar(t *testing.T, w io.Writer, entries []tarEntry) {
	t.Helper()
	tw := tar.NewWriter(w)
	for _, e := range entries {
		hdr := &tar.Header{Name: e.name, Mode: 0o644, Size: int64(len(e.body))}
		if e.dir {
			hdr.Typeflag = tar.TypeDir
			hdr.Mode = 0o755
		}
		require.NoError(t, tw.WriteHeader(hdr))
		if !e.dir {
			_, err := tw.Write([]byte(e.body))
			require.NoError(t, err)
		}
	}
	require.NoError(t, tw.Close())
}

func themeEntries(t *testing.T, dir string, meta models.ThemeMetadata) []tarEntry {
	t.Helper()
	data, err := json.Marshal(meta)
	require.NoError(t, err)
	return []tarEntry{
		{name: dir + "/", dir: true},
		{name: dir + "/" + models.ThemeFile, body: string(data)},
		{name: dir + "/alacritty.toml", body: "# placeholder\n"},
	}
}

func gzipTarball(t *testing.T, entries []tarEntry) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	buildTar(t, gz, entries)
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

func TestExportImport_RoundTrip(t *testing.T) {
	pkg, themes := newFixture(t)
	ctx := context.Background()

	meta := testMetadata("Round Trip")
	meta.IsLight = true
	id, err := themes.Create(ctx, meta)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, pkg.Export(ctx, []string{id}, &buf))

	// Re-import into a fresh store.
	pkg2, themes2 := newFixture(t)
	importedID, err := pkg2.Import(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, id, importedID)

	got, err := themes2.Get(ctx, importedID)
	require.NoError(t, err)
	assert.Equal(t, meta.Name, got.Name)
	assert.True(t, got.IsLight)
	assert.Equal(t, meta.Palette, got.Palette)
}

func TestImport_SniffsCompression(t *testing.T) {
	ctx := context.Background()
	entries := themeEntries(t, "sniffed", testMetadata("Sniffed"))

	var plain bytes.Buffer
	buildTar(t, &plain, entries)

	var bz bytes.Buffer
	bw, err := dbzip2.NewWriter(&bz, &dbzip2.WriterConfig{Level: dbzip2.DefaultCompression})
	require.NoError(t, err)
	buildTar(t, bw, entries)
	require.NoError(t, bw.Close())

	var xzBuf bytes.Buffer
	xw, err := xz.NewWriter(&xzBuf)
	require.NoError(t, err)
	buildTar(t, xw, entries)
	require.NoError(t, xw.Close())

	cases := []struct {
		name string
		data []byte
	}{
		{"gzip", gzipTarball(t, entries)},
		{"plain tar", plain.Bytes()},
		{"bzip2", bz.Bytes()},
		{"xz", xzBuf.Bytes()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pkg, themes := newFixture(t)
			id, err := pkg.Import(ctx, bytes.NewReader(tc.data))
			require.NoError(t, err)
			got, err := themes.Get(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, "Sniffed", got.Name)
		})
	}
}

func TestImport_InvalidArchives(t *testing.T) {
	ctx := context.Background()
	meta := testMetadata("Broken")
	metaJSON, err := json.Marshal(meta)
	require.NoError(t, err)

	cases := []struct {
		name    string
		entries []tarEntry
		msg     string
	}{
		{
			name:    "empty archive",
			entries: nil,
			msg:     "empty",
		},
		{
			name: "multiple top-level directories",
			entries: append(themeEntries(t, "one", meta),
				themeEntries(t, "two", meta)...),
			msg: "one top-level",
		},
		{
			name: "root is a file",
			entries: []tarEntry{
				{name: "loose-file.txt", body: "not a theme"},
			},
			msg: "not a directory",
		},
		{
			name: "missing theme manifest",
			entries: []tarEntry{
				{name: "bare/", dir: true},
				{name: "bare/readme.txt", body: "nothing here"},
			},
			msg: models.ThemeFile,
		},
		{
			name: "corrupt theme manifest",
			entries: []tarEntry{
				{name: "corrupt/", dir: true},
				{name: "corrupt/" + models.ThemeFile, body: "{not json"},
			},
			msg: "corrupted",
		},
		{
			name: "path traversal",
			entries: []tarEntry{
				{name: "../escape/" + models.ThemeFile, body: string(metaJSON)},
			},
			msg: "escapes",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pkg, themes := newFixture(t)
			_, err := pkg.Import(ctx, bytes.NewReader(gzipTarball(t, tc.entries)))
			require.Error(t, err)
			assert.ErrorIs(t, err, models.ErrInvalidArchive)
			assert.Contains(t, err.Error(), tc.msg)

			// Nothing may leak into the store on a failed import.
			list, err := themes.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, list)
		})
	}
}

func TestImport_InvalidPaletteRejected(t *testing.T) {
	pkg, _ := newFixture(t)
	meta := testMetadata("Bad Palette")
	meta.Palette[models.RoleBackground] = "#zzzzzz"

	_, err := pkg.Import(context.Background(),
		bytes.NewReader(gzipTarball(t, themeEntries(t, "bad", meta))))
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidArchive)
}

func TestImport_NameCollisionSuffix(t *testing.T) {
	pkg, themes := newFixture(t)
	ctx := context.Background()
	meta := testMetadata("Taken")

	_, err := themes.Create(ctx, meta)
	require.NoError(t, err)

	id2, err := pkg.Import(ctx, bytes.NewReader(gzipTarball(t, themeEntries(t, "taken", meta))))
	require.NoError(t, err)
	got2, err := themes.Get(ctx, id2)
	require.NoError(t, err)
	assert.Equal(t, "Taken 2", got2.Name)

	id3, err := pkg.Import(ctx, bytes.NewReader(gzipTarball(t, themeEntries(t, "taken", meta))))
	require.NoError(t, err)
	got3, err := themes.Get(ctx, id3)
	require.NoError(t, err)
	assert.Equal(t, "Taken 3", got3.Name)
}

func TestImport_LightMarkerBackCompat(t *testing.T) {
	pkg, themes := newFixture(t)
	meta := testMetadata("Legacy Light")
	entries := themeEntries(t, "legacy", meta)
	entries = append(entries, tarEntry{name: "legacy/" + models.LightMarkerFile, body: ""})

	id, err := pkg.Import(context.Background(), bytes.NewReader(gzipTarball(t, entries)))
	require.NoError(t, err)

	got, err := themes.Get(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, got.IsLight)
}

func TestImport_CarriesWallpapers(t *testing.T) {
	pkg, themes := newFixture(t)
	meta := testMetadata("Wallpapered")
	entries := themeEntries(t, "wallpapered", meta)
	entries = append(entries,
		tarEntry{name: "wallpapered/" + models.WallpapersDir + "/", dir: true},
		tarEntry{name: "wallpapered/" + models.WallpapersDir + "/dawn.png", body: "fake png"},
	)

	id, err := pkg.Import(context.Background(), bytes.NewReader(gzipTarball(t, entries)))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(themes.CustomRoot(), id, models.WallpapersDir, "dawn.png"))
	require.NoError(t, err)
	assert.Equal(t, "fake png", string(data))
}

func TestImportFromURL(t *testing.T) {
	ctx := context.Background()
	archiveBytes := gzipTarball(t, themeEntries(t, "remote", testMetadata("Remote")))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(archiveBytes)
	}))
	defer srv.Close()

	pkg, themes := newFixture(t)
	id, err := pkg.ImportFromURL(ctx, srv.URL)
	require.NoError(t, err)

	got, err := themes.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Remote", got.Name)
}

func TestImportFromURL_EmptyDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	pkg, _ := newFixture(t)
	_, err := pkg.ImportFromURL(context.Background(), srv.URL)
	assert.ErrorIs(t, err, models.ErrEmptyDownload)
}

func TestImportFromURL_RejectsScheme(t *testing.T) {
	pkg, _ := newFixture(t)
	_, err := pkg.ImportFromURL(context.Background(), "file:///etc/passwd")
	assert.ErrorIs(t, err, models.ErrUnsupportedScheme)
}

package generators

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tingeapp/tinge/internal/models"
)

func testPalette(t *testing.T) models.Palette {
	t.Helper()
	values := map[string]string{
		"background": "#1e1e2e", "foreground": "#cdd6f4", "cursor": "#f5e0dc",
		"selection": "#585b70", "accent": "#89b4fa", "border": "#313244",
		"black": "#45475a", "red": "#f38ba8", "green": "#a6e3a1", "yellow": "#f9e2af",
		"blue": "#8aadf4", "magenta": "#f5c2e7", "cyan": "#94e2d5", "white": "#bac2de",
		"brightBlack": "#585b70", "brightRed": "#f37799", "brightGreen": "#89d88b",
		"brightYellow": "#ebd391", "brightBlue": "#74a8fc", "brightMagenta": "#f2aede",
		"brightCyan": "#6bd7ca", "brightWhite": "#a6adc8",
	}
	p, err := models.ParsePalette(values)
	require.NoError(t, err)
	return p
}

func testMeta() models.ThemeMetadata {
	return models.ThemeMetadata{
		Name:    "Midnight Harbor",
		Author:  "tinge tests",
		Version: "1.0.0",
	}
}

func TestRegistry(t *testing.T) {
	all := All()
	assert.Len(t, all, 12)

	seenFormats := map[Format]bool{}
	seenFiles := map[string]bool{}
	for _, g := range all {
		assert.False(t, seenFormats[g.Format()], "duplicate format %s", g.Format())
		assert.False(t, seenFiles[g.Filename()], "duplicate filename %s", g.Filename())
		seenFormats[g.Format()] = true
		seenFiles[g.Filename()] = true
	}

	g, ok := ByFormat(FormatKitty)
	require.True(t, ok)
	assert.Equal(t, "kitty.conf", g.Filename())

	_, ok = ByFormat(Format("iterm"))
	assert.False(t, ok)
}

func TestGenerators_DeterministicAndComplete(t *testing.T) {
	p := testPalette(t)
	meta := testMeta()

	for _, g := range All() {
		t.Run(string(g.Format()), func(t *testing.T) {
			first, err := g.Generate(p, meta)
			require.NoError(t, err)
			second, err := g.Generate(p, meta)
			require.NoError(t, err)
			assert.Equal(t, first, second, "output must be byte-identical across calls")

			// Every generator embeds the foreground verbatim in canonical
			// lowercase form (fish uses bare hex digits).
			if g.Format() == FormatFish {
				assert.Contains(t, first, "cdd6f4")
			} else {
				assert.Contains(t, first, "#cdd6f4")
			}
			assert.NotContains(t, first, "CDD6F4", "hex casing policy is lowercase")
		})
	}
}

func TestGenerators_IncompletePalette(t *testing.T) {
	p := testPalette(t)
	delete(p, models.RoleCursor)

	for _, g := range All() {
		_, err := g.Generate(p, testMeta())
		assert.ErrorIs(t, err, models.ErrIncompleteTheme, "format %s", g.Format())
	}
}

func TestAlacritty(t *testing.T) {
	g, _ := ByFormat(FormatAlacritty)
	out, err := g.Generate(testPalette(t), testMeta())
	require.NoError(t, err)

	assert.Contains(t, out, "[colors.primary]")
	assert.Contains(t, out, "[colors.normal]")
	assert.Contains(t, out, "[colors.bright]")
	assert.Contains(t, out, `background = "#1e1e2e"`)
	assert.Contains(t, out, `black = "#45475a"`)
}

func TestKitty(t *testing.T) {
	g, _ := ByFormat(FormatKitty)
	out, err := g.Generate(testPalette(t), testMeta())
	require.NoError(t, err)

	for i := 0; i < 16; i++ {
		assert.Contains(t, out, fmt.Sprintf("color%d #", i))
	}
	assert.Contains(t, out, "foreground #cdd6f4")
	assert.Contains(t, out, "selection_background #585b70")
}

func TestGhostty(t *testing.T) {
	g, _ := ByFormat(FormatGhostty)
	out, err := g.Generate(testPalette(t), testMeta())
	require.NoError(t, err)

	assert.Contains(t, out, "palette = 0=#45475a")
	assert.Contains(t, out, "palette = 15=#a6adc8")
	assert.Contains(t, out, "cursor-color = #f5e0dc")
}

func TestWezterm(t *testing.T) {
	g, _ := ByFormat(FormatWezterm)
	out, err := g.Generate(testPalette(t), testMeta())
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "}"))
	assert.Contains(t, out, "return {")
	assert.Contains(t, out, "ansi = {")
	assert.Contains(t, out, "brights = {")
}

func TestNeovim(t *testing.T) {
	g, _ := ByFormat(FormatNeovim)
	out, err := g.Generate(testPalette(t), testMeta())
	require.NoError(t, err)

	assert.Contains(t, out, "local M = {}")
	assert.Contains(t, out, "vim.g.terminal_color_0 = \"#45475a\"")
	assert.Contains(t, out, "vim.g.terminal_color_15 = \"#a6adc8\"")
	assert.Contains(t, out, "bright_black = \"#585b70\"")
	assert.Contains(t, out, `vim.o.background = "dark"`)

	light := testMeta()
	light.IsLight = true
	out, err = g.Generate(testPalette(t), light)
	require.NoError(t, err)
	assert.Contains(t, out, `vim.o.background = "light"`)
}

func TestHelix(t *testing.T) {
	g, _ := ByFormat(FormatHelix)
	out, err := g.Generate(testPalette(t), testMeta())
	require.NoError(t, err)

	assert.Contains(t, out, "[palette]")
	assert.Contains(t, out, `"ui.background" = { bg = "background" }`)
	for _, role := range models.Roles {
		assert.Contains(t, out, string(role)+" = ")
	}
}

func TestVSCode(t *testing.T) {
	g, _ := ByFormat(FormatVSCode)
	out, err := g.Generate(testPalette(t), testMeta())
	require.NoError(t, err)

	var doc struct {
		Name   string            `json:"name"`
		Type   string            `json:"type"`
		Colors map[string]string `json:"colors"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "Midnight Harbor", doc.Name)
	assert.Equal(t, "dark", doc.Type)
	assert.Equal(t, "#1e1e2e", doc.Colors["editor.background"])
	assert.Equal(t, "#f38ba8", doc.Colors["terminal.ansiRed"])
}

func TestZshSyntax(t *testing.T) {
	g, _ := ByFormat(FormatZshSyntax)
	out, err := g.Generate(testPalette(t), testMeta())
	require.NoError(t, err)

	assert.Contains(t, out, "typeset -A ZSH_HIGHLIGHT_STYLES")
	assert.Contains(t, out, "ZSH_HIGHLIGHT_STYLES[command]='fg=#a6e3a1'")
	assert.Contains(t, out, "ZSH_HIGHLIGHT_STYLES[unknown-token]='fg=#f38ba8'")
}

func TestFish(t *testing.T) {
	g, _ := ByFormat(FormatFish)
	out, err := g.Generate(testPalette(t), testMeta())
	require.NoError(t, err)

	assert.Contains(t, out, "# name: Midnight Harbor")
	assert.Contains(t, out, "set -g fish_color_normal cdd6f4")
	assert.Contains(t, out, "set -g fish_color_selection --background=585b70")
	assert.NotContains(t, out, "fish_color_normal #", "fish colors are bare hex")
}

func TestStarship(t *testing.T) {
	g, _ := ByFormat(FormatStarship)
	out, err := g.Generate(testPalette(t), testMeta())
	require.NoError(t, err)

	assert.Contains(t, out, `palette = "midnight-harbor"`)
	assert.Contains(t, out, "[palettes.midnight-harbor]")
	assert.Contains(t, out, `accent = "#89b4fa"`)
}

func TestDelta(t *testing.T) {
	g, _ := ByFormat(FormatDelta)
	out, err := g.Generate(testPalette(t), testMeta())
	require.NoError(t, err)

	assert.Contains(t, out, "[delta]")
	assert.Contains(t, out, "light = false")
	assert.Contains(t, out, "minus-style = #cdd6f4 #f38ba8")

	light := testMeta()
	light.IsLight = true
	out, err = g.Generate(testPalette(t), light)
	require.NoError(t, err)
	assert.Contains(t, out, "light = true")
}

func TestRaycast(t *testing.T) {
	g, _ := ByFormat(FormatRaycast)
	out, err := g.Generate(testPalette(t), testMeta())
	require.NoError(t, err)

	var doc struct {
		Name       string            `json:"name"`
		Appearance string            `json:"appearance"`
		Colors     map[string]string `json:"colors"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "Midnight Harbor", doc.Name)
	assert.Equal(t, "dark", doc.Appearance)
	assert.Equal(t, "#89b4fa", doc.Colors["loader"])
}

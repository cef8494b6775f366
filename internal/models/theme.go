// Package models defines the core data types for tinge: palettes, theme
// metadata, persisted switch state, and the apply history record.
package models

import (
	"strings"
	"time"
)

// ThemeSource indicates where a theme comes from.
type ThemeSource string

const (
	// ThemeSourceBundled indicates a theme shipped with tinge, read-only by convention.
	ThemeSourceBundled ThemeSource = "bundled"
	// ThemeSourceCustom indicates a user-authored or imported theme.
	ThemeSourceCustom ThemeSource = "custom"
)

// LightMarkerFile is the zero-byte marker whose presence flags a light theme.
// IsLight on ThemeMetadata is the source of truth; the marker is emitted for
// collaborators that only test file presence.
const LightMarkerFile = "light.mode"

// ThemeFile is the metadata file name inside every theme directory.
const ThemeFile = "theme.json"

// WallpapersDir is the optional wallpaper subdirectory inside a theme directory.
const WallpapersDir = "wallpapers"

// ThemeMetadata describes a theme independent of its on-disk location.
type ThemeMetadata struct {
	// Name is the display name, unique within the custom store.
	Name string `json:"name"`

	// Author credits the theme creator.
	Author string `json:"author,omitempty"`

	// Description provides additional context about the theme.
	Description string `json:"description,omitempty"`

	// Version is a free-form version string.
	Version string `json:"version,omitempty"`

	// IsLight marks a light-appearance variant.
	IsLight bool `json:"isLight,omitempty"`

	// Palette holds the 22 canonical colors.
	Palette Palette `json:"palette"`
}

// Validate checks metadata invariants before persistence.
func (m *ThemeMetadata) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrValidation{Field: "name", Err: ErrNameRequired}
	}
	if !m.Palette.Complete() {
		return ErrValidation{Field: "palette", Err: ErrIncompleteTheme}
	}
	return nil
}

// Theme is a stored theme: metadata plus store-derived placement flags.
type Theme struct {
	// ID is the directory name under the store root.
	ID string `json:"id"`

	ThemeMetadata

	// Source indicates which root the theme lives under.
	Source ThemeSource `json:"source"`
}

// IsCustom reports whether the theme may be edited or deleted.
func (t *Theme) IsCustom() bool {
	return t.Source == ThemeSourceCustom
}

// RecencyCap is the maximum length of the recency list.
const RecencyCap = 10

// ActiveThemeState is the small persisted state mutated only by the switcher.
type ActiveThemeState struct {
	// CurrentTheme is the id of the theme the current symlink points at.
	CurrentTheme string `json:"currentTheme"`

	// LastSwitched is the timestamp of the last successful apply.
	LastSwitched time.Time `json:"lastSwitched"`

	// RecencyList holds applied theme ids, most recent first, deduplicated,
	// capped at RecencyCap.
	RecencyList []string `json:"recencyList"`
}

// Touch records a successful apply of id: moves it to the front of the recency
// list, updates the current pointer, and stamps the switch time.
func (s *ActiveThemeState) Touch(id string, at time.Time) {
	s.CurrentTheme = id
	s.LastSwitched = at

	out := make([]string, 0, len(s.RecencyList)+1)
	out = append(out, id)
	for _, existing := range s.RecencyList {
		if existing == id {
			continue
		}
		out = append(out, existing)
	}
	if len(out) > RecencyCap {
		out = out[:RecencyCap]
	}
	s.RecencyList = out
}

package models

import (
	"errors"
	"fmt"
)

// ErrValidation represents a validation error on a named field. It wraps the
// underlying sentinel so errors.Is keeps matching through it.
type ErrValidation struct {
	Field string
	Err   error
}

// Error implements the error interface.
func (e ErrValidation) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Err)
}

// Unwrap exposes the wrapped sentinel.
func (e ErrValidation) Unwrap() error {
	return e.Err
}

// Common errors shared across the theme store, switcher, and archive packager.
var (
	// ErrThemeNotFound indicates the requested theme id does not exist in the store.
	ErrThemeNotFound = errors.New("theme not found")

	// ErrProtectedTheme indicates an attempted mutation of a bundled theme.
	ErrProtectedTheme = errors.New("bundled themes cannot be modified or deleted")

	// ErrThemeInUse indicates an attempted deletion of the currently active theme.
	ErrThemeInUse = errors.New("theme is currently active and cannot be deleted")

	// ErrDuplicateName indicates a custom theme with the same name already exists.
	ErrDuplicateName = errors.New("a theme with this name already exists")

	// ErrNameRequired indicates a required name field is empty.
	ErrNameRequired = errors.New("name is required")

	// ErrMissingRole indicates a required palette role is absent.
	ErrMissingRole = errors.New("missing palette role")

	// ErrEmptyColor indicates a palette role is present but empty.
	ErrEmptyColor = errors.New("empty color value")

	// ErrInvalidHexFormat indicates a color value that is not valid hex, rgb, or hsl notation.
	ErrInvalidHexFormat = errors.New("invalid color format")

	// ErrIncompleteTheme indicates a generator was handed a palette with missing roles.
	// Unreachable for palettes produced by ParsePalette; defended against anyway.
	ErrIncompleteTheme = errors.New("palette is missing required roles")

	// ErrInvalidArchive indicates a theme archive that failed structural validation.
	ErrInvalidArchive = errors.New("invalid theme archive")

	// ErrUnsupportedScheme indicates an import URL with a scheme other than http or https.
	ErrUnsupportedScheme = errors.New("unsupported URL scheme: only http and https are allowed")

	// ErrEmptyDownload indicates a download that completed with zero bytes.
	ErrEmptyDownload = errors.New("downloaded archive is empty")
)

package models

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Role identifies one semantic color slot in a palette.
type Role string

// The closed set of palette roles. Every theme defines all of them.
const (
	RoleBackground    Role = "background"
	RoleForeground    Role = "foreground"
	RoleCursor        Role = "cursor"
	RoleSelection     Role = "selection"
	RoleAccent        Role = "accent"
	RoleBorder        Role = "border"
	RoleBlack         Role = "black"
	RoleRed           Role = "red"
	RoleGreen         Role = "green"
	RoleYellow        Role = "yellow"
	RoleBlue          Role = "blue"
	RoleMagenta       Role = "magenta"
	RoleCyan          Role = "cyan"
	RoleWhite         Role = "white"
	RoleBrightBlack   Role = "brightBlack"
	RoleBrightRed     Role = "brightRed"
	RoleBrightGreen   Role = "brightGreen"
	RoleBrightYellow  Role = "brightYellow"
	RoleBrightBlue    Role = "brightBlue"
	RoleBrightMagenta Role = "brightMagenta"
	RoleBrightCyan    Role = "brightCyan"
	RoleBrightWhite   Role = "brightWhite"
)

// Roles lists every palette role in canonical order.
var Roles = []Role{
	RoleBackground, RoleForeground, RoleCursor, RoleSelection,
	RoleAccent, RoleBorder,
	RoleBlack, RoleRed, RoleGreen, RoleYellow,
	RoleBlue, RoleMagenta, RoleCyan, RoleWhite,
	RoleBrightBlack, RoleBrightRed, RoleBrightGreen, RoleBrightYellow,
	RoleBrightBlue, RoleBrightMagenta, RoleBrightCyan, RoleBrightWhite,
}

// AnsiRoles lists the 16 ANSI roles in terminal slot order (color0..color15).
var AnsiRoles = []Role{
	RoleBlack, RoleRed, RoleGreen, RoleYellow,
	RoleBlue, RoleMagenta, RoleCyan, RoleWhite,
	RoleBrightBlack, RoleBrightRed, RoleBrightGreen, RoleBrightYellow,
	RoleBrightBlue, RoleBrightMagenta, RoleBrightCyan, RoleBrightWhite,
}

// Palette maps every role to a canonical lowercase "#rrggbb" value.
type Palette map[Role]string

// Color returns the canonical hex value for a role, or "" if absent.
func (p Palette) Color(role Role) string {
	return p[role]
}

// Complete reports whether every required role carries a non-empty value.
func (p Palette) Complete() bool {
	for _, role := range Roles {
		if p[role] == "" {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the palette.
func (p Palette) Clone() Palette {
	out := make(Palette, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

var (
	hexRe = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	rgbRe = regexp.MustCompile(`^(?:rgb\(\s*)?(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*\)?$`)
	hslRe = regexp.MustCompile(`^(?:hsl\(\s*)?(\d{1,3}(?:\.\d+)?)\s*,\s*(\d{1,3}(?:\.\d+)?)%\s*,\s*(\d{1,3}(?:\.\d+)?)%\s*\)?$`)
)

// ParseColor normalizes a single color value to canonical lowercase "#rrggbb".
//
// Accepted input forms:
//   - "#rgb" and "#rrggbb" hex, case-insensitive (3-digit expands by doubling)
//   - "r, g, b" or "rgb(r, g, b)" with components 0-255
//   - "h, s%, l%" or "hsl(h, s%, l%)" with h in degrees 0-360, s/l in percent
//
// RGB and HSL inputs are converted through a clamped [0,1] channel space with
// round-half-up on the final 0-255 channel value.
func ParseColor(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", ErrEmptyColor
	}

	if strings.HasPrefix(s, "#") {
		m := hexRe.FindStringSubmatch(s)
		if m == nil {
			return "", fmt.Errorf("%w: %q", ErrInvalidHexFormat, raw)
		}
		hex := strings.ToLower(m[1])
		if len(hex) == 3 {
			hex = fmt.Sprintf("%c%c%c%c%c%c", hex[0], hex[0], hex[1], hex[1], hex[2], hex[2])
		}
		return "#" + hex, nil
	}

	if m := hslRe.FindStringSubmatch(s); m != nil {
		h, _ := strconv.ParseFloat(m[1], 64)
		sat, _ := strconv.ParseFloat(m[2], 64)
		light, _ := strconv.ParseFloat(m[3], 64)
		if h > 360 || sat > 100 || light > 100 {
			return "", fmt.Errorf("%w: %q", ErrInvalidHexFormat, raw)
		}
		c := colorful.Hsl(math.Mod(h, 360), sat/100, light/100)
		return formatChannels(c.R, c.G, c.B), nil
	}

	if m := rgbRe.FindStringSubmatch(s); m != nil {
		r, _ := strconv.Atoi(m[1])
		g, _ := strconv.Atoi(m[2])
		b, _ := strconv.Atoi(m[3])
		if r > 255 || g > 255 || b > 255 {
			return "", fmt.Errorf("%w: %q", ErrInvalidHexFormat, raw)
		}
		return fmt.Sprintf("#%02x%02x%02x", r, g, b), nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidHexFormat, raw)
}

// formatChannels converts [0,1] channels to "#rrggbb" with round-half-up.
func formatChannels(r, g, b float64) string {
	return fmt.Sprintf("#%02x%02x%02x", channel(r), channel(g), channel(b))
}

func channel(v float64) int {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return int(math.Round(v * 255))
}

// ParsePalette validates a candidate role->value mapping and returns the
// canonical palette. Every role in Roles must be present with a parseable
// value; nothing is persisted on failure.
func ParsePalette(candidate map[string]string) (Palette, error) {
	out := make(Palette, len(Roles))
	for _, role := range Roles {
		raw, ok := candidate[string(role)]
		if !ok {
			return nil, ErrValidation{Field: string(role), Err: ErrMissingRole}
		}
		hex, err := ParseColor(raw)
		if err != nil {
			return nil, ErrValidation{Field: string(role), Err: err}
		}
		out[role] = hex
	}
	return out, nil
}

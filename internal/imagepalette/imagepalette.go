// Package imagepalette derives a full theme palette from a wallpaper image.
// The image is downscaled, its colors quantized and ranked by population, and
// the palette roles assigned from the dominant colors: luminance extremes for
// background and foreground, hue proximity for the ANSI slots. The result is
// deterministic for a given image.
package imagepalette

import (
	"fmt"
	"image"
	"io"
	"math"
	"sort"

	// Registered decoders for the supported wallpaper formats.
	_ "image/jpeg"
	_ "image/png"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"

	"github.com/tingeapp/tinge/internal/models"
)

// sampleSize is the side length images are downscaled to before quantizing.
// 64x64 keeps counting cheap while preserving the dominant hues.
const sampleSize = 64

// maxCandidates caps how many ranked colors are considered for role
// assignment.
const maxCandidates = 48

// FromImage decodes a png or jpeg image and derives a complete palette.
func FromImage(r io.Reader) (models.Palette, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	candidates := rankColors(quantize(downscale(img)))
	if len(candidates) == 0 {
		return nil, fmt.Errorf("image has no opaque pixels")
	}
	return assign(candidates), nil
}

// downscale resamples the image so neither side exceeds sampleSize.
func downscale(img image.Image) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= sampleSize && h <= sampleSize {
		return img
	}

	scale := float64(sampleSize) / float64(max(w, h))
	dst := image.NewRGBA(image.Rect(0, 0,
		max(1, int(float64(w)*scale)), max(1, int(float64(h)*scale))))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}

// quantize buckets pixels to 4 bits per channel and counts population.
func quantize(img image.Image) map[uint32]int {
	counts := map[uint32]int{}
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			if a < 0x8000 {
				continue
			}
			key := (r >> 12 << 8) | (g >> 12 << 4) | (b >> 12)
			counts[key]++
		}
	}
	return counts
}

// candidate is one quantized color with its pixel population.
type candidate struct {
	color colorful.Color
	count int
}

// rankColors orders the quantized buckets by population, breaking ties by
// bucket key so the ordering is stable across runs.
func rankColors(counts map[uint32]int) []candidate {
	keys := make([]uint32, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})

	if len(keys) > maxCandidates {
		keys = keys[:maxCandidates]
	}
	out := make([]candidate, 0, len(keys))
	for _, key := range keys {
		// Re-center the 4-bit bucket on its midpoint.
		r := float64(key>>8&0xf)/15.0
		g := float64(key>>4&0xf)/15.0
		b := float64(key&0xf)/15.0
		out = append(out, candidate{color: colorful.Color{R: r, G: g, B: b}, count: counts[key]})
	}
	return out
}

// targetHues are the canonical hue angles for the chromatic ANSI slots.
var targetHues = []struct {
	role models.Role
	hue  float64
}{
	{models.RoleRed, 0},
	{models.RoleYellow, 60},
	{models.RoleGreen, 120},
	{models.RoleCyan, 180},
	{models.RoleBlue, 240},
	{models.RoleMagenta, 300},
}

// assign maps the ranked colors onto the 22 palette roles.
func assign(candidates []candidate) models.Palette {
	darkest, lightest := extremes(candidates)

	// A predominantly light image yields a light theme: background takes
	// the light extreme.
	bg, fg := darkest, lightest
	if meanLuminance(candidates) > 0.5 {
		bg, fg = lightest, darkest
	}

	p := models.Palette{
		models.RoleBackground: hex(bg),
		models.RoleForeground: hex(fg),
		models.RoleCursor:     hex(fg),
		models.RoleSelection:  hex(blend(bg, fg, 0.25)),
		models.RoleBorder:     hex(blend(bg, fg, 0.4)),
	}

	for _, target := range targetHues {
		base := chromatic(candidates, target.hue)
		p[target.role] = hex(base)
		p["bright"+models.Role(titleRole(target.role))] = hex(lighten(base, 0.15))
	}

	// Accent follows the most saturated chromatic pick.
	p[models.RoleAccent] = hex(mostSaturated(candidates, p[models.RoleBlue]))

	p[models.RoleBlack] = hex(lighten(bg, 0.08))
	p[models.RoleBrightBlack] = hex(lighten(bg, 0.2))
	p[models.RoleWhite] = hex(darken(fg, 0.08))
	p[models.RoleBrightWhite] = hex(lighten(fg, 0.08))
	return p
}

func titleRole(role models.Role) string {
	s := string(role)
	return string(s[0]-'a'+'A') + s[1:]
}

// extremes returns the darkest and lightest of the populous colors.
func extremes(candidates []candidate) (darkest, lightest colorful.Color) {
	darkest, lightest = candidates[0].color, candidates[0].color
	minL, maxL := luminance(darkest), luminance(lightest)
	for _, c := range candidates {
		l := luminance(c.color)
		if l < minL {
			minL, darkest = l, c.color
		}
		if l > maxL {
			maxL, lightest = l, c.color
		}
	}
	return darkest, lightest
}

func meanLuminance(candidates []candidate) float64 {
	var sum float64
	var total int
	for _, c := range candidates {
		sum += luminance(c.color) * float64(c.count)
		total += c.count
	}
	if total == 0 {
		return 0
	}
	return sum / float64(total)
}

// chromatic picks the populous color closest to the target hue, requiring
// some saturation so gray pixels never claim a chromatic slot. A synthetic
// color fills slots no image color comes near.
func chromatic(candidates []candidate, targetHue float64) colorful.Color {
	best := colorful.Color{}
	bestDist := math.MaxFloat64
	found := false

	for _, c := range candidates {
		h, s, l := c.color.Hsl()
		if s < 0.25 || l < 0.15 || l > 0.85 {
			continue
		}
		d := hueDistance(h, targetHue)
		if d < bestDist {
			bestDist, best, found = d, c.color, true
		}
	}
	if found && bestDist <= 50 {
		return best
	}
	return colorful.Hsl(targetHue, 0.5, 0.55)
}

func mostSaturated(candidates []candidate, fallback string) colorful.Color {
	best := colorful.Color{}
	bestSat := -1.0
	for _, c := range candidates {
		_, s, l := c.color.Hsl()
		if l < 0.2 || l > 0.8 {
			continue
		}
		if s > bestSat {
			bestSat, best = s, c.color
		}
	}
	if bestSat < 0 {
		best, _ = colorful.Hex(fallback)
	}
	return best
}

func hueDistance(a, b float64) float64 {
	d := math.Abs(a - b)
	if d > 180 {
		d = 360 - d
	}
	return d
}

func luminance(c colorful.Color) float64 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

func blend(a, b colorful.Color, t float64) colorful.Color {
	return a.BlendRgb(b, t).Clamped()
}

func lighten(c colorful.Color, by float64) colorful.Color {
	h, s, l := c.Hsl()
	return colorful.Hsl(h, s, math.Min(1, l+by)).Clamped()
}

func darken(c colorful.Color, by float64) colorful.Color {
	h, s, l := c.Hsl()
	return colorful.Hsl(h, s, math.Max(0, l-by)).Clamped()
}

func hex(c colorful.Color) string {
	return c.Clamped().Hex()
}

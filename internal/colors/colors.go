// Package colors derives the per-template tone palette from a single
// user-chosen accent color.
package colors

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// DefaultAccent is the fallback for missing or unparseable accent values.
const DefaultAccent = "#000000"

// Lighten percentages for the two derived tones.
const (
	subheadingLighten = 20
	tertiaryLighten   = 40
)

// Palette is the fixed 3-tone palette every template consumes: the accent
// itself for section titles, and two progressively lighter tones.
type Palette struct {
	SectionTitle string `json:"sectionTitle"`
	Subheading   string `json:"subheading"`
	Tertiary     string `json:"tertiary"`
}

// paletteCache memoizes derivation per accent value so template re-renders on
// every keystroke do not recompute it.
var paletteCache sync.Map // string -> Palette

// Derive returns the palette for an accent color. Invalid hex input falls
// back to DefaultAccent rather than failing.
func Derive(accent string) Palette {
	if cached, ok := paletteCache.Load(accent); ok {
		return cached.(Palette)
	}

	base := accent
	if _, _, _, err := parseHex(base); err != nil {
		base = DefaultAccent
	}
	p := Palette{
		SectionTitle: normalizeHex(base),
		Subheading:   Lighten(base, subheadingLighten),
		Tertiary:     Lighten(base, tertiaryLighten),
	}
	paletteCache.Store(accent, p)
	return p
}

// Lighten shifts a hex color toward white by percent (0-100), clamping each
// channel at 255. Invalid input lightens the default accent instead.
func Lighten(hex string, percent int) string {
	r, g, b, err := parseHex(hex)
	if err != nil {
		r, g, b = 0, 0, 0
	}
	amt := (255*percent + 50) / 100
	return fmt.Sprintf("#%02x%02x%02x", clamp(r+amt), clamp(g+amt), clamp(b+amt))
}

// Luminance returns the relative luminance (0-1) of a hex color, used to
// verify that derived tones lighten monotonically.
func Luminance(hex string) float64 {
	r, g, b, err := parseHex(hex)
	if err != nil {
		return 0
	}
	return (0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)) / 255
}

func normalizeHex(hex string) string {
	r, g, b, err := parseHex(hex)
	if err != nil {
		return DefaultAccent
	}
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func parseHex(hex string) (r, g, b int, err error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q", hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q", hex)
	}
	return int(v >> 16), int(v >> 8 & 0xff), int(v & 0xff), nil
}

func clamp(v int) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return v
}

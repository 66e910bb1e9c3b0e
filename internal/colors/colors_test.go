package colors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerive_MonotonicLightening(t *testing.T) {
	for _, accent := range []string{"#000000", "#2563eb", "#aa3939", "#0f766e"} {
		p := Derive(accent)
		title := Luminance(p.SectionTitle)
		sub := Luminance(p.Subheading)
		tert := Luminance(p.Tertiary)
		assert.Greater(t, sub, title, "subheading lighter than section title for %s", accent)
		assert.Greater(t, tert, sub, "tertiary lighter than subheading for %s", accent)
	}
}

func TestDerive_AccentIsSectionTitle(t *testing.T) {
	p := Derive("#2563EB")
	assert.Equal(t, "#2563eb", p.SectionTitle)
}

func TestDerive_InvalidHexFallsBack(t *testing.T) {
	for _, bad := range []string{"", "#12", "not-a-color", "#zzzzzz"} {
		p := Derive(bad)
		assert.Equal(t, DefaultAccent, p.SectionTitle, "input %q", bad)
		assert.NotEqual(t, DefaultAccent, p.Subheading)
	}
}

func TestDerive_Memoized(t *testing.T) {
	first := Derive("#123456")
	second := Derive("#123456")
	assert.Equal(t, first, second)

	cached, ok := paletteCache.Load("#123456")
	assert.True(t, ok)
	assert.Equal(t, first, cached.(Palette))
}

func TestLighten(t *testing.T) {
	assert.Equal(t, "#333333", Lighten("#000000", 20))
	assert.Equal(t, "#666666", Lighten("#000000", 40))
	assert.Equal(t, "#ffffff", Lighten("#ffffff", 20), "channels clamp at 255")
	assert.Equal(t, "#ffffff", Lighten("#f0f0f0", 40))
}

func TestLighten_ShortHexExpands(t *testing.T) {
	assert.Equal(t, Lighten("#ffffff", 0), Lighten("#fff", 0))
}

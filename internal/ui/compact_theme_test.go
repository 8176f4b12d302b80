package ui

import (
	"image/color"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
)

func TestCompactTheme_Colors(t *testing.T) {
	th := NewCompactTheme()

	for _, variant := range []fyne.ThemeVariant{theme.VariantLight, theme.VariantDark} {
		assert.Equal(t, color.RGBA{R: 31, G: 111, B: 235, A: 255}, th.Color(theme.ColorNamePrimary, variant))
		assert.Equal(t, color.RGBA{R: 63, G: 185, B: 80, A: 255}, th.Color(theme.ColorNameSuccess, variant))
	}
	assert.Equal(t,
		theme.DefaultTheme().Color(theme.ColorNameBackground, theme.VariantDark),
		th.Color(theme.ColorNameBackground, theme.VariantDark))
}

func TestCompactTheme_Sizes(t *testing.T) {
	th := NewCompactTheme()

	assert.Equal(t, float32(13), th.Size(theme.SizeNameText))
	assert.Equal(t, theme.DefaultTheme().Size(theme.SizeNameInlineIcon), th.Size(theme.SizeNameInlineIcon))
}

package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexToColor(t *testing.T) {
	assert.Equal(t, tcell.NewRGBColor(0x7a, 0xa2, 0xf7), HexToColor("#7aa2f7"))
	assert.Equal(t, tcell.NewRGBColor(0xff, 0xff, 0xff), HexToColor("#fff"))
	assert.Equal(t, tcell.ColorDefault, HexToColor("#12345"))
	assert.Equal(t, tcell.ColorDefault, HexToColor("#zzzzzz"))
}

func TestParseColorString(t *testing.T) {
	assert.Equal(t, tcell.NewRGBColor(10, 20, 30), ParseColorString("rgb(10, 20, 30)"))
	assert.Equal(t, tcell.ColorDefault, ParseColorString("rgb(10, 20)"))
	assert.Equal(t, tcell.ColorDefault, ParseColorString("rgb(300, 20, 30)"))
	assert.Equal(t, tcell.ColorSilver, ParseColorString("Silver"))
}

func TestBlend(t *testing.T) {
	black := tcell.NewRGBColor(0, 0, 0)
	white := tcell.NewRGBColor(255, 255, 255)

	assert.Equal(t, black, Blend(black, white, 0))
	assert.Equal(t, white, Blend(black, white, 1))

	r, g, b := Blend(black, white, 0.5).RGB()
	assert.True(t, r > 0 && r < 255, "expected a mid tone, got %d", r)
	assert.Equal(t, r, g)
	assert.Equal(t, g, b)

	assert.Equal(t, tcell.ColorDefault, Blend(tcell.ColorDefault, white, 0.5))
}

func TestLoadThemeFromFileOverridesTokyoNight(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mine.toml")
	data := `name = "mine"

[colors]
tree_selected_bg = "#ff0000"
tree_header_text = "rgb(0, 255, 0)"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	th, err := LoadThemeFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "mine", th.Name)
	assert.Equal(t, tcell.NewRGBColor(255, 0, 0), th.Colors.TreeSelectedBg)
	assert.Equal(t, tcell.NewRGBColor(0, 255, 0), th.Colors.TreeHeaderText)
	assert.Equal(t, TokyoNight().Colors.TreeChildText, th.Colors.TreeChildText)
}

func TestLoadThemeOrDefault(t *testing.T) {
	assert.Equal(t, "default", LoadThemeOrDefault("default").Name)
	assert.Equal(t, "tokyo-night", LoadThemeOrDefault("does-not-exist").Name)
}

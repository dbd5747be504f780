package ansi

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/arcanum/internal/card"
)

func solid(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestFromImage(t *testing.T) {
	img := solid(8, 8, color.RGBA{R: 200, G: 30, B: 30, A: 255})

	art := FromImage(img, 3, 2, true)
	assert.Equal(t, "▀▀▀\n▀▀▀\n", Strip(art))
	assert.Contains(t, art, "\x1b[38;2;")

	assert.Equal(t, "▀▀▀\n▀▀▀\n", FromImage(img, 3, 2, false))
}

func TestCached(t *testing.T) {
	dir := t.TempDir()
	imagePath := filepath.Join(dir, "the_fool.png")
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solid(16, 16, color.White)))
	require.NoError(t, os.WriteFile(imagePath, buf.Bytes(), 0o644))

	cacheDir := filepath.Join(dir, "cache")
	first, err := Cached(cacheDir, imagePath)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimRight(Strip(first), "\n"), "\n"), Height)

	require.NoError(t, os.Remove(imagePath))
	second, err := Cached(cacheDir, imagePath)
	require.NoError(t, err)
	assert.Equal(t, first, second, "served from the cache")

	_, err = Cached(cacheDir, filepath.Join(dir, "missing.png"))
	require.Error(t, err)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode(strings.NewReader("not an image"), Width, Height)
	require.Error(t, err)
}

func TestWrap(t *testing.T) {
	assert.Equal(t, []string{""}, Wrap("   ", 20))
	assert.Equal(t,
		[]string{"With light step, as", "if earth and its", "trammels had little", "power."},
		Wrap("With light step, as if earth and its trammels had little power.", 20))
	assert.Equal(t, []string{"Con paso ligero y", "alegría."}, Wrap("Con paso ligero y alegría.", 17), "counts runes")
}

func TestSideBySide(t *testing.T) {
	var buf bytes.Buffer
	SideBySide(&buf, "\x1b[31mab\x1b[0m\ncd\n", []string{"Card: The Fool", "ID: ar00", "Type: major"})

	lines := strings.Split(buf.String(), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "  ab    Card: The Fool", Strip(lines[1]))
	assert.Equal(t, "  cd    ID: ar00", lines[2])
	assert.Equal(t, "        Type: major", lines[3])

	buf.Reset()
	SideBySide(&buf, "", []string{"only text"})
	assert.Equal(t, "\n  only text\n\n", buf.String())
}

func TestSymbols(t *testing.T) {
	for _, s := range card.Suits {
		assert.NotEqual(t, "•", SuitSymbol(s))
	}
	assert.Equal(t, "•", SuitSymbol(card.Suit("stars")))
	assert.NotEqual(t, ArcanaSymbol(card.Major), ArcanaSymbol(card.Minor))
}

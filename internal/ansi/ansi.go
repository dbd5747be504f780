// Package ansi renders card images as half-block terminal art and lays the
// art out next to card text.
package ansi

import (
	"crypto/md5"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"

	"github.com/arcanaland/arcanum/internal/card"
)

// Default art size in character cells.
const (
	Width  = 40
	Height = 32
)

// Decode reads an image and renders it at width x height cells.
func Decode(r io.Reader, width, height int) (string, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %v", err)
	}
	return FromImage(img, width, height, true), nil
}

// Cached renders imagePath once and keeps the result in cacheDir, keyed by
// the image path.
func Cached(cacheDir, imagePath string) (string, error) {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create ANSI cache directory: %v", err)
	}

	cachePath := filepath.Join(cacheDir, fmt.Sprintf("%x.ansi", md5.Sum([]byte(imagePath))))
	if data, err := os.ReadFile(cachePath); err == nil {
		return string(data), nil
	}

	file, err := os.Open(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %v", err)
	}
	defer file.Close()

	art, err := Decode(file, Width, Height)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(cachePath, []byte(art), 0644); err != nil {
		return "", fmt.Errorf("failed to write ANSI art to file: %v", err)
	}
	return art, nil
}

// FromImage converts img to rows of upper half blocks: the top pixel pair is
// the foreground and the bottom pair the background of each cell.
func FromImage(img image.Image, width, height int, trueColor bool) string {
	resized := resize.Resize(uint(width*2), uint(height*2), img, resize.Lanczos3)

	var buffer strings.Builder
	for y := 0; y < height*2; y += 2 {
		for x := 0; x < width*2; x += 2 {
			col1, _ := colorful.MakeColor(colorAt(resized, x, y))
			col2, _ := colorful.MakeColor(colorAt(resized, x+1, y))
			col3, _ := colorful.MakeColor(colorAt(resized, x, y+1))
			col4, _ := colorful.MakeColor(colorAt(resized, x+1, y+1))

			fg := toRGBA(average(col1, col2))
			bg := toRGBA(average(col3, col4))
			buffer.WriteString(cell('▀', fg, bg, trueColor))
		}
		buffer.WriteString("\n")
	}
	return buffer.String()
}

func colorAt(img image.Image, x, y int) color.Color {
	if (image.Point{X: x, Y: y}).In(img.Bounds()) {
		return img.At(x, y)
	}
	return color.RGBA{0, 0, 0, 255}
}

func average(colors ...colorful.Color) colorful.Color {
	var r, g, b float64
	for _, c := range colors {
		r += c.R
		g += c.G
		b += c.B
	}
	count := float64(len(colors))
	return colorful.Color{R: r / count, G: g / count, B: b / count}
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func cell(char rune, fg, bg color.RGBA, trueColor bool) string {
	if !trueColor {
		return string(char)
	}
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%c\x1b[0m",
		fg.R, fg.G, fg.B, bg.R, bg.G, bg.B, char)
}

// Strip removes ANSI escape sequences from s.
func Strip(s string) string {
	var result strings.Builder
	inEscape := false
	for _, c := range s {
		if inEscape {
			if c == 'm' {
				inEscape = false
			}
		} else if c == '\033' {
			inEscape = true
		} else {
			result.WriteRune(c)
		}
	}
	return result.String()
}

// Wrap breaks text into lines of at most width runes. Words longer than
// width get a line of their own.
func Wrap(text string, width int) []string {
	if width < 10 {
		width = 40
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var result []string
	var line string
	for _, word := range words {
		switch {
		case line == "":
			line = word
		case len([]rune(line))+1+len([]rune(word)) <= width:
			line += " " + word
		default:
			result = append(result, line)
			line = word
		}
	}
	return append(result, line)
}

// SideBySide prints art on the left and info on the right, padded so info
// starts in the same column on every line.
func SideBySide(w io.Writer, art string, info []string) {
	artLines := strings.Split(strings.TrimRight(art, "\n"), "\n")
	if art == "" {
		artLines = nil
	}
	column := InfoColumn(art)

	fmt.Fprintln(w)
	for i := range max(len(artLines), len(info)) {
		fmt.Fprint(w, "  ")
		if i < len(artLines) {
			fmt.Fprint(w, artLines[i])
			fmt.Fprint(w, strings.Repeat(" ", column-len([]rune(Strip(artLines[i])))))
		} else {
			fmt.Fprint(w, strings.Repeat(" ", column))
		}
		if i < len(info) {
			fmt.Fprint(w, info[i])
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)
}

// InfoColumn is the column SideBySide starts the info text at.
func InfoColumn(art string) int {
	widest := 0
	for _, line := range strings.Split(art, "\n") {
		widest = max(widest, len([]rune(Strip(line))))
	}
	if widest == 0 {
		return 0
	}
	return widest + 4
}

// SuitSymbol returns the Nerd Font glyph of a suit.
func SuitSymbol(s card.Suit) string {
	switch s {
	case card.Wands:
		return "\uef15"
	case card.Cups:
		return "\uedae"
	case card.Swords:
		return "\U000f0787"
	case card.Pentacles:
		return "\U000f1667"
	default:
		return "•"
	}
}

// ArcanaSymbol returns the Nerd Font glyph of an arcana.
func ArcanaSymbol(a card.Arcana) string {
	if a == card.Minor {
		return "\U000f101d"
	}
	return "\uedeb"
}

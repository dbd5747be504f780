package imagery

import (
	"context"
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileName(t *testing.T) {
	assert.Equal(t, "the_fool.jpg", FileName("The Fool"))
	assert.Equal(t, "wheel_of_fortune.jpg", FileName("Wheel  of\tFortune"))
	assert.Equal(t, "/tarot-images/ace_of_wands.jpg", Path("Ace of Wands"))
}

func TestDirChecker(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "the_fool.jpg"), []byte("jpg"), 0o644))
	c := DirChecker{Dir: dir}
	ctx := context.Background()

	assert.True(t, c.Exists(ctx, "The Fool"))
	assert.False(t, c.Exists(ctx, "The Magician"))
	assert.Equal(t, "/tarot-images/the_fool.jpg", Resolve(ctx, c, "The Fool"))
	assert.Equal(t, Placeholder, Resolve(ctx, c, "The Magician"))
	assert.Equal(t, Placeholder, Resolve(ctx, nil, "The Fool"))

	path, err := c.Open("The Fool")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "the_fool.jpg"), path)
	_, err = c.Open("The Magician")
	require.Error(t, err)
}

func TestHTTPChecker(t *testing.T) {
	var methods []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		if r.URL.Path == "/app/tarot-images/the_sun.jpg" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewHTTPChecker(srv.URL + "/app/")
	ctx := context.Background()
	assert.True(t, c.Exists(ctx, "The Sun"))
	assert.False(t, c.Exists(ctx, "The Moon"))
	assert.Equal(t, []string{http.MethodHead, http.MethodHead}, methods)

	unreachable := NewHTTPChecker("http://127.0.0.1:1")
	assert.Equal(t, Placeholder, Resolve(ctx, unreachable, "The Sun"), "transport failures degrade")
}

func TestRWSName(t *testing.T) {
	for scan, want := range map[string]string{
		"RWS1909_-_Cups_01.jpeg":      "ace_of_cups.jpg",
		"RWS1909_-_Cups_12 (1).jpeg":  "knight_of_cups.jpg",
		"RWS1909_-_Pentacles_03.jpeg": "three_of_pentacles.jpg",
		"RWS1909_-_Swords_14.jpg":     "king_of_swords.jpg",
		"RWS1909_-_Wands_11.jpeg":     "page_of_wands.jpg",
	} {
		got, ok := RWSName(scan)
		require.True(t, ok, scan)
		assert.Equal(t, want, got, scan)
	}
	for _, scan := range []string{"RWS1909_-_Cups_15.jpeg", "the_fool.jpg", "RWS1909_-_Stars_01.jpeg"} {
		_, ok := RWSName(scan)
		assert.False(t, ok, scan)
	}
}

func TestRenameRWS(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"RWS1909_-_Cups_12.jpeg", "RWS1909_-_Cups_12 (1).jpeg", "RWS1909_-_Cups_13.jpeg", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644))
	}

	report, err := RenameRWS(dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"RWS1909_-_Cups_12.jpeg", "RWS1909_-_Cups_13.jpeg"}, report.Renamed)
	assert.Equal(t, []string{"RWS1909_-_Cups_12 (1).jpeg"}, report.Skipped)
	assert.Empty(t, report.Failed)

	b, err := os.ReadFile(filepath.Join(dir, "knight_of_cups.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "RWS1909_-_Cups_12.jpeg", string(b))
	assert.FileExists(t, filepath.Join(dir, "queen_of_cups.jpg"))
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))

	_, err = RenameRWS(filepath.Join(dir, "missing"))
	require.Error(t, err)
}

func TestOptimize(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "out")

	large := imaging.New(800, 1000, color.NRGBA{R: 120, G: 40, B: 200, A: 255})
	small := imaging.New(100, 150, color.NRGBA{R: 10, G: 200, B: 90, A: 255})
	require.NoError(t, imaging.Save(large, filepath.Join(src, "the_star.png")))
	require.NoError(t, imaging.Save(small, filepath.Join(src, "the_moon.jpeg")))
	require.NoError(t, os.WriteFile(filepath.Join(src, "readme.md"), []byte("#"), 0o644))

	results, err := Optimize(src, dst)
	require.NoError(t, err)
	require.Len(t, results, 2)

	star, err := imaging.Open(filepath.Join(dst, "the_star.jpg"))
	require.NoError(t, err)
	assert.Equal(t, image.Pt(400, 500), star.Bounds().Size())

	moon, err := imaging.Open(filepath.Join(dst, "the_moon.jpg"))
	require.NoError(t, err)
	assert.Equal(t, image.Pt(100, 150), moon.Bounds().Size(), "never enlarged")

	for _, r := range results {
		assert.Positive(t, r.OutputSize)
	}
}

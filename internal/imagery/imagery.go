// Package imagery maps cards to their image files. Images are keyed by the
// card's English name, never by the displayed one.
package imagery

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arcanaland/arcanum/internal/card"
)

// Prefix is the URL path images are served under.
const Prefix = card.ImagePrefix

// Placeholder is served when a card has no image.
const Placeholder = Prefix + "card_back.jpg"

// FileName returns the image file name for an English card name.
func FileName(nameEn string) string {
	return card.ImageFileName(nameEn)
}

// Path returns the URL path of the image for an English card name.
func Path(nameEn string) string {
	return card.ImagePath(nameEn)
}

// Checker reports whether the image of a card exists. Failures count as
// absent.
type Checker interface {
	Exists(ctx context.Context, nameEn string) bool
}

// Resolve returns the image path for nameEn, or Placeholder when the image
// is missing.
func Resolve(ctx context.Context, c Checker, nameEn string) string {
	if nameEn == "" || c == nil || !c.Exists(ctx, nameEn) {
		return Placeholder
	}
	return Path(nameEn)
}

// HTTPChecker sends a HEAD request for the image below BaseURL.
type HTTPChecker struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPChecker returns a checker with a short client timeout.
func NewHTTPChecker(baseURL string) *HTTPChecker {
	return &HTTPChecker{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (h *HTTPChecker) Exists(ctx context.Context, nameEn string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, h.BaseURL+Path(nameEn), nil)
	if err != nil {
		return false
	}
	resp, err := h.Client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// DirChecker looks for the image file in Dir.
type DirChecker struct {
	Dir string
}

func (d DirChecker) Exists(_ context.Context, nameEn string) bool {
	info, err := os.Stat(filepath.Join(d.Dir, FileName(nameEn)))
	return err == nil && !info.IsDir()
}

// Open returns the local file path of the image, or an error when it is
// missing.
func (d DirChecker) Open(nameEn string) (string, error) {
	path := filepath.Join(d.Dir, FileName(nameEn))
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("no image for %q: %w", nameEn, err)
	}
	return path, nil
}

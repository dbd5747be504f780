package card

import (
	"regexp"
	"strings"
)

// ImagePrefix is the URL path card images are served under.
const ImagePrefix = "/tarot-images/"

var whitespace = regexp.MustCompile(`\s+`)

// ImageFileName returns the image file name for an English card name:
// lowercased, whitespace runs replaced by "_", with a .jpg extension.
func ImageFileName(nameEn string) string {
	return whitespace.ReplaceAllString(strings.ToLower(nameEn), "_") + ".jpg"
}

// ImagePath returns the URL path of the image for an English card name.
func ImagePath(nameEn string) string {
	return ImagePrefix + ImageFileName(nameEn)
}

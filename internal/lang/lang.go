// Package lang holds the supported language codes and the multilingual text
// value every user-facing card and tutorial string is stored as.
package lang

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Code is a two letter language code used as the key of a Text value.
type Code string

const (
	English Code = "en"
	Spanish Code = "es"
)

// Default is the language every stored value must carry.
const Default = English

// Supported lists the languages the catalog is written in, English first.
var Supported = []Code{English, Spanish}

var matcher = language.NewMatcher([]language.Tag{language.English, language.Spanish})

// Parse validates a language code.
func Parse(s string) (Code, error) {
	c := Code(strings.ToLower(strings.TrimSpace(s)))
	for _, supported := range Supported {
		if c == supported {
			return c, nil
		}
	}
	return "", fmt.Errorf("unsupported language: %q", s)
}

// Valid reports whether c is one of the supported languages.
func (c Code) Valid() bool {
	_, err := Parse(string(c))
	return err == nil
}

func (c Code) String() string {
	return string(c)
}

// Negotiate picks the best supported language for the given candidates, in
// priority order. A candidate may be a bare code ("es"), a regional tag
// ("es-MX") or a full Accept-Language header. Falls back to English.
func Negotiate(candidates ...string) Code {
	var nonEmpty []string
	for _, c := range candidates {
		if strings.TrimSpace(c) != "" {
			nonEmpty = append(nonEmpty, c)
		}
	}
	if len(nonEmpty) == 0 {
		return Default
	}

	_, index := language.MatchStrings(matcher, nonEmpty...)
	if index < 0 || index >= len(Supported) {
		return Default
	}
	return Supported[index]
}

// Package tutorial models the bilingual tutorial sections. Each section stores
// one content document per language; a document is picked whole, never
// merged field by field across languages.
package tutorial

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/arcanaland/arcanum/internal/lang"
)

// ErrUnknownSection is returned for section keys outside the known set.
var ErrUnknownSection = errors.New("unknown tutorial section")

// Key identifies a tutorial section.
type Key string

const (
	Overview    Key = "overview"
	MajorArcana Key = "major_arcana"
	MinorArcana Key = "minor_arcana"
	Suits       Key = "suits"
)

// Keys lists the known sections in their default order.
var Keys = []Key{Overview, MajorArcana, MinorArcana, Suits}

// ParseKey validates a section key.
func ParseKey(s string) (Key, error) {
	for _, k := range Keys {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSection, s)
}

// Section is a stored tutorial section.
type Section struct {
	Key        Key                           `json:"section_key"`
	Title      lang.Text                     `json:"title"`
	Content    map[lang.Code]json.RawMessage `json:"content"`
	OrderIndex int                           `json:"order_index"`
	Active     bool                          `json:"is_active"`
}

// View is a section resolved to one language.
type View struct {
	Key     Key     `json:"section_key"`
	Title   string  `json:"title"`
	Content Content `json:"content"`
}

// Resolve picks the title and the content document for l, falling back to
// English for either one when l has none.
func Resolve(s Section, l lang.Code) (View, error) {
	raw := s.Content[l]
	if isEmpty(raw) {
		raw = s.Content[lang.English]
	}
	content, err := Decode(s.Key, raw)
	if err != nil {
		return View{}, err
	}
	return View{
		Key:     s.Key,
		Title:   lang.Resolve(s.Title, l),
		Content: content,
	}, nil
}

// UnmarshalJSON decodes the content into the shape of the section key.
func (v *View) UnmarshalJSON(b []byte) error {
	var raw struct {
		Key     Key             `json:"section_key"`
		Title   string          `json:"title"`
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	content, err := Decode(raw.Key, raw.Content)
	if err != nil {
		return err
	}
	*v = View{Key: raw.Key, Title: raw.Title, Content: content}
	return nil
}

func isEmpty(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// Validate checks that the section key is known, English title and content
// exist, and every stored document decodes into the section's shape.
func (s Section) Validate() error {
	if _, err := ParseKey(string(s.Key)); err != nil {
		return err
	}
	if s.Title[lang.English] == "" {
		return fmt.Errorf("tutorial %s: title.en is required", s.Key)
	}
	if isEmpty(s.Content[lang.English]) {
		return fmt.Errorf("tutorial %s: content.en is required", s.Key)
	}
	for code, raw := range s.Content {
		if !code.Valid() {
			return fmt.Errorf("tutorial %s: unsupported language %q", s.Key, code)
		}
		if isEmpty(raw) {
			continue
		}
		if _, err := Decode(s.Key, raw); err != nil {
			return fmt.Errorf("tutorial %s.%s: %w", s.Key, code, err)
		}
	}
	return nil
}

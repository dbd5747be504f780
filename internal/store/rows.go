package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/arcanaland/arcanum/internal/card"
	"github.com/arcanaland/arcanum/internal/lang"
	"github.com/arcanaland/arcanum/internal/tutorial"
)

// CardRow is the column layout shared by the SQL backends. Multilingual
// fields are JSON objects keyed by language code.
type CardRow struct {
	NameShort   string
	Type        string
	Name        []byte
	Value       []byte
	ValueInt    int
	MeaningUp   []byte
	MeaningRev  []byte
	Description []byte
	Suit        []byte // nil for major arcana
	ImagePath   string
}

// NewCardRow encodes c for storage. c must be valid.
func NewCardRow(c card.Card) (CardRow, error) {
	if err := c.Validate(); err != nil {
		return CardRow{}, err
	}
	row := CardRow{
		NameShort: c.NameShort,
		Type:      string(c.Type),
		ValueInt:  c.ValueInt,
		ImagePath: c.ImagePath,
	}
	var err error
	encode := func(t lang.Text) []byte {
		if err != nil {
			return nil
		}
		var b []byte
		b, err = EncodeText(t)
		return b
	}
	row.Name = encode(c.Name)
	row.Value = encode(c.Value)
	row.MeaningUp = encode(c.MeaningUp)
	row.MeaningRev = encode(c.MeaningRev)
	row.Description = encode(c.Description)
	if len(c.Suit) > 0 {
		row.Suit = encode(c.Suit)
	}
	if err != nil {
		return CardRow{}, fmt.Errorf("encode card %s: %w", c.NameShort, err)
	}
	return row, nil
}

// Card decodes the row.
func (r CardRow) Card() (card.Card, error) {
	c := card.Card{
		NameShort: r.NameShort,
		Type:      card.Arcana(r.Type),
		ValueInt:  r.ValueInt,
		ImagePath: r.ImagePath,
	}
	var err error
	decode := func(b []byte) lang.Text {
		if err != nil {
			return nil
		}
		var t lang.Text
		t, err = DecodeText(b)
		return t
	}
	c.Name = decode(r.Name)
	c.Value = decode(r.Value)
	c.MeaningUp = decode(r.MeaningUp)
	c.MeaningRev = decode(r.MeaningRev)
	c.Description = decode(r.Description)
	c.Suit = decode(r.Suit)
	if err != nil {
		return card.Card{}, fmt.Errorf("decode card %s: %w", r.NameShort, err)
	}
	if len(c.Suit) == 0 {
		c.Suit = nil
	}
	return c, nil
}

// EncodeText marshals t without empty entries.
func EncodeText(t lang.Text) ([]byte, error) {
	return json.Marshal(lang.Merge(nil, t))
}

// DecodeText unmarshals a JSON language object. SQL NULL and JSON null
// decode to nil; null or empty entries are dropped.
func DecodeText(b []byte) (lang.Text, error) {
	if len(b) == 0 || string(b) == "null" {
		return nil, nil
	}
	var raw map[lang.Code]*string
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	t := make(lang.Text, len(raw))
	for k, v := range raw {
		if v != nil && *v != "" {
			t[k] = *v
		}
	}
	return t, nil
}

// SectionRow is the column layout of a tutorial section.
type SectionRow struct {
	Key        string
	Title      []byte
	Content    []byte
	OrderIndex int
	Active     bool
}

// NewSectionRow encodes s for storage.
func NewSectionRow(s tutorial.Section) (SectionRow, error) {
	if err := s.Validate(); err != nil {
		return SectionRow{}, err
	}
	title, err := EncodeText(s.Title)
	if err != nil {
		return SectionRow{}, fmt.Errorf("encode tutorial %s title: %w", s.Key, err)
	}
	content, err := json.Marshal(s.Content)
	if err != nil {
		return SectionRow{}, fmt.Errorf("encode tutorial %s content: %w", s.Key, err)
	}
	return SectionRow{
		Key:        string(s.Key),
		Title:      title,
		Content:    content,
		OrderIndex: s.OrderIndex,
		Active:     s.Active,
	}, nil
}

// Section decodes the row. The key is not validated here so that the
// repository can report unknown sections.
func (r SectionRow) Section() (tutorial.Section, error) {
	title, err := DecodeText(r.Title)
	if err != nil {
		return tutorial.Section{}, fmt.Errorf("decode tutorial %s title: %w", r.Key, err)
	}
	var content map[lang.Code]json.RawMessage
	if len(r.Content) > 0 {
		if err := json.Unmarshal(r.Content, &content); err != nil {
			return tutorial.Section{}, fmt.Errorf("decode tutorial %s content: %w", r.Key, err)
		}
	}
	return tutorial.Section{
		Key:        tutorial.Key(r.Key),
		Title:      title,
		Content:    content,
		OrderIndex: r.OrderIndex,
		Active:     r.Active,
	}, nil
}

// Match reports whether c passes the suit and search filters of q. Type is
// left to the backend query.
func Match(c card.Card, q CardQuery) bool {
	if q.Type != "" && c.Type != q.Type {
		return false
	}
	if q.Suit != "" {
		want := strings.ToLower(strings.TrimSpace(q.Suit))
		found := false
		for _, v := range c.Suit {
			if strings.ToLower(v) == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		if strings.Contains(strings.ToLower(c.NameShort), needle) {
			return true
		}
		for _, v := range c.Name {
			if strings.Contains(strings.ToLower(v), needle) {
				return true
			}
		}
		return false
	}
	return true
}

// SortCards orders cards in place by o.
func SortCards(cards []card.Card, o Order) {
	sort.SliceStable(cards, func(i, j int) bool {
		if o == OrderValueInt && cards[i].ValueInt != cards[j].ValueInt {
			return cards[i].ValueInt < cards[j].ValueInt
		}
		return cards[i].NameShort < cards[j].NameShort
	})
}

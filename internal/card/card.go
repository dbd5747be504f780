package card

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arcanaland/arcanum/internal/lang"
)

// ErrInvalid is returned for cards and patches that break the Major/Minor invariants.
var ErrInvalid = errors.New("invalid card")

// Arcana is the card category stored in the type column.
type Arcana string

const (
	Major Arcana = "major"
	Minor Arcana = "minor"
)

// ParseArcana accepts "major"/"minor" and the long forms used by deck layouts.
func ParseArcana(s string) (Arcana, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "major", "major_arcana":
		return Major, nil
	case "minor", "minor_arcana":
		return Minor, nil
	}
	return "", fmt.Errorf("%w: unknown arcana type %q", ErrInvalid, s)
}

// Suit is one of the four canonical minor arcana suits, keyed by its English label.
type Suit string

const (
	Wands     Suit = "wands"
	Cups      Suit = "cups"
	Swords    Suit = "swords"
	Pentacles Suit = "pentacles"
)

// Suits lists the canonical suits in deck order.
var Suits = []Suit{Wands, Cups, Swords, Pentacles}

// ParseSuit maps an English suit label to its canonical suit.
func ParseSuit(s string) (Suit, bool) {
	candidate := Suit(strings.ToLower(strings.TrimSpace(s)))
	for _, suit := range Suits {
		if candidate == suit {
			return suit, true
		}
	}
	return "", false
}

// Card is a stored tarot card. NameShort is the stable row identity; the
// English name is display text and must never be used as a key.
//
// Major cards carry a nil Suit and minor cards always carry one. Build cards
// with NewMajor/NewMinor and read the suit through Minor to keep it that way.
type Card struct {
	NameShort   string    `json:"name_short"`
	Type        Arcana    `json:"type"`
	Name        lang.Text `json:"name"`
	Value       lang.Text `json:"value"`
	ValueInt    int       `json:"value_int"`
	MeaningUp   lang.Text `json:"meaning_up"`
	MeaningRev  lang.Text `json:"meaning_rev"`
	Description lang.Text `json:"description"`
	Suit        lang.Text `json:"suit,omitempty"`
	ImagePath   string    `json:"image_path,omitempty"`
}

// Content is the multilingual text shared by major and minor cards.
type Content struct {
	Name        lang.Text
	Value       lang.Text
	MeaningUp   lang.Text
	MeaningRev  lang.Text
	Description lang.Text
	ImagePath   string
}

// NewMajor builds a major arcana card; value is its 0-21 position.
func NewMajor(nameShort string, value int, content Content) Card {
	return Card{
		NameShort:   nameShort,
		Type:        Major,
		Name:        content.Name,
		Value:       content.Value,
		ValueInt:    value,
		MeaningUp:   content.MeaningUp,
		MeaningRev:  content.MeaningRev,
		Description: content.Description,
		ImagePath:   content.ImagePath,
	}
}

// NewMinor builds a minor arcana card; rank is 1 (Ace) to 14 (King) and
// suitLabel carries the localized suit names.
func NewMinor(nameShort string, suit Suit, suitLabel lang.Text, rank int, content Content) Card {
	label := lang.Merge(suitLabel, lang.Text{lang.English: string(suit)})
	return Card{
		NameShort:   nameShort,
		Type:        Minor,
		Name:        content.Name,
		Value:       content.Value,
		ValueInt:    rank,
		MeaningUp:   content.MeaningUp,
		MeaningRev:  content.MeaningRev,
		Description: content.Description,
		Suit:        label,
		ImagePath:   content.ImagePath,
	}
}

// Minor returns the canonical suit of a minor arcana card.
func (c Card) Minor() (Suit, bool) {
	if c.Type != Minor {
		return "", false
	}
	return ParseSuit(c.Suit[lang.English])
}

// Validate checks the stored-shape invariants.
func (c Card) Validate() error {
	if strings.TrimSpace(c.NameShort) == "" {
		return fmt.Errorf("%w: name_short is required", ErrInvalid)
	}
	for _, f := range Fields {
		if f == FieldSuit {
			continue
		}
		if c.Text(f)[lang.English] == "" {
			return fmt.Errorf("%w: %s: %s.en is required", ErrInvalid, c.NameShort, f)
		}
	}

	switch c.Type {
	case Major:
		if len(c.Suit) > 0 {
			return fmt.Errorf("%w: %s: major arcana cannot carry a suit", ErrInvalid, c.NameShort)
		}
		if c.ValueInt < 0 || c.ValueInt > 21 {
			return fmt.Errorf("%w: %s: major arcana value_int %d out of range 0-21", ErrInvalid, c.NameShort, c.ValueInt)
		}
	case Minor:
		if _, ok := c.Minor(); !ok {
			return fmt.Errorf("%w: %s: minor arcana needs one of the four suits, got %q", ErrInvalid, c.NameShort, c.Suit[lang.English])
		}
		if c.ValueInt < 1 || c.ValueInt > 14 {
			return fmt.Errorf("%w: %s: minor arcana value_int %d out of range 1-14", ErrInvalid, c.NameShort, c.ValueInt)
		}
	default:
		return fmt.Errorf("%w: %s: unknown type %q", ErrInvalid, c.NameShort, c.Type)
	}
	return nil
}

// Text returns the multilingual value stored in field f.
func (c Card) Text(f Field) lang.Text {
	switch f {
	case FieldName:
		return c.Name
	case FieldValue:
		return c.Value
	case FieldMeaningUp:
		return c.MeaningUp
	case FieldMeaningRev:
		return c.MeaningRev
	case FieldDescription:
		return c.Description
	case FieldSuit:
		return c.Suit
	}
	return nil
}

func (c *Card) setText(f Field, t lang.Text) {
	switch f {
	case FieldName:
		c.Name = t
	case FieldValue:
		c.Value = t
	case FieldMeaningUp:
		c.MeaningUp = t
	case FieldMeaningRev:
		c.MeaningRev = t
	case FieldDescription:
		c.Description = t
	case FieldSuit:
		c.Suit = t
	}
}

// Clone returns a deep copy of c.
func (c Card) Clone() Card {
	out := c
	for _, f := range Fields {
		out.setText(f, c.Text(f).Clone())
	}
	return out
}

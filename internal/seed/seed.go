// Package seed builds the initial card and tutorial collections: cards from
// the public tarot API, tutorials from the bundled bilingual sections.
package seed

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/arcanaland/arcanum/internal/card"
	"github.com/arcanaland/arcanum/internal/deck"
	"github.com/arcanaland/arcanum/internal/imagery"
	"github.com/arcanaland/arcanum/internal/lang"
	"github.com/arcanaland/arcanum/internal/tutorial"
)

//go:embed tutorials.json
var tutorialsJSON []byte

// APICard is a card as served by the tarot API.
type APICard struct {
	NameShort  string `json:"name_short"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Value      string `json:"value"`
	ValueInt   int    `json:"value_int"`
	MeaningUp  string `json:"meaning_up"`
	MeaningRev string `json:"meaning_rev"`
	Desc       string `json:"desc"`
	Suit       string `json:"suit,omitempty"`
}

// Transform turns an API card into a stored card. Name, value and suit get
// their Spanish text from the standard deck; meanings and description stay
// English only until translated.
func Transform(a APICard) (card.Card, error) {
	arcana, err := card.ParseArcana(a.Type)
	if err != nil {
		return card.Card{}, fmt.Errorf("%s: %w", a.NameShort, err)
	}
	name := lang.Text{lang.English: a.Name}
	if slot, ok := deck.SlotByNameShort(a.NameShort); ok && slot.Type == arcana {
		name = lang.NewText(a.Name, deck.SpanishName(slot))
	}
	content := card.Content{
		Name:        name,
		Value:       lang.NewText(a.Value, deck.SpanishValue(a.Value)),
		MeaningUp:   lang.Text{lang.English: a.MeaningUp},
		MeaningRev:  lang.Text{lang.English: a.MeaningRev},
		Description: lang.Text{lang.English: a.Desc},
		ImagePath:   imagery.Path(a.Name),
	}

	if arcana == card.Major {
		return card.NewMajor(a.NameShort, a.ValueInt, content), nil
	}
	suit, ok := card.ParseSuit(a.Suit)
	if !ok {
		return card.Card{}, fmt.Errorf("%w: %s: unknown suit %q", card.ErrInvalid, a.NameShort, a.Suit)
	}
	return card.NewMinor(a.NameShort, suit, deck.SuitLabels[suit], a.ValueInt, content), nil
}

// TransformAll transforms every API card, stopping at the first failure.
func TransformAll(cards []APICard) ([]card.Card, error) {
	out := make([]card.Card, 0, len(cards))
	for _, a := range cards {
		c, err := Transform(a)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Stats counts a collection by arcana and suit.
type Stats struct {
	Total  int
	Major  int
	Minor  int
	BySuit map[card.Suit]int
}

// Validate checks every card and the uniqueness of name_short and returns
// every problem found, joined.
func Validate(cards []card.Card) (Stats, error) {
	stats := Stats{Total: len(cards), BySuit: map[card.Suit]int{}}
	seen := map[string]bool{}
	var errs []error

	for i, c := range cards {
		if err := c.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("card %d: %w", i, err))
			continue
		}
		if seen[c.NameShort] {
			errs = append(errs, fmt.Errorf("card %d: duplicate name_short %q", i, c.NameShort))
		}
		seen[c.NameShort] = true

		if suit, ok := c.Minor(); ok {
			stats.Minor++
			stats.BySuit[suit]++
		} else {
			stats.Major++
		}
	}
	return stats, errors.Join(errs...)
}

// Tutorials returns the bundled tutorial sections in order.
func Tutorials() ([]tutorial.Section, error) {
	var sections []tutorial.Section
	if err := json.Unmarshal(tutorialsJSON, &sections); err != nil {
		return nil, fmt.Errorf("error decoding bundled tutorials: %v", err)
	}
	for _, s := range sections {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	sort.SliceStable(sections, func(i, j int) bool { return sections[i].OrderIndex < sections[j].OrderIndex })
	return sections, nil
}

// Package validator checks a stored collection against the standard deck and
// reports translation coverage.
package validator

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/arcanaland/arcanum/internal/card"
	"github.com/arcanaland/arcanum/internal/deck"
	"github.com/arcanaland/arcanum/internal/i18n"
	"github.com/arcanaland/arcanum/internal/imagery"
	"github.com/arcanaland/arcanum/internal/lang"
	"github.com/arcanaland/arcanum/internal/tutorial"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

// Valid reports whether no errors were found.
func (r ValidationResults) Valid() bool { return len(r.Errors) == 0 }

// Validator checks cards, tutorial sections and the string table. Sections,
// Strings and Images are optional.
type Validator struct {
	Cards    []card.Card
	Sections []tutorial.Section
	Strings  *i18n.Table
	Images   imagery.Checker
	Results  ValidationResults
}

func NewValidator(cards []card.Card) *Validator {
	return &Validator{
		Cards:   cards,
		Results: ValidationResults{},
	}
}

func (v *Validator) errorf(format string, args ...any) {
	v.Results.Errors = append(v.Results.Errors, fmt.Sprintf(format, args...))
}

func (v *Validator) warnf(format string, args ...any) {
	v.Results.Warnings = append(v.Results.Warnings, fmt.Sprintf(format, args...))
}

func (v *Validator) Validate(ctx context.Context) (ValidationResults, error) {
	if len(v.Cards) == 0 {
		return v.Results, fmt.Errorf("no cards to validate")
	}

	v.validateCards()
	v.validateSlots()
	v.validateValues()
	v.validateTranslations()
	v.validateTutorials()
	v.validateStrings()
	v.validateImages(ctx)

	return v.Results, nil
}

// validateCards checks the stored shape of every card
func (v *Validator) validateCards() {
	seen := map[string]bool{}
	for _, c := range v.Cards {
		if err := c.Validate(); err != nil {
			v.errorf("%s: %v", c.NameShort, err)
		}
		if seen[c.NameShort] {
			v.errorf("duplicate name_short: %s", c.NameShort)
		}
		seen[c.NameShort] = true
	}
}

// validateSlots compares the collection with the 78 card standard deck
func (v *Validator) validateSlots() {
	byKey := make(map[string]card.Card, len(v.Cards))
	for _, c := range v.Cards {
		byKey[c.NameShort] = c
	}

	missing := map[string][]string{}
	known := map[string]bool{}
	for _, slot := range deck.Canonical() {
		known[slot.NameShort] = true
		group := "major arcana"
		if slot.Type == card.Minor {
			group = string(slot.Suit)
		}

		c, ok := byKey[slot.NameShort]
		if !ok {
			missing[group] = append(missing[group], slot.NameShort)
			continue
		}
		if c.Type != slot.Type || c.ValueInt != slot.ValueInt {
			v.errorf("%s: expected %s card with value_int %d", slot.NameShort, slot.Type, slot.ValueInt)
		}
		if suit, ok := c.Minor(); ok && suit != slot.Suit {
			v.errorf("%s: expected suit %s, found %s", slot.NameShort, slot.Suit, suit)
		}
	}

	groups := make([]string, 0, len(missing))
	for g := range missing {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	for _, g := range groups {
		v.errorf("missing %s cards: %s", g, strings.Join(missing[g], ", "))
	}

	for _, c := range v.Cards {
		if !known[c.NameShort] {
			v.warnf("%s is not part of the standard deck", c.NameShort)
		}
	}
}

// validateValues checks that value_int is unique within the major arcana and
// within each suit
func (v *Validator) validateValues() {
	seen := map[string]string{}
	for _, c := range v.Cards {
		group := string(c.Type)
		if suit, ok := c.Minor(); ok {
			group = string(suit)
		}
		key := fmt.Sprintf("%s/%d", group, c.ValueInt)
		if other, ok := seen[key]; ok {
			v.errorf("%s and %s share value_int %d in %s", other, c.NameShort, c.ValueInt, group)
			continue
		}
		seen[key] = c.NameShort
	}
}

// validateTranslations warns about card fields that fall back to English
func (v *Validator) validateTranslations() {
	for _, l := range lang.Supported {
		if l == lang.English {
			continue
		}
		counts := map[card.Field]int{}
		for _, c := range v.Cards {
			for _, f := range card.Fields {
				if lang.IsMissing(c.Text(f), l) {
					counts[f]++
				}
			}
		}
		for _, f := range card.Fields {
			if n := counts[f]; n > 0 {
				v.warnf("%d cards have no %s %s", n, l, f)
			}
		}
	}
}

// validateTutorials checks the stored sections
func (v *Validator) validateTutorials() {
	if v.Sections == nil {
		return
	}

	found := map[tutorial.Key]bool{}
	for _, s := range v.Sections {
		if err := s.Validate(); err != nil {
			v.errorf("%v", err)
			continue
		}
		found[s.Key] = true
		for _, l := range lang.Supported {
			if lang.IsMissing(s.Title, l) || len(s.Content[l]) == 0 {
				v.warnf("tutorial %s has no %s translation", s.Key, l)
			}
		}
	}
	for _, k := range tutorial.Keys {
		if !found[k] {
			v.warnf("tutorial section %s not found", k)
		}
	}
}

// validateStrings warns about interface strings that fall back to English
func (v *Validator) validateStrings() {
	if v.Strings == nil {
		return
	}
	for _, l := range lang.Supported {
		if missing := v.Strings.MissingKeys(l); len(missing) > 0 {
			v.warnf("%d %s interface strings missing: %s", len(missing), l, strings.Join(missing, ", "))
		}
	}
}

// validateImages warns about cards without an image
func (v *Validator) validateImages(ctx context.Context) {
	if v.Images == nil {
		return
	}
	var missing []string
	for _, c := range v.Cards {
		if !v.Images.Exists(ctx, c.Name[lang.English]) {
			missing = append(missing, imagery.FileName(c.Name[lang.English]))
		}
	}
	if len(missing) > 0 {
		v.warnf("missing images: %s", strings.Join(missing, ", "))
	}
}

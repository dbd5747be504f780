package deck

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/arcanaland/arcanum/internal/card"
	"github.com/arcanaland/arcanum/internal/lang"
)

// Entry is the localized name and alt text of one card in a deck names file.
type Entry struct {
	Name    string
	AltText string
}

// Names maps canonical card IDs to their entries in one language.
type Names map[string]Entry

// LoadNames reads names/<lang>.toml from a deck directory laid out per the
// Tarot Deck Specification:
//
//	[major_arcana]
//	00 = "The Fool"
//	[major_arcana.alt_text]
//	00 = "A young traveler ..."
//	[minor_arcana.wands]
//	ace = "Ace of Wands"
//	[minor_arcana.wands.alt_text]
//	ace = "A hand ..."
func LoadNames(deckPath string, l lang.Code) (Names, error) {
	namesPath := filepath.Join(deckPath, "names", string(l)+".toml")
	if _, err := os.Stat(namesPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("names file not found: %s", namesPath)
	}

	var raw map[string]any
	if _, err := toml.DecodeFile(namesPath, &raw); err != nil {
		return nil, fmt.Errorf("error parsing names file: %v", err)
	}

	names := Names{}
	if major, ok := raw["major_arcana"].(map[string]any); ok {
		collect(names, major, func(key string) string { return "major_arcana." + key })
	}
	if minor, ok := raw["minor_arcana"].(map[string]any); ok {
		for _, suit := range card.Suits {
			section, ok := minor[string(suit)].(map[string]any)
			if !ok {
				continue
			}
			prefix := fmt.Sprintf("minor_arcana.%s.", suit)
			collect(names, section, func(key string) string { return prefix + key })
		}
	}
	return names, nil
}

func collect(names Names, section map[string]any, id func(string) string) {
	for key, value := range section {
		if s, ok := value.(string); ok {
			e := names[id(key)]
			e.Name = s
			names[id(key)] = e
		}
	}
	alt, ok := section["alt_text"].(map[string]any)
	if !ok {
		return
	}
	for key, value := range alt {
		if s, ok := value.(string); ok {
			e := names[id(key)]
			e.AltText = s
			names[id(key)] = e
		}
	}
}

// Patches turns the entries into card patches for language l, keyed by
// name_short: names update the name field, alt text the description.
// Entries for IDs outside the standard deck are skipped.
func (n Names) Patches(l lang.Code) map[string]card.Patch {
	patches := map[string]card.Patch{}
	ids := make([]string, 0, len(n))
	for id := range n {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		slot, ok := SlotByID(id)
		if !ok {
			continue
		}
		e := n[id]
		p := card.Patch{}
		if e.Name != "" {
			p.Set(card.FieldName, l, e.Name)
		}
		if e.AltText != "" {
			p.Set(card.FieldDescription, l, e.AltText)
		}
		if len(p) > 0 {
			patches[slot.NameShort] = p
		}
	}
	return patches
}

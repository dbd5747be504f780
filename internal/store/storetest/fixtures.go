// Package storetest holds card and tutorial fixtures and a contract suite
// every store backend runs.
package storetest

import (
	"encoding/json"

	"github.com/arcanaland/arcanum/internal/card"
	"github.com/arcanaland/arcanum/internal/lang"
	"github.com/arcanaland/arcanum/internal/tutorial"
)

// Cards returns a small collection: two majors, three wands, one cup.
// The Magician has no Spanish meanings and Two of Wands no Spanish name.
func Cards() []card.Card {
	wands := lang.Text{lang.Spanish: "bastos"}
	cups := lang.Text{lang.Spanish: "copas"}
	return []card.Card{
		card.NewMajor("ar00", 0, card.Content{
			Name:        lang.NewText("The Fool", "El Loco"),
			Value:       lang.NewText("zero", "cero"),
			MeaningUp:   lang.NewText("Folly, mania, extravagance", "Locura, manía, extravagancia"),
			MeaningRev:  lang.NewText("Negligence, absence, distribution", "Negligencia, ausencia, distribución"),
			Description: lang.NewText("With light step, as if earth and its trammels had little power to restrain him.", "Con paso ligero."),
			ImagePath:   "/tarot-images/the_fool.jpg",
		}),
		card.NewMajor("ar01", 1, card.Content{
			Name:        lang.NewText("The Magician", "El Mago"),
			Value:       lang.NewText("one", "uno"),
			MeaningUp:   lang.Text{lang.English: "Skill, diplomacy, address"},
			MeaningRev:  lang.Text{lang.English: "Physician, Magus, mental disease"},
			Description: lang.Text{lang.English: "A youthful figure in the robe of a magician."},
			ImagePath:   "/tarot-images/the_magician.jpg",
		}),
		card.NewMinor("waac", card.Wands, wands, 1, card.Content{
			Name:        lang.NewText("Ace of Wands", "As de Bastos"),
			Value:       lang.NewText("ace", "as"),
			MeaningUp:   lang.NewText("Creation, invention, enterprise", "Creación, invención, empresa"),
			MeaningRev:  lang.NewText("Fall, decadence, ruin", "Caída, decadencia, ruina"),
			Description: lang.Text{lang.English: "A hand issuing from a cloud grasps a stout wand or club."},
			ImagePath:   "/tarot-images/ace_of_wands.jpg",
		}),
		card.NewMinor("wa02", card.Wands, wands, 2, card.Content{
			Name:        lang.Text{lang.English: "Two of Wands"},
			Value:       lang.NewText("two", "dos"),
			MeaningUp:   lang.Text{lang.English: "Riches, fortune, magnificence"},
			MeaningRev:  lang.Text{lang.English: "Surprise, wonder, enchantment"},
			Description: lang.Text{lang.English: "A tall man looks from a battlemented roof over sea and shore."},
			ImagePath:   "/tarot-images/two_of_wands.jpg",
		}),
		card.NewMinor("wapa", card.Wands, wands, 11, card.Content{
			Name:        lang.NewText("Page of Wands", "Paje de Bastos"),
			Value:       lang.NewText("page", "paje"),
			MeaningUp:   lang.Text{lang.English: "Dark young man, fidelity, a lover"},
			MeaningRev:  lang.Text{lang.English: "Anecdotes, announcements, evil news"},
			Description: lang.Text{lang.English: "In a scene similar to the former, a young man stands in the act of proclamation."},
			ImagePath:   "/tarot-images/page_of_wands.jpg",
		}),
		card.NewMinor("cuqu", card.Cups, cups, 13, card.Content{
			Name:        lang.NewText("Queen of Cups", "Reina de Copas"),
			Value:       lang.NewText("queen", "reina"),
			MeaningUp:   lang.Text{lang.English: "Good, fair woman; honest, devoted woman"},
			MeaningRev:  lang.Text{lang.English: "The accounts vary; good woman; otherwise, distinguished woman"},
			Description: lang.Text{lang.English: "Beautiful, fair, dreamy, as one who sees visions in a cup."},
			ImagePath:   "/tarot-images/queen_of_cups.jpg",
		}),
	}
}

// Sections returns an overview and a suits section. The overview has no
// Spanish content; the suits section is inactive.
func Sections() []tutorial.Section {
	return []tutorial.Section{
		{
			Key:   tutorial.Overview,
			Title: lang.NewText("Understanding Tarot Cards", "Entendiendo las Cartas del Tarot"),
			Content: map[lang.Code]json.RawMessage{
				lang.English: json.RawMessage(`{"description":"A traditional deck has 78 cards.","total_cards":78,"major_arcana_count":22,"minor_arcana_count":56}`),
			},
			OrderIndex: 0,
			Active:     true,
		},
		{
			Key:   tutorial.MajorArcana,
			Title: lang.NewText("The Major Arcana", "El Arcano Mayor"),
			Content: map[lang.Code]json.RawMessage{
				lang.English: json.RawMessage(`{"subtitle":"The Greater Mysteries","themes":["Spiritual growth"]}`),
				lang.Spanish: json.RawMessage(`{"subtitle":"Los Misterios Mayores","themes":["Crecimiento espiritual"]}`),
			},
			OrderIndex: 1,
			Active:     true,
		},
		{
			Key:   tutorial.Suits,
			Title: lang.NewText("The Four Suits", "Los Cuatro Palos"),
			Content: map[lang.Code]json.RawMessage{
				lang.English: json.RawMessage(`{"description":"Each suit represents different aspects of life."}`),
			},
			OrderIndex: 3,
			Active:     false,
		},
	}
}

// NameShorts lists the keys of cards in order.
func NameShorts(cards []card.Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.NameShort)
	}
	return out
}

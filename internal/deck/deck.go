package deck

import (
	"fmt"
	"strings"

	"github.com/arcanaland/arcanum/internal/card"
	"github.com/arcanaland/arcanum/internal/lang"
)

// Slot is one position of the standard 78 card deck.
type Slot struct {
	ID        string // Canonical ID (e.g., major_arcana.00, minor_arcana.wands.ace)
	NameShort string // Store key (e.g., ar00, waac)
	Type      card.Arcana
	Suit      card.Suit // For minor arcana
	Rank      string    // For minor arcana (ace, two, ..., king)
	ValueInt  int
	Name      string // Default English name
}

// Ranks lists the minor arcana ranks; index+1 is the stored value_int.
var Ranks = []string{
	"ace", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten",
	"page", "knight", "queen", "king",
}

// SuitLabels holds the localized label of each suit.
var SuitLabels = map[card.Suit]lang.Text{
	card.Wands:     lang.NewText("wands", "bastos"),
	card.Cups:      lang.NewText("cups", "copas"),
	card.Swords:    lang.NewText("swords", "espadas"),
	card.Pentacles: lang.NewText("pentacles", "oros"),
}

var suitPrefixes = map[card.Suit]string{
	card.Wands:     "wa",
	card.Cups:      "cu",
	card.Swords:    "sw",
	card.Pentacles: "pe",
}

var courtCodes = map[int]string{1: "ac", 11: "pa", 12: "kn", 13: "qu", 14: "ki"}

// Canonical returns the 78 slots: major arcana 0-21 then each suit ace to king.
func Canonical() []Slot {
	slots := make([]Slot, 0, 78)
	for i := 0; i <= 21; i++ {
		number := fmt.Sprintf("%02d", i)
		slots = append(slots, Slot{
			ID:        "major_arcana." + number,
			NameShort: "ar" + number,
			Type:      card.Major,
			ValueInt:  i,
			Name:      MajorName(number),
		})
	}

	for _, suit := range card.Suits {
		for i, rank := range Ranks {
			value := i + 1
			slots = append(slots, Slot{
				ID:        fmt.Sprintf("minor_arcana.%s.%s", suit, rank),
				NameShort: MinorNameShort(suit, value),
				Type:      card.Minor,
				Suit:      suit,
				Rank:      rank,
				ValueInt:  value,
				Name:      MinorName(rank, string(suit)),
			})
		}
	}
	return slots
}

// SlotByNameShort finds the canonical slot stored under nameShort.
func SlotByNameShort(nameShort string) (Slot, bool) {
	for _, s := range Canonical() {
		if s.NameShort == nameShort {
			return s, true
		}
	}
	return Slot{}, false
}

// SlotByID finds the canonical slot for a canonical card ID.
func SlotByID(id string) (Slot, bool) {
	for _, s := range Canonical() {
		if s.ID == id {
			return s, true
		}
	}
	return Slot{}, false
}

// MinorNameShort builds the store key of a minor card, e.g. wa02 or cuqu.
func MinorNameShort(suit card.Suit, value int) string {
	if code, ok := courtCodes[value]; ok {
		return suitPrefixes[suit] + code
	}
	return fmt.Sprintf("%s%02d", suitPrefixes[suit], value)
}

// RankName returns the rank word for a minor value_int, "" when out of range.
func RankName(value int) string {
	if value < 1 || value > len(Ranks) {
		return ""
	}
	return Ranks[value-1]
}

// MajorName returns the default name for a major arcana card
func MajorName(number string) string {
	names := map[string]string{
		"00": "The Fool",
		"01": "The Magician",
		"02": "The High Priestess",
		"03": "The Empress",
		"04": "The Emperor",
		"05": "The Hierophant",
		"06": "The Lovers",
		"07": "The Chariot",
		"08": "Strength",
		"09": "The Hermit",
		"10": "Wheel of Fortune",
		"11": "Justice",
		"12": "The Hanged Man",
		"13": "Death",
		"14": "Temperance",
		"15": "The Devil",
		"16": "The Tower",
		"17": "The Star",
		"18": "The Moon",
		"19": "The Sun",
		"20": "Judgement",
		"21": "The World",
	}

	if name, ok := names[number]; ok {
		return name
	}

	return fmt.Sprintf("Major Arcana %s", number)
}

// MinorName returns the default name for a minor arcana card
func MinorName(rank, suit string) string {
	if rank == "" || suit == "" {
		return ""
	}
	return fmt.Sprintf("%s of %s", capitalize(rank), capitalize(suit))
}

func capitalize(s string) string {
	return strings.ToUpper(s[:1]) + s[1:]
}

package tutorial

import (
	"encoding/json"
	"fmt"
)

// Content is the language-resolved body of a section. The concrete type
// depends on the section key.
type Content interface {
	Section() Key
}

type OverviewContent struct {
	Description      string `json:"description"`
	TotalCards       int    `json:"total_cards"`
	MajorArcanaCount int    `json:"major_arcana_count"`
	MinorArcanaCount int    `json:"minor_arcana_count"`
}

func (OverviewContent) Section() Key { return Overview }

type MajorArcanaContent struct {
	Subtitle        string   `json:"subtitle"`
	Description     string   `json:"description"`
	Characteristics []string `json:"characteristics"`
	Numbering       string   `json:"numbering"`
	Themes          []string `json:"themes"`
}

func (MajorArcanaContent) Section() Key { return MajorArcana }

// Structure describes how the minor arcana is laid out.
type Structure struct {
	Suits        int    `json:"suits"`
	CardsPerSuit int    `json:"cards_per_suit"`
	NumberCards  string `json:"number_cards"`
	CourtCards   string `json:"court_cards"`
}

type MinorArcanaContent struct {
	Subtitle        string    `json:"subtitle"`
	Description     string    `json:"description"`
	Characteristics []string  `json:"characteristics"`
	Structure       Structure `json:"structure"`
}

func (MinorArcanaContent) Section() Key { return MinorArcana }

// SuitInfo is the tutorial entry for one suit.
type SuitInfo struct {
	Name              string   `json:"name"`
	Element           string   `json:"element"`
	Description       string   `json:"description"`
	Keywords          []string `json:"keywords"`
	LifeAreas         []string `json:"life_areas"`
	PersonalityTraits []string `json:"personality_traits"`
}

type SuitsContent struct {
	Description string   `json:"description"`
	Wands       SuitInfo `json:"wands"`
	Cups        SuitInfo `json:"cups"`
	Swords      SuitInfo `json:"swords"`
	Pentacles   SuitInfo `json:"pentacles"`
}

func (SuitsContent) Section() Key { return Suits }

// Decode parses a stored content document into the shape of section key.
func Decode(key Key, raw json.RawMessage) (Content, error) {
	if isEmpty(raw) {
		return nil, fmt.Errorf("tutorial %s: no content", key)
	}

	var (
		content Content
		err     error
	)
	switch key {
	case Overview:
		var c OverviewContent
		err = json.Unmarshal(raw, &c)
		content = c
	case MajorArcana:
		var c MajorArcanaContent
		err = json.Unmarshal(raw, &c)
		content = c
	case MinorArcana:
		var c MinorArcanaContent
		err = json.Unmarshal(raw, &c)
		content = c
	case Suits:
		var c SuitsContent
		err = json.Unmarshal(raw, &c)
		content = c
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSection, key)
	}
	if err != nil {
		return nil, fmt.Errorf("error decoding %s content: %v", key, err)
	}
	return content, nil
}

package card

import "github.com/arcanaland/arcanum/internal/lang"

// View is a card flattened to one language for display. NameEn keeps the
// unresolved English name because card images are looked up by it.
type View struct {
	NameShort  string `json:"name_short"`
	Name       string `json:"name"`
	NameEn     string `json:"name_en"`
	Type       Arcana `json:"type"`
	Value      string `json:"value"`
	ValueInt   int    `json:"value_int"`
	MeaningUp  string `json:"meaning_up"`
	MeaningRev string `json:"meaning_rev"`
	Desc       string `json:"desc"`
	Suit       string `json:"suit,omitempty"`
	ImagePath  string `json:"image_path,omitempty"`
}

// Legacy is the English-only flattened shape served to callers that predate
// multilingual content.
type Legacy struct {
	NameShort  string `json:"name_short"`
	Name       string `json:"name"`
	Type       Arcana `json:"type"`
	Value      string `json:"value"`
	ValueInt   int    `json:"value_int"`
	MeaningUp  string `json:"meaning_up"`
	MeaningRev string `json:"meaning_rev"`
	Desc       string `json:"desc"`
	Suit       string `json:"suit,omitempty"`
}

// Project resolves every multilingual field of c for l. The image path is
// derived from the English name; the stored one is used only when the card
// has no English name.
func Project(c Card, l lang.Code) View {
	v := View{
		NameShort:  c.NameShort,
		Name:       lang.Resolve(c.Name, l),
		NameEn:     c.Name[lang.English],
		Type:       c.Type,
		Value:      lang.Resolve(c.Value, l),
		ValueInt:   c.ValueInt,
		MeaningUp:  lang.Resolve(c.MeaningUp, l),
		MeaningRev: lang.Resolve(c.MeaningRev, l),
		Desc:       lang.Resolve(c.Description, l),
		ImagePath:  c.ImagePath,
	}
	if nameEn := c.Name[lang.English]; nameEn != "" {
		v.ImagePath = ImagePath(nameEn)
	}
	if len(c.Suit) > 0 {
		v.Suit = lang.Resolve(c.Suit, l)
	}
	return v
}

// ProjectLegacy resolves every field of c to English.
func ProjectLegacy(c Card) Legacy {
	v := Project(c, lang.English)
	return Legacy{
		NameShort:  v.NameShort,
		Name:       v.Name,
		Type:       v.Type,
		Value:      v.Value,
		ValueInt:   v.ValueInt,
		MeaningUp:  v.MeaningUp,
		MeaningRev: v.MeaningRev,
		Desc:       v.Desc,
		Suit:       v.Suit,
	}
}

// ProjectAll projects a list of cards, keeping its order.
func ProjectAll(cards []Card, l lang.Code) []View {
	out := make([]View, 0, len(cards))
	for _, c := range cards {
		out = append(out, Project(c, l))
	}
	return out
}

// ProjectAllLegacy projects a list of cards to the legacy shape.
func ProjectAllLegacy(cards []Card) []Legacy {
	out := make([]Legacy, 0, len(cards))
	for _, c := range cards {
		out = append(out, ProjectLegacy(c))
	}
	return out
}

package tutorial

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/arcanum/internal/lang"
)

func overview() Section {
	return Section{
		Key:   Overview,
		Title: lang.NewText("Understanding Tarot Cards", "Entendiendo las Cartas del Tarot"),
		Content: map[lang.Code]json.RawMessage{
			lang.English: json.RawMessage(`{"description":"A deck has 78 cards.","total_cards":78,"major_arcana_count":22,"minor_arcana_count":56}`),
			lang.Spanish: json.RawMessage(`{"description":"Un mazo tiene 78 cartas.","total_cards":78}`),
		},
		Active: true,
	}
}

func TestResolvePicksWholeDocument(t *testing.T) {
	v, err := Resolve(overview(), lang.Spanish)
	require.NoError(t, err)

	assert.Equal(t, "Entendiendo las Cartas del Tarot", v.Title)
	c, ok := v.Content.(OverviewContent)
	require.True(t, ok)
	assert.Equal(t, "Un mazo tiene 78 cartas.", c.Description)
	assert.Zero(t, c.MajorArcanaCount, "fields are never merged from the english document")
}

func TestResolveFallsBackToEnglishDocument(t *testing.T) {
	s := overview()
	s.Content[lang.Spanish] = json.RawMessage("null")
	s.Title = lang.Text{lang.English: "Understanding Tarot Cards"}

	v, err := Resolve(s, lang.Spanish)
	require.NoError(t, err)
	assert.Equal(t, "Understanding Tarot Cards", v.Title)
	assert.Equal(t, 22, v.Content.(OverviewContent).MajorArcanaCount)
}

func TestDecodeByKey(t *testing.T) {
	c, err := Decode(MinorArcana, json.RawMessage(`{"subtitle":"The Lesser Mysteries","structure":{"suits":4,"cards_per_suit":14}}`))
	require.NoError(t, err)
	minor := c.(MinorArcanaContent)
	assert.Equal(t, 14, minor.Structure.CardsPerSuit)
	assert.Equal(t, MinorArcana, c.Section())

	c, err = Decode(Suits, json.RawMessage(`{"cups":{"name":"Cups","element":"Water","keywords":["love"]}}`))
	require.NoError(t, err)
	assert.Equal(t, "Water", c.(SuitsContent).Cups.Element)

	_, err = Decode(Key("spreads"), json.RawMessage(`{}`))
	require.ErrorIs(t, err, ErrUnknownSection)

	_, err = Decode(Overview, json.RawMessage(`{"total_cards":"many"}`))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	require.NoError(t, overview().Validate())

	s := overview()
	s.Key = "spreads"
	require.ErrorIs(t, s.Validate(), ErrUnknownSection)

	s = overview()
	delete(s.Content, lang.English)
	require.Error(t, s.Validate())

	s = overview()
	s.Title = lang.Text{lang.Spanish: "Solo"}
	require.Error(t, s.Validate())
}

func TestViewMarshalsContentInline(t *testing.T) {
	v, err := Resolve(overview(), lang.English)
	require.NoError(t, err)

	b, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"section_key": "overview",
		"title": "Understanding Tarot Cards",
		"content": {"description": "A deck has 78 cards.", "total_cards": 78, "major_arcana_count": 22, "minor_arcana_count": 56}
	}`, string(b))

	var decoded View
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, v, decoded)
}

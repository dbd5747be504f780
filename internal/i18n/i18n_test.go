package i18n

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/arcanum/internal/lang"
)

func testTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := Load(fstest.MapFS{
		"en.toml": {Data: []byte(`
[greeting]
hello = "Hello {n}"
bye = "Goodbye"

[deck.stats]
showing = "Showing {count} of {total} cards"
`)},
		"es.toml": {Data: []byte(`
[greeting]
bye = "Adiós"

[deck.stats]
showing = "Mostrando {count} de {total} cartas"
`)},
	})
	require.NoError(t, err)
	return tbl
}

func TestLookupAndFallback(t *testing.T) {
	tbl := testTable(t)

	assert.Equal(t, "Adiós", tbl.T(lang.Spanish, "greeting.bye", nil))
	assert.Equal(t, "Goodbye", tbl.T(lang.English, "greeting.bye", nil))
	assert.Equal(t, "Hello Ana", tbl.T(lang.Spanish, "greeting.hello", map[string]any{"n": "Ana"}),
		"falls back to english then interpolates")
	assert.Equal(t, "greeting.missing", tbl.T(lang.Spanish, "greeting.missing", nil))
	assert.Equal(t, "greeting", tbl.T(lang.English, "greeting", nil), "subtrees are not strings")
	assert.Equal(t, "greeting.bye.extra", tbl.T(lang.English, "greeting.bye.extra", nil))
}

func TestInterpolation(t *testing.T) {
	tbl := testTable(t)

	assert.Equal(t, "Mostrando 3 de 78 cartas",
		tbl.T(lang.Spanish, "deck.stats.showing", map[string]any{"count": 3, "total": 78}))
	assert.Equal(t, "Mostrando 3 de {total} cartas",
		tbl.T(lang.Spanish, "deck.stats.showing", map[string]any{"count": 3}), "unmatched placeholders stay")
	assert.Equal(t, "Hello {n}", tbl.T(lang.English, "greeting.hello", map[string]any{"n": ""}))
	assert.Equal(t, "Hello {n}", tbl.T(lang.English, "greeting.hello", nil))
}

func TestObject(t *testing.T) {
	tbl := testTable(t)

	assert.Equal(t, map[string]any{"bye": "Adiós"}, tbl.Object(lang.Spanish, "greeting"))
	assert.Equal(t, map[string]any{}, tbl.Object(lang.Spanish, "nowhere"))
	assert.Equal(t, map[string]any{}, tbl.Object(lang.English, "greeting.bye"))
}

func TestMissingKeys(t *testing.T) {
	tbl := testTable(t)

	assert.Equal(t, []string{"greeting.hello"}, tbl.MissingKeys(lang.Spanish))
	assert.Nil(t, tbl.MissingKeys(lang.English))
	assert.Equal(t, []string{"deck.stats.showing", "greeting.bye", "greeting.hello"}, tbl.Keys(lang.English))
}

func TestLoadRequiresEnglish(t *testing.T) {
	_, err := Load(fstest.MapFS{"es.toml": {Data: []byte(`a = "b"`)}})
	require.Error(t, err)

	tbl, err := Load(fstest.MapFS{"en.toml": {Data: []byte(`a = "b"`)}})
	require.NoError(t, err)
	assert.Equal(t, "b", tbl.T(lang.Spanish, "a", nil))

	_, err = Load(fstest.MapFS{"en.toml": {Data: []byte(`a = `)}})
	require.Error(t, err)
}

func TestTranslator(t *testing.T) {
	tr := Default().For(lang.Spanish)

	assert.Equal(t, lang.Spanish, tr.Lang())
	assert.Equal(t, "Arcanum Tarot - Lector de Cartas", tr.PageTitle(""))
	assert.Equal(t, "El Mazo - Arcanum Tarot", tr.PageTitle("pageTitle.deck"))
	assert.Equal(t, "Bastos", tr.T("deckPage.filters.suit.wands", nil))
	assert.Len(t, tr.Object("deckPage.filters.suit"), 6)
}

func TestEmbeddedLocalesMirror(t *testing.T) {
	tbl := Default()

	assert.Empty(t, tbl.MissingKeys(lang.Spanish))
	assert.Equal(t, tbl.Keys(lang.English), tbl.Keys(lang.Spanish))
	assert.Equal(t, "Home", tbl.T(lang.English, "navigation.home", nil))
}

package cmd

import (
	"bytes"
	"strings"
	"testing"

	colorize "github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/arcanum/internal/admin"
	"github.com/arcanaland/arcanum/internal/card"
	"github.com/arcanaland/arcanum/internal/i18n"
	"github.com/arcanaland/arcanum/internal/lang"
)

func TestSuitOfAnyLanguage(t *testing.T) {
	assert.Equal(t, card.Wands, suitOf("wands"))
	assert.Equal(t, card.Wands, suitOf("Bastos"))
	assert.Equal(t, card.Pentacles, suitOf("oros"))
	assert.Equal(t, card.Suit(""), suitOf("clubs"))
}

func TestPrintViews(t *testing.T) {
	colorize.NoColor = true
	tr := i18n.Default().For(lang.Spanish)

	var buf bytes.Buffer
	printViews(&buf, tr, nil)
	assert.Equal(t, tr.T("deckPage.emptyState.message", nil)+"\n", buf.String())

	buf.Reset()
	printViews(&buf, tr, []card.View{
		{NameShort: "ar00", Name: "El Loco"},
		{NameShort: "waac", Name: "As de Bastos", Suit: "bastos"},
	})
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Equal(t, "ar00  El Loco", string(lines[0]))
	assert.Contains(t, string(lines[1]), "waac  As de Bastos")
	assert.Contains(t, string(lines[1]), "bastos")
}

func TestPrintJSONIndents(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printJSON(&buf, map[string]int{"total": 78}))
	assert.Equal(t, "{\n  \"total\": 78\n}\n", buf.String())
}

func TestAdminLineBracketsUntranslatedNames(t *testing.T) {
	colorize.NoColor = true
	two := admin.Row{Card: card.Card{NameShort: "wa02", Name: lang.Text{lang.English: "Two of Wands"}}}
	ace := admin.Row{Card: card.Card{NameShort: "waac", Name: lang.NewText("Ace of Wands", "As de Bastos")}}

	line := adminLine(two, []string{"name", "meaning_up"}, lang.Spanish)
	assert.Contains(t, line, "[Two of Wands]")
	assert.Contains(t, line, "[es: name, meaning_up]")

	assert.Equal(t, "waac  As de Bastos", strings.TrimSpace(adminLine(ace, nil, lang.Spanish)))
	assert.NotContains(t, adminLine(two, nil, lang.English), "[")
}

func TestPageTitles(t *testing.T) {
	tr := i18n.Default().For(lang.Spanish)
	assert.Equal(t, "Administración - Arcanum Tarot", tr.PageTitle("pageTitle.admin"))
	assert.Equal(t, "Aprende Tarot - Arcanum Tarot", tr.PageTitle("pageTitle.tutorial"))
}

package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/arcanum/internal/card"
	"github.com/arcanaland/arcanum/internal/lang"
	"github.com/arcanaland/arcanum/internal/store"
	"github.com/arcanaland/arcanum/internal/tutorial"
)

// Run exercises a store backend. open must return an empty store.
func Run(t *testing.T, open func(t *testing.T) store.Store) {
	seeded := func(t *testing.T) store.Store {
		s := open(t)
		ctx := context.Background()
		require.NoError(t, s.ReplaceCards(ctx, Cards()))
		require.NoError(t, s.ReplaceSections(ctx, Sections()))
		return s
	}

	t.Run("list orders by name_short", func(t *testing.T) {
		s := seeded(t)
		cards, err := s.ListCards(context.Background(), store.CardQuery{})
		require.NoError(t, err)
		assert.Equal(t, []string{"ar00", "ar01", "cuqu", "wa02", "waac", "wapa"}, NameShorts(cards))
	})

	t.Run("list filters by type and suit", func(t *testing.T) {
		s := seeded(t)
		ctx := context.Background()

		majors, err := s.ListCards(ctx, store.CardQuery{Type: card.Major, Order: store.OrderValueInt})
		require.NoError(t, err)
		assert.Equal(t, []string{"ar00", "ar01"}, NameShorts(majors))

		wands, err := s.ListCards(ctx, store.CardQuery{Suit: "wands", Order: store.OrderValueInt})
		require.NoError(t, err)
		assert.Equal(t, []string{"waac", "wa02", "wapa"}, NameShorts(wands))

		bastos, err := s.ListCards(ctx, store.CardQuery{Suit: "Bastos"})
		require.NoError(t, err)
		assert.Equal(t, []string{"wa02", "waac", "wapa"}, NameShorts(bastos))
	})

	t.Run("search is case-insensitive over names and keys", func(t *testing.T) {
		s := seeded(t)
		ctx := context.Background()

		found, err := s.ListCards(ctx, store.CardQuery{Search: "REINA"})
		require.NoError(t, err)
		assert.Equal(t, []string{"cuqu"}, NameShorts(found))

		found, err = s.ListCards(ctx, store.CardQuery{Search: "wa0"})
		require.NoError(t, err)
		assert.Equal(t, []string{"wa02"}, NameShorts(found))

		found, err = s.ListCards(ctx, store.CardQuery{Search: "of wands"})
		require.NoError(t, err)
		assert.Equal(t, []string{"wa02", "waac", "wapa"}, NameShorts(found))
	})

	t.Run("get returns stored shape", func(t *testing.T) {
		s := seeded(t)
		c, err := s.GetCard(context.Background(), "waac")
		require.NoError(t, err)
		assert.Equal(t, Cards()[2], c)

		major, err := s.GetCard(context.Background(), "ar00")
		require.NoError(t, err)
		assert.Nil(t, major.Suit)

		_, err = s.GetCard(context.Background(), "zz99")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("find by name matches any language", func(t *testing.T) {
		s := seeded(t)
		ctx := context.Background()

		byEnglish, err := s.FindCardsByName(ctx, "The Fool")
		require.NoError(t, err)
		assert.Equal(t, []string{"ar00"}, NameShorts(byEnglish))

		bySpanish, err := s.FindCardsByName(ctx, "El Loco")
		require.NoError(t, err)
		assert.Equal(t, []string{"ar00"}, NameShorts(bySpanish))

		none, err := s.FindCardsByName(ctx, "the fool")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("update merges language keys", func(t *testing.T) {
		s := seeded(t)
		ctx := context.Background()

		p := card.Patch{}
		p.Set(card.FieldName, lang.Spanish, "Dos de Bastos")
		p.Set(card.FieldMeaningUp, lang.Spanish, "Riquezas")
		updated, err := s.UpdateCard(ctx, "wa02", p)
		require.NoError(t, err)
		assert.Equal(t, lang.NewText("Two of Wands", "Dos de Bastos"), updated.Name)

		got, err := s.GetCard(ctx, "wa02")
		require.NoError(t, err)
		assert.Equal(t, "Two of Wands", got.Name[lang.English])
		assert.Equal(t, "Dos de Bastos", got.Name[lang.Spanish])
		assert.Equal(t, lang.NewText("Riches, fortune, magnificence", "Riquezas"), got.MeaningUp)
		assert.Equal(t, Cards()[3].MeaningRev, got.MeaningRev)
	})

	t.Run("update rejects invalid patches", func(t *testing.T) {
		s := seeded(t)
		ctx := context.Background()

		_, err := s.UpdateCard(ctx, "ar00", card.Patch{card.FieldSuit: {lang.English: "cups"}})
		require.ErrorIs(t, err, card.ErrInvalid)

		_, err = s.UpdateCard(ctx, "zz99", card.Patch{card.FieldName: {lang.Spanish: "x"}})
		require.ErrorIs(t, err, store.ErrNotFound)

		got, err := s.GetCard(ctx, "ar00")
		require.NoError(t, err)
		assert.Nil(t, got.Suit)
	})

	t.Run("replace swaps the collection", func(t *testing.T) {
		s := seeded(t)
		ctx := context.Background()
		require.NoError(t, s.ReplaceCards(ctx, Cards()[:1]))

		cards, err := s.ListCards(ctx, store.CardQuery{})
		require.NoError(t, err)
		assert.Equal(t, []string{"ar00"}, NameShorts(cards))

		bad := Cards()[0]
		bad.Name = nil
		require.ErrorIs(t, s.ReplaceCards(ctx, []card.Card{bad}), card.ErrInvalid)
		cards, err = s.ListCards(ctx, store.CardQuery{})
		require.NoError(t, err)
		assert.Len(t, cards, 1, "failed replace must roll back")
	})

	t.Run("sections", func(t *testing.T) {
		s := seeded(t)
		ctx := context.Background()

		active, err := s.ListSections(ctx, true)
		require.NoError(t, err)
		require.Len(t, active, 2)
		assert.Equal(t, tutorial.Overview, active[0].Key)
		assert.Equal(t, tutorial.MajorArcana, active[1].Key)

		all, err := s.ListSections(ctx, false)
		require.NoError(t, err)
		assert.Len(t, all, 3)

		suits, err := s.GetSection(ctx, tutorial.Suits)
		require.NoError(t, err)
		assert.False(t, suits.Active)
		assert.JSONEq(t, string(Sections()[2].Content[lang.English]), string(suits.Content[lang.English]))

		_, err = s.GetSection(ctx, tutorial.MinorArcana)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

package fetch

import (
	"context"
	"strconv"

	"github.com/arcanaland/arcanum/internal/card"
	"github.com/arcanaland/arcanum/internal/lang"
	"github.com/arcanaland/arcanum/internal/tutorial"
)

// All returns every card for l.
func (c *Client) All(ctx context.Context, l lang.Code) ([]card.View, error) {
	return do(ctx, c, NewKey(OpCardsAll, l), func(ctx context.Context) ([]card.View, error) {
		return c.cards.All(ctx, l)
	})
}

func (c *Client) ByKey(ctx context.Context, nameShort string, l lang.Code) (card.View, error) {
	return do(ctx, c, NewKey(OpCardsByKey, l, nameShort), func(ctx context.Context) (card.View, error) {
		return c.cards.ByKey(ctx, nameShort, l)
	})
}

func (c *Client) ByDisplayName(ctx context.Context, name string, l lang.Code) (card.View, error) {
	return do(ctx, c, NewKey(OpCardsByName, l, name), func(ctx context.Context) (card.View, error) {
		return c.cards.ByDisplayName(ctx, name, l)
	})
}

// Random is never cached: every call is a fresh draw.
func (c *Client) Random(ctx context.Context, l lang.Code) (card.View, error) {
	return do(ctx, c, NewKey(OpCardsRandom, l), func(ctx context.Context) (card.View, error) {
		return c.cards.Random(ctx, l)
	})
}

func (c *Client) RandomN(ctx context.Context, n int, l lang.Code) ([]card.View, error) {
	return do(ctx, c, NewKey(OpCardsRandomN, l, strconv.Itoa(n)), func(ctx context.Context) ([]card.View, error) {
		return c.cards.RandomN(ctx, n, l)
	})
}

func (c *Client) BySuit(ctx context.Context, suit string, l lang.Code) ([]card.View, error) {
	return do(ctx, c, NewKey(OpCardsBySuit, l, suit), func(ctx context.Context) ([]card.View, error) {
		return c.cards.BySuit(ctx, suit, l)
	})
}

func (c *Client) ByType(ctx context.Context, arcana string, l lang.Code) ([]card.View, error) {
	return do(ctx, c, NewKey(OpCardsByType, l, arcana), func(ctx context.Context) ([]card.View, error) {
		return c.cards.ByType(ctx, arcana, l)
	})
}

func (c *Client) Search(ctx context.Context, q string, l lang.Code) ([]card.View, error) {
	return do(ctx, c, NewKey(OpCardsSearch, l, q), func(ctx context.Context) ([]card.View, error) {
		return c.cards.Search(ctx, q, l)
	})
}

// Legacy reads are keyed under English since their output never varies.

func (c *Client) AllLegacy(ctx context.Context) ([]card.Legacy, error) {
	return do(ctx, c, NewKey(OpLegacyAll, lang.English), c.cards.AllLegacy)
}

func (c *Client) ByKeyLegacy(ctx context.Context, nameShort string) (card.Legacy, error) {
	return do(ctx, c, NewKey(OpLegacyByKey, lang.English, nameShort), func(ctx context.Context) (card.Legacy, error) {
		return c.cards.ByKeyLegacy(ctx, nameShort)
	})
}

func (c *Client) ByDisplayNameLegacy(ctx context.Context, name string) (card.Legacy, error) {
	return do(ctx, c, NewKey(OpLegacyByName, lang.English, name), func(ctx context.Context) (card.Legacy, error) {
		return c.cards.ByDisplayNameLegacy(ctx, name)
	})
}

func (c *Client) RandomLegacy(ctx context.Context) (card.Legacy, error) {
	return do(ctx, c, NewKey(OpLegacyRandom, lang.English), c.cards.RandomLegacy)
}

func (c *Client) RandomNLegacy(ctx context.Context, n int) ([]card.Legacy, error) {
	return do(ctx, c, NewKey(OpLegacyRandomN, lang.English, strconv.Itoa(n)), func(ctx context.Context) ([]card.Legacy, error) {
		return c.cards.RandomNLegacy(ctx, n)
	})
}

func (c *Client) BySuitLegacy(ctx context.Context, suit string) ([]card.Legacy, error) {
	return do(ctx, c, NewKey(OpLegacyBySuit, lang.English, suit), func(ctx context.Context) ([]card.Legacy, error) {
		return c.cards.BySuitLegacy(ctx, suit)
	})
}

func (c *Client) ByTypeLegacy(ctx context.Context, arcana string) ([]card.Legacy, error) {
	return do(ctx, c, NewKey(OpLegacyByType, lang.English, arcana), func(ctx context.Context) ([]card.Legacy, error) {
		return c.cards.ByTypeLegacy(ctx, arcana)
	})
}

func (c *Client) SearchLegacy(ctx context.Context, q string) ([]card.Legacy, error) {
	return do(ctx, c, NewKey(OpLegacySearch, lang.English, q), func(ctx context.Context) ([]card.Legacy, error) {
		return c.cards.SearchLegacy(ctx, q)
	})
}

// Tutorials returns the active tutorial sections for l.
func (c *Client) Tutorials(ctx context.Context, l lang.Code) ([]tutorial.View, error) {
	return do(ctx, c, NewKey(OpTutorialsAll, l), func(ctx context.Context) ([]tutorial.View, error) {
		return c.tutorials.All(ctx, l)
	})
}

func (c *Client) Tutorial(ctx context.Context, key string, l lang.Code) (tutorial.View, error) {
	return do(ctx, c, NewKey(OpTutorialSection, l, key), func(ctx context.Context) (tutorial.View, error) {
		return c.tutorials.Section(ctx, key, l)
	})
}

// Raw returns the stored cards unprojected. It bypasses the cache.
func (c *Client) Raw(ctx context.Context) ([]card.Card, error) {
	return c.cards.Raw(ctx)
}

// Update writes through the card repository and drops every cached card
// read so the next read sees the change.
func (c *Client) Update(ctx context.Context, nameShort string, p card.Patch) (card.Card, error) {
	updated, err := c.cards.Update(ctx, nameShort, p)
	if err != nil {
		return card.Card{}, err
	}
	if err := c.InvalidateCards(ctx); err != nil {
		c.logger.Warn("card cache invalidation failed", "error", err)
	}
	return updated, nil
}

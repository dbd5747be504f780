package catalog

import (
	"context"
	"strings"

	"github.com/arcanaland/arcanum/internal/card"
	"github.com/arcanaland/arcanum/internal/lang"
	"github.com/arcanaland/arcanum/internal/store"
)

// The legacy reads serve English-only flattened cards to callers that
// predate multilingual content. Suit and type listings keep their historic
// name_short order.

// AllLegacy returns every card ordered by name_short.
func (r *Cards) AllLegacy(ctx context.Context) ([]card.Legacy, error) {
	cards, err := r.list(ctx, "all cards", store.CardQuery{})
	if err != nil {
		return nil, err
	}
	return card.ProjectAllLegacy(cards), nil
}

func (r *Cards) ByKeyLegacy(ctx context.Context, nameShort string) (card.Legacy, error) {
	c, err := r.get(ctx, nameShort)
	if err != nil {
		return card.Legacy{}, err
	}
	return card.ProjectLegacy(c), nil
}

func (r *Cards) ByDisplayNameLegacy(ctx context.Context, name string) (card.Legacy, error) {
	c, err := r.byDisplayName(ctx, name, lang.English)
	if err != nil {
		return card.Legacy{}, err
	}
	return card.ProjectLegacy(c), nil
}

func (r *Cards) RandomLegacy(ctx context.Context) (card.Legacy, error) {
	c, err := r.random(ctx)
	if err != nil {
		return card.Legacy{}, err
	}
	return card.ProjectLegacy(c), nil
}

func (r *Cards) RandomNLegacy(ctx context.Context, n int) ([]card.Legacy, error) {
	cards, err := r.randomN(ctx, n)
	if err != nil {
		return nil, err
	}
	return card.ProjectAllLegacy(cards), nil
}

func (r *Cards) BySuitLegacy(ctx context.Context, suit string) ([]card.Legacy, error) {
	cards, err := r.bySuit(ctx, suit, store.OrderNameShort)
	if err != nil {
		return nil, err
	}
	return card.ProjectAllLegacy(cards), nil
}

func (r *Cards) ByTypeLegacy(ctx context.Context, arcana string) ([]card.Legacy, error) {
	cards, err := r.byType(ctx, arcana, store.OrderNameShort)
	if err != nil {
		return nil, err
	}
	return card.ProjectAllLegacy(cards), nil
}

func (r *Cards) SearchLegacy(ctx context.Context, q string) ([]card.Legacy, error) {
	cards, err := r.list(ctx, "search cards", store.CardQuery{Search: strings.TrimSpace(q)})
	if err != nil {
		return nil, err
	}
	return card.ProjectAllLegacy(cards), nil
}

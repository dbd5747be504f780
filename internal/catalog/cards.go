package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/arcanaland/arcanum/internal/card"
	"github.com/arcanaland/arcanum/internal/lang"
	"github.com/arcanaland/arcanum/internal/store"
)

type options struct {
	logger *slog.Logger
	rand   *rand.Rand
}

// Option configures a repository.
type Option func(*options)

// WithLogger sets the logger used for degraded reads and skipped records.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithRand sets the random source for draws. Tests pass a seeded source.
func WithRand(r *rand.Rand) Option {
	return func(o *options) { o.rand = r }
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// Cards is the card repository. A nil store means not configured: listings
// come back empty and everything else fails with ErrNotConfigured.
type Cards struct {
	store  store.Cards
	logger *slog.Logger

	mu   sync.Mutex
	rand *rand.Rand
}

// NewCards returns a card repository over s.
func NewCards(s store.Cards, opts ...Option) *Cards {
	o := buildOptions(opts)
	return &Cards{store: s, logger: o.logger, rand: o.rand}
}

// Configured reports whether a backing store is present.
func (r *Cards) Configured() bool {
	return r.store != nil
}

func (r *Cards) list(ctx context.Context, op string, q store.CardQuery) ([]card.Card, error) {
	if r.store == nil {
		r.logger.Warn("store not configured, returning empty result", "op", op)
		return nil, nil
	}
	cards, err := r.store.ListCards(ctx, q)
	return cards, wrap(op, err)
}

func (r *Cards) get(ctx context.Context, nameShort string) (card.Card, error) {
	if r.store == nil {
		return card.Card{}, ErrNotConfigured
	}
	c, err := r.store.GetCard(ctx, nameShort)
	return c, wrap("get card "+nameShort, err)
}

// All returns every card ordered by name_short.
func (r *Cards) All(ctx context.Context, l lang.Code) ([]card.View, error) {
	cards, err := r.list(ctx, "all cards", store.CardQuery{})
	if err != nil {
		return nil, err
	}
	return card.ProjectAll(cards, l), nil
}

// ByKey returns one card by name_short.
func (r *Cards) ByKey(ctx context.Context, nameShort string, l lang.Code) (card.View, error) {
	c, err := r.get(ctx, nameShort)
	if err != nil {
		return card.View{}, err
	}
	return card.Project(c, l), nil
}

// ByDisplayName returns the card whose name equals name in any supported
// language. A match in l wins over an English match, which wins over a
// match in another language. Two cards in the winning group is ambiguous.
func (r *Cards) ByDisplayName(ctx context.Context, name string, l lang.Code) (card.View, error) {
	c, err := r.byDisplayName(ctx, name, l)
	if err != nil {
		return card.View{}, err
	}
	return card.Project(c, l), nil
}

func (r *Cards) byDisplayName(ctx context.Context, name string, l lang.Code) (card.Card, error) {
	if r.store == nil {
		return card.Card{}, ErrNotConfigured
	}
	matches, err := r.store.FindCardsByName(ctx, name)
	if err != nil {
		return card.Card{}, wrap("find card by name", err)
	}

	var requested, english, other []card.Card
	for _, c := range matches {
		switch {
		case c.Name[l] == name:
			requested = append(requested, c)
		case c.Name[lang.English] == name:
			english = append(english, c)
		default:
			other = append(other, c)
		}
	}
	for _, tier := range [][]card.Card{requested, english, other} {
		switch len(tier) {
		case 0:
			continue
		case 1:
			return tier[0], nil
		default:
			keys := make([]string, 0, len(tier))
			for _, c := range tier {
				keys = append(keys, c.NameShort)
			}
			return card.Card{}, fmt.Errorf("%w: %q matches %s", ErrAmbiguous, name, strings.Join(keys, ", "))
		}
	}
	return card.Card{}, fmt.Errorf("card named %q: %w", name, ErrNotFound)
}

// Random draws one card uniformly from the whole collection.
func (r *Cards) Random(ctx context.Context, l lang.Code) (card.View, error) {
	c, err := r.random(ctx)
	if err != nil {
		return card.View{}, err
	}
	return card.Project(c, l), nil
}

func (r *Cards) random(ctx context.Context) (card.Card, error) {
	if r.store == nil {
		return card.Card{}, ErrNotConfigured
	}
	cards, err := r.store.ListCards(ctx, store.CardQuery{})
	if err != nil {
		return card.Card{}, wrap("random card", err)
	}
	if len(cards) == 0 {
		return card.Card{}, ErrEmptyCollection
	}
	return cards[r.intN(len(cards))], nil
}

// RandomN draws min(n, size) distinct cards by shuffling the collection and
// taking a prefix. n <= 0 yields an empty result.
func (r *Cards) RandomN(ctx context.Context, n int, l lang.Code) ([]card.View, error) {
	cards, err := r.randomN(ctx, n)
	if err != nil {
		return nil, err
	}
	return card.ProjectAll(cards, l), nil
}

func (r *Cards) randomN(ctx context.Context, n int) ([]card.Card, error) {
	if r.store == nil {
		return nil, ErrNotConfigured
	}
	if n <= 0 {
		return []card.Card{}, nil
	}
	cards, err := r.store.ListCards(ctx, store.CardQuery{})
	if err != nil {
		return nil, wrap("random cards", err)
	}
	r.shuffle(cards)
	return cards[:min(n, len(cards))], nil
}

func (r *Cards) intN(n int) int {
	if r.rand == nil {
		return rand.IntN(n)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.IntN(n)
}

func (r *Cards) shuffle(cards []card.Card) {
	swap := func(i, j int) { cards[i], cards[j] = cards[j], cards[i] }
	if r.rand == nil {
		rand.Shuffle(len(cards), swap)
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Shuffle(len(cards), swap)
}

// BySuit returns the cards of a suit, matched against the suit label in any
// language, ordered by value_int.
func (r *Cards) BySuit(ctx context.Context, suit string, l lang.Code) ([]card.View, error) {
	cards, err := r.bySuit(ctx, suit, store.OrderValueInt)
	if err != nil {
		return nil, err
	}
	return card.ProjectAll(cards, l), nil
}

func (r *Cards) bySuit(ctx context.Context, suit string, order store.Order) ([]card.Card, error) {
	if strings.TrimSpace(suit) == "" {
		return nil, fmt.Errorf("%w: suit is required", ErrValidation)
	}
	return r.list(ctx, "cards by suit", store.CardQuery{Suit: suit, Order: order})
}

// ByType returns the major or minor arcana ordered by value_int.
func (r *Cards) ByType(ctx context.Context, arcana string, l lang.Code) ([]card.View, error) {
	cards, err := r.byType(ctx, arcana, store.OrderValueInt)
	if err != nil {
		return nil, err
	}
	return card.ProjectAll(cards, l), nil
}

func (r *Cards) byType(ctx context.Context, arcana string, order store.Order) ([]card.Card, error) {
	t, err := card.ParseArcana(arcana)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return r.list(ctx, "cards by type", store.CardQuery{Type: t, Order: order})
}

// Search matches q case-insensitively against the name in every language
// and against name_short, ordered by name_short.
func (r *Cards) Search(ctx context.Context, q string, l lang.Code) ([]card.View, error) {
	cards, err := r.list(ctx, "search cards", store.CardQuery{Search: strings.TrimSpace(q)})
	if err != nil {
		return nil, err
	}
	return card.ProjectAll(cards, l), nil
}

// Update merges p into the card at language-key granularity and returns the
// stored result. There is no version check: the last writer wins.
func (r *Cards) Update(ctx context.Context, nameShort string, p card.Patch) (card.Card, error) {
	if r.store == nil {
		return card.Card{}, ErrNotConfigured
	}
	if len(p) == 0 {
		return card.Card{}, fmt.Errorf("%w: nothing to update for %s", ErrValidation, nameShort)
	}
	updated, err := r.store.UpdateCard(ctx, nameShort, p)
	if err != nil {
		return card.Card{}, wrap("update card "+nameShort, err)
	}
	r.logger.Info("card updated", "name_short", nameShort, "fields", len(p))
	return updated, nil
}

// Raw returns the stored cards ordered by value_int, for editing.
func (r *Cards) Raw(ctx context.Context) ([]card.Card, error) {
	if r.store == nil {
		return nil, ErrNotConfigured
	}
	cards, err := r.store.ListCards(ctx, store.CardQuery{Order: store.OrderValueInt})
	return cards, wrap("raw cards", err)
}

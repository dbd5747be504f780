// Package store defines persistence contracts for cards and tutorial sections.
package store

import (
	"context"
	"errors"

	"github.com/arcanaland/arcanum/internal/card"
	"github.com/arcanaland/arcanum/internal/tutorial"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// Order selects the sort key of a card listing.
type Order int

const (
	// OrderNameShort sorts by name_short.
	OrderNameShort Order = iota
	// OrderValueInt sorts by value_int, ties by name_short.
	OrderValueInt
)

// CardQuery filters a card listing. Zero fields do not filter.
type CardQuery struct {
	Type   card.Arcana
	Suit   string // suit label in any language, case-insensitive
	Search string // case-insensitive substring of name (any language) or name_short
	Order  Order
}

// Cards persists tarot cards keyed by name_short.
type Cards interface {
	ListCards(ctx context.Context, q CardQuery) ([]card.Card, error)
	GetCard(ctx context.Context, nameShort string) (card.Card, error)
	// FindCardsByName returns cards whose name equals name in any language.
	FindCardsByName(ctx context.Context, name string) ([]card.Card, error)
	// UpdateCard merges p into the stored card at language-key granularity
	// and returns the updated card.
	UpdateCard(ctx context.Context, nameShort string, p card.Patch) (card.Card, error)
	// ReplaceCards swaps the whole collection in one transaction.
	ReplaceCards(ctx context.Context, cards []card.Card) error
}

// Tutorials persists tutorial sections keyed by section key.
type Tutorials interface {
	// ListSections returns sections ordered by order_index.
	ListSections(ctx context.Context, activeOnly bool) ([]tutorial.Section, error)
	GetSection(ctx context.Context, key tutorial.Key) (tutorial.Section, error)
	ReplaceSections(ctx context.Context, sections []tutorial.Section) error
}

// Store is a complete backing store.
type Store interface {
	Cards
	Tutorials
	Close() error
}

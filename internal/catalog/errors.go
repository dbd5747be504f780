// Package catalog holds the card and tutorial repositories: language-aware
// reads projected for display, legacy English reads and partial updates.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/arcanaland/arcanum/internal/card"
	"github.com/arcanaland/arcanum/internal/store"
	"github.com/arcanaland/arcanum/internal/tutorial"
)

var (
	// ErrNotFound indicates the requested card or section does not exist.
	ErrNotFound = errors.New("not found")
	// ErrEmptyCollection indicates a random draw against an empty collection.
	ErrEmptyCollection = errors.New("empty collection")
	// ErrValidation indicates a malformed request or update.
	ErrValidation = errors.New("validation failed")
	// ErrTransport indicates the backing store failed; callers may retry.
	ErrTransport = errors.New("store unavailable")
	// ErrNotConfigured indicates no backing store is configured.
	ErrNotConfigured = errors.New("store not configured")
	// ErrAmbiguous indicates a display name matched more than one card.
	ErrAmbiguous = errors.New("ambiguous name")
)

// wrap maps store errors onto the catalog taxonomy.
func wrap(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case errors.Is(err, card.ErrInvalid), errors.Is(err, tutorial.ErrUnknownSection):
		return fmt.Errorf("%s: %w: %v", op, ErrValidation, err)
	}
	return fmt.Errorf("%s: %w: %v", op, ErrTransport, err)
}

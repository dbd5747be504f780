// Package admin implements the card edit session: per-row pending changes
// over the card repository, applied locally and saved or discarded row by row.
//
// There is no version check against other sessions. The last save to reach
// the store wins.
package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/arcanaland/arcanum/internal/card"
	"github.com/arcanaland/arcanum/internal/lang"
	"github.com/arcanaland/arcanum/internal/store"
)

var (
	// ErrCellBusy is returned by BeginEdit while another cell is open.
	ErrCellBusy = errors.New("another cell is being edited")
	// ErrNotEditing is returned when no cell is open.
	ErrNotEditing = errors.New("no cell is being edited")
	// ErrUnknownRow is returned for keys that were not loaded.
	ErrUnknownRow = errors.New("unknown row")
	// ErrNotEditable is returned for cells that cannot hold a value.
	ErrNotEditable = errors.New("cell is not editable")
	// ErrRowSaving is returned while a save of the row is in flight.
	ErrRowSaving = errors.New("row is being saved")
)

// Repository is the card store the session reads from and writes to. Both
// catalog.Cards and fetch.Client satisfy it.
type Repository interface {
	Raw(ctx context.Context) ([]card.Card, error)
	Update(ctx context.Context, nameShort string, p card.Patch) (card.Card, error)
}

// Cell addresses one field of one row.
type Cell struct {
	Key   string
	Field card.Field
}

// Row is a loaded card with its pending overlay. Card is Original with
// Pending applied.
type Row struct {
	Card     card.Card
	Original card.Card
	Pending  card.Patch
}

// Dirty reports whether the row has unsaved changes.
func (r Row) Dirty() bool { return len(r.Pending) > 0 }

// Filter narrows Rows and Stats. Zero fields do not filter.
type Filter struct {
	Type      card.Arcana
	Search    string
	DirtyOnly bool
}

// Stats summarises the loaded rows.
type Stats struct {
	Total int
	Shown int
	Dirty int
}

// Session holds the edit state of one operator. It is safe for concurrent
// use; the lock is released while a save is in flight.
type Session struct {
	repo   Repository
	logger *slog.Logger

	mu        sync.Mutex
	order     []string
	originals map[string]card.Card
	pending   map[string]card.Patch
	saving    map[string]bool
	editing   *Cell
}

// NewSession returns an empty session over repo. A nil logger discards.
func NewSession(repo Repository, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{
		repo:      repo,
		logger:    logger,
		originals: map[string]card.Card{},
		pending:   map[string]card.Patch{},
		saving:    map[string]bool{},
	}
}

// Load replaces the session with a fresh snapshot of the collection,
// dropping every pending change and the open cell.
func (s *Session) Load(ctx context.Context) error {
	s.mu.Lock()
	busy := len(s.saving) > 0
	s.mu.Unlock()
	if busy {
		return ErrRowSaving
	}

	cards, err := s.repo.Raw(ctx)
	if err != nil {
		return fmt.Errorf("load cards: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = make([]string, 0, len(cards))
	s.originals = make(map[string]card.Card, len(cards))
	s.pending = map[string]card.Patch{}
	s.editing = nil
	for _, c := range cards {
		s.order = append(s.order, c.NameShort)
		s.originals[c.NameShort] = c
	}
	s.logger.Debug("admin session loaded", "cards", len(cards))
	return nil
}

func (s *Session) row(key string) Row {
	original := s.originals[key]
	r := Row{Card: original, Original: original}
	if p, ok := s.pending[key]; ok && len(p) > 0 {
		r.Pending = p.Clone()
		if applied, err := p.Apply(original); err == nil {
			r.Card = applied
		}
	}
	return r
}

func (f Filter) match(r Row) bool {
	if f.DirtyOnly && !r.Dirty() {
		return false
	}
	return store.Match(r.Card, store.CardQuery{Type: f.Type, Search: f.Search})
}

// Rows returns the rows matching f in load order.
func (s *Session) Rows(f Filter) []Row {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([]Row, 0, len(s.order))
	for _, key := range s.order {
		if r := s.row(key); f.match(r) {
			rows = append(rows, r)
		}
	}
	return rows
}

// Row returns one row.
func (s *Session) Row(key string) (Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.originals[key]; !ok {
		return Row{}, fmt.Errorf("%w: %s", ErrUnknownRow, key)
	}
	return s.row(key), nil
}

func (s *Session) Stats(f Filter) Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{Total: len(s.order)}
	for _, key := range s.order {
		r := s.row(key)
		if r.Dirty() {
			st.Dirty++
		}
		if f.match(r) {
			st.Shown++
		}
	}
	return st
}

// BeginEdit opens a cell. Only one cell may be open at a time.
func (s *Session) BeginEdit(key string, field card.Field) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.editing != nil {
		if *s.editing == (Cell{Key: key, Field: field}) {
			return nil
		}
		return fmt.Errorf("%w: %s.%s", ErrCellBusy, s.editing.Key, s.editing.Field)
	}
	original, ok := s.originals[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRow, key)
	}
	if _, err := card.ParseField(string(field)); err != nil {
		return fmt.Errorf("%w: %v", ErrNotEditable, err)
	}
	if field == card.FieldSuit && original.Type == card.Major {
		return fmt.Errorf("%w: %s has no suit", ErrNotEditable, key)
	}
	if s.saving[key] {
		return fmt.Errorf("%w: %s", ErrRowSaving, key)
	}
	s.editing = &Cell{Key: key, Field: field}
	return nil
}

// Editing returns the open cell, if any.
func (s *Session) Editing() (Cell, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editing == nil {
		return Cell{}, false
	}
	return *s.editing, true
}

// CommitEdit writes value into the open cell's overlay for language l and
// closes the cell. Other languages of the field are kept. An invalid value
// leaves the cell open and the overlay untouched.
func (s *Session) CommitEdit(l lang.Code, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.editing == nil {
		return ErrNotEditing
	}
	cell := *s.editing
	// Patches merge non-empty values only, so a blank commit could never
	// reach the store.
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s.%s.%s cannot be blank", card.ErrInvalid, cell.Key, cell.Field, l)
	}

	next := s.pending[cell.Key].Clone()
	next.Set(cell.Field, l, value)
	if _, err := next.Apply(s.originals[cell.Key]); err != nil {
		return err
	}
	s.pending[cell.Key] = next
	s.editing = nil
	return nil
}

// CancelEdit closes the open cell without touching the overlay.
func (s *Session) CancelEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editing = nil
}

// Value returns the displayed value of a cell for l, pending changes
// included, with the English fallback.
func (s *Session) Value(key string, field card.Field, l lang.Code) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.originals[key]; !ok {
		return ""
	}
	return lang.Resolve(s.row(key).Card.Text(field), l)
}

// Missing reports whether the cell shows the English fallback for l.
func (s *Session) Missing(key string, field card.Field, l lang.Code) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.originals[key]; !ok {
		return false
	}
	return lang.IsMissing(s.row(key).Card.Text(field), l)
}

// Dirty reports whether key has unsaved changes.
func (s *Session) Dirty(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending[key]) > 0
}

// SaveRow sends the row's whole overlay in one update. On success the
// overlay becomes part of the original snapshot; on failure it is kept so
// the save can be retried or cancelled. A clean row is a no-op.
func (s *Session) SaveRow(ctx context.Context, key string) error {
	s.mu.Lock()
	original, ok := s.originals[key]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownRow, key)
	}
	if s.saving[key] {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrRowSaving, key)
	}
	p := s.pending[key].Clone()
	if len(p) == 0 {
		s.mu.Unlock()
		return nil
	}
	if s.editing != nil && s.editing.Key == key {
		s.editing = nil
	}
	s.saving[key] = true
	s.mu.Unlock()

	_, err := s.repo.Update(ctx, key, p)

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.saving, key)
	if err != nil {
		s.logger.Warn("card save failed", "name_short", key, "error", err)
		return fmt.Errorf("save %s failed, pending changes kept (saves are last-writer-wins, reload to see edits made elsewhere): %w", key, err)
	}

	applied, err := p.Apply(original)
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	s.originals[key] = applied
	delete(s.pending, key)
	s.logger.Info("card saved", "name_short", key, "fields", len(p))
	return nil
}

// CancelRow drops the row's overlay without contacting the store.
func (s *Session) CancelRow(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.originals[key]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRow, key)
	}
	if s.saving[key] {
		return fmt.Errorf("%w: %s", ErrRowSaving, key)
	}
	delete(s.pending, key)
	if s.editing != nil && s.editing.Key == key {
		s.editing = nil
	}
	return nil
}

// Package sqlite provides a SQLite-backed catalog store. Multilingual
// columns are JSON text and partial updates are merged with json_patch.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/arcanaland/arcanum/internal/card"
	"github.com/arcanaland/arcanum/internal/store"
	"github.com/arcanaland/arcanum/internal/store/sqlite/migrations"
	"github.com/arcanaland/arcanum/internal/tutorial"
)

const cardColumns = `name_short, type, name, value, value_int, meaning_up, meaning_rev, description, suit, image_path`

// Store persists cards and tutorials in SQLite.
type Store struct {
	sqlDB *sql.DB
}

var _ store.Store = (*Store)(nil)

// Open opens a SQLite store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One writer at a time; transactions keep their own connection.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(context.Background(), sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCard(row scanner) (card.Card, error) {
	var (
		r                          store.CardRow
		name, value, up, rev, desc string
		suit                       sql.NullString
	)
	if err := row.Scan(&r.NameShort, &r.Type, &name, &value, &r.ValueInt, &up, &rev, &desc, &suit, &r.ImagePath); err != nil {
		return card.Card{}, err
	}
	r.Name, r.Value, r.MeaningUp, r.MeaningRev, r.Description = []byte(name), []byte(value), []byte(up), []byte(rev), []byte(desc)
	if suit.Valid {
		r.Suit = []byte(suit.String)
	}
	return r.Card()
}

func queryCards(ctx context.Context, q querier, query string, args ...any) ([]card.Card, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []card.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func getCard(ctx context.Context, q querier, nameShort string) (card.Card, error) {
	c, err := scanCard(q.QueryRowContext(ctx, `SELECT `+cardColumns+` FROM cards WHERE name_short = ?`, nameShort))
	if errors.Is(err, sql.ErrNoRows) {
		return card.Card{}, store.ErrNotFound
	}
	if err != nil {
		return card.Card{}, fmt.Errorf("get card %s: %w", nameShort, err)
	}
	return c, nil
}

// ListCards filters type and order in SQL. Suit and search matching run in
// Go because SQLite's LOWER only folds ASCII.
func (s *Store) ListCards(ctx context.Context, q store.CardQuery) ([]card.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards`
	var args []any
	if q.Type != "" {
		query += ` WHERE type = ?`
		args = append(args, string(q.Type))
	}
	if q.Order == store.OrderValueInt {
		query += ` ORDER BY value_int, name_short`
	} else {
		query += ` ORDER BY name_short`
	}

	cards, err := queryCards(ctx, s.sqlDB, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	out := cards[:0]
	for _, c := range cards {
		if store.Match(c, q) {
			out = append(out, c)
		}
	}
	return out, nil
}

// GetCard returns one card by name_short.
func (s *Store) GetCard(ctx context.Context, nameShort string) (card.Card, error) {
	return getCard(ctx, s.sqlDB, nameShort)
}

// FindCardsByName returns cards whose name equals name in any language.
func (s *Store) FindCardsByName(ctx context.Context, name string) ([]card.Card, error) {
	cards, err := queryCards(ctx, s.sqlDB,
		`SELECT `+cardColumns+` FROM cards
		 WHERE EXISTS (SELECT 1 FROM json_each(cards.name) WHERE json_each.value = ?)
		 ORDER BY name_short`, name)
	if err != nil {
		return nil, fmt.Errorf("find cards by name: %w", err)
	}
	return cards, nil
}

// UpdateCard validates p against the stored card and merges it with
// json_patch, so language keys outside the patch are never rewritten.
func (s *Store) UpdateCard(ctx context.Context, nameShort string, p card.Patch) (card.Card, error) {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return card.Card{}, fmt.Errorf("begin update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	current, err := getCard(ctx, tx, nameShort)
	if err != nil {
		return card.Card{}, err
	}
	if _, err := p.Apply(current); err != nil {
		return card.Card{}, err
	}

	var (
		sets []string
		args []any
	)
	for _, f := range p.SortedFields() {
		b, err := store.EncodeText(p[f])
		if err != nil {
			return card.Card{}, fmt.Errorf("encode %s: %w", f, err)
		}
		sets = append(sets, fmt.Sprintf("%[1]s = json_patch(COALESCE(%[1]s, '{}'), ?)", f))
		args = append(args, string(b))
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC().UnixMilli(), nameShort)

	if _, err := tx.ExecContext(ctx, `UPDATE cards SET `+strings.Join(sets, ", ")+` WHERE name_short = ?`, args...); err != nil {
		return card.Card{}, fmt.Errorf("update card %s: %w", nameShort, err)
	}

	updated, err := getCard(ctx, tx, nameShort)
	if err != nil {
		return card.Card{}, err
	}
	if err := tx.Commit(); err != nil {
		return card.Card{}, fmt.Errorf("commit update: %w", err)
	}
	return updated, nil
}

// ReplaceCards deletes every card and inserts cards in one transaction.
func (s *Store) ReplaceCards(ctx context.Context, cards []card.Card) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cards`); err != nil {
		return fmt.Errorf("clear cards: %w", err)
	}
	now := time.Now().UTC().UnixMilli()
	for _, c := range cards {
		r, err := store.NewCardRow(c)
		if err != nil {
			return err
		}
		var suit any
		if r.Suit != nil {
			suit = string(r.Suit)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO cards (`+cardColumns+`, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.NameShort, r.Type, string(r.Name), string(r.Value), r.ValueInt,
			string(r.MeaningUp), string(r.MeaningRev), string(r.Description), suit, r.ImagePath, now,
		)
		if err != nil {
			return fmt.Errorf("insert card %s: %w", c.NameShort, err)
		}
	}
	return tx.Commit()
}

func scanSection(row scanner) (tutorial.Section, error) {
	var (
		r              store.SectionRow
		title, content string
		active         int
	)
	if err := row.Scan(&r.Key, &title, &content, &r.OrderIndex, &active); err != nil {
		return tutorial.Section{}, err
	}
	r.Title, r.Content, r.Active = []byte(title), []byte(content), active != 0
	return r.Section()
}

// ListSections returns sections ordered by order_index.
func (s *Store) ListSections(ctx context.Context, activeOnly bool) ([]tutorial.Section, error) {
	query := `SELECT section_key, title, content, order_index, is_active FROM tutorials`
	if activeOnly {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY order_index, section_key`

	rows, err := s.sqlDB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list tutorials: %w", err)
	}
	defer rows.Close()

	var sections []tutorial.Section
	for rows.Next() {
		sec, err := scanSection(rows)
		if err != nil {
			return nil, fmt.Errorf("list tutorials: %w", err)
		}
		sections = append(sections, sec)
	}
	return sections, rows.Err()
}

// GetSection returns one section by key, active or not.
func (s *Store) GetSection(ctx context.Context, key tutorial.Key) (tutorial.Section, error) {
	sec, err := scanSection(s.sqlDB.QueryRowContext(ctx,
		`SELECT section_key, title, content, order_index, is_active FROM tutorials WHERE section_key = ?`, string(key)))
	if errors.Is(err, sql.ErrNoRows) {
		return tutorial.Section{}, store.ErrNotFound
	}
	if err != nil {
		return tutorial.Section{}, fmt.Errorf("get tutorial %s: %w", key, err)
	}
	return sec, nil
}

// ReplaceSections deletes every section and inserts sections in one transaction.
func (s *Store) ReplaceSections(ctx context.Context, sections []tutorial.Section) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tutorials`); err != nil {
		return fmt.Errorf("clear tutorials: %w", err)
	}
	for _, sec := range sections {
		r, err := store.NewSectionRow(sec)
		if err != nil {
			return err
		}
		active := 0
		if r.Active {
			active = 1
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO tutorials (section_key, title, content, order_index, is_active) VALUES (?, ?, ?, ?, ?)`,
			r.Key, string(r.Title), string(r.Content), r.OrderIndex, active,
		)
		if err != nil {
			return fmt.Errorf("insert tutorial %s: %w", sec.Key, err)
		}
	}
	return tx.Commit()
}

// Package postgres provides a PostgreSQL-backed catalog store. Multilingual
// columns are JSONB and partial updates are merged with the || operator.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arcanaland/arcanum/internal/card"
	"github.com/arcanaland/arcanum/internal/store"
	"github.com/arcanaland/arcanum/internal/store/postgres/migrations"
	"github.com/arcanaland/arcanum/internal/tutorial"
)

const cardColumns = `name_short, type, name, value, value_int, meaning_up, meaning_rev, description, suit, image_path`

// Store persists cards and tutorials in PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

var _ store.Store = (*Store)(nil)

// Open connects to dsn and applies embedded migrations.
func Open(ctx context.Context, dsn string) (*Store, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := applyMigrations(ctx, pool, migrations.FS); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close releases the pool.
func (s *Store) Close() error {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
	return nil
}

func applyMigrations(ctx context.Context, pool *pgxpool.Pool, migrationFS fs.FS) error {
	entries, err := fs.ReadDir(migrationFS, ".")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	if _, err := pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
    name TEXT PRIMARY KEY,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	for _, file := range files {
		content, err := fs.ReadFile(migrationFS, file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}
		tx, err := pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin migration transaction %s: %w", file, err)
		}
		tag, err := tx.Exec(ctx, `INSERT INTO schema_migrations (name) VALUES ($1) ON CONFLICT DO NOTHING`, file)
		if err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("record migration %s: %w", file, err)
		}
		if tag.RowsAffected() == 0 {
			_ = tx.Rollback(ctx)
			continue
		}
		if _, err := tx.Exec(ctx, store.ExtractUpMigration(string(content))); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("exec migration %s: %w", file, err)
		}
		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit migration %s: %w", file, err)
		}
	}
	return nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func scanCard(row pgx.Row) (card.Card, error) {
	var r store.CardRow
	if err := row.Scan(&r.NameShort, &r.Type, &r.Name, &r.Value, &r.ValueInt, &r.MeaningUp, &r.MeaningRev, &r.Description, &r.Suit, &r.ImagePath); err != nil {
		return card.Card{}, err
	}
	return r.Card()
}

func queryCards(ctx context.Context, q querier, sql string, args ...any) ([]card.Card, error) {
	rows, err := q.Query(ctx, sql, args...)
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

func getCard(ctx context.Context, q querier, nameShort string, lock bool) (card.Card, error) {
	sql := `SELECT ` + cardColumns + ` FROM cards WHERE name_short = $1`
	if lock {
		sql += ` FOR UPDATE`
	}
	c, err := scanCard(q.QueryRow(ctx, sql, nameShort))
	if errors.Is(err, pgx.ErrNoRows) {
		return card.Card{}, store.ErrNotFound
	}
	if err != nil {
		return card.Card{}, fmt.Errorf("get card %s: %w", nameShort, err)
	}
	return c, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ListCards runs every filter in SQL.
func (s *Store) ListCards(ctx context.Context, q store.CardQuery) ([]card.Card, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if q.Type != "" {
		where = append(where, "type = "+arg(string(q.Type)))
	}
	if suit := strings.TrimSpace(q.Suit); suit != "" {
		where = append(where, `EXISTS (SELECT 1 FROM jsonb_each_text(suit) e WHERE lower(e.value) = lower(`+arg(suit)+`))`)
	}
	if q.Search != "" {
		pattern := arg("%" + likeEscaper.Replace(q.Search) + "%")
		where = append(where, `(name_short ILIKE `+pattern+` ESCAPE '\' OR EXISTS (SELECT 1 FROM jsonb_each_text(name) e WHERE e.value ILIKE `+pattern+` ESCAPE '\'))`)
	}

	sql := `SELECT ` + cardColumns + ` FROM cards`
	if len(where) > 0 {
		sql += ` WHERE ` + strings.Join(where, " AND ")
	}
	if q.Order == store.OrderValueInt {
		sql += ` ORDER BY value_int, name_short`
	} else {
		sql += ` ORDER BY name_short`
	}

	cards, err := queryCards(ctx, s.pool, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	return cards, nil
}

// GetCard returns one card by name_short.
func (s *Store) GetCard(ctx context.Context, nameShort string) (card.Card, error) {
	return getCard(ctx, s.pool, nameShort, false)
}

// FindCardsByName returns cards whose name equals name in any language.
func (s *Store) FindCardsByName(ctx context.Context, name string) ([]card.Card, error) {
	cards, err := queryCards(ctx, s.pool,
		`SELECT `+cardColumns+` FROM cards
		 WHERE EXISTS (SELECT 1 FROM jsonb_each_text(name) e WHERE e.value = $1)
		 ORDER BY name_short`, name)
	if err != nil {
		return nil, fmt.Errorf("find cards by name: %w", err)
	}
	return cards, nil
}

// UpdateCard locks the row, validates p against it and merges each field
// with ||, leaving language keys outside the patch untouched.
func (s *Store) UpdateCard(ctx context.Context, nameShort string, p card.Patch) (card.Card, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return card.Card{}, fmt.Errorf("begin update: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	current, err := getCard(ctx, tx, nameShort, true)
	if err != nil {
		return card.Card{}, err
	}
	if _, err := p.Apply(current); err != nil {
		return card.Card{}, err
	}

	var (
		sets []string
		args = []any{nameShort}
	)
	for _, f := range p.SortedFields() {
		b, err := store.EncodeText(p[f])
		if err != nil {
			return card.Card{}, fmt.Errorf("encode %s: %w", f, err)
		}
		args = append(args, string(b))
		sets = append(sets, fmt.Sprintf("%[1]s = COALESCE(%[1]s, '{}'::jsonb) || $%[2]d::jsonb", f, len(args)))
	}
	sets = append(sets, "updated_at = now()")

	updated, err := scanCard(tx.QueryRow(ctx,
		`UPDATE cards SET `+strings.Join(sets, ", ")+` WHERE name_short = $1 RETURNING `+cardColumns, args...))
	if err != nil {
		return card.Card{}, fmt.Errorf("update card %s: %w", nameShort, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return card.Card{}, fmt.Errorf("commit update: %w", err)
	}
	return updated, nil
}

// ReplaceCards deletes every card and inserts cards in one transaction.
func (s *Store) ReplaceCards(ctx context.Context, cards []card.Card) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM cards`); err != nil {
		return fmt.Errorf("clear cards: %w", err)
	}
	for _, c := range cards {
		r, err := store.NewCardRow(c)
		if err != nil {
			return err
		}
		var suit *string
		if r.Suit != nil {
			v := string(r.Suit)
			suit = &v
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO cards (`+cardColumns+`)
			 VALUES ($1, $2, $3::jsonb, $4::jsonb, $5, $6::jsonb, $7::jsonb, $8::jsonb, $9::jsonb, $10)`,
			r.NameShort, r.Type, string(r.Name), string(r.Value), r.ValueInt,
			string(r.MeaningUp), string(r.MeaningRev), string(r.Description), suit, r.ImagePath,
		)
		if err != nil {
			return fmt.Errorf("insert card %s: %w", c.NameShort, err)
		}
	}
	return tx.Commit(ctx)
}

func scanSection(row pgx.Row) (tutorial.Section, error) {
	var r store.SectionRow
	if err := row.Scan(&r.Key, &r.Title, &r.Content, &r.OrderIndex, &r.Active); err != nil {
		return tutorial.Section{}, err
	}
	return r.Section()
}

// ListSections returns sections ordered by order_index.
func (s *Store) ListSections(ctx context.Context, activeOnly bool) ([]tutorial.Section, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT section_key, title, content, order_index, is_active FROM tutorials
		 WHERE is_active OR NOT $1
		 ORDER BY order_index, section_key`, activeOnly)
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
	sec, err := scanSection(s.pool.QueryRow(ctx,
		`SELECT section_key, title, content, order_index, is_active FROM tutorials WHERE section_key = $1`, string(key)))
	if errors.Is(err, pgx.ErrNoRows) {
		return tutorial.Section{}, store.ErrNotFound
	}
	if err != nil {
		return tutorial.Section{}, fmt.Errorf("get tutorial %s: %w", key, err)
	}
	return sec, nil
}

// ReplaceSections deletes every section and inserts sections in one transaction.
func (s *Store) ReplaceSections(ctx context.Context, sections []tutorial.Section) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM tutorials`); err != nil {
		return fmt.Errorf("clear tutorials: %w", err)
	}
	for _, sec := range sections {
		r, err := store.NewSectionRow(sec)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO tutorials (section_key, title, content, order_index, is_active)
			 VALUES ($1, $2::jsonb, $3::jsonb, $4, $5)`,
			r.Key, string(r.Title), string(r.Content), r.OrderIndex, r.Active,
		)
		if err != nil {
			return fmt.Errorf("insert tutorial %s: %w", sec.Key, err)
		}
	}
	return tx.Commit(ctx)
}

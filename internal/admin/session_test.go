package admin

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/arcanum/internal/card"
	"github.com/arcanaland/arcanum/internal/catalog"
	"github.com/arcanaland/arcanum/internal/lang"
	"github.com/arcanaland/arcanum/internal/store/sqlite"
	"github.com/arcanaland/arcanum/internal/store/storetest"
)

type update struct {
	key   string
	patch card.Patch
}

type fakeRepo struct {
	cards   []card.Card
	updates []update
	err     error
}

func (r *fakeRepo) Raw(context.Context) ([]card.Card, error) {
	return r.cards, nil
}

func (r *fakeRepo) Update(_ context.Context, key string, p card.Patch) (card.Card, error) {
	r.updates = append(r.updates, update{key: key, patch: p.Clone()})
	if r.err != nil {
		return card.Card{}, r.err
	}
	return card.Card{NameShort: key}, nil
}

func loaded(t *testing.T) (*Session, *fakeRepo) {
	t.Helper()
	repo := &fakeRepo{cards: storetest.Cards()}
	s := NewSession(repo, nil)
	require.NoError(t, s.Load(context.Background()))
	return s, repo
}

func edit(t *testing.T, s *Session, key string, f card.Field, l lang.Code, value string) {
	t.Helper()
	require.NoError(t, s.BeginEdit(key, f))
	require.NoError(t, s.CommitEdit(l, value))
}

func TestSaveRowSendsWholeOverlayOnce(t *testing.T) {
	s, repo := loaded(t)

	edit(t, s, "ar01", card.FieldMeaningUp, lang.Spanish, "Habilidad, diplomacia")
	edit(t, s, "ar01", card.FieldMeaningRev, lang.Spanish, "Médico, mago")
	assert.True(t, s.Dirty("ar01"))
	assert.Empty(t, repo.updates, "commits stay local")

	require.NoError(t, s.SaveRow(context.Background(), "ar01"))

	require.Len(t, repo.updates, 1)
	assert.Equal(t, "ar01", repo.updates[0].key)
	assert.Equal(t, card.Patch{
		card.FieldMeaningUp:  {lang.Spanish: "Habilidad, diplomacia"},
		card.FieldMeaningRev: {lang.Spanish: "Médico, mago"},
	}, repo.updates[0].patch)

	assert.False(t, s.Dirty("ar01"))
	row, err := s.Row("ar01")
	require.NoError(t, err)
	assert.Equal(t, lang.NewText("Skill, diplomacy, address", "Habilidad, diplomacia"), row.Original.MeaningUp)
	assert.Equal(t, row.Original, row.Card)
}

func TestCommitMergesOneLanguage(t *testing.T) {
	s, _ := loaded(t)

	edit(t, s, "ar00", card.FieldName, lang.Spanish, "El Bufón")
	row, err := s.Row("ar00")
	require.NoError(t, err)

	assert.Equal(t, lang.NewText("The Fool", "El Bufón"), row.Card.Name)
	assert.Equal(t, lang.NewText("The Fool", "El Loco"), row.Original.Name)
	assert.Equal(t, "El Bufón", s.Value("ar00", card.FieldName, lang.Spanish))
	assert.Equal(t, "The Fool", s.Value("ar00", card.FieldName, lang.English))
}

func TestOneCellAtATime(t *testing.T) {
	s, _ := loaded(t)

	require.NoError(t, s.BeginEdit("ar00", card.FieldName))
	require.NoError(t, s.BeginEdit("ar00", card.FieldName), "reopening the same cell is fine")
	require.ErrorIs(t, s.BeginEdit("waac", card.FieldName), ErrCellBusy)

	cell, ok := s.Editing()
	require.True(t, ok)
	assert.Equal(t, Cell{Key: "ar00", Field: card.FieldName}, cell)

	s.CancelEdit()
	_, ok = s.Editing()
	assert.False(t, ok)
	assert.False(t, s.Dirty("ar00"), "cancelling a cell leaves the overlay alone")
	require.NoError(t, s.BeginEdit("waac", card.FieldName))

	require.NoError(t, s.CommitEdit(lang.Spanish, "As de Bastos!"))
	require.ErrorIs(t, s.CommitEdit(lang.Spanish, "again"), ErrNotEditing)
}

func TestCancelEditKeepsEarlierCommits(t *testing.T) {
	s, _ := loaded(t)

	edit(t, s, "cuqu", card.FieldValue, lang.Spanish, "dama")
	require.NoError(t, s.BeginEdit("cuqu", card.FieldName))
	s.CancelEdit()

	row, err := s.Row("cuqu")
	require.NoError(t, err)
	assert.Equal(t, card.Patch{card.FieldValue: {lang.Spanish: "dama"}}, row.Pending)
}

func TestInvalidCommitKeepsCellOpen(t *testing.T) {
	s, _ := loaded(t)

	require.NoError(t, s.BeginEdit("ar00", card.FieldName))
	require.ErrorIs(t, s.CommitEdit(lang.English, ""), card.ErrInvalid)
	require.ErrorIs(t, s.CommitEdit(lang.Spanish, "  "), card.ErrInvalid)
	_, ok := s.Editing()
	assert.True(t, ok)
	assert.False(t, s.Dirty("ar00"))
}

func TestEditableCells(t *testing.T) {
	s, _ := loaded(t)

	require.ErrorIs(t, s.BeginEdit("ar00", card.FieldSuit), ErrNotEditable)
	require.ErrorIs(t, s.BeginEdit("ar00", card.Field("image_path")), ErrNotEditable)
	require.ErrorIs(t, s.BeginEdit("zz99", card.FieldName), ErrUnknownRow)

	edit(t, s, "waac", card.FieldSuit, lang.Spanish, "varas")
	assert.Equal(t, "varas", s.Value("waac", card.FieldSuit, lang.Spanish))
}

func TestSaveFailureKeepsOverlay(t *testing.T) {
	s, repo := loaded(t)
	repo.err = errors.New("connection refused")

	edit(t, s, "wa02", card.FieldName, lang.Spanish, "Dos de Bastos")
	err := s.SaveRow(context.Background(), "wa02")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "last-writer-wins")
	assert.Contains(t, err.Error(), "connection refused")
	assert.True(t, s.Dirty("wa02"))
	assert.False(t, s.Missing("wa02", card.FieldName, lang.Spanish))

	repo.err = nil
	require.NoError(t, s.SaveRow(context.Background(), "wa02"))
	assert.False(t, s.Dirty("wa02"))
	assert.Len(t, repo.updates, 2)
}

func TestCleanRowSaveIsNoop(t *testing.T) {
	s, repo := loaded(t)

	require.NoError(t, s.SaveRow(context.Background(), "ar00"))
	assert.Empty(t, repo.updates)
	require.ErrorIs(t, s.SaveRow(context.Background(), "zz99"), ErrUnknownRow)
}

func TestRowsAndStats(t *testing.T) {
	s, _ := loaded(t)
	edit(t, s, "ar01", card.FieldName, lang.Spanish, "El Mago!")
	edit(t, s, "wapa", card.FieldName, lang.Spanish, "Sota de Bastos")

	assert.Len(t, s.Rows(Filter{}), 6)
	assert.Len(t, s.Rows(Filter{Type: card.Major}), 2)
	assert.Len(t, s.Rows(Filter{Search: "wands"}), 3)
	assert.Len(t, s.Rows(Filter{Search: "sota"}), 1, "search sees pending values")

	dirty := s.Rows(Filter{DirtyOnly: true})
	require.Len(t, dirty, 2)
	assert.Equal(t, "ar01", dirty[0].Original.NameShort)

	assert.Equal(t, Stats{Total: 6, Shown: 4, Dirty: 2}, s.Stats(Filter{Type: card.Minor}))
	assert.True(t, s.Missing("wa02", card.FieldName, lang.Spanish))
}

func TestCancelRowLeavesStoreUntouched(t *testing.T) {
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "admin.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	ctx := context.Background()
	require.NoError(t, db.ReplaceCards(ctx, storetest.Cards()))

	s := NewSession(catalog.NewCards(db), nil)
	require.NoError(t, s.Load(ctx))

	edit(t, s, "ar00", card.FieldName, lang.Spanish, "El Bufón")
	require.NoError(t, s.CancelRow("ar00"))
	assert.False(t, s.Dirty("ar00"))

	stored, err := db.GetCard(ctx, "ar00")
	require.NoError(t, err)
	assert.Equal(t, lang.NewText("The Fool", "El Loco"), stored.Name)

	edit(t, s, "ar00", card.FieldName, lang.Spanish, "El Bufón")
	edit(t, s, "ar00", card.FieldDescription, lang.Spanish, "Con paso muy ligero.")
	require.NoError(t, s.SaveRow(ctx, "ar00"))

	stored, err = db.GetCard(ctx, "ar00")
	require.NoError(t, err)
	assert.Equal(t, lang.NewText("The Fool", "El Bufón"), stored.Name)
	assert.Equal(t, "Con paso muy ligero.", stored.Description[lang.Spanish])
	assert.Equal(t, storetest.Cards()[0].Description[lang.English], stored.Description[lang.English])

	row, err := s.Row("ar00")
	require.NoError(t, err)
	assert.Equal(t, stored.Name, row.Original.Name)
}

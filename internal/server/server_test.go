package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/arcanum/internal/card"
	"github.com/arcanaland/arcanum/internal/catalog"
	"github.com/arcanaland/arcanum/internal/fetch"
	"github.com/arcanaland/arcanum/internal/imagery"
	"github.com/arcanaland/arcanum/internal/store/sqlite"
	"github.com/arcanaland/arcanum/internal/store/storetest"
	"github.com/arcanaland/arcanum/internal/tutorial"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type images map[string]bool

func (i images) Exists(_ context.Context, nameEn string) bool { return i[nameEn] }

func newServer(t *testing.T, opts ...Option) http.Handler {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "server.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, db.ReplaceCards(ctx, storetest.Cards()))
	require.NoError(t, db.ReplaceSections(ctx, storetest.Sections()))

	client := fetch.New(catalog.NewCards(db), catalog.NewTutorials(db), fetch.WithRetryInterval(time.Millisecond))
	t.Cleanup(func() { _ = client.Close() })
	return New(client, opts...).Handler()
}

func do(t *testing.T, h http.Handler, method, target string, header http.Header, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	return do(t, h, http.MethodGet, target, nil, "")
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	rec := get(t, newServer(t), "/api/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","store":"online"}`, rec.Body.String())
}

func TestCardsInRequestedLanguage(t *testing.T) {
	h := newServer(t)

	rec := get(t, h, "/api/cards?lang=es")
	require.Equal(t, http.StatusOK, rec.Code)
	cards := decode[[]card.View](t, rec)
	require.Len(t, cards, 6)
	assert.Equal(t, "El Loco", cards[0].Name)
	assert.Equal(t, "The Fool", cards[0].NameEn)

	byName := map[string]card.View{}
	for _, c := range cards {
		byName[c.NameShort] = c
	}
	assert.Equal(t, "Two of Wands", byName["wa02"].Name, "missing translations fall back to English")
	assert.Equal(t, "bastos", byName["wa02"].Suit)

	rec = do(t, h, http.MethodGet, "/api/cards/ar00", http.Header{"Accept-Language": {"es-MX,es;q=0.9"}}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "El Loco", decode[card.View](t, rec).Name)

	rec = do(t, h, http.MethodGet, "/api/cards/ar00?lang=en", http.Header{"Accept-Language": {"es"}}, "")
	assert.Equal(t, "The Fool", decode[card.View](t, rec).Name, "query wins over the header")
}

func TestCardLookups(t *testing.T) {
	h := newServer(t)

	rec := get(t, h, "/api/cards/by-name/El%20Mago")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ar01", decode[card.View](t, rec).NameShort)

	assert.Equal(t, http.StatusNotFound, get(t, h, "/api/cards/zz99").Code)
	assert.Equal(t, http.StatusNotFound, get(t, h, "/api/cards/by-name/Nobody").Code)

	rec = get(t, h, "/api/suits/bastos/cards")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"waac", "wa02", "wapa"}, nameShorts(decode[[]card.View](t, rec)))

	rec = get(t, h, "/api/arcana/major/cards")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]card.View](t, rec), 2)
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/api/arcana/trumps/cards").Code)

	rec = get(t, h, "/api/search?q=REINA")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"cuqu"}, nameShorts(decode[[]card.View](t, rec)))
}

func TestRandom(t *testing.T) {
	h := newServer(t)

	rec := get(t, h, "/api/cards/random")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decode[card.View](t, rec).NameShort)

	rec = get(t, h, "/api/cards/random?count=4")
	require.Equal(t, http.StatusOK, rec.Code)
	drawn := nameShorts(decode[[]card.View](t, rec))
	assert.Len(t, drawn, 4)
	assert.ElementsMatch(t, drawn, dedupe(drawn))

	rec = get(t, h, "/api/cards/random?count=40")
	assert.Len(t, decode[[]card.View](t, rec), 6)

	assert.Equal(t, http.StatusBadRequest, get(t, h, "/api/cards/random?count=few").Code)
}

func TestLegacy(t *testing.T) {
	h := newServer(t)

	rec := get(t, h, "/api/legacy/cards/ar00?lang=es")
	require.Equal(t, http.StatusOK, rec.Code)
	legacy := decode[card.Legacy](t, rec)
	assert.Equal(t, "The Fool", legacy.Name)

	rec = get(t, h, "/api/legacy/cards")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]card.Legacy](t, rec), 6)
}

func TestTutorials(t *testing.T) {
	h := newServer(t)

	rec := get(t, h, "/api/tutorials?lang=es")
	require.Equal(t, http.StatusOK, rec.Code)
	views := decode[[]tutorial.View](t, rec)
	require.Len(t, views, 2, "inactive sections are hidden")
	assert.Equal(t, tutorial.Overview, views[0].Key)
	assert.Equal(t, "Entendiendo las Cartas del Tarot", views[0].Title)

	rec = get(t, h, "/api/tutorials/major_arcana?lang=es")
	require.Equal(t, http.StatusOK, rec.Code)
	major := decode[tutorial.View](t, rec)
	content, ok := major.Content.(tutorial.MajorArcanaContent)
	require.True(t, ok)
	assert.Equal(t, "Los Misterios Mayores", content.Subtitle)

	assert.Equal(t, http.StatusNotFound, get(t, h, "/api/tutorials/suits").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/api/tutorials/spreads").Code)
}

func TestTranslations(t *testing.T) {
	h := newServer(t)

	rec := get(t, h, "/api/translations/es?key=deckPage.stats.showing&p.count=3&p.total=78")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"lang":"es","key":"deckPage.stats.showing","value":"Mostrando 3 de 78 cartas"}`, rec.Body.String())

	rec = get(t, h, "/api/translations/es?key=deckPage.filters.suit")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[struct {
		Value map[string]any `json:"value"`
	}](t, rec)
	assert.Equal(t, "Bastos", body.Value["wands"])

	rec = get(t, h, "/api/translations/en?key=no.such.key")
	assert.JSONEq(t, `{"lang":"en","key":"no.such.key","value":"no.such.key"}`, rec.Body.String())

	assert.Equal(t, http.StatusBadRequest, get(t, h, "/api/translations/fr?key=navigation.home").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/api/translations/en").Code)
}

func TestImages(t *testing.T) {
	h := newServer(t, WithImages(images{"The Fool": true}))

	rec := get(t, h, "/api/images/ar00")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"name_short":"ar00","image_path":"/tarot-images/the_fool.jpg","placeholder":false}`, rec.Body.String())

	rec = get(t, h, "/api/images/wa02")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"name_short":"wa02","image_path":"/tarot-images/card_back.jpg","placeholder":true}`, rec.Body.String())
}

func TestAdminDisabledWithoutToken(t *testing.T) {
	h := newServer(t)
	rec := do(t, h, http.MethodPatch, "/api/admin/cards/ar00", nil, `{"name":{"es":"El Bufón"}}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminUpdate(t *testing.T) {
	h := newServer(t, WithAdminToken("s3cret"))
	auth := http.Header{"Authorization": {"Bearer s3cret"}, "Content-Type": {"application/json"}}

	// Warm the cache so the update has something to invalidate.
	require.Equal(t, "El Loco", decode[card.View](t, get(t, h, "/api/cards/ar00?lang=es")).Name)

	rec := do(t, h, http.MethodPatch, "/api/admin/cards/ar00", http.Header{"Authorization": {"Bearer nope"}}, `{}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodPatch, "/api/admin/cards/ar00?lang=es", auth, `{"name":{"es":"El Bufón"}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "El Bufón", decode[card.View](t, rec).Name)

	rec = get(t, h, "/api/cards/ar00?lang=es")
	assert.Equal(t, "El Bufón", decode[card.View](t, rec).Name)
	rec = get(t, h, "/api/cards/ar00?lang=en")
	assert.Equal(t, "The Fool", decode[card.View](t, rec).Name)

	for body, want := range map[string]int{
		`{"image_path":{"en":"x"}}`: http.StatusBadRequest,
		`{"name":{"fr":"Le Mat"}}`:  http.StatusBadRequest,
		`{"name":{"es":"  "}}`:      http.StatusBadRequest,
		`{}`:                        http.StatusBadRequest,
		`not json`:                  http.StatusBadRequest,
	} {
		rec := do(t, h, http.MethodPatch, "/api/admin/cards/ar00", auth, body)
		assert.Equal(t, want, rec.Code, body)
	}

	rec = do(t, h, http.MethodPatch, "/api/admin/cards/zz99", auth, `{"name":{"es":"Nadie"}}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNotConfigured(t *testing.T) {
	client := fetch.New(catalog.NewCards(nil), catalog.NewTutorials(nil))
	t.Cleanup(func() { _ = client.Close() })
	h := New(client).Handler()

	rec := get(t, h, "/api/cards")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	assert.Equal(t, http.StatusServiceUnavailable, get(t, h, "/api/cards/ar00").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(t, h, "/api/cards/random").Code)
}

func TestStatus(t *testing.T) {
	for err, want := range map[error]int{
		catalog.ErrNotFound:        http.StatusNotFound,
		catalog.ErrEmptyCollection: http.StatusNotFound,
		catalog.ErrValidation:      http.StatusBadRequest,
		catalog.ErrTransport:       http.StatusBadGateway,
		catalog.ErrNotConfigured:   http.StatusServiceUnavailable,
		catalog.ErrAmbiguous:       http.StatusConflict,
		errors.New("boom"):         http.StatusInternalServerError,
	} {
		assert.Equal(t, want, status(fmt.Errorf("op: %w", err)), err.Error())
	}
}

func nameShorts(views []card.View) []string {
	out := make([]string, 0, len(views))
	for _, v := range views {
		out = append(out, v.NameShort)
	}
	return out
}

func dedupe(keys []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, k := range keys {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}

package server

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/arcanaland/arcanum/internal/card"
	"github.com/arcanaland/arcanum/internal/catalog"
	"github.com/arcanaland/arcanum/internal/imagery"
	"github.com/arcanaland/arcanum/internal/lang"
)

// language reads ?lang= then Accept-Language.
func language(c *gin.Context) lang.Code {
	return lang.Negotiate(c.Query("lang"), c.GetHeader("Accept-Language"))
}

// status maps catalog errors onto HTTP status codes.
func status(err error) int {
	switch {
	case errors.Is(err, catalog.ErrNotFound), errors.Is(err, catalog.ErrEmptyCollection):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrValidation), errors.Is(err, card.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrTransport):
		return http.StatusBadGateway
	case errors.Is(err, catalog.ErrNotConfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, catalog.ErrAmbiguous):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(c *gin.Context, err error) {
	code := status(err)
	if code >= http.StatusInternalServerError {
		s.logger.Warn("request failed", "path", c.FullPath(), "status", code, "error", err)
	}
	c.JSON(code, gin.H{"error": err.Error()})
}

func respond[T any](s *Server, c *gin.Context, v T, err error) {
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (s *Server) health(c *gin.Context) {
	store := "online"
	if !s.catalog.Online() {
		store = "offline"
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "store": store})
}

func (s *Server) allCards(c *gin.Context) {
	cards, err := s.catalog.All(c.Request.Context(), language(c))
	respond(s, c, cards, err)
}

func (s *Server) cardByKey(c *gin.Context) {
	v, err := s.catalog.ByKey(c.Request.Context(), c.Param("key"), language(c))
	respond(s, c, v, err)
}

func (s *Server) cardByName(c *gin.Context) {
	v, err := s.catalog.ByDisplayName(c.Request.Context(), c.Param("name"), language(c))
	respond(s, c, v, err)
}

// randomCards draws one card, or count distinct cards when count is given.
func (s *Server) randomCards(c *gin.Context) {
	l := language(c)
	raw, ok := c.GetQuery("count")
	if !ok {
		v, err := s.catalog.Random(c.Request.Context(), l)
		respond(s, c, v, err)
		return
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		s.fail(c, fmt.Errorf("%w: count must be a number", catalog.ErrValidation))
		return
	}
	cards, err := s.catalog.RandomN(c.Request.Context(), n, l)
	respond(s, c, cards, err)
}

func (s *Server) cardsBySuit(c *gin.Context) {
	cards, err := s.catalog.BySuit(c.Request.Context(), c.Param("suit"), language(c))
	respond(s, c, cards, err)
}

func (s *Server) cardsByType(c *gin.Context) {
	cards, err := s.catalog.ByType(c.Request.Context(), c.Param("type"), language(c))
	respond(s, c, cards, err)
}

func (s *Server) search(c *gin.Context) {
	cards, err := s.catalog.Search(c.Request.Context(), c.Query("q"), language(c))
	respond(s, c, cards, err)
}

func (s *Server) legacyCards(c *gin.Context) {
	cards, err := s.catalog.AllLegacy(c.Request.Context())
	respond(s, c, cards, err)
}

func (s *Server) legacyCard(c *gin.Context) {
	v, err := s.catalog.ByKeyLegacy(c.Request.Context(), c.Param("key"))
	respond(s, c, v, err)
}

func (s *Server) tutorials(c *gin.Context) {
	sections, err := s.catalog.Tutorials(c.Request.Context(), language(c))
	respond(s, c, sections, err)
}

func (s *Server) tutorial(c *gin.Context) {
	v, err := s.catalog.Tutorial(c.Request.Context(), c.Param("key"), language(c))
	respond(s, c, v, err)
}

// translation looks up one key. Query parameters named p.<name> fill the
// {name} placeholders. A key naming a subtree returns the subtree.
func (s *Server) translation(c *gin.Context) {
	l, err := lang.Parse(c.Param("lang"))
	if err != nil {
		s.fail(c, fmt.Errorf("%w: %v", catalog.ErrValidation, err))
		return
	}
	key := c.Query("key")
	if key == "" {
		s.fail(c, fmt.Errorf("%w: key is required", catalog.ErrValidation))
		return
	}

	if obj := s.strings.Object(l, key); len(obj) > 0 {
		c.JSON(http.StatusOK, gin.H{"lang": l, "key": key, "value": obj})
		return
	}

	params := map[string]any{}
	for name, values := range c.Request.URL.Query() {
		if p, ok := strings.CutPrefix(name, "p."); ok && len(values) > 0 {
			params[p] = values[0]
		}
	}
	c.JSON(http.StatusOK, gin.H{"lang": l, "key": key, "value": s.strings.T(l, key, params)})
}

// image returns the image path of a card, or the placeholder when the image
// is not available.
func (s *Server) image(c *gin.Context) {
	v, err := s.catalog.ByKey(c.Request.Context(), c.Param("key"), lang.English)
	if err != nil {
		s.fail(c, err)
		return
	}
	path := imagery.Resolve(c.Request.Context(), s.images, v.NameEn)
	c.JSON(http.StatusOK, gin.H{
		"name_short":  v.NameShort,
		"image_path":  path,
		"placeholder": path == imagery.Placeholder,
	})
}

func (s *Server) requireToken() gin.HandlerFunc {
	want := []byte("Bearer " + s.adminToken)
	return func(c *gin.Context) {
		got := []byte(c.GetHeader("Authorization"))
		if subtle.ConstantTimeCompare(got, want) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

// updateCard merges a patch of the form {"name": {"es": "..."}} into a card.
func (s *Server) updateCard(c *gin.Context) {
	var body map[string]lang.Text
	if err := c.ShouldBindJSON(&body); err != nil {
		s.fail(c, fmt.Errorf("%w: %v", catalog.ErrValidation, err))
		return
	}

	p := card.Patch{}
	for name, text := range body {
		f, err := card.ParseField(name)
		if err != nil {
			s.fail(c, fmt.Errorf("%w: %v", catalog.ErrValidation, err))
			return
		}
		for code, value := range text {
			if !code.Valid() {
				s.fail(c, fmt.Errorf("%w: unsupported language %q", catalog.ErrValidation, code))
				return
			}
			if strings.TrimSpace(value) == "" {
				s.fail(c, fmt.Errorf("%w: %s.%s cannot be blank", catalog.ErrValidation, f, code))
				return
			}
			p.Set(f, code, value)
		}
	}

	updated, err := s.catalog.Update(c.Request.Context(), c.Param("key"), p)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.logger.Info("card updated over HTTP", "name_short", updated.NameShort, "fields", len(p))
	c.JSON(http.StatusOK, card.Project(updated, language(c)))
}

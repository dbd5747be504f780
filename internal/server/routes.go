package server

import (
	"github.com/gin-gonic/gin"

	"github.com/arcanaland/arcanum/internal/imagery"
)

func (s *Server) RegisterRoutes(r *gin.Engine) {
	if s.imageDir != "" {
		r.Static(imagery.Prefix, s.imageDir)
	}

	api := r.Group("/api")
	{
		api.GET("/health", s.health)

		api.GET("/cards", s.allCards)
		api.GET("/cards/random", s.randomCards)
		api.GET("/cards/by-name/:name", s.cardByName)
		api.GET("/cards/:key", s.cardByKey)
		api.GET("/suits/:suit/cards", s.cardsBySuit)
		api.GET("/arcana/:type/cards", s.cardsByType)
		api.GET("/search", s.search)

		api.GET("/legacy/cards", s.legacyCards)
		api.GET("/legacy/cards/:key", s.legacyCard)

		api.GET("/tutorials", s.tutorials)
		api.GET("/tutorials/:key", s.tutorial)

		api.GET("/translations/:lang", s.translation)
		api.GET("/images/:key", s.image)
	}

	if s.adminToken != "" {
		admin := r.Group("/api/admin", s.requireToken())
		admin.PATCH("/cards/:key", s.updateCard)
	}
}

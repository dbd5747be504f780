// Package server exposes the catalog, tutorials and string table over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arcanaland/arcanum/internal/card"
	"github.com/arcanaland/arcanum/internal/i18n"
	"github.com/arcanaland/arcanum/internal/imagery"
	"github.com/arcanaland/arcanum/internal/lang"
	"github.com/arcanaland/arcanum/internal/tutorial"
)

// Catalog is the read and update surface served over HTTP. fetch.Client
// satisfies it.
type Catalog interface {
	All(ctx context.Context, l lang.Code) ([]card.View, error)
	ByKey(ctx context.Context, nameShort string, l lang.Code) (card.View, error)
	ByDisplayName(ctx context.Context, name string, l lang.Code) (card.View, error)
	Random(ctx context.Context, l lang.Code) (card.View, error)
	RandomN(ctx context.Context, n int, l lang.Code) ([]card.View, error)
	BySuit(ctx context.Context, suit string, l lang.Code) ([]card.View, error)
	ByType(ctx context.Context, arcana string, l lang.Code) ([]card.View, error)
	Search(ctx context.Context, q string, l lang.Code) ([]card.View, error)

	AllLegacy(ctx context.Context) ([]card.Legacy, error)
	ByKeyLegacy(ctx context.Context, nameShort string) (card.Legacy, error)

	Tutorials(ctx context.Context, l lang.Code) ([]tutorial.View, error)
	Tutorial(ctx context.Context, key string, l lang.Code) (tutorial.View, error)

	Update(ctx context.Context, nameShort string, p card.Patch) (card.Card, error)

	// Online reports whether the last store call did not fail in transport.
	Online() bool
}

type Server struct {
	catalog    Catalog
	strings    *i18n.Table
	images     imagery.Checker
	imageDir   string
	adminToken string
	logger     *slog.Logger
}

type Option func(*Server)

// WithStrings replaces the embedded string table.
func WithStrings(t *i18n.Table) Option {
	return func(s *Server) { s.strings = t }
}

// WithImages sets the checker used to decide between a card image and the
// placeholder.
func WithImages(c imagery.Checker) Option {
	return func(s *Server) { s.images = c }
}

// WithImageDir serves card images from dir under imagery.Prefix.
func WithImageDir(dir string) Option {
	return func(s *Server) {
		s.imageDir = dir
		if s.images == nil {
			s.images = imagery.DirChecker{Dir: dir}
		}
	}
}

// WithAdminToken enables the admin routes behind a bearer token.
func WithAdminToken(token string) Option {
	return func(s *Server) { s.adminToken = token }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

func New(c Catalog, opts ...Option) *Server {
	s := &Server{catalog: c}
	for _, opt := range opts {
		opt(s)
	}
	if s.strings == nil {
		s.strings = i18n.Default()
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	return s
}

// Handler returns the gin engine with every route registered.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), s.logRequests())
	s.RegisterRoutes(r)
	return r
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arcanaland/arcanum/internal/cache"
	"github.com/arcanaland/arcanum/internal/cache/redis"
	"github.com/arcanaland/arcanum/internal/catalog"
	"github.com/arcanaland/arcanum/internal/config"
	"github.com/arcanaland/arcanum/internal/fetch"
	"github.com/arcanaland/arcanum/internal/imagery"
	"github.com/arcanaland/arcanum/internal/store"
	"github.com/arcanaland/arcanum/internal/store/postgres"
	"github.com/arcanaland/arcanum/internal/store/sqlite"
)

// app holds the store and the repositories built on it for one command.
type app struct {
	store     store.Store
	cards     *catalog.Cards
	tutorials *catalog.Tutorials
	client    *fetch.Client
}

func openApp(ctx context.Context) (*app, error) {
	st, err := openStore(ctx)
	if err != nil {
		return nil, err
	}

	rc, err := openCache()
	if err != nil {
		if st != nil {
			_ = st.Close()
		}
		return nil, err
	}

	a := &app{store: st}
	a.cards = catalog.NewCards(st, catalog.WithLogger(logger))
	a.tutorials = catalog.NewTutorials(st, catalog.WithLogger(logger))

	opts := []fetch.Option{fetch.WithLogger(logger)}
	if rc != nil {
		opts = append(opts, fetch.WithCache(rc))
	}
	a.client = fetch.New(a.cards, a.tutorials, opts...)
	return a, nil
}

// openStoreApp is openApp for commands that need a store.
func openStoreApp(ctx context.Context) (*app, error) {
	if !cfg.Store.Configured() {
		return nil, fmt.Errorf("no store configured: set [store] dsn in %s or ARCANUM_STORE_DSN", config.GetConfigFilePath())
	}
	return openApp(ctx)
}

func (a *app) Close() error {
	err := a.client.Close()
	if a.store != nil {
		if serr := a.store.Close(); serr != nil && err == nil {
			err = serr
		}
	}
	return err
}

// openStore returns a nil store when none is configured.
func openStore(ctx context.Context) (store.Store, error) {
	if !cfg.Store.Configured() {
		logger.Warn("store not configured, card and tutorial listings will be empty")
		return nil, nil
	}

	switch cfg.Store.Driver {
	case "", "sqlite":
		if err := os.MkdirAll(filepath.Dir(cfg.Store.DSN), 0755); err != nil {
			return nil, fmt.Errorf("error creating data directory: %v", err)
		}
		s, err := sqlite.Open(cfg.Store.DSN)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "postgres":
		s, err := postgres.Open(ctx, cfg.Store.DSN)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown store driver: %s (supported: sqlite, postgres)", cfg.Store.Driver)
}

// openCache returns nil for the in-memory default.
func openCache() (cache.RawCache, error) {
	switch cfg.Cache.Backend {
	case "", "memory":
		return nil, nil
	case "redis":
		rc, err := redis.New(redis.Options{Addr: cfg.Cache.RedisAddr, DB: cfg.Cache.RedisDB})
		if err != nil {
			return nil, fmt.Errorf("error connecting to redis at %s: %v", cfg.Cache.RedisAddr, err)
		}
		return rc, nil
	}
	return nil, fmt.Errorf("unknown cache backend: %s (supported: memory, redis)", cfg.Cache.Backend)
}

// imageChecker prefers the configured image URL over the image directory.
func imageChecker() imagery.Checker {
	if cfg.Images.BaseURL != "" {
		return imagery.NewHTTPChecker(cfg.Images.BaseURL)
	}
	return imagery.DirChecker{Dir: cfg.Images.Dir}
}

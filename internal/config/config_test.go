package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/arcanum/internal/lang"
)

func setHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	return dir
}

func TestLoadCreatesDefaultConfig(t *testing.T) {
	dir := setHome(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "config", "arcanum", "config.toml"), GetConfigFilePath())
	assert.FileExists(t, GetConfigFilePath())
	assert.Equal(t, lang.English, cfg.Language())
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, filepath.Join(dir, "data", "arcanum", "arcanum.db"), cfg.Store.DSN)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	setHome(t)
	path := GetConfigFilePath()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(`
default_language = "es"

[store]
driver = "postgres"
dsn = "postgres://localhost/arcanum"
`), 0o644))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, lang.Spanish, cfg.Language())
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "localhost:6379", cfg.Cache.RedisAddr)
}

func TestEnvironmentOverrides(t *testing.T) {
	setHome(t)
	t.Setenv("ARCANUM_STORE_DSN", NotSet)
	t.Setenv("ARCANUM_CACHE_BACKEND", "redis")
	t.Setenv("ARCANUM_CACHE_REDIS_DB", "3")
	t.Setenv("ARCANUM_SERVER_ADMIN_TOKEN", "s3cret")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.Store.Configured())
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, 3, cfg.Cache.RedisDB)
	assert.Equal(t, "s3cret", cfg.Server.AdminToken)

	t.Setenv("ARCANUM_CACHE_REDIS_DB", "three")
	_, err = LoadConfig()
	require.Error(t, err)
}

func TestStoreConfigured(t *testing.T) {
	assert.False(t, StoreConfig{}.Configured())
	assert.False(t, StoreConfig{DSN: " NOT SET "}.Configured())
	assert.True(t, StoreConfig{DSN: "arcanum.db"}.Configured())
}

func TestSetDefaultLanguage(t *testing.T) {
	setHome(t)
	t.Setenv("ARCANUM_SERVER_ADDR", ":9999")

	require.NoError(t, SetDefaultLanguage("es"))
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, lang.Spanish, cfg.Language())

	b, err := os.ReadFile(GetConfigFilePath())
	require.NoError(t, err)
	assert.NotContains(t, string(b), ":9999", "environment overrides are never persisted")

	require.Error(t, SetDefaultLanguage("fr"))
}

func TestUnsupportedLanguageFallsBack(t *testing.T) {
	cfg := &Config{DefaultLanguage: "de"}
	assert.Equal(t, lang.English, cfg.Language())
}

func TestGetDeckPath(t *testing.T) {
	library := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(library, "rider-waite-smith"), 0o755))

	path, err := GetDeckPath(library, "rider-waite-smith")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(library, "rider-waite-smith"), path)

	_, err = GetDeckPath(library, "missing-deck")
	require.Error(t, err)
}

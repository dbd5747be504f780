package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/arcanaland/arcanum/internal/lang"
)

// NotSet marks a DSN left unconfigured on purpose.
const NotSet = "NOT SET"

// Config represents the application configuration
type Config struct {
	DefaultLanguage string `toml:"default_language" env:"ARCANUM_DEFAULT_LANGUAGE"`
	DeckLibrary     string `toml:"deck_library" env:"ARCANUM_DECK_LIBRARY"`

	Store  StoreConfig  `toml:"store"`
	Cache  CacheConfig  `toml:"cache"`
	Images ImagesConfig `toml:"images"`
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
}

// StoreConfig selects the backing store. Driver is "sqlite" or "postgres".
type StoreConfig struct {
	Driver string `toml:"driver" env:"ARCANUM_STORE_DRIVER"`
	DSN    string `toml:"dsn" env:"ARCANUM_STORE_DSN"`
}

// Configured reports whether a store DSN was provided.
func (s StoreConfig) Configured() bool {
	dsn := strings.TrimSpace(s.DSN)
	return dsn != "" && dsn != NotSet
}

// CacheConfig selects the fetch cache. Backend is "memory" or "redis".
type CacheConfig struct {
	Backend   string `toml:"backend" env:"ARCANUM_CACHE_BACKEND"`
	RedisAddr string `toml:"redis_addr" env:"ARCANUM_CACHE_REDIS_ADDR"`
	RedisDB   int    `toml:"redis_db" env:"ARCANUM_CACHE_REDIS_DB"`
}

// ImagesConfig locates card images, either on disk or behind a URL.
type ImagesConfig struct {
	Dir     string `toml:"dir" env:"ARCANUM_IMAGES_DIR"`
	BaseURL string `toml:"base_url" env:"ARCANUM_IMAGES_BASE_URL"`
}

type ServerConfig struct {
	Addr       string `toml:"addr" env:"ARCANUM_SERVER_ADDR"`
	AdminToken string `toml:"admin_token" env:"ARCANUM_SERVER_ADMIN_TOKEN"`
}

type LogConfig struct {
	Level string `toml:"level" env:"ARCANUM_LOG_LEVEL"`
}

// Language returns the configured default language, English when unset or
// unsupported.
func (c *Config) Language() lang.Code {
	l, err := lang.Parse(c.DefaultLanguage)
	if err != nil {
		return lang.Default
	}
	return l
}

// Default returns the configuration written on first use.
func Default() *Config {
	return &Config{
		DefaultLanguage: string(lang.English),
		DeckLibrary:     filepath.Join(GetXDGDataHome(), "tarot", "decks"),
		Store: StoreConfig{
			Driver: "sqlite",
			DSN:    filepath.Join(GetXDGDataHome(), "arcanum", "arcanum.db"),
		},
		Cache: CacheConfig{
			Backend:   "memory",
			RedisAddr: "localhost:6379",
		},
		Images: ImagesConfig{
			Dir: filepath.Join(GetXDGDataHome(), "arcanum", "tarot-images"),
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "arcanum", "config.toml")
}

// LoadConfig loads the config file, creating it with defaults on first use,
// then applies ARCANUM_* environment overrides.
func LoadConfig() (*Config, error) {
	return LoadFile(GetConfigFilePath())
}

// LoadFile is LoadConfig for an explicit path.
func LoadFile(configPath string) (*Config, error) {
	var config *Config

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config, err = createDefaultConfig(configPath)
		if err != nil {
			return nil, err
		}
	} else {
		// Missing keys keep their defaults.
		config = Default()
		if _, err := toml.DecodeFile(configPath, config); err != nil {
			return nil, fmt.Errorf("error decoding config file: %v", err)
		}
	}

	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("error reading environment: %w", err)
	}
	return config, nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig(configPath string) (*Config, error) {
	config := Default()
	if err := write(configPath, config); err != nil {
		return nil, err
	}
	return config, nil
}

// Save writes config to the config file.
func Save(config *Config) error {
	return write(GetConfigFilePath(), config)
}

func write(configPath string, config *Config) error {
	// Ensure the config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %v", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error creating config file: %v", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %v", err)
	}
	return nil
}

// SetDefaultLanguage sets the default language in the config
func SetDefaultLanguage(code string) error {
	l, err := lang.Parse(code)
	if err != nil {
		return err
	}

	configPath := GetConfigFilePath()
	config := Default()
	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, config); err != nil {
			return fmt.Errorf("error decoding config file: %v", err)
		}
	}

	config.DefaultLanguage = string(l)
	return write(configPath, config)
}

// GetDeckPath returns the path to a deck, either in the deck library or a relative path
func GetDeckPath(library, deckName string) (string, error) {
	deckPath := filepath.Join(library, deckName)
	if _, err := os.Stat(deckPath); err == nil {
		return deckPath, nil
	}

	// If not found in the library, treat as a relative path
	if _, err := os.Stat(deckName); err == nil {
		return deckName, nil
	}

	return "", fmt.Errorf("deck not found: %s", deckName)
}

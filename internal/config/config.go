package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	EnvStore    = "SQ_STORE"
	EnvData     = "SQ_DATA"
	EnvCatalog  = "SQ_CATALOG"
	EnvLogMode  = "SQ_LOG_MODE"
	EnvLogLevel = "SQ_LOG_LEVEL"
)

const (
	StoreSQLite = "sqlite"
	StoreJSON   = "json"
)

// Config holds runtime settings. Precedence: defaults, then environment,
// then command-line flags (applied by the caller).
type Config struct {
	Store       string
	DataPath    string
	CatalogPath string
	LogMode     string
	LogLevel    string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Store:    StoreSQLite,
		LogMode:  "dev",
		LogLevel: "warn",
	}
}

// FromEnv returns Default overlaid with any SQ_* environment variables.
func FromEnv() Config {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) Config {
	c := Default()
	set := func(dst *string, key string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	set(&c.Store, EnvStore)
	set(&c.DataPath, EnvData)
	set(&c.CatalogPath, EnvCatalog)
	set(&c.LogMode, EnvLogMode)
	set(&c.LogLevel, EnvLogLevel)
	return c
}

// Validate normalizes the store engine and fills in the default data path.
func (c *Config) Validate() error {
	c.Store = strings.ToLower(strings.TrimSpace(c.Store))
	switch c.Store {
	case "":
		c.Store = StoreSQLite
	case StoreSQLite, StoreJSON:
	default:
		return fmt.Errorf("unsupported store engine: %q", c.Store)
	}
	if c.DataPath == "" {
		p, err := DefaultDataPath(c.Store)
		if err != nil {
			return err
		}
		c.DataPath = p
	}
	return nil
}

// DefaultDataPath returns ~/.stormquest.db or ~/.stormquest.json.
func DefaultDataPath(store string) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	name := ".stormquest.db"
	if store == StoreJSON {
		name = ".stormquest.json"
	}
	return filepath.Join(homeDir, name), nil
}

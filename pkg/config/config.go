// Package config loads gridboard settings from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/gridboard/config.toml by default and
// has three sections:
//
//	[grid]
//	columns = 12
//	rows = 8
//	cell_size = 80
//	gap = 8
//
//	[store]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	prefix = "staging:"
//
//	[server]
//	addr = ":8080"
//	read_timeout = "10s"
//
// Missing keys keep their defaults; a missing file is the same as an empty one.
package config

import (
	"bytes"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/gridboard/pkg/errors"
	"github.com/matzehuels/gridboard/pkg/grid"
	"github.com/matzehuels/gridboard/pkg/store"
)

// Default values.
const (
	DefaultColumns      = 12
	DefaultRows         = 8
	DefaultAddr         = ":8080"
	DefaultReadTimeout  = 10 * time.Second
	DefaultWriteTimeout = 10 * time.Second
	DefaultHistoryDepth = 50
)

// Config is the complete configuration.
type Config struct {
	// Grid is used when a board is created without explicit dimensions.
	Grid grid.Grid `toml:"grid"`
	// Store selects the layout store backend.
	Store store.Options `toml:"store"`
	// Server configures `gridboard serve`.
	Server Server `toml:"server"`
	// HistoryDepth caps undo steps per open board.
	HistoryDepth int `toml:"history_depth"`
}

// Server holds HTTP server settings.
type Server struct {
	Addr         string        `toml:"addr"`
	ReadTimeout  time.Duration `toml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Grid:  grid.New(DefaultColumns, DefaultRows),
		Store: store.Options{Backend: store.BackendFile},
		Server: Server{
			Addr:         DefaultAddr,
			ReadTimeout:  DefaultReadTimeout,
			WriteTimeout: DefaultWriteTimeout,
		},
		HistoryDepth: DefaultHistoryDepth,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/gridboard/config.toml, falling back
// to ~/.config/gridboard/config.toml.
func DefaultPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gridboard", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidConfig, err, "locate config dir")
	}
	return filepath.Join(home, ".config", "gridboard", "config.toml"), nil
}

// Load reads the file at path over the defaults and validates the result.
// An empty path means [DefaultPath]. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	return Parse(data)
}

// Parse decodes TOML data over the defaults and validates the result.
// Unknown keys are rejected so typos do not go unnoticed.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for values that cannot work.
func (c Config) Validate() error {
	if err := c.Grid.ValidateGrid(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "[grid]")
	}
	if c.Store.Backend != "" && !slices.Contains(store.Backends(), c.Store.Backend) {
		return errors.New(errors.ErrCodeInvalidConfig, "[store] unknown backend %q (want one of %v)", c.Store.Backend, store.Backends())
	}
	switch c.Store.Backend {
	case store.BackendRedis:
		if c.Store.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "[store] redis_addr is required for the redis backend")
		}
	case store.BackendMongo:
		if c.Store.MongoURI == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "[store] mongo_uri is required for the mongo backend")
		}
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "[server] timeouts must not be negative")
	}
	return nil
}

// Encode renders the configuration as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

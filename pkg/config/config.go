// Package config loads figlayout settings from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/figlayout/config.toml (falling back to
// ~/.config/figlayout/config.toml). Every key is optional; missing keys keep
// their defaults and unknown keys are rejected.
//
//	algorithm = "layered"
//
//	[layout.layered]
//	direction = "LR"
//	sweeps = 8
//
//	[history]
//	depth = 100
//	drop_stale = true
//
//	[cache]
//	backend = "redis"
//	ttl = "24h"
//	namespace = "traffic-light:"
//
//	[cache.redis]
//	addr = "localhost:6379"
package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/figlayout/pkg/cache"
	"github.com/matzehuels/figlayout/pkg/errors"
	"github.com/matzehuels/figlayout/pkg/history"
	"github.com/matzehuels/figlayout/pkg/layout"
)

// AppName names the configuration and cache directories.
const AppName = "figlayout"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the complete set of user settings.
type Config struct {
	// Algorithm is the layout used when no --algorithm flag is given.
	Algorithm string        `toml:"algorithm"`
	Layout    layout.Config `toml:"layout"`
	History   HistoryConfig `toml:"history"`
	Cache     CacheConfig   `toml:"cache"`
}

// HistoryConfig configures the undo history of interactive sessions.
type HistoryConfig struct {
	Depth     int  `toml:"depth"`
	DropStale bool `toml:"drop_stale"`
}

// CacheConfig selects and configures the layout cache.
type CacheConfig struct {
	Backend string      `toml:"backend"`
	Dir     string      `toml:"dir"`
	TTL     Duration    `toml:"ttl"`
	Redis   RedisConfig `toml:"redis"`

	// Namespace prefixes every cache key, so projects sharing a backend
	// never see each other's entries.
	Namespace string `toml:"namespace"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// Duration is a time.Duration written as a Go duration string ("36h").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Algorithm: layout.DefaultAlgorithm,
		History:   HistoryConfig{Depth: history.DefaultDepth},
		Cache: CacheConfig{
			Backend: BackendFile,
			TTL:     Duration{cache.TTLLayout},
			Redis:   RedisConfig{Addr: "localhost:6379", Prefix: cache.DefaultRedisPrefix},
		},
	}
}

// DefaultPath returns the per-user configuration file path.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// Load reads the configuration at path on top of Default. An empty path
// loads DefaultPath and tolerates its absence; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if explicit {
			return cfg, errors.New(errors.ErrCodeFileNotFound, "config file %s does not exist", path)
		}
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	if err := Decode(string(data), &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", path)
	}
	return cfg, nil
}

// Decode parses TOML into cfg, keeping values the document does not set,
// and validates the result.
func Decode(data string, cfg *Config) error {
	md, err := toml.Decode(data, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return cfg.Validate()
}

// Validate checks values that the TOML decoder cannot.
func (c Config) Validate() error {
	if c.Algorithm != "" && !layout.IsValid(c.Algorithm) {
		return errors.New(errors.ErrCodeUnknownAlgorithm, "unknown algorithm %q (available: %s)",
			c.Algorithm, strings.Join(layout.Names(), ", "))
	}
	for _, name := range layout.Names() {
		if _, err := layout.New(name, nil, c.Layout); err != nil {
			return err
		}
	}
	if c.History.Depth < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "history depth must not be negative")
	}
	switch c.Cache.Backend {
	case "", BackendFile, BackendRedis, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache ttl must not be negative")
	}
	return nil
}

// Write encodes the configuration as TOML.
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

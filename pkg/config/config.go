// Package config loads tilegrid settings from a TOML file.
//
// Defaults are applied first, then file values. Command-line flags are
// applied by the CLI on top of the loaded Config.
//
//	[layout]
//	width = 80
//	height = 24
//	aspect = 0.5
//	items = 120
//
//	[server]
//	addr = ":8080"
//
//	[store]
//	backend = "redis"
//	ttl = "24h"
//	redis_addr = "localhost:6379"
package config

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/tilegrid/pkg/errors"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Config is the root of the configuration file.
type Config struct {
	Layout Layout `toml:"layout"`
	Server Server `toml:"server"`
	Store  Store  `toml:"store"`
}

// Layout holds the viewport and data source used by the CLI commands.
type Layout struct {
	Width  int     `toml:"width"`
	Height int     `toml:"height"`
	Aspect float64 `toml:"aspect"`
	Items  int     `toml:"items"`
}

// Server holds HTTP service settings.
type Server struct {
	Addr            string   `toml:"addr"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

// Store selects and configures the snapshot backend.
type Store struct {
	Backend       string   `toml:"backend"`
	TTL           Duration `toml:"ttl"`
	Dir           string   `toml:"dir"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	MongoURI      string   `toml:"mongo_uri"`
	MongoDatabase string   `toml:"mongo_database"`
}

// Duration is a time.Duration written as a string like "90s" in TOML.
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
	return []byte(d.String()), nil
}

// Defaults returns the configuration used when no file is given.
func Defaults() Config {
	return Config{
		Layout: Layout{Width: 80, Height: 24, Aspect: 1.0, Items: 60},
		Server: Server{Addr: ":8080", ShutdownTimeout: Duration{10 * time.Second}},
		Store: Store{
			Backend:       BackendMemory,
			TTL:           Duration{24 * time.Hour},
			RedisAddr:     "localhost:6379",
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: "tilegrid",
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return Parse(data, cfg)
}

// Parse decodes TOML data over base and validates the result.
func Parse(data []byte, base Config) (Config, error) {
	md, err := toml.Decode(string(data), &base)
	if err != nil {
		return base, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return base, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", keys[0].String())
	}
	return base, base.Validate()
}

// Validate checks value ranges and backend settings.
func (c Config) Validate() error {
	switch {
	case c.Layout.Width < 0 || c.Layout.Height < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "layout size %dx%d must not be negative", c.Layout.Width, c.Layout.Height)
	case c.Layout.Items < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "layout items %d must not be negative", c.Layout.Items)
	case c.Store.TTL.Duration <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "store ttl must be positive")
	}

	switch c.Store.Backend {
	case BackendMemory, BackendFile:
	case BackendRedis:
		if c.Store.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "redis backend needs redis_addr")
		}
	case BackendMongo:
		if c.Store.MongoURI == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "mongo backend needs mongo_uri")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q", c.Store.Backend)
	}
	return nil
}

// Encode writes c as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}
